package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and written
// in the subset of SQL shared by SQLite and Postgres: timestamps are stored
// as fixed-width UTC text and booleans as 0/1 integers.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS athletes (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		graduation_year INTEGER NOT NULL,
		committed       INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schools (
		id         TEXT PRIMARY KEY,
		athlete_id TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		priority   TEXT NOT NULL DEFAULT 'C',
		status     TEXT NOT NULL DEFAULT 'interested',
		division   TEXT NOT NULL DEFAULT '',
		fit_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schools_athlete ON schools(athlete_id)`,
	`CREATE TABLE IF NOT EXISTS interactions (
		id               TEXT PRIMARY KEY,
		athlete_id       TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		school_id        TEXT,
		coach_id         TEXT,
		interaction_type TEXT NOT NULL DEFAULT '',
		occurred_at      TEXT NOT NULL,
		related_event_id TEXT,
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_athlete ON interactions(athlete_id, occurred_at)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id    TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		phase TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS athlete_tasks (
		athlete_id   TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		task_id      TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		status       TEXT NOT NULL DEFAULT 'todo',
		completed_at TEXT,
		PRIMARY KEY (athlete_id, task_id)
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		id            TEXT PRIMARY KEY,
		athlete_id    TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		url           TEXT NOT NULL DEFAULT '',
		health_status TEXT NOT NULL DEFAULT 'unknown',
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_athlete ON videos(athlete_id)`,
	`CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		athlete_id TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		school_id  TEXT,
		name       TEXT NOT NULL,
		event_date TEXT NOT NULL,
		attended   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_athlete ON events(athlete_id, event_date)`,
	`CREATE TABLE IF NOT EXISTS suggestions (
		id                 TEXT PRIMARY KEY,
		athlete_id         TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		rule_type          TEXT NOT NULL,
		urgency            TEXT NOT NULL,
		message            TEXT NOT NULL,
		action_type        TEXT NOT NULL,
		related_school_id  TEXT,
		related_task_id    TEXT,
		condition_snapshot TEXT,
		pending_surface    INTEGER NOT NULL DEFAULT 1,
		surfaced_at        TEXT,
		dismissed          INTEGER NOT NULL DEFAULT 0,
		dismissed_at       TEXT,
		completed          INTEGER NOT NULL DEFAULT 0,
		completed_at       TEXT,
		created_at         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_athlete_rule ON suggestions(athlete_id, rule_type, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_athlete_pending ON suggestions(athlete_id, pending_surface)`,
	`INSERT INTO tasks (id, title, phase) VALUES
		('create-profile', 'Create recruiting profile', 'freshman'),
		('academic-plan', 'Map out core-course academic plan', 'freshman'),
		('first-highlight-video', 'Record first highlight video', 'freshman'),
		('target-school-list', 'Draft a target school list', 'freshman'),
		('ncaa-eligibility-registration', 'Register with the NCAA Eligibility Center', 'sophomore'),
		('skills-video-update', 'Update skills video with sophomore season', 'sophomore'),
		('showcase-plan', 'Pick summer showcases', 'sophomore'),
		('coach-intro-emails', 'Send intro emails to coaches', 'sophomore'),
		('unofficial-visits', 'Schedule unofficial visits', 'junior'),
		('standardized-tests', 'Take SAT or ACT', 'junior'),
		('official-visit-plan', 'Plan official visits', 'junior'),
		('narrow-school-list', 'Narrow school list to finalists', 'junior')
	ON CONFLICT (id) DO NOTHING`,
}
