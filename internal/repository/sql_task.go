package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
)

// SQLTaskRepo implements TaskRepo over the global catalog and per-athlete
// completion records.
type SQLTaskRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLTaskRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLTaskRepo {
	return &SQLTaskRepo{db: conn, sb: sb}
}

func (r *SQLTaskRepo) ListCatalog(ctx context.Context) ([]domain.Task, error) {
	query, args, err := r.sb.Select("id", "title", "phase").From("tasks").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building task catalog query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing task catalog: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Phase); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLTaskRepo) ListByAthlete(ctx context.Context, athleteID string) ([]domain.AthleteTask, error) {
	query, args, err := r.sb.Select("athlete_id", "task_id", "status", "completed_at").
		From("athlete_tasks").
		Where(sq.Eq{"athlete_id": athleteID}).
		OrderBy("task_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building athlete task query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing athlete tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.AthleteTask{}
	for rows.Next() {
		var t domain.AthleteTask
		var status string
		var completedAt sql.NullString
		if err := rows.Scan(&t.AthleteID, &t.TaskID, &status, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning athlete task: %w", err)
		}
		t.Status = domain.TaskStatus(status)
		t.CompletedAt = parseNullableTime(completedAt)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating athlete tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLTaskRepo) Upsert(ctx context.Context, t *domain.AthleteTask) error {
	query, args, err := r.sb.Insert("athlete_tasks").
		Columns("athlete_id", "task_id", "status", "completed_at").
		Values(t.AthleteID, t.TaskID, string(t.Status), nullableTimeToString(t.CompletedAt)).
		Suffix("ON CONFLICT (athlete_id, task_id) DO UPDATE SET status = excluded.status, completed_at = excluded.completed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building athlete task upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting athlete task: %w", err)
	}
	return nil
}
