package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
)

var eventColumns = []string{"id", "athlete_id", "school_id", "name", "event_date", "attended", "created_at"}

// SQLEventRepo implements EventRepo.
type SQLEventRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLEventRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLEventRepo {
	return &SQLEventRepo{db: conn, sb: sb}
}

func (r *SQLEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query, args, err := r.sb.Insert("events").
		Columns(eventColumns...).
		Values(e.ID, e.AthleteID, nullableString(e.SchoolID), e.Name, formatTime(e.EventDate),
			boolToInt(e.Attended), formatTime(e.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building event insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// ListByAthlete returns events newest first.
func (r *SQLEventRepo) ListByAthlete(ctx context.Context, athleteID string) ([]domain.Event, error) {
	query, args, err := r.sb.Select(eventColumns...).From("events").
		Where(sq.Eq{"athlete_id": athleteID}).
		OrderBy("event_date DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building event list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		var schoolID sql.NullString
		var eventDate, createdAt string
		var attended int
		if err := rows.Scan(&e.ID, &e.AthleteID, &schoolID, &e.Name, &eventDate, &attended, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.SchoolID = stringPtr(schoolID)
		e.Attended = intToBool(attended)
		if e.EventDate, err = parseTime(eventDate, "event_date"); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}
