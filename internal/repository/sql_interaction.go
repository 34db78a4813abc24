package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
)

var interactionColumns = []string{
	"id", "athlete_id", "school_id", "coach_id", "interaction_type",
	"occurred_at", "related_event_id", "notes", "created_at",
}

// SQLInteractionRepo implements InteractionRepo.
type SQLInteractionRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLInteractionRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLInteractionRepo {
	return &SQLInteractionRepo{db: conn, sb: sb}
}

func (r *SQLInteractionRepo) Create(ctx context.Context, i *domain.Interaction) error {
	query, args, err := r.sb.Insert("interactions").
		Columns(interactionColumns...).
		Values(i.ID, i.AthleteID, nullableString(i.SchoolID), nullableString(i.CoachID), i.InteractionType,
			formatTime(i.OccurredAt), nullableString(i.RelatedEventID), i.Notes, formatTime(i.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building interaction insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// ListByAthlete returns interactions newest first.
func (r *SQLInteractionRepo) ListByAthlete(ctx context.Context, athleteID string) ([]domain.Interaction, error) {
	query, args, err := r.sb.Select(interactionColumns...).From("interactions").
		Where(sq.Eq{"athlete_id": athleteID}).
		OrderBy("occurred_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building interaction list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	defer rows.Close()

	interactions := []domain.Interaction{}
	for rows.Next() {
		var i domain.Interaction
		var schoolID, coachID, eventID sql.NullString
		var occurredAt, createdAt string
		if err := rows.Scan(&i.ID, &i.AthleteID, &schoolID, &coachID, &i.InteractionType,
			&occurredAt, &eventID, &i.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		i.SchoolID = stringPtr(schoolID)
		i.CoachID = stringPtr(coachID)
		i.RelatedEventID = stringPtr(eventID)
		if i.OccurredAt, err = parseTime(occurredAt, "occurred_at"); err != nil {
			return nil, err
		}
		if i.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", err)
	}
	return interactions, nil
}
