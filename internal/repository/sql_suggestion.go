package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
)

var suggestionColumns = []string{
	"id", "athlete_id", "rule_type", "urgency", "message", "action_type",
	"related_school_id", "related_task_id", "condition_snapshot",
	"pending_surface", "surfaced_at", "dismissed", "dismissed_at",
	"completed", "completed_at", "created_at",
}

// urgencyRankExpr orders urgency text by severity in SQL.
const urgencyRankExpr = `CASE urgency WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END`

// SQLSuggestionRepo implements SuggestionRepo.
type SQLSuggestionRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLSuggestionRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLSuggestionRepo {
	return &SQLSuggestionRepo{db: conn, sb: sb}
}

func (r *SQLSuggestionRepo) Create(ctx context.Context, s *domain.Suggestion) error {
	var snapshot interface{}
	if len(s.ConditionSnapshot) > 0 {
		raw, err := json.Marshal(s.ConditionSnapshot)
		if err != nil {
			return fmt.Errorf("encoding condition snapshot: %w", err)
		}
		snapshot = string(raw)
	}

	query, args, err := r.sb.Insert("suggestions").
		Columns(suggestionColumns...).
		Values(
			s.ID, s.AthleteID, s.RuleType, string(s.Urgency), s.Message, string(s.ActionType),
			nullableString(s.RelatedSchoolID), nullableString(s.RelatedTaskID), snapshot,
			boolToInt(s.PendingSurface), nullableTimeToString(s.SurfacedAt),
			boolToInt(s.Dismissed), nullableTimeToString(s.DismissedAt),
			boolToInt(s.Completed), nullableTimeToString(s.CompletedAt),
			formatTime(s.CreatedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("building suggestion insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting suggestion: %w", err)
	}
	return nil
}

func (r *SQLSuggestionRepo) GetByID(ctx context.Context, id string) (*domain.Suggestion, error) {
	query, args, err := r.sb.Select(suggestionColumns...).From("suggestions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building suggestion select: %w", err)
	}
	s, err := scanSuggestion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("suggestion %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLSuggestionRepo) Find(ctx context.Context, q SuggestionQuery) ([]*domain.Suggestion, error) {
	sel := applySuggestionFilter(r.sb.Select(suggestionColumns...).From("suggestions"), q.Filter)

	switch q.Order {
	case OrderUrgencyCreatedAsc:
		sel = sel.OrderBy(urgencyRankExpr+" DESC", "created_at ASC", "id")
	case OrderUrgencySurfacedDesc:
		sel = sel.OrderBy(urgencyRankExpr+" DESC", "surfaced_at DESC", "id")
	default:
		sel = sel.OrderBy("created_at DESC", "id")
	}
	if q.Limit > 0 {
		sel = sel.Limit(q.Limit)
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building suggestion query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suggestions: %w", err)
	}
	return out, nil
}

func (r *SQLSuggestionRepo) Count(ctx context.Context, f SuggestionFilter) (int, error) {
	query, args, err := applySuggestionFilter(r.sb.Select("COUNT(*)").From("suggestions"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building suggestion count: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting suggestions: %w", err)
	}
	return n, nil
}

func (r *SQLSuggestionRepo) MarkSurfaced(ctx context.Context, ids []string, at time.Time) (int, error) {
	return r.mark(ctx, ids, sq.Eq{"pending_surface": 1}, map[string]interface{}{
		"pending_surface": 0,
		"surfaced_at":     formatTime(at),
	})
}

func (r *SQLSuggestionRepo) MarkCompleted(ctx context.Context, ids []string, at time.Time) (int, error) {
	return r.mark(ctx, ids, nil, map[string]interface{}{
		"completed":    1,
		"completed_at": formatTime(at),
	})
}

func (r *SQLSuggestionRepo) MarkDismissed(ctx context.Context, ids []string, at time.Time) (int, error) {
	return r.mark(ctx, ids, nil, map[string]interface{}{
		"dismissed":    1,
		"dismissed_at": formatTime(at),
	})
}

func (r *SQLSuggestionRepo) mark(ctx context.Context, ids []string, extra sq.Sqlizer, set map[string]interface{}) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	upd := r.sb.Update("suggestions").
		SetMap(set).
		Where(sq.Eq{"id": ids, "dismissed": 0, "completed": 0})
	if extra != nil {
		upd = upd.Where(extra)
	}
	query, args, err := upd.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building suggestion update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("updating suggestions: %w", err)
	}
	return rowsAffected(res, "suggestion update")
}

func applySuggestionFilter(sel sq.SelectBuilder, f SuggestionFilter) sq.SelectBuilder {
	if f.AthleteID != "" {
		sel = sel.Where(sq.Eq{"athlete_id": f.AthleteID})
	}
	if len(f.IDs) > 0 {
		sel = sel.Where(sq.Eq{"id": f.IDs})
	}
	if f.RuleType != "" {
		sel = sel.Where(sq.Eq{"rule_type": f.RuleType})
	}
	if f.ActionType != "" {
		sel = sel.Where(sq.Eq{"action_type": string(f.ActionType)})
	}
	if f.RelatedSchoolID != nil {
		sel = sel.Where(sq.Eq{"related_school_id": *f.RelatedSchoolID})
	}
	if f.CreatedSince != nil {
		sel = sel.Where(sq.GtOrEq{"created_at": formatTime(*f.CreatedSince)})
	}
	if f.DismissedSince != nil {
		sel = sel.Where(sq.GtOrEq{"dismissed_at": formatTime(*f.DismissedSince)})
	}
	if f.PendingSurface != nil {
		sel = sel.Where(sq.Eq{"pending_surface": boolToInt(*f.PendingSurface)})
	}
	if f.Dismissed != nil {
		sel = sel.Where(sq.Eq{"dismissed": boolToInt(*f.Dismissed)})
	}
	if f.Completed != nil {
		sel = sel.Where(sq.Eq{"completed": boolToInt(*f.Completed)})
	}
	return sel
}

func scanSuggestion(row rowScanner) (*domain.Suggestion, error) {
	var s domain.Suggestion
	var urgency, actionType, createdAt string
	var schoolID, taskID, snapshot, surfacedAt, dismissedAt, completedAt sql.NullString
	var pending, dismissed, completed int

	err := row.Scan(
		&s.ID, &s.AthleteID, &s.RuleType, &urgency, &s.Message, &actionType,
		&schoolID, &taskID, &snapshot,
		&pending, &surfacedAt, &dismissed, &dismissedAt,
		&completed, &completedAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning suggestion: %w", err)
	}

	s.Urgency = domain.Urgency(urgency)
	s.ActionType = domain.ActionType(actionType)
	s.RelatedSchoolID = stringPtr(schoolID)
	s.RelatedTaskID = stringPtr(taskID)
	s.PendingSurface = intToBool(pending)
	s.SurfacedAt = parseNullableTime(surfacedAt)
	s.Dismissed = intToBool(dismissed)
	s.DismissedAt = parseNullableTime(dismissedAt)
	s.Completed = intToBool(completed)
	s.CompletedAt = parseNullableTime(completedAt)

	if snapshot.Valid && snapshot.String != "" {
		if err := json.Unmarshal([]byte(snapshot.String), &s.ConditionSnapshot); err != nil {
			return nil, fmt.Errorf("decoding condition snapshot: %w", err)
		}
	}
	if s.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &s, nil
}
