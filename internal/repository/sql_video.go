package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
)

var videoColumns = []string{"id", "athlete_id", "title", "url", "health_status", "created_at"}

// SQLVideoRepo implements VideoRepo.
type SQLVideoRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLVideoRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLVideoRepo {
	return &SQLVideoRepo{db: conn, sb: sb}
}

func (r *SQLVideoRepo) Create(ctx context.Context, v *domain.Video) error {
	health := v.HealthStatus
	if health == "" {
		health = domain.VideoHealthUnknown
	}
	query, args, err := r.sb.Insert("videos").
		Columns(videoColumns...).
		Values(v.ID, v.AthleteID, v.Title, v.URL, string(health), formatTime(v.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building video insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting video: %w", err)
	}
	return nil
}

func (r *SQLVideoRepo) ListByAthlete(ctx context.Context, athleteID string) ([]domain.Video, error) {
	query, args, err := r.sb.Select(videoColumns...).From("videos").
		Where(sq.Eq{"athlete_id": athleteID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building video list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		var v domain.Video
		var health, createdAt string
		if err := rows.Scan(&v.ID, &v.AthleteID, &v.Title, &v.URL, &health, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning video: %w", err)
		}
		v.HealthStatus = domain.VideoHealth(health)
		if v.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating videos: %w", err)
	}
	return videos, nil
}

func (r *SQLVideoRepo) UpdateHealth(ctx context.Context, id string, status domain.VideoHealth) error {
	query, args, err := r.sb.Update("videos").Set("health_status", string(status)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building video health update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating video health: %w", err)
	}
	n, err := rowsAffected(res, "video health update")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return nil
}
