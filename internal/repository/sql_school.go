package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/domain"
)

var schoolColumns = []string{"id", "athlete_id", "name", "priority", "status", "division", "fit_score", "created_at", "updated_at"}

// SQLSchoolRepo implements SchoolRepo.
type SQLSchoolRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLSchoolRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLSchoolRepo {
	return &SQLSchoolRepo{db: conn, sb: sb}
}

func (r *SQLSchoolRepo) Create(ctx context.Context, s *domain.School) error {
	query, args, err := r.sb.Insert("schools").
		Columns(schoolColumns...).
		Values(s.ID, s.AthleteID, s.Name, string(s.Priority), string(s.Status), string(s.Division),
			s.FitScore, formatTime(s.CreatedAt), formatTime(s.UpdatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building school insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting school: %w", err)
	}
	return nil
}

func (r *SQLSchoolRepo) GetByID(ctx context.Context, id string) (*domain.School, error) {
	query, args, err := r.sb.Select(schoolColumns...).From("schools").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building school select: %w", err)
	}
	s, err := scanSchool(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("school %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByAthlete returns schools in insertion order, which rules rely on for
// first-match scanning.
func (r *SQLSchoolRepo) ListByAthlete(ctx context.Context, athleteID string) ([]domain.School, error) {
	query, args, err := r.sb.Select(schoolColumns...).From("schools").
		Where(sq.Eq{"athlete_id": athleteID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building school list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	defer rows.Close()

	schools := []domain.School{}
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schools: %w", err)
	}
	return schools, nil
}

func (r *SQLSchoolRepo) Update(ctx context.Context, s *domain.School) error {
	query, args, err := r.sb.Update("schools").
		Set("name", s.Name).
		Set("priority", string(s.Priority)).
		Set("status", string(s.Status)).
		Set("division", string(s.Division)).
		Set("fit_score", s.FitScore).
		Set("updated_at", formatTime(s.UpdatedAt)).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building school update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating school: %w", err)
	}
	n, err := rowsAffected(res, "school update")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("school %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func scanSchool(row rowScanner) (domain.School, error) {
	var s domain.School
	var priority, status, division, createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.AthleteID, &s.Name, &priority, &status, &division, &s.FitScore, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scanning school: %w", err)
	}
	s.Priority = domain.Priority(priority)
	s.Status = domain.SchoolStatus(status)
	s.Division = domain.Division(division)

	var err error
	if s.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return s, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return s, err
	}
	return s, nil
}
