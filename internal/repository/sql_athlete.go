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

var athleteColumns = []string{"id", "name", "graduation_year", "committed", "created_at", "updated_at"}

// SQLAthleteRepo implements AthleteRepo.
type SQLAthleteRepo struct {
	db db.DBTX
	sb sq.StatementBuilderType
}

func NewSQLAthleteRepo(conn db.DBTX, sb sq.StatementBuilderType) *SQLAthleteRepo {
	return &SQLAthleteRepo{db: conn, sb: sb}
}

func (r *SQLAthleteRepo) Create(ctx context.Context, a *domain.Athlete) error {
	query, args, err := r.sb.Insert("athletes").
		Columns(athleteColumns...).
		Values(a.ID, a.Name, a.GraduationYear, boolToInt(a.Committed), formatTime(a.CreatedAt), formatTime(a.UpdatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building athlete insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting athlete: %w", err)
	}
	return nil
}

func (r *SQLAthleteRepo) GetByID(ctx context.Context, id string) (*domain.Athlete, error) {
	query, args, err := r.sb.Select(athleteColumns...).From("athletes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building athlete select: %w", err)
	}
	a, err := scanAthlete(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("athlete %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (r *SQLAthleteRepo) List(ctx context.Context) ([]*domain.Athlete, error) {
	query, args, err := r.sb.Select(athleteColumns...).From("athletes").OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building athlete list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing athletes: %w", err)
	}
	defer rows.Close()

	var athletes []*domain.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		athletes = append(athletes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating athletes: %w", err)
	}
	return athletes, nil
}

func (r *SQLAthleteRepo) Update(ctx context.Context, a *domain.Athlete) error {
	query, args, err := r.sb.Update("athletes").
		Set("name", a.Name).
		Set("graduation_year", a.GraduationYear).
		Set("committed", boolToInt(a.Committed)).
		Set("updated_at", formatTime(a.UpdatedAt)).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building athlete update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating athlete: %w", err)
	}
	n, err := rowsAffected(res, "athlete update")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("athlete %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAthlete(row rowScanner) (*domain.Athlete, error) {
	var a domain.Athlete
	var committed int
	var createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.Name, &a.GraduationYear, &committed, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning athlete: %w", err)
	}
	a.Committed = intToBool(committed)

	var err error
	if a.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &a, nil
}
