package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/dbx"
	"github.com/webedt/webedt/internal/server/models"
)

const sessionColumns = `id, name, request, repo, environment, output, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.Name, &s.Request, &s.Repo, &s.Environment, &s.Output, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	return r.queryOne(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	query :=
		`INSERT INTO sessions (id, name, request, repo, environment, output, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 RETURNING ` + sessionColumns

	return r.queryOne(ctx, query, s.ID, s.Name, s.Request, s.Repo, s.Environment, s.Output)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error) {
	if patch.Empty() {
		return nil, common.ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"name", patch.Name},
		{"request", patch.Request},
		{"repo", patch.Repo},
		{"environment", patch.Environment},
		{"output", patch.Output},
	} {
		if f.value != nil {
			add(f.column, *f.value)
		}
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := `UPDATE sessions SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + sessionColumns

	return r.queryOne(ctx, query, args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Session, error) {
	return r.queryOne(ctx, `DELETE FROM sessions WHERE id = $1 RETURNING `+sessionColumns, id)
}
