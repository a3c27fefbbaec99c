package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

// SubjectRepository persists the support subject catalog.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

var _ ports.SubjectRepository = (*SubjectRepository)(nil)

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) Insert(ctx context.Context, subject *domain.Subject) error {
	query := `
		INSERT INTO subjects (id, name, position, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		subject.ID,
		subject.Name,
		subject.Position,
		subject.Active,
		subject.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert subject", err)
	}
	return nil
}

func (r *SubjectRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Subject, error) {
	query := `SELECT id, name, position, active, created_at FROM subjects`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY position ASC, name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list subjects", err)
	}
	defer rows.Close()

	subjects := make([]*domain.Subject, 0)
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Position, &subject.Active, &subject.CreatedAt); err != nil {
			return nil, wrapErr("scan subject", err)
		}
		subjects = append(subjects, &subject)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list subjects", err)
	}
	return subjects, nil
}

func (r *SubjectRepository) Update(ctx context.Context, id uuid.UUID, update domain.SubjectUpdate) (*domain.Subject, error) {
	var (
		sets []string
		args []interface{}
	)

	if update.Name != nil {
		args = append(args, *update.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Position != nil {
		args = append(args, *update.Position)
		sets = append(sets, fmt.Sprintf("position = $%d", len(args)))
	}
	if update.Active != nil {
		args = append(args, *update.Active)
		sets = append(sets, fmt.Sprintf("active = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE subjects SET %s
		WHERE id = $%d
		RETURNING id, name, position, active, created_at`,
		strings.Join(sets, ", "), len(args))

	var subject domain.Subject
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&subject.ID, &subject.Name, &subject.Position, &subject.Active, &subject.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, wrapErr("update subject", err)
	}
	return &subject, nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete subject", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}
