package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// UserRepository persists attendant and admin accounts together with
// their assigned subject sets.
type UserRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, full_name, email, hashed_password, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.HashedPassword,
		user.Role,
		user.Status,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrUserExists
		}
		return wrapErr("insert user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, full_name, email, hashed_password, role, status, created_at
		FROM users WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id), "get user")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, full_name, email, hashed_password, role, status, created_at
		FROM users WHERE email = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email), "get user by email")
}

// List returns every account together with its subject set, ordered by
// name for a stable roster.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.full_name, u.email, u.hashed_password, u.role, u.status, u.created_at,
		       COALESCE(ARRAY_AGG(us.subject_id) FILTER (WHERE us.subject_id IS NOT NULL), '{}') AS subject_ids
		FROM users u
		LEFT JOIN user_subjects us ON us.user_id = u.id
		GROUP BY u.id
		ORDER BY u.full_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.HashedPassword,
			&user.Role,
			&user.Status,
			&user.CreatedAt,
			&user.SubjectIDs,
		)
		if err != nil {
			return nil, wrapErr("scan user", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list users", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PresenceStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return wrapErr("update user status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SubjectIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_id FROM user_subjects WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapErr("get user subjects", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr("scan subject id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("get user subjects", err)
	}
	return ids, nil
}

// SetSubjects replaces the whole subject set in one transaction.
func (r *UserRepository) SetSubjects(ctx context.Context, userID uuid.UUID, subjectIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin set subjects", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_subjects WHERE user_id = $1`, userID); err != nil {
		return wrapErr("clear user subjects", err)
	}
	for _, subjectID := range subjectIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_subjects (user_id, subject_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, subjectID)
		if err != nil {
			return wrapErr("insert user subject", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit set subjects", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row, op string) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.HashedPassword,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, wrapErr(op, err)
	}
	return &user, nil
}
