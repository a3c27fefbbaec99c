package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

const ticketColumns = "id, status, assigned_to, visitor_session_id, visitor_name, subject_id, created_at, updated_at"

// TicketRepository persists tickets in PostgreSQL. The take and close
// transitions are single conditional UPDATEs so the database's
// row-level locking arbitrates concurrent attendants.
type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, status, assigned_to, visitor_session_id, visitor_name, subject_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Status,
		ticket.AssignedTo,
		ticket.VisitorSessionID,
		ticket.VisitorName,
		ticket.SubjectID,
		ticket.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert ticket", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM tickets WHERE id = $1", ticketColumns)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, wrapErr("get ticket", err)
	}
	return ticket, nil
}

func (r *TicketRepository) LatestByVisitorSession(ctx context.Context, sessionID string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE visitor_session_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, ticketColumns)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, wrapErr("get ticket by session", err)
	}
	return ticket, nil
}

// Take transitions a waiting ticket to in_progress and binds it to the
// attendant. The WHERE clause is the race arbiter: of two concurrent
// calls only one matches the row, the other gets ErrTicketUnavailable.
func (r *TicketRepository) Take(ctx context.Context, ticketID, attendantID uuid.UUID) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
		UPDATE tickets
		SET status = $1, assigned_to = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING %s`, ticketColumns)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query,
		domain.StatusInProgress, attendantID, ticketID, domain.StatusWaiting))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketUnavailable
		}
		return nil, wrapErr("take ticket", err)
	}
	return ticket, nil
}

// Close transitions a ticket to closed. When assignedTo is non-nil the
// update additionally requires ownership; zero matched rows collapses
// missing, already closed and not-owned into one outcome.
func (r *TicketRepository) Close(ctx context.Context, ticketID uuid.UUID, assignedTo *uuid.UUID) (*domain.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $1`
	args := []interface{}{domain.StatusClosed, ticketID}

	if assignedTo != nil {
		query += " AND assigned_to = $3"
		args = append(args, *assignedTo)
	}
	query += fmt.Sprintf(" RETURNING %s", ticketColumns)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketUnavailable
		}
		return nil, wrapErr("close ticket", err)
	}
	return ticket, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	if filter.SubjectIDs != nil {
		args = append(args, filter.SubjectIDs)
		conditions = append(conditions, fmt.Sprintf("subject_id = ANY($%d)", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM tickets", ticketColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list tickets", err)
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, wrapErr("scan ticket", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list tickets", err)
	}
	return tickets, nil
}

func (r *TicketRepository) CountWaitingUpTo(ctx context.Context, createdAt time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE status = $1 AND created_at <= $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, domain.StatusWaiting, createdAt).Scan(&count); err != nil {
		return 0, wrapErr("count waiting tickets", err)
	}
	return count, nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.Status,
		&ticket.AssignedTo,
		&ticket.VisitorSessionID,
		&ticket.VisitorName,
		&ticket.SubjectID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
