// Package ports defines the interfaces between the core services and
// the adapters on both sides of them.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
)

// TicketFilter narrows a ticket listing. When SubjectIDs is non-nil the
// listing only returns tickets whose subject belongs to the set; the
// service layer decides when that restriction applies.
type TicketFilter struct {
	Status     *domain.TicketStatus
	AssignedTo *uuid.UUID
	SubjectIDs []uuid.UUID
}

// TicketRepository persists tickets. Take and Close are conditional
// updates: they match zero rows unless their status and ownership
// preconditions hold, and report ErrTicketUnavailable when nothing
// matched.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	LatestByVisitorSession(ctx context.Context, sessionID string) (*domain.Ticket, error)
	Take(ctx context.Context, ticketID, attendantID uuid.UUID) (*domain.Ticket, error)
	Close(ctx context.Context, ticketID uuid.UUID, assignedTo *uuid.UUID) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error)
	CountWaitingUpTo(ctx context.Context, createdAt time.Time) (int, error)
}

// MessageRepository persists chat messages. Messages are append-only.
type MessageRepository interface {
	Insert(ctx context.Context, message *domain.Message) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.Message, error)
}

// SubjectRepository persists support subjects.
type SubjectRepository interface {
	Insert(ctx context.Context, subject *domain.Subject) error
	List(ctx context.Context, activeOnly bool) ([]*domain.Subject, error)
	Update(ctx context.Context, id uuid.UUID, update domain.SubjectUpdate) (*domain.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository persists attendant and admin accounts together with
// their assigned subject sets.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PresenceStatus) error
	SubjectIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	SetSubjects(ctx context.Context, userID uuid.UUID, subjectIDs []uuid.UUID) error
}
