package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
)

// EventPublisher fans an event out to every connected observer.
// Delivery is best effort; a failed observer never fails the caller.
type EventPublisher interface {
	Publish(event domain.Event)
}

// CreateTicketParams holds parameters for opening a ticket.
type CreateTicketParams struct {
	VisitorSessionID string
	VisitorName      *string
	SubjectID        *uuid.UUID
}

// ListTicketsParams holds parameters for listing tickets.
type ListTicketsParams struct {
	Status       *domain.TicketStatus
	AssignedToMe bool
	Caller       domain.Caller
}

// TicketService manages the ticket lifecycle and queue.
type TicketService interface {
	Create(ctx context.Context, params CreateTicketParams) (*domain.Ticket, int, error)
	ByVisitorSession(ctx context.Context, sessionID string) (*domain.Ticket, int, error)
	Take(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error)
	Close(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error)
	List(ctx context.Context, params ListTicketsParams) ([]*domain.Ticket, error)
	Position(ctx context.Context, ticket *domain.Ticket) (int, error)
}

// AppendMessageParams holds parameters for appending to a transcript.
type AppendMessageParams struct {
	TicketID   uuid.UUID
	Content    string
	Attachment string
	Caller     domain.Caller
}

// MessageService manages ticket transcripts behind the access gate.
type MessageService interface {
	Append(ctx context.Context, params AppendMessageParams) (*domain.Message, error)
	ListForTicket(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) ([]*domain.Message, error)
}

// SubjectService manages the support subject catalog.
type SubjectService interface {
	Create(ctx context.Context, name string, position int) (*domain.Subject, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Subject, error)
	Update(ctx context.Context, id uuid.UUID, update domain.SubjectUpdate) (*domain.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer mints bearer credentials for authenticated accounts.
type TokenIssuer interface {
	Generate(userID uuid.UUID, role domain.Role) (string, error)
}

// AuthResult is a successful login or registration outcome.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService registers accounts and verifies credentials.
type AuthService interface {
	Register(ctx context.Context, params domain.UserRegistrationParams) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// UserService exposes account state to its owner and, for admins, the
// collaborator roster.
type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.PresenceStatus) error
	ListCollaborators(ctx context.Context) ([]*domain.User, error)
	AssignSubjects(ctx context.Context, userID uuid.UUID, subjectIDs []uuid.UUID) (*domain.User, error)
}
