// Package services implements the core business logic behind the port
// interfaces.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
	"github.com/guipratiko/onlyhelper-back/internal/infrastructure/metrics"
)

// TicketService coordinates the ticket lifecycle: creation, the
// conditional take/close transitions, queue position and the
// visibility rules for listing.
type TicketService struct {
	tickets   ports.TicketRepository
	users     ports.UserRepository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

var _ ports.TicketService = (*TicketService)(nil)

func NewTicketService(
	tickets ports.TicketRepository,
	users ports.UserRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *TicketService {
	return &TicketService{
		tickets:   tickets,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Create opens a ticket in the waiting state and reports its queue
// position. Creation is unauthenticated; the visitor session token is
// the only correlation handle.
func (s *TicketService) Create(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, int, error) {
	if params.VisitorSessionID == "" {
		return nil, 0, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "sessionId is required")
	}

	ticket := domain.NewTicket(&params.VisitorSessionID, params.VisitorName, params.SubjectID)
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, 0, err
	}

	position, err := s.tickets.CountWaitingUpTo(ctx, ticket.CreatedAt)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to compute queue position",
			slog.String("ticket_id", ticket.ID.String()),
			slog.String("error", err.Error()))
		position = 1
	}

	metrics.TicketsCreated.Inc()
	s.publisher.Publish(domain.NewTicketsUpdateEvent())

	return ticket, position, nil
}

// ByVisitorSession returns the visitor's most recent ticket together
// with its queue position when it is still waiting.
func (s *TicketService) ByVisitorSession(ctx context.Context, sessionID string) (*domain.Ticket, int, error) {
	if sessionID == "" {
		return nil, 0, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "sessionId is required")
	}

	ticket, err := s.tickets.LatestByVisitorSession(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	position, err := s.Position(ctx, ticket)
	if err != nil {
		return nil, 0, err
	}
	return ticket, position, nil
}

// Take atomically assigns a waiting ticket to the calling attendant.
// The repository's conditional update is the sole arbiter between
// racing attendants; the loser sees ErrTicketUnavailable.
func (s *TicketService) Take(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error) {
	if !caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}

	ticket, err := s.tickets.Take(ctx, ticketID, *caller.UserID)
	if err != nil {
		return nil, err
	}

	metrics.TicketsTaken.Inc()
	s.publisher.Publish(domain.NewTicketsUpdateEvent())

	s.logger.InfoContext(ctx, "ticket taken",
		slog.String("ticket_id", ticket.ID.String()),
		slog.String("attendant_id", caller.UserID.String()))

	return ticket, nil
}

// Close moves a ticket to the terminal closed state. Admins close any
// ticket; attendants only the ones assigned to them. Both constraints
// live inside the repository's conditional update.
func (s *TicketService) Close(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error) {
	if !caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}

	var assignedTo *uuid.UUID
	if !caller.IsAdmin() {
		assignedTo = caller.UserID
	}

	ticket, err := s.tickets.Close(ctx, ticketID, assignedTo)
	if err != nil {
		return nil, err
	}

	metrics.TicketsClosed.Inc()
	s.publisher.Publish(domain.NewTicketsUpdateEvent())

	s.logger.InfoContext(ctx, "ticket closed",
		slog.String("ticket_id", ticket.ID.String()),
		slog.String("closed_by", caller.UserID.String()))

	return ticket, nil
}

// List returns tickets ordered by creation time. Non-admins browsing
// the waiting queue only see tickets whose subject belongs to their
// assigned set; an empty set yields an empty queue.
func (s *TicketService) List(ctx context.Context, params ports.ListTicketsParams) ([]*domain.Ticket, error) {
	if !params.Caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	filter := ports.TicketFilter{Status: params.Status}
	if params.AssignedToMe {
		filter.AssignedTo = params.Caller.UserID
	}

	if s.restrictToSubjects(params) {
		subjectIDs, err := s.users.SubjectIDs(ctx, *params.Caller.UserID)
		if err != nil {
			return nil, err
		}
		if len(subjectIDs) == 0 {
			return []*domain.Ticket{}, nil
		}
		filter.SubjectIDs = subjectIDs
	}

	return s.tickets.List(ctx, filter)
}

// restrictToSubjects decides whether the waiting-queue visibility rule
// applies. It fails closed: an unscoped listing by a non-admin is
// treated as a waiting-queue browse.
func (s *TicketService) restrictToSubjects(params ports.ListTicketsParams) bool {
	if params.Caller.IsAdmin() || params.AssignedToMe {
		return false
	}
	return params.Status == nil || *params.Status == domain.StatusWaiting
}

// Position counts the waiting tickets created up to and including the
// given one, so a waiting ticket is always at least position 1. For
// any other status it reports 0.
func (s *TicketService) Position(ctx context.Context, ticket *domain.Ticket) (int, error) {
	if ticket.Status != domain.StatusWaiting {
		return 0, nil
	}
	position, err := s.tickets.CountWaitingUpTo(ctx, ticket.CreatedAt)
	if err != nil {
		return 0, err
	}
	if position < 1 {
		position = 1
	}
	return position, nil
}
