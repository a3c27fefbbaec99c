package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
	"github.com/guipratiko/onlyhelper-back/internal/infrastructure/metrics"
)

// MessageService manages ticket transcripts. Every read and write goes
// through the access gate first; a nonexistent ticket is reported as
// access denied so callers cannot probe for ticket ids.
type MessageService struct {
	messages           ports.MessageRepository
	tickets            ports.TicketRepository
	publisher          ports.EventPublisher
	logger             *slog.Logger
	maxAttachmentBytes int
}

var _ ports.MessageService = (*MessageService)(nil)

func NewMessageService(
	messages ports.MessageRepository,
	tickets ports.TicketRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	maxAttachmentBytes int,
) *MessageService {
	return &MessageService{
		messages:           messages,
		tickets:            tickets,
		publisher:          publisher,
		logger:             logger,
		maxAttachmentBytes: maxAttachmentBytes,
	}
}

// Append validates, gate-checks and persists a message, then fans it
// out to every connected observer.
func (s *MessageService) Append(ctx context.Context, params ports.AppendMessageParams) (*domain.Message, error) {
	ticket, err := s.gate(ctx, params.TicketID, params.Caller)
	if err != nil {
		return nil, err
	}

	message, err := domain.NewMessage(domain.MessageParams{
		TicketID:           ticket.ID,
		Content:            params.Content,
		Attachment:         params.Attachment,
		Sender:             params.Caller,
		MaxAttachmentBytes: s.maxAttachmentBytes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.messages.Insert(ctx, message); err != nil {
		return nil, err
	}

	metrics.MessagesAppended.WithLabelValues(string(message.SenderType)).Inc()
	s.publisher.Publish(domain.NewMessageEvent(ticket.ID, message))

	return message, nil
}

// ListForTicket returns the full transcript in chronological order.
func (s *MessageService) ListForTicket(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) ([]*domain.Message, error) {
	if _, err := s.gate(ctx, ticketID, caller); err != nil {
		return nil, err
	}
	return s.messages.ListByTicket(ctx, ticketID)
}

// gate loads the ticket and applies the access rules. A missing ticket
// is indistinguishable from a denied one.
func (s *MessageService) gate(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if !ticket.AccessibleBy(caller) {
		s.logger.DebugContext(ctx, "transcript access denied",
			slog.String("ticket_id", ticketID.String()),
			slog.String("role", string(caller.Role)))
		return nil, apperrors.ErrForbidden
	}
	return ticket, nil
}

// isNotFound reports whether err represents a missing ticket.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrTicketNotFound) || errors.Is(err, apperrors.ErrNotFound)
}
