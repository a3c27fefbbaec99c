// Package mocks provides testify mocks for the port interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

// TicketRepository is a mock implementation of ports.TicketRepository.
type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) LatestByVisitorSession(ctx context.Context, sessionID string) (*domain.Ticket, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) Take(ctx context.Context, ticketID, attendantID uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, attendantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) Close(ctx context.Context, ticketID uuid.UUID, assignedTo *uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) CountWaitingUpTo(ctx context.Context, createdAt time.Time) (int, error) {
	args := m.Called(ctx, createdAt)
	return args.Int(0), args.Error(1)
}

// MessageRepository is a mock implementation of ports.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Insert(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MessageRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.Message, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

// SubjectRepository is a mock implementation of ports.SubjectRepository.
type SubjectRepository struct {
	mock.Mock
}

func (m *SubjectRepository) Insert(ctx context.Context, subject *domain.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *SubjectRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Subject, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subject), args.Error(1)
}

func (m *SubjectRepository) Update(ctx context.Context, id uuid.UUID, update domain.SubjectUpdate) (*domain.Subject, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}

func (m *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UserRepository is a mock implementation of ports.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PresenceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *UserRepository) SubjectIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *UserRepository) SetSubjects(ctx context.Context, userID uuid.UUID, subjectIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, subjectIDs)
	return args.Error(0)
}

// TicketService is a mock implementation of ports.TicketService.
type TicketService struct {
	mock.Mock
}

func (m *TicketService) Create(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Ticket), args.Int(1), args.Error(2)
}

func (m *TicketService) ByVisitorSession(ctx context.Context, sessionID string) (*domain.Ticket, int, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Ticket), args.Int(1), args.Error(2)
}

func (m *TicketService) Take(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketService) Close(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketService) List(ctx context.Context, params ports.ListTicketsParams) ([]*domain.Ticket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *TicketService) Position(ctx context.Context, ticket *domain.Ticket) (int, error) {
	args := m.Called(ctx, ticket)
	return args.Int(0), args.Error(1)
}

// MessageService is a mock implementation of ports.MessageService.
type MessageService struct {
	mock.Mock
}

func (m *MessageService) Append(ctx context.Context, params ports.AppendMessageParams) (*domain.Message, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessageService) ListForTicket(ctx context.Context, ticketID uuid.UUID, caller domain.Caller) ([]*domain.Message, error) {
	args := m.Called(ctx, ticketID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

// EventPublisher is a mock implementation of ports.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(event domain.Event) {
	m.Called(event)
}
