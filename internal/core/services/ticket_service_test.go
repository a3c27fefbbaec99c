package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/mocks"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTicketServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates waiting ticket and publishes update", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		userRepo := new(mocks.UserRepository)
		publisher := new(mocks.EventPublisher)
		svc := NewTicketService(ticketRepo, userRepo, publisher, testLogger())

		ticketRepo.On("Insert", ctx, mock.AnythingOfType("*domain.Ticket")).Return(nil)
		ticketRepo.On("CountWaitingUpTo", ctx, mock.AnythingOfType("time.Time")).Return(3, nil)
		publisher.On("Publish", domain.NewTicketsUpdateEvent()).Return()

		ticket, position, err := svc.Create(ctx, ports.CreateTicketParams{
			VisitorSessionID: "sess-1",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusWaiting, ticket.Status)
		assert.Equal(t, 3, position)
		ticketRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects missing session id", func(t *testing.T) {
		svc := NewTicketService(new(mocks.TicketRepository), new(mocks.UserRepository), new(mocks.EventPublisher), testLogger())

		_, _, err := svc.Create(ctx, ports.CreateTicketParams{})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
	})
}

func TestTicketServiceTake(t *testing.T) {
	ctx := context.Background()
	attendantID := uuid.New()
	attendant := domain.Caller{UserID: &attendantID, Role: domain.RoleAttendant}

	t.Run("assigns waiting ticket to attendant", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		publisher := new(mocks.EventPublisher)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), publisher, testLogger())

		ticketID := uuid.New()
		taken := &domain.Ticket{ID: ticketID, Status: domain.StatusInProgress, AssignedTo: &attendantID}
		ticketRepo.On("Take", ctx, ticketID, attendantID).Return(taken, nil)
		publisher.On("Publish", domain.NewTicketsUpdateEvent()).Return()

		ticket, err := svc.Take(ctx, ticketID, attendant)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, ticket.Status)
		publisher.AssertExpectations(t)
	})

	t.Run("lost race surfaces unavailable without publishing", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		publisher := new(mocks.EventPublisher)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), publisher, testLogger())

		ticketID := uuid.New()
		ticketRepo.On("Take", ctx, ticketID, attendantID).Return(nil, apperrors.ErrTicketUnavailable)

		_, err := svc.Take(ctx, ticketID, attendant)

		assert.ErrorIs(t, err, apperrors.ErrTicketUnavailable)
		publisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("anonymous caller rejected", func(t *testing.T) {
		svc := NewTicketService(new(mocks.TicketRepository), new(mocks.UserRepository), new(mocks.EventPublisher), testLogger())

		_, err := svc.Take(ctx, uuid.New(), domain.Anonymous("sess-1"))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestTicketServiceClose(t *testing.T) {
	ctx := context.Background()

	t.Run("attendant close requires ownership", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		publisher := new(mocks.EventPublisher)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), publisher, testLogger())

		attendantID := uuid.New()
		ticketID := uuid.New()
		closed := &domain.Ticket{ID: ticketID, Status: domain.StatusClosed, AssignedTo: &attendantID}
		ticketRepo.On("Close", ctx, ticketID, &attendantID).Return(closed, nil)
		publisher.On("Publish", domain.NewTicketsUpdateEvent()).Return()

		ticket, err := svc.Close(ctx, ticketID, domain.Caller{UserID: &attendantID, Role: domain.RoleAttendant})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusClosed, ticket.Status)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("admin close skips ownership", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		publisher := new(mocks.EventPublisher)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), publisher, testLogger())

		adminID := uuid.New()
		ticketID := uuid.New()
		closed := &domain.Ticket{ID: ticketID, Status: domain.StatusClosed}
		ticketRepo.On("Close", ctx, ticketID, (*uuid.UUID)(nil)).Return(closed, nil)
		publisher.On("Publish", domain.NewTicketsUpdateEvent()).Return()

		_, err := svc.Close(ctx, ticketID, domain.Caller{UserID: &adminID, Role: domain.RoleAdmin})

		require.NoError(t, err)
		ticketRepo.AssertExpectations(t)
	})
}

func TestTicketServiceList(t *testing.T) {
	ctx := context.Background()
	waiting := domain.StatusWaiting

	t.Run("non-admin with empty subject set sees empty queue", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewTicketService(ticketRepo, userRepo, new(mocks.EventPublisher), testLogger())

		attendantID := uuid.New()
		userRepo.On("SubjectIDs", ctx, attendantID).Return([]uuid.UUID{}, nil)

		tickets, err := svc.List(ctx, ports.ListTicketsParams{
			Status: &waiting,
			Caller: domain.Caller{UserID: &attendantID, Role: domain.RoleAttendant},
		})

		require.NoError(t, err)
		assert.Empty(t, tickets)
		ticketRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("non-admin waiting queue is subject scoped", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewTicketService(ticketRepo, userRepo, new(mocks.EventPublisher), testLogger())

		attendantID := uuid.New()
		subjects := []uuid.UUID{uuid.New(), uuid.New()}
		userRepo.On("SubjectIDs", ctx, attendantID).Return(subjects, nil)
		ticketRepo.On("List", ctx, ports.TicketFilter{
			Status:     &waiting,
			SubjectIDs: subjects,
		}).Return([]*domain.Ticket{{ID: uuid.New()}}, nil)

		tickets, err := svc.List(ctx, ports.ListTicketsParams{
			Status: &waiting,
			Caller: domain.Caller{UserID: &attendantID, Role: domain.RoleAttendant},
		})

		require.NoError(t, err)
		assert.Len(t, tickets, 1)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("admin sees full queue", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewTicketService(ticketRepo, userRepo, new(mocks.EventPublisher), testLogger())

		adminID := uuid.New()
		ticketRepo.On("List", ctx, ports.TicketFilter{Status: &waiting}).
			Return([]*domain.Ticket{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

		tickets, err := svc.List(ctx, ports.ListTicketsParams{
			Status: &waiting,
			Caller: domain.Caller{UserID: &adminID, Role: domain.RoleAdmin},
		})

		require.NoError(t, err)
		assert.Len(t, tickets, 2)
		userRepo.AssertNotCalled(t, "SubjectIDs", mock.Anything, mock.Anything)
	})

	t.Run("mine filter binds assigned_to", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), new(mocks.EventPublisher), testLogger())

		attendantID := uuid.New()
		ticketRepo.On("List", ctx, ports.TicketFilter{AssignedTo: &attendantID}).
			Return([]*domain.Ticket{}, nil)

		_, err := svc.List(ctx, ports.ListTicketsParams{
			AssignedToMe: true,
			Caller:       domain.Caller{UserID: &attendantID, Role: domain.RoleAttendant},
		})

		require.NoError(t, err)
		ticketRepo.AssertExpectations(t)
	})
}

func TestTicketServicePosition(t *testing.T) {
	ctx := context.Background()

	t.Run("waiting ticket counts itself", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), new(mocks.EventPublisher), testLogger())

		createdAt := time.Now().UTC()
		ticketRepo.On("CountWaitingUpTo", ctx, createdAt).Return(2, nil)

		position, err := svc.Position(ctx, &domain.Ticket{Status: domain.StatusWaiting, CreatedAt: createdAt})

		require.NoError(t, err)
		assert.Equal(t, 2, position)
	})

	t.Run("non-waiting ticket has no position", func(t *testing.T) {
		ticketRepo := new(mocks.TicketRepository)
		svc := NewTicketService(ticketRepo, new(mocks.UserRepository), new(mocks.EventPublisher), testLogger())

		position, err := svc.Position(ctx, &domain.Ticket{Status: domain.StatusInProgress})

		require.NoError(t, err)
		assert.Equal(t, 0, position)
		ticketRepo.AssertNotCalled(t, "CountWaitingUpTo", mock.Anything, mock.Anything)
	})
}
