package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

func createTestUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(domain.UserRegistrationParams{
		FullName: "Test Attendant",
		Email:    email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NoError(t, NewUserRepository(testPool).Insert(context.Background(), user))
	return user
}

func createTestTicket(t *testing.T, session string) *domain.Ticket {
	t.Helper()
	ticket := domain.NewTicket(&session, nil, nil)
	require.NoError(t, NewTicketRepository(testPool).Insert(context.Background(), ticket))
	return ticket
}

func TestTicketRepositoryInsertAndGet(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	created := createTestTicket(t, "sess-1")

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, domain.StatusWaiting, found.Status)
	require.NotNil(t, found.VisitorSessionID)
	assert.Equal(t, "sess-1", *found.VisitorSessionID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepositoryLatestByVisitorSession(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	first := createTestTicket(t, "sess-1")
	time.Sleep(10 * time.Millisecond)
	second := createTestTicket(t, "sess-1")
	_ = first

	found, err := repo.LatestByVisitorSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	_, err = repo.LatestByVisitorSession(ctx, "sess-unknown")
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepositoryTake(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	attendant := createTestUser(t, "take@example.com")

	t.Run("waiting ticket is taken", func(t *testing.T) {
		ticket := createTestTicket(t, "sess-take")

		taken, err := repo.Take(ctx, ticket.ID, attendant.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, taken.Status)
		require.NotNil(t, taken.AssignedTo)
		assert.Equal(t, attendant.ID, *taken.AssignedTo)
	})

	t.Run("second take fails with no state change", func(t *testing.T) {
		ticket := createTestTicket(t, "sess-take-2")
		other := createTestUser(t, "other@example.com")

		_, err := repo.Take(ctx, ticket.ID, attendant.ID)
		require.NoError(t, err)

		_, err = repo.Take(ctx, ticket.ID, other.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketUnavailable)

		found, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, attendant.ID, *found.AssignedTo)
	})

	t.Run("missing ticket fails identically", func(t *testing.T) {
		_, err := repo.Take(ctx, uuid.New(), attendant.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketUnavailable)
	})
}

// TestTicketRepositoryTakeRace drives concurrent takes against one
// waiting ticket; the conditional update must let exactly one through.
func TestTicketRepositoryTakeRace(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	const contenders = 8
	attendants := make([]*domain.User, contenders)
	for i := range attendants {
		attendants[i] = createTestUser(t, uuid.NewString()+"@example.com")
	}
	ticket := createTestTicket(t, "sess-race")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		won    int
		winner uuid.UUID
	)
	for _, attendant := range attendants {
		wg.Add(1)
		go func(attendantID uuid.UUID) {
			defer wg.Done()
			if _, err := repo.Take(ctx, ticket.ID, attendantID); err == nil {
				mu.Lock()
				won++
				winner = attendantID
				mu.Unlock()
			}
		}(attendant.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, won)

	found, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, found.Status)
	require.NotNil(t, found.AssignedTo)
	assert.Equal(t, winner, *found.AssignedTo)
}

func TestTicketRepositoryClose(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	attendant := createTestUser(t, "close@example.com")
	stranger := createTestUser(t, "stranger@example.com")

	t.Run("owner closes own ticket", func(t *testing.T) {
		ticket := createTestTicket(t, "sess-close")
		_, err := repo.Take(ctx, ticket.ID, attendant.ID)
		require.NoError(t, err)

		closed, err := repo.Close(ctx, ticket.ID, &attendant.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusClosed, closed.Status)
		assert.Equal(t, attendant.ID, *closed.AssignedTo)
	})

	t.Run("non-owner close fails with no state change", func(t *testing.T) {
		ticket := createTestTicket(t, "sess-close-2")
		_, err := repo.Take(ctx, ticket.ID, attendant.ID)
		require.NoError(t, err)

		_, err = repo.Close(ctx, ticket.ID, &stranger.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketUnavailable)

		found, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, found.Status)
	})

	t.Run("admin close skips ownership", func(t *testing.T) {
		ticket := createTestTicket(t, "sess-close-3")
		_, err := repo.Take(ctx, ticket.ID, attendant.ID)
		require.NoError(t, err)

		closed, err := repo.Close(ctx, ticket.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusClosed, closed.Status)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		ticket := createTestTicket(t, "sess-close-4")
		_, err := repo.Close(ctx, ticket.ID, nil)
		require.NoError(t, err)

		_, err = repo.Close(ctx, ticket.ID, nil)
		assert.ErrorIs(t, err, apperrors.ErrTicketUnavailable)
	})
}

func TestTicketRepositoryList(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)
	subjectRepo := NewSubjectRepository(testPool)
	attendant := createTestUser(t, "list@example.com")

	billing, err := domain.NewSubject("Billing", 1)
	require.NoError(t, err)
	require.NoError(t, subjectRepo.Insert(ctx, billing))

	first := createTestTicket(t, "sess-a")
	time.Sleep(10 * time.Millisecond)

	scoped := domain.NewTicket(ptr("sess-b"), nil, &billing.ID)
	require.NoError(t, repo.Insert(ctx, scoped))
	time.Sleep(10 * time.Millisecond)

	taken := createTestTicket(t, "sess-c")
	_, err = repo.Take(ctx, taken.ID, attendant.ID)
	require.NoError(t, err)

	t.Run("status filter with ascending order", func(t *testing.T) {
		waiting := domain.StatusWaiting
		tickets, err := repo.List(ctx, ports.TicketFilter{Status: &waiting})
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, first.ID, tickets[0].ID)
		assert.Equal(t, scoped.ID, tickets[1].ID)
	})

	t.Run("subject scope", func(t *testing.T) {
		waiting := domain.StatusWaiting
		tickets, err := repo.List(ctx, ports.TicketFilter{
			Status:     &waiting,
			SubjectIDs: []uuid.UUID{billing.ID},
		})
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, scoped.ID, tickets[0].ID)
	})

	t.Run("assigned filter", func(t *testing.T) {
		tickets, err := repo.List(ctx, ports.TicketFilter{AssignedTo: &attendant.ID})
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, taken.ID, tickets[0].ID)
	})
}

func TestTicketRepositoryCountWaitingUpTo(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	first := createTestTicket(t, "sess-1")
	time.Sleep(10 * time.Millisecond)
	second := createTestTicket(t, "sess-2")

	position, err := repo.CountWaitingUpTo(ctx, first.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, 1, position)

	position, err = repo.CountWaitingUpTo(ctx, second.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, 2, position)
}

func ptr(s string) *string {
	return &s
}
