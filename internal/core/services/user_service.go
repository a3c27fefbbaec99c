package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

// UserService exposes account state to its owner and the collaborator
// roster to admins.
type UserService struct {
	users  ports.UserRepository
	logger *slog.Logger
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(users ports.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Me returns the account together with its assigned subject set.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subjectIDs, err := s.users.SubjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.SubjectIDs = subjectIDs

	return user, nil
}

// UpdateStatus records the attendant's self-reported availability.
func (s *UserService) UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.PresenceStatus) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidPresence
	}
	return s.users.UpdateStatus(ctx, userID, status)
}

func (s *UserService) ListCollaborators(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// AssignSubjects replaces a collaborator's subject set.
func (s *UserService) AssignSubjects(ctx context.Context, userID uuid.UUID, subjectIDs []uuid.UUID) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.users.SetSubjects(ctx, userID, subjectIDs); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "collaborator subjects updated",
		slog.String("user_id", userID.String()),
		slog.Int("subject_count", len(subjectIDs)))

	return s.Me(ctx, userID)
}
