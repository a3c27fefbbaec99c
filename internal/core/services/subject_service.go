package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

// SubjectService manages the support subject catalog. Subjects route
// tickets and scope the attendants' waiting-queue visibility.
type SubjectService struct {
	subjects ports.SubjectRepository
	logger   *slog.Logger
}

var _ ports.SubjectService = (*SubjectService)(nil)

func NewSubjectService(subjects ports.SubjectRepository, logger *slog.Logger) *SubjectService {
	return &SubjectService{subjects: subjects, logger: logger}
}

func (s *SubjectService) Create(ctx context.Context, name string, position int) (*domain.Subject, error) {
	subject, err := domain.NewSubject(name, position)
	if err != nil {
		return nil, err
	}
	if err := s.subjects.Insert(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "subject created",
		slog.String("subject_id", subject.ID.String()),
		slog.String("name", subject.Name))

	return subject, nil
}

func (s *SubjectService) List(ctx context.Context, activeOnly bool) ([]*domain.Subject, error) {
	return s.subjects.List(ctx, activeOnly)
}

func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, update domain.SubjectUpdate) (*domain.Subject, error) {
	if update.Empty() {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	return s.subjects.Update(ctx, id, update)
}

func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.subjects.Delete(ctx, id)
}
