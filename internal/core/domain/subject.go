package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

// Subject is a routing category for tickets. Waiting tickets carrying
// a subject are only visible to attendants assigned that subject.
type Subject struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSubject creates an active subject with a trimmed, non-empty name.
func NewSubject(name string, position int) (*Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrSubjectNameNeeded
	}
	return &Subject{
		ID:        uuid.New(),
		Name:      name,
		Position:  position,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SubjectUpdate is a partial update; nil fields are left untouched.
type SubjectUpdate struct {
	Name     *string
	Position *int
	Active   *bool
}

// Empty reports whether the update changes nothing.
func (u SubjectUpdate) Empty() bool {
	return u.Name == nil && u.Position == nil && u.Active == nil
}
