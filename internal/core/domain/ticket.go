package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the possible states of a ticket.
type TicketStatus string

const (
	StatusWaiting    TicketStatus = "waiting"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
)

// IsValid reports whether s is one of the known statuses.
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a ticket may move from s to next.
// Transitions only move forward: waiting -> in_progress -> closed.
// A closed ticket never reopens and an in-progress ticket never
// returns to the waiting queue.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	switch s {
	case StatusWaiting:
		return next == StatusInProgress || next == StatusClosed
	case StatusInProgress:
		return next == StatusClosed
	default:
		return false
	}
}

// Ticket is one visitor support request and its lifecycle.
type Ticket struct {
	ID               uuid.UUID
	Status           TicketStatus
	AssignedTo       *uuid.UUID
	VisitorSessionID *string
	VisitorName      *string
	SubjectID        *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTicket creates a ticket entering the waiting queue. All tickets
// originate from visitors; the attendant side only takes and closes.
func NewTicket(visitorSessionID, visitorName *string, subjectID *uuid.UUID) *Ticket {
	now := time.Now().UTC()
	return &Ticket{
		ID:               uuid.New(),
		Status:           StatusWaiting,
		VisitorSessionID: visitorSessionID,
		VisitorName:      visitorName,
		SubjectID:        subjectID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsAssignedTo reports whether the ticket is owned by the given attendant.
func (t *Ticket) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// AccessibleBy is the access gate for a ticket's message transcript.
// Rules are evaluated in order, first match wins:
//  1. admins may always access;
//  2. the assigned attendant may access;
//  3. a visitor presenting the ticket's own session token may access;
//  4. everyone else is denied.
func (t *Ticket) AccessibleBy(c Caller) bool {
	if c.Role == RoleAdmin {
		return true
	}
	if c.UserID != nil && t.IsAssignedTo(*c.UserID) {
		return true
	}
	if c.VisitorSessionID != "" && t.VisitorSessionID != nil && *t.VisitorSessionID == c.VisitorSessionID {
		return true
	}
	return false
}
