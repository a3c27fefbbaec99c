package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/http/middleware"
	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

// callerFrom builds the request identity: authenticated claims when
// present, otherwise an anonymous caller carrying the visitor session.
func callerFrom(r *http.Request, sessionID string) domain.Caller {
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		userID := claims.UserID
		return domain.Caller{UserID: &userID, Role: claims.Role, VisitorSessionID: sessionID}
	}
	return domain.Anonymous(sessionID)
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError(err, "Invalid "+name)
	}
	return id, nil
}

// ticketResponse is the wire shape for tickets. The visitor session
// token is never echoed back; it is the visitor's secret.
type ticketResponse struct {
	ID          uuid.UUID           `json:"id"`
	Status      domain.TicketStatus `json:"status"`
	AssignedTo  *uuid.UUID          `json:"assignedTo,omitempty"`
	VisitorName *string             `json:"visitorName,omitempty"`
	SubjectID   *uuid.UUID          `json:"subjectId,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Position    int                 `json:"position,omitempty"`
}

func toTicketResponse(ticket *domain.Ticket, position int) ticketResponse {
	return ticketResponse{
		ID:          ticket.ID,
		Status:      ticket.Status,
		AssignedTo:  ticket.AssignedTo,
		VisitorName: ticket.VisitorName,
		SubjectID:   ticket.SubjectID,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		Position:    position,
	}
}

func toTicketResponses(tickets []*domain.Ticket) []ticketResponse {
	out := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, toTicketResponse(ticket, 0))
	}
	return out
}

// userResponse is the wire shape for accounts. The password hash never
// leaves the server.
type userResponse struct {
	ID         uuid.UUID             `json:"id"`
	FullName   string                `json:"fullName"`
	Email      string                `json:"email"`
	Role       domain.Role           `json:"role"`
	Status     domain.PresenceStatus `json:"status"`
	SubjectIDs []uuid.UUID           `json:"subjectIds"`
	CreatedAt  time.Time             `json:"createdAt"`
}

func toUserResponse(user *domain.User) userResponse {
	subjectIDs := user.SubjectIDs
	if subjectIDs == nil {
		subjectIDs = []uuid.UUID{}
	}
	return userResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		SubjectIDs: subjectIDs,
		CreatedAt:  user.CreatedAt,
	}
}
