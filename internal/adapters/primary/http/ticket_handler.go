package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/validation"
	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

type createTicketRequest struct {
	SessionID   string     `json:"sessionId"`
	VisitorName *string    `json:"visitorName"`
	SubjectID   *uuid.UUID `json:"subjectId"`
}

func (r createTicketRequest) Validate() error {
	return validation.New().
		Require("sessionId", r.SessionID, "sessionId is required").
		Error()
}

type updateTicketRequest struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

func (r updateTicketRequest) Validate() error {
	if r.Action == "" && r.Status == "" {
		return validation.New().
			AddError("action", "action or status is required").
			Error()
	}
	return validation.New().
		OneOf("action", r.Action, "take", "close").
		OneOf("status", r.Status, string(domain.StatusClosed)).
		Error()
}

// TicketHandler serves the ticket lifecycle endpoints.
type TicketHandler struct {
	tickets ports.TicketService
	errors  *ErrorHandler
}

func NewTicketHandler(tickets ports.TicketService, errors *ErrorHandler) *TicketHandler {
	return &TicketHandler{tickets: tickets, errors: errors}
}

// Create opens a ticket. Unauthenticated: the visitor session token is
// the only correlation handle.
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[createTicketRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	ticket, position, err := h.tickets.Create(r.Context(), ports.CreateTicketParams{
		VisitorSessionID: req.SessionID,
		VisitorName:      req.VisitorName,
		SubjectID:        req.SubjectID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteCreated(w, toTicketResponse(ticket, position))
}

// BySession returns the visitor's most recent ticket with its queue
// position while it waits.
func (h *TicketHandler) BySession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	ticket, position, err := h.tickets.ByVisitorSession(r.Context(), sessionID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketResponse(ticket, position))
}

// List serves the attendant/admin queue view.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	params := ports.ListTicketsParams{
		Caller:       callerFrom(r, ""),
		AssignedToMe: r.URL.Query().Get("assignedTo") == "me",
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TicketStatus(raw)
		if !status.IsValid() {
			h.errors.Handle(w, r, apperrors.ErrInvalidStatus)
			return
		}
		params.Status = &status
	}

	tickets, err := h.tickets.List(r.Context(), params)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketResponses(tickets))
}

// Update applies a take or close transition.
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	ticketID, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[updateTicketRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	caller := callerFrom(r, "")

	var ticket *domain.Ticket
	switch {
	case req.Action == "take":
		ticket, err = h.tickets.Take(r.Context(), ticketID, caller)
	case req.Action == "close", req.Status == string(domain.StatusClosed):
		ticket, err = h.tickets.Close(r.Context(), ticketID, caller)
	default:
		err = apperrors.ErrInvalidAction
	}
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketResponse(ticket, 0))
}
