package http

import (
	"net/http"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/http/middleware"
	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/validation"
	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (r updateStatusRequest) Validate() error {
	return validation.New().
		Require("status", r.Status, "status is required").
		OneOf("status", r.Status,
			string(domain.PresenceAvailable),
			string(domain.PresenceBusy),
			string(domain.PresenceAway)).
		Error()
}

// MeHandler serves the authenticated account's own state.
type MeHandler struct {
	users  ports.UserService
	errors *ErrorHandler
}

func NewMeHandler(users ports.UserService, errors *ErrorHandler) *MeHandler {
	return &MeHandler{users: users, errors: errors}
}

func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.errors.Handle(w, r, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.users.Me(r.Context(), claims.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *MeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.errors.Handle(w, r, apperrors.ErrUnauthorized)
		return
	}

	req, err := validation.DecodeAndValidate[updateStatusRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.users.UpdateStatus(r.Context(), claims.UserID, domain.PresenceStatus(req.Status)); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
