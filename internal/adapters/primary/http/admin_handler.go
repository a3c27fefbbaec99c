package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/validation"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

type assignSubjectsRequest struct {
	SubjectIDs []uuid.UUID `json:"subjectIds"`
}

func (r assignSubjectsRequest) Validate() error {
	if r.SubjectIDs == nil {
		return validation.New().
			AddError("subjectIds", "subjectIds is required").
			Error()
	}
	return nil
}

// AdminHandler serves the collaborator roster. Subject assignments
// control which waiting tickets an attendant can see.
type AdminHandler struct {
	users  ports.UserService
	errors *ErrorHandler
}

func NewAdminHandler(users ports.UserService, errors *ErrorHandler) *AdminHandler {
	return &AdminHandler{users: users, errors: errors}
}

func (h *AdminHandler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListCollaborators(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	WriteList(w, out)
}

func (h *AdminHandler) AssignSubjects(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUIDParam(r, "userID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[assignSubjectsRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	user, err := h.users.AssignSubjects(r.Context(), userID, req.SubjectIDs)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}
