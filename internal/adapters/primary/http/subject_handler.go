package http

import (
	"net/http"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/validation"
	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

type createSubjectRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func (r createSubjectRequest) Validate() error {
	return validation.New().
		Require("name", r.Name, "name is required").
		MaxLength("name", r.Name, 255).
		Error()
}

type updateSubjectRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
	Active   *bool   `json:"active"`
}

func (r updateSubjectRequest) Validate() error {
	v := validation.New()
	if r.Name != nil {
		v.Require("name", *r.Name, "name cannot be empty").
			MaxLength("name", *r.Name, 255)
	}
	return v.Error()
}

// SubjectHandler serves the subject catalog. Listing active subjects
// is public so visitors can pick one before opening a ticket; the
// write operations are admin-only.
type SubjectHandler struct {
	subjects ports.SubjectService
	errors   *ErrorHandler
}

func NewSubjectHandler(subjects ports.SubjectService, errors *ErrorHandler) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, errors: errors}
}

// ListActive serves the public catalog.
func (h *SubjectHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context(), true)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	WriteList(w, subjects)
}

// ListAll serves the admin catalog including inactive subjects.
func (h *SubjectHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context(), false)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	WriteList(w, subjects)
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[createSubjectRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	subject, err := h.subjects.Create(r.Context(), req.Name, req.Position)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteCreated(w, subject)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "subjectID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[updateSubjectRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	subject, err := h.subjects.Update(r.Context(), id, domain.SubjectUpdate{
		Name:     req.Name,
		Position: req.Position,
		Active:   req.Active,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "subjectID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.subjects.Delete(r.Context(), id); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
