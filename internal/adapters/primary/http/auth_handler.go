package http

import (
	"net/http"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/validation"
	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate defers to the domain's registration rules.
func (r registerRequest) Validate() error {
	params := r.params()
	return params.Validate()
}

func (r registerRequest) params() domain.UserRegistrationParams {
	return domain.UserRegistrationParams{
		FullName: r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.New().
		Require("email", r.Email, "email is required").
		Require("password", r.Password, "password is required").
		Error()
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth   ports.AuthService
	errors *ErrorHandler
}

func NewAuthHandler(auth ports.AuthService, errors *ErrorHandler) *AuthHandler {
	return &AuthHandler{auth: auth, errors: errors}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[registerRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), req.params())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteCreated(w, authResponse{Token: result.Token, User: toUserResponse(result.User)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[loginRequest](r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{Token: result.Token, User: toUserResponse(result.User)})
}
