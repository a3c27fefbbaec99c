package http

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler maps domain errors onto HTTP responses in one place so
// handlers never hand-roll status codes.
type ErrorHandler struct {
	logger *slog.Logger
}

func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.write(w, r, appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		}, err)
		return
	}

	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]interface{}, len(validationErrs.Errors))
		for field, messages := range validationErrs.Errors {
			details[field] = messages
		}
		h.write(w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Validation failed",
			Code:    "VALIDATION_ERROR",
			Details: details,
		}, err)
		return
	}

	status, code := h.mapDomainError(err)
	h.write(w, r, status, ErrorResponse{Error: err.Error(), Code: code}, err)
}

func (h *ErrorHandler) mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, apperrors.ErrUserExists):
		return http.StatusConflict, "USER_EXISTS"
	case errors.Is(err, apperrors.ErrTicketUnavailable):
		return http.StatusNotFound, "TICKET_UNAVAILABLE"
	case errors.Is(err, apperrors.ErrTicketNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrSubjectNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperrors.ErrEmptyMessage),
		errors.Is(err, apperrors.ErrInvalidAttachment),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInvalidAction),
		errors.Is(err, apperrors.ErrInvalidPresence),
		errors.Is(err, apperrors.ErrSubjectNameNeeded),
		errors.Is(err, apperrors.ErrNoFieldsToUpdate),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, apperrors.ErrAttachmentTooLarge):
		return http.StatusRequestEntityTooLarge, "ATTACHMENT_TOO_LARGE"
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func (h *ErrorHandler) write(w http.ResponseWriter, r *http.Request, status int, payload ErrorResponse, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()))
		// Never leak internals to the client.
		payload.Error = "An unexpected error occurred"
	}
	WriteJSON(w, status, payload)
}
