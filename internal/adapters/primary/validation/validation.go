// Package validation provides request decoding and field validation
// helpers shared by the HTTP handlers.
package validation

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

// Validatable is implemented by request DTOs that self-validate.
type Validatable interface {
	Validate() error
}

// DecodeAndValidate decodes the JSON body into T and runs its
// validation.
func DecodeAndValidate[T Validatable](r *http.Request) (T, error) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, apperrors.NewBadRequestError(err, "Invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return payload, err
	}
	return payload, nil
}

// Validator accumulates field errors for a request DTO.
type Validator struct {
	errs *apperrors.ValidationErrors
}

func New() *Validator {
	return &Validator{errs: apperrors.NewValidationErrors()}
}

func (v *Validator) Require(field, value, message string) *Validator {
	if value == "" {
		v.errs.Add(field, message)
	}
	return v
}

func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.errs.Add(field, fmt.Sprintf("must be %d characters or less", max))
	}
	return v
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.errs.Add(field, fmt.Sprintf("must be one of: %v", allowed))
	return v
}

func (v *Validator) AddError(field, message string) *Validator {
	v.errs.Add(field, message)
	return v
}

// Error returns the accumulated validation errors, or nil.
func (v *Validator) Error() error {
	if v.errs.HasErrors() {
		return v.errs
	}
	return nil
}
