package domain

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
	MaxFullNameLength = 255
	MaxEmailLength    = 255
)

// PresenceStatus is an attendant's self-reported availability.
type PresenceStatus string

const (
	PresenceAvailable PresenceStatus = "available"
	PresenceBusy      PresenceStatus = "busy"
	PresenceAway      PresenceStatus = "away"
)

// IsValid reports whether p is a known presence status.
func (p PresenceStatus) IsValid() bool {
	switch p {
	case PresenceAvailable, PresenceBusy, PresenceAway:
		return true
	}
	return false
}

// User is an attendant or admin account. Visitors have no account;
// they are correlated by session token only.
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	HashedPassword string
	Role           Role
	Status         PresenceStatus
	SubjectIDs     []uuid.UUID
	CreatedAt      time.Time
}

// UserRegistrationParams holds parameters for account registration.
type UserRegistrationParams struct {
	FullName string
	Email    string
	Password string
}

// Validate validates registration parameters field by field.
func (p *UserRegistrationParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.FullName == "" {
		errs.Add("name", "Name is required")
	} else if len(p.FullName) > MaxFullNameLength {
		errs.Add("name", "Name must be 255 characters or less")
	}

	if p.Email == "" {
		errs.Add("email", "Email is required")
	} else if len(p.Email) > MaxEmailLength {
		errs.Add("email", "Email must be 255 characters or less")
	} else if !isValidEmail(p.Email) {
		errs.Add("email", "Invalid email format")
	}

	if len(p.Password) < MinPasswordLength {
		errs.Add("password", "Password must be at least 6 characters long")
	} else if len(p.Password) > MaxPasswordLength {
		errs.Add("password", "Password must be 128 characters or less")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
	return err == nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return "", apperrors.ErrPasswordTooWeak
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewUser creates an attendant account with validated parameters.
// Admin accounts are provisioned out of band; registration never
// grants the admin role.
func NewUser(params UserRegistrationParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:             uuid.New(),
		FullName:       params.FullName,
		Email:          params.Email,
		HashedPassword: hashedPassword,
		Role:           RoleAttendant,
		Status:         PresenceAvailable,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// Caller builds the request identity for this account.
func (u *User) Caller() Caller {
	id := u.ID
	return Caller{UserID: &id, Role: u.Role}
}
