package models

import (
	"regexp"
	"strings"
	"time"

	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	pinPattern   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// User is a registered account. Only hashes of the password and PIN are kept.
type User struct {
	Username     id.Username
	Email        string
	PasswordHash string
	PINHash      string
	CreatedAt    time.Time
}

// RegisterRequest is the input for POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	PIN      string `json:"pin"`

	parsedUsername id.Username
}

func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.PIN = strings.TrimSpace(r.PIN)
}

// Validate follows the order Size -> Required -> Syntax. The password is
// taken as sent.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.Email) > 255 {
		return dErrors.New(dErrors.CodeValidation, "email must be 255 characters or less")
	}
	if len(r.Password) > maxPasswordBytes {
		return dErrors.New(dErrors.CodeValidation, "password must be 72 bytes or less")
	}
	if len(r.PIN) > 6 {
		return dErrors.New(dErrors.CodeValidation, "PIN must be 4-6 digits")
	}

	if r.Username == "" || r.Password == "" || r.Email == "" || r.PIN == "" {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: username, password, email, pin")
	}

	username, err := id.ParseUsername(r.Username)
	if err != nil {
		return err
	}
	if !emailPattern.MatchString(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "invalid email format")
	}
	if !pinPattern.MatchString(r.PIN) {
		return dErrors.New(dErrors.CodeValidation, "PIN must be 4-6 digits")
	}

	r.parsedUsername = username
	return nil
}

func (r *RegisterRequest) ParsedUsername() id.Username { return r.parsedUsername }
