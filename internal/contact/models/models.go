package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
)

const DefaultRelation = "Emergency Contact"

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneFormatting = regexp.MustCompile(`[-()\s+]`)
	phoneDigits     = regexp.MustCompile(`^[0-9]+$`)
)

// Contact is someone to alert when the owner needs help.
type Contact struct {
	ID        id.ContactID
	Username  id.Username
	Name      string
	Relation  string
	Phone     string
	CreatedAt time.Time
}

// CreateContactRequest is the input for POST /contact.
type CreateContactRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Contact  string `json:"contact"`

	parsedUsername id.Username
	phone          string
}

func (r *CreateContactRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	r.Relation = strings.TrimSpace(r.Relation)
	r.Contact = strings.TrimSpace(r.Contact)
	if r.Relation == "" {
		r.Relation = DefaultRelation
	}
}

// Validate follows the order Size -> Required -> Syntax.
func (r *CreateContactRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if utf8.RuneCountInString(r.Name) > 100 {
		return dErrors.New(dErrors.CodeValidation, "name must be 2-100 characters")
	}
	if utf8.RuneCountInString(r.Relation) > 50 {
		return dErrors.New(dErrors.CodeValidation, "relation must be 50 characters or less")
	}
	if len(r.Contact) > 32 {
		return dErrors.New(dErrors.CodeValidation, "contact must be 10-15 digits")
	}

	if r.Username == "" || r.Name == "" || r.Contact == "" {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: username, name, contact")
	}

	username, err := id.ParseUsername(r.Username)
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Name) < 2 {
		return dErrors.New(dErrors.CodeValidation, "name must be 2-100 characters")
	}
	if !namePattern.MatchString(r.Name) {
		return dErrors.New(dErrors.CodeValidation, "name can only contain letters and spaces")
	}
	phone, err := NormalizePhone(r.Contact)
	if err != nil {
		return err
	}

	r.parsedUsername = username
	r.phone = phone
	return nil
}

func (r *CreateContactRequest) ParsedUsername() id.Username { return r.parsedUsername }

// Phone is the contact number with formatting removed.
func (r *CreateContactRequest) Phone() string { return r.phone }

// NormalizePhone strips "-", "(", ")", "+" and whitespace and requires 10-15 digits.
func NormalizePhone(raw string) (string, error) {
	clean := phoneFormatting.ReplaceAllString(raw, "")
	if clean == "" {
		return "", dErrors.New(dErrors.CodeValidation, "contact is required")
	}
	if !phoneDigits.MatchString(clean) {
		return "", dErrors.New(dErrors.CodeValidation, "contact must be numeric (with optional formatting)")
	}
	if len(clean) < 10 || len(clean) > 15 {
		return "", dErrors.New(dErrors.CodeValidation, "contact must be 10-15 digits")
	}
	return clean, nil
}
