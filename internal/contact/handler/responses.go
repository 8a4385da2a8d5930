package handler

import (
	"time"

	"safeher/internal/contact/models"
)

type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Relation  string    `json:"relation"`
	Phone     string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateContactResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Contact ContactResponse `json:"contact"`
}

type ContactListResponse struct {
	Username string            `json:"username"`
	Contacts []ContactResponse `json:"contacts"`
	Count    int               `json:"count"`
}

func FromContact(c *models.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Relation:  c.Relation,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func FromContacts(username string, contacts []models.Contact) *ContactListResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, FromContact(&contacts[i]))
	}
	return &ContactListResponse{Username: username, Contacts: out, Count: len(out)}
}
