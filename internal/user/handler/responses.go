package handler

import "safeher/internal/user/models"

type RegisterResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// UserResponse carries only the public fields of a user.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func FromUser(u *models.User) *UserResponse {
	return &UserResponse{Username: u.Username.String(), Email: u.Email}
}
