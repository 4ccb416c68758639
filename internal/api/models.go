package api

import (
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
)

// UserResponse is the public view of an account. The password hash never
// leaves the service.
type UserResponse struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:     u.ID.Hex(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Date:   u.Date,
	}
}
