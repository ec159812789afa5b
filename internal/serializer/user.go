package serializer

import (
	"time"

	"github.com/rotem123456/recipe-app-api/internal/model"
)

// UserResponse is the wire representation of an account. The password
// hash never leaves the server.
type UserResponse struct {
	ID       uint      `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
	IsStaff  bool      `json:"is_staff"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewUser builds the wire representation of an account
func NewUser(user model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
		JoinedAt: user.JoinedAt,
	}
}
