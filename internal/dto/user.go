package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a staff user.
type CreateUserRequest struct {
	Username     string `json:"username" binding:"required,min=3"`
	Password     string `json:"password" binding:"required,min=6"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,phone"`
	Role         string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	MobileNumber *string `json:"mobileNumber" binding:"omitempty,phone"`
	Role         *string `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE"`
	Password     *string `json:"password" binding:"omitempty,min=6"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the user data returned by the API (excluding secrets).
type UserResponse struct {
	UserID       string      `json:"userId"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	MobileNumber string      `json:"mobileNumber"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
