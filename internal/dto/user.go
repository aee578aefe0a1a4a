package dto

import (
	"time"

	"github.com/yukikurage/task-management-services/internal/models"
)

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,min=1,max=100"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,max=72,strongpwd"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserParams carries the :userId path parameter of the identity routes.
type UserParams struct {
	UserID uint64 `uri:"userId" binding:"required,gt=0"`
}

// UserDTO is the public view of a user. The password hash never leaves the
// identity service.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
