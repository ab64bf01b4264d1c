package dto

import (
	"time"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

type UserResponseDTO struct {
	ID           string    `json:"id" example:"6f1c2a7e-8c1f-4c2b-9a51-0d8c3f7e2b11"`
	Nickname     string    `json:"nickname" example:"reader"`
	Email        string    `json:"email" example:"reader@example.com"`
	Balance      float64   `json:"balance" example:"20.99"`
	Subscription string    `json:"subscription" example:"free"`
	CreatedAt    time.Time `json:"createdAt" example:"2024-01-15T10:00:00Z"`
}

func NewUserResponse(user *domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:           user.ID,
		Nickname:     user.Nickname,
		Email:        user.Email,
		Balance:      user.Balance,
		Subscription: string(user.Subscription),
		CreatedAt:    user.CreatedAt,
	}
}

type UpdateProfileRequestDTO struct {
	Nickname string `json:"nickname" validate:"required,max=50" example:"writer"`
	Email    string `json:"email" validate:"required,email" example:"writer@example.com"`
}

type ChangePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"secret1"`
	NewPassword     string `json:"newPassword" validate:"required" example:"secret2"`
	ConfirmPassword string `json:"confirmPassword" validate:"required" example:"secret2"`
}
