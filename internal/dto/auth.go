package dto

type RegisterRequestDTO struct {
	Nickname string `json:"nickname" validate:"required,max=50" example:"reader"`
	Email    string `json:"email" validate:"required,email" example:"reader@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret1"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"reader@example.com"`
	Password string `json:"password" validate:"required" example:"secret1"`
}

type AuthResponseDTO struct {
	Message string          `json:"message" example:"User successfully registered"`
	Token   string          `json:"token"`
	User    UserResponseDTO `json:"user"`
}

type MessageResponseDTO struct {
	Message string `json:"message" example:"ok"`
}
