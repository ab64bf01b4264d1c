package dto

import "github.com/GlebRadaev/ebookmarket/internal/domain"

type PlanResponseDTO struct {
	Tier        string   `json:"tier" example:"basic"`
	Name        string   `json:"name" example:"Basic"`
	Price       float64  `json:"price" example:"5"`
	EbooksLimit int      `json:"ebooksLimit" example:"2"`
	Features    []string `json:"features"`
}

func NewPlanResponse(p domain.Plan) PlanResponseDTO {
	return PlanResponseDTO{
		Tier:        string(p.Tier),
		Name:        p.Name,
		Price:       p.Price,
		EbooksLimit: p.EbooksLimit,
		Features:    p.Features,
	}
}

type SubscribeRequestDTO struct {
	Tier   string `json:"tier" validate:"required,oneof=free basic premium" example:"premium"`
	Method string `json:"method" example:"paypal"`
}
