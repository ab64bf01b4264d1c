package dto

import (
	"time"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

type BalanceResponseDTO struct {
	Current   float64 `json:"current" example:"500.5"`
	Withdrawn float64 `json:"withdrawn" example:"42"`
}

type WithdrawRequestDTO struct {
	Amount  float64 `json:"amount" example:"25"`
	Method  string  `json:"method" example:"stripe"`
	Account string  `json:"account,omitempty" example:"4242424242424242"`
}

type WithdrawalResponseDTO struct {
	ID          string     `json:"id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Amount      float64    `json:"amount" example:"25"`
	Method      string     `json:"method" example:"stripe"`
	Status      string     `json:"status" example:"PENDING"`
	RequestedAt time.Time  `json:"requestedAt" example:"2024-03-10T16:09:57Z"`
	ProcessedAt *time.Time `json:"processedAt,omitempty" example:"2024-03-10T16:10:02Z"`
}

func NewWithdrawalResponse(w domain.Withdrawal) WithdrawalResponseDTO {
	return WithdrawalResponseDTO{
		ID:          w.ID,
		Amount:      w.Amount,
		Method:      w.Method,
		Status:      w.Status,
		RequestedAt: w.RequestedAt,
		ProcessedAt: w.ProcessedAt,
	}
}
