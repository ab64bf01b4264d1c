package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/dto"
	balanceservice "github.com/GlebRadaev/ebookmarket/internal/service/balanceservice"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/GlebRadaev/ebookmarket/pkg/inflight"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
	"github.com/GlebRadaev/ebookmarket/pkg/utils"
)

const withdrawForm = "withdraw"

type Service interface {
	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)
	Withdraw(ctx context.Context, userID string, amount float64, method, account string) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID string) ([]domain.Withdrawal, error)
}

type BalanceHandler struct {
	balanceService Service
	guard          *inflight.Guard
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		guard:          inflight.New(),
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Current balance and the total amount withdrawn by the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance and withdrawn total"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current:   balance.Current,
		Withdrawn: balance.Withdrawn,
	})
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Debit the balance and queue a payout through the chosen method.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO		true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawalResponseDTO	"Withdrawal queued"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		409		{object}	utils.Response				"Submission already in progress"
//	@Failure		422		{object}	utils.Response				"Invalid amount, method or account"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	release, err := h.guard.Acquire(inflight.Key(userID, withdrawForm))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	defer release()

	withdrawal, err := h.balanceService.Withdraw(r.Context(), userID, req.Amount, req.Method, req.Account)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalResponse(*withdrawal))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	Withdrawals of the authenticated user, newest first
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawals history"
//	@Success		204	{object}	utils.Response				"Withdrawals not found"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *BalanceHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	withdrawals, err := h.balanceService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.NewWithdrawalResponse(wd)
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, balanceservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, inflight.ErrInFlight):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, balanceservice.ErrInvalidAmount),
		errors.Is(err, balanceservice.ErrBelowMinimum),
		errors.Is(err, balanceservice.ErrInvalidAccount),
		errors.Is(err, payment.ErrMethodRequired),
		errors.Is(err, payment.ErrUnsupportedMethod):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
