package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/dto"
	"github.com/GlebRadaev/ebookmarket/internal/service/subscriptionservice"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/GlebRadaev/ebookmarket/pkg/inflight"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
	"github.com/GlebRadaev/ebookmarket/pkg/utils"
	"github.com/GlebRadaev/ebookmarket/pkg/validate"
)

const subscribeForm = "subscribe"

type Service interface {
	Plans() []domain.Plan
	Subscribe(ctx context.Context, userID string, tier domain.SubscriptionTier, method string) (*domain.User, error)
	Cancel(ctx context.Context, userID string) (*domain.User, error)
}

type SubscriptionHandler struct {
	subscriptionService Service
	guard               *inflight.Guard
}

func New(subscriptionService Service) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		guard:               inflight.New(),
	}
}

// Plans godoc
//
//	@Summary		Subscription plans
//	@Tags			Subscriptions
//	@Produce		json
//	@Success		200	{array}	dto.PlanResponseDTO
//	@Router			/api/subscriptions/plans [get]
func (h *SubscriptionHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans := h.subscriptionService.Plans()
	response := make([]dto.PlanResponseDTO, len(plans))
	for i, p := range plans {
		response[i] = dto.NewPlanResponse(p)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Subscribe godoc
//
//	@Summary		Change subscription tier
//	@Description	Paid tiers charge the monthly price through the chosen payment method.
//	@Tags			Subscriptions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SubscribeRequestDTO	true	"Tier and payment method"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Payment declined"
//	@Failure		409		{object}	utils.Response	"Subscription change already in progress"
//	@Failure		422		{object}	utils.Response	"Unknown plan or missing method"
//	@Router			/api/user/subscription [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.SubscribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	release, err := h.guard.Acquire(inflight.Key(userID, subscribeForm))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	defer release()

	user, err := h.subscriptionService.Subscribe(r.Context(), userID, domain.SubscriptionTier(req.Tier), req.Method)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// Cancel godoc
//
//	@Summary		Cancel subscription
//	@Description	Moves the authenticated user back to the free tier.
//	@Tags			Subscriptions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.UserResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/subscription [delete]
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, err := h.subscriptionService.Cancel(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, inflight.ErrInFlight):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, subscriptionservice.ErrPaymentDeclined):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, subscriptionservice.ErrUnknownPlan),
		errors.Is(err, payment.ErrMethodRequired),
		errors.Is(err, payment.ErrUnsupportedMethod):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
