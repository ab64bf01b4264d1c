package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/dto"
	"github.com/GlebRadaev/ebookmarket/internal/service/accountservice"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/GlebRadaev/ebookmarket/pkg/utils"
	"github.com/GlebRadaev/ebookmarket/pkg/validate"
)

type Service interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateSubscriptionTier(ctx context.Context, userID string, tier domain.SubscriptionTier) (*domain.User, error)
	CreditBalance(ctx context.Context, userID string, delta float64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, nickname, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, password, confirm string) error
	DeleteAccount(ctx context.Context, userID, sessionID string) error
}

type AccountHandler struct {
	accountService Service
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Me godoc
//
//	@Summary		Get current user
//	@Description	Profile, balance and subscription tier of the authenticated user
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.UserResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/me [get]
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.accountService.GetUser(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Change nickname and email of the authenticated user
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateProfileRequestDTO	true	"Profile"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		409		{object}	utils.Response	"Email already registered"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Router			/api/user/profile [put]
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.accountService.UpdateProfile(r.Context(), auth.UserIDFromContext(r.Context()), req.Nickname, req.Email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// ChangePassword godoc
//
//	@Summary		Change password
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ChangePasswordRequestDTO	true	"Passwords"
//	@Success		200		{object}	dto.MessageResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Wrong current password"
//	@Failure		422		{object}	utils.Response	"Passwords do not match or too short"
//	@Router			/api/user/password [put]
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	err := h.accountService.ChangePassword(r.Context(), auth.UserIDFromContext(r.Context()), req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Password updated"})
}

// DeleteAccount godoc
//
//	@Summary		Delete account
//	@Description	Ends the current session. Listings and purchases are kept.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.MessageResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.accountService.DeleteAccount(ctx, auth.UserIDFromContext(ctx), auth.SessionIDFromContext(ctx)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Account deleted"})
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, accountservice.ErrPasswordMismatch),
		errors.Is(err, accountservice.ErrPasswordTooShort),
		errors.Is(err, accountservice.ErrInvalidProfile),
		errors.Is(err, accountservice.ErrInvalidTier):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
