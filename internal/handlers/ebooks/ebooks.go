package ebooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/dto"
	"github.com/GlebRadaev/ebookmarket/internal/service/ebookservice"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/GlebRadaev/ebookmarket/pkg/inflight"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
	"github.com/GlebRadaev/ebookmarket/pkg/utils"
	"github.com/GlebRadaev/ebookmarket/pkg/validate"
)

const (
	createForm   = "create-ebook"
	purchaseForm = "purchase"

	defaultPopularLimit = 4
)

type Service interface {
	Search(ctx context.Context, query string) ([]domain.Ebook, error)
	Popular(ctx context.Context, limit int) ([]domain.Ebook, error)
	GetByID(ctx context.Context, ebookID string) (*domain.Ebook, error)
	MyCreated(ctx context.Context, userID string) ([]domain.Ebook, error)
	MyPurchased(ctx context.Context, userID string) ([]domain.Ebook, error)
	Stats(ctx context.Context, userID string) (*domain.Stats, error)
	Create(ctx context.Context, form domain.EbookForm, authorID string) (*domain.Ebook, error)
	Purchase(ctx context.Context, ebookID, buyerID, method string) (*domain.Purchase, error)
}

type EbookHandler struct {
	ebookService Service
	guard        *inflight.Guard
}

func New(ebookService Service) *EbookHandler {
	return &EbookHandler{
		ebookService: ebookService,
		guard:        inflight.New(),
	}
}

// List godoc
//
//	@Summary		Browse the catalogue
//	@Description	Case-insensitive search over title, description and category. An empty query returns every listing.
//	@Tags			Ebooks
//	@Produce		json
//	@Param			q	query		string	false	"Search query"
//	@Success		200	{array}		dto.EbookResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ebooks [get]
func (h *EbookHandler) List(w http.ResponseWriter, r *http.Request) {
	ebooks, err := h.ebookService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewEbookListResponse(ebooks))
}

// Popular godoc
//
//	@Summary		Most downloaded e-books
//	@Tags			Ebooks
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of listings"	default(4)
//	@Success		200		{array}		dto.EbookResponseDTO
//	@Failure		422		{object}	utils.Response	"Invalid limit"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/ebooks/popular [get]
func (h *EbookHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := defaultPopularLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid limit")
			return
		}
		limit = parsed
	}

	ebooks, err := h.ebookService.Popular(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewEbookListResponse(ebooks))
}

// Get godoc
//
//	@Summary		E-book details
//	@Tags			Ebooks
//	@Produce		json
//	@Param			id	path		string	true	"E-book id"
//	@Success		200	{object}	dto.EbookResponseDTO
//	@Failure		404	{object}	utils.Response	"Ebook not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/ebooks/{id} [get]
func (h *EbookHandler) Get(w http.ResponseWriter, r *http.Request) {
	ebook, err := h.ebookService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewEbookResponse(*ebook))
}

// Create godoc
//
//	@Summary		Publish a generated e-book
//	@Description	Generates the content and lists the e-book under the authenticated user.
//	@Tags			Ebooks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateEbookRequestDTO	true	"E-book form"
//	@Success		201		{object}	dto.EbookResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Tier limit reached"
//	@Failure		409		{object}	utils.Response	"Submission already in progress"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		502		{object}	utils.Response	"Content generation failed"
//	@Router			/api/ebooks [post]
func (h *EbookHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateEbookRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	release, err := h.guard.Acquire(inflight.Key(userID, createForm))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	defer release()

	ebook, err := h.ebookService.Create(r.Context(), req.Form(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewEbookResponse(*ebook))
}

// Purchase godoc
//
//	@Summary		Buy an e-book
//	@Description	Charges the buyer, records the receipt and credits the commission.
//	@Tags			Ebooks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"E-book id"
//	@Param			request	body		dto.PurchaseRequestDTO	true	"Payment method"
//	@Success		200		{object}	dto.PurchaseResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Payment declined"
//	@Failure		404		{object}	utils.Response	"Ebook not found"
//	@Failure		409		{object}	utils.Response	"Already purchased or own listing"
//	@Failure		422		{object}	utils.Response	"Payment method required"
//	@Router			/api/ebooks/{id}/purchase [post]
func (h *EbookHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	ebookID := chi.URLParam(r, "id")

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	release, err := h.guard.Acquire(inflight.Key(userID, purchaseForm))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	defer release()

	purchase, err := h.ebookService.Purchase(r.Context(), ebookID, userID, req.Method)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := dto.PurchaseResponseDTO{
		ID:           purchase.ID,
		EbookID:      purchase.EbookID,
		PurchaseDate: purchase.PurchaseDate,
		Price:        purchase.Price,
		Currency:     string(purchase.Currency),
	}
	if ebook, err := h.ebookService.GetByID(r.Context(), ebookID); err == nil {
		response.PDFURL = ebook.PDFURL
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Created godoc
//
//	@Summary		E-books created by the current user
//	@Tags			Ebooks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.EbookResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/ebooks/created [get]
func (h *EbookHandler) Created(w http.ResponseWriter, r *http.Request) {
	ebooks, err := h.ebookService.MyCreated(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewEbookListResponse(ebooks))
}

// Purchased godoc
//
//	@Summary		E-books purchased by the current user
//	@Tags			Ebooks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.EbookResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/ebooks/purchased [get]
func (h *EbookHandler) Purchased(w http.ResponseWriter, r *http.Request) {
	ebooks, err := h.ebookService.MyPurchased(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewEbookListResponse(ebooks))
}

// Dashboard godoc
//
//	@Summary		Dashboard of the current user
//	@Description	Listing counts, balance and the most popular e-books.
//	@Tags			Ebooks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/dashboard [get]
func (h *EbookHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.ebookService.Stats(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	popular, err := h.ebookService.Popular(ctx, defaultPopularLimit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DashboardResponseDTO{
		Stats: dto.StatsResponseDTO{
			Created:   stats.Created,
			Purchased: stats.Purchased,
			Total:     stats.Total,
			Balance:   stats.Balance,
		},
		Popular: dto.NewEbookListResponse(popular),
	})
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ebookservice.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ebookservice.ErrPaymentDeclined):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ebookservice.ErrTierLimitReached):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ebookservice.ErrAlreadyOwned),
		errors.Is(err, ebookservice.ErrSelfPurchase),
		errors.Is(err, inflight.ErrInFlight):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ebookservice.ErrInvalidForm),
		errors.Is(err, payment.ErrMethodRequired),
		errors.Is(err, payment.ErrUnsupportedMethod):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ebookservice.ErrGenerationFailed):
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
