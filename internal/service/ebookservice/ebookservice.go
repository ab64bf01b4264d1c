package ebookservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/account"
	"github.com/GlebRadaev/ebookmarket/internal/metrics"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
	"github.com/GlebRadaev/ebookmarket/internal/service/subscriptionservice"
	"github.com/GlebRadaev/ebookmarket/pkg/generator"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
)

const (
	RecipientAuthor  = "author"
	RecipientSession = "session"
)

var (
	ErrNotFound         = errors.New("ebook not found")
	ErrSelfPurchase     = errors.New("cannot purchase your own ebook")
	ErrAlreadyOwned     = domain.ErrAlreadyOwned
	ErrInvalidForm      = errors.New("invalid ebook form")
	ErrTierLimitReached = errors.New("subscription tier ebook limit reached")
	ErrGenerationFailed = generator.ErrGenerationFailed
	ErrPaymentDeclined  = payment.ErrDeclined
)

var (
	Categories  = []string{"Fiction", "Non-Fiction", "Business", "Self-Help", "Technology", "Science", "History", "Biography", "Romance", "Mystery"}
	AIModels    = []string{"gpt4", "claude", "gemini"}
	CoverStyles = []string{"minimalist", "artistic", "professional", "vintage"}
)

type EbookRepo interface {
	FindAll(ctx context.Context) ([]domain.Ebook, error)
	FindByID(ctx context.Context, ebookID string) (*domain.Ebook, error)
	FindByAuthor(ctx context.Context, authorID string) ([]domain.Ebook, error)
	FindPurchasedBy(ctx context.Context, userID string) ([]domain.Ebook, error)
	Create(ctx context.Context, ebook *domain.Ebook) (*domain.Ebook, error)
	IncrementDownloads(ctx context.Context, ebookID string) error
	Count(ctx context.Context) (int, error)
}

type PurchaseRepo interface {
	CreatePurchase(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error)
	HasPurchase(ctx context.Context, userID, ebookID string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type Options struct {
	CommissionRate      float64
	CommissionRecipient string
	EnforceTierLimits   bool
}

type Service struct {
	ebookRepo    EbookRepo
	purchaseRepo PurchaseRepo
	accounts     account.Service
	txManager    pg.TXManager
	payments     payment.Processor
	generator    generator.ContentGenerator
	opts         Options
}

func New(
	ebookRepo EbookRepo,
	purchaseRepo PurchaseRepo,
	accounts account.Service,
	txManager pg.TXManager,
	payments payment.Processor,
	gen generator.ContentGenerator,
	opts Options,
) *Service {
	return &Service{
		ebookRepo:    ebookRepo,
		purchaseRepo: purchaseRepo,
		accounts:     accounts,
		txManager:    txManager,
		payments:     payments,
		generator:    gen,
		opts:         opts,
	}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Ebook, error) {
	ebooks, err := s.ebookRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to list ebooks", zap.Error(err))
		return nil, err
	}
	return ebooks, nil
}

func (s *Service) MyCreated(ctx context.Context, userID string) ([]domain.Ebook, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.ebookRepo.FindByAuthor(ctx, userID)
}

func (s *Service) MyPurchased(ctx context.Context, userID string) ([]domain.Ebook, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.ebookRepo.FindPurchasedBy(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, ebookID string) (*domain.Ebook, error) {
	ebook, err := s.ebookRepo.FindByID(ctx, ebookID)
	if err != nil {
		zap.L().Error("failed to find ebook", zap.String("ebookID", ebookID), zap.Error(err))
		return nil, err
	}
	if ebook == nil {
		return nil, ErrNotFound
	}
	return ebook, nil
}

// Search matches query case-insensitively against title, description and
// category. An empty query returns the whole catalogue.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Ebook, error) {
	ebooks, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	if query == "" {
		return ebooks, nil
	}
	result := []domain.Ebook{}
	for _, e := range ebooks {
		if strings.Contains(strings.ToLower(e.Title), query) ||
			strings.Contains(strings.ToLower(e.Description), query) ||
			strings.Contains(strings.ToLower(e.Category), query) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Popular orders the catalogue by downloads, keeping insertion order for ties.
func (s *Service) Popular(ctx context.Context, limit int) ([]domain.Ebook, error) {
	ebooks, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ebooks, func(i, j int) bool {
		return ebooks[i].Downloads > ebooks[j].Downloads
	})
	if limit > 0 && len(ebooks) > limit {
		ebooks = ebooks[:limit]
	}
	return ebooks, nil
}

func (s *Service) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	user, err := s.accounts.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	created, err := s.ebookRepo.FindByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	purchased, err := s.purchaseRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.ebookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Stats{
		Created:   len(created),
		Purchased: purchased,
		Total:     total,
		Balance:   user.Balance,
	}, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func validateForm(form domain.EbookForm) error {
	var problems []string
	if strings.TrimSpace(form.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(form.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(form.ShortDescription) == "" {
		problems = append(problems, "short description is required")
	}
	if form.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if form.Currency != domain.CurrencyUSD && form.Currency != domain.CurrencyEUR {
		problems = append(problems, "currency must be USD or EUR")
	}
	if !contains(Categories, form.Category) {
		problems = append(problems, "unknown category")
	}
	if !contains(AIModels, form.AIModel) {
		problems = append(problems, "unknown ai model")
	}
	if !contains(CoverStyles, form.CoverStyle) {
		problems = append(problems, "unknown cover style")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(problems, ", "))
	}
	return nil
}

// Create generates the content for form and lists it under authorID.
func (s *Service) Create(ctx context.Context, form domain.EbookForm, authorID string) (*domain.Ebook, error) {
	if authorID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	author, err := s.accounts.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := validateForm(form); err != nil {
		return nil, err
	}

	if s.opts.EnforceTierLimits {
		if limit := subscriptionservice.EbooksLimit(author.Subscription); limit > 0 {
			created, err := s.ebookRepo.FindByAuthor(ctx, authorID)
			if err != nil {
				return nil, err
			}
			if len(created) >= limit {
				return nil, ErrTierLimitReached
			}
		}
	}

	content, err := s.generator.Generate(ctx, generator.Request{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		AIModel:     form.AIModel,
		CoverStyle:  form.CoverStyle,
	})
	if err != nil {
		zap.L().Error("content generation failed", zap.String("title", form.Title), zap.Error(err))
		if errors.Is(err, generator.ErrGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	ebook := &domain.Ebook{
		ID:               uuid.NewString(),
		Title:            form.Title,
		Description:      form.Description,
		ShortDescription: form.ShortDescription,
		CoverImage:       content.CoverImage,
		Price:            form.Price,
		Currency:         form.Currency,
		AuthorID:         author.ID,
		AuthorName:       author.Nickname,
		CreatedAt:        time.Now().UTC(),
		Downloads:        0,
		Category:         form.Category,
		PDFURL:           content.PDFURL,
	}
	created, err := s.ebookRepo.Create(ctx, ebook)
	if err != nil {
		zap.L().Error("failed to save ebook", zap.Error(err))
		return nil, err
	}

	metrics.RecordEbookCreated(created.Category)
	zap.L().Info("ebook created", zap.String("ebookID", created.ID), zap.String("authorID", authorID))
	return created, nil
}

// Purchase charges the buyer and, in one unit of work, records the receipt,
// counts the download and credits the commission. The charge is refunded when
// that unit of work fails, including when a concurrent purchase of the same
// ebook recorded its receipt first.
func (s *Service) Purchase(ctx context.Context, ebookID, buyerID, method string) (*domain.Purchase, error) {
	if buyerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if _, err := s.accounts.GetUser(ctx, buyerID); err != nil {
		return nil, err
	}
	ebook, err := s.GetByID(ctx, ebookID)
	if err != nil {
		return nil, err
	}
	if ebook.AuthorID == buyerID {
		return nil, ErrSelfPurchase
	}
	owned, err := s.purchaseRepo.HasPurchase(ctx, buyerID, ebookID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, ErrAlreadyOwned
	}

	receipt, err := s.payments.Charge(ctx, payment.ChargeRequest{
		UserID:      buyerID,
		Amount:      ebook.Price,
		Currency:    string(ebook.Currency),
		Method:      method,
		Description: "ebook " + ebook.ID,
	})
	if err != nil {
		zap.L().Info("purchase payment failed", zap.String("ebookID", ebookID), zap.Error(err))
		if errors.Is(err, payment.ErrDeclined) {
			return nil, fmt.Errorf("%w: ebook %s", ErrPaymentDeclined, ebookID)
		}
		return nil, err
	}

	purchase := &domain.Purchase{
		ID:           uuid.NewString(),
		EbookID:      ebook.ID,
		UserID:       buyerID,
		PurchaseDate: time.Now().UTC(),
		Price:        ebook.Price,
		Currency:     ebook.Currency,
	}
	commission := ebook.Price * s.opts.CommissionRate
	var credited float64

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.purchaseRepo.CreatePurchase(ctx, purchase); err != nil {
			return err
		}
		if err := s.ebookRepo.IncrementDownloads(ctx, ebook.ID); err != nil {
			return err
		}

		recipient := ebook.AuthorID
		if s.opts.CommissionRecipient == RecipientSession {
			recipient = buyerID
		}
		_, err := s.accounts.CreditBalance(ctx, recipient, commission)
		if errors.Is(err, domain.ErrNotAuthenticated) {
			zap.L().Warn("commission recipient has no account", zap.String("recipient", recipient), zap.String("ebookID", ebook.ID))
			return nil
		}
		if err != nil {
			return err
		}
		credited = commission
		return nil
	})
	if err != nil {
		zap.L().Error("failed to complete purchase", zap.String("ebookID", ebookID), zap.Error(err))
		s.refund(ctx, receipt, buyerID)
		return nil, err
	}

	metrics.RecordPurchase(string(ebook.Currency), credited)
	zap.L().Info("ebook purchased", zap.String("ebookID", ebook.ID), zap.String("buyerID", buyerID))
	return purchase, nil
}

func (s *Service) refund(ctx context.Context, receipt *payment.Receipt, buyerID string) {
	if err := s.payments.Refund(context.WithoutCancel(ctx), receipt); err != nil {
		zap.L().Error("failed to refund purchase", zap.String("buyerID", buyerID), zap.Error(err))
		return
	}
	zap.L().Info("purchase refunded", zap.String("buyerID", buyerID), zap.String("receipt", receipt.ID))
}

// Seed lists the sample catalogue when it is empty.
func (s *Service) Seed(ctx context.Context) error {
	count, err := s.ebookRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, e := range SampleEbooks() {
		ebook := e
		if _, err := s.ebookRepo.Create(ctx, &ebook); err != nil {
			return fmt.Errorf("failed to seed ebook %s: %w", ebook.ID, err)
		}
	}
	zap.L().Info("sample catalogue seeded")
	return nil
}
