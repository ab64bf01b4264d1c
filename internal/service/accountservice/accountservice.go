package accountservice

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
)

const minPasswordLength = 6

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrInvalidTier      = errors.New("unknown subscription tier")
	ErrInvalidProfile   = errors.New("nickname and email are required")
)

type Repo interface {
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

type BalanceRepo interface {
	UpdateBalance(ctx context.Context, userID string, delta float64) (*domain.Balance, error)
}

type SessionRepo interface {
	DeleteSession(ctx context.Context, sessionID string) error
}

type Service struct {
	userRepo    Repo
	balanceRepo BalanceRepo
	sessionRepo SessionRepo
	hashService auth.HashServiceInterface
}

func New(userRepo Repo, balanceRepo BalanceRepo, sessionRepo SessionRepo, hashService auth.HashServiceInterface) *Service {
	return &Service{
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
		sessionRepo: sessionRepo,
		hashService: hashService,
	}
}

func (s *Service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to find user", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

// UpdateSubscriptionTier switches the tier in either direction without charging.
func (s *Service) UpdateSubscriptionTier(ctx context.Context, userID string, tier domain.SubscriptionTier) (*domain.User, error) {
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Subscription = tier
	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		zap.L().Error("failed to update subscription", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("subscription updated", zap.String("userID", userID), zap.String("tier", string(tier)))
	return updated, nil
}

// CreditBalance adds delta to the balance. Negative deltas debit and the
// result is not clamped at zero.
func (s *Service) CreditBalance(ctx context.Context, userID string, delta float64) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.balanceRepo.UpdateBalance(ctx, userID, delta)
	if err != nil {
		zap.L().Error("failed to update balance", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	user.Balance = balance.Current
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, nickname, email string) (*domain.User, error) {
	nickname = strings.TrimSpace(nickname)
	email = strings.TrimSpace(email)
	if nickname == "" || email == "" {
		return nil, ErrInvalidProfile
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.ErrDuplicateEmail
		}
	}
	user.Nickname = nickname
	user.Email = email
	return s.userRepo.Update(ctx, user)
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hashService.ComparePassword(user.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}
	hash, err := s.hashService.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if _, err := s.userRepo.Update(ctx, user); err != nil {
		zap.L().Error("failed to update password", zap.String("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteAccount ends the caller's session. The user record is kept so
// purchases and listings stay consistent.
func (s *Service) DeleteAccount(ctx context.Context, userID, sessionID string) error {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		zap.L().Error("failed to delete session", zap.String("userID", userID), zap.Error(err))
		return err
	}
	zap.L().Info("account closed", zap.String("userID", userID))
	return nil
}
