package authservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/metrics"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type SessionRepo interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	FindSession(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type Service struct {
	userRepo    Repo
	sessionRepo SessionRepo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, sessionRepo SessionRepo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:    repo,
		sessionRepo: sessionRepo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, nickname, email, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("email", email))
		return nil, domain.ErrDuplicateEmail
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Nickname:     nickname,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
		Balance:      0,
		Subscription: domain.TierFree,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	metrics.RecordRegistration()
	zap.L().Info("user successfully registered", zap.String("userID", newUser.ID))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("userID", user.ID))
	return user, nil
}

// StartSession opens a session for userID and returns its bearer token.
func (s *Service) StartSession(ctx context.Context, userID string) (string, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		zap.L().Error("can't create session: ", zap.Error(err))
		return "", err
	}

	token, err := s.jwtService.GenerateJWT(userID, session.ID, time.Now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		zap.L().Error("can't delete session: ", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) Authorize(ctx context.Context, token string) (string, string, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrNotAuthenticated, err)
	}
	session, err := s.sessionRepo.FindSession(ctx, claims.SessionID())
	if err != nil {
		zap.L().Error("can't find session: ", zap.Error(err))
		return "", "", err
	}
	if session == nil || session.UserID != claims.UserID {
		return "", "", domain.ErrNotAuthenticated
	}
	return claims.UserID, session.ID, nil
}
