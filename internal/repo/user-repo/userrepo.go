package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
)

const uniqueViolation = "23505"

const selectUser = `SELECT id, nickname, email, password_hash, balance, subscription, created_at FROM users`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.Balance, &user.Subscription, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return repo.findOne(ctx, selectUser+" WHERE email = $1", email)
}

func (repo *Repository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return repo.findOne(ctx, selectUser+" WHERE id = $1", userID)
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, nickname, email, password_hash, balance, subscription, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := repo.db.Exec(ctx, query, user.ID, user.Nickname, user.Email, user.PasswordHash, user.Balance, user.Subscription, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Update rewrites profile fields and the subscription tier. Balance is changed only via UpdateBalance.
func (repo *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		UPDATE users
		SET nickname = $1, email = $2, password_hash = $3, subscription = $4
		WHERE id = $5
		RETURNING balance
	`
	err := repo.db.QueryRow(ctx, query, user.Nickname, user.Email, user.PasswordHash, user.Subscription, user.ID).Scan(&user.Balance)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotAuthenticated
		}
		zap.L().Error("can't update user", zap.Error(err))
		return nil, err
	}
	return user, nil
}
