package kvrepo

import (
	"context"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/kvstore"
)

type UserRepository struct {
	users       *collection[domain.User]
	withdrawals *collection[domain.Withdrawal]
}

func newUserRepository(users *collection[domain.User], withdrawals *collection[domain.Withdrawal]) *UserRepository {
	return &UserRepository{users: users, withdrawals: withdrawals}
}

func (r *UserRepository) find(ctx context.Context, match func(u domain.User) bool) (*domain.User, error) {
	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if match(u) {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// FindByEmail matches the address exactly, case included.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == userID })
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := r.users.update(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		return append(users, *user), nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update rewrites profile fields and the subscription tier. Balance is changed only via UpdateBalance.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	var updated domain.User
	err := r.users.update(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := -1
		for i, u := range users {
			if u.ID == user.ID {
				idx = i
			} else if u.Email == user.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		if idx < 0 {
			return nil, domain.ErrNotAuthenticated
		}
		users[idx].Nickname = user.Nickname
		users[idx].Email = user.Email
		users[idx].PasswordHash = user.PasswordHash
		users[idx].Subscription = user.Subscription
		updated = users[idx]
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetBalance reports the stored balance and the total of withdrawals that did not fail.
func (r *UserRepository) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	withdrawals, err := r.withdrawals.load(ctx)
	if err != nil {
		return nil, err
	}
	balance := &domain.Balance{UserID: userID, Current: user.Balance}
	for _, w := range withdrawals {
		if w.UserID == userID && w.Status != domain.WithdrawalFailed {
			balance.Withdrawn += w.Amount
		}
	}
	return balance, nil
}

// LockBalance reads the balance. Exclusion comes from the unit of work that
// TxManager serialises.
func (r *UserRepository) LockBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	return r.GetBalance(ctx, userID)
}

// UpdateBalance adds delta to the stored balance. Negative results are allowed.
func (r *UserRepository) UpdateBalance(ctx context.Context, userID string, delta float64) (*domain.Balance, error) {
	balance := &domain.Balance{UserID: userID}
	err := r.users.update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].Balance += delta
				balance.Current = users[i].Balance
				return users, nil
			}
		}
		return nil, domain.ErrNotAuthenticated
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

type SessionRepository struct {
	store *kvstore.Store
}

func NewSessionRepository(store *kvstore.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	return r.store.Write(ctx, sessionKeyPrefix+session.ID, session)
}

func (r *SessionRepository) FindSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	var session domain.Session
	found, err := r.store.Read(ctx, sessionKeyPrefix+sessionID, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.store.Remove(ctx, sessionKeyPrefix+sessionID)
}
