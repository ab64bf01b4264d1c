package subscriptionservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/account"
	"github.com/GlebRadaev/ebookmarket/internal/metrics"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
)

var (
	ErrUnknownPlan     = errors.New("unknown subscription plan")
	ErrPaymentDeclined = payment.ErrDeclined
)

var plans = []domain.Plan{
	{
		Tier:        domain.TierFree,
		Name:        "Free",
		Price:       0,
		EbooksLimit: 1,
		Features:    []string{"Create 1 e-book", "Basic AI models", "Standard cover designs", "Community support"},
	},
	{
		Tier:        domain.TierBasic,
		Name:        "Basic",
		Price:       5,
		EbooksLimit: 2,
		Features:    []string{"Create 2 e-books", "Advanced AI models", "Premium cover designs", "Priority support", "Analytics dashboard"},
	},
	{
		Tier:        domain.TierPremium,
		Name:        "Premium",
		Price:       15,
		EbooksLimit: 0,
		Features: []string{
			"Unlimited e-books", "All AI models", "Custom cover designs", "24/7 priority support",
			"Advanced analytics", "Marketing tools", "Featured listings",
		},
	},
}

// PlanFor returns the plan of tier.
func PlanFor(tier domain.SubscriptionTier) (domain.Plan, bool) {
	for _, p := range plans {
		if p.Tier == tier {
			return p, true
		}
	}
	return domain.Plan{}, false
}

// EbooksLimit is the number of listings a tier may create; 0 means unlimited.
func EbooksLimit(tier domain.SubscriptionTier) int {
	plan, ok := PlanFor(tier)
	if !ok {
		return plans[0].EbooksLimit
	}
	return plan.EbooksLimit
}

type Service struct {
	accounts account.Service
	payments payment.Processor
}

func New(accounts account.Service, payments payment.Processor) *Service {
	return &Service{
		accounts: accounts,
		payments: payments,
	}
}

func (s *Service) Plans() []domain.Plan {
	result := make([]domain.Plan, len(plans))
	copy(result, plans)
	return result
}

// Subscribe moves the user to tier, charging the monthly price for paid plans.
func (s *Service) Subscribe(ctx context.Context, userID string, tier domain.SubscriptionTier, method string) (*domain.User, error) {
	plan, ok := PlanFor(tier)
	if !ok {
		return nil, ErrUnknownPlan
	}
	if _, err := s.accounts.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	if plan.Price > 0 {
		_, err := s.payments.Charge(ctx, payment.ChargeRequest{
			UserID:      userID,
			Amount:      plan.Price,
			Currency:    string(domain.CurrencyUSD),
			Method:      method,
			Description: "subscription " + string(plan.Tier),
		})
		if err != nil {
			zap.L().Info("subscription payment failed", zap.String("userID", userID), zap.Error(err))
			if errors.Is(err, payment.ErrDeclined) {
				return nil, fmt.Errorf("%w: %s plan", ErrPaymentDeclined, plan.Tier)
			}
			return nil, err
		}
	}

	user, err := s.accounts.UpdateSubscriptionTier(ctx, userID, tier)
	if err != nil {
		return nil, err
	}
	metrics.RecordSubscription(string(tier))
	return user, nil
}

// Cancel downgrades the user to the free tier.
func (s *Service) Cancel(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.accounts.UpdateSubscriptionTier(ctx, userID, domain.TierFree)
	if err != nil {
		return nil, err
	}
	metrics.RecordSubscription(string(domain.TierFree))
	return user, nil
}
