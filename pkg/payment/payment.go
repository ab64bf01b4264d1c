package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MethodStripe = "stripe"
	MethodPayPal = "paypal"
	MethodBank   = "bank"
)

var (
	ErrMethodRequired    = errors.New("payment method required")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrDeclined          = errors.New("payment declined")
	ErrUnknownReceipt    = errors.New("unknown payment receipt")
)

type ChargeRequest struct {
	UserID      string
	Amount      float64
	Currency    string
	Method      string
	Description string
}

type PayoutRequest struct {
	WithdrawalID string
	UserID       string
	Amount       float64
	Method       string
	Account      string
}

type Receipt struct {
	ID          string
	Method      string
	Amount      float64
	ProcessedAt time.Time
}

type Processor interface {
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
	Payout(ctx context.Context, req PayoutRequest) (*Receipt, error)
	// Refund returns a charged amount to the payer.
	Refund(ctx context.Context, receipt *Receipt) error
}

var (
	chargeMethods = map[string]struct{}{MethodStripe: {}, MethodPayPal: {}}
	payoutMethods = map[string]struct{}{MethodStripe: {}, MethodPayPal: {}, MethodBank: {}}
)

func checkMethod(method string, allowed map[string]struct{}) error {
	if method == "" {
		return ErrMethodRequired
	}
	if _, ok := allowed[method]; !ok {
		return ErrUnsupportedMethod
	}
	return nil
}

func ValidatePayoutMethod(method string) error {
	return checkMethod(method, payoutMethods)
}

// Simulator approves every request with a supported method after a fixed delay.
type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if err := checkMethod(req.Method, chargeMethods); err != nil {
		return nil, err
	}
	if req.Amount < 0 {
		return nil, ErrDeclined
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	receipt := &Receipt{
		ID:          uuid.NewString(),
		Method:      req.Method,
		Amount:      req.Amount,
		ProcessedAt: time.Now(),
	}
	zap.L().Debug("payment charged", zap.String("userID", req.UserID), zap.String("receipt", receipt.ID), zap.Float64("amount", req.Amount))
	return receipt, nil
}

func (s *Simulator) Payout(ctx context.Context, req PayoutRequest) (*Receipt, error) {
	if err := checkMethod(req.Method, payoutMethods); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, ErrDeclined
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	receipt := &Receipt{
		ID:          uuid.NewString(),
		Method:      req.Method,
		Amount:      req.Amount,
		ProcessedAt: time.Now(),
	}
	zap.L().Debug("payout sent", zap.String("withdrawalID", req.WithdrawalID), zap.String("receipt", receipt.ID))
	return receipt, nil
}

func (s *Simulator) Refund(ctx context.Context, receipt *Receipt) error {
	if receipt == nil || receipt.ID == "" {
		return ErrUnknownReceipt
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	zap.L().Debug("payment refunded", zap.String("receipt", receipt.ID), zap.Float64("amount", receipt.Amount))
	return nil
}
