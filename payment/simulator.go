package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay matches the STK push / card authorisation wait shown to customers.
const DefaultDelay = 2 * time.Second

// Simulator stands in for a provider: it validates, waits, then succeeds.
// The wait is abandoned when the context is cancelled.
type Simulator struct {
	method   Method
	delay    time.Duration
	now      func() time.Time
	validate func(Input, time.Time) error
	account  func(Input) string
	prefix   string
}

func NewMobileMoneySimulator(delay time.Duration) *Simulator {
	return &Simulator{
		method: MethodMobileMoney,
		delay:  delay,
		now:    time.Now,
		validate: func(in Input, _ time.Time) error {
			return ValidatePhone(in.Phone)
		},
		account: func(in Input) string {
			msisdn, _ := NormalizePhone(in.Phone)
			return maskPhone(msisdn)
		},
		prefix: "MP",
	}
}

func NewCardSimulator(delay time.Duration) *Simulator {
	return &Simulator{
		method:   MethodCard,
		delay:    delay,
		now:      time.Now,
		validate: ValidateCard,
		account: func(in Input) string {
			return maskCard(in.CardNumber)
		},
		prefix: "CD",
	}
}

// WithClock replaces the time source used for expiry checks and receipts.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

func (s *Simulator) Method() Method {
	return s.method
}

func (s *Simulator) Validate(in Input) error {
	return s.validate(in, s.now())
}

func (s *Simulator) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.Validate(req.Input); err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s charge abandoned: %w", s.method, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s charge abandoned: %w", s.method, err)
	}

	return &Receipt{
		Reference:   s.reference(),
		Method:      s.method,
		Amount:      req.Amount,
		Account:     s.account(req.Input),
		CompletedAt: s.now().UTC(),
	}, nil
}

func (s *Simulator) reference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s.prefix + strings.ToUpper(id[len(id)-10:])
}
