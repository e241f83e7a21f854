// Package payment holds the simulated payment gateways used by checkout.
// Each gateway validates method-specific input synchronously and then charges
// after a fixed delay, so a real provider can replace it behind Gateway.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Method string

const (
	MethodMobileMoney Method = "mobile-money"
	MethodCard        Method = "card"
)

var (
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrInvalidAmount     = errors.New("charge amount must be positive")
	ErrMissingReceipt    = errors.New("gateway returned no receipt")
)

// ParseMethod accepts the canonical names plus the "mpesa" alias used by the
// storefront client.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mobile-money", "mpesa", "m-pesa":
		return MethodMobileMoney, nil
	case "card":
		return MethodCard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
}

func (m Method) String() string {
	return string(m)
}

// Input carries what the customer typed. Only the fields of the selected
// method are read.
type Input struct {
	Phone      string `json:"phone,omitempty" example:"0712345678"`
	CardNumber string `json:"cardNumber,omitempty" example:"4111 1111 1111 1111"`
	CardHolder string `json:"cardHolder,omitempty" example:"Jane Runner"`
	Expiry     string `json:"expiry,omitempty" example:"12/29"`
	CVV        string `json:"cvv,omitempty" example:"123"`
}

type ChargeRequest struct {
	SessionID string
	Method    Method
	Amount    int64
	Input     Input
}

// Receipt is what a successful charge returns. Account is masked.
type Receipt struct {
	Reference   string    `json:"reference"`
	Method      Method    `json:"method"`
	Amount      int64     `json:"amount"`
	Account     string    `json:"account"`
	CompletedAt time.Time `json:"completedAt"`
}

// FieldError is a validation failure the customer can fix by editing one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Gateway is the contract checkout relies on.
type Gateway interface {
	Method() Method
	Validate(in Input) error
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
}

// Registry maps each method to the gateway serving it.
type Registry map[Method]Gateway

func NewRegistry(gateways ...Gateway) Registry {
	r := make(Registry, len(gateways))
	for _, g := range gateways {
		r[g.Method()] = g
	}
	return r
}

func (r Registry) Lookup(m Method) (Gateway, error) {
	g, ok := r[m]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, m)
	}
	return g, nil
}

// Methods lists the registered methods in a stable order.
func (r Registry) Methods() []Method {
	out := make([]Method, 0, len(r))
	for _, m := range []Method{MethodMobileMoney, MethodCard} {
		if _, ok := r[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
