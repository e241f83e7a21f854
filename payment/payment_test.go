package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func validCard() Input {
	return Input{CardHolder: "Jane Runner", CardNumber: "4111 1111 1111 1111", Expiry: "12/29", CVV: "123"}
}

func TestValidatePhone(t *testing.T) {
	accepted := []string{"254712345678", "0712345678", "+254712345678", "712345678", "0110345678"}
	for _, n := range accepted {
		assert.NoError(t, ValidatePhone(n), n)
	}

	rejected := []string{"123456", "", "0812345678", "07123456789", "0745abc678", "254612345678", " 0722000111 ", "0722000111\n"}
	for _, n := range rejected {
		err := ValidatePhone(n)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), n)
		assert.Equal(t, "phone", fe.Field)
		assert.Equal(t, "Please enter a valid Safaricom number", fe.Message)
	}
}

func TestNormalizePhone(t *testing.T) {
	for _, in := range []string{"254712345678", "0712345678", "+254712345678"} {
		got, ok := NormalizePhone(in)
		require.True(t, ok)
		assert.Equal(t, "254712345678", got)
	}
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111-1111-1111-1111-9999"))
	assert.Equal(t, "4111 11", FormatCardNumber("4111 11"))
	assert.Equal(t, "", FormatCardNumber("abcd"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "12/3", FormatExpiry("123"))
	assert.Equal(t, "12/34", FormatExpiry("12345"))
	assert.Equal(t, "0", FormatExpiry("0"))
	assert.Equal(t, "08/27", FormatExpiry("08/27"))
}

func TestFormatCVV(t *testing.T) {
	assert.Equal(t, "123", FormatCVV("1a2b3c4"))
	assert.Equal(t, "12", FormatCVV("12"))
}

func TestValidateCard(t *testing.T) {
	require.NoError(t, ValidateCard(validCard(), fixedNow))

	tests := []struct {
		name  string
		edit  func(*Input)
		field string
	}{
		{"missing holder", func(in *Input) { in.CardHolder = "  " }, "cardHolder"},
		{"fails luhn", func(in *Input) { in.CardNumber = "4111 1111 1111 1112" }, "cardNumber"},
		{"too short", func(in *Input) { in.CardNumber = "4111 1111" }, "cardNumber"},
		{"too long", func(in *Input) { in.CardNumber = "4111 1111 1111 1111 1" }, "cardNumber"},
		{"bad month", func(in *Input) { in.Expiry = "13/29" }, "expiry"},
		{"partial expiry", func(in *Input) { in.Expiry = "12/3" }, "expiry"},
		{"expired", func(in *Input) { in.Expiry = "02/26" }, "expiry"},
		{"short cvv", func(in *Input) { in.CVV = "12" }, "cvv"},
		{"letters in cvv", func(in *Input) { in.CVV = "1a3" }, "cvv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCard()
			tt.edit(&in)
			var fe *FieldError
			require.ErrorAs(t, ValidateCard(in, fixedNow), &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestValidateCard_ValidThroughExpiryMonth(t *testing.T) {
	in := validCard()
	in.Expiry = "03/26"
	assert.NoError(t, ValidateCard(in, fixedNow))
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"mpesa": MethodMobileMoney, "mobile-money": MethodMobileMoney, "CARD": MethodCard} {
		got, err := ParseMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMethod("paypal")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(NewCardSimulator(0), NewMobileMoneySimulator(0))

	assert.Equal(t, []Method{MethodMobileMoney, MethodCard}, r.Methods())
	g, err := r.Lookup(MethodCard)
	require.NoError(t, err)
	assert.Equal(t, MethodCard, g.Method())

	_, err = NewRegistry().Lookup(MethodCard)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestSimulator_ChargeSucceedsAfterDelay(t *testing.T) {
	sim := NewMobileMoneySimulator(20 * time.Millisecond)

	start := time.Now()
	receipt, err := sim.Charge(context.Background(), ChargeRequest{
		SessionID: "s1",
		Method:    MethodMobileMoney,
		Amount:    2500,
		Input:     Input{Phone: "0712345678"},
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, int64(2500), receipt.Amount)
	assert.Equal(t, "254712***678", receipt.Account)
	assert.Regexp(t, `^MP[0-9A-F]{10}$`, receipt.Reference)
}

func TestSimulator_ChargeCancelled(t *testing.T) {
	sim := NewCardSimulator(time.Minute).WithClock(func() time.Time { return fixedNow })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Charge(ctx, ChargeRequest{Method: MethodCard, Amount: 100, Input: validCard()})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_ChargeRejectsBadRequests(t *testing.T) {
	sim := NewCardSimulator(0).WithClock(func() time.Time { return fixedNow })

	_, err := sim.Charge(context.Background(), ChargeRequest{Method: MethodCard, Amount: 0, Input: validCard()})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = sim.Charge(context.Background(), ChargeRequest{Method: MethodCard, Amount: 10, Input: Input{}})
	var fe *FieldError
	assert.ErrorAs(t, err, &fe)

	receipt, err := sim.Charge(context.Background(), ChargeRequest{Method: MethodCard, Amount: 10, Input: validCard()})
	require.NoError(t, err)
	assert.Equal(t, "**** 1111", receipt.Account)
	assert.Equal(t, fixedNow, receipt.CompletedAt)
}
