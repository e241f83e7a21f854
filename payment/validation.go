package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Safaricom prefix blocks, with an optional 254, +254 or 0 prefix.
var safaricomPattern = regexp.MustCompile(`^(?:254|\+254|0)?([71](?:(?:0[0-8])|(?:[12][0-9])|(?:9[0-9])|(?:4[0-36-9])|(?:5[0-7])|(?:6[0-4])|(?:8[0-2]))[0-9]{6})$`)

const (
	msgInvalidPhone   = "Please enter a valid Safaricom number"
	msgHolderRequired = "Cardholder name is required"
	msgInvalidCard    = "Please enter a valid card number"
	msgInvalidExpiry  = "Please enter a valid expiry date (MM/YY)"
	msgCardExpired    = "Card has expired"
	msgInvalidCVV     = "CVV must be 3 digits"

	maxCardDigits = 16
	minCardDigits = 13
	cvvDigits     = 3
)

// NormalizePhone returns the number as 254XXXXXXXXX when it is a valid
// Safaricom number. Surrounding whitespace makes the number invalid.
func NormalizePhone(raw string) (string, bool) {
	m := safaricomPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return "254" + m[1], true
}

func ValidatePhone(raw string) error {
	if _, ok := NormalizePhone(raw); !ok {
		return &FieldError{Field: "phone", Message: msgInvalidPhone}
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber keeps up to 16 digits and groups them in blocks of four.
func FormatCardNumber(raw string) string {
	d := digitsOnly(raw)
	if len(d) > maxCardDigits {
		d = d[:maxCardDigits]
	}
	groups := make([]string, 0, 4)
	for i := 0; i < len(d); i += 4 {
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		groups = append(groups, d[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry lays digits out as MM/YY, inserting the slash once two digits
// are present.
func FormatExpiry(raw string) string {
	d := digitsOnly(raw)
	if len(d) < 2 {
		return d
	}
	end := len(d)
	if end > 4 {
		end = 4
	}
	return d[:2] + "/" + d[2:end]
}

func FormatCVV(raw string) string {
	d := digitsOnly(raw)
	if len(d) > cvvDigits {
		d = d[:cvvDigits]
	}
	return d
}

// FormattedCard is the presentation form of card input.
type FormattedCard struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func FormatCardInput(in Input) FormattedCard {
	return FormattedCard{
		CardNumber: FormatCardNumber(in.CardNumber),
		Expiry:     FormatExpiry(in.Expiry),
		CVV:        FormatCVV(in.CVV),
	}
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// parseExpiry reads MM/YY (or MMYY) and returns the month and four digit year.
func parseExpiry(raw string) (month, year int, ok bool) {
	d := digitsOnly(raw)
	if len(d) != 4 {
		return 0, 0, false
	}
	month, _ = strconv.Atoi(d[:2])
	yy, _ := strconv.Atoi(d[2:])
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return month, 2000 + yy, true
}

// ValidateCard checks holder, number (length and Luhn), expiry and CVV.
// A card stays valid through the last day of its expiry month.
func ValidateCard(in Input, now time.Time) error {
	if strings.TrimSpace(in.CardHolder) == "" {
		return &FieldError{Field: "cardHolder", Message: msgHolderRequired}
	}

	number := digitsOnly(in.CardNumber)
	if len(number) < minCardDigits || len(number) > maxCardDigits || !luhnValid(number) {
		return &FieldError{Field: "cardNumber", Message: msgInvalidCard}
	}

	month, year, ok := parseExpiry(in.Expiry)
	if !ok {
		return &FieldError{Field: "expiry", Message: msgInvalidExpiry}
	}
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return &FieldError{Field: "expiry", Message: msgCardExpired}
	}

	cvv := strings.TrimSpace(in.CVV)
	if len(cvv) != cvvDigits || digitsOnly(cvv) != cvv {
		return &FieldError{Field: "cvv", Message: msgInvalidCVV}
	}
	return nil
}

func maskPhone(msisdn string) string {
	if len(msisdn) < 9 {
		return msisdn
	}
	return msisdn[:6] + "***" + msisdn[len(msisdn)-3:]
}

func maskCard(raw string) string {
	d := digitsOnly(raw)
	if len(d) < 4 {
		return "****"
	}
	return "**** " + d[len(d)-4:]
}
