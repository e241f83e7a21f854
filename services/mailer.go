package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fitgear/fitgear-api/models"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const resendAPIURL = "https://api.resend.com/emails"

// Mailer sends the transactional emails of the storefront.
type Mailer interface {
	SendWelcome(ctx context.Context, user *models.User) error
	SendOrderConfirmation(ctx context.Context, order *models.Order, receiptPDF []byte) error
}

// ResendClient handles email sending via Resend API. Calls go through a
// circuit breaker so an outage at Resend fails fast instead of piling up
// goroutines.
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *zap.Logger
}

func NewResendClient(apiKey, from string, logger *zap.Logger) *ResendClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if from == "" {
		from = "noreply@fitgear.shop"
	}
	r := &ResendClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: resendAPIURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     logger.Named("resend"),
	}
	r.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "resend",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.log.Warn("⚠️ circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return r
}

// WithBaseURL points the client at another endpoint.
func (r *ResendClient) WithBaseURL(url string) *ResendClient {
	r.baseURL = url
	return r
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendEmail struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

func (r *ResendClient) send(ctx context.Context, email resendEmail) error {
	email.From = r.from
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = r.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("resend api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return body, nil
	})
	if err != nil {
		r.log.Error("❌ email not sent", zap.Strings("to", email.To), zap.String("subject", email.Subject), zap.Error(err))
		return err
	}
	r.log.Info("✅ email sent", zap.Strings("to", email.To), zap.String("subject", email.Subject))
	return nil
}

func (r *ResendClient) SendWelcome(ctx context.Context, user *models.User) error {
	return r.send(ctx, resendEmail{
		To:      []string{user.Email},
		Subject: "Welcome to FitGear",
		HTML:    welcomeHTML(user.Name),
	})
}

func (r *ResendClient) SendOrderConfirmation(ctx context.Context, order *models.Order, receiptPDF []byte) error {
	if order.Email == "" {
		return nil
	}
	email := resendEmail{
		To:      []string{order.Email},
		Subject: fmt.Sprintf("Your FitGear order %s", order.OrderNumber),
		HTML:    orderConfirmationHTML(order),
	}
	if len(receiptPDF) > 0 {
		email.Attachments = []resendAttachment{{
			Filename: fmt.Sprintf("receipt-%s.pdf", order.OrderNumber),
			Content:  base64.StdEncoding.EncodeToString(receiptPDF),
		}}
	}
	return r.send(ctx, email)
}

// LogMailer writes emails to the log instead of sending them. Used when no
// Resend key is configured.
type LogMailer struct {
	Logger *zap.Logger
}

func (m LogMailer) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

func (m LogMailer) SendWelcome(_ context.Context, user *models.User) error {
	m.logger().Info("📧 welcome email (not sent)", zap.String("to", user.Email))
	return nil
}

func (m LogMailer) SendOrderConfirmation(_ context.Context, order *models.Order, receiptPDF []byte) error {
	m.logger().Info("📧 order confirmation (not sent)",
		zap.String("to", order.Email),
		zap.String("order", order.OrderNumber),
		zap.Int("attachmentBytes", len(receiptPDF)),
	)
	return nil
}

func welcomeHTML(name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #f7f7f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 600px; margin: auto; background: #ffffff; padding: 24px;">
    <tr><td><h1 style="margin: 0; font-size: 24px; color: #111111;">Welcome to FitGear, %s!</h1></td></tr>
    <tr><td style="padding-top: 12px; font-size: 14px; color: #444444;">Your account is ready. Gear up and start training.</td></tr>
  </table>
</body>
</html>`, html.EscapeString(name))
}

func orderConfirmationHTML(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, `
      <tr>
        <td style="padding: 8px 0; font-size: 14px; color: #111111;">%s</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; color: #111111;">%d</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; font-weight: 600; color: #111111;">%s</td>
      </tr>`, html.EscapeString(item.ProductName), item.Quantity, FormatKES(item.Subtotal))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #f7f7f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 600px; margin: auto; background: #ffffff; padding: 24px;">
    <tr><td><h1 style="margin: 0; font-size: 24px; color: #111111;">Thanks for your order!</h1></td></tr>
    <tr><td style="padding: 8px 0; font-size: 14px; color: #444444;">Order <strong>%s</strong> paid with %s.</td></tr>
    <tr>
      <td>
        <table width="100%%" cellpadding="0" cellspacing="0" border="0">
          %s
          <tr>
            <td colspan="2" style="padding-top: 8px; border-top: 1px solid #e5e5e0; font-weight: bold;">Total</td>
            <td style="padding-top: 8px; border-top: 1px solid #e5e5e0; text-align: right; font-weight: bold;">%s</td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, html.EscapeString(order.OrderNumber), html.EscapeString(order.PaymentMethod), rows.String(), FormatKES(order.TotalAmount))
}

// FormatKES renders whole shillings as "KES 12,500".
func FormatKES(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return "KES " + sign + b.String()
}
