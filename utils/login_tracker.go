// ════════════════════════════════════════════════════════════
// Path: utils/login_tracker.go
// Track customer sign-ins
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"strings"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewLoginEvent describes a sign-in from the request headers.
func NewLoginEvent(c *gin.Context, userID uuid.UUID, method string) models.LoginEvent {
	userAgent := c.GetHeader("User-Agent")
	return models.LoginEvent{
		ID:         uuid.Must(uuid.NewV7()),
		UserID:     userID,
		IPAddress:  c.ClientIP(),
		UserAgent:  userAgent,
		DeviceType: parseDeviceType(userAgent),
		Browser:    parseBrowser(userAgent),
		OS:         parseOS(userAgent),
		Method:     method,
	}
}

// LogLoginEvent records a sign-in in the background. Failures are logged only.
func LogLoginEvent(c *gin.Context, userID uuid.UUID, method string) {
	if config.Pool == nil {
		return
	}
	event := NewLoginEvent(c, userID, method)

	go func() {
		ctx, cancel := config.WithTimeout()
		defer cancel()
		if err := insertLoginEvent(ctx, event); err != nil {
			config.Logger.Warn("❌ failed to log login event", zap.String("user", userID.String()), zap.Error(err))
			return
		}
		config.Logger.Debug("✅ login event logged", zap.String("user", userID.String()), zap.String("ip", event.IPAddress))
	}()
}

func insertLoginEvent(ctx context.Context, e models.LoginEvent) error {
	query := `
		INSERT INTO login_events (
			id, user_id, logged_in_at, ip_address, user_agent,
			device_type, browser, os, method
		) VALUES ($1, $2, NOW(), $3, $4, $5, $6, $7, $8)
	`
	_, err := config.Pool.Exec(ctx, query,
		e.ID.String(),
		e.UserID.String(),
		e.IPAddress,
		e.UserAgent,
		e.DeviceType,
		e.Browser,
		e.OS,
		e.Method,
	)
	return err
}

// parseDeviceType determines if the request is from mobile, tablet, or desktop
func parseDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return "mobile"
	}
	return "desktop"
}

func parseBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "Other"
}

// parseOS checks mobile platforms first since their agents also mention
// desktop kernels.
func parseOS(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "Other"
}
