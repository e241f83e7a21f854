package config

import (
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig is nil when Google sign-in is not configured.
var GoogleOAuthConfig *oauth2.Config

// FrontendURL is where OAuth callbacks send the browser back to.
var FrontendURL = "http://localhost:5173"

func InitGoogleOAuth(cfg AppConfig) {
	FrontendURL = cfg.FrontendURL

	if cfg.GoogleClientID == "" || cfg.GoogleSecret == "" {
		Logger.Warn("⚠️ GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
		return
	}

	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	Logger.Info("✅ Google OAuth initialized", zap.String("redirect", cfg.GoogleRedirectURL))
}
