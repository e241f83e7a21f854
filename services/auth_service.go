package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fitgear/fitgear-api/models"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegistration applies the sign-up form rules and returns the
// offending field and message.
func ValidateRegistration(req models.RegisterRequest) (field, message string, ok bool) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "name", "Name is required", false
	case !emailPattern.MatchString(strings.TrimSpace(req.Email)):
		return "email", "Please enter a valid email address", false
	case len(req.Password) < minPasswordLength:
		return "password", "Password must be at least 6 characters", false
	}
	return "", "", true
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService registers and authenticates storefront customers.
type AuthService struct {
	db     *gorm.DB
	mailer Mailer
}

func NewAuthService(db *gorm.DB, mailer Mailer) *AuthService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &AuthService{db: db, mailer: mailer}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a password account and sends the welcome email in the
// background.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        normalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Provider:     "password",
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	u := *user
	go func() {
		_ = s.mailer.SendWelcome(context.Background(), &u)
	}()
	return user, nil
}

// Login checks the email and password pair.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// UpsertGoogleUser links a Google identity to an account, creating one on
// first sign-in.
func (s *AuthService) UpsertGoogleUser(ctx context.Context, info models.GoogleUserInfo) (*models.User, bool, error) {
	googleID := info.Sub
	if googleID == "" {
		googleID = info.ID
	}
	email := normalizeEmail(info.Email)
	if googleID == "" || email == "" {
		return nil, false, errors.New("google profile is missing id or email")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("google_id = ? OR email = ?", googleID, email).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]any{"google_id": googleID}
		if info.Picture != "" {
			updates["avatar"] = info.Picture
		}
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, false, fmt.Errorf("link google account: %w", err)
		}
		return &user, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, fmt.Errorf("load user: %w", err)
	}

	user = models.User{
		Email:    email,
		Name:     info.Name,
		GoogleID: &googleID,
		Provider: "google",
	}
	if info.Picture != "" {
		user.Avatar = &info.Picture
	}
	if user.Name == "" {
		user.Name = strings.Split(email, "@")[0]
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("create google user: %w", err)
	}
	u := user
	go func() {
		_ = s.mailer.SendWelcome(context.Background(), &u)
	}()
	return &user, true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
