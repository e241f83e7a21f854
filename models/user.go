package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	GoogleID     *string   `json:"-" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Provider     string    `json:"provider" gorm:"type:varchar(50);default:'password'"`
	Phone        *string   `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Avatar       *string   `json:"avatar,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// UserResponse is the public-facing user data
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Provider  string    `json:"provider"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Provider:  u.Provider,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255" example:"Jane Runner"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret1"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}

// LoginEvent is one successful sign-in, written through the raw pgx pool.
type LoginEvent struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	LoggedInAt time.Time `json:"loggedInAt" gorm:"not null;index"`
	IPAddress  string    `json:"ipAddress" gorm:"type:varchar(64)"`
	UserAgent  string    `json:"userAgent" gorm:"type:text"`
	DeviceType string    `json:"deviceType" gorm:"type:varchar(20)"`
	Browser    string    `json:"browser" gorm:"type:varchar(50)"`
	OS         string    `json:"os" gorm:"column:os;type:varchar(50)"`
	Method     string    `json:"method" gorm:"type:varchar(20)"`
}

func (LoginEvent) TableName() string {
	return "login_events"
}
