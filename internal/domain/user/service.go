// internal/domain/user/service.go
package user

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user account operations
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new account and signs the user in
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	var existing User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := s.db.Create(&usr).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issueTokens(&usr)
}

// Login authenticates a user by email and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var usr User
	if err := s.db.Where("email = ?", req.Email).First(&usr).Error; err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if !usr.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, usr.PasswordHash); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	now := time.Now().UTC()
	s.db.Model(&usr).Update("last_login_at", now)

	return s.issueTokens(&usr)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	var usr User
	if err := s.db.First(&usr, claims.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if !usr.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	return s.issueTokens(&usr)
}

func (s *Service) issueTokens(usr *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(usr.ID, usr.UUID, usr.Email, usr.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(usr.ID, usr.UUID, usr.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         usr,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// Profile returns the user's account with saved addresses
func (s *Service) Profile(userID uint) (*User, error) {
	var usr User
	if err := s.db.Preload("Addresses").First(&usr, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &usr, nil
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// UpdateProfile updates the user's name and phone
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	var usr User
	if err := s.db.First(&usr, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	usr.FirstName = req.FirstName
	usr.LastName = req.LastName
	usr.Phone = req.Phone
	if err := s.db.Save(&usr).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &usr, nil
}

// ChangePasswordRequest represents a password change for a signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword verifies the current password and sets a new one
func (s *Service) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var usr User
	if err := s.db.First(&usr, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	if err := s.passwordManager.VerifyPassword(req.CurrentPassword, usr.PasswordHash); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	if err := s.passwordManager.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&usr).Update("password_hash", hash).Error
}

// ForgotPassword issues a reset token for the account if it exists. The
// token is returned so the caller can deliver it; lookups for unknown
// emails succeed silently to avoid revealing which accounts exist.
func (s *Service) ForgotPassword(email string) (*User, string, error) {
	var usr User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).First(&usr).Error; err != nil {
		return nil, "", nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	reset := PasswordResetToken{
		UserID:    usr.ID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(1 * time.Hour),
	}
	if err := s.db.Create(&reset).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return &usr, token, nil
}

// ResetPasswordRequest represents a password reset redemption
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword redeems a reset token and sets the new password
func (s *Service) ResetPassword(req *ResetPasswordRequest) error {
	var reset PasswordResetToken
	if err := s.db.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	if !reset.IsValid(time.Now().UTC()) {
		return fmt.Errorf("invalid or expired reset token")
	}

	if err := s.passwordManager.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).Where("id = ?", reset.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used_at", now).Error
	})
}
