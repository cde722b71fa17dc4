// internal/domain/user/service.go
package user

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/pkg/auth"
)

// Service handles user business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	jwtManager  *auth.JWTManager
	passwordMgr *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		jwtManager:  auth.NewJWTManager(cfg),
		passwordMgr: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse bundles tokens with the authenticated user
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest represents the profile update payload
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Register creates a new customer account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	var count int64
	s.db.Model(&User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := s.passwordMgr.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      RoleCustomer,
		IsActive:  true,
	}
	if err := s.db.Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(u)
}

// Login authenticates a user and issues tokens
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	if err := s.db.Where("email = ?", req.Email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	if err := s.passwordMgr.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	u.LastLoginAt = &now
	s.db.Model(&u).Update("last_login_at", now)

	return s.issueTokens(&u)
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	var u User
	if err := s.db.First(&u, claims.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	return s.issueTokens(&u)
}

// GetProfile retrieves a user by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpdateProfile applies partial updates to a user's profile
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	if err := s.db.Save(u).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *Service) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	u, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if err := s.passwordMgr.VerifyPassword(req.CurrentPassword, u.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashed, err := s.passwordMgr.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(u).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ListUsers returns users filtered by role, newest first
func (s *Service) ListUsers(role string) ([]User, error) {
	query := s.db.Model(&User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetRole changes a user's role
func (s *Service) SetRole(userID uint, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	u.Role = role
	if err := s.db.Model(u).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return u, nil
}

// SetRoleByEmail changes a user's role looked up by email, creating nothing
func (s *Service) SetRoleByEmail(email, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	var u User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no user with email %s", email)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	u.Role = role
	if err := s.db.Model(&u).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &u, nil
}

// SetActive enables or disables a user account
func (s *Service) SetActive(userID uint, active bool) error {
	if err := s.db.Model(&User{}).Where("id = ?", userID).
		Update("is_active", active).Error; err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}
	return nil
}

func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	access, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &AuthResponse{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
