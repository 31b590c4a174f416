package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Predefined service errors.
var (
	ErrDriverNotFound = errors.New("driver not found")
)

// DriverRepository defines the interface for driver data operations.
type DriverRepository interface {
	// Create creates a new driver.
	Create(ctx context.Context, driver *Driver) error

	// FindByID finds a driver by their internal ID.
	FindByID(ctx context.Context, id string) (*Driver, error)
}

// RefreshTokenRepository defines the interface for refresh token operations.
type RefreshTokenRepository interface {
	// Create stores a new refresh token.
	Create(ctx context.Context, token *RefreshToken) error

	// FindByToken finds a refresh token by its value.
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)

	// Revoke marks a refresh token as revoked.
	Revoke(ctx context.Context, token string) error

	// RevokeAllForDriver revokes all refresh tokens for a driver.
	RevokeAllForDriver(ctx context.Context, driverID string) error
}

// Service provides authentication operations.
type Service struct {
	jwtService  *JWTService
	driverRepo  DriverRepository
	refreshRepo RefreshTokenRepository
}

// ServiceConfig holds configuration for the auth service.
type ServiceConfig struct {
	JWTService  *JWTService
	DriverRepo  DriverRepository
	RefreshRepo RefreshTokenRepository
}

// NewService creates a new auth service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		jwtService:  cfg.JWTService,
		driverRepo:  cfg.DriverRepo,
		refreshRepo: cfg.RefreshRepo,
	}
}

// Register creates a new driver account and returns API tokens.
// There is no credential step; possession of the token pair is the account.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation error: %s", errs[0].Message)
	}

	now := time.Now()
	driver := &Driver{
		ID:           generateDriverID(),
		Name:         req.Name,
		CarrierName:  req.CarrierName,
		HomeTerminal: req.HomeTerminal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("creating driver: %w", err)
	}

	return s.generateTokens(ctx, driver)
}

// RefreshAccessToken refreshes an access token using a refresh token.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshTokenStr string) (*TokenResponse, error) {
	// Find the refresh token
	refreshToken, err := s.refreshRepo.FindByToken(ctx, refreshTokenStr)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Check if token is valid
	if refreshToken.RevokedAt != nil {
		return nil, ErrInvalidRefreshToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	// Get the driver
	driver, err := s.driverRepo.FindByID(ctx, refreshToken.DriverID)
	if err != nil {
		return nil, ErrDriverNotFound
	}

	// Revoke the old refresh token (rotation)
	if err := s.refreshRepo.Revoke(ctx, refreshTokenStr); err != nil {
		return nil, fmt.Errorf("revoking old refresh token: %w", err)
	}

	// Generate new tokens
	return s.generateTokens(ctx, driver)
}

// ValidateAccessToken validates an access token and returns the driver ID.
func (s *Service) ValidateAccessToken(tokenString string) (string, error) {
	claims, err := s.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.DriverID, nil
}

// GetDriver retrieves a driver by ID.
func (s *Service) GetDriver(ctx context.Context, driverID string) (*Driver, error) {
	return s.driverRepo.FindByID(ctx, driverID)
}

// RevokeRefreshToken revokes a specific refresh token.
func (s *Service) RevokeRefreshToken(ctx context.Context, refreshTokenStr string) error {
	return s.refreshRepo.Revoke(ctx, refreshTokenStr)
}

// RevokeAllTokens revokes all refresh tokens for a driver (logout everywhere).
func (s *Service) RevokeAllTokens(ctx context.Context, driverID string) error {
	return s.refreshRepo.RevokeAllForDriver(ctx, driverID)
}

// generateTokens generates both access and refresh tokens for a driver.
func (s *Service) generateTokens(ctx context.Context, driver *Driver) (*TokenResponse, error) {
	// Generate access token
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(driver)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	// Generate refresh token
	refreshTokenStr, err := GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	// Store refresh token
	refreshToken := &RefreshToken{
		ID:        uuid.New().String(),
		Token:     refreshTokenStr,
		DriverID:  driver.ID,
		ExpiresAt: time.Now().Add(RefreshTokenExpiry),
		CreatedAt: time.Now(),
	}

	if err := s.refreshRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(time.Until(expiresAt).Seconds()),
		RefreshToken: refreshTokenStr,
		Driver:       driver,
	}, nil
}

// generateDriverID generates a unique driver ID with prefix.
func generateDriverID() string {
	return "drv_" + uuid.New().String()[:22]
}
