package auth

import (
	"context"
	"sync"
	"time"
)

// InMemoryDriverRepository is an in-memory implementation of DriverRepository
// for testing and local development.
type InMemoryDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*Driver
}

// NewInMemoryDriverRepository creates a new in-memory driver repository.
func NewInMemoryDriverRepository() *InMemoryDriverRepository {
	return &InMemoryDriverRepository{
		drivers: make(map[string]*Driver),
	}
}

// Create creates a new driver.
func (r *InMemoryDriverRepository) Create(_ context.Context, driver *Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driverCopy := *driver
	r.drivers[driver.ID] = &driverCopy

	return nil
}

// FindByID finds a driver by their internal ID.
func (r *InMemoryDriverRepository) FindByID(_ context.Context, id string) (*Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, ok := r.drivers[id]
	if !ok {
		return nil, ErrDriverNotFound
	}

	// Return a copy to avoid mutation
	driverCopy := *driver
	return &driverCopy, nil
}

// InMemoryRefreshTokenRepository is an in-memory implementation of
// RefreshTokenRepository for testing and local development.
type InMemoryRefreshTokenRepository struct {
	mu       sync.RWMutex
	tokens   map[string]*RefreshToken // keyed by token value
	byDriver map[string][]string      // driverID -> list of token values
}

// NewInMemoryRefreshTokenRepository creates a new in-memory refresh token repository.
func NewInMemoryRefreshTokenRepository() *InMemoryRefreshTokenRepository {
	return &InMemoryRefreshTokenRepository{
		tokens:   make(map[string]*RefreshToken),
		byDriver: make(map[string][]string),
	}
}

// Create stores a new refresh token.
func (r *InMemoryRefreshTokenRepository) Create(_ context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenCopy := *token
	r.tokens[token.Token] = &tokenCopy
	r.byDriver[token.DriverID] = append(r.byDriver[token.DriverID], token.Token)

	return nil
}

// FindByToken finds a refresh token by its value.
func (r *InMemoryRefreshTokenRepository) FindByToken(_ context.Context, tokenValue string) (*RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenValue]
	if !ok {
		return nil, ErrInvalidRefreshToken
	}

	tokenCopy := *token
	return &tokenCopy, nil
}

// Revoke marks a refresh token as revoked.
func (r *InMemoryRefreshTokenRepository) Revoke(_ context.Context, tokenValue string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenValue]
	if !ok {
		return nil // Token not found, consider already revoked
	}

	now := time.Now()
	token.RevokedAt = &now

	return nil
}

// RevokeAllForDriver revokes all refresh tokens for a driver.
func (r *InMemoryRefreshTokenRepository) RevokeAllForDriver(_ context.Context, driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenValues, ok := r.byDriver[driverID]
	if !ok {
		return nil
	}

	now := time.Now()
	for _, tokenValue := range tokenValues {
		if token, ok := r.tokens[tokenValue]; ok {
			token.RevokedAt = &now
		}
	}

	return nil
}
