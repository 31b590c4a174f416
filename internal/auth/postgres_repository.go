package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDriverRepository is a PostgreSQL implementation of DriverRepository.
type PostgresDriverRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDriverRepository creates a new PostgreSQL driver repository.
func NewPostgresDriverRepository(pool *pgxpool.Pool) *PostgresDriverRepository {
	return &PostgresDriverRepository{pool: pool}
}

// Create creates a new driver.
func (r *PostgresDriverRepository) Create(ctx context.Context, driver *Driver) error {
	query := `
		INSERT INTO drivers (id, name, carrier_name, home_terminal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		driver.ID,
		driver.Name,
		driver.CarrierName,
		driver.HomeTerminal,
		driver.CreatedAt,
		driver.UpdatedAt,
	)
	return err
}

// FindByID finds a driver by their internal ID.
func (r *PostgresDriverRepository) FindByID(ctx context.Context, id string) (*Driver, error) {
	query := `
		SELECT id, name, carrier_name, home_terminal, created_at, updated_at
		FROM drivers
		WHERE id = $1
	`

	var driver Driver
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&driver.CarrierName,
		&driver.HomeTerminal,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}

	return &driver, nil
}

// PostgresRefreshTokenRepository is a PostgreSQL implementation of RefreshTokenRepository.
type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRefreshTokenRepository creates a new PostgreSQL refresh token repository.
func NewPostgresRefreshTokenRepository(pool *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

// Create stores a new refresh token.
func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, token, driver_id, expires_at, created_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Token,
		token.DriverID,
		token.ExpiresAt,
		token.CreatedAt,
		token.RevokedAt,
	)
	return err
}

// FindByToken finds a refresh token by its value.
func (r *PostgresRefreshTokenRepository) FindByToken(ctx context.Context, tokenValue string) (*RefreshToken, error) {
	query := `
		SELECT id, token, driver_id, expires_at, created_at, revoked_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var token RefreshToken
	err := r.pool.QueryRow(ctx, query, tokenValue).Scan(
		&token.ID,
		&token.Token,
		&token.DriverID,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return &token, nil
}

// Revoke marks a refresh token as revoked.
func (r *PostgresRefreshTokenRepository) Revoke(ctx context.Context, tokenValue string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE token = $2 AND revoked_at IS NULL
	`

	_, err := r.pool.Exec(ctx, query, time.Now(), tokenValue)
	return err
}

// RevokeAllForDriver revokes all refresh tokens for a driver.
func (r *PostgresRefreshTokenRepository) RevokeAllForDriver(ctx context.Context, driverID string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE driver_id = $2 AND revoked_at IS NULL
	`

	_, err := r.pool.Exec(ctx, query, time.Now(), driverID)
	return err
}
