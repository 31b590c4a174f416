// Package auth provides driver authentication for the API: registration,
// access token issuance and refresh token rotation.
package auth

import "time"

// Driver represents an authenticated driver in the system.
type Driver struct {
	ID           string    `json:"driverId"`
	Name         string    `json:"name"`
	CarrierName  string    `json:"carrierName,omitempty"`
	HomeTerminal string    `json:"homeTerminal,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest represents the request body for registering a driver.
type RegisterRequest struct {
	// Name is the driver's display name as it appears on log sheets.
	Name string `json:"name"`

	// CarrierName is the motor carrier the driver works for (optional).
	CarrierName string `json:"carrierName,omitempty"`

	// HomeTerminal is the driver's home terminal address (optional).
	HomeTerminal string `json:"homeTerminal,omitempty"`
}

// Validate validates the register request.
func (r *RegisterRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name == "" {
		errors = append(errors, FieldError{
			Field:   "name",
			Message: "name is required",
			Code:    "REQUIRED",
		})
	}

	return errors
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// TokenResponse represents the response after successful authentication.
type TokenResponse struct {
	// AccessToken is the JWT access token for API authentication.
	AccessToken string `json:"accessToken"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`

	// ExpiresIn is the number of seconds until the access token expires.
	ExpiresIn int64 `json:"expiresIn"`

	// RefreshToken is the opaque token used to obtain new access tokens.
	RefreshToken string `json:"refreshToken,omitempty"`

	// Driver contains the authenticated driver's information.
	Driver *Driver `json:"driver"`
}

// RefreshTokenRequest represents the request to refresh an access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate validates the refresh token request.
func (r *RefreshTokenRequest) Validate() []FieldError {
	var errors []FieldError

	if r.RefreshToken == "" {
		errors = append(errors, FieldError{
			Field:   "refreshToken",
			Message: "refresh token is required",
			Code:    "REQUIRED",
		})
	}

	return errors
}
