package handler

import (
	"context"

	"github.com/ndungtse/driver-x/internal/api/middleware"
)

// GetDriverID retrieves the authenticated driver ID from the context.
// This is a convenience wrapper around middleware.GetDriverID.
func GetDriverID(ctx context.Context) string {
	return middleware.GetDriverID(ctx)
}
