package utils

import (
	"context"

	"sdo-ticketing/pkg/contextkeys"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/service"
)

// ClaimsFromContext extracts the session claims put there by the auth
// middleware.
func ClaimsFromContext(ctx context.Context) (*service.Claims, error) {
	claims, ok := ctx.Value(contextkeys.ClaimsKey).(*service.Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrClaimsNotFoundInContext
	}
	return claims, nil
}
