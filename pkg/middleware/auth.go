package middleware

import (
	"context"
	"strings"

	"sdo-ticketing/pkg/contextkeys"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/service"
	"sdo-ticketing/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth validates the bearer token and stores the session claims in the
// request context for handlers and role gates.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.Unauthorized(apperrors.ErrEmptyAuthHeader.Error(), nil), m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.Unauthorized(apperrors.ErrInvalidAuthHeader.Error(), nil), m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.Unauthorized("invalid or expired token", err), m.logger)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.ClaimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRoles rejects authenticated users whose role is not on the list.
func (m *AuthMiddleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := utils.ClaimsFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.Unauthorized("not authenticated", err), m.logger)
			}

			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}

			m.logger.Warn("role check refused request",
				zap.String("username", claims.Username),
				zap.String("role", claims.Role),
				zap.Strings("required", roles),
			)
			return utils.ErrorResponse(c, apperrors.Forbidden("insufficient permissions for this operation"), m.logger)
		}
	}
}
