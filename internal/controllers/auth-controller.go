package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/services"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed login payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	result, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, result, "logged in", http.StatusOK)
}

// Me returns the session identity baked into the access token, so the client
// can restore its UI state without a second credential exchange.
func (ctrl *AuthController) Me(c echo.Context) error {
	claims, err := utils.ClaimsFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Unauthorized("not authenticated", err))
	}

	return utils.SuccessResponse(c, dto.SessionUserDTO{
		ID:         claims.UserID,
		Username:   claims.Username,
		Role:       claims.Role,
		School:     claims.School,
		SchoolCode: claims.SchoolCode,
	}, "session", http.StatusOK)
}

func (ctrl *AuthController) ChangePassword(c echo.Context) error {
	claims, err := utils.ClaimsFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Unauthorized("not authenticated", err))
	}

	var payload dto.ChangePasswordDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.authService.ChangePassword(c.Request().Context(), claims.UserID, payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "password changed", http.StatusOK)
}
