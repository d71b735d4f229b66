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

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (ctrl *UserController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *UserController) CreateSchoolAccount(c echo.Context) error {
	var payload dto.CreateSchoolAccountDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	id, err := ctrl.userService.CreateSchoolAccount(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, map[string]uint64{"userId": id}, "school account created", http.StatusCreated)
}

func (ctrl *UserController) ResetSchoolPassword(c echo.Context) error {
	var payload dto.ResetSchoolPasswordDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	affected, err := ctrl.userService.ResetSchoolPassword(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, map[string]int64{"accounts": affected}, "school passwords reset", http.StatusOK)
}

// ListSchools backs the public school picker on the DepEd request forms.
func (ctrl *UserController) ListSchools(c echo.Context) error {
	schools, err := ctrl.userService.ListSchools(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, schools, "schools", http.StatusOK)
}

// ListStaffSchools is the admin view; an optional district query narrows it.
func (ctrl *UserController) ListStaffSchools(c echo.Context) error {
	district := c.QueryParam("district")
	if district == "" {
		schools, err := ctrl.userService.ListSchools(c.Request().Context())
		if err != nil {
			return ctrl.errorResponse(c, err)
		}
		return utils.SuccessResponse(c, schools, "schools", http.StatusOK)
	}

	schools, err := ctrl.userService.ListStaffSchoolsByDistrict(c.Request().Context(), district)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, schools, "schools", http.StatusOK)
}
