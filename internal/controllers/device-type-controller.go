package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/services"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/utils"
)

type DeviceTypeController struct {
	deviceTypeService services.DeviceTypeServiceInterface
	logger            *zap.Logger
}

func NewDeviceTypeController(deviceTypeService services.DeviceTypeServiceInterface, logger *zap.Logger) *DeviceTypeController {
	return &DeviceTypeController{deviceTypeService: deviceTypeService, logger: logger}
}

func (ctrl *DeviceTypeController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *DeviceTypeController) List(c echo.Context) error {
	deviceTypes, err := ctrl.deviceTypeService.List(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, deviceTypes, "device types", http.StatusOK)
}

func (ctrl *DeviceTypeController) Create(c echo.Context) error {
	var payload dto.CreateDeviceTypeDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	id, err := ctrl.deviceTypeService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, map[string]uint64{"deviceTypeId": id}, "device type created", http.StatusCreated)
}

func (ctrl *DeviceTypeController) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	if err := ctrl.deviceTypeService.Delete(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "device type deleted", http.StatusOK)
}
