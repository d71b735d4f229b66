package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/services"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
	"sdo-ticketing/pkg/utils"
)

type BatchController struct {
	batchService services.BatchServiceInterface
	logger       *zap.Logger
}

func NewBatchController(batchService services.BatchServiceInterface, logger *zap.Logger) *BatchController {
	return &BatchController{batchService: batchService, logger: logger}
}

func (ctrl *BatchController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *BatchController) Create(c echo.Context) error {
	var payload dto.CreateBatchDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	created, err := ctrl.batchService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, created, "batch created", http.StatusCreated)
}

func (ctrl *BatchController) List(c echo.Context) error {
	claims, err := utils.ClaimsFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Unauthorized("not authenticated", err))
	}

	filter := types.ParseListFilter(c.Request().URL.Query())
	batches, err := ctrl.batchService.List(c.Request().Context(), filter, claims)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, batches, "batches", http.StatusOK)
}

func (ctrl *BatchController) Receive(c echo.Context) error {
	claims, err := utils.ClaimsFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Unauthorized("not authenticated", err))
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	if err := ctrl.batchService.Receive(c.Request().Context(), id, claims); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "batch received", http.StatusOK)
}

func (ctrl *BatchController) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	if err := ctrl.batchService.Cancel(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "batch cancelled", http.StatusOK)
}

func (ctrl *BatchController) Devices(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	devices, err := ctrl.batchService.ListDevices(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, devices, "batch devices", http.StatusOK)
}

func (ctrl *BatchController) NextNumber(c echo.Context) error {
	number, err := ctrl.batchService.NextNumber(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, map[string]string{"batchNumber": number}, "next batch number", http.StatusOK)
}
