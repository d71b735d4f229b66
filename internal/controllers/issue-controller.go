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

type IssueController struct {
	issueService services.IssueServiceInterface
	logger       *zap.Logger
}

func NewIssueController(issueService services.IssueServiceInterface, logger *zap.Logger) *IssueController {
	return &IssueController{issueService: issueService, logger: logger}
}

func (ctrl *IssueController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *IssueController) List(c echo.Context) error {
	filter := types.ParseListFilter(c.Request().URL.Query())
	// ?category= is the catalog's exact-match axis; it rides the status slot.
	if category := c.QueryParam("category"); category != "" && filter.Status == "" {
		filter.Status = category
	}

	issues, err := ctrl.issueService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, issues, "issues", http.StatusOK)
}

func (ctrl *IssueController) Create(c echo.Context) error {
	var payload dto.CreateIssueDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	id, err := ctrl.issueService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, map[string]uint64{"issueId": id}, "issue created", http.StatusCreated)
}

func (ctrl *IssueController) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	if err := ctrl.issueService.Delete(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "issue deleted", http.StatusOK)
}
