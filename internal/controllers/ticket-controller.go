package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/services"
	"sdo-ticketing/pkg/config"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/filestorage"
	"sdo-ticketing/pkg/types"
	"sdo-ticketing/pkg/utils"
)

type TicketController struct {
	ticketService services.TicketServiceInterface
	fileStorage   filestorage.FileStorageInterface
	uploadConfig  config.UploadConfig
	logger        *zap.Logger
}

func NewTicketController(
	ticketService services.TicketServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	uploadConfig config.UploadConfig,
	logger *zap.Logger,
) *TicketController {
	return &TicketController{
		ticketService: ticketService,
		fileStorage:   fileStorage,
		uploadConfig:  uploadConfig,
		logger:        logger,
	}
}

func (ctrl *TicketController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// Create accepts a multipart form: plain fields, a selectedDevices JSON
// field, and up to ten attachment files validated against the ticket upload
// rules before anything is written to disk.
func (ctrl *TicketController) Create(c echo.Context) error {
	payload, err := ctrl.bindCreatePayload(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := c.Validate(payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "expected a multipart form", err, nil))
	}

	files := form.File["attachments"]
	rules := ctrl.uploadConfig.Contexts[config.UploadContextTicket]
	if len(files) > rules.MaxFiles {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{
			"attachments": "too many files",
		}))
	}
	for _, fh := range files {
		if err := utils.ValidateUpload(fh, ctrl.uploadConfig, config.UploadContextTicket); err != nil {
			return ctrl.errorResponse(c, err)
		}
	}

	attachments := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return ctrl.errorResponse(c, err)
		}
		path, err := ctrl.fileStorage.Save(src, fh.Filename, config.UploadContextTicket)
		src.Close()
		if err != nil {
			ctrl.logger.Error("failed to store attachment", zap.String("file", fh.Filename), zap.Error(err))
			return ctrl.errorResponse(c, err)
		}
		attachments = append(attachments, path)
	}

	created, err := ctrl.ticketService.Create(c.Request().Context(), *payload, attachments)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, created, "ticket created", http.StatusCreated)
}

func (ctrl *TicketController) bindCreatePayload(c echo.Context) (*dto.CreateTicketDTO, error) {
	payload := &dto.CreateTicketDTO{
		Requestor: c.FormValue("requestor"),
		Category:  c.FormValue("category"),
		Request:   c.FormValue("request"),
		Comments:  c.FormValue("comments"),
	}

	if raw := c.FormValue("batch"); raw != "" {
		batchID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, apperrors.Validation(map[string]string{"batch": "must be a numeric batch id"})
		}
		payload.BatchID = &batchID
	}

	if raw := c.FormValue("selectedDevices"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload.SelectedDevices); err != nil {
			return nil, apperrors.Validation(map[string]string{"selectedDevices": "must be a JSON array"})
		}
	}
	return payload, nil
}

func (ctrl *TicketController) List(c echo.Context) error {
	claims, err := utils.ClaimsFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Unauthorized("not authenticated", err))
	}

	filter := types.ParseListFilter(c.Request().URL.Query())
	showArchived := c.QueryParam("archived") == "true"

	tickets, err := ctrl.ticketService.List(c.Request().Context(), filter, claims, showArchived)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, tickets, "tickets", http.StatusOK)
}

func (ctrl *TicketController) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	var payload dto.UpdateTicketStatusDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.ticketService.UpdateStatus(c.Request().Context(), id, payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "ticket status updated", http.StatusOK)
}

func (ctrl *TicketController) Archive(c echo.Context) error {
	claims, err := utils.ClaimsFromContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Unauthorized("not authenticated", err))
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	if err := ctrl.ticketService.Archive(c.Request().Context(), id, claims); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "ticket archived", http.StatusOK)
}

func (ctrl *TicketController) Devices(c echo.Context) error {
	rows, err := ctrl.ticketService.DevicesByTicketNumber(c.Request().Context(), c.Param("ticketNumber"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, rows, "ticket devices", http.StatusOK)
}
