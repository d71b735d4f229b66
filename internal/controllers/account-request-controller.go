package controllers

import (
	"context"
	"mime/multipart"
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

type AccountRequestController struct {
	requestService services.AccountRequestServiceInterface
	fileStorage    filestorage.FileStorageInterface
	uploadConfig   config.UploadConfig
	logger         *zap.Logger
}

func NewAccountRequestController(
	requestService services.AccountRequestServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	uploadConfig config.UploadConfig,
	logger *zap.Logger,
) *AccountRequestController {
	return &AccountRequestController{
		requestService: requestService,
		fileStorage:    fileStorage,
		uploadConfig:   uploadConfig,
		logger:         logger,
	}
}

func (ctrl *AccountRequestController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// requestDocumentFields names the three mandatory file parts of a new
// account request, keyed by form field name.
var requestDocumentFields = []string{"proofOfIdentity", "prcID", "endorsementLetter"}

// CreateRequest is a public endpoint: a multipart form with the applicant's
// details plus exactly one file per document field.
func (ctrl *AccountRequestController) CreateRequest(c echo.Context) error {
	payload := dto.CreateAccountRequestDTO{
		SelectedType:  c.FormValue("selectedType"),
		Surname:       c.FormValue("surname"),
		FirstName:     c.FormValue("firstName"),
		MiddleName:    c.FormValue("middleName"),
		Designation:   c.FormValue("designation"),
		School:        c.FormValue("school"),
		SchoolID:      c.FormValue("schoolID"),
		PersonalGmail: c.FormValue("personalGmail"),
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "expected a multipart form", err, nil))
	}

	headers := make(map[string]*multipart.FileHeader, len(requestDocumentFields))
	for _, field := range requestDocumentFields {
		files := form.File[field]
		if len(files) != 1 {
			return ctrl.errorResponse(c, apperrors.Validation(map[string]string{
				field: "exactly one file is required",
			}))
		}
		if err := utils.ValidateUpload(files[0], ctrl.uploadConfig, config.UploadContextDeped); err != nil {
			return ctrl.errorResponse(c, err)
		}
		headers[field] = files[0]
	}

	stored := make(map[string]string, len(headers))
	for field, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return ctrl.errorResponse(c, err)
		}
		path, err := ctrl.fileStorage.Save(src, fh.Filename, config.UploadContextDeped)
		src.Close()
		if err != nil {
			ctrl.logger.Error("failed to store document", zap.String("field", field), zap.Error(err))
			return ctrl.errorResponse(c, err)
		}
		stored[field] = path
	}

	created, err := ctrl.requestService.CreateRequest(c.Request().Context(), payload, services.RequestDocuments{
		ProofOfIdentity:   stored["proofOfIdentity"],
		PrcID:             stored["prcID"],
		EndorsementLetter: stored["endorsementLetter"],
	})
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, created, "account request filed", http.StatusCreated)
}

func (ctrl *AccountRequestController) CreateResetRequest(c echo.Context) error {
	var payload dto.CreateResetRequestDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	created, err := ctrl.requestService.CreateResetRequest(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, created, "reset request filed", http.StatusCreated)
}

func (ctrl *AccountRequestController) ListRequests(c echo.Context) error {
	filter := types.ParseListFilter(c.Request().URL.Query())
	requests, err := ctrl.requestService.ListRequests(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, requests, "account requests", http.StatusOK)
}

func (ctrl *AccountRequestController) ListResetRequests(c echo.Context) error {
	filter := types.ParseListFilter(c.Request().URL.Query())
	requests, err := ctrl.requestService.ListResetRequests(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, requests, "reset requests", http.StatusOK)
}

func (ctrl *AccountRequestController) UpdateRequestStatus(c echo.Context) error {
	return ctrl.updateStatus(c, ctrl.requestService.UpdateRequestStatus)
}

func (ctrl *AccountRequestController) UpdateResetRequestStatus(c echo.Context) error {
	return ctrl.updateStatus(c, ctrl.requestService.UpdateResetRequestStatus)
}

func (ctrl *AccountRequestController) updateStatus(
	c echo.Context,
	update func(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error,
) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(map[string]string{"id": "must be numeric"}))
	}

	var payload dto.UpdateRequestStatusDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, apperrors.KindBadRequest, "malformed payload", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := update(c.Request().Context(), id, payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "request status updated", http.StatusOK)
}

// CheckTransaction is the public status lookup by printed number.
func (ctrl *AccountRequestController) CheckTransaction(c echo.Context) error {
	number := c.Param("number")
	tx, err := ctrl.requestService.CheckTransaction(c.Request().Context(), number)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, tx, "transaction", http.StatusOK)
}
