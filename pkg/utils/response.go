package utils

import (
	"errors"
	"net/http"
	"strings"

	apperrors "sdo-ticketing/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse is the single request-boundary error renderer. Business
// errors arrive as *apperrors.HttpError and keep their status/kind/details;
// validator failures become a VALIDATION_ERROR enumerating every offending
// field; anything else is logged and hidden behind a generic 500.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("request failed",
				zap.Int("code", httpErr.Code),
				zap.String("kind", httpErr.Kind),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return ctx.JSON(httpErr.Code, &HTTPResponse{
			Status:  false,
			Body:    httpErr.Details,
			Message: httpErr.Message,
			Error:   httpErr.Kind,
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fe := range validationErrors {
			fields[strings.ToLower(fe.Field()[:1])+fe.Field()[1:]] = fe.Tag()
		}
		vErr := apperrors.Validation(fields)
		return ctx.JSON(vErr.Code, &HTTPResponse{
			Status:  false,
			Body:    vErr.Details,
			Message: vErr.Message,
			Error:   vErr.Kind,
		})
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		return ctx.JSON(http.StatusNotFound, &HTTPResponse{
			Status:  false,
			Message: apperrors.ErrNotFound.Error(),
			Error:   apperrors.KindNotFound,
		})
	}

	logger.Error("unexpected error", zap.Error(err))
	return ctx.JSON(http.StatusInternalServerError, &HTTPResponse{
		Status:  false,
		Message: "internal server error",
		Error:   apperrors.KindServerError,
	})
}
