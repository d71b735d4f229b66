package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/repositories"
	apperrors "sdo-ticketing/pkg/errors"
)

type DeviceTypeServiceInterface interface {
	List(ctx context.Context) ([]entities.DeviceType, error)
	Create(ctx context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type DeviceTypeService struct {
	deviceTypeRepo repositories.DeviceTypeRepositoryInterface
	logger         *zap.Logger
}

func NewDeviceTypeService(deviceTypeRepo repositories.DeviceTypeRepositoryInterface, logger *zap.Logger) DeviceTypeServiceInterface {
	return &DeviceTypeService{deviceTypeRepo: deviceTypeRepo, logger: logger}
}

func (s *DeviceTypeService) List(ctx context.Context) ([]entities.DeviceType, error) {
	return s.deviceTypeRepo.List(ctx)
}

func (s *DeviceTypeService) Create(ctx context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error) {
	id, err := s.deviceTypeRepo.Create(ctx, payload)
	if err != nil {
		if repositories.IsUniqueViolation(err, "device_types_name_key") {
			return 0, apperrors.NewHttpError(
				http.StatusConflict,
				apperrors.KindConflict,
				"device name already in the catalog",
				err,
				map[string]string{"deviceName": payload.Name},
			)
		}
		return 0, err
	}
	s.logger.Info("device type catalog entry created", zap.String("name", payload.Name))
	return id, nil
}

func (s *DeviceTypeService) Delete(ctx context.Context, id uint64) error {
	return s.deviceTypeRepo.Delete(ctx, id)
}
