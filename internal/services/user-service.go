package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/pkg/config"
	apperrors "sdo-ticketing/pkg/errors"
)

type UserServiceInterface interface {
	CreateSchoolAccount(ctx context.Context, payload dto.CreateSchoolAccountDTO) (uint64, error)
	ResetSchoolPassword(ctx context.Context, payload dto.ResetSchoolPasswordDTO) (int64, error)
	ListSchools(ctx context.Context) ([]dto.SchoolDTO, error)
	ListStaffSchoolsByDistrict(ctx context.Context, district string) ([]dto.SchoolDTO, error)
}

type UserService struct {
	userRepo   repositories.UserRepositoryInterface
	authConfig config.AuthConfig
	logger     *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, authConfig config.AuthConfig, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, authConfig: authConfig, logger: logger}
}

func (s *UserService) CreateSchoolAccount(ctx context.Context, payload dto.CreateSchoolAccountDTO) (uint64, error) {
	exists, err := s.userRepo.UsernameExists(ctx, payload.Username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.NewHttpError(
			http.StatusConflict,
			apperrors.KindConflict,
			"username is already taken",
			nil,
			map[string]string{"username": payload.Username},
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	id, err := s.userRepo.CreateStaffAccount(ctx, payload, string(hash))
	if err != nil {
		return 0, err
	}

	s.logger.Info("school account created",
		zap.String("username", payload.Username), zap.String("schoolCode", payload.SchoolCode))
	return id, nil
}

// ResetSchoolPassword sets every staff account of the named school back to
// the configured default password and reports how many accounts changed.
func (s *UserService) ResetSchoolPassword(ctx context.Context, payload dto.ResetSchoolPasswordDTO) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.authConfig.DefaultStaffPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	affected, err := s.userRepo.ResetPasswordBySchool(ctx, payload.School, string(hash))
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, apperrors.NotFound("no staff accounts for that school")
	}

	s.logger.Info("school passwords reset",
		zap.String("school", payload.School), zap.Int64("accounts", affected))
	return affected, nil
}

func (s *UserService) ListSchools(ctx context.Context) ([]dto.SchoolDTO, error) {
	return s.userRepo.ListSchools(ctx)
}

func (s *UserService) ListStaffSchoolsByDistrict(ctx context.Context, district string) ([]dto.SchoolDTO, error) {
	return s.userRepo.ListStaffSchoolsByDistrict(ctx, district)
}
