package services

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/pkg/config"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/ratelimit"
	"sdo-ticketing/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	limiter    ratelimit.LoginLimiter
	authConfig config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	limiter ratelimit.LoginLimiter,
	authConfig config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		limiter:    limiter,
		authConfig: authConfig,
		logger:     logger,
	}
}

// Login authenticates by username and password with per-username throttling:
// three consecutive failures inside the window lock the username out until
// the window passes. The lockout check happens before the credential check,
// so a locked account leaks nothing about password correctness.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	if decision := s.limiter.Check(ctx, payload.Username); !decision.Allowed {
		return nil, apperrors.TooManyAttempts(retryAfterSeconds(decision))
	}

	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.failedAttempt(ctx, payload.Username)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return nil, s.failedAttempt(ctx, payload.Username)
	}

	s.limiter.Reset(ctx, payload.Username)

	sessionUser := dto.NewSessionUserDTO(user)
	token, err := s.jwtService.GenerateToken(service.Claims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		School:     sessionUser.School,
		SchoolCode: sessionUser.SchoolCode,
	})
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("role", user.Role))
	return &dto.LoginResponseDTO{Token: token, User: sessionUser}, nil
}

// failedAttempt records the failure and returns either the lockout error or a
// 401 carrying how many attempts remain. Unknown usernames take the same path
// as wrong passwords.
func (s *AuthService) failedAttempt(ctx context.Context, username string) error {
	decision := s.limiter.RecordFailure(ctx, username)
	if !decision.Allowed {
		s.logger.Warn("login locked out", zap.String("username", username))
		return apperrors.TooManyAttempts(retryAfterSeconds(decision))
	}
	return apperrors.NewHttpError(
		http.StatusUnauthorized,
		apperrors.KindUnauthorized,
		"invalid username or password",
		apperrors.ErrInvalidCredentials,
		map[string]int{"remainingAttempts": decision.Remaining},
	)
}

func retryAfterSeconds(decision ratelimit.Decision) int {
	seconds := int(decision.RetryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.CurrentPassword)); err != nil {
		return apperrors.Unauthorized("current password is incorrect", apperrors.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}
