package dto

import "sdo-ticketing/internal/entities"

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseDTO struct {
	Token string         `json:"token"`
	User  SessionUserDTO `json:"user"`
}

// SessionUserDTO is the public projection of the account returned at login;
// it mirrors the token claims.
type SessionUserDTO struct {
	ID         uint64 `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	School     string `json:"school"`
	SchoolCode string `json:"schoolCode"`
}

func NewSessionUserDTO(u *entities.User) SessionUserDTO {
	return SessionUserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		School:     u.School.String,
		SchoolCode: u.SchoolCode.String,
	}
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
