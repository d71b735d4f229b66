package dto

// CreateSchoolAccountDTO provisions one staff account per school.
type CreateSchoolAccountDTO struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	District   string `json:"district" validate:"required"`
	SchoolCode string `json:"schoolCode" validate:"required"`
	School     string `json:"school" validate:"required"`
	Address    string `json:"address"`
	Principal  string `json:"principal"`
	Number     string `json:"number"`
	Email      string `json:"email" validate:"omitempty,email"`
}

type ResetSchoolPasswordDTO struct {
	School string `json:"school" validate:"required"`
}

// SchoolDTO is the minimal directory entry used by public forms and the
// batch-create picker.
type SchoolDTO struct {
	SchoolCode string `json:"schoolCode"`
	School     string `json:"school"`
}
