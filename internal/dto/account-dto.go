package dto

// CreateAccountRequestDTO arrives as multipart form fields; the three
// required documents (proofOfIdentity, prcID, endorsementLetter) are file
// parts validated by the controller.
type CreateAccountRequestDTO struct {
	SelectedType  string `json:"selectedType" validate:"required"`
	Surname       string `json:"surname" validate:"required"`
	FirstName     string `json:"firstName" validate:"required"`
	MiddleName    string `json:"middleName"`
	Designation   string `json:"designation" validate:"required"`
	School        string `json:"school" validate:"required"`
	SchoolID      string `json:"schoolID" validate:"required"`
	PersonalGmail string `json:"personalGmail" validate:"required,email"`
}

type CreateResetRequestDTO struct {
	SelectedType   string `json:"selectedType" validate:"required"`
	Surname        string `json:"surname" validate:"required"`
	FirstName      string `json:"firstName" validate:"required"`
	MiddleName     string `json:"middleName"`
	School         string `json:"school" validate:"required"`
	SchoolID       string `json:"schoolID" validate:"required"`
	EmployeeNumber string `json:"employeeNumber" validate:"required"`
}

type CreatedRequestDTO struct {
	RequestID     uint64 `json:"requestId"`
	RequestNumber string `json:"requestNumber"`
}

// UpdateRequestStatusDTO moves an account/reset request between workflow
// states; Notes carries the reject reason or processing notes.
type UpdateRequestStatusDTO struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// TransactionDTO is the public lookup projection shared by both workflows.
type TransactionDTO struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	School string `json:"school"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}
