package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// AccountRequest is a DepEd email account provisioning request submitted
// from the public form together with three identity documents.
type AccountRequest struct {
	ID            uint64      `json:"id"`
	RequestNumber string      `json:"requestNumber"`
	SelectedType  string      `json:"selectedType"`
	Name          string      `json:"name"`
	Surname       string      `json:"surname"`
	FirstName     string      `json:"firstName"`
	MiddleName    null.String `json:"middleName"`
	Designation   string      `json:"designation"`
	School        string      `json:"school"`
	SchoolID      string      `json:"schoolId"`
	PersonalGmail string      `json:"personalGmail"`

	ProofOfIdentity   string `json:"proofOfIdentity"`
	PrcID             string `json:"prcId"`
	EndorsementLetter string `json:"endorsementLetter"`

	Status       string      `json:"status"`
	RejectReason null.String `json:"rejectReason"`
	CreatedAt    time.Time   `json:"createdAt"`
	CompletedAt  null.Time   `json:"completedAt"`
}

// AccountResetRequest asks for a password reset of an existing DepEd
// account; tracked with the same status enum as AccountRequest.
type AccountResetRequest struct {
	ID             uint64      `json:"id"`
	ResetNumber    string      `json:"resetNumber"`
	SelectedType   string      `json:"selectedType"`
	Name           string      `json:"name"`
	Surname        string      `json:"surname"`
	FirstName      string      `json:"firstName"`
	MiddleName     null.String `json:"middleName"`
	School         string      `json:"school"`
	SchoolID       string      `json:"schoolId"`
	EmployeeNumber string      `json:"employeeNumber"`

	Status      string      `json:"status"`
	Notes       null.String `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt null.Time   `json:"completedAt"`
}
