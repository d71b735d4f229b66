package dto

type CreateIssueDTO struct {
	Name     string `json:"issueName" validate:"required"`
	Category string `json:"issueCategory" validate:"required,oneof='Hardware' 'Software'"`
}
