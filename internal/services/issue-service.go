package services

import (
	"context"

	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/pkg/types"
)

type IssueServiceInterface interface {
	List(ctx context.Context, filter types.ListFilter) ([]entities.Issue, error)
	Create(ctx context.Context, payload dto.CreateIssueDTO) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type IssueService struct {
	issueRepo repositories.IssueRepositoryInterface
	logger    *zap.Logger
}

func NewIssueService(issueRepo repositories.IssueRepositoryInterface, logger *zap.Logger) IssueServiceInterface {
	return &IssueService{issueRepo: issueRepo, logger: logger}
}

func (s *IssueService) List(ctx context.Context, filter types.ListFilter) ([]entities.Issue, error) {
	return s.issueRepo.List(ctx, filter)
}

func (s *IssueService) Create(ctx context.Context, payload dto.CreateIssueDTO) (uint64, error) {
	id, err := s.issueRepo.Create(ctx, payload)
	if err != nil {
		return 0, err
	}
	s.logger.Info("issue catalog entry created",
		zap.String("name", payload.Name), zap.String("category", payload.Category))
	return id, nil
}

func (s *IssueService) Delete(ctx context.Context, id uint64) error {
	return s.issueRepo.Delete(ctx, id)
}
