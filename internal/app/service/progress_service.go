package service

import (
	"context"
	"fmt"

	"skillpath/internal/common"
	"skillpath/internal/domain/model"
	"skillpath/internal/domain/repository"
)

type ProgressService struct {
	userRepo repository.UserRepository
}

func NewProgressService(userRepo repository.UserRepository) *ProgressService {
	return &ProgressService{userRepo: userRepo}
}

type UpdateProgressRequest struct {
	Progress *model.Progress `json:"progress"`
}

func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*model.Progress, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := user.Progress
	return &progress, nil
}

// UpdateProgress replaces the stored record wholesale. Partial bodies
// zero the omitted counters, matching the replace-not-merge contract.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, req UpdateProgressRequest) (*model.Progress, error) {
	if req.Progress == nil {
		return nil, fmt.Errorf("progress data is required: %w", common.ErrValidation)
	}
	if err := req.Progress.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	return s.userRepo.UpdateProgress(ctx, userID, *req.Progress)
}
