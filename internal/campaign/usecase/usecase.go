package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fahari-app/inventory-service/internal/apperr"
	"github.com/fahari-app/inventory-service/internal/campaign"
	"github.com/fahari-app/inventory-service/internal/campaign/dto"
	"github.com/fahari-app/inventory-service/internal/model"
	"github.com/fahari-app/inventory-service/pkg/logger"
)

type campaignUseCase struct {
	repo   campaign.Repository
	logger logger.Logger
}

func NewCampaignUseCase(repo campaign.Repository, log logger.Logger) campaign.UseCase {
	return &campaignUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *campaignUseCase) CreateCampaign(ctx context.Context, input *dto.CreateCampaignInput) (*model.Campaign, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}

	now := time.Now()
	c := &model.Campaign{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID:  input.BusinessID,
		Title:       input.Title,
		Description: input.Description,
		Status:      true, // new campaigns always start active
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		uc.logger.Error("failed to create campaign", zap.String("business_id", input.BusinessID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return c, nil
}

func (uc *campaignUseCase) GetCampaign(ctx context.Context, businessID, id string) (*model.Campaign, error) {
	if businessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if id == "" {
		return nil, nil
	}

	c, err := uc.repo.FindByID(ctx, businessID, id)
	if err != nil {
		uc.logger.Error("failed to load campaign", zap.String("campaign_id", id), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return c, nil
}

func (uc *campaignUseCase) ListCampaigns(ctx context.Context, filters *dto.CampaignFilters) ([]model.Campaign, int, error) {
	if filters.BusinessID == "" {
		return nil, 0, apperr.Precondition("business id is missing")
	}

	campaigns, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list campaigns", zap.String("business_id", filters.BusinessID), zap.Error(err))
		return nil, 0, apperr.Storage(err)
	}
	return campaigns, count, nil
}

func (uc *campaignUseCase) UpdateCampaign(ctx context.Context, input *dto.UpdateCampaignInput) (*model.Campaign, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if input.ID == "" {
		return nil, apperr.Precondition("campaign id is missing")
	}

	c, err := uc.repo.FindByID(ctx, input.BusinessID, input.ID)
	if err != nil {
		uc.logger.Error("failed to load campaign for update", zap.String("campaign_id", input.ID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	if c == nil {
		return nil, nil
	}

	c.Title = input.Title
	c.Description = input.Description
	c.Status = input.Status
	c.StartsAt = input.StartsAt
	c.EndsAt = input.EndsAt
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		uc.logger.Error("failed to update campaign", zap.String("campaign_id", input.ID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return c, nil
}

func (uc *campaignUseCase) DeleteCampaign(ctx context.Context, businessID, id string) error {
	if businessID == "" {
		return apperr.Precondition("business id is missing")
	}
	if id == "" {
		return apperr.Precondition("campaign id is missing")
	}

	if err := uc.repo.Delete(ctx, businessID, id); err != nil {
		uc.logger.Error("failed to delete campaign", zap.String("campaign_id", id), zap.Error(err))
		return apperr.Storage(err)
	}
	return nil
}
