package campaign

import (
	"context"

	"github.com/fahari-app/inventory-service/internal/campaign/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type UseCase interface {
	CreateCampaign(ctx context.Context, input *dto.CreateCampaignInput) (*model.Campaign, error)
	GetCampaign(ctx context.Context, businessID, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, filters *dto.CampaignFilters) ([]model.Campaign, int, error)
	UpdateCampaign(ctx context.Context, input *dto.UpdateCampaignInput) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, businessID, id string) error
}
