package campaign

import (
	"context"

	"github.com/fahari-app/inventory-service/internal/campaign/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	FindByID(ctx context.Context, businessID, id string) (*model.Campaign, error)
	FindAll(ctx context.Context, filters *dto.CampaignFilters) ([]model.Campaign, int, error)
	Update(ctx context.Context, campaign *model.Campaign) error
	Delete(ctx context.Context, businessID, id string) error
}
