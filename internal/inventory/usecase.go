package inventory

import (
	"context"

	"github.com/fahari-app/inventory-service/internal/inventory/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error)
	GetItem(ctx context.Context, businessID, id string) (*model.Item, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, businessID, id string) error
	ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error)

	GetVariant(ctx context.Context, businessID, id string) (*model.Variant, error)
	ListVariants(ctx context.Context, businessID string) ([]model.Variant, error)
	SearchVariants(ctx context.Context, filters *dto.VariantFilters) ([]model.Variant, int, error)

	ModifyStock(ctx context.Context, input *dto.ModifyStockInput) (*model.Variant, error)
	ListModifications(ctx context.Context, filters *dto.ModificationFilters) ([]model.StockModification, int, error)
}
