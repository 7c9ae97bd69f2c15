package inventory

import (
	"context"

	"github.com/fahari-app/inventory-service/internal/inventory/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type Repository interface {
	// Items. CreateItem and DeleteItem write the item and its variants
	// in a single transaction.
	CreateItem(ctx context.Context, item *model.Item) error
	FindItemByID(ctx context.Context, businessID, id string) (*model.Item, error)
	FindAllItems(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error)
	UpdateItem(ctx context.Context, item *model.Item) error
	DeleteItem(ctx context.Context, businessID, id string) error

	// Variants.
	CreateVariant(ctx context.Context, variant *model.Variant) error
	UpdateVariant(ctx context.Context, variant *model.Variant) error
	FindVariantByID(ctx context.Context, businessID, id string) (*model.Variant, error)
	FindAllVariants(ctx context.Context, filters *dto.VariantFilters) ([]model.Variant, int, error)

	// Audit trail. ModifyStockWithAudit inserts the modification row and
	// updates the variant in one transaction, audit row first.
	ModifyStockWithAudit(ctx context.Context, variant *model.Variant, mod *model.StockModification) error
	ListModifications(ctx context.Context, filters *dto.ModificationFilters) ([]model.StockModification, int, error)
}
