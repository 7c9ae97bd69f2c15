package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fahari-app/inventory-service/internal/apperr"
	"github.com/fahari-app/inventory-service/internal/inventory"
	"github.com/fahari-app/inventory-service/internal/inventory/dto"
	"github.com/fahari-app/inventory-service/internal/model"
	"github.com/fahari-app/inventory-service/pkg/i18n"
	"github.com/fahari-app/inventory-service/pkg/logger"
)

const variantIndex = "variants"

const variantMapping = `{
	"mappings": {
		"properties": {
			"business_id": { "type": "keyword" },
			"item_id": { "type": "keyword" },
			"name": { "type": "text" },
			"full_name": { "type": "text" },
			"status": { "type": "keyword" },
			"quantity": { "type": "integer" },
			"created_at": { "type": "date" }
		}
	}
}`

type inventoryUseCase struct {
	repo          inventory.Repository
	cache         inventory.Cache
	es            inventory.Searcher
	alarmQuantity int
	logger        logger.Logger
}

// NewInventoryUseCase builds the ledger. es may be nil; search then
// always takes the database path.
func NewInventoryUseCase(repo inventory.Repository, cache inventory.Cache, es inventory.Searcher, alarmQuantity int, log logger.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:          repo,
		cache:         cache,
		es:            es,
		alarmQuantity: alarmQuantity,
		logger:        log,
	}
}

// buildVariant turns a caller draft into a fully populated record. The
// draft itself is never mutated. Missing starting values are zero by
// construction, matching the update semantics for partial drafts.
func (uc *inventoryUseCase) buildVariant(draft *dto.VariantDraft, businessID, itemID, title, packaging string, now time.Time) model.Variant {
	id := draft.ID
	if id == "" {
		id = uuid.New().String()
	}
	return model.Variant{
		BaseModel: model.BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID:       businessID,
		ItemID:           itemID,
		Name:             draft.Name,
		StartingQuantity: draft.StartingQuantity,
		StartingValue:    draft.StartingValue,
		LowQuantity:      draft.LowQuantity,
		Status:           model.DeriveStockStatus(draft.StartingQuantity, draft.LowQuantity, uc.alarmQuantity),
		Quantity:         draft.StartingQuantity,
		ActualQuantity:   draft.StartingQuantity,
		Value:            draft.StartingValue,
		FullName:         model.ComposeFullName(title, packaging, draft.Name),
	}
}

func validateDrafts(drafts []dto.VariantDraft) error {
	for _, d := range drafts {
		if d.StartingQuantity < 0 {
			return apperr.Precondition("starting quantity must be non-negative")
		}
	}
	return nil
}

func (uc *inventoryUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.Item, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if err := validateDrafts(input.Variants); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.Item{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID: input.BusinessID,
		Title:      input.Title,
		Packaging:  input.Packaging,
	}

	item.Variants = make([]model.Variant, 0, len(input.Variants))
	for i := range input.Variants {
		draft := input.Variants[i]
		draft.ID = "" // drafts never dictate ids on create
		item.Variants = append(item.Variants,
			uc.buildVariant(&draft, input.BusinessID, item.ID, input.Title, input.Packaging, now))
	}

	if err := uc.repo.CreateItem(ctx, item); err != nil {
		uc.logger.Error("failed to create inventory item", zap.String("business_id", input.BusinessID), zap.Error(err))
		return nil, apperr.Storage(err)
	}

	go uc.invalidateVariantCache(context.Background(), input.BusinessID)
	for i := range item.Variants {
		go uc.syncVariantToSearch(context.Background(), &item.Variants[i])
	}

	return item, nil
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, businessID, id string) (*model.Item, error) {
	if businessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if id == "" {
		return nil, nil
	}

	item, err := uc.repo.FindItemByID(ctx, businessID, id)
	if err != nil {
		uc.logger.Error("failed to load inventory item", zap.String("item_id", id), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return item, nil
}

// UpdateItem reconciles the caller's variant drafts against storage:
// every draft is recomputed the same way, drafts without an id are
// inserted, drafts with an id are updated, and variants absent from
// the list are left untouched.
func (uc *inventoryUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if input.ID == "" {
		return nil, apperr.Precondition("item id is missing")
	}
	if err := validateDrafts(input.Variants); err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range input.Variants {
		v := uc.buildVariant(&input.Variants[i], input.BusinessID, input.ID, input.Title, input.Packaging, now)

		var err error
		if input.Variants[i].ID == "" {
			err = uc.repo.CreateVariant(ctx, &v)
		} else {
			err = uc.repo.UpdateVariant(ctx, &v)
		}
		if err != nil {
			uc.logger.Error("failed to reconcile variant",
				zap.String("item_id", input.ID), zap.String("variant", v.FullName), zap.Error(err))
			return nil, apperr.Storage(err)
		}

		go uc.syncVariantToSearch(context.Background(), &v)
	}

	item := &model.Item{
		BaseModel:  model.BaseModel{ID: input.ID, UpdatedAt: now},
		BusinessID: input.BusinessID,
		Title:      input.Title,
		Packaging:  input.Packaging,
	}
	if err := uc.repo.UpdateItem(ctx, item); err != nil {
		uc.logger.Error("failed to update inventory item", zap.String("item_id", input.ID), zap.Error(err))
		return nil, apperr.Storage(err)
	}

	go uc.invalidateVariantCache(context.Background(), input.BusinessID)

	updated, err := uc.repo.FindItemByID(ctx, input.BusinessID, input.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return updated, nil
}

// DeleteItem removes the item and its variants. Stock-modification
// rows are retained; the audit trail outlives the variant it tracks.
func (uc *inventoryUseCase) DeleteItem(ctx context.Context, businessID, id string) error {
	if businessID == "" {
		return apperr.Precondition("business id is missing")
	}
	if id == "" {
		return apperr.Precondition("item id is missing")
	}

	item, err := uc.repo.FindItemByID(ctx, businessID, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if item == nil {
		return nil
	}

	if err := uc.repo.DeleteItem(ctx, businessID, id); err != nil {
		uc.logger.Error("failed to delete inventory item", zap.String("item_id", id), zap.Error(err))
		return apperr.Storage(err)
	}

	go uc.invalidateVariantCache(context.Background(), businessID)
	if uc.es != nil {
		for _, v := range item.Variants {
			variantID := v.ID
			go func() {
				if err := uc.es.Delete(context.Background(), variantIndex, variantID); err != nil {
					uc.logger.Error("failed to remove variant from search index",
						zap.String("variant_id", variantID), zap.Error(err))
				}
			}()
		}
	}

	return nil
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.Item, int, error) {
	if filters.BusinessID == "" {
		return nil, 0, apperr.Precondition("business id is missing")
	}

	items, count, err := uc.repo.FindAllItems(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list inventory items", zap.String("business_id", filters.BusinessID), zap.Error(err))
		return nil, 0, apperr.Storage(err)
	}
	return items, count, nil
}

func (uc *inventoryUseCase) GetVariant(ctx context.Context, businessID, id string) (*model.Variant, error) {
	if businessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if id == "" {
		return nil, nil
	}

	v, err := uc.repo.FindVariantByID(ctx, businessID, id)
	if err != nil {
		uc.logger.Error("failed to load variant", zap.String("variant_id", id), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return v, nil
}

func (uc *inventoryUseCase) ListVariants(ctx context.Context, businessID string) ([]model.Variant, error) {
	if businessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}

	variants, _, err := uc.repo.FindAllVariants(ctx, &dto.VariantFilters{BusinessID: businessID})
	if err != nil {
		uc.logger.Error("failed to list variants", zap.String("business_id", businessID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return variants, nil
}

func (uc *inventoryUseCase) SearchVariants(ctx context.Context, filters *dto.VariantFilters) ([]model.Variant, int, error) {
	if filters.BusinessID == "" {
		return nil, 0, apperr.Precondition("business id is missing")
	}

	cacheKey, keyErr := uc.variantCacheKey(filters)
	if keyErr == nil {
		if val, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var cached struct {
				Variants []model.Variant
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Variants, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		variants, count, err := uc.searchVariantsIndex(ctx, filters)
		if err == nil {
			return variants, count, nil
		}
		uc.logger.Error("search index query failed, falling back to database", zap.Error(err))
	}

	variants, count, err := uc.repo.FindAllVariants(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to search variants", zap.String("business_id", filters.BusinessID), zap.Error(err))
		return nil, 0, apperr.Storage(err)
	}

	if keyErr == nil {
		cached := struct {
			Variants []model.Variant
			Count    int
		}{Variants: variants, Count: count}
		if data, err := json.Marshal(cached); err == nil {
			uc.cache.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return variants, count, nil
}

func (uc *inventoryUseCase) searchVariantsIndex(ctx context.Context, filters *dto.VariantFilters) ([]model.Variant, int, error) {
	must := []map[string]interface{}{
		{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"full_name^3", "name"},
			},
		},
		{
			"term": map[string]interface{}{"business_id": filters.BusinessID},
		},
	}
	if filters.Status != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"status": string(filters.Status)},
		})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"from": filters.Offset,
	}
	if filters.Limit > 0 {
		q["size"] = filters.Limit
	}

	res, err := uc.es.Search(ctx, variantIndex, q)
	if err != nil {
		return nil, 0, err
	}

	variants := make([]model.Variant, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var v model.Variant
		if err := json.Unmarshal(hit.Source, &v); err == nil {
			variants = append(variants, v)
		}
	}
	return variants, res.Hits.Total.Value, nil
}

// ModifyStock records one immutable modification event and moves the
// variant's working quantity to the asserted absolute value. Calls for
// the same variant are serialized through a Redis lease.
func (uc *inventoryUseCase) ModifyStock(ctx context.Context, input *dto.ModifyStockInput) (*model.Variant, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if input.VariantID == "" {
		return nil, apperr.Precondition("variant id is missing")
	}
	if input.NewQuantity < 0 {
		return nil, apperr.Precondition("quantity must be non-negative")
	}

	lockKey := fmt.Sprintf("lock:stock:%s:%s", input.BusinessID, input.VariantID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.String("key", lockKey), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, apperr.Conflict(i18n.MsgSystemBusy)
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	v, err := uc.repo.FindVariantByID(ctx, input.BusinessID, input.VariantID)
	if err != nil {
		uc.logger.Error("failed to load variant for stock modification",
			zap.String("variant_id", input.VariantID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	if v == nil {
		return nil, nil
	}

	now := time.Now()
	mod := &model.StockModification{
		ID:          uuid.New().String(),
		BusinessID:  input.BusinessID,
		VariantID:   v.ID,
		NewQuantity: input.NewQuantity,
		Reason:      input.Reason,
		CreatedAt:   now,
	}

	v.Quantity = input.NewQuantity
	v.ActualQuantity = input.NewQuantity
	v.Status = model.DeriveStockStatus(v.Quantity, v.LowQuantity, uc.alarmQuantity)
	v.UpdatedAt = now

	if err := uc.repo.ModifyStockWithAudit(ctx, v, mod); err != nil {
		uc.logger.Error("failed to persist stock modification",
			zap.String("variant_id", v.ID), zap.Error(err))
		return nil, apperr.Storage(err)
	}

	go uc.invalidateVariantCache(context.Background(), input.BusinessID)
	go uc.syncVariantToSearch(context.Background(), v)

	return v, nil
}

func (uc *inventoryUseCase) ListModifications(ctx context.Context, filters *dto.ModificationFilters) ([]model.StockModification, int, error) {
	if filters.BusinessID == "" {
		return nil, 0, apperr.Precondition("business id is missing")
	}

	mods, count, err := uc.repo.ListModifications(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list stock modifications", zap.String("business_id", filters.BusinessID), zap.Error(err))
		return nil, 0, apperr.Storage(err)
	}
	return mods, count, nil
}

func (uc *inventoryUseCase) variantCacheKey(filters *dto.VariantFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("variants:list:%s:%x", filters.BusinessID, md5.Sum(data)), nil
}

func (uc *inventoryUseCase) invalidateVariantCache(ctx context.Context, businessID string) {
	pattern := fmt.Sprintf("variants:list:%s:*", businessID)
	if err := uc.cache.DeleteByPattern(ctx, pattern); err != nil {
		uc.logger.Error("failed to invalidate variant cache", zap.String("business_id", businessID), zap.Error(err))
	}
}

func (uc *inventoryUseCase) syncVariantToSearch(ctx context.Context, v *model.Variant) {
	if uc.es == nil {
		return
	}

	_ = uc.es.CreateIndex(ctx, variantIndex, variantMapping)

	if err := uc.es.Index(ctx, variantIndex, v.ID, v); err != nil {
		uc.logger.Error("failed to index variant", zap.String("variant_id", v.ID), zap.Error(err))
	}
}
