package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fahari-app/inventory-service/internal/inventory/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertVariantQuery = `
        INSERT INTO inventory_variants (
            id, business_id, item_id, name,
            starting_quantity, starting_value, low_quantity,
            status, quantity, actual_quantity, value, full_name,
            created_at, updated_at
        )
        VALUES (
            :id, :business_id, :item_id, :name,
            :starting_quantity, :starting_value, :low_quantity,
            :status, :quantity, :actual_quantity, :value, :full_name,
            :created_at, :updated_at
        )
    `

func (r *PGRepository) CreateItem(ctx context.Context, item *model.Item) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	itemQuery := `
        INSERT INTO inventory_items (id, business_id, title, packaging, created_at, updated_at)
        VALUES (:id, :business_id, :title, :packaging, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	for i := range item.Variants {
		if _, err := tx.NamedExecContext(ctx, insertVariantQuery, &item.Variants[i]); err != nil {
			return fmt.Errorf("failed to insert variant: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindItemByID(ctx context.Context, businessID, id string) (*model.Item, error) {
	var item model.Item
	query := `SELECT * FROM inventory_items WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	variantQuery := `SELECT * FROM inventory_variants WHERE item_id = $1 ORDER BY full_name ASC`
	if err := r.DB.SelectContext(ctx, &item.Variants, variantQuery, id); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *PGRepository) FindAllItems(ctx context.Context, f *dto.ItemFilters) ([]model.Item, int, error) {
	var items []model.Item
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "title ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_items" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_items" + whereClause + " ORDER BY title ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, err
	}

	if err := r.attachVariants(ctx, items); err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

// attachVariants loads the variants for every item in one query and
// groups them onto their parents.
func (r *PGRepository) attachVariants(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	query, args, err := sqlx.In(`
        SELECT * FROM inventory_variants
        WHERE item_id IN (?)
        ORDER BY full_name ASC
    `, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var variants []model.Variant
	if err := r.DB.SelectContext(ctx, &variants, query, args...); err != nil {
		return err
	}

	byItem := make(map[string][]model.Variant, len(items))
	for _, v := range variants {
		byItem[v.ItemID] = append(byItem[v.ItemID], v)
	}
	for i := range items {
		items[i].Variants = byItem[items[i].ID]
	}
	return nil
}

func (r *PGRepository) UpdateItem(ctx context.Context, item *model.Item) error {
	query := `
        UPDATE inventory_items
        SET title = :title,
            packaging = :packaging,
            updated_at = :updated_at
        WHERE id = :id AND business_id = :business_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) DeleteItem(ctx context.Context, businessID, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Modification rows are intentionally left behind: the audit trail
	// outlives the records it describes.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM inventory_variants WHERE item_id = $1 AND business_id = $2`, id, businessID); err != nil {
		return fmt.Errorf("failed to delete variants: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM inventory_items WHERE id = $1 AND business_id = $2`, id, businessID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.Variant) error {
	_, err := r.DB.NamedExecContext(ctx, insertVariantQuery, v)
	return err
}

const updateVariantQuery = `
        UPDATE inventory_variants
        SET name = :name,
            starting_quantity = :starting_quantity,
            starting_value = :starting_value,
            low_quantity = :low_quantity,
            status = :status,
            quantity = :quantity,
            actual_quantity = :actual_quantity,
            value = :value,
            full_name = :full_name,
            updated_at = :updated_at
        WHERE id = :id AND business_id = :business_id
    `

func (r *PGRepository) UpdateVariant(ctx context.Context, v *model.Variant) error {
	_, err := r.DB.NamedExecContext(ctx, updateVariantQuery, v)
	return err
}

func (r *PGRepository) FindVariantByID(ctx context.Context, businessID, id string) (*model.Variant, error) {
	var v model.Variant
	query := `SELECT * FROM inventory_variants WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &v, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) FindAllVariants(ctx context.Context, f *dto.VariantFilters) ([]model.Variant, int, error) {
	var variants []model.Variant
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR full_name ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = string(f.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_variants" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_variants" + whereClause + " ORDER BY full_name ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &variants, args)
	return variants, count, err
}

func (r *PGRepository) ModifyStockWithAudit(ctx context.Context, v *model.Variant, mod *model.StockModification) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Audit row first so the trail never misses an adjustment.
	insertModQuery := `
        INSERT INTO stock_modifications (id, business_id, variant_id, new_quantity, reason, created_at)
        VALUES (:id, :business_id, :variant_id, :new_quantity, :reason, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, insertModQuery, mod); err != nil {
		return fmt.Errorf("failed to insert stock modification: %w", err)
	}

	if _, err := tx.NamedExecContext(ctx, updateVariantQuery, v); err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListModifications(ctx context.Context, f *dto.ModificationFilters) ([]model.StockModification, int, error) {
	var mods []model.StockModification
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_modifications" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_modifications" + whereClause + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &mods, args)
	return mods, count, err
}
