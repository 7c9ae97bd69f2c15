package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fahari-app/inventory-service/internal/campaign/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Campaign) error {
	query := `
        INSERT INTO campaigns (id, business_id, title, description, status, starts_at, ends_at, created_at, updated_at)
        VALUES (:id, :business_id, :title, :description, :status, :starts_at, :ends_at, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, businessID, id string) (*model.Campaign, error) {
	var c model.Campaign
	query := `SELECT * FROM campaigns WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CampaignFilters) ([]model.Campaign, int, error) {
	var campaigns []model.Campaign
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
	if f.Status != nil {
		conditions = append(conditions, "status = :status")
		args["status"] = *f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM campaigns" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM campaigns" + whereClause + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &campaigns, args)
	return campaigns, count, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET title = :title,
            description = :description,
            status = :status,
            starts_at = :starts_at,
            ends_at = :ends_at,
            updated_at = :updated_at
        WHERE id = :id AND business_id = :business_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, businessID, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1 AND business_id = $2`, id, businessID)
	return err
}
