package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahari-app/inventory-service/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	return NewPGRepository(db), mock
}

func TestModifyStockWithAuditWritesAuditRowFirst(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	v := &model.Variant{
		BaseModel:  model.BaseModel{ID: "var-1", UpdatedAt: now},
		BusinessID: "biz-1",
		Quantity:   3,
		Status:     model.StockStatusLowStock,
	}
	mod := &model.StockModification{
		ID:          "mod-1",
		BusinessID:  "biz-1",
		VariantID:   "var-1",
		NewQuantity: 3,
		Reason:      "recount",
		CreatedAt:   now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO stock_modifications").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE inventory_variants").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ModifyStockWithAudit(context.Background(), v, mod)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModifyStockWithAuditRollsBackOnAuditFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO stock_modifications").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.ModifyStockWithAudit(context.Background(), &model.Variant{}, &model.StockModification{})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindVariantByIDNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT \\* FROM inventory_variants WHERE id").
		WithArgs("missing", "biz-1").
		WillReturnError(sql.ErrNoRows)

	v, err := repo.FindVariantByID(context.Background(), "biz-1", "missing")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindVariantByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "business_id", "item_id", "name", "status", "quantity", "full_name"}).
		AddRow("var-1", "biz-1", "item-1", "Large", "LOW_STOCK", 3, "Soap box large")

	mock.ExpectQuery("SELECT \\* FROM inventory_variants WHERE id").
		WithArgs("var-1", "biz-1").
		WillReturnRows(rows)

	v, err := repo.FindVariantByID(context.Background(), "biz-1", "var-1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "Soap box large", v.FullName)
	assert.Equal(t, model.StockStatusLowStock, v.Status)
	assert.Equal(t, 3, v.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateItemInsertsItemThenVariants(t *testing.T) {
	repo, mock := newMockRepo(t)

	item := &model.Item{
		BaseModel:  model.BaseModel{ID: "item-1"},
		BusinessID: "biz-1",
		Title:      "Soap",
		Variants: []model.Variant{
			{BaseModel: model.BaseModel{ID: "var-1"}, BusinessID: "biz-1", ItemID: "item-1", Name: "Large"},
			{BaseModel: model.BaseModel{ID: "var-2"}, BusinessID: "biz-1", ItemID: "item-1", Name: "Small"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO inventory_items").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory_variants").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory_variants").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteItemLeavesModificationsBehind(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM inventory_variants").
		WithArgs("item-1", "biz-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM inventory_items").
		WithArgs("item-1", "biz-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteItem(context.Background(), "biz-1", "item-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindItemByIDNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT \\* FROM inventory_items WHERE id").
		WithArgs("missing", "biz-1").
		WillReturnError(sql.ErrNoRows)

	item, err := repo.FindItemByID(context.Background(), "biz-1", "missing")
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}
