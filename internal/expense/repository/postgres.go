package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fahari-app/inventory-service/internal/expense/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateExpense(ctx context.Context, e *model.Expense) error {
	query := `
        INSERT INTO expenses (id, business_id, title, amount, balance, status, created_at, updated_at)
        VALUES (:id, :business_id, :title, :amount, :balance, :status, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) FindExpenseByID(ctx context.Context, businessID, id string) (*model.Expense, error) {
	var e model.Expense
	query := `SELECT * FROM expenses WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &e, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) FindAllExpenses(ctx context.Context, f *dto.ExpenseFilters) ([]model.Expense, int, error) {
	var expenses []model.Expense
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = string(f.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM expenses" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM expenses" + whereClause + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &expenses, args)
	return expenses, count, err
}

func (r *PGRepository) RecordPayment(ctx context.Context, p *model.ExpensePayment, e *model.Expense) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertQuery := `
        INSERT INTO expense_payments (id, business_id, expense_id, amount, note, created_at)
        VALUES (:id, :business_id, :expense_id, :amount, :note, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, p); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	updateQuery := `
        UPDATE expenses
        SET balance = :balance,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id AND business_id = :business_id
    `
	if _, err := tx.NamedExecContext(ctx, updateQuery, e); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) FindPaymentByID(ctx context.Context, businessID, id string) (*model.ExpensePayment, error) {
	var p model.ExpensePayment
	query := `SELECT * FROM expense_payments WHERE id = $1 AND business_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAllPayments(ctx context.Context, f *dto.PaymentFilters) ([]model.ExpensePayment, int, error) {
	var payments []model.ExpensePayment
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BusinessID != "" {
		conditions = append(conditions, "business_id = :business_id")
		args["business_id"] = f.BusinessID
	}
	if f.ExpenseID != "" {
		conditions = append(conditions, "expense_id = :expense_id")
		args["expense_id"] = f.ExpenseID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM expense_payments" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM expense_payments" + whereClause + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &payments, args)
	return payments, count, err
}
