package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fahari-app/inventory-service/internal/apperr"
	"github.com/fahari-app/inventory-service/internal/expense"
	"github.com/fahari-app/inventory-service/internal/expense/dto"
	"github.com/fahari-app/inventory-service/internal/model"
	"github.com/fahari-app/inventory-service/pkg/logger"
)

type expenseUseCase struct {
	repo   expense.Repository
	logger logger.Logger
}

func NewExpenseUseCase(repo expense.Repository, log logger.Logger) expense.UseCase {
	return &expenseUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *expenseUseCase) CreateExpense(ctx context.Context, input *dto.CreateExpenseInput) (*model.Expense, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if input.Amount < 0 {
		return nil, apperr.Precondition("amount must be non-negative")
	}

	now := time.Now()
	e := &model.Expense{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID: input.BusinessID,
		Title:      input.Title,
		Amount:     input.Amount,
		Balance:    input.Amount,
		Status:     model.DeriveExpenseStatus(input.Amount, input.Amount),
	}

	if err := uc.repo.CreateExpense(ctx, e); err != nil {
		uc.logger.Error("failed to create expense", zap.String("business_id", input.BusinessID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return e, nil
}

func (uc *expenseUseCase) GetExpense(ctx context.Context, businessID, id string) (*model.Expense, error) {
	if businessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if id == "" {
		return nil, nil
	}

	e, err := uc.repo.FindExpenseByID(ctx, businessID, id)
	if err != nil {
		uc.logger.Error("failed to load expense", zap.String("expense_id", id), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return e, nil
}

func (uc *expenseUseCase) ListExpenses(ctx context.Context, filters *dto.ExpenseFilters) ([]model.Expense, int, error) {
	if filters.BusinessID == "" {
		return nil, 0, apperr.Precondition("business id is missing")
	}

	expenses, count, err := uc.repo.FindAllExpenses(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list expenses", zap.String("business_id", filters.BusinessID), zap.Error(err))
		return nil, 0, apperr.Storage(err)
	}
	return expenses, count, nil
}

// RecordPayment subtracts the payment from the expense balance and
// derives the new status, writing both rows in one transaction.
func (uc *expenseUseCase) RecordPayment(ctx context.Context, input *dto.RecordPaymentInput) (*model.ExpensePayment, error) {
	if input.BusinessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if input.ExpenseID == "" {
		return nil, apperr.Precondition("expense id is missing")
	}
	if input.Amount <= 0 {
		return nil, apperr.Precondition("payment amount must be positive")
	}

	e, err := uc.repo.FindExpenseByID(ctx, input.BusinessID, input.ExpenseID)
	if err != nil {
		uc.logger.Error("failed to load expense for payment", zap.String("expense_id", input.ExpenseID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	if e == nil {
		return nil, nil
	}

	now := time.Now()
	e.Balance -= input.Amount
	e.Status = model.DeriveExpenseStatus(e.Balance, e.Amount)
	e.UpdatedAt = now

	p := &model.ExpensePayment{
		ID:         uuid.New().String(),
		BusinessID: input.BusinessID,
		ExpenseID:  input.ExpenseID,
		Amount:     input.Amount,
		Note:       input.Note,
		CreatedAt:  now,
	}

	if err := uc.repo.RecordPayment(ctx, p, e); err != nil {
		uc.logger.Error("failed to record payment", zap.String("expense_id", input.ExpenseID), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (uc *expenseUseCase) GetPayment(ctx context.Context, businessID, id string) (*model.ExpensePayment, error) {
	if businessID == "" {
		return nil, apperr.Precondition("business id is missing")
	}
	if id == "" {
		return nil, nil
	}

	p, err := uc.repo.FindPaymentByID(ctx, businessID, id)
	if err != nil {
		uc.logger.Error("failed to load payment", zap.String("payment_id", id), zap.Error(err))
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (uc *expenseUseCase) ListPayments(ctx context.Context, filters *dto.PaymentFilters) ([]model.ExpensePayment, int, error) {
	if filters.BusinessID == "" {
		return nil, 0, apperr.Precondition("business id is missing")
	}

	payments, count, err := uc.repo.FindAllPayments(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list payments", zap.String("business_id", filters.BusinessID), zap.Error(err))
		return nil, 0, apperr.Storage(err)
	}
	return payments, count, nil
}
