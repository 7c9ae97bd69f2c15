package expense

import (
	"context"

	"github.com/fahari-app/inventory-service/internal/expense/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type UseCase interface {
	CreateExpense(ctx context.Context, input *dto.CreateExpenseInput) (*model.Expense, error)
	GetExpense(ctx context.Context, businessID, id string) (*model.Expense, error)
	ListExpenses(ctx context.Context, filters *dto.ExpenseFilters) ([]model.Expense, int, error)

	RecordPayment(ctx context.Context, input *dto.RecordPaymentInput) (*model.ExpensePayment, error)
	GetPayment(ctx context.Context, businessID, id string) (*model.ExpensePayment, error)
	ListPayments(ctx context.Context, filters *dto.PaymentFilters) ([]model.ExpensePayment, int, error)
}
