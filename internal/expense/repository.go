package expense

import (
	"context"

	"github.com/fahari-app/inventory-service/internal/expense/dto"
	"github.com/fahari-app/inventory-service/internal/model"
)

type Repository interface {
	CreateExpense(ctx context.Context, expense *model.Expense) error
	FindExpenseByID(ctx context.Context, businessID, id string) (*model.Expense, error)
	FindAllExpenses(ctx context.Context, filters *dto.ExpenseFilters) ([]model.Expense, int, error)

	// RecordPayment inserts the payment row and updates the expense
	// balance/status in one transaction.
	RecordPayment(ctx context.Context, payment *model.ExpensePayment, expense *model.Expense) error
	FindPaymentByID(ctx context.Context, businessID, id string) (*model.ExpensePayment, error)
	FindAllPayments(ctx context.Context, filters *dto.PaymentFilters) ([]model.ExpensePayment, int, error)
}
