package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahari-app/inventory-service/internal/apperr"
	"github.com/fahari-app/inventory-service/internal/expense/dto"
	"github.com/fahari-app/inventory-service/internal/model"
	"github.com/fahari-app/inventory-service/pkg/logger"
)

type fakeRepo struct {
	mu       sync.Mutex
	expenses map[string]model.Expense
	payments map[string]model.ExpensePayment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		expenses: make(map[string]model.Expense),
		payments: make(map[string]model.ExpensePayment),
	}
}

func (r *fakeRepo) CreateExpense(_ context.Context, e *model.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID] = *e
	return nil
}

func (r *fakeRepo) FindExpenseByID(_ context.Context, businessID, id string) (*model.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.BusinessID != businessID {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeRepo) FindAllExpenses(_ context.Context, f *dto.ExpenseFilters) ([]model.Expense, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Expense
	for _, e := range r.expenses {
		if e.BusinessID != f.BusinessID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (r *fakeRepo) RecordPayment(_ context.Context, p *model.ExpensePayment, e *model.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID] = *p
	r.expenses[e.ID] = *e
	return nil
}

func (r *fakeRepo) FindPaymentByID(_ context.Context, businessID, id string) (*model.ExpensePayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) FindAllPayments(_ context.Context, f *dto.PaymentFilters) ([]model.ExpensePayment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ExpensePayment
	for _, p := range r.payments {
		if p.BusinessID != f.BusinessID {
			continue
		}
		if f.ExpenseID != "" && p.ExpenseID != f.ExpenseID {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func TestCreateExpenseStartsUnpaid(t *testing.T) {
	uc := NewExpenseUseCase(newFakeRepo(), logger.NewNop())

	e, err := uc.CreateExpense(context.Background(), &dto.CreateExpenseInput{
		BusinessID: "biz-1",
		Title:      "Rent",
		Amount:     100,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, e.Amount)
	assert.Equal(t, 100.0, e.Balance)
	assert.Equal(t, model.ExpenseStatusUnpaid, e.Status)
}

func TestCreateExpensePreconditions(t *testing.T) {
	uc := NewExpenseUseCase(newFakeRepo(), logger.NewNop())

	_, err := uc.CreateExpense(context.Background(), &dto.CreateExpenseInput{Title: "Rent", Amount: 100})
	assert.True(t, apperr.IsPrecondition(err))

	_, err = uc.CreateExpense(context.Background(), &dto.CreateExpenseInput{BusinessID: "biz-1", Amount: -1})
	assert.True(t, apperr.IsPrecondition(err))
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	repo := newFakeRepo()
	uc := NewExpenseUseCase(repo, logger.NewNop())
	ctx := context.Background()

	e, err := uc.CreateExpense(ctx, &dto.CreateExpenseInput{BusinessID: "biz-1", Title: "Rent", Amount: 100})
	require.NoError(t, err)

	p, err := uc.RecordPayment(ctx, &dto.RecordPaymentInput{
		BusinessID: "biz-1", ExpenseID: e.ID, Amount: 40, Note: "first installment",
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 40.0, p.Amount)

	after, err := uc.GetExpense(ctx, "biz-1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, after.Balance)
	assert.Equal(t, model.ExpenseStatusPartial, after.Status)

	_, err = uc.RecordPayment(ctx, &dto.RecordPaymentInput{
		BusinessID: "biz-1", ExpenseID: e.ID, Amount: 60,
	})
	require.NoError(t, err)

	after, err = uc.GetExpense(ctx, "biz-1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, after.Balance)
	assert.Equal(t, model.ExpenseStatusPaid, after.Status)

	payments, count, err := uc.ListPayments(ctx, &dto.PaymentFilters{BusinessID: "biz-1", ExpenseID: e.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, payments, 2)
}

func TestRecordPaymentPreconditions(t *testing.T) {
	uc := NewExpenseUseCase(newFakeRepo(), logger.NewNop())
	ctx := context.Background()

	_, err := uc.RecordPayment(ctx, &dto.RecordPaymentInput{ExpenseID: "e", Amount: 1})
	assert.True(t, apperr.IsPrecondition(err))

	_, err = uc.RecordPayment(ctx, &dto.RecordPaymentInput{BusinessID: "biz-1", Amount: 1})
	assert.True(t, apperr.IsPrecondition(err))

	_, err = uc.RecordPayment(ctx, &dto.RecordPaymentInput{BusinessID: "biz-1", ExpenseID: "e", Amount: 0})
	assert.True(t, apperr.IsPrecondition(err))
}

func TestRecordPaymentUnknownExpense(t *testing.T) {
	uc := NewExpenseUseCase(newFakeRepo(), logger.NewNop())

	p, err := uc.RecordPayment(context.Background(), &dto.RecordPaymentInput{
		BusinessID: "biz-1", ExpenseID: "missing", Amount: 10,
	})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetExpenseNotFound(t *testing.T) {
	uc := NewExpenseUseCase(newFakeRepo(), logger.NewNop())

	e, err := uc.GetExpense(context.Background(), "biz-1", "missing")
	require.NoError(t, err)
	assert.Nil(t, e)
}
