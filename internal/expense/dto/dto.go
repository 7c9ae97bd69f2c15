package dto

import "github.com/fahari-app/inventory-service/internal/model"

type CreateExpenseInput struct {
	BusinessID string
	Title      string
	Amount     float64
}

type RecordPaymentInput struct {
	BusinessID string
	ExpenseID  string
	Amount     float64
	Note       string
}

type ExpenseFilters struct {
	BusinessID string
	Status     model.ExpenseStatus
	Limit      int
	Offset     int
}

type PaymentFilters struct {
	BusinessID string
	ExpenseID  string
	Limit      int
	Offset     int
}
