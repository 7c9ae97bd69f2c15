package model

import "time"

type ExpenseStatus string

const (
	ExpenseStatusPaid    ExpenseStatus = "PAID"
	ExpenseStatusPartial ExpenseStatus = "PARTIAL"
	ExpenseStatusUnpaid  ExpenseStatus = "UNPAID"
)

// Expense tracks an amount owed. Balance is what remains after the
// payments recorded against it; status is derived from the two.
type Expense struct {
	BaseModel
	BusinessID string        `db:"business_id" json:"business_id"`
	Title      string        `db:"title" json:"title"`
	Amount     float64       `db:"amount" json:"amount"`
	Balance    float64       `db:"balance" json:"balance"`
	Status     ExpenseStatus `db:"status" json:"status"`
}

// ExpensePayment is one recorded payment against an expense.
type ExpensePayment struct {
	ID         string    `db:"id" json:"id"`
	BusinessID string    `db:"business_id" json:"business_id"`
	ExpenseID  string    `db:"expense_id" json:"expense_id"`
	Amount     float64   `db:"amount" json:"amount"`
	Note       string    `db:"note" json:"note"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func DeriveExpenseStatus(balance, amount float64) ExpenseStatus {
	switch {
	case balance == 0:
		return ExpenseStatusPaid
	case balance < amount:
		return ExpenseStatusPartial
	default:
		return ExpenseStatusUnpaid
	}
}
