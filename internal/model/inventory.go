package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// StockStatus is derived from a variant's quantity and thresholds.
// It is never set independently of a quantity change.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusAlarm      StockStatus = "ALARM"
	StockStatusInStock    StockStatus = "IN_STOCK"
)

// Item is the parent stock-keeping record. Variants live in their own
// table and are loaded alongside the item.
type Item struct {
	BaseModel
	BusinessID string    `db:"business_id" json:"business_id"`
	Title      string    `db:"title" json:"title"`
	Packaging  string    `db:"packaging" json:"packaging"`
	Variants   []Variant `db:"-" json:"variants"`
}

// Variant is a sellable sub-unit of an item. The starting* fields are
// recorded at creation and never change; quantity, actual_quantity,
// value, status and full_name are the working snapshot that day-to-day
// stock modifications mutate.
type Variant struct {
	BaseModel
	BusinessID       string      `db:"business_id" json:"business_id"`
	ItemID           string      `db:"item_id" json:"item_id"`
	Name             string      `db:"name" json:"name"`
	StartingQuantity int         `db:"starting_quantity" json:"starting_quantity"`
	StartingValue    float64     `db:"starting_value" json:"starting_value"`
	LowQuantity      int         `db:"low_quantity" json:"low_quantity"`
	Status           StockStatus `db:"status" json:"status"`
	Quantity         int         `db:"quantity" json:"quantity"`
	ActualQuantity   int         `db:"actual_quantity" json:"actual_quantity"`
	Value            float64     `db:"value" json:"value"`
	FullName         string      `db:"full_name" json:"full_name"`
}

// StockModification is one immutable audit entry per manual stock
// adjustment. Rows are only ever inserted.
type StockModification struct {
	ID          string    `db:"id" json:"id"`
	BusinessID  string    `db:"business_id" json:"business_id"`
	VariantID   string    `db:"variant_id" json:"variant_id"`
	NewQuantity int       `db:"new_quantity" json:"new_quantity"`
	Reason      string    `db:"reason" json:"reason"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DeriveStockStatus maps a quantity onto a status, first match wins.
// A zero lowQuantity means the threshold was never set. Quantities are
// expected to be non-negative; negative input is a caller error.
func DeriveStockStatus(quantity, lowQuantity, alarmQuantity int) StockStatus {
	switch {
	case quantity == 0:
		return StockStatusOutOfStock
	case quantity <= lowQuantity:
		return StockStatusLowStock
	case quantity <= lowQuantity+alarmQuantity:
		return StockStatusAlarm
	default:
		return StockStatusInStock
	}
}

// ComposeFullName builds the denormalized display name for a variant:
// item title, packaging label and variant name joined by single spaces,
// lowercased with only the first letter capitalized. Empty parts are
// dropped so the result never carries stray whitespace.
func ComposeFullName(title, packaging, name string) string {
	full := strings.ToLower(strings.Join(strings.Fields(title+" "+packaging+" "+name), " "))
	if full == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(full)
	return string(unicode.ToUpper(r)) + full[size:]
}
