package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStockStatus(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		lowQuantity   int
		alarmQuantity int
		want          StockStatus
	}{
		{"zero quantity is out of stock", 0, 5, 3, StockStatusOutOfStock},
		{"zero quantity ignores thresholds", 0, 0, 0, StockStatusOutOfStock},
		{"at low threshold", 5, 5, 3, StockStatusLowStock},
		{"below low threshold", 3, 5, 3, StockStatusLowStock},
		{"inside alarm band", 7, 5, 3, StockStatusAlarm},
		{"at alarm upper bound", 8, 5, 3, StockStatusAlarm},
		{"above alarm band", 9, 5, 3, StockStatusInStock},
		{"unset low threshold treated as zero", 1, 0, 3, StockStatusAlarm},
		{"unset thresholds, positive quantity", 1, 0, 0, StockStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStockStatus(tt.quantity, tt.lowQuantity, tt.alarmQuantity)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every quantity maps onto exactly one status: the ladder is exhaustive
// and the ranges never overlap.
func TestDeriveStockStatusExhaustive(t *testing.T) {
	const low, alarm = 5, 3
	for q := 0; q <= 20; q++ {
		got := DeriveStockStatus(q, low, alarm)
		switch {
		case q == 0:
			assert.Equal(t, StockStatusOutOfStock, got, "quantity %d", q)
		case q <= low:
			assert.Equal(t, StockStatusLowStock, got, "quantity %d", q)
		case q <= low+alarm:
			assert.Equal(t, StockStatusAlarm, got, "quantity %d", q)
		default:
			assert.Equal(t, StockStatusInStock, got, "quantity %d", q)
		}
	}
}

func TestComposeFullName(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		packaging string
		variant   string
		want      string
	}{
		{"all parts", "Soap", "box", "Large", "Soap box large"},
		{"empty packaging", "Soap", "", "Large", "Soap large"},
		{"empty variant name", "Soap", "box", "", "Soap box"},
		{"surrounding whitespace", "  Soap ", " box ", " Large  ", "Soap box large"},
		{"all empty", "", "", "", ""},
		{"uppercase input normalized", "SOAP", "BOX", "LARGE", "Soap box large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeFullName(tt.title, tt.packaging, tt.variant)
			assert.Equal(t, tt.want, got)

			// Recomputation from the same inputs is stable.
			assert.Equal(t, got, ComposeFullName(tt.title, tt.packaging, tt.variant))
		})
	}
}
