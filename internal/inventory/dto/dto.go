package dto

import "github.com/fahari-app/inventory-service/internal/model"

type ItemFilters struct {
	BusinessID  string
	SearchQuery string
	Limit       int
	Offset      int
}

type VariantFilters struct {
	BusinessID  string
	SearchQuery string
	Status      model.StockStatus
	Limit       int
	Offset      int
}

type ModificationFilters struct {
	BusinessID string
	VariantID  string
	Limit      int
	Offset     int
}
