package dto

// VariantDraft is caller-supplied variant data. An empty ID means a new
// variant; a set ID updates the existing one. Computed fields (status,
// full name, working quantity and value) are never taken from the
// draft.
type VariantDraft struct {
	ID               string
	Name             string
	StartingQuantity int
	StartingValue    float64
	LowQuantity      int
}

type CreateItemInput struct {
	BusinessID string
	Title      string
	Packaging  string
	Variants   []VariantDraft
}

type UpdateItemInput struct {
	ID         string
	BusinessID string
	Title      string
	Packaging  string
	Variants   []VariantDraft
}

type ModifyStockInput struct {
	BusinessID  string
	VariantID   string
	NewQuantity int
	Reason      string
}
