package model

import "time"

// Campaign is a promotional campaign owned by a business. Status is a
// simple active flag; new campaigns always start active.
type Campaign struct {
	BaseModel
	BusinessID  string     `db:"business_id" json:"business_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      bool       `db:"status" json:"status"`
	StartsAt    *time.Time `db:"starts_at" json:"starts_at"`
	EndsAt      *time.Time `db:"ends_at" json:"ends_at"`
}
