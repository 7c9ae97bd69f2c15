package dto

import "time"

type CreateCampaignInput struct {
	BusinessID  string
	Title       string
	Description string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

type UpdateCampaignInput struct {
	ID          string
	BusinessID  string
	Title       string
	Description string
	Status      bool
	StartsAt    *time.Time
	EndsAt      *time.Time
}

type CampaignFilters struct {
	BusinessID  string
	SearchQuery string
	Status      *bool
	Limit       int
	Offset      int
}
