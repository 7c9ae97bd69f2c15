package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahari-app/inventory-service/internal/apperr"
	"github.com/fahari-app/inventory-service/internal/campaign/dto"
	"github.com/fahari-app/inventory-service/internal/model"
	"github.com/fahari-app/inventory-service/pkg/logger"
)

type fakeRepo struct {
	mu        sync.Mutex
	campaigns map[string]model.Campaign
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{campaigns: make(map[string]model.Campaign)}
}

func (r *fakeRepo) Create(_ context.Context, c *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = *c
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, businessID, id string) (*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok || c.BusinessID != businessID {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeRepo) FindAll(_ context.Context, f *dto.CampaignFilters) ([]model.Campaign, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Campaign
	for _, c := range r.campaigns {
		if c.BusinessID != f.BusinessID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, c *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = *c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, businessID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.campaigns, id)
	return nil
}

func TestCreateCampaignStartsActive(t *testing.T) {
	uc := NewCampaignUseCase(newFakeRepo(), logger.NewNop())

	c, err := uc.CreateCampaign(context.Background(), &dto.CreateCampaignInput{
		BusinessID:  "biz-1",
		Title:       "Holiday sale",
		Description: "Season discounts",
	})
	require.NoError(t, err)
	assert.True(t, c.Status)
	assert.NotEmpty(t, c.ID)
}

func TestCreateCampaignRequiresBusinessID(t *testing.T) {
	uc := NewCampaignUseCase(newFakeRepo(), logger.NewNop())

	_, err := uc.CreateCampaign(context.Background(), &dto.CreateCampaignInput{Title: "Holiday sale"})
	assert.True(t, apperr.IsPrecondition(err))
}

func TestUpdateCampaignDeactivates(t *testing.T) {
	uc := NewCampaignUseCase(newFakeRepo(), logger.NewNop())
	ctx := context.Background()

	c, err := uc.CreateCampaign(ctx, &dto.CreateCampaignInput{BusinessID: "biz-1", Title: "Holiday sale"})
	require.NoError(t, err)

	updated, err := uc.UpdateCampaign(ctx, &dto.UpdateCampaignInput{
		ID:         c.ID,
		BusinessID: "biz-1",
		Title:      "Holiday sale",
		Status:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Status)
}

func TestUpdateCampaignUnknownID(t *testing.T) {
	uc := NewCampaignUseCase(newFakeRepo(), logger.NewNop())

	c, err := uc.UpdateCampaign(context.Background(), &dto.UpdateCampaignInput{
		ID:         "missing",
		BusinessID: "biz-1",
	})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDeleteCampaign(t *testing.T) {
	uc := NewCampaignUseCase(newFakeRepo(), logger.NewNop())
	ctx := context.Background()

	c, err := uc.CreateCampaign(ctx, &dto.CreateCampaignInput{BusinessID: "biz-1", Title: "Holiday sale"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCampaign(ctx, "biz-1", c.ID))

	got, err := uc.GetCampaign(ctx, "biz-1", c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListCampaignsFiltersByStatus(t *testing.T) {
	uc := NewCampaignUseCase(newFakeRepo(), logger.NewNop())
	ctx := context.Background()

	first, err := uc.CreateCampaign(ctx, &dto.CreateCampaignInput{BusinessID: "biz-1", Title: "Holiday sale"})
	require.NoError(t, err)
	_, err = uc.CreateCampaign(ctx, &dto.CreateCampaignInput{BusinessID: "biz-1", Title: "Clearance"})
	require.NoError(t, err)

	_, err = uc.UpdateCampaign(ctx, &dto.UpdateCampaignInput{
		ID: first.ID, BusinessID: "biz-1", Title: first.Title, Status: false,
	})
	require.NoError(t, err)

	active := true
	campaigns, count, err := uc.ListCampaigns(ctx, &dto.CampaignFilters{BusinessID: "biz-1", Status: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "Clearance", campaigns[0].Title)
}
