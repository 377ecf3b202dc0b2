package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gmscreen/internal/domain"
)

type fakeCampaignRepo struct {
	campaigns []domain.Campaign
	createErr error
	listErr   error
	creates   int
}

func (f *fakeCampaignRepo) Init(ctx context.Context) error { return nil }

func (f *fakeCampaignRepo) Create(ctx context.Context, campaign *domain.Campaign) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	campaign.ID = "c1"
	campaign.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.campaigns = append([]domain.Campaign{*campaign}, f.campaigns...)
	return nil
}

func (f *fakeCampaignRepo) ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.Campaign{}
	for _, c := range f.campaigns {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	for i := range f.campaigns {
		if f.campaigns[i].ID == id {
			c := f.campaigns[i]
			return &c, nil
		}
	}
	return nil, errors.New("campaign not found")
}

type fakeProbe struct {
	err error
}

func (f *fakeProbe) Check(ctx context.Context) error { return f.err }

func TestListCampaignsProbeFailure(t *testing.T) {
	repo := &fakeCampaignRepo{}
	svc := NewCampaignService(repo, &fakeProbe{err: errors.New("network error")})

	_, err := svc.ListCampaigns(context.Background(), "U123")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.Contains(t, err.Error(), "network error")
}

func TestListCampaignsQueryFailureAfterProbe(t *testing.T) {
	repo := &fakeCampaignRepo{listErr: errors.New("no such table: campaigns")}
	svc := NewCampaignService(repo, &fakeProbe{})

	_, err := svc.ListCampaigns(context.Background(), "U123")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrStoreUnavailable))
	require.Contains(t, err.Error(), "no such table")
}

func TestListCampaignsRequiresUser(t *testing.T) {
	svc := NewCampaignService(&fakeCampaignRepo{}, &fakeProbe{})

	_, err := svc.ListCampaigns(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingUser)
}

func TestCreateCampaignTrimsName(t *testing.T) {
	repo := &fakeCampaignRepo{}
	svc := NewCampaignService(repo, &fakeProbe{})

	campaign, err := svc.CreateCampaign(context.Background(), "U123", "  Dead Gods Rising  ", "Cairn")
	require.NoError(t, err)
	require.Equal(t, "Dead Gods Rising", campaign.Name)
	require.Equal(t, "Cairn", campaign.GameSystem)
	require.Equal(t, "U123", campaign.UserID)
	require.NotEmpty(t, campaign.ID)
	require.False(t, campaign.CreatedAt.IsZero())
}

func TestCreateCampaignRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		repo := &fakeCampaignRepo{}
		svc := NewCampaignService(repo, &fakeProbe{})

		_, err := svc.CreateCampaign(context.Background(), "U123", name, "Cairn")
		require.ErrorIs(t, err, ErrEmptyCampaignName)
		require.Zero(t, repo.creates, "no store mutation for empty name")
	}
}

func TestCreateCampaignRequiresUser(t *testing.T) {
	repo := &fakeCampaignRepo{}
	svc := NewCampaignService(repo, &fakeProbe{})

	_, err := svc.CreateCampaign(context.Background(), "", "Dead Gods Rising", "Cairn")
	require.ErrorIs(t, err, ErrMissingUser)
	require.Zero(t, repo.creates)
}

func TestCreateCampaignSurfacesStoreFailure(t *testing.T) {
	repo := &fakeCampaignRepo{createErr: errors.New("database is locked")}
	svc := NewCampaignService(repo, &fakeProbe{})

	_, err := svc.CreateCampaign(context.Background(), "U123", "Dead Gods Rising", "Cairn")
	require.Error(t, err)
	require.Contains(t, err.Error(), "database is locked")
	require.False(t, errors.Is(err, ErrStoreUnavailable))
}

func TestCreateCampaignDefaultsGameSystem(t *testing.T) {
	svc := NewCampaignService(&fakeCampaignRepo{}, &fakeProbe{})

	campaign, err := svc.CreateCampaign(context.Background(), "U123", "Dead Gods Rising", "  ")
	require.NoError(t, err)
	require.Equal(t, domain.DefaultGameSystem, campaign.GameSystem)
}

func TestGetCampaignHidesOtherOwners(t *testing.T) {
	repo := &fakeCampaignRepo{}
	svc := NewCampaignService(repo, &fakeProbe{})

	created, err := svc.CreateCampaign(context.Background(), "U123", "Dead Gods Rising", "Cairn")
	require.NoError(t, err)

	_, err = svc.GetCampaign(context.Background(), "U999", created.ID)
	require.ErrorIs(t, err, ErrCampaignNotFound)

	got, err := svc.GetCampaign(context.Background(), "U123", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}
