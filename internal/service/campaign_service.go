package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

var (
	// ErrStoreUnavailable indicates the connectivity probe failed before the
	// real query was attempted; the database is unreachable or its schema
	// was never initialized.
	ErrStoreUnavailable = errors.New("campaign store unavailable")
	// ErrMissingUser indicates an operation was attempted without a signed-in user.
	ErrMissingUser = errors.New("a signed-in user is required")
	// ErrEmptyCampaignName is returned when the campaign name is empty after trimming.
	ErrEmptyCampaignName = errors.New("campaign name is required")
	// ErrCampaignNotFound covers both missing campaigns and campaigns owned
	// by another user, so ownership is never leaked.
	ErrCampaignNotFound = errors.New("campaign not found")
)

// CampaignService owns the campaign list and creation flow.
type CampaignService interface {
	// ListCampaigns returns the campaigns owned by userID, newest first.
	// It probes store connectivity before the real query so callers can tell
	// a dead store from a failing query.
	ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error)
	CreateCampaign(ctx context.Context, userID, name, gameSystem string) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error)
}

type campaignService struct {
	campaigns repository.CampaignRepository
	probe     repository.Probe
}

func NewCampaignService(campaigns repository.CampaignRepository, probe repository.Probe) CampaignService {
	return &campaignService{
		campaigns: campaigns,
		probe:     probe,
	}
}

func (s *campaignService) ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	if s.probe != nil {
		if err := s.probe.Check(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	campaigns, err := s.campaigns.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *campaignService) CreateCampaign(ctx context.Context, userID, name, gameSystem string) (*domain.Campaign, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCampaignName
	}

	gameSystem = strings.TrimSpace(gameSystem)
	if gameSystem == "" {
		gameSystem = domain.DefaultGameSystem
	}

	campaign := &domain.Campaign{
		UserID:     userID,
		Name:       name,
		GameSystem: gameSystem,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	campaign, err := s.campaigns.Get(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.UserID != userID {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}
