package repository

import (
	"context"

	"gmscreen/internal/domain"
)

// CampaignRepository exposes persistence operations for Campaign records.
// Reads are always scoped to an owning user; the store never hands one
// user's campaigns to another.
type CampaignRepository interface {
	Init(ctx context.Context) error
	// Create assigns ID and CreatedAt and fills them in on the given record.
	Create(ctx context.Context, campaign *domain.Campaign) error
	// ListByUser returns the campaigns owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
}

// CharacterRepository manages characters within campaigns.
type CharacterRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, character *domain.Character) error
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Character, error)
	Get(ctx context.Context, id string) (*domain.Character, error)
}

// ItemRepository manages items carried by characters.
type ItemRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, item *domain.Item) error
	ListByCharacter(ctx context.Context, characterID string) ([]domain.Item, error)
}

// JournalRepository manages campaign journal entries.
type JournalRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.JournalEntry) error
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.JournalEntry, error)
}
