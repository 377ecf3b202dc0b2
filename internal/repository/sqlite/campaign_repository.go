package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

const createCampaignsTable = `
CREATE TABLE IF NOT EXISTS campaigns (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	game_system TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaigns_user_created ON campaigns(user_id, created_at);
`

type CampaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) repository.CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCampaignsTable); err != nil {
		return fmt.Errorf("create campaigns table: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	campaign.ID = uuid.NewString()
	campaign.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO campaigns (id, user_id, name, game_system, created_at)
VALUES (?, ?, ?, ?, ?)`,
		campaign.ID,
		campaign.UserID,
		campaign.Name,
		campaign.GameSystem,
		campaign.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, game_system, created_at
FROM campaigns
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []domain.Campaign{}
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *campaign)
	}

	return campaigns, rows.Err()
}

func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, game_system, created_at
FROM campaigns
WHERE id = ?`,
		id,
	)
	return scanCampaign(row)
}

func scanCampaign(scanner interface {
	Scan(dest ...any) error
}) (*domain.Campaign, error) {
	var (
		campaign  domain.Campaign
		createdAt time.Time
	)
	if err := scanner.Scan(
		&campaign.ID,
		&campaign.UserID,
		&campaign.Name,
		&campaign.GameSystem,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campaign not found")
		}
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	campaign.CreatedAt = createdAt.UTC()
	return &campaign, nil
}
