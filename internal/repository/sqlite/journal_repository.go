package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

const createJournalEntriesTable = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id TEXT PRIMARY KEY,
	campaign_id TEXT NOT NULL REFERENCES campaigns(id),
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_campaign ON journal_entries(campaign_id);
`

type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) repository.JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createJournalEntriesTable); err != nil {
		return fmt.Errorf("create journal entries table: %w", err)
	}
	return nil
}

func (r *JournalRepository) Create(ctx context.Context, entry *domain.JournalEntry) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO journal_entries (id, campaign_id, title, content, created_at)
VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CampaignID,
		entry.Title,
		entry.Content,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (r *JournalRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, campaign_id, title, content, created_at
FROM journal_entries
WHERE campaign_id = ?
ORDER BY created_at DESC, id DESC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var (
			entry     domain.JournalEntry
			createdAt time.Time
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.CampaignID,
			&entry.Title,
			&entry.Content,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.CreatedAt = createdAt.UTC()
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
