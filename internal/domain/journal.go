package domain

import "time"

// JournalEntry records session notes within a campaign.
type JournalEntry struct {
	ID         string
	CampaignID string
	Title      string
	Content    string
	CreatedAt  time.Time
}
