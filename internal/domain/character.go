package domain

import "time"

// Character belongs to a campaign. Data holds system-specific stats as an
// opaque JSON document so each rules system can shape it freely.
type Character struct {
	ID         string
	CampaignID string
	Name       string
	IsNPC      bool
	Data       map[string]any
	CreatedAt  time.Time
}

// Item is carried by a character. Properties covers system flags such as
// "bulky" in Cairn.
type Item struct {
	ID               string
	OwnerCharacterID string
	Name             string
	Description      string
	Quantity         int
	Properties       map[string]any
	CreatedAt        time.Time
}
