package domain

import "time"

// DefaultGameSystem is the preselected rules system for new campaigns.
const DefaultGameSystem = "Cairn"

// SuggestedGameSystems returns the rules systems offered by the creation
// form. The set is advisory: the store accepts any non-empty string.
func SuggestedGameSystems() []string {
	return []string{
		DefaultGameSystem,
		"D&D 5e",
		"Blades in the Dark",
		"Call of Cthulhu",
	}
}

// Campaign is a single tabletop campaign owned by exactly one user.
// ID and CreatedAt are assigned by the store at insertion and are immutable,
// as is UserID.
type Campaign struct {
	ID         string
	UserID     string
	Name       string
	GameSystem string
	CreatedAt  time.Time
}
