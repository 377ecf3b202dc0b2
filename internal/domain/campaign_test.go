package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestedGameSystems(t *testing.T) {
	systems := SuggestedGameSystems()
	require.NotEmpty(t, systems)
	require.Equal(t, DefaultGameSystem, systems[0], "default system leads the suggestions")

	seen := map[string]bool{}
	for _, s := range systems {
		require.NotEmpty(t, s)
		require.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}
