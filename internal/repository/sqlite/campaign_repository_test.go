package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gmscreen/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewCampaignRepository(db).Init(ctx))
	require.NoError(t, NewCharacterRepository(db).Init(ctx))
	require.NoError(t, NewItemRepository(db).Init(ctx))
	require.NoError(t, NewJournalRepository(db).Init(ctx))

	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) string {
	t.Helper()

	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	id, err := NewUserRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	return id
}

func TestCampaignRepositoryCreateAssignsIDAndTimestamp(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db, "gm")

	repo := NewCampaignRepository(db)
	campaign := &domain.Campaign{
		UserID:     userID,
		Name:       "Dead Gods Rising",
		GameSystem: "Cairn",
	}
	require.NoError(t, repo.Create(ctx, campaign))

	require.NotEmpty(t, campaign.ID)
	require.False(t, campaign.CreatedAt.IsZero())

	got, err := repo.Get(ctx, campaign.ID)
	require.NoError(t, err)
	require.Equal(t, "Dead Gods Rising", got.Name)
	require.Equal(t, "Cairn", got.GameSystem)
	require.Equal(t, userID, got.UserID)
}

func TestCampaignRepositoryListByUserOrdersNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db, "gm")

	// Insert directly so creation times are distinct and controlled.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		id   string
		name string
		at   time.Time
	}{
		{"c-old", "Oldest", base},
		{"c-mid", "Middle", base.Add(time.Hour)},
		{"c-new", "Newest", base.Add(2 * time.Hour)},
	}
	for _, row := range rows {
		_, err := db.ExecContext(ctx, `
INSERT INTO campaigns (id, user_id, name, game_system, created_at)
VALUES (?, ?, ?, ?, ?)`,
			row.id, userID, row.name, "Cairn", row.at,
		)
		require.NoError(t, err)
	}

	repo := NewCampaignRepository(db)
	campaigns, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	require.Equal(t, "Newest", campaigns[0].Name)
	require.Equal(t, "Middle", campaigns[1].Name)
	require.Equal(t, "Oldest", campaigns[2].Name)
}

func TestCampaignRepositoryListByUserScopesToOwner(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	repo := NewCampaignRepository(db)
	require.NoError(t, repo.Create(ctx, &domain.Campaign{UserID: alice, Name: "Alice's Game", GameSystem: "Cairn"}))
	require.NoError(t, repo.Create(ctx, &domain.Campaign{UserID: bob, Name: "Bob's Game", GameSystem: "D&D 5e"}))

	campaigns, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	require.Equal(t, "Alice's Game", campaigns[0].Name)
}

func TestCampaignRepositoryListByUserIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db, "gm")

	repo := NewCampaignRepository(db)
	require.NoError(t, repo.Create(ctx, &domain.Campaign{UserID: userID, Name: "One", GameSystem: "Cairn"}))
	require.NoError(t, repo.Create(ctx, &domain.Campaign{UserID: userID, Name: "Two", GameSystem: "Cairn"}))

	first, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	second, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCampaignRepositoryListByUserEmpty(t *testing.T) {
	db := openTestDB(t)
	userID := createTestUser(t, db, "gm")

	campaigns, err := NewCampaignRepository(db).ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, campaigns)
	require.Empty(t, campaigns)
}

func TestProbeFailsWithoutSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = NewProbe(db).Check(context.Background())
	require.Error(t, err)
}

func TestProbeSucceedsWithSchema(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewProbe(db).Check(context.Background()))
}
