package database_test

import (
	"context"
	"testing"
	"time"

	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/database/storetest"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	storetest.Seed(t, testStore)
	storetest.Run(t, testStore)
}

func TestPostgresStore_CreateItemRejectsDuplicatePath(t *testing.T) {
	ctx := context.Background()
	item := models.Item{ID: "dup-a", Name: "a", Path: "dup_a", Type: models.ItemTypeFolder}
	require.NoError(t, testStore.CreateItem(ctx, item))

	item.ID = "dup-b"
	require.ErrorIs(t, testStore.CreateItem(ctx, item), database.ErrItemExists)
}

func TestPostgresStore_ListItemLoginSessions(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testStore.CreateItem(ctx, models.Item{ID: "sessions-root", Name: "s", Path: "sessions_root", Type: models.ItemTypeFolder}))
	require.NoError(t, testStore.CreateItemLoginSchema(ctx, models.ItemLoginSchema{ItemID: "sessions-root", Type: models.LoginUsername}))

	guest, err := testStore.CreateGuest(ctx, database.CreateGuestParams{ID: "sessions-guest", ItemID: "sessions-root", Name: "g"})
	require.NoError(t, err)

	sessions, err := testStore.ListItemLoginSessions(ctx, guest.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)

	for _, expiresAt := range []time.Time{time.Now().Add(-time.Hour), time.Now().Add(time.Hour)} {
		err = testStore.CreateItemLoginSession(ctx, database.CreateItemLoginSessionParams{
			ID:        uuid.New(),
			GuestID:   guest.ID,
			ItemID:    "sessions-root",
			ExpiresAt: expiresAt,
		})
		require.NoError(t, err)
	}

	sessions, err = testStore.ListItemLoginSessions(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "sessions-root", sessions[0].ItemID)
}
