package memory

import (
	"context"
	"sync"
	"testing"

	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/database/storetest"
	"serwer-dostepu/internal/models"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s, err := FromFixture(context.Background(), storetest.Fixture(t))
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestStore_SnapshotIsNotAffectedByLaterWrites(t *testing.T) {
	ctx := context.Background()
	s, err := FromFixture(ctx, storetest.Fixture(t))
	require.NoError(t, err)

	before, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	count := len(before.Items())

	require.NoError(t, s.CreateItem(ctx, models.Item{ID: "late", Name: "late", Path: "late", Type: models.ItemTypeFolder}))

	require.Len(t, before.Items(), count)
	_, ok := before.Item("late")
	require.False(t, ok)

	after, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	_, ok = after.Item("late")
	require.True(t, ok)
}

func TestStore_CreateItemRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := New()
	item := models.Item{ID: "a", Name: "a", Path: "a", Type: models.ItemTypeFolder}
	require.NoError(t, s.CreateItem(ctx, item))
	require.ErrorIs(t, s.CreateItem(ctx, item), database.ErrItemExists)
}

func TestStore_CreateMembershipUnknownMember(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateItem(ctx, models.Item{ID: "a", Name: "a", Path: "a", Type: models.ItemTypeFolder}))

	_, err := s.CreateMembership(ctx, database.CreateMembershipParams{MemberID: "ghost", ItemID: "a", Permission: models.PermissionRead})
	require.ErrorIs(t, err, database.ErrMemberNotFound)
}

func TestStore_ConcurrentGuests(t *testing.T) {
	ctx := context.Background()
	s, err := FromFixture(ctx, storetest.Fixture(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateGuest(ctx, database.CreateGuestParams{
				ID:     "guest-" + string(rune('a'+i)),
				ItemID: storetest.GuestRoot,
				Name:   "same-name",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, database.ErrGuestExists)
	}
	require.Equal(t, 1, created)
}
