// Package storetest holds the behaviour every database.Store backend must
// share, run against a common hierarchy.
package storetest

import (
	"context"
	_ "embed"
	"testing"
	"time"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

//go:embed hierarchy.yml
var hierarchy []byte

const (
	RootID    = "ecafbd2a-5688-11eb-ae93-0242ac130002"
	GuestRoot = "guest-root"
	// AnnaPasswordHash is the bcrypt hash of AnnaPassword.
	AnnaPasswordHash = "$2a$10$agnMU9ytnsgqfw0oKBCHRunygUuVeDg8.EVW5AuJzYPFqFW0S37XG"
	AnnaPassword     = "anna-password"
)

// Fixture returns a fresh copy of the shared hierarchy.
func Fixture(t *testing.T) *database.Fixture {
	t.Helper()
	f, err := Hierarchy()
	require.NoError(t, err)
	return f
}

// Hierarchy parses the shared hierarchy, for callers without a *testing.T.
func Hierarchy() (*database.Fixture, error) {
	return database.ParseFixture(hierarchy)
}

// Backend is a store that can also be seeded.
type Backend interface {
	database.Store
	database.Seeder
}

// Seed writes the shared hierarchy into s.
func Seed(t *testing.T, s database.Seeder) {
	t.Helper()
	require.NoError(t, database.Seed(context.Background(), s, Fixture(t)))
}

// Run exercises s, which must already hold the shared hierarchy.
func Run(t *testing.T, s Backend) {
	t.Run("LoadSnapshot", func(t *testing.T) { testLoadSnapshot(t, s) })
	t.Run("GetMember", func(t *testing.T) { testGetMember(t, s) })
	t.Run("Guests", func(t *testing.T) { testGuests(t, s) })
	t.Run("Memberships", func(t *testing.T) { testMemberships(t, s) })
	t.Run("MembershipRequests", func(t *testing.T) { testMembershipRequests(t, s) })
	t.Run("ItemLoginSessions", func(t *testing.T) { testItemLoginSessions(t, s) })
}

func testLoadSnapshot(t *testing.T, s Backend) {
	ctx := context.Background()
	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)

	items := snap.Items()
	require.GreaterOrEqual(t, len(items), 8)
	require.Equal(t, RootID, items[0].ID)
	require.Equal(t, "ecafbd2a_5688_11eb_ae93_0242ac130002", items[0].Path)

	pinned, ok := snap.Item("pinned-folder")
	require.True(t, ok)
	require.True(t, pinned.Settings.IsPinned)

	located, ok := snap.Item("located")
	require.True(t, ok)
	require.NotNil(t, located.Geolocation)
	require.InDelta(t, 46.2, located.Geolocation.Lat, 1e-9)
	require.NotNil(t, located.Geolocation.Country)
	require.Equal(t, "CH", *located.Geolocation.Country)

	reading, ok := snap.Item("reading")
	require.True(t, ok)
	require.Equal(t, models.ItemTypeDocument, reading.Type)
	require.NotNil(t, reading.MimeType)

	r := access.NewResolver(snap)

	d, err := r.Resolve(nil, RootID)
	require.NoError(t, err)
	require.Equal(t, access.Granted, d.Kind)
	require.Equal(t, models.PermissionRead, d.Permission)

	d, err = r.Resolve(&access.Actor{ID: "anna-id"}, "hidden-folder")
	require.NoError(t, err)
	require.Equal(t, models.PermissionWrite, d.Permission)

	d, err = r.Resolve(&access.Actor{ID: "bob-id"}, "private-root")
	require.NoError(t, err)
	require.Equal(t, access.DeniedUnauthorized, d.Kind)

	d, err = r.Resolve(&access.Actor{ID: "cedric-id"}, "private-root")
	require.NoError(t, err)
	require.Equal(t, models.PermissionAdmin, d.Permission)

	d, err = r.Resolve(nil, "guest-child")
	require.NoError(t, err)
	require.Equal(t, access.RequiresItemLogin, d.Kind)
	require.Equal(t, models.LoginUsernameAndPassword, d.LoginSchema)
	require.Equal(t, GuestRoot, d.LoginItemID)

	children, _, err := r.VisibleChildren(&access.Actor{ID: "bob-id"}, RootID)
	require.NoError(t, err)
	require.Equal(t, []string{"pinned-folder", "reading", "located"}, itemIDs(children))
}

func testGetMember(t *testing.T, s Backend) {
	ctx := context.Background()
	m, err := s.GetMemberByID(ctx, "anna-id")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "Anna", m.Name)
	require.False(t, m.IsGuest)

	m, err = s.GetMemberByID(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, m)

	m, err = s.GetMemberByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "anna-id", m.ID)
	require.Equal(t, AnnaPasswordHash, m.PasswordHash)

	m, err = s.GetMemberByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, m)
}

func testGuests(t *testing.T, s Backend) {
	ctx := context.Background()
	arg := database.CreateGuestParams{
		ID:           "guest-" + uuid.NewString(),
		ItemID:       GuestRoot,
		Name:         "pseudo-" + uuid.NewString()[:8],
		PasswordHash: "hash",
	}
	guest, err := s.CreateGuest(ctx, arg)
	require.NoError(t, err)
	require.Equal(t, arg.ID, guest.ID)
	require.True(t, guest.IsGuest)

	found, err := s.GetGuest(ctx, GuestRoot, arg.Name)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, arg.ID, found.ID)
	require.Equal(t, "hash", found.PasswordHash)

	missing, err := s.GetGuest(ctx, "ecafbd2a-5688-11eb-ae93-0242ac130002", arg.Name)
	require.NoError(t, err)
	require.Nil(t, missing)

	_, err = s.CreateGuest(ctx, database.CreateGuestParams{ID: "other-" + arg.ID, ItemID: GuestRoot, Name: arg.Name})
	require.ErrorIs(t, err, database.ErrGuestExists)

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	level, ok := snap.Memberships().MembershipOn(arg.ID, GuestRoot)
	require.True(t, ok)
	require.Equal(t, models.PermissionRead, level)

	d, err := access.NewResolver(snap).Resolve(&access.Actor{ID: arg.ID, Guest: true, ItemLoginItemID: GuestRoot}, "guest-child")
	require.NoError(t, err)
	require.Equal(t, access.Granted, d.Kind)
}

func testMemberships(t *testing.T, s Backend) {
	ctx := context.Background()
	m, err := s.CreateMembership(ctx, database.CreateMembershipParams{
		MemberID:   "cedric-id",
		ItemID:     "guest-child",
		Permission: models.PermissionWrite,
	})
	require.NoError(t, err)
	require.Equal(t, models.PermissionWrite, m.Permission)
	require.NotEqual(t, uuid.Nil, m.ID)

	_, err = s.CreateMembership(ctx, database.CreateMembershipParams{
		MemberID:   "cedric-id",
		ItemID:     "guest-child",
		Permission: models.PermissionRead,
	})
	require.ErrorIs(t, err, database.ErrMembershipExists)

	_, err = s.CreateMembership(ctx, database.CreateMembershipParams{
		MemberID:   "cedric-id",
		ItemID:     "no-such-item",
		Permission: models.PermissionRead,
	})
	require.ErrorIs(t, err, database.ErrItemNotFound)
}

func testMembershipRequests(t *testing.T, s Backend) {
	ctx := context.Background()
	r, err := s.CreateMembershipRequest(ctx, "bob-id", "private-root")
	require.NoError(t, err)
	require.Equal(t, "bob-id", r.MemberID)
	require.Equal(t, "private-root", r.ItemID)

	_, err = s.CreateMembershipRequest(ctx, "bob-id", "private-root")
	require.ErrorIs(t, err, database.ErrRequestAlreadyExists)

	_, err = s.CreateMembershipRequest(ctx, "bob-id", "no-such-item")
	require.ErrorIs(t, err, database.ErrItemNotFound)
}

func testItemLoginSessions(t *testing.T, s Backend) {
	ctx := context.Background()
	guest, err := s.CreateGuest(ctx, database.CreateGuestParams{
		ID:     "session-" + uuid.NewString(),
		ItemID: GuestRoot,
		Name:   "session-" + uuid.NewString()[:8],
	})
	require.NoError(t, err)

	err = s.CreateItemLoginSession(ctx, database.CreateItemLoginSessionParams{
		ID:        uuid.New(),
		GuestID:   guest.ID,
		ItemID:    GuestRoot,
		UserAgent: "test",
		ClientIP:  "127.0.0.1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	err = s.CreateItemLoginSession(ctx, database.CreateItemLoginSessionParams{
		ID:        uuid.New(),
		GuestID:   guest.ID,
		ItemID:    "no-such-item",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, database.ErrItemNotFound)
}

func itemIDs(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
