package access

import (
	"testing"

	"serwer-dostepu/internal/models"

	"github.com/stretchr/testify/require"
)

func fiveOrderedFolders() (*Snapshot, []models.Item) {
	root := createdBy(folder(folderWithFiveChildren, nil), anna)
	items := []models.Item{root}
	for _, id := range []string{
		"fdf09f5a-5688-11eb-ae93-0242ac130003",
		"fdf09f5a-5688-11eb-ae93-0242ac130004",
		"fdf09f5a-5688-11eb-ae93-0242ac130007",
		"fdf09f5a-5688-11eb-ae93-0242ac130008",
		"fdf09f5a-5688-11eb-ae93-0242ac130009",
	} {
		items = append(items, folder(id, &root))
	}
	items = append(items, document("fdf09f5a-5688-11eb-ae93-0242ac130010", &items[1]))
	snap := NewSnapshot(SnapshotData{
		Items:       items,
		Memberships: []models.Membership{membership(bob, folderWithFiveChildren, models.PermissionRead)},
	})
	return snap, items
}

func TestNavigation_InOrder(t *testing.T) {
	snap, items := fiveOrderedFolders()
	r := NewResolver(snap)

	nav, decision, err := r.Navigation(member(anna), items[0].ID, items[0].ID, false)
	require.NoError(t, err)
	require.True(t, decision.IsGranted())
	require.Nil(t, nav.Previous)
	require.Equal(t, items[1].ID, nav.Next.ID)

	nav, _, err = r.Navigation(member(anna), items[0].ID, items[1].ID, false)
	require.NoError(t, err)
	require.Equal(t, items[0].ID, nav.Previous.ID, "the first folder goes back to the root")
	require.Equal(t, items[2].ID, nav.Next.ID)

	nav, _, err = r.Navigation(member(anna), items[0].ID, items[5].ID, false)
	require.NoError(t, err)
	require.Equal(t, items[4].ID, nav.Previous.ID)
	require.Nil(t, nav.Next)

	nav, _, err = r.Navigation(member(anna), items[0].ID, items[6].ID, false)
	require.NoError(t, err)
	require.Equal(t, Navigation{}, nav, "documents are not part of the folder hierarchy")
}

func TestNavigation_Shuffled(t *testing.T) {
	snap, items := fiveOrderedFolders()
	r := NewResolver(snap)
	root := items[0].ID

	// anna sees the children of this root as [4, 1, 3, 2, 5]
	nav, _, err := r.Navigation(member(anna), root, root, true)
	require.NoError(t, err)
	require.Equal(t, items[4].ID, nav.Next.ID)

	nav, _, err = r.Navigation(member(anna), root, items[3].ID, true)
	require.NoError(t, err)
	require.Equal(t, items[1].ID, nav.Previous.ID)
	require.Equal(t, items[2].ID, nav.Next.ID)

	// bob sees [2, 3, 1, 4, 5]
	nav, _, err = r.Navigation(member(bob), root, root, true)
	require.NoError(t, err)
	require.Equal(t, items[2].ID, nav.Next.ID)

	nav, _, err = r.Navigation(member(bob), root, items[5].ID, true)
	require.NoError(t, err)
	require.Equal(t, items[4].ID, nav.Previous.ID)
	require.Nil(t, nav.Next, "the last folder stays last")
}

func TestNavigation_Denied(t *testing.T) {
	snap, items := fiveOrderedFolders()
	r := NewResolver(snap)

	_, decision, err := r.Navigation(member(cedric), items[0].ID, items[1].ID, true)
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind)
}

func TestGeolocation_ClosestAncestorWins(t *testing.T) {
	root := createdBy(folder("root", nil), anna)
	root.Geolocation = &models.Geolocation{Lat: 46.5, Lng: 6.6}
	child := folder("child", &root)
	child.Geolocation = &models.Geolocation{Lat: 47.3, Lng: 8.5}
	leaf := document("leaf", &child)
	plain := document("plain", &root)
	r := NewResolver(NewSnapshot(SnapshotData{Items: []models.Item{root, child, leaf, plain}}))

	loc, _, err := r.Geolocation(member(anna), "leaf")
	require.NoError(t, err)
	require.Equal(t, "child", loc.ItemID)
	require.Equal(t, 47.3, loc.Geolocation.Lat)

	loc, _, err = r.Geolocation(member(anna), "plain")
	require.NoError(t, err)
	require.Equal(t, "root", loc.ItemID)

	locs, _, err := r.MapGeolocations(member(anna), "root")
	require.NoError(t, err)
	require.Len(t, locs, 2)
	require.Equal(t, "root", locs[0].ItemID)
	require.Equal(t, "child", locs[1].ItemID)

	_, decision, err := r.Geolocation(member(bob), "leaf")
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind)
}
