package access

import (
	"testing"

	"serwer-dostepu/internal/models"

	"github.com/stretchr/testify/require"
)

// parent P with children C1 (pinned), C2, C3 (pinned, hidden).
func pinnedAndHiddenSnapshot(extra ...models.Membership) *Snapshot {
	p := createdBy(folder("p", nil), cedric)
	return NewSnapshot(SnapshotData{
		Items: []models.Item{
			p,
			pinned(document("c1", &p)),
			document("c2", &p),
			pinned(document("c3", &p)),
		},
		Tags:        []models.VisibilityTag{tag("c3", models.TagHidden)},
		Memberships: extra,
	})
}

func TestPinnedChildren_HiddenNeedsWrite(t *testing.T) {
	r := NewResolver(pinnedAndHiddenSnapshot(
		membership(anna, "p", models.PermissionRead),
		membership(bob, "p", models.PermissionWrite),
	))

	children, decision, err := r.PinnedChildren(member(anna), "p")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionRead), decision)
	require.Equal(t, []string{"c1"}, ids(children))

	children, _, err = r.PinnedChildren(member(bob), "p")
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c3"}, ids(children))
}

func TestVisibleChildren_KeepsInsertionOrder(t *testing.T) {
	r := NewResolver(pinnedAndHiddenSnapshot(membership(bob, "p", models.PermissionAdmin)))

	children, _, err := r.VisibleChildren(member(bob), "p")
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2", "c3"}, ids(children))

	content, _, err := r.ContentChildren(member(bob), "p")
	require.NoError(t, err)
	require.Equal(t, []string{"c2"}, ids(content))
}

func TestVisibleChildren_ReadersNeverSeeHidden(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	visible := document("visible", &root)
	hiddenPublic := folder("hidden-public", &root)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{root, visible, hiddenPublic},
		Tags: []models.VisibilityTag{
			tag("root", models.TagPublic),
			tag("hidden-public", models.TagPublic),
			tag("hidden-public", models.TagHidden),
		},
		Memberships: []models.Membership{membership(bob, "root", models.PermissionRead)},
	}))

	for _, actor := range []*Actor{nil, member(bob), member(anna)} {
		children, decision, err := r.VisibleChildren(actor, "root")
		require.NoError(t, err)
		require.True(t, decision.IsGranted())
		require.Equal(t, []string{"visible"}, ids(children))
	}

	children, _, err := r.VisibleChildren(member(cedric), "root")
	require.NoError(t, err)
	require.Equal(t, []string{"visible", "hidden-public"}, ids(children))
}

func TestVisibleChildren_ParentDecisionIsPropagated(t *testing.T) {
	r := NewResolver(pinnedAndHiddenSnapshot())

	children, decision, err := r.VisibleChildren(member(anna), "p")
	require.NoError(t, err)
	require.Nil(t, children)
	require.Equal(t, DeniedUnauthorized, decision.Kind)

	_, decision, err = r.PinnedChildren(member(anna), "missing")
	require.NoError(t, err)
	require.Equal(t, DeniedNotFound, decision.Kind)
}

func TestVisibleChildren_SkipsInaccessibleChildren(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{
			root,
			document("open", &root),
			folder("own-login", &root),
		},
		LoginSchemas: []models.ItemLoginSchema{
			loginSchema("root", models.LoginUsername),
			loginSchema("own-login", models.LoginUsername),
		},
		Memberships: []models.Membership{membership("guest", "root", models.PermissionRead)},
	}))
	guest := &Actor{ID: "guest", Guest: true, ItemLoginItemID: "root"}

	children, decision, err := r.VisibleChildren(guest, "root")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionRead), decision)
	require.Equal(t, []string{"open"}, ids(children), "the nested login schema needs its own session")
}

func TestPinnedChildren_NotInherited(t *testing.T) {
	parent := createdBy(folder("parent", nil), anna)
	rootDoc := pinned(document("root-doc", &parent))
	child1 := folder("child-1", &parent)
	child2 := folder("child-2", &parent)
	pinnedInChild2 := pinned(document("pinned-in-child-2", &child2))
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{parent, rootDoc, child1, child2, pinnedInChild2},
	}))

	pins, _, err := r.PinnedChildren(member(anna), "parent")
	require.NoError(t, err)
	require.Equal(t, []string{"root-doc"}, ids(pins))
	for _, p := range pins {
		require.Equal(t, Depth(parent)+1, Depth(p))
	}

	pins, _, err = r.PinnedChildren(member(anna), "child-1")
	require.NoError(t, err)
	require.Empty(t, pins)

	pins, _, err = r.PinnedChildren(member(anna), "child-2")
	require.NoError(t, err)
	require.Equal(t, []string{"pinned-in-child-2"}, ids(pins))
}

func TestVisibleDescendants(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	f1 := folder("f1", &root)
	d1 := document("d1", &f1)
	f2 := folder("f2", &f1)
	hidden := folder("hidden", &root)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{root, f1, d1, f2, hidden},
		Tags:  []models.VisibilityTag{tag("hidden", models.TagHidden)},
		Memberships: []models.Membership{
			membership(bob, "root", models.PermissionRead),
		},
	}))

	all, _, err := r.VisibleDescendants(member(bob), "root", DescendantOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"f1", "d1", "f2"}, ids(all))

	folders, _, err := r.VisibleDescendants(member(cedric), "root", DescendantOptions{Types: []models.ItemType{models.ItemTypeFolder}})
	require.NoError(t, err)
	require.Equal(t, []string{"f1", "f2"}, ids(folders), "hidden items are left out unless asked for")

	folders, _, err = r.VisibleDescendants(member(cedric), "root", DescendantOptions{
		Types:      []models.ItemType{models.ItemTypeFolder},
		ShowHidden: true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"f1", "f2", "hidden"}, ids(folders))

	folders, _, err = r.VisibleDescendants(member(bob), "root", DescendantOptions{ShowHidden: true})
	require.NoError(t, err)
	require.NotContains(t, ids(folders), "hidden", "readers never see hidden items")
}

func TestVisibleChildren_UnderscoreInID(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{
			root,
			{ID: "item_1", Path: "root.item_1", Type: models.ItemTypeDocument},
			document("item-2", &root),
		},
	}))

	children, decision, err := r.VisibleChildren(member(cedric), "root")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionAdmin), decision)
	require.Equal(t, []string{"item_1", "item-2"}, ids(children))

	decision, err = r.Resolve(member(cedric), "item_1")
	require.NoError(t, err)
	require.True(t, decision.IsGranted())
}

func TestVisibleChildren_DashAndUnderscoreIDsStayApart(t *testing.T) {
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{
			{ID: "a-b", Path: "a-b", Type: models.ItemTypeFolder},
			{ID: "a_b", Path: "a_b", Type: models.ItemTypeFolder},
			{ID: "x", Path: "a_b.x", Type: models.ItemTypeDocument},
		},
		Memberships: []models.Membership{membership(anna, "a-b", models.PermissionAdmin)},
	}))

	children, _, err := r.VisibleChildren(member(anna), "a-b")
	require.NoError(t, err)
	require.Empty(t, children)

	decision, err := r.Resolve(member(anna), "x")
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind, "a grant on a-b says nothing about a_b")
}

func TestVisibleChildren_DuplicateIDListedOnce(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	first := document("dup", &root)
	second := first
	second.Name = "second copy"
	r := NewResolver(NewSnapshot(SnapshotData{Items: []models.Item{root, first, second}}))

	children, _, err := r.VisibleChildren(member(cedric), "root")
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "dup", children[0].Name)
}

func TestSnapshotItems_IsACopy(t *testing.T) {
	root := folder("root", nil)
	snap := NewSnapshot(SnapshotData{Items: []models.Item{root}})

	items := snap.Items()
	items[0].Name = "changed"

	got, ok := snap.Item("root")
	require.True(t, ok)
	require.Equal(t, "root", got.Name)
	require.Equal(t, "root", snap.Items()[0].Name)
}
