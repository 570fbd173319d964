package access

import (
	"testing"

	"serwer-dostepu/internal/models"

	"github.com/stretchr/testify/require"
)

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(NewSnapshot(SnapshotData{}))

	decision, err := r.Resolve(member(anna), "missing")
	require.NoError(t, err)
	require.Equal(t, DeniedNotFound, decision.Kind)
}

func TestResolve_PublicIsGrantedToEveryone(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	child := document("child", &root)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{root, child},
		Tags:  []models.VisibilityTag{tag("root", models.TagPublic)},
	}))

	for _, actor := range []*Actor{nil, member(bob), {ID: "guest", Guest: true}} {
		decision, err := r.Resolve(actor, child.ID)
		require.NoError(t, err)
		require.Equal(t, grant(models.PermissionRead), decision)
	}
}

func TestResolve_PublicKeepsHigherMembership(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items:       []models.Item{root},
		Tags:        []models.VisibilityTag{tag("root", models.TagPublic)},
		Memberships: []models.Membership{membership(bob, "root", models.PermissionWrite)},
	}))

	decision, err := r.Resolve(member(bob), "root")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionWrite), decision)
}

func TestResolve_HiddenOverridesPublic(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	secret := document("secret", &root)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{root, secret},
		Tags: []models.VisibilityTag{
			tag("root", models.TagPublic),
			tag("secret", models.TagHidden),
		},
		Memberships: []models.Membership{membership(bob, "root", models.PermissionRead)},
	}))

	decision, err := r.Resolve(nil, "secret")
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind)

	decision, err = r.Resolve(member(bob), "secret")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionRead), decision, "members still reach hidden items through their membership")
}

func TestResolve_ItemLogin(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	child := document("child", &root)
	other := createdBy(folder("other", nil), cedric)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items:        []models.Item{root, child, other},
		LoginSchemas: []models.ItemLoginSchema{loginSchema("root", models.LoginUsername), loginSchema("other", models.LoginUsername)},
		Memberships: []models.Membership{
			membership("guest-1", "root", models.PermissionRead),
		},
	}))

	requiresLogin := Decision{Kind: RequiresItemLogin, LoginSchema: models.LoginUsername, LoginItemID: "root"}

	decision, err := r.Resolve(nil, "child")
	require.NoError(t, err)
	require.Equal(t, requiresLogin, decision, "anonymous actors are sent to the login schema, not denied")

	decision, err = r.Resolve(&Actor{ID: "guest-1", Guest: true, ItemLoginItemID: "other"}, "child")
	require.NoError(t, err)
	require.Equal(t, requiresLogin, decision, "a session for another item does not count")

	decision, err = r.Resolve(&Actor{ID: "guest-1", Guest: true, ItemLoginItemID: "root"}, "child")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionRead), decision)

	decision, err = r.Resolve(member(bob), "child")
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind, "signed-in members without membership must enroll")

	schema, ok, err := r.NearestLoginSchema("child")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "root", schema.ItemID)
}

func TestResolve_Membership(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	child := folder("child", &root)
	leaf := document("leaf", &child)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{root, child, leaf},
		Memberships: []models.Membership{
			membership(bob, "root", models.PermissionRead),
			membership(bob, "child", models.PermissionWrite),
		},
	}))

	decision, err := r.Resolve(member(bob), "leaf")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionWrite), decision)

	decision, err = r.Resolve(member(cedric), "leaf")
	require.NoError(t, err)
	require.Equal(t, grant(models.PermissionAdmin), decision)

	decision, err = r.Resolve(member(anna), "root")
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind)

	decision, err = r.Resolve(nil, "root")
	require.NoError(t, err)
	require.Equal(t, DeniedUnauthorized, decision.Kind)
}

func TestResolve_MalformedPath(t *testing.T) {
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{{ID: "broken", Path: "root.not_broken"}},
	}))

	_, err := r.Resolve(member(anna), "broken")
	require.ErrorIs(t, err, ErrMalformedPath)
}

func TestResolver_PathTags(t *testing.T) {
	root := createdBy(folder("root", nil), cedric)
	child := document("child", &root)
	r := NewResolver(NewSnapshot(SnapshotData{
		Items: []models.Item{root, child},
		Tags:  []models.VisibilityTag{tag("root", models.TagPublic)},
	}))

	tags, decision, err := r.PathTags(nil, "child")
	require.NoError(t, err)
	require.True(t, decision.IsGranted())
	require.Len(t, tags, 1)
	require.Equal(t, models.TagPublic, tags[0].Kind)
}
