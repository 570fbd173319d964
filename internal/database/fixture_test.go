package database_test

import (
	"testing"

	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseFixture_FillsDefaults(t *testing.T) {
	f, err := database.ParseFixture([]byte(`
items:
  - id: ecafbd2a-5688-11eb-ae93-0242ac130002
    name: root
  - id: child
    name: child
    type: document
    path: ecafbd2a_5688_11eb_ae93_0242ac130002.child
tags:
  - item_id: child
    kind: hidden
memberships:
  - member_id: anna-id
    item_id: child
    permission: admin
login_schemas:
  - item_id: ecafbd2a-5688-11eb-ae93-0242ac130002
    type: username
`))
	require.NoError(t, err)

	require.Len(t, f.Items, 2)
	require.Equal(t, "ecafbd2a_5688_11eb_ae93_0242ac130002", f.Items[0].Path)
	require.Equal(t, models.ItemTypeFolder, f.Items[0].Type)
	require.False(t, f.Items[0].CreatedAt.IsZero())
	require.Equal(t, models.ItemTypeDocument, f.Items[1].Type)

	require.NotEqual(t, uuid.Nil, f.Tags[0].ID)
	require.Equal(t, models.TagHidden, f.Tags[0].Kind)
	require.Equal(t, models.PermissionAdmin, f.Memberships[0].Permission)
	require.Equal(t, models.LoginUsername, f.LoginSchemas[0].Type)

	data := f.SnapshotData()
	require.Len(t, data.Items, 2)
	require.Len(t, data.LoginSchemas, 1)
}

func TestParseFixture_RejectsUnknownPermission(t *testing.T) {
	_, err := database.ParseFixture([]byte(`
memberships:
  - member_id: anna-id
    item_id: child
    permission: owner
`))
	require.Error(t, err)
}
