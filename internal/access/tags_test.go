package access

import (
	"testing"

	"serwer-dostepu/internal/models"

	"github.com/stretchr/testify/require"
)

func TestTagStore_EffectiveVisibility(t *testing.T) {
	store := NewTagStore([]models.VisibilityTag{
		tag("root", models.TagPublic),
		tag("hidden-folder", models.TagHidden),
		tag("hidden-and-public", models.TagHidden),
		tag("hidden-and-public", models.TagPublic),
	})

	require.True(t, store.EffectivePublic([]string{"root"}))
	require.True(t, store.EffectivePublic([]string{"root", "child"}), "public is computed from ancestors")
	require.False(t, store.EffectiveHidden([]string{"root", "child"}))

	require.True(t, store.EffectiveHidden([]string{"root", "hidden-folder", "doc"}))
	require.False(t, store.EffectivePublic([]string{"root", "hidden-folder", "doc"}), "a hidden ancestor beats a public one")
	require.False(t, store.EffectivePublic([]string{"hidden-and-public"}))

	require.False(t, store.EffectivePublic([]string{"private"}))
	require.False(t, store.EffectiveHidden([]string{"private"}))
}

func TestTagStore_OneTagPerKind(t *testing.T) {
	first := tag("item", models.TagHidden)
	store := NewTagStore([]models.VisibilityTag{first, tag("item", models.TagHidden), tag("item", models.TagPublic)})

	tags := store.TagsOf("item")
	require.Len(t, tags, 2)
	require.Equal(t, first.ID, tags[0].ID)
	require.Empty(t, store.TagsOf("other"))
}

func TestTagStore_PathTags(t *testing.T) {
	store := NewTagStore([]models.VisibilityTag{
		tag("child", models.TagHidden),
		tag("root", models.TagPublic),
	})

	tags := store.PathTags([]string{"root", "child", "leaf"})
	require.Len(t, tags, 2)
	require.Equal(t, "root", tags[0].ItemID)
	require.Equal(t, "child", tags[1].ItemID)
}
