package access

import "serwer-dostepu/internal/models"

// TagStore holds the visibility tags owned by each item. An item keeps at
// most one tag per kind; later duplicates are ignored.
type TagStore struct {
	byItem map[string][]models.VisibilityTag
}

func NewTagStore(tags []models.VisibilityTag) *TagStore {
	s := &TagStore{byItem: make(map[string][]models.VisibilityTag)}
	for _, t := range tags {
		if s.owns(t.ItemID, t.Kind) {
			continue
		}
		s.byItem[t.ItemID] = append(s.byItem[t.ItemID], t)
	}
	return s
}

func (s *TagStore) TagsOf(itemID string) []models.VisibilityTag {
	return s.byItem[itemID]
}

func (s *TagStore) owns(itemID string, kind models.TagKind) bool {
	for _, t := range s.byItem[itemID] {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

func (s *TagStore) anyOwns(ancestors []string, kind models.TagKind) bool {
	for _, id := range ancestors {
		if s.owns(id, kind) {
			return true
		}
	}
	return false
}

// EffectiveHidden reports whether any item on the path, the item itself
// included, owns a hidden tag.
func (s *TagStore) EffectiveHidden(ancestors []string) bool {
	return s.anyOwns(ancestors, models.TagHidden)
}

// EffectivePublic reports whether the path carries a public tag and no
// hidden tag. Hidden always wins.
func (s *TagStore) EffectivePublic(ancestors []string) bool {
	return s.anyOwns(ancestors, models.TagPublic) && !s.EffectiveHidden(ancestors)
}

// PathTags lists the tags of every item on the path, root first.
func (s *TagStore) PathTags(ancestors []string) []models.VisibilityTag {
	tags := []models.VisibilityTag{}
	for _, id := range ancestors {
		tags = append(tags, s.byItem[id]...)
	}
	return tags
}
