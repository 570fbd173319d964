package access

import "serwer-dostepu/internal/models"

// SnapshotData is what a storage backend reads in one consistent pass.
type SnapshotData struct {
	Items        []models.Item
	Tags         []models.VisibilityTag
	Memberships  []models.Membership
	LoginSchemas []models.ItemLoginSchema
}

// Snapshot is an immutable, indexed view of the hierarchy. It is safe for
// concurrent use because nothing mutates it after NewSnapshot returns.
type Snapshot struct {
	items        []models.Item
	byID         map[string]int
	bySegment    map[string]string
	tags         *TagStore
	memberships  *MembershipIndex
	loginSchemas *LoginSchemaIndex
}

// NewSnapshot copies data and indexes it. When several items share an id,
// only the first one is kept.
func NewSnapshot(data SnapshotData) *Snapshot {
	items := make([]models.Item, 0, len(data.Items))
	byID := make(map[string]int, len(data.Items))
	for _, item := range data.Items {
		if _, ok := byID[item.ID]; ok {
			continue
		}
		byID[item.ID] = len(items)
		items = append(items, item)
	}

	bySegment := make(map[string]string)
	for _, item := range items {
		seg := IDToPathSegment(item.ID)
		if _, ok := bySegment[seg]; !ok && seg != item.ID {
			bySegment[seg] = item.ID
		}
	}

	return &Snapshot{
		items:        items,
		byID:         byID,
		bySegment:    bySegment,
		tags:         NewTagStore(data.Tags),
		memberships:  NewMembershipIndex(data.Memberships, items),
		loginSchemas: NewLoginSchemaIndex(data.LoginSchemas),
	}
}

// Items returns a copy of the items in their canonical (insertion) order.
func (s *Snapshot) Items() []models.Item {
	items := make([]models.Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Snapshot) Item(id string) (models.Item, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return s.items[i], true
}

// AncestorsOf is the package-level AncestorsOf with every segment resolved
// to an item id. A segment naming an id literally wins over one naming it in
// underscore spelling. Segments matching no item are kept as written.
func (s *Snapshot) AncestorsOf(item models.Item) ([]string, error) {
	ids, err := AncestorsOf(item)
	if err != nil {
		return nil, err
	}
	for i := range ids[:len(ids)-1] {
		ids[i] = s.segmentID(ids[i])
	}
	return ids, nil
}

func (s *Snapshot) segmentID(segment string) string {
	if _, ok := s.byID[segment]; ok {
		return segment
	}
	if id, ok := s.bySegment[segment]; ok {
		return id
	}
	return segment
}

func (s *Snapshot) Tags() *TagStore {
	return s.tags
}

func (s *Snapshot) Memberships() *MembershipIndex {
	return s.memberships
}

func (s *Snapshot) LoginSchemas() *LoginSchemaIndex {
	return s.loginSchemas
}
