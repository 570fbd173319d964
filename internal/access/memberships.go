package access

import "serwer-dostepu/internal/models"

// MembershipIndex stores explicit grants per item. Grants are not copied
// down the tree; NearestMembership walks the path instead.
type MembershipIndex struct {
	byItem   map[string]map[string]models.PermissionLevel
	creators map[string]string
}

func NewMembershipIndex(memberships []models.Membership, items []models.Item) *MembershipIndex {
	idx := &MembershipIndex{
		byItem:   make(map[string]map[string]models.PermissionLevel),
		creators: make(map[string]string, len(items)),
	}
	for _, m := range memberships {
		grants, ok := idx.byItem[m.ItemID]
		if !ok {
			grants = make(map[string]models.PermissionLevel)
			idx.byItem[m.ItemID] = grants
		}
		if m.Permission > grants[m.MemberID] {
			grants[m.MemberID] = m.Permission
		}
	}
	for _, item := range items {
		if item.CreatorID != "" {
			idx.creators[item.ID] = item.CreatorID
		}
	}
	return idx
}

// MembershipOn returns the grant stored on exactly this item.
func (idx *MembershipIndex) MembershipOn(memberID, itemID string) (models.PermissionLevel, bool) {
	level, ok := idx.byItem[itemID][memberID]
	return level, ok
}

// MembersOn returns every member holding at least min on the item itself.
func (idx *MembershipIndex) MembersOn(itemID string, min models.PermissionLevel) []string {
	var members []string
	for memberID, level := range idx.byItem[itemID] {
		if level >= min {
			members = append(members, memberID)
		}
	}
	return members
}

// NearestMembership resolves the actor's permission on the last item of
// ancestors. Creating the item or any of its ancestors means Admin, whatever
// is stored. Otherwise the closest stored grant wins.
func (idx *MembershipIndex) NearestMembership(actorID string, ancestors []string) (models.PermissionLevel, bool) {
	if actorID == "" {
		return models.PermissionNone, false
	}
	for _, id := range ancestors {
		if idx.creators[id] == actorID {
			return models.PermissionAdmin, true
		}
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if level, ok := idx.byItem[ancestors[i]][actorID]; ok {
			return level, true
		}
	}
	return models.PermissionNone, false
}

// LoginSchemaIndex maps an item to the login schema it defines.
type LoginSchemaIndex struct {
	byItem map[string]models.ItemLoginSchema
}

func NewLoginSchemaIndex(schemas []models.ItemLoginSchema) *LoginSchemaIndex {
	idx := &LoginSchemaIndex{byItem: make(map[string]models.ItemLoginSchema, len(schemas))}
	for _, s := range schemas {
		idx.byItem[s.ItemID] = s
	}
	return idx
}

// Nearest returns the schema defined closest to the last item of ancestors.
func (idx *LoginSchemaIndex) Nearest(ancestors []string) (models.ItemLoginSchema, bool) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		if s, ok := idx.byItem[ancestors[i]]; ok {
			return s, true
		}
	}
	return models.ItemLoginSchema{}, false
}
