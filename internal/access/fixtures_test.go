package access

import (
	"time"

	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
)

const (
	anna   = "anna-id"
	bob    = "bob-id"
	cedric = "cedric-id"
	// owner creates fixture items unless a test says otherwise
	owner = "owner-id"
)

func newItem(id, name string, parent *models.Item, itemType models.ItemType) models.Item {
	parentPath := ""
	if parent != nil {
		parentPath = parent.Path
	}
	return models.Item{
		ID:        id,
		Name:      name,
		Path:      BuildPath(parentPath, id),
		Type:      itemType,
		CreatorID: owner,
		CreatedAt: time.Date(2021, 1, 14, 10, 0, 0, 0, time.UTC),
	}
}

func folder(id string, parent *models.Item) models.Item {
	return newItem(id, id, parent, models.ItemTypeFolder)
}

func document(id string, parent *models.Item) models.Item {
	return newItem(id, id, parent, models.ItemTypeDocument)
}

func pinned(item models.Item) models.Item {
	item.Settings.IsPinned = true
	return item
}

func createdBy(item models.Item, creator string) models.Item {
	item.CreatorID = creator
	return item
}

func tag(itemID string, kind models.TagKind) models.VisibilityTag {
	return models.VisibilityTag{ID: uuid.New(), ItemID: itemID, Kind: kind, CreatorID: anna, CreatedAt: time.Now()}
}

func membership(memberID, itemID string, level models.PermissionLevel) models.Membership {
	return models.Membership{ID: uuid.New(), MemberID: memberID, ItemID: itemID, Permission: level}
}

func loginSchema(itemID string, t models.ItemLoginSchemaType) models.ItemLoginSchema {
	return models.ItemLoginSchema{ID: uuid.New(), ItemID: itemID, Type: t}
}

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func member(id string) *Actor {
	return &Actor{ID: id}
}
