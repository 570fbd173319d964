package models

import "time"

type ItemType string

const (
	ItemTypeFolder   ItemType = "folder"
	ItemTypeDocument ItemType = "document"
	ItemTypeLink     ItemType = "link"
	ItemTypeShortcut ItemType = "shortcut"
	ItemTypeFile     ItemType = "file"
	ItemTypeApp      ItemType = "app"
)

type ItemSettings struct {
	IsPinned    bool `json:"is_pinned" yaml:"is_pinned"`
	ShowChatbox bool `json:"show_chatbox" yaml:"show_chatbox"`
}

type Geolocation struct {
	Lat         float64 `json:"lat" yaml:"lat"`
	Lng         float64 `json:"lng" yaml:"lng"`
	Country     *string `json:"country,omitempty" yaml:"country,omitempty"`
	AddressLine *string `json:"address_line,omitempty" yaml:"address_line,omitempty"`
}

// Item is a node of the content tree. Path holds the ancestor ids from the
// root down to the item itself, separated by dots.
type Item struct {
	ID          string       `json:"id" db:"id" yaml:"id"`
	Name        string       `json:"name" db:"name" yaml:"name"`
	Path        string       `json:"path" db:"path" yaml:"path"`
	Type        ItemType     `json:"type" db:"item_type" yaml:"type"`
	CreatorID   string       `json:"creator_id" db:"creator_id" yaml:"creator_id"`
	Settings    ItemSettings `json:"settings" yaml:"settings"`
	Geolocation *Geolocation `json:"geolocation,omitempty" yaml:"geolocation,omitempty"`
	MimeType    *string      `json:"mime_type,omitempty" db:"mime_type" yaml:"mime_type,omitempty"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at" yaml:"updated_at"`
}

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeFolder, ItemTypeDocument, ItemTypeLink, ItemTypeShortcut, ItemTypeFile, ItemTypeApp:
		return true
	}
	return false
}

func (i Item) IsFolder() bool {
	return i.Type == ItemTypeFolder
}
