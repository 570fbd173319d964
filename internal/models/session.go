package models

import (
	"time"

	"github.com/google/uuid"
)

type ItemLoginSchemaType string

const (
	LoginUsername            ItemLoginSchemaType = "username"
	LoginUsernameAndPassword ItemLoginSchemaType = "username+password"
)

func (t ItemLoginSchemaType) Valid() bool {
	return t == LoginUsername || t == LoginUsernameAndPassword
}

// ItemLoginSchema enables pseudonymized access to an item and all of its
// descendants.
type ItemLoginSchema struct {
	ID        uuid.UUID           `json:"id" yaml:"id"`
	ItemID    string              `json:"item_id" yaml:"item_id"`
	Type      ItemLoginSchemaType `json:"type" yaml:"type"`
	CreatedAt time.Time           `json:"created_at" yaml:"created_at"`
}

// ItemLoginSession is issued to a guest after a pseudonymized login. It is
// scoped to the item that defines the login schema.
type ItemLoginSession struct {
	ID        uuid.UUID `json:"id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	GuestID   string    `json:"guest_id"`
	ItemID    string    `json:"item_id"`
	UserAgent string    `json:"user_agent" example:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) ..."`
	ClientIP  string    `json:"client_ip" example:"198.51.100.10"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
