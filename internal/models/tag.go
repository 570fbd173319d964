package models

import (
	"time"

	"github.com/google/uuid"
)

type TagKind string

const (
	TagPublic TagKind = "public"
	TagHidden TagKind = "hidden"
)

// VisibilityTag belongs to exactly one item. It is not copied onto
// descendants; effective visibility is computed over the path.
type VisibilityTag struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	ItemID    string    `json:"item_id" yaml:"item_id"`
	Kind      TagKind   `json:"kind" yaml:"kind"`
	CreatorID string    `json:"creator_id" yaml:"creator_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
