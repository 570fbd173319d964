package database

import (
	"context"
	"errors"
	"time"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrItemExists           = errors.New("an item with this id or path already exists")
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberExists         = errors.New("a member with this id or email already exists")
	ErrMembershipExists     = errors.New("member already has a membership on this item")
	ErrGuestExists          = errors.New("a guest with this name already exists for this item")
	ErrRequestAlreadyExists = errors.New("a membership request for this item already exists")
)

type CreateMembershipParams struct {
	MemberID   string
	ItemID     string
	Permission models.PermissionLevel
}

type CreateGuestParams struct {
	ID           string
	ItemID       string
	Name         string
	PasswordHash string
}

type CreateItemLoginSessionParams struct {
	ID        uuid.UUID
	GuestID   string
	ItemID    string
	UserAgent string
	ClientIP  string
	ExpiresAt time.Time
}

// Store is what the HTTP layer needs from a backend. LoadSnapshot must read
// everything in one consistent view so a resolution never observes half of
// a concurrent change.
type Store interface {
	LoadSnapshot(ctx context.Context) (*access.Snapshot, error)
	GetMemberByID(ctx context.Context, id string) (*models.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	GetGuest(ctx context.Context, itemID, name string) (*models.Member, error)
	// CreateGuest registers a pseudonymized member for an item login schema
	// and grants it read access on the schema's item.
	CreateGuest(ctx context.Context, arg CreateGuestParams) (*models.Member, error)
	CreateItemLoginSession(ctx context.Context, arg CreateItemLoginSessionParams) error
	CreateMembership(ctx context.Context, arg CreateMembershipParams) (*models.Membership, error)
	CreateMembershipRequest(ctx context.Context, memberID, itemID string) (*models.MembershipRequest, error)
}

// Seeder writes hierarchy data. The content itself is managed elsewhere;
// this is used to import fixtures.
type Seeder interface {
	CreateMember(ctx context.Context, m models.Member) error
	CreateItem(ctx context.Context, item models.Item) error
	CreateVisibilityTag(ctx context.Context, tag models.VisibilityTag) error
	CreateItemLoginSchema(ctx context.Context, schema models.ItemLoginSchema) error
	CreateMembership(ctx context.Context, arg CreateMembershipParams) (*models.Membership, error)
}
