package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PermissionLevel is ordered: Read < Write < Admin.
type PermissionLevel int

const (
	PermissionNone PermissionLevel = iota
	PermissionRead
	PermissionWrite
	PermissionAdmin
)

func (p PermissionLevel) String() string {
	switch p {
	case PermissionRead:
		return "read"
	case PermissionWrite:
		return "write"
	case PermissionAdmin:
		return "admin"
	default:
		return "none"
	}
}

func ParsePermissionLevel(s string) (PermissionLevel, error) {
	switch s {
	case "read":
		return PermissionRead, nil
	case "write":
		return PermissionWrite, nil
	case "admin":
		return PermissionAdmin, nil
	}
	return PermissionNone, fmt.Errorf("unknown permission level %q", s)
}

func (p PermissionLevel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PermissionLevel) UnmarshalText(text []byte) error {
	level, err := ParsePermissionLevel(string(text))
	if err != nil {
		return err
	}
	*p = level
	return nil
}

type Membership struct {
	ID         uuid.UUID       `json:"id" yaml:"id"`
	MemberID   string          `json:"member_id" yaml:"member_id"`
	ItemID     string          `json:"item_id" yaml:"item_id"`
	Permission PermissionLevel `json:"permission" yaml:"permission"`
	CreatedAt  time.Time       `json:"created_at" yaml:"created_at"`
}

type MembershipRequest struct {
	ID        uuid.UUID `json:"id"`
	MemberID  string    `json:"member_id"`
	ItemID    string    `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
