package access

import (
	"fmt"

	"serwer-dostepu/internal/models"
)

// Actor is the member a request is made for. A nil *Actor is anonymous.
type Actor struct {
	ID    string
	Guest bool
	// ItemLoginItemID is the item whose login schema the guest signed in
	// through. Empty for regular members.
	ItemLoginItemID string
}

func (a *Actor) memberID() string {
	if a == nil {
		return ""
	}
	return a.ID
}

type DecisionKind int

const (
	Granted DecisionKind = iota + 1
	DeniedNotFound
	DeniedUnauthorized
	RequiresItemLogin
)

func (k DecisionKind) String() string {
	switch k {
	case Granted:
		return "granted"
	case DeniedNotFound:
		return "not_found"
	case DeniedUnauthorized:
		return "unauthorized"
	case RequiresItemLogin:
		return "requires_item_login"
	default:
		return "unknown"
	}
}

// Decision is the outcome of an access check. Denials are ordinary values,
// not errors.
type Decision struct {
	Kind       DecisionKind
	Permission models.PermissionLevel
	// Set for RequiresItemLogin.
	LoginSchema models.ItemLoginSchemaType
	LoginItemID string
}

func (d Decision) IsGranted() bool {
	return d.Kind == Granted
}

func (d Decision) String() string {
	switch d.Kind {
	case Granted:
		return fmt.Sprintf("granted(%s)", d.Permission)
	case RequiresItemLogin:
		return fmt.Sprintf("requires_item_login(%s@%s)", d.LoginSchema, d.LoginItemID)
	default:
		return d.Kind.String()
	}
}

func grant(level models.PermissionLevel) Decision {
	return Decision{Kind: Granted, Permission: level}
}

// Resolver answers access questions against a single snapshot.
type Resolver struct {
	snap *Snapshot
}

func NewResolver(snap *Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

func (r *Resolver) Snapshot() *Snapshot {
	return r.snap
}

// Resolve decides whether actor may reach the item. Rules are checked in
// order and the first one that matches wins:
//
//  1. unknown item: DeniedNotFound
//  2. public and not hidden: Granted, Read at least, for anyone
//  3. an item login schema on the path and no session for it: RequiresItemLogin
//  4. anonymous: DeniedUnauthorized
//  5. nearest membership: Granted with its level, else DeniedUnauthorized
//
// The error is non-nil only for a malformed snapshot.
func (r *Resolver) Resolve(actor *Actor, itemID string) (Decision, error) {
	item, ok := r.snap.Item(itemID)
	if !ok {
		return Decision{Kind: DeniedNotFound}, nil
	}
	ancestors, err := r.snap.AncestorsOf(item)
	if err != nil {
		return Decision{}, err
	}
	return r.resolve(actor, ancestors), nil
}

func (r *Resolver) resolve(actor *Actor, ancestors []string) Decision {
	if r.snap.tags.EffectivePublic(ancestors) {
		level := models.PermissionRead
		if l, ok := r.snap.memberships.NearestMembership(actor.memberID(), ancestors); ok && l > level {
			level = l
		}
		return grant(level)
	}

	if schema, ok := r.snap.loginSchemas.Nearest(ancestors); ok {
		if actor == nil || (actor.Guest && actor.ItemLoginItemID != schema.ItemID) {
			return Decision{
				Kind:        RequiresItemLogin,
				LoginSchema: schema.Type,
				LoginItemID: schema.ItemID,
			}
		}
	}

	if actor == nil {
		return Decision{Kind: DeniedUnauthorized}
	}

	if level, ok := r.snap.memberships.NearestMembership(actor.ID, ancestors); ok {
		return grant(level)
	}
	return Decision{Kind: DeniedUnauthorized}
}

// NearestLoginSchema returns the login schema that applies to the item, if
// any. DeniedNotFound is reported through ok=false.
func (r *Resolver) NearestLoginSchema(itemID string) (models.ItemLoginSchema, bool, error) {
	item, ok := r.snap.Item(itemID)
	if !ok {
		return models.ItemLoginSchema{}, false, nil
	}
	ancestors, err := r.snap.AncestorsOf(item)
	if err != nil {
		return models.ItemLoginSchema{}, false, err
	}
	schema, ok := r.snap.loginSchemas.Nearest(ancestors)
	return schema, ok, nil
}

// PathTags returns the visibility tags on the item's path once the actor is
// allowed to see the item.
func (r *Resolver) PathTags(actor *Actor, itemID string) ([]models.VisibilityTag, Decision, error) {
	decision, err := r.Resolve(actor, itemID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	item, _ := r.snap.Item(itemID)
	ancestors, err := r.snap.AncestorsOf(item)
	if err != nil {
		return nil, Decision{}, err
	}
	return r.snap.tags.PathTags(ancestors), decision, nil
}
