package access

import "serwer-dostepu/internal/models"

// visibleTo applies the per-candidate rules shared by children and
// descendants listings: the actor must be granted the candidate, and hidden
// candidates are only kept for Write or Admin holders when keepHidden is set.
func (r *Resolver) visibleTo(actor *Actor, candidate models.Item, keepHidden bool) (bool, error) {
	ancestors, err := r.snap.AncestorsOf(candidate)
	if err != nil {
		return false, err
	}
	decision := r.resolve(actor, ancestors)
	if !decision.IsGranted() {
		return false, nil
	}
	if r.snap.tags.EffectiveHidden(ancestors) {
		return keepHidden && decision.Permission >= models.PermissionWrite, nil
	}
	return true, nil
}

// VisibleChildren lists the direct children of parent the actor may see, in
// snapshot order. When the actor cannot reach parent, its decision is
// returned and no children are computed.
func (r *Resolver) VisibleChildren(actor *Actor, parentID string) ([]models.Item, Decision, error) {
	decision, err := r.Resolve(actor, parentID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	parent, _ := r.snap.Item(parentID)

	children := []models.Item{}
	for _, candidate := range DirectChildrenOf(parent, r.snap.items) {
		ok, err := r.visibleTo(actor, candidate, true)
		if err != nil {
			return nil, Decision{}, err
		}
		if ok {
			children = append(children, candidate)
		}
	}
	return children, decision, nil
}

// PinnedChildren keeps the visible children pinned on parent. Pins are never
// inherited: only direct children are considered.
func (r *Resolver) PinnedChildren(actor *Actor, parentID string) ([]models.Item, Decision, error) {
	children, decision, err := r.VisibleChildren(actor, parentID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	pinned := []models.Item{}
	for _, c := range children {
		if c.Settings.IsPinned {
			pinned = append(pinned, c)
		}
	}
	return pinned, decision, nil
}

// ContentChildren keeps the visible children shown in the main content
// area: everything except folders and pinned items.
func (r *Resolver) ContentChildren(actor *Actor, parentID string) ([]models.Item, Decision, error) {
	children, decision, err := r.VisibleChildren(actor, parentID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	content := []models.Item{}
	for _, c := range children {
		if !c.IsFolder() && !c.Settings.IsPinned {
			content = append(content, c)
		}
	}
	return content, decision, nil
}

type DescendantOptions struct {
	// Types restricts the result to the given item types. Empty keeps all.
	Types []models.ItemType
	// ShowHidden keeps hidden descendants for Write or Admin holders.
	ShowHidden bool
}

func (o DescendantOptions) accepts(t models.ItemType) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, want := range o.Types {
		if want == t {
			return true
		}
	}
	return false
}

// VisibleDescendants lists every item below root the actor may see, in
// snapshot order.
func (r *Resolver) VisibleDescendants(actor *Actor, rootID string, opts DescendantOptions) ([]models.Item, Decision, error) {
	decision, err := r.Resolve(actor, rootID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	root, _ := r.snap.Item(rootID)

	descendants := []models.Item{}
	for _, candidate := range DescendantsOf(root, r.snap.items) {
		if !opts.accepts(candidate.Type) {
			continue
		}
		ok, err := r.visibleTo(actor, candidate, opts.ShowHidden)
		if err != nil {
			return nil, Decision{}, err
		}
		if ok {
			descendants = append(descendants, candidate)
		}
	}
	return descendants, decision, nil
}
