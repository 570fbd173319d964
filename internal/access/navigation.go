package access

import "serwer-dostepu/internal/models"

// Navigation holds the neighbours of an item inside the folder hierarchy of
// a root. Both are nil when there is nothing to navigate to.
type Navigation struct {
	Previous *models.Item `json:"previous"`
	Next     *models.Item `json:"next"`
}

// Navigation walks the visible folders below rootID (hidden ones excluded),
// optionally in the actor's shuffled order, and returns the items before and
// after itemID. At the root the first folder is next; the first folder links
// back to the root.
func (r *Resolver) Navigation(actor *Actor, rootID, itemID string, shuffle bool) (Navigation, Decision, error) {
	folders, decision, err := r.VisibleDescendants(actor, rootID, DescendantOptions{
		Types: []models.ItemType{models.ItemTypeFolder},
	})
	if err != nil || !decision.IsGranted() {
		return Navigation{}, decision, err
	}
	if shuffle {
		folders = SeededOrder(folders, CombineIDs(rootID, actor.memberID()))
	}

	var nav Navigation
	if itemID == rootID {
		if len(folders) > 0 {
			nav.Next = &folders[0]
		}
		return nav, decision, nil
	}

	idx := -1
	for i, f := range folders {
		if f.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nav, decision, nil
	}
	if idx == 0 {
		root, _ := r.snap.Item(rootID)
		nav.Previous = &root
	} else {
		nav.Previous = &folders[idx-1]
	}
	if idx+1 < len(folders) {
		nav.Next = &folders[idx+1]
	}
	return nav, decision, nil
}

type ItemGeolocation struct {
	ItemID      string             `json:"item_id"`
	Geolocation models.Geolocation `json:"geolocation"`
}

// Geolocation returns the location of the item or, failing that, of its
// closest located ancestor.
func (r *Resolver) Geolocation(actor *Actor, itemID string) (*ItemGeolocation, Decision, error) {
	decision, err := r.Resolve(actor, itemID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	item, _ := r.snap.Item(itemID)
	ancestors, err := r.snap.AncestorsOf(item)
	if err != nil {
		return nil, Decision{}, err
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		a, ok := r.snap.Item(ancestors[i])
		if ok && a.Geolocation != nil {
			return &ItemGeolocation{ItemID: a.ID, Geolocation: *a.Geolocation}, decision, nil
		}
	}
	return nil, decision, nil
}

// MapGeolocations collects the locations of parent and of its visible
// children, for map views.
func (r *Resolver) MapGeolocations(actor *Actor, parentID string) ([]ItemGeolocation, Decision, error) {
	children, decision, err := r.VisibleChildren(actor, parentID)
	if err != nil || !decision.IsGranted() {
		return nil, decision, err
	}
	parent, _ := r.snap.Item(parentID)

	locs := []ItemGeolocation{}
	for _, item := range append([]models.Item{parent}, children...) {
		if item.Geolocation != nil {
			locs = append(locs, ItemGeolocation{ItemID: item.ID, Geolocation: *item.Geolocation})
		}
	}
	return locs, decision, nil
}
