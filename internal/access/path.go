package access

import (
	"fmt"
	"strings"

	"serwer-dostepu/internal/models"
)

const pathSeparator = "."

// IDToPathSegment spells an id the way generated paths store it, with
// underscores in place of dashes.
func IDToPathSegment(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

// segmentMatches reports whether a path segment names id, either literally
// or in its underscore spelling.
func segmentMatches(segment, id string) bool {
	return segment == id || segment == IDToPathSegment(id)
}

// BuildPath appends the id of a new item to the path of its parent. An empty
// parent path builds a root path.
func BuildPath(parentPath, id string) string {
	if parentPath == "" {
		return IDToPathSegment(id)
	}
	return parentPath + pathSeparator + IDToPathSegment(id)
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, pathSeparator)
}

// AncestorsOf returns the segments of the item's path, root first, the item
// itself last. The last segment is replaced by the item id; the others are
// kept as written. Snapshot.AncestorsOf maps them to ids of known items.
func AncestorsOf(item models.Item) ([]string, error) {
	ids := splitPath(item.Path)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: item %s has an empty path", ErrMalformedPath, item.ID)
	}
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: item %s has an empty segment in %q", ErrMalformedPath, item.ID, item.Path)
		}
	}
	last := len(ids) - 1
	if !segmentMatches(ids[last], item.ID) {
		return nil, fmt.Errorf("%w: path %q does not end with item id %s", ErrMalformedPath, item.Path, item.ID)
	}
	ids[last] = item.ID
	return ids, nil
}

// Depth is the number of segments on the item's path. Roots have depth 1.
func Depth(item models.Item) int {
	return len(splitPath(item.Path))
}

func hasPrefix(ids, prefix []string) bool {
	if len(prefix) > len(ids) {
		return false
	}
	for i := range prefix {
		if ids[i] != prefix[i] {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether the ancestor's path is a strict prefix of
// the candidate's path. Segments are compared as written.
func IsDescendantOf(candidate, ancestor models.Item) bool {
	c := splitPath(candidate.Path)
	a := splitPath(ancestor.Path)
	return len(a) > 0 && len(c) > len(a) && hasPrefix(c, a)
}

// DirectChildrenOf keeps the items exactly one level below parent, in the
// order they appear in items.
func DirectChildrenOf(parent models.Item, items []models.Item) []models.Item {
	p := splitPath(parent.Path)
	if len(p) == 0 {
		return nil
	}
	var children []models.Item
	for _, item := range items {
		c := splitPath(item.Path)
		if len(c) == len(p)+1 && hasPrefix(c, p) {
			children = append(children, item)
		}
	}
	return children
}

// DescendantsOf keeps every item strictly below parent, in input order.
func DescendantsOf(parent models.Item, items []models.Item) []models.Item {
	var descendants []models.Item
	for _, item := range items {
		if IsDescendantOf(item, parent) {
			descendants = append(descendants, item)
		}
	}
	return descendants
}
