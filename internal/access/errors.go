package access

import "errors"

// ErrMalformedPath reports a snapshot whose materialized paths break the tree
// invariants. It means the data layer handed over a bad snapshot and is never
// retried.
var ErrMalformedPath = errors.New("malformed item path")
