package tiercache

import "github.com/pkg/errors"

// ErrInvalidTTL is returned by Set for a non-positive ttl. Storing such
// an entry would be immediately stale or never expire, so it is
// rejected at the boundary instead of silently accepted.
var ErrInvalidTTL = errors.New("tiercache: ttl must be positive")
