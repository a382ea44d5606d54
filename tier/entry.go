package tier

import (
	"fmt"
	"time"
)

// Entry is the unit of storage: an opaque value plus the metadata the
// store needs to judge its age. The cache owns Value once inserted;
// callers must not mutate it afterwards.
type Entry struct {
	Key       string
	Value     any
	WrittenAt time.Time
	TTL       time.Duration
	// Origin is the name of the store the entry currently lives in.
	// Informational only; promotion copies get the target store's name.
	Origin string
	// Meta holds optional free-form attributes. Opaque to the cache.
	Meta map[string]any
}

// Expired reports whether the entry is stale at now.
// TTL is always positive for stored entries, so no zero-TTL special case.
func (e Entry) Expired(now time.Time) bool {
	return now.Sub(e.WrittenAt) > e.TTL
}

// Age returns how long ago the entry was written.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.WrittenAt)
}

func (e Entry) GoString() string {
	return fmt.Sprintf("{Key:%q, WrittenAt:%v, TTL:%v, Origin:%q}",
		e.Key, e.WrittenAt.UnixNano(), e.TTL, e.Origin)
}
