// Package tier provides one bounded tier of the multi-tier cache.
//
// A Store maps keys to entries and keeps them in write order. New and
// overwritten entries go to the tail of the order; once the store hits
// its capacity, a fifth of it is evicted from the head (the oldest
// writes). Expiry is a predicate over WrittenAt and TTL, never a
// background job: stale entries stay in the store until an explicit
// SweepExpired pass, a Delete, a Clear, or capacity eviction takes
// them out.
//
// Stores know nothing about each other or about promotion policy; the
// composing cache owns both.
package tier
