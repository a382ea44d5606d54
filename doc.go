// Package tiercache provides a process-local multi-tier object cache.
//
// * There are FAST, MEDIUM and SLOW tiers, each a bounded store with
// its own capacity. Writes go to the tier the caller names, fast by
// default.
// * Reads walk the tiers in order. A live hit in a slower tier is
// copied into the fast tier with a refreshed write time and the same
// ttl; the slower copy stays behind until it expires or is
// overwritten.
// * A tier at capacity evicts a fifth of its entries, oldest written
// first.
// * Expiry is lazy. Get filters stale entries from its result, while
// Has, Len and Keys see raw membership; only Cleanup removes stale
// data, driven by an external scheduler such as Sweeper.
//
// Instances are constructed explicitly with their own configuration,
// clock and counters. There is no package-level cache.
package tiercache
