// Package cuckoofilter provides a concurrent, in-memory cuckoo filter: an
// approximate set-membership structure that answers "definitely not" or
// "might be, with bounded false-positive probability," and, unlike a Bloom
// filter, supports deletion of previously inserted items.
//
// # Architecture
//
// The filter is built from three layers, leaves first:
//
// packedBits is a fixed-size bit-addressable array of 64-bit words holding
// variable-width entries (1-31 bits) compactly, with aligned and straddling
// reads/writes across word boundaries.
//
// cuckooTable partitions that bit space into buckets of entries, and adds a
// bank of stripe locks (one per "bucket mod R") so many readers can proceed
// concurrently with occasional writers without a per-bucket lock.
//
// [Filter] is the public surface: it derives a fingerprint and two candidate
// buckets from each 64-bit item hash, and implements the cuckoo displacement
// ("kick") loop that relocates entries between their two candidate buckets
// to keep the table dense under load.
//
// # Choosing Parameters
//
// Use [NewBuilder] with the expected number of items, and optionally
// [Builder.WithFalsePositiveProbability]:
//
//	f, err := cuckoofilter.NewBuilder(1_000_000).
//		WithFalsePositiveProbability(0.01).
//		Build()
//
// The false-positive probability determines the entries-per-bucket and
// fingerprint width the Builder derives; [Builder.WithBitsPerEntry],
// [Builder.WithEntriesPerBucket], and [Builder.WithConcurrencyLevel]
// override individual derived values for advanced use cases.
//
// # Hashing
//
// The core filter is deliberately hash-function-agnostic: [Filter.Put],
// [Filter.MightContain], [Filter.Remove], and [Filter.Count] all take a
// pre-hashed uint64. [Filter.AddBytes], [Filter.AddString], and their
// Contains/Remove/Count counterparts are a convenience layer built on xxh3
// for callers who don't already have a hash function of their own.
//
// # Thread Safety
//
// [Filter] is safe for concurrent use by multiple goroutines: reads use an
// optimistic-then-pessimistic stripe-locking scheme, writes take an
// exclusive lock scoped to a single stripe. Operations on the two candidate
// buckets of one item are not jointly atomic when those buckets fall in
// different stripes — see [Filter.Put]'s displacement loop for what that
// means for an in-flight insertion.
//
// # Non-goals
//
// The filter does not resize or rehash itself when full; [Filter.Put]
// returns false instead. Fingerprints are not cryptographically resistant.
// Serialization, persistence, metrics export, and multi-process coordination
// are not part of this package; [Filter.Stats] exposes the numbers an
// embedder would want to export through its own metrics client.
//
// # Performance Tips
//
//   - Size for the false-positive probability you actually need:
//     [Builder.WithFalsePositiveProbability] below 1e-5 buys 8
//     entries-per-bucket at the cost of a wider fingerprint.
//   - Raise [Builder.WithConcurrencyLevel] on high-core machines with
//     write-heavy workloads to reduce stripe contention; it is rounded up to
//     a power of two and capped at the bucket count.
//   - Use [Filter.AddString]/[Filter.ContainsString] to avoid the
//     allocation a []byte conversion would cost for string keys.
package cuckoofilter
