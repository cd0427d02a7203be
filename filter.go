package cuckoofilter

import (
	"fmt"
	"math/rand"
	"sync/atomic"
)

// bucketMultiplier is the odd constant used to derive a bucket's alternate
// from its fingerprint, chosen (as in the original) for good avalanche
// behavior under XOR.
const bucketMultiplier = 0x5bd1e995

// Filter is a thread-safe probabilistic set membership structure that
// supports Put, MightContain, Remove, and Count. Unlike a Bloom filter, it
// supports deletion of previously inserted items.
//
// A Filter is constructed with Builder and is safe for concurrent use by
// multiple goroutines. It consumes pre-hashed 64-bit item hashes; the caller
// chooses the hash function (see AddBytes/AddString for a convenience
// wrapper built on xxh3).
type Filter struct {
	cfg   Config
	table *cuckooTable
	items atomic.Int64
}

// newFilter constructs a Filter from an already-validated Config.
func newFilter(cfg Config) *Filter {
	return &Filter{
		cfg:   cfg,
		table: newCuckooTable(cfg.Buckets, cfg.EntriesPerBucket, cfg.BitsPerEntry, cfg.ConcurrencyLevel),
	}
}

// MightContain reports whether itemHash might be in the filter. A false
// return is definite; a true return is probabilistic, bounded by the
// filter's configured false-positive probability.
func (f *Filter) MightContain(itemHash uint64) bool {
	fp := f.fingerprint(itemHash)
	b1 := f.primaryBucket(itemHash)

	if f.table.contains(b1, fp) {
		return true
	}

	b2 := f.alternateBucket(b1, fp)
	return f.table.contains(b2, fp)
}

// Put inserts itemHash into the filter. Returns true on success, false if
// the filter is full (both candidate buckets are full and the displacement
// loop could not find room within maxKicks attempts). A false return is not
// an error.
func (f *Filter) Put(itemHash uint64) bool {
	fp := f.fingerprint(itemHash)
	b1 := f.primaryBucket(itemHash)

	if f.table.addIfEmpty(b1, fp) {
		f.items.Add(1)
		return true
	}

	b2 := f.alternateBucket(b1, fp)
	if f.table.addIfEmpty(b2, fp) {
		f.items.Add(1)
		return true
	}

	home := b1
	if rand.Intn(2) == 1 {
		home = b2
	}

	for i := 0; i < f.cfg.MaxKicks; i++ {
		entry := rand.Intn(f.cfg.EntriesPerBucket)
		fp = f.table.getAndSet(home, entry, fp)
		home = f.alternateBucket(home, fp)
		if f.table.addIfEmpty(home, fp) {
			f.items.Add(1)
			return true
		}
	}

	// The displacement loop exhausted maxKicks. The last evicted fingerprint
	// remains written into the table via getAndSet above; items is not
	// incremented and the original fingerprint chain is lost. This matches
	// the documented behavior of the source this filter is modeled on rather
	// than reverting the final getAndSet.
	return false
}

// Remove deletes one occurrence of itemHash from the filter. Returns true if
// found and removed, false if itemHash was not present.
func (f *Filter) Remove(itemHash uint64) bool {
	fp := f.fingerprint(itemHash)
	b1 := f.primaryBucket(itemHash)

	if f.table.remove(b1, fp) {
		f.items.Add(-1)
		return true
	}

	b2 := f.alternateBucket(b1, fp)
	if f.table.remove(b2, fp) {
		f.items.Add(-1)
		return true
	}

	return false
}

// Count returns the number of times itemHash currently occupies a slot in
// the filter, summed across both of its candidate buckets.
func (f *Filter) Count(itemHash uint64) int {
	fp := f.fingerprint(itemHash)
	b1 := f.primaryBucket(itemHash)

	n := f.table.count(b1, fp)

	b2 := f.alternateBucket(b1, fp)
	if b1 != b2 {
		n += f.table.count(b2, fp)
	}
	return n
}

// Items returns the current number of items in the filter.
func (f *Filter) Items() int64 {
	return f.items.Load()
}

// LoadFactor returns Items() / Capacity().
func (f *Filter) LoadFactor() float64 {
	return float64(f.Items()) / float64(f.Capacity())
}

// Capacity returns the total number of entry slots (Buckets * EntriesPerBucket).
func (f *Filter) Capacity() int {
	return f.cfg.Buckets * f.cfg.EntriesPerBucket
}

// Buckets returns the number of buckets.
func (f *Filter) Buckets() int { return f.cfg.Buckets }

// EntriesPerBucket returns the number of entries per bucket.
func (f *Filter) EntriesPerBucket() int { return f.cfg.EntriesPerBucket }

// BitsPerEntry returns the number of bits used per fingerprint entry.
func (f *Filter) BitsPerEntry() int { return f.cfg.BitsPerEntry }

// ConcurrencyLevel returns the number of stripe locks backing the filter.
func (f *Filter) ConcurrencyLevel() int { return f.cfg.ConcurrencyLevel }

// Config returns the validated configuration this filter was built with.
func (f *Filter) Config() Config { return f.cfg }

// Stats is a read-only snapshot of a Filter's counters and configuration,
// suitable for logging or feeding into a caller's own metrics client. The
// core does not import a metrics library itself (metrics are explicitly out
// of scope for the core), but this gives an embedder something to scrape.
type Stats struct {
	Items      int64
	Capacity   int
	LoadFactor float64
	Config     Config
}

// Stats returns a snapshot of the filter's current counters and configuration.
func (f *Filter) Stats() Stats {
	return Stats{
		Items:      f.Items(),
		Capacity:   f.Capacity(),
		LoadFactor: f.LoadFactor(),
		Config:     f.cfg,
	}
}

func (f *Filter) String() string {
	return fmt.Sprintf(
		"Filter{buckets=%d, entriesPerBucket=%d, bitsPerEntry=%d, concurrencyLevel=%d, maxKicks=%d, items=%d}",
		f.cfg.Buckets, f.cfg.EntriesPerBucket, f.cfg.BitsPerEntry, f.cfg.ConcurrencyLevel, f.cfg.MaxKicks, f.Items(),
	)
}

// fingerprint derives a nonzero F-bit fingerprint from itemHash by trying
// up to 64/F F-bit windows in turn: the top F bits of the hash first, then
// the lowest F bits, then each next-higher F-bit window, returning the first
// nonzero window. If every window tried is zero, it returns 1 rather than
// storing an empty-looking entry.
func (f *Filter) fingerprint(itemHash uint64) uint64 {
	unusedBits := uint(64 - f.cfg.BitsPerEntry)
	windows := 64 / f.cfg.BitsPerEntry

	for i := 0; i < windows; i++ {
		// Java's << on a long takes the shift count mod 64, so a raw shift of
		// 64 (at i == 0) wraps around to a no-op there; Go's shift operator
		// has no such wraparound and instead zeroes the value, so the mod 64
		// has to be made explicit here.
		shift := uint(64-f.cfg.BitsPerEntry*i) % 64
		fp := (itemHash << shift) >> unusedBits
		if fp != 0 {
			return fp
		}
	}
	return 1
}

// primaryBucket derives b1 from a raw item hash.
func (f *Filter) primaryBucket(itemHash uint64) int {
	return f.bucketIndex(itemHash >> uint(f.cfg.BitsPerEntry))
}

// alternateBucket derives the other candidate bucket from a bucket and
// fingerprint. Applying it twice with the same fingerprint returns the
// original bucket, which is what lets a displaced entry find its way home
// without knowing the item it came from.
func (f *Filter) alternateBucket(bucket int, fingerprint uint64) int {
	return f.bucketIndex(uint64(bucket) ^ (fingerprint * bucketMultiplier))
}

// bucketIndex folds a 64-bit hash into [0, buckets). The sign bit (bit 63,
// treated as noise rather than magnitude) is folded in via bitwise
// complement before masking. The fold does not affect alternateBucket being
// its own inverse: bit 63 of bucket XOR x is bit 63 of x, so both
// applications fold or neither does, and each fold flips the same masked
// bits. buckets is a power of two, so masking with buckets-1 is equivalent
// to (and much cheaper than) a modulo.
func (f *Filter) bucketIndex(h uint64) int {
	if int64(h) < 0 {
		h = ^h
	}
	return int(h & uint64(f.cfg.Buckets-1))
}
