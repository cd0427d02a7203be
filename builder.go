package cuckoofilter

import (
	"math"
	"math/bits"
	"runtime"
)

// defaultFalsePositiveProbability is used when the caller does not override
// it with WithFalsePositiveProbability.
const defaultFalsePositiveProbability = 0.002

// Config is the validated, fully-derived set of tuning parameters a Filter
// was built with.
type Config struct {
	// Buckets is B, the number of buckets. Always a power of two.
	Buckets int
	// EntriesPerBucket is E, one of {1, 2, 4, 8}.
	EntriesPerBucket int
	// BitsPerEntry is F, the fingerprint width, in [1, 31].
	BitsPerEntry int
	// ConcurrencyLevel is R, the number of stripe locks. A power of two, R <= B.
	ConcurrencyLevel int
	// MaxKicks is the displacement loop bound, min(Buckets, 500).
	MaxKicks int
}

// Builder constructs a Filter from an expected capacity, a desired
// false-positive probability, and optional overrides of the derived sizing
// parameters. Each With* setter validates eagerly; Build performs the
// remaining derivation and validation and returns the finished Filter.
type Builder struct {
	expectedCapacity int
	fpp              float64

	bitsPerEntry     int
	entriesPerBucket int
	concurrencyLevel int

	err error
}

// NewBuilder creates a Builder for a filter expected to hold up to
// expectedCapacity items, with a default false-positive probability of 0.2%.
func NewBuilder(expectedCapacity int) *Builder {
	b := &Builder{fpp: defaultFalsePositiveProbability}

	if expectedCapacity < 1 {
		b.err = &ConfigError{Field: "expectedCapacity", Value: expectedCapacity, Reason: "must be at least 1"}
		return b
	}

	b.expectedCapacity = expectedCapacity
	return b
}

// WithFalsePositiveProbability sets the desired false-positive probability,
// a value strictly between 0 and 1. Defaults to 0.002 (0.2%).
func (b *Builder) WithFalsePositiveProbability(fpp float64) *Builder {
	if b.err != nil {
		return b
	}

	if fpp <= 0 || fpp >= 1 {
		b.err = &ConfigError{Field: "falsePositiveProbability", Value: fpp, Reason: "must be between 0 and 1, exclusive"}
		return b
	}

	b.fpp = fpp
	return b
}

// WithBitsPerEntry overrides the fingerprint width F that would otherwise be
// derived from the false-positive probability. Valid range is [1, 31].
func (b *Builder) WithBitsPerEntry(bitsPerEntry int) *Builder {
	if b.err != nil {
		return b
	}

	if bitsPerEntry < 1 || bitsPerEntry > 31 {
		b.err = &ConfigError{Field: "bitsPerEntry", Value: bitsPerEntry, Reason: "must be between 1 and 31"}
		return b
	}

	b.bitsPerEntry = bitsPerEntry
	return b
}

// WithEntriesPerBucket overrides the entries-per-bucket E that would
// otherwise be derived from the false-positive probability. Must be one of
// 1, 2, 4, 8.
func (b *Builder) WithEntriesPerBucket(entriesPerBucket int) *Builder {
	if b.err != nil {
		return b
	}

	switch entriesPerBucket {
	case 1, 2, 4, 8:
		b.entriesPerBucket = entriesPerBucket
	default:
		b.err = &ConfigError{Field: "entriesPerBucket", Value: entriesPerBucket, Reason: "must be one of 1, 2, 4, 8"}
	}
	return b
}

// WithConcurrencyLevel overrides the number of stripe locks R that would
// otherwise default to the number of available processors, capped at B.
// Must be at least 1; it is rounded up to the next power of two and capped
// at B during Build.
func (b *Builder) WithConcurrencyLevel(concurrencyLevel int) *Builder {
	if b.err != nil {
		return b
	}

	if concurrencyLevel < 1 {
		b.err = &ConfigError{Field: "concurrencyLevel", Value: concurrencyLevel, Reason: "must be at least 1"}
		return b
	}

	b.concurrencyLevel = concurrencyLevel
	return b
}

// Build derives the remaining parameters and returns the finished Filter, or
// the first error recorded by NewBuilder or a setter.
func (b *Builder) Build() (*Filter, error) {
	if b.err != nil {
		return nil, b.err
	}

	entriesPerBucket := b.entriesPerBucket
	if entriesPerBucket == 0 {
		entriesPerBucket = entriesPerBucketFor(b.fpp)
	}

	loadFactor := targetLoadFactor(entriesPerBucket)

	bitsPerEntry := b.bitsPerEntry
	if bitsPerEntry == 0 {
		bitsPerEntry = bitsPerEntryFor(b.fpp, loadFactor)
		if bitsPerEntry > 31 {
			bitsPerEntry = 31
		}
	}

	buckets := bucketsFor(b.expectedCapacity, entriesPerBucket, loadFactor)

	concurrencyLevel := b.concurrencyLevel
	if concurrencyLevel == 0 {
		concurrencyLevel = defaultConcurrencyLevel(buckets)
	} else {
		concurrencyLevel = nextPowerOfTwo(concurrencyLevel)
		if concurrencyLevel > buckets {
			concurrencyLevel = buckets
		}
	}

	cfg := Config{
		Buckets:          buckets,
		EntriesPerBucket: entriesPerBucket,
		BitsPerEntry:     bitsPerEntry,
		ConcurrencyLevel: concurrencyLevel,
		MaxKicks:         maxKicksFor(buckets),
	}

	return newFilter(cfg), nil
}

// entriesPerBucketFor implements step 1 of the sizing policy.
func entriesPerBucketFor(fpp float64) int {
	switch {
	case fpp < 1e-5:
		return 8
	case fpp <= 2e-3:
		return 4
	default:
		return 2
	}
}

// targetLoadFactor implements step 2 of the sizing policy.
func targetLoadFactor(entriesPerBucket int) float64 {
	switch entriesPerBucket {
	case 8:
		return 0.98
	case 4:
		return 0.955
	default:
		return 0.84
	}
}

// bitsPerEntryFor implements step 3 of the sizing policy.
func bitsPerEntryFor(fpp, loadFactor float64) int {
	return int(math.Ceil((math.Log2(1/fpp) + 3) / loadFactor))
}

// bucketsFor implements step 4 of the sizing policy: next power of two >=
// ceil(N / (E * loadFactor)).
func bucketsFor(expectedCapacity, entriesPerBucket int, loadFactor float64) int {
	needed := math.Ceil(float64(expectedCapacity) / float64(entriesPerBucket) / loadFactor)
	return nextPowerOfTwo(int(needed))
}

// defaultConcurrencyLevel implements step 5 of the sizing policy: the number
// of available processors, capped at buckets and rounded to a power of two.
func defaultConcurrencyLevel(buckets int) int {
	r := nextPowerOfTwo(runtime.GOMAXPROCS(0))
	if r > buckets {
		r = buckets
	}
	return r
}

// maxKicksFor implements step 6 of the sizing policy.
func maxKicksFor(buckets int) int {
	return min(buckets, 500)
}

// nextPowerOfTwo returns the smallest power of two >= n (or 1, if n <= 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
