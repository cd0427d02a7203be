package cuckoofilter

// cuckooTable is a thread-safe cuckoo hash table. It partitions its
// bit-address space into B buckets of E entries of F bits each, and owns a
// bank of R stripe locks keyed by bucket mod R. Entry zero means "empty";
// every other value in [1, 2^F-1] is a stored fingerprint.
type cuckooTable struct {
	entriesPerBucket int
	bitsPerEntry     int64

	locks *stripeLocks
	bits  *packedBits // guarded by locks
}

// newCuckooTable creates a cuckoo table. buckets, entriesPerBucket, and
// bitsPerEntry must already be validated by the Builder; concurrencyLevel
// must be a power of two no greater than buckets.
func newCuckooTable(buckets, entriesPerBucket, bitsPerEntry, concurrencyLevel int) *cuckooTable {
	return &cuckooTable{
		entriesPerBucket: entriesPerBucket,
		bitsPerEntry:     int64(bitsPerEntry),
		locks:            newStripeLocks(concurrencyLevel),
		bits:             newPackedBits(int64(buckets) * int64(entriesPerBucket) * int64(bitsPerEntry)),
	}
}

// contains reports whether any entry in bucket holds value. It first tries
// an optimistic read and falls back to a shared read lock if a concurrent
// write is detected mid-scan.
func (t *cuckooTable) contains(bucket int, value uint64) bool {
	s := t.locks.forBucket(bucket)

	stamp := s.tryOptimisticRead()
	found := t.hasValue(bucket, value)

	if !s.validate(stamp) {
		s.readLocked(func() {
			found = t.hasValue(bucket, value)
		})
	}
	return found
}

// addIfEmpty adds value to the first empty entry of bucket. Returns false
// without mutation if the bucket is full.
func (t *cuckooTable) addIfEmpty(bucket int, value uint64) bool {
	added := false
	t.locks.forBucket(bucket).writeLocked(func() {
		entry := -1
		for i := 0; i < t.entriesPerBucket; i++ {
			if t.getValue(bucket, i) == 0 {
				entry = i
				break
			}
		}

		if entry < 0 {
			return
		}

		t.orValue(bucket, entry, value)
		added = true
	})
	return added
}

// getAndSet reads the current value at (bucket, entry), replaces it with
// value unless it is already equal, and returns the previous value.
func (t *cuckooTable) getAndSet(bucket, entry int, value uint64) uint64 {
	var previous uint64
	t.locks.forBucket(bucket).writeLocked(func() {
		previous = t.getValue(bucket, entry)
		if previous == value {
			return
		}

		t.clearValue(bucket, entry)
		t.orValue(bucket, entry, value)
	})
	return previous
}

// remove clears the first entry in bucket equal to value. Returns false if
// value is not present.
func (t *cuckooTable) remove(bucket int, value uint64) bool {
	removed := false
	t.locks.forBucket(bucket).writeLocked(func() {
		for i := 0; i < t.entriesPerBucket; i++ {
			if t.getValue(bucket, i) == value {
				t.clearValue(bucket, i)
				removed = true
				return
			}
		}
	})
	return removed
}

// count returns the number of entries in bucket equal to value.
func (t *cuckooTable) count(bucket int, value uint64) int {
	s := t.locks.forBucket(bucket)

	stamp := s.tryOptimisticRead()
	n := t.countValue(bucket, value)

	if !s.validate(stamp) {
		s.readLocked(func() {
			n = t.countValue(bucket, value)
		})
	}
	return n
}

func (t *cuckooTable) hasValue(bucket int, value uint64) bool {
	for i := 0; i < t.entriesPerBucket; i++ {
		if t.getValue(bucket, i) == value {
			return true
		}
	}
	return false
}

func (t *cuckooTable) countValue(bucket int, value uint64) int {
	n := 0
	for i := 0; i < t.entriesPerBucket; i++ {
		if t.getValue(bucket, i) == value {
			n++
		}
	}
	return n
}

func (t *cuckooTable) getValue(bucket, entry int) uint64 {
	start := t.startBit(bucket, entry)
	return t.bits.read(start, start+t.bitsPerEntry)
}

func (t *cuckooTable) orValue(bucket, entry int, value uint64) {
	start := t.startBit(bucket, entry)
	t.bits.or(start, start+t.bitsPerEntry, value)
}

func (t *cuckooTable) clearValue(bucket, entry int) {
	start := t.startBit(bucket, entry)
	t.bits.clear(start, start+t.bitsPerEntry)
}

func (t *cuckooTable) startBit(bucket, entry int) int64 {
	return (int64(bucket)*int64(t.entriesPerBucket) + int64(entry)) * t.bitsPerEntry
}
