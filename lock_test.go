package cuckoofilter

import (
	"sync"
	"testing"
)

func TestStripeLocksBucketMapping(t *testing.T) {
	locks := newStripeLocks(8)

	if locks.forBucket(3) != locks.forBucket(11) {
		t.Errorf("expected buckets 3 and 11 to share a stripe (11 mod 8 == 3)")
	}
	if locks.forBucket(0) == locks.forBucket(1) {
		t.Errorf("expected buckets 0 and 1 to use distinct stripes")
	}
}

func TestStripeOptimisticReadValidatesAcrossWrite(t *testing.T) {
	s := &stripe{}

	stamp := s.tryOptimisticRead()
	if !s.validate(stamp) {
		t.Fatalf("expected a fresh stamp to validate")
	}

	s.writeLocked(func() {})

	if s.validate(stamp) {
		t.Errorf("expected stamp to be invalidated by an intervening write")
	}
}

func TestStripeWriteLockedIsExclusive(t *testing.T) {
	s := &stripe{}
	var mu sync.Mutex
	inside := false

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.writeLocked(func() {
				mu.Lock()
				if inside {
					t.Errorf("writeLocked must be exclusive")
				}
				inside = true
				mu.Unlock()

				mu.Lock()
				inside = false
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
}
