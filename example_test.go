package cuckoofilter_test

import (
	"fmt"
	"sync"

	"github.com/ikelin/cuckoofilter"
)

// This example demonstrates basic membership testing against pre-hashed
// item hashes, the filter's hash-agnostic core API.
func Example() {
	f, err := cuckoofilter.NewBuilder(1000).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	f.Put(1001)
	f.Put(2002)

	fmt.Println("1001:", f.MightContain(1001)) // true (added)
	fmt.Println("2002:", f.MightContain(2002)) // true (added)
	fmt.Println("3003:", f.MightContain(3003)) // false (not added)

	// Output:
	// 1001: true
	// 2002: true
	// 3003: false
}

// This example shows the AddString/ContainsString convenience methods,
// which hash with xxh3 so callers never need to pick a hash function
// themselves.
func Example_stringKeys() {
	f, err := cuckoofilter.NewBuilder(10_000).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	f.AddString("user:12345")
	f.AddString("user:67890")

	fmt.Println("user:12345 exists:", f.ContainsString("user:12345"))
	fmt.Println("user:99999 exists:", f.ContainsString("user:99999"))

	// Output:
	// user:12345 exists: true
	// user:99999 exists: false
}

// This example demonstrates that, unlike a Bloom filter, items can be
// removed: removing one of two duplicate entries leaves the other in place.
func Example_remove() {
	f, err := cuckoofilter.NewBuilder(1000).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	f.Put(42)
	f.Put(42)
	fmt.Println("count before remove:", f.Count(42))

	f.Remove(42)
	fmt.Println("still present:", f.MightContain(42))
	fmt.Println("count after one remove:", f.Count(42))

	f.Remove(42)
	fmt.Println("still present:", f.MightContain(42))

	// Output:
	// count before remove: 2
	// still present: true
	// count after one remove: 1
	// still present: false
}

// This example shows concurrent use of a single Filter from multiple
// goroutines: Put/MightContain/Remove are all safe to call without external
// synchronization.
func Example_concurrent() {
	f, err := cuckoofilter.NewBuilder(100_000).WithConcurrencyLevel(8).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	var wg sync.WaitGroup
	for worker := 0; worker < 4; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				f.AddString(fmt.Sprintf("worker-%d-item-%d", worker, i))
			}
		}(worker)
	}
	wg.Wait()

	fmt.Println("items added:", f.Items())

	// Output:
	// items added: 4000
}

// This example shows how to inspect a filter's derived sizing parameters
// and current statistics.
func ExampleBuilder() {
	f, err := cuckoofilter.NewBuilder(100).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	fmt.Println("buckets:", f.Buckets())
	fmt.Println("entries per bucket:", f.EntriesPerBucket())
	fmt.Println("bits per entry:", f.BitsPerEntry())
	fmt.Println("capacity:", f.Capacity())

	// Output:
	// buckets: 32
	// entries per bucket: 4
	// bits per entry: 13
	// capacity: 128
}

// This example shows overriding the false-positive probability and reading
// back the resulting configuration.
func ExampleBuilder_WithFalsePositiveProbability() {
	f, err := cuckoofilter.NewBuilder(100).WithFalsePositiveProbability(1e-6).Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	fmt.Println("entries per bucket:", f.EntriesPerBucket())
	fmt.Println("bits per entry:", f.BitsPerEntry())

	// Output:
	// entries per bucket: 8
	// bits per entry: 24
}
