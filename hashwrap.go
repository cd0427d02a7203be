package cuckoofilter

import "github.com/zeebo/xxh3"

// The core filter operates on caller-supplied 64-bit item hashes; it never
// picks a hash function itself. The methods below are a convenience layer
// for the common case of hashing raw bytes or strings, built on xxh3 the
// same way gloom's Filter.Add/AddString wrap it. Callers who need a
// different hash function should call Put/MightContain/Remove/Count
// directly with their own hash.

// AddBytes hashes data with xxh3 and puts it into the filter.
func (f *Filter) AddBytes(data []byte) bool {
	return f.Put(xxh3.Hash(data))
}

// AddString hashes s with xxh3 and puts it into the filter, without the
// allocation a []byte conversion would cost.
func (f *Filter) AddString(s string) bool {
	return f.Put(xxh3.HashString(s))
}

// ContainsBytes reports whether data might be in the filter.
func (f *Filter) ContainsBytes(data []byte) bool {
	return f.MightContain(xxh3.Hash(data))
}

// ContainsString reports whether s might be in the filter.
func (f *Filter) ContainsString(s string) bool {
	return f.MightContain(xxh3.HashString(s))
}

// RemoveBytes removes one occurrence of data from the filter.
func (f *Filter) RemoveBytes(data []byte) bool {
	return f.Remove(xxh3.Hash(data))
}

// RemoveString removes one occurrence of s from the filter.
func (f *Filter) RemoveString(s string) bool {
	return f.Remove(xxh3.HashString(s))
}

// CountBytes counts the occurrences of data in the filter.
func (f *Filter) CountBytes(data []byte) int {
	return f.Count(xxh3.Hash(data))
}

// CountString counts the occurrences of s in the filter.
func (f *Filter) CountString(s string) int {
	return f.Count(xxh3.HashString(s))
}
