package cuckoofilter

// wordMask is an all-ones 64-bit word, used to build range masks.
const wordMask = ^uint64(0)

// addressBitsPerWord is log2(64): the shift that turns a bit index into a
// word index.
const addressBitsPerWord = 6

// packedBits is a fixed-size bit-addressable array of 64-bit words. It holds
// variable-width entries (1-31 bits) compactly, and exposes three operations
// over inclusive-start/exclusive-end ranges of width <= 64: read, or, clear.
// It performs no synchronization of its own; callers (CuckooTable) hold the
// appropriate stripe lock around every access.
type packedBits struct {
	size  int64
	words []uint64
}

// newPackedBits creates a bit array of the given size (in bits), with every
// bit initially zero.
func newPackedBits(size int64) *packedBits {
	if size < 0 {
		panic(&RangeError{
			Kind:   KindInvalidArgument,
			Op:     "newPackedBits",
			Size:   size,
			Reason: "size must not be negative",
		})
	}

	return &packedBits{
		size:  size,
		words: make([]uint64, wordIndex(size-1)+1),
	}
}

// read returns the unsigned integer value of bits [from, to), right-justified.
func (b *packedBits) read(from, to int64) uint64 {
	b.checkRange("read", from, to)

	startWord := wordIndex(from)
	endWord := wordIndex(to - 1)

	firstWordMask := wordMask << uint(bitInWord(from))
	lastWordMask := wordMask >> uint(complementShift(to))

	if startWord == endWord {
		return (b.words[startWord] & firstWordMask & lastWordMask) >> uint(bitInWord(from))
	}

	value := (b.words[startWord] & firstWordMask) >> uint(bitInWord(from))
	value |= (b.words[endWord] & lastWordMask) << uint(complementShift(from))
	return value
}

// or performs a logical OR of the low (to-from) bits of value into [from, to).
func (b *packedBits) or(from, to int64, value uint64) {
	b.checkRange("or", from, to)

	startWord := wordIndex(from)
	endWord := wordIndex(to - 1)

	firstWordMask := wordMask << uint(bitInWord(from))
	lastWordMask := wordMask >> uint(complementShift(to))

	if startWord == endWord {
		b.words[startWord] |= value << uint(bitInWord(from)) & firstWordMask & lastWordMask
	} else {
		b.words[startWord] |= value << uint(bitInWord(from)) & firstWordMask
		b.words[endWord] |= value >> uint(complementShift(from)) & lastWordMask
	}
}

// clear zeroes the range [from, to).
func (b *packedBits) clear(from, to int64) {
	b.checkRange("clear", from, to)

	startWord := wordIndex(from)
	endWord := wordIndex(to - 1)

	firstWordMask := wordMask << uint(bitInWord(from))
	lastWordMask := wordMask >> uint(complementShift(to))

	if startWord == endWord {
		b.words[startWord] &^= firstWordMask & lastWordMask
	} else {
		b.words[startWord] &^= firstWordMask
		b.words[endWord] &^= lastWordMask
	}
}

// complementShift implements the "shift by (64 - n) mod 64" that the source
// material expresses via a shift by a negative count. Go panics on a negative
// shift amount, so it must be spelled out explicitly rather than relying on
// two's-complement shift semantics the way the Java original does with
// `>>> -toIndex`.
func complementShift(n int64) int64 {
	return (64 - n%64) % 64
}

// bitInWord reduces a global bit index to its offset within its word. Java
// masks a long shift count to its low 6 bits implicitly; Go's shift operator
// applies the raw count and, for a count >= 64, zeroes a uint64 outright, so
// the reduction has to be explicit here too.
func bitInWord(n int64) int64 {
	return n % 64
}

func (b *packedBits) checkRange(op string, from, to int64) {
	if from < 0 || from >= b.size {
		panic(&RangeError{
			Kind: KindOutOfRange, Op: op, From: from, To: to, Size: b.size,
			Reason: "fromIndex is not within [0, size)",
		})
	}

	if to < 0 || to > b.size {
		panic(&RangeError{
			Kind: KindOutOfRange, Op: op, From: from, To: to, Size: b.size,
			Reason: "toIndex is not within [0, size]",
		})
	}

	if from > to {
		panic(&RangeError{
			Kind: KindInvalidArgument, Op: op, From: from, To: to, Size: b.size,
			Reason: "fromIndex is greater than toIndex",
		})
	}

	if from == to {
		panic(&RangeError{
			Kind: KindInvalidArgument, Op: op, From: from, To: to, Size: b.size,
			Reason: "fromIndex and toIndex must not be equal",
		})
	}

	if to-from > 64 {
		panic(&RangeError{
			Kind: KindInvalidArgument, Op: op, From: from, To: to, Size: b.size,
			Reason: "range exceeds 64 bits",
		})
	}
}

func wordIndex(bitIndex int64) int64 {
	return bitIndex >> addressBitsPerWord
}
