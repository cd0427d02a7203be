package cuckoofilter

import "testing"

func TestPackedBitsAlignedReadWrite(t *testing.T) {
	b := newPackedBits(128)

	b.or(0, 8, 0xab)
	if got := b.read(0, 8); got != 0xab {
		t.Errorf("read(0,8) = %#x, want %#x", got, 0xab)
	}

	b.or(64, 70, 0x3f)
	if got := b.read(64, 70); got != 0x3f {
		t.Errorf("read(64,70) = %#x, want %#x", got, 0x3f)
	}
}

func TestPackedBitsStraddlingReadWrite(t *testing.T) {
	b := newPackedBits(128)

	// [60, 70) straddles the word boundary at bit 64.
	b.or(60, 70, 0x3ff)
	if got := b.read(60, 70); got != 0x3ff {
		t.Errorf("read(60,70) = %#x, want %#x", got, 0x3ff)
	}

	// Neighboring bits must be untouched.
	if got := b.read(50, 60); got != 0 {
		t.Errorf("read(50,60) = %#x, want 0", got)
	}
}

func TestPackedBitsClear(t *testing.T) {
	b := newPackedBits(128)

	b.or(60, 70, 0x3ff)
	b.clear(60, 70)
	if got := b.read(60, 70); got != 0 {
		t.Errorf("read(60,70) after clear = %#x, want 0", got)
	}
}

func TestPackedBitsOrIsAdditive(t *testing.T) {
	b := newPackedBits(64)

	b.or(0, 4, 0b0101)
	b.or(0, 4, 0b1010)
	if got := b.read(0, 4); got != 0b1111 {
		t.Errorf("read(0,4) = %#b, want %#b", got, 0b1111)
	}
}

func TestPackedBitsFullWordRange(t *testing.T) {
	b := newPackedBits(128)

	b.or(0, 64, wordMask)
	if got := b.read(0, 64); got != wordMask {
		t.Errorf("read(0,64) = %#x, want %#x", got, wordMask)
	}

	b.or(64, 128, wordMask)
	if got := b.read(64, 128); got != wordMask {
		t.Errorf("read(64,128) = %#x, want %#x", got, wordMask)
	}
}

func TestPackedBitsRejectsBadRanges(t *testing.T) {
	cases := []struct {
		name     string
		from, to int64
		kind     ErrKind
	}{
		{"from equals to", 4, 4, KindInvalidArgument},
		{"range too wide", 0, 65, KindInvalidArgument},
		{"from greater than to", 10, 5, KindInvalidArgument},
		{"from negative", -1, 5, KindOutOfRange},
		{"from at size", 128, 130, KindOutOfRange},
		{"to negative", 0, -1, KindOutOfRange},
		{"to beyond size", 100, 200, KindOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newPackedBits(128)

			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("expected panic")
				}
				rangeErr, ok := r.(*RangeError)
				if !ok {
					t.Fatalf("expected *RangeError, got %T", r)
				}
				if rangeErr.Kind != tc.kind {
					t.Errorf("Kind = %v, want %v", rangeErr.Kind, tc.kind)
				}
			}()

			b.read(tc.from, tc.to)
		})
	}
}

func TestComplementShift(t *testing.T) {
	cases := []struct {
		n    int64
		want int64
	}{
		{0, 0},
		{64, 0},
		{60, 4},
		{4, 60},
	}

	for _, tc := range cases {
		if got := complementShift(tc.n); got != tc.want {
			t.Errorf("complementShift(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
