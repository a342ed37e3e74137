package decimal

import (
	"math"
	"testing"
)

func TestU96_Uint64(t *testing.T) {
	tests := []uint64{0, 1, 9, 10, math.MaxUint32, math.MaxUint32 + 1, math.MaxInt64, math.MaxUint64}
	for _, tt := range tests {
		x := u96FromUint64(tt)
		got, ok := x.uint64()
		if !ok {
			t.Errorf("u96FromUint64(%v).uint64() failed", tt)
			continue
		}
		if got != tt {
			t.Errorf("u96FromUint64(%v).uint64() = %v, want %v", tt, got, tt)
		}
	}
	if _, ok := maxU96.uint64(); ok {
		t.Errorf("maxU96.uint64() did not fail")
	}
}

func TestU96_Add(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x, y, want uint64
		}{
			{0, 0, 0},
			{1, 2, 3},
			{math.MaxUint32, 1, math.MaxUint32 + 1},
			{math.MaxUint64 - 1, 1, math.MaxUint64},
		}
		for _, tt := range tests {
			got, ok := u96FromUint64(tt.x).add(u96FromUint64(tt.y))
			if !ok {
				t.Errorf("%v.add(%v) failed", tt.x, tt.y)
				continue
			}
			if got != u96FromUint64(tt.want) {
				t.Errorf("%v.add(%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		}
		// Carry into the high limb
		x := u96{lo: math.MaxUint32, mid: math.MaxUint32}
		got, ok := x.add(u96{lo: 1})
		want := u96{hi: 1}
		if !ok || got != want {
			t.Errorf("%v.add(1) = %v, %v, want %v, true", x, got, ok, want)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		if _, ok := maxU96.add(u96{lo: 1}); ok {
			t.Errorf("maxU96.add(1) did not fail")
		}
	})
}

func TestU96_Dist(t *testing.T) {
	tests := []struct {
		x, y, want uint64
	}{
		{0, 0, 0},
		{1, 2, 1},
		{2, 1, 1},
		{math.MaxUint64, 1, math.MaxUint64 - 1},
	}
	for _, tt := range tests {
		got := u96FromUint64(tt.x).dist(u96FromUint64(tt.y))
		if got != u96FromUint64(tt.want) {
			t.Errorf("%v.dist(%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	// Borrow across all limbs
	got := u96{hi: 1}.dist(u96{lo: 1})
	want := u96{lo: math.MaxUint32, mid: math.MaxUint32}
	if got != want {
		t.Errorf("2^64.dist(1) = %v, want %v", got, want)
	}
}

func TestU96_Cmp(t *testing.T) {
	tests := []struct {
		x, y u96
		want int
	}{
		{u96{}, u96{}, 0},
		{u96{lo: 1}, u96{}, 1},
		{u96{}, u96{lo: 1}, -1},
		{u96{hi: 1}, u96{lo: math.MaxUint32, mid: math.MaxUint32}, 1},
		{u96{mid: 1}, u96{lo: math.MaxUint32}, 1},
		{maxU96, maxU96, 0},
	}
	for _, tt := range tests {
		got := tt.x.cmp(tt.y)
		if got != tt.want {
			t.Errorf("%v.cmp(%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestU96_Lsh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x     uint64
			shift int
			want  u96
		}{
			{1, 0, u96{lo: 1}},
			{1, 1, u96{lo: 10}},
			{1, 19, u96FromUint64(10_000_000_000_000_000_000)},
			{1, 28, pow10u96[28]},
			{7, 28, mustLsh(u96{lo: 7}, 28)},
		}
		for _, tt := range tests {
			got, ok := u96FromUint64(tt.x).lsh(tt.shift)
			if !ok {
				t.Errorf("%v.lsh(%v) failed", tt.x, tt.shift)
				continue
			}
			if got != tt.want {
				t.Errorf("%v.lsh(%v) = %v, want %v", tt.x, tt.shift, got, tt.want)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		tests := []struct {
			x     u96
			shift int
		}{
			{u96{lo: 1}, 29},
			{u96{lo: 8}, 28},
			{maxU96, 1},
		}
		for _, tt := range tests {
			if _, ok := tt.x.lsh(tt.shift); ok {
				t.Errorf("%v.lsh(%v) did not fail", tt.x, tt.shift)
			}
		}
	})
}

func mustLsh(x u96, shift int) u96 {
	z := x
	for i := 0; i < shift; i++ {
		var carry uint32
		z, carry = z.mul32(10)
		if carry != 0 {
			panic("mustLsh overflow")
		}
	}
	return z
}

func TestU96_Fsa(t *testing.T) {
	var x u96
	var ok bool
	for _, b := range []byte{1, 2, 3} {
		x, ok = x.fsa(1, b)
		if !ok {
			t.Fatalf("fsa(1, %v) failed", b)
		}
	}
	if want := u96FromUint64(123); x != want {
		t.Errorf("fsa chain = %v, want %v", x, want)
	}
	if _, ok := maxU96.fsa(1, 0); ok {
		t.Errorf("maxU96.fsa(1, 0) did not fail")
	}
}

func TestU96_RshHalfEven(t *testing.T) {
	tests := []struct {
		x     uint64
		shift int
		want  uint64
	}{
		{0, 1, 0},
		{1, 1, 0},
		{4, 1, 0},
		{5, 1, 0},  // 0.5 rounds to even 0
		{15, 1, 2}, // 1.5 rounds to even 2
		{25, 1, 2}, // 2.5 rounds to even 2
		{35, 1, 4}, // 3.5 rounds to even 4
		{6, 1, 1},
		{249, 2, 2},
		{250, 2, 2},
		{251, 2, 3},
		{350, 2, 4},
		// Multi-chunk shifts: the sticky bit must survive chunking
		{15_000_000_000, 10, 2},
		{25_000_000_000, 10, 2},
		{15_000_000_001, 10, 2},
		{25_000_000_001, 10, 3},
		{24_999_999_999, 10, 2},
	}
	for _, tt := range tests {
		got := u96FromUint64(tt.x).rshHalfEven(tt.shift)
		if got != u96FromUint64(tt.want) {
			t.Errorf("%v.rshHalfEven(%v) = %v, want %v", tt.x, tt.shift, got, tt.want)
		}
	}
}

func TestU96_RshUpDown(t *testing.T) {
	tests := []struct {
		x        uint64
		shift    int
		up, down uint64
	}{
		{0, 1, 0, 0},
		{1, 1, 1, 0},
		{10, 1, 1, 1},
		{11, 1, 2, 1},
		{10_000_000_001, 10, 2, 1},
		{19_999_999_999, 10, 2, 1},
		{20_000_000_000, 10, 2, 2},
	}
	for _, tt := range tests {
		if got := u96FromUint64(tt.x).rshUp(tt.shift); got != u96FromUint64(tt.up) {
			t.Errorf("%v.rshUp(%v) = %v, want %v", tt.x, tt.shift, got, tt.up)
		}
		if got := u96FromUint64(tt.x).rshDown(tt.shift); got != u96FromUint64(tt.down) {
			t.Errorf("%v.rshDown(%v) = %v, want %v", tt.x, tt.shift, got, tt.down)
		}
	}
}

func TestU96_QuoRem32(t *testing.T) {
	tests := []struct {
		x    u96
		y    uint32
		q    u96
		r    uint32
	}{
		{u96{}, 10, u96{}, 0},
		{u96FromUint64(123), 10, u96FromUint64(12), 3},
		{u96FromUint64(1_000_000_000), 1_000_000_000, u96FromUint64(1), 0},
		{u96{hi: 1}, 2, u96{mid: 1 << 31}, 0},      // 2^64 / 2 = 2^63
		{u96{hi: 1}, 3, u96FromUint64(6148914691236517205), 1}, // 2^64 = 3 * 6148914691236517205 + 1
	}
	for _, tt := range tests {
		q, r := tt.x.quoRem32(tt.y)
		if q != tt.q || r != tt.r {
			t.Errorf("%v.quoRem32(%v) = %v, %v, want %v, %v", tt.x, tt.y, q, r, tt.q, tt.r)
		}
	}
}

func TestU96_QuoRemPow10(t *testing.T) {
	tests := []struct {
		x     uint64
		shift int
		q, r  uint64
	}{
		{12345, 2, 123, 45},
		{12345, 0, 12345, 0},
		{12345, 5, 0, 12345},
		{10_000_000_000_000, 13, 1, 0},
	}
	for _, tt := range tests {
		q, r := u96FromUint64(tt.x).quoRemPow10(tt.shift)
		if q != u96FromUint64(tt.q) || r != u96FromUint64(tt.r) {
			t.Errorf("%v.quoRemPow10(%v) = %v, %v, want %v, %v", tt.x, tt.shift, q, r, tt.q, tt.r)
		}
	}
}

func TestU96_Prec(t *testing.T) {
	tests := []struct {
		x    u96
		want int
	}{
		{u96{}, 0},
		{u96{lo: 1}, 1},
		{u96{lo: 9}, 1},
		{u96{lo: 10}, 2},
		{u96FromUint64(9_999_999_999_999_999_999), 19},
		{u96FromUint64(10_000_000_000_000_000_000), 20},
		{pow10u96[28], 29},
		{maxU96, 29},
	}
	for _, tt := range tests {
		if got := tt.x.prec(); got != tt.want {
			t.Errorf("%v.prec() = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestU96_Ntz(t *testing.T) {
	tests := []struct {
		x    u96
		want int
	}{
		{u96{}, 0},
		{u96{lo: 1}, 0},
		{u96{lo: 10}, 1},
		{u96{lo: 101}, 0},
		{u96FromUint64(1_000_000_000_000), 12},
		{pow10u96[28], 28},
	}
	for _, tt := range tests {
		if got := tt.x.ntz(); got != tt.want {
			t.Errorf("%v.ntz() = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestMul96(t *testing.T) {
	tests := []struct {
		x, y, want uint64
	}{
		{0, 0, 0},
		{1, 1, 1},
		{123, 456, 56088},
		{1_000_000_000, 1_000_000_000, 1_000_000_000_000_000_000},
		{math.MaxUint32, math.MaxUint32, 18446744065119617025},
	}
	for _, tt := range tests {
		got := mul96(u96FromUint64(tt.x), u96FromUint64(tt.y))
		if want := u96FromUint64(tt.want).wide(); got != want {
			t.Errorf("mul96(%v, %v) = %v, want %v", tt.x, tt.y, got, want)
		}
	}
}

func TestU192_QuoRem32(t *testing.T) {
	// 10^38 = mul96(10^19, 10^19), divided back down
	x := mul96(u96FromUint64(10_000_000_000_000_000_000), u96FromUint64(10_000_000_000_000_000_000))
	q, r := x.quoRem32(1_000_000_000)
	if r != 0 {
		t.Fatalf("10^38 mod 10^9 = %v, want 0", r)
	}
	q, r = q.quoRem32(1_000_000_000)
	if r != 0 {
		t.Fatalf("10^29 mod 10^9 = %v, want 0", r)
	}
	want := pow10u96[20].wide()
	if q != want {
		t.Errorf("10^38 / 10^18 = %v, want %v", q, want)
	}
}

func TestU192_RshHalfEven(t *testing.T) {
	tests := []struct {
		x     uint64
		shift int
		want  uint64
	}{
		{25, 1, 2},
		{35, 1, 4},
		{25_000_000_001, 10, 3},
		{15_000_000_000, 10, 2},
	}
	for _, tt := range tests {
		got := u96FromUint64(tt.x).wide().rshHalfEven(tt.shift)
		if got != u96FromUint64(tt.want).wide() {
			t.Errorf("%v.rshHalfEven(%v) = %v, want %v", tt.x, tt.shift, got, tt.want)
		}
	}
}

// TestU192_QuoRem96 reconstructs dividends as q * y + r and checks that
// division recovers the parts, covering one-, two-, and three-limb divisors.
func TestU192_QuoRem96(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			q, y, r u96
		}{
			// Single-limb divisors
			{u96FromUint64(1), u96{lo: 1}, u96{}},
			{u96FromUint64(123456), u96{lo: 789}, u96{lo: 788}},
			{maxU96, u96{lo: 7}, u96{lo: 6}},
			// Two-limb divisors
			{u96FromUint64(12345), u96FromUint64(math.MaxUint64), u96FromUint64(math.MaxUint64 - 1)},
			{maxU96, u96FromUint64(math.MaxUint32 + 1), u96FromUint64(math.MaxUint32)},
			{u96{}, u96FromUint64(math.MaxUint64), u96FromUint64(12345)},
			// Three-limb divisors
			{u96FromUint64(1), maxU96, u96{}},
			{u96FromUint64(987654321), maxU96, u96FromUint64(123456789)},
			{u96FromUint64(math.MaxUint64), u96{lo: 1, hi: 1}, u96{hi: 1}},
			{u96FromUint64(2), pow10u96[28], pow10u96[27]},
			{u96{}, maxU96, maxU96.dist(u96{lo: 1})},
		}
		for _, tt := range tests {
			x := mul96(tt.q, tt.y).add(tt.r.wide())
			q, r, ok := x.quoRem96(tt.y)
			if !ok {
				t.Errorf("(%v * %v + %v).quoRem96(%v) failed", tt.q, tt.y, tt.r, tt.y)
				continue
			}
			if q != tt.q || r != tt.r {
				t.Errorf("(%v * %v + %v).quoRem96(%v) = %v, %v, want %v, %v", tt.q, tt.y, tt.r, tt.y, q, r, tt.q, tt.r)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		// Zero divisor
		if _, _, ok := u96FromUint64(1).wide().quoRem96(u96{}); ok {
			t.Errorf("1.quoRem96(0) did not fail")
		}
		// Quotient exceeding 96 bits
		x := mul96(maxU96, u96FromUint64(2))
		if _, _, ok := x.quoRem96(u96{lo: 1}); ok {
			t.Errorf("(2 * maxU96).quoRem96(1) did not fail")
		}
	})
}

// TestU192_MulQuoRoundTrip cross-checks multiplication and division on
// full-width operands.
func TestU192_MulQuoRoundTrip(t *testing.T) {
	operands := []u96{
		u96{lo: 1},
		u96FromUint64(2),
		u96FromUint64(10),
		u96FromUint64(math.MaxUint32),
		u96FromUint64(math.MaxUint64),
		pow10u96[10],
		pow10u96[28],
		maxU96,
		{lo: 0xdeadbeef, mid: 0xcafebabe, hi: 0x12345678},
	}
	for _, x := range operands {
		for _, y := range operands {
			p := mul96(x, y)
			q, r, ok := p.quoRem96(y)
			if !ok {
				t.Errorf("mul96(%v, %v).quoRem96(%v) failed", x, y, y)
				continue
			}
			if q != x || !r.isZero() {
				t.Errorf("mul96(%v, %v).quoRem96(%v) = %v, %v, want %v, 0", x, y, y, q, r, x)
			}
		}
	}
}

func TestU192_AddSubCmp(t *testing.T) {
	x := mul96(maxU96, maxU96)
	y := u96FromUint64(12345).wide()
	sum := x.add(y)
	if got := sum.sub(y); got != x {
		t.Errorf("(x + y) - y = %v, want %v", got, x)
	}
	if sum.cmp(x) != 1 || x.cmp(sum) != -1 || x.cmp(x) != 0 {
		t.Errorf("u192 comparison is inconsistent")
	}
}

func TestU192_Lsh(t *testing.T) {
	got, ok := u96{lo: 1}.wide().lsh(57)
	if !ok {
		t.Fatalf("1.lsh(57) failed")
	}
	// 10^57 = 10^29 * 10^28
	want := mul96(pow10u96[28], pow10u96[28])
	want, _ = want.mul32(10)
	if got != want {
		t.Errorf("1.lsh(57) = %v, want %v", got, want)
	}
	if _, ok := maxU96.wide().lsh(30); ok {
		t.Errorf("maxU96.lsh(30) did not fail")
	}
}
