package decimal

import "math/bits"

// u96 is a 96-bit unsigned coefficient stored as three 32-bit limbs.
// The represented value is hi * 2^64 + mid * 2^32 + lo.
type u96 struct {
	lo, mid, hi uint32
}

// maxU96 is the maximum value of u96, which is equal to 2^96 - 1,
// or 79_228_162_514_264_337_593_543_950_335 in decimal.
var maxU96 = u96{lo: 1<<32 - 1, mid: 1<<32 - 1, hi: 1<<32 - 1}

// pow10w32 is a cache of powers of 10 that fit in a single limb,
// where pow10w32[x] = 10^x.
var pow10w32 = [...]uint32{
	1,             // 10^0
	10,            // 10^1
	100,           // 10^2
	1_000,         // 10^3
	10_000,        // 10^4
	100_000,       // 10^5
	1_000_000,     // 10^6
	10_000_000,    // 10^7
	100_000_000,   // 10^8
	1_000_000_000, // 10^9
}

// pow10u96 is a cache of powers of 10, where pow10u96[x] = 10^x.
// The largest entry is 10^28, the largest power of 10 below 2^96.
var pow10u96 = func() [29]u96 {
	var p [29]u96
	p[0] = u96{lo: 1}
	for i := 1; i < len(p); i++ {
		p[i], _ = p[i-1].mul32(10)
	}
	return p
}()

// u96FromUint64 converts uint64 to u96.
func u96FromUint64(v uint64) u96 {
	//nolint:gosec
	return u96{lo: uint32(v), mid: uint32(v >> 32)}
}

// uint64 converts u96 to uint64 and checks overflow.
func (x u96) uint64() (v uint64, ok bool) {
	if x.hi != 0 {
		return 0, false
	}
	return uint64(x.mid)<<32 | uint64(x.lo), true
}

func (x u96) isZero() bool {
	return x.lo == 0 && x.mid == 0 && x.hi == 0
}

func (x u96) isOdd() bool {
	return x.lo&1 != 0
}

// cmp compares x and y and returns:
//
//	-1 if x < y
//	 0 if x = y
//	+1 if x > y
func (x u96) cmp(y u96) int {
	switch {
	case x.hi != y.hi:
		if x.hi < y.hi {
			return -1
		}
		return 1
	case x.mid != y.mid:
		if x.mid < y.mid {
			return -1
		}
		return 1
	case x.lo != y.lo:
		if x.lo < y.lo {
			return -1
		}
		return 1
	}
	return 0
}

// add calculates x + y and checks overflow.
func (x u96) add(y u96) (z u96, ok bool) {
	var c uint32
	z.lo, c = bits.Add32(x.lo, y.lo, 0)
	z.mid, c = bits.Add32(x.mid, y.mid, c)
	z.hi, c = bits.Add32(x.hi, y.hi, c)
	return z, c == 0
}

// dist calculates |x - y|.
func (x u96) dist(y u96) u96 {
	if x.cmp(y) < 0 {
		x, y = y, x
	}
	var z u96
	var b uint32
	z.lo, b = bits.Sub32(x.lo, y.lo, 0)
	z.mid, b = bits.Sub32(x.mid, y.mid, b)
	z.hi, _ = bits.Sub32(x.hi, y.hi, b)
	return z
}

// mul32 calculates x * y, returning the carry limb that did not fit
// into 96 bits.
func (x u96) mul32(y uint32) (z u96, carry uint32) {
	c := uint64(x.lo) * uint64(y)
	z.lo = uint32(c)
	c >>= 32
	c += uint64(x.mid) * uint64(y)
	z.mid = uint32(c)
	c >>= 32
	c += uint64(x.hi) * uint64(y)
	z.hi = uint32(c)
	return z, uint32(c >> 32)
}

// quoRem32 calculates q = ⌊x / y⌋ and r = x - y * q,
// dividing limb by limb from the most significant end.
// y must not be zero.
func (x u96) quoRem32(y uint32) (q u96, r uint32) {
	d := uint64(y)
	cur := uint64(x.hi)
	q.hi = uint32(cur / d)
	cur = cur%d<<32 | uint64(x.mid)
	q.mid = uint32(cur / d)
	cur = cur%d<<32 | uint64(x.lo)
	q.lo = uint32(cur / d)
	return q, uint32(cur % d)
}

// lsh (Left Shift) calculates x * 10^shift and checks overflow.
func (x u96) lsh(shift int) (z u96, ok bool) {
	z = x
	for shift > 0 {
		c := shift
		if c > 9 {
			c = 9
		}
		var carry uint32
		z, carry = z.mul32(pow10w32[c])
		if carry != 0 {
			return u96{}, false
		}
		shift -= c
	}
	return z, true
}

// fsa (Fused Shift and Addition) calculates x * 10^shift + b and checks overflow.
func (x u96) fsa(shift int, b byte) (z u96, ok bool) {
	z, ok = x.lsh(shift)
	if !ok {
		return u96{}, false
	}
	z, ok = z.add(u96{lo: uint32(b)})
	if !ok {
		return u96{}, false
	}
	return z, true
}

// rshHalfEven (Right Shift) calculates x / 10^shift and rounds the
// result using "half to even" rule.
// The rounding decision is made once against the full discarded tail:
// the low chunks only contribute a sticky bit, the final chunk's
// remainder is compared against half of its divisor.
func (x u96) rshHalfEven(shift int) u96 {
	if shift <= 0 {
		return x
	}
	var sticky bool
	for {
		c := shift
		if c > 9 {
			c = 9
		}
		d := pow10w32[c]
		q, r := x.quoRem32(d)
		shift -= c
		if shift == 0 {
			half := d / 2
			if r > half || (r == half && (sticky || q.isOdd())) {
				q, _ = q.add(u96{lo: 1}) // cannot overflow, q <= maxU96/10
			}
			return q
		}
		if r != 0 {
			sticky = true
		}
		x = q
	}
}

// rshUp (Right Shift) calculates x / 10^shift and rounds the result away from 0.
func (x u96) rshUp(shift int) u96 {
	if shift <= 0 {
		return x
	}
	var sticky bool
	for shift > 0 {
		c := shift
		if c > 9 {
			c = 9
		}
		var r uint32
		x, r = x.quoRem32(pow10w32[c])
		if r != 0 {
			sticky = true
		}
		shift -= c
	}
	if sticky {
		x, _ = x.add(u96{lo: 1}) // cannot overflow, x <= maxU96/10
	}
	return x
}

// rshDown (Right Shift) calculates x / 10^shift and rounds the result towards 0.
func (x u96) rshDown(shift int) u96 {
	if shift <= 0 {
		return x
	}
	for shift > 0 {
		c := shift
		if c > 9 {
			c = 9
		}
		x, _ = x.quoRem32(pow10w32[c])
		shift -= c
	}
	return x
}

// quoRemPow10 calculates q = ⌊x / 10^shift⌋ and r = x - 10^shift * q.
func (x u96) quoRemPow10(shift int) (q, r u96) {
	q = x.rshDown(shift)
	m, _ := q.lsh(shift) // exact, m <= x
	return q, x.dist(m)
}

// prec returns length of x in decimal digits.
func (x u96) prec() int {
	left, right := 0, len(pow10u96)
	for left < right {
		mid := (left + right) / 2
		if x.cmp(pow10u96[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// ntz returns the number of trailing decimal zeros in x.
func (x u96) ntz() int {
	if x.isZero() {
		return 0
	}
	var z int
	for {
		q, r := x.quoRem32(10)
		if r != 0 {
			return z
		}
		x = q
		z++
	}
}

// wide extends x to 192 bits.
func (x u96) wide() u192 {
	return u192{x.lo, x.mid, x.hi}
}
