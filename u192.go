package decimal

import "math/bits"

// u192 is a 192-bit unsigned integer stored as six 32-bit limbs,
// least significant limb first.
// It is the transient buffer for products of two 96-bit coefficients
// and for dividends extended during scale alignment.
type u192 [6]uint32

// mul96 calculates x * y as a 192-bit product using schoolbook
// multiplication on 32-bit limbs.
func mul96(x, y u96) u192 {
	xs := [3]uint32{x.lo, x.mid, x.hi}
	ys := [3]uint32{y.lo, y.mid, y.hi}
	var z u192
	for i := 0; i < 3; i++ {
		var carry uint64
		xi := uint64(xs[i])
		for j := 0; j < 3; j++ {
			t := xi*uint64(ys[j]) + uint64(z[i+j]) + carry
			z[i+j] = uint32(t)
			carry = t >> 32
		}
		z[i+3] = uint32(carry)
	}
	return z
}

func (x u192) isZero() bool {
	return x == u192{}
}

// fits96 returns true if x fits in 96 bits.
func (x u192) fits96() bool {
	return x[3] == 0 && x[4] == 0 && x[5] == 0
}

// u96 truncates x to 96 bits.
func (x u192) u96() u96 {
	return u96{lo: x[0], mid: x[1], hi: x[2]}
}

// cmp compares x and y and returns:
//
//	-1 if x < y
//	 0 if x = y
//	+1 if x > y
func (x u192) cmp(y u192) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// add calculates x + y.
// The carry out of the most significant limb is discarded; callers
// must guarantee headroom (sums of aligned coefficients stay below 2^191).
func (x u192) add(y u192) u192 {
	var z u192
	var c uint32
	for i := range x {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	return z
}

// sub calculates x - y. x must not be less than y.
func (x u192) sub(y u192) u192 {
	var z u192
	var b uint32
	for i := range x {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	return z
}

// add32 calculates x + c.
func (x u192) add32(c uint32) u192 {
	return x.add(u192{c})
}

// mul32 calculates x * y, returning the carry limb that did not fit
// into 192 bits.
func (x u192) mul32(y uint32) (z u192, carry uint32) {
	var c uint64
	for i := range x {
		c += uint64(x[i]) * uint64(y)
		z[i] = uint32(c)
		c >>= 32
	}
	return z, uint32(c)
}

// lsh (Left Shift) calculates x * 10^shift and checks overflow.
func (x u192) lsh(shift int) (z u192, ok bool) {
	z = x
	for shift > 0 {
		c := shift
		if c > 9 {
			c = 9
		}
		var carry uint32
		z, carry = z.mul32(pow10w32[c])
		if carry != 0 {
			return u192{}, false
		}
		shift -= c
	}
	return z, true
}

// quoRem32 calculates q = ⌊x / y⌋ and r = x - y * q,
// dividing limb by limb from the most significant end.
// y must not be zero.
func (x u192) quoRem32(y uint32) (q u192, r uint32) {
	d := uint64(y)
	var rem uint64
	for i := len(x) - 1; i >= 0; i-- {
		cur := rem<<32 | uint64(x[i])
		q[i] = uint32(cur / d)
		rem = cur % d
	}
	return q, uint32(rem)
}

// rshHalfEven (Right Shift) calculates x / 10^shift and rounds the
// result using "half to even" rule.
// Like the u96 variant, the decision is made once against the full
// discarded tail via a sticky bit.
func (x u192) rshHalfEven(shift int) u192 {
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
			if r > half || (r == half && (sticky || q[0]&1 != 0)) {
				q = q.add32(1) // cannot overflow, q <= (2^192-1)/10
			}
			return q
		}
		if r != 0 {
			sticky = true
		}
		x = q
	}
}

// quoRem96 calculates q = ⌊x / y⌋ and r = x - y * q using long
// division with a leading-limb estimate and correction (Knuth's
// Algorithm D specialized for a divisor of at most three limbs).
//
// quoRem96 returns false if y is zero or the quotient does not fit
// in 96 bits.
func (x u192) quoRem96(y u96) (q, r u96, ok bool) {
	// Single-limb divisor
	if y.hi == 0 && y.mid == 0 {
		if y.lo == 0 {
			return u96{}, u96{}, false
		}
		qq, rr := x.quoRem32(y.lo)
		if !qq.fits96() {
			return u96{}, u96{}, false
		}
		return qq.u96(), u96{lo: rr}, true
	}

	yl := [3]uint32{y.lo, y.mid, y.hi}
	n := 3
	if y.hi == 0 {
		n = 2
	}

	// Number of significant limbs in the dividend
	m := len(x)
	for m > n && x[m-1] == 0 {
		m--
	}

	// Special case: dividend is smaller than divisor
	if m == n && x.fits96() && x.u96().cmp(y) < 0 {
		return u96{}, x.u96(), true
	}

	// Normalization: shift both operands left so that the leading
	// limb of the divisor has its top bit set.
	s := bits.LeadingZeros32(yl[n-1])
	var v [3]uint32
	v[0] = yl[0] << s
	for i := 1; i < n; i++ {
		v[i] = yl[i]<<s | uint32(uint64(yl[i-1])>>(32-s))
	}
	var u [7]uint32
	u[0] = x[0] << s
	for i := 1; i < m; i++ {
		u[i] = x[i]<<s | uint32(uint64(x[i-1])>>(32-s))
	}
	u[m] = uint32(uint64(x[m-1]) >> (32 - s))

	var ql [5]uint32
	for j := m - n; j >= 0; j-- {
		// Estimate the quotient limb from the two leading limbs of
		// the running remainder and the leading limb of the divisor.
		num := uint64(u[j+n])<<32 | uint64(u[j+n-1])
		var qhat, rhat uint64
		if uint64(u[j+n]) >= uint64(v[n-1]) {
			qhat = 1<<32 - 1
			rhat = num - qhat*uint64(v[n-1])
		} else {
			qhat = num / uint64(v[n-1])
			rhat = num % uint64(v[n-1])
		}
		for rhat < 1<<32 && qhat*uint64(v[n-2]) > rhat<<32|uint64(u[j+n-2]) {
			qhat--
			rhat += uint64(v[n-1])
		}

		// Multiply and subtract
		var qv [4]uint32
		var mc uint64
		for i := 0; i < n; i++ {
			p := qhat*uint64(v[i]) + mc
			qv[i] = uint32(p)
			mc = p >> 32
		}
		qv[n] = uint32(mc)
		var b uint32
		for i := 0; i <= n; i++ {
			u[i+j], b = bits.Sub32(u[i+j], qv[i], b)
		}

		// The estimate was one too large: add the divisor back.
		if b != 0 {
			qhat--
			var c uint32
			for i := 0; i < n; i++ {
				u[i+j], c = bits.Add32(u[i+j], v[i], c)
			}
			u[j+n] += c
		}
		ql[j] = uint32(qhat)
	}

	if ql[3] != 0 || ql[4] != 0 {
		return u96{}, u96{}, false
	}
	q = u96{lo: ql[0], mid: ql[1], hi: ql[2]}

	// Denormalization
	var rl [3]uint32
	for i := 0; i < n; i++ {
		rl[i] = u[i]>>s | uint32(uint64(u[i+1])<<(32-s))
	}
	r = u96{lo: rl[0], mid: rl[1], hi: rl[2]}
	return q, r, true
}
