/*
Package decimal implements fixed-precision decimal floating-point numbers
with correct rounding.
It is specifically designed for transactional financial systems, where
binary floating-point rounding errors are unacceptable.

# Internal Representation

Decimal is a struct with three fields:

  - Sign:
    A boolean indicating whether the decimal is negative.
    A zero is always non-negative.
  - Coefficient:
    An unsigned 96-bit integer representing the numeric value of the
    decimal without the decimal point, stored as three 32-bit words.
  - Scale:
    A non-negative integer indicating the position of the decimal point
    within the coefficient.
    For example, a decimal with a coefficient of 12345 and a scale of 2
    represents the value 123.45.
    The range of allowed values for the scale is from 0 to 28.

The numerical value of a decimal is calculated as follows:

  - -Coefficient / 10^Scale if Sign is true.
  - Coefficient / 10^Scale if Sign is false.

This approach allows the same numeric value to have multiple
representations, for example, 1, 1.0, and 1.00, which represent the same
value but have different scales and coefficients.
Such values compare equal through [Decimal.Cmp] and [Decimal.Equal] but
format differently, as trailing zeros in the fractional part are
significant and preserved.

A decimal occupies exactly 16 bytes, and [Decimal.MarshalBinary] exposes
the canonical little-endian 16-byte layout, which is byte-for-byte
compatible with the OLE Automation DECIMAL type:

	bits   0..95   coefficient (lo, mid, hi 32-bit words)
	bits  96..111  reserved, zero
	bits 112..119  scale, 0..28
	bits 120..126  reserved, zero
	bit  127       sign, 1 = negative

# Constraints Overview

The magnitude of a decimal is bounded by the 96-bit coefficient:
no value exceeds 79,228,162,514,264,337,593,543,950,335, which is
(2^96 - 1) at scale 0.
Here are the ranges for frequently used scales:

	| Example      | Scale | Maximum                                 |
	| ------------ | ----- | --------------------------------------- |
	| Japanese Yen | 0     | 79,228,162,514,264,337,593,543,950,335  |
	| US Dollar    | 2     | 792,281,625,142,643,375,935,439,503.35  |
	| Bitcoin      | 8     | 792,281,625,142,643,375,935.43950335    |
	| Ethereum     | 18    | 79,228,162,514.264337593543950335       |

Special values such as NaN, Infinity, or negative zeros are not supported.
This ensures that arithmetic operations always produce either valid
decimals or errors.

# Arithmetic Operations

All arithmetic is carried out on fixed-size stack buffers: products and
aligned sums use a transient 192-bit integer, so no operation allocates
on any arithmetic path.

Each operation produces a result that is either exact or correctly
rounded using half-to-even ("banker's") rounding:

  - [Decimal.Add] and [Decimal.Sub] align the operands to the larger of
    their scales; if the exact sum does not fit in 96 bits, the scale is
    reduced with rounding, and only a sum that does not fit even at
    scale 0 is an error.
  - [Decimal.Mul] computes the exact 192-bit product and reduces the
    scale with rounding while it exceeds 28 or the coefficient exceeds
    96 bits.
  - [Decimal.Quo] extends non-terminating expansions to 28 digits after
    the decimal point and rounds the last digit.

No operation ever silently wraps: a result whose integer part cannot be
represented yields [ErrOverflow].
The methods returning (Decimal, error) are the checked surface; each of
the common operations also has a panicking Must variant, such as
[Decimal.MustAdd], intended for static initialization and tests.

# Rounding

Explicit rounding is available in the four usual flavors:
[Decimal.Round] (half to even), [Decimal.Trunc] (toward zero),
[Decimal.Floor] (toward negative infinity), and [Decimal.Ceil] (toward
positive infinity).
[Decimal.Trim] removes trailing zeros, producing the normalized
representation, and [Decimal.Pad] appends them.

# Conversions

The package supports conversions to and from strings (including
scientific notation and underscore digit separators), integers, integer
pairs of whole and fractional parts, and binary floats.
Float conversions are routed through the shortest round-trip string
representation, so NewFromFloat64(0.1) is exactly 0.1.

# Equality and Ordering

[Decimal.Cmp] and friends implement a total order consistent with the
numeric value: operands are aligned exactly before comparison, so 1.1
equals 1.10.
The == operator, in contrast, compares representations: use it only when
scales are known to agree, or normalize with Trim(0) first.
*/
package decimal
