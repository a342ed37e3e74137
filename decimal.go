package decimal

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unsafe"
)

// Decimal represents a finite floating-point decimal number.
// Its zero value corresponds to the numeric value of 0.
// Decimal is designed to be safe for concurrent use by multiple goroutines.
type Decimal struct {
	coef  u96  // numeric value without decimal point
	neg   bool // indicates whether the decimal is negative
	scale int8 // position of the floating decimal point
}

const (
	MaxPrec  = 29 // MaxPrec is the maximum length of the coefficient in decimal digits.
	MinScale = 0  // MinScale is the minimum number of digits after the decimal point.
	MaxScale = 28 // MaxScale is the maximum number of digits after the decimal point.
)

var (
	NegOne  = MustNew(-1, 0)                              // NegOne represents the decimal value of -1.
	Zero    = MustNew(0, 0)                               // Zero represents the decimal value of 0. For comparison purposes, use the IsZero method.
	One     = MustNew(1, 0)                               // One represents the decimal value of 1.
	Two     = MustNew(2, 0)                               // Two represents the decimal value of 2.
	Ten     = MustNew(10, 0)                              // Ten represents the decimal value of 10.
	Hundred = MustNew(100, 0)                             // Hundred represents the decimal value of 100.
	Max     = MustParse("79228162514264337593543950335")  // Max represents the largest representable decimal, which is equal to (2^96 - 1).
	Min     = MustParse("-79228162514264337593543950335") // Min represents the smallest representable decimal, which is equal to -(2^96 - 1).
	E       = MustParse("2.7182818284590452353602874714") // E represents Euler’s number rounded to 28 digits.
	Pi      = MustParse("3.1415926535897932384626433833") // Pi represents the value of π rounded to 28 digits.

	// ErrInvalidDecimal is returned when parsing malformed or unsupported input.
	ErrInvalidDecimal = errors.New("invalid decimal")
	// ErrOverflow is returned when a result exceeds the maximum or falls below
	// the minimum possible value.
	ErrOverflow = errors.New("decimal overflow")
	// ErrScaleRange is returned when a scale is negative or greater than [MaxScale].
	ErrScaleRange = errors.New("scale out of range")
	// ErrDivisionByZero is returned when dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// newUnsafe creates a new decimal without checking the scale.
// Use it only if you are absolutely sure that the arguments are valid.
func newUnsafe(neg bool, coef u96, scale int) Decimal {
	if coef.isZero() {
		neg = false
	}
	//nolint:gosec
	return Decimal{neg: neg, coef: coef, scale: int8(scale)}
}

// newSafe creates a new decimal and checks the scale.
// The coefficient is structurally bounded by 96 bits, so no coefficient
// check is needed.
func newSafe(neg bool, coef u96, scale int) (Decimal, error) {
	if scale < MinScale || scale > MaxScale {
		return Decimal{}, ErrScaleRange
	}
	return newUnsafe(neg, coef, scale), nil
}

// newFromU96 creates a new decimal from a 96-bit coefficient,
// normalizing the scale into [minScale, MaxScale].
func newFromU96(neg bool, coef u96, scale, minScale int) (Decimal, error) {
	var ok bool
	switch {
	case scale < minScale:
		coef, ok = coef.lsh(minScale - scale)
		if !ok {
			return Decimal{}, overflowError(neg)
		}
		scale = minScale
	case scale > MaxScale:
		coef = coef.rshHalfEven(scale - MaxScale)
		scale = MaxScale
	}
	return newSafe(neg, coef, scale)
}

// newFromU192 creates a new decimal from a 192-bit coefficient.
// The coefficient is reduced by a power of 10 with half-even rounding
// until the scale fits in [minScale, MaxScale] and the coefficient fits
// in 96 bits.
// Every candidate reduction rounds the original coefficient, so the
// half-even decision is made exactly once against the full discarded tail.
func newFromU192(neg bool, coef u192, scale, minScale int) (Decimal, error) {
	if scale < minScale {
		var ok bool
		coef, ok = coef.lsh(minScale - scale)
		if !ok {
			return Decimal{}, overflowError(neg)
		}
		scale = minScale
	}
	var shift int
	if scale > MaxScale {
		shift = scale - MaxScale
	}
	for {
		if scale-shift < minScale {
			return Decimal{}, overflowError(neg)
		}
		z := coef.rshHalfEven(shift)
		if z.fits96() {
			return newSafe(neg, z.u96(), scale-shift)
		}
		shift++
	}
}

func overflowError(neg bool) error {
	if neg {
		return fmt.Errorf("%w: the value is less than the minimum possible value", ErrOverflow)
	}
	return fmt.Errorf("%w: the value exceeds the maximum possible value", ErrOverflow)
}

// MustNew is like [New] but panics if the decimal cannot be constructed.
// It simplifies safe initialization of global variables holding decimals.
func MustNew(value int64, scale int) Decimal {
	d, err := New(value, scale)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", value, scale, err))
	}
	return d
}

// New returns a decimal equal to value / 10^scale.
// New keeps trailing zeros in the fractional part to preserve scale.
//
// New returns an error if the scale is negative or greater than [MaxScale].
func New(value int64, scale int) (Decimal, error) {
	var coef u96
	var neg bool
	if value >= 0 {
		neg = false
		coef = u96FromUint64(uint64(value))
	} else {
		neg = true
		if value == math.MinInt64 {
			coef = u96FromUint64(uint64(math.MaxInt64) + 1)
		} else {
			coef = u96FromUint64(uint64(-value))
		}
	}
	return newSafe(neg, coef, scale)
}

// NewFromUint64 returns a decimal equal to value / 10^scale.
// See also constructor [New].
//
// NewFromUint64 returns an error if the scale is negative or greater than [MaxScale].
func NewFromUint64(value uint64, scale int) (Decimal, error) {
	return newSafe(false, u96FromUint64(value), scale)
}

// NewFromParts returns a decimal assembled from the three 32-bit words of
// its coefficient, a sign, and a scale.
// The represented value is (-1)^neg * (hi * 2^64 + mid * 2^32 + lo) / 10^scale.
// A negative zero is canonicalized to a positive zero.
// See also method [Decimal.Parts].
//
// NewFromParts returns an error if the scale is negative or greater than [MaxScale].
func NewFromParts(lo, mid, hi uint32, neg bool, scale int) (Decimal, error) {
	return newSafe(neg, u96{lo: lo, mid: mid, hi: hi}, scale)
}

// Parts returns the three 32-bit words of the coefficient, the sign,
// and the scale of the decimal.
// See also constructor [NewFromParts].
func (d Decimal) Parts() (lo, mid, hi uint32, neg bool, scale int) {
	return d.coef.lo, d.coef.mid, d.coef.hi, d.neg, d.Scale()
}

// NewFromInt64 converts a pair of integers, representing the whole and
// fractional parts, to a (possibly rounded) decimal equal to whole + frac / 10^scale.
// NewFromInt64 removes all trailing zeros from the fractional part.
// This method is useful for converting amounts from [protobuf] format.
// See also method [Decimal.Int64].
//
// NewFromInt64 returns an error if:
//   - the whole and fractional parts have different signs;
//   - the scale is negative or greater than [MaxScale];
//   - frac / 10^scale is not within the range (-1, 1).
//
// [protobuf]: https://github.com/googleapis/googleapis/blob/master/google/type/money.proto
func NewFromInt64(whole, frac int64, scale int) (Decimal, error) {
	// Whole
	d, err := New(whole, 0)
	if err != nil {
		return Decimal{}, fmt.Errorf("converting integers: %w", err) // should never happen
	}
	// Fraction
	f, err := New(frac, scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("converting integers: %w", err)
	}
	if !f.IsZero() {
		if !d.IsZero() && d.Sign() != f.Sign() {
			return Decimal{}, fmt.Errorf("converting integers: inconsistent signs")
		}
		if !f.WithinOne() {
			return Decimal{}, fmt.Errorf("converting integers: inconsistent fraction")
		}
		f = f.Trim(0)
		d, err = d.Add(f)
		if err != nil {
			return Decimal{}, fmt.Errorf("converting integers: %w", err) // should never happen
		}
	}
	return d, nil
}

// Int64 returns a pair of integers representing the whole and
// (possibly rounded) fractional parts of the decimal.
// If given scale is greater than the scale of the decimal, then the fractional part
// is zero-padded to the right.
// If given scale is smaller than the scale of the decimal, then the fractional part
// is rounded using [rounding half to even] (banker's rounding).
// The relationship between the decimal and the returned values can be expressed
// as d = whole + frac / 10^scale.
// See also constructor [NewFromInt64].
//
// If the result cannot be represented as a pair of int64 values,
// then false is returned.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (d Decimal) Int64(scale int) (whole, frac int64, ok bool) {
	if scale < MinScale || scale > MaxScale {
		return 0, 0, false
	}
	x := d.coef
	k := d.Scale()
	if scale < k {
		x = x.rshHalfEven(k - scale)
		k = scale
	}
	q, r := x.quoRemPow10(k)
	if scale > k {
		r, ok = r.lsh(scale - k)
		if !ok {
			return 0, 0, false
		}
	}
	q64, ok := q.uint64()
	if !ok {
		return 0, 0, false
	}
	r64, ok := r.uint64()
	if !ok {
		return 0, 0, false
	}
	if d.IsNeg() {
		if q64 > 1<<63 || r64 > 1<<63 {
			return 0, 0, false
		}
		//nolint:gosec
		return -int64(q64), -int64(r64), true
	}
	if q64 > math.MaxInt64 || r64 > math.MaxInt64 {
		return 0, 0, false
	}
	//nolint:gosec
	return int64(q64), int64(r64), true
}

// NewFromFloat64 converts a float to a (possibly rounded) decimal.
// The float is first rendered with its shortest round-trip decimal
// representation, which avoids binary-fraction artifacts.
// See also method [Decimal.Float64].
//
// NewFromFloat64 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - the result exceeds the maximum possible value.
func NewFromFloat64(f float64) (Decimal, error) {
	// Float
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("converting float: special value %v", f)
	}
	text := make([]byte, 0, 32)
	text = strconv.AppendFloat(text, f, 'f', -1, 64)

	// Decimal
	d, err := parse(text)
	if err != nil {
		return Decimal{}, fmt.Errorf("converting float: %w", err)
	}
	return d, nil
}

// NewFromFloat32 converts a float to a (possibly rounded) decimal.
// See also constructor [NewFromFloat64] and method [Decimal.Float32].
//
// NewFromFloat32 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - the result exceeds the maximum possible value.
func NewFromFloat32(f float32) (Decimal, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return Decimal{}, fmt.Errorf("converting float: special value %v", f)
	}
	text := make([]byte, 0, 24)
	text = strconv.AppendFloat(text, float64(f), 'f', -1, 32)

	d, err := parse(text)
	if err != nil {
		return Decimal{}, fmt.Errorf("converting float: %w", err)
	}
	return d, nil
}

// Float64 returns the nearest binary floating-point number.
// See also constructor [NewFromFloat64].
//
// This conversion may lose data, as float64 has a smaller precision
// than the decimal type.
func (d Decimal) Float64() (f float64, ok bool) {
	s := d.String()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Float32 returns the nearest binary floating-point number.
// See also constructor [NewFromFloat32].
//
// This conversion may lose data, as float32 has a smaller precision
// than the decimal type.
func (d Decimal) Float32() (f float32, ok bool) {
	s := d.String()
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return d
}

// Parse converts a string to a (possibly rounded) decimal.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	1_000_000.00
//	1.83e5
//	0.22e-9
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	group          ::= digits { '_' digits }
//	significand    ::= group '.' group | '.' group | group '.' | group
//	exponent       ::= ('e' | 'E') [sign] group
//	numeric-string ::= [sign] significand [exponent]
//
// The underscore is a digit separator: it must appear between digits and
// is discarded.
// Parse removes leading zeros from the integer part of the input string,
// but tries to maintain trailing zeros in the fractional part to preserve scale.
// Fractional digits beyond the 28th decimal place, or beyond the capacity
// of the coefficient, do not extend the scale; instead they feed a single
// [rounding half to even] decision.
//
// Parse returns an error if:
//   - the string contains any whitespaces;
//   - the string is longer than 330 bytes;
//   - the exponent is less than -330 or greater than 330;
//   - the string does not represent a valid decimal number;
//   - the integer part of the result exceeds the maximum possible value.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func Parse(s string) (Decimal, error) {
	text := unsafe.Slice(unsafe.StringData(s), len(s))
	return parseExact(text, 0)
}

func parse(text []byte) (Decimal, error) {
	return parseExact(text, 0)
}

// ParseExact is similar to [Parse], but it allows you to specify how many digits
// after the decimal point should be considered significant.
// If any of the significant digits are lost during rounding, the method will return an error.
// This method is useful for parsing monetary amounts, where the scale should be
// equal to or greater than the currency's scale.
func ParseExact(s string, scale int) (Decimal, error) {
	text := unsafe.Slice(unsafe.StringData(s), len(s))
	return parseExact(text, scale)
}

func parseExact(text []byte, scale int) (Decimal, error) {
	if len(text) > 330 {
		return Decimal{}, fmt.Errorf("parsing decimal: %w", ErrInvalidDecimal)
	}
	if scale < MinScale || scale > MaxScale {
		return Decimal{}, fmt.Errorf("parsing decimal: %w", ErrScaleRange)
	}
	d, err := parse96(text, scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("parsing decimal: %w", err)
	}
	return d, nil
}

// parse96 parses a decimal string, accumulating digits directly into the
// 96-bit coefficient.
// Once the coefficient or the scale is full, further fractional digits
// switch the parser into a rounding-only mode, where the first dropped
// digit and a sticky bit decide a final half-even rounding.
//
//nolint:gocyclo
func parse96(text []byte, minScale int) (Decimal, error) {
	var pos int
	width := len(text)

	// Sign
	var neg bool
	switch {
	case pos == width:
		// skip
	case text[pos] == '-':
		neg = true
		pos++
	case text[pos] == '+':
		pos++
	}

	// Coefficient
	var coef u96
	var scale int
	var hasCoef, lastSep, ok bool
	rdigit := -1
	var sticky bool

	// Integer
intloop:
	for pos < width {
		switch {
		case text[pos] >= '0' && text[pos] <= '9':
			coef, ok = coef.fsa(1, text[pos]-'0')
			if !ok {
				return Decimal{}, overflowError(neg)
			}
			pos++
			hasCoef = true
			lastSep = false
		case text[pos] == '_' && hasCoef && !lastSep:
			pos++
			lastSep = true
		default:
			break intloop
		}
	}
	if lastSep {
		return Decimal{}, fmt.Errorf("%w: misplaced separator", ErrInvalidDecimal)
	}

	// Fraction
	if pos < width && text[pos] == '.' {
		pos++
		hasFrac := false
	fracloop:
		for pos < width {
			switch {
			case text[pos] >= '0' && text[pos] <= '9':
				b := text[pos] - '0'
				if rdigit < 0 {
					var z u96
					switch {
					case scale == MaxScale:
						rdigit = int(b)
					default:
						if z, ok = coef.fsa(1, b); ok {
							coef = z
							scale++
						} else {
							rdigit = int(b)
						}
					}
				} else if b != 0 {
					sticky = true
				}
				pos++
				hasCoef = true
				hasFrac = true
				lastSep = false
			case text[pos] == '_' && hasFrac && !lastSep:
				pos++
				lastSep = true
			default:
				break fracloop
			}
		}
		if lastSep {
			return Decimal{}, fmt.Errorf("%w: misplaced separator", ErrInvalidDecimal)
		}
	}

	// Exponent
	var exp int
	var eneg, hasExp, hasE bool
	if pos < width && (text[pos] == 'e' || text[pos] == 'E') {
		pos++
		hasE = true
		// Sign
		switch {
		case pos == width:
			// skip
		case text[pos] == '-':
			eneg = true
			pos++
		case text[pos] == '+':
			pos++
		}
		// Integer
	exploop:
		for pos < width {
			switch {
			case text[pos] >= '0' && text[pos] <= '9':
				exp = exp*10 + int(text[pos]-'0')
				if exp > 330 {
					return Decimal{}, ErrInvalidDecimal
				}
				pos++
				hasExp = true
				lastSep = false
			case text[pos] == '_' && hasExp && !lastSep:
				pos++
				lastSep = true
			default:
				break exploop
			}
		}
		if lastSep {
			return Decimal{}, fmt.Errorf("%w: misplaced separator", ErrInvalidDecimal)
		}
	}

	if pos != width {
		return Decimal{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidDecimal, text[pos])
	}
	if !hasCoef {
		return Decimal{}, fmt.Errorf("%w: no coefficient", ErrInvalidDecimal)
	}
	if hasE && !hasExp {
		return Decimal{}, fmt.Errorf("%w: no exponent", ErrInvalidDecimal)
	}

	// Pending rounding from dropped fractional digits
	if rdigit > 5 || (rdigit == 5 && (sticky || coef.isOdd())) {
		var z u96
		if z, ok = coef.add(u96{lo: 1}); ok {
			coef = z
		} else if scale > 0 {
			coef = coef.wide().add32(1).rshHalfEven(1).u96()
			scale--
		} else {
			return Decimal{}, overflowError(neg)
		}
	}

	// Exponent adjustment
	if hasE {
		if eneg {
			scale += exp
			if scale > MaxScale {
				coef = coef.rshHalfEven(scale - MaxScale)
				scale = MaxScale
			}
		} else {
			if exp <= scale {
				scale -= exp
			} else {
				coef, ok = coef.lsh(exp - scale)
				if !ok {
					return Decimal{}, overflowError(neg)
				}
				scale = 0
			}
		}
	}

	return newFromU96(neg, coef, scale, minScale)
}

// String implements the [fmt.Stringer] interface and returns
// a string representation of the decimal.
// The returned string does not use scientific or engineering notation and is
// formatted according to the following formal EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	numeric-string ::= [sign] significand
//
// The fractional part always contains exactly [Decimal.Scale] digits;
// trailing zeros are preserved.
// See also method [Decimal.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Decimal) String() string {
	return string(d.bytes())
}

// bytes returns a string representation of the decimal as a byte slice.
func (d Decimal) bytes() []byte {
	text := make([]byte, 0, 32)
	return d.append(text)
}

// append appends a string representation of the decimal to the byte slice.
func (d Decimal) append(text []byte) []byte {
	var buf [40]byte
	pos := len(buf) - 1
	coef := d.coef
	scale := d.Scale()

	// Coefficient
	for {
		q, r := coef.quoRem32(10)
		buf[pos] = byte(r) + '0'
		pos--
		coef = q
		if scale > 0 {
			scale--
			// Decimal point
			if scale == 0 {
				buf[pos] = '.'
				pos--
				// Leading 0
				if coef.isZero() {
					buf[pos] = '0'
					pos--
				}
			}
		}
		if coef.isZero() && scale == 0 {
			break
		}
	}

	// Sign
	if d.IsNeg() {
		buf[pos] = '-'
		pos--
	}

	return append(text, buf[pos+1:]...)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// UnmarshalJSON supports the following types: [number] and [numeric string].
// See also constructor [Parse].
//
// [number]: https://datatracker.ietf.org/doc/html/rfc8259#section-6
// [numeric string]: https://datatracker.ietf.org/doc/html/rfc8259#section-7
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	var err error
	*d, err = parse(data)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Decimal{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a [numeric string].
// See also method [Decimal.String].
//
// [numeric string]: https://datatracker.ietf.org/doc/html/rfc8259#section-7
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (d Decimal) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 34)
	text = append(text, '"')
	text = d.append(text)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// UnmarshalText supports only numeric strings.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Decimal) UnmarshalText(text []byte) error {
	var err error
	*d, err = parse(text)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Decimal{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends a numeric string.
// See also method [Decimal.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (d Decimal) AppendText(text []byte) ([]byte, error) {
	return d.append(text), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns a numeric string.
// See also method [Decimal.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return d.bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// UnmarshalBinary expects the 16-byte little-endian layout produced by
// [Decimal.MarshalBinary].
// A negative zero is accepted and canonicalized to a positive zero.
//
// UnmarshalBinary returns an error if:
//   - the data length is not equal to 16 bytes;
//   - any reserved bit is set;
//   - the scale byte is greater than [MaxScale].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (d *Decimal) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("unmarshaling %T: %w: invalid data length %v", Decimal{}, ErrInvalidDecimal, len(data))
	}
	if data[12] != 0 || data[13] != 0 || data[15]&0b0111_1111 != 0 {
		return fmt.Errorf("unmarshaling %T: %w: reserved bits are not zero", Decimal{}, ErrInvalidDecimal)
	}
	coef := u96{
		lo:  uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24,
		mid: uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24,
		hi:  uint32(data[8]) | uint32(data[9])<<8 | uint32(data[10])<<16 | uint32(data[11])<<24,
	}
	neg := data[15]&0b1000_0000 != 0
	var err error
	*d, err = newSafe(neg, coef, int(data[14]))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Decimal{}, err)
	}
	return nil
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
// AppendBinary appends the same 16 bytes as [Decimal.MarshalBinary].
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (d Decimal) AppendBinary(data []byte) ([]byte, error) {
	var buf [16]byte

	// Coefficient
	words := [3]uint32{d.coef.lo, d.coef.mid, d.coef.hi}
	for i, w := range words {
		buf[4*i] = byte(w)
		buf[4*i+1] = byte(w >> 8)
		buf[4*i+2] = byte(w >> 16)
		buf[4*i+3] = byte(w >> 24)
	}

	// Scale
	//nolint:gosec
	buf[14] = byte(d.Scale())

	// Sign
	if d.IsNeg() {
		buf[15] = 0b1000_0000
	}

	return append(data, buf[:]...), nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// MarshalBinary returns a fixed 16-byte little-endian encoding:
//
//	bits   0..95   coefficient (lo, mid, hi 32-bit words)
//	bits  96..111  reserved, zero
//	bits 112..119  scale, 0..28
//	bits 120..126  reserved, zero
//	bit  127       sign, 1 = negative
//
// This layout is byte-for-byte compatible with the OLE Automation DECIMAL
// type and is safe to hand to binary database protocols.
// See also method [Decimal.UnmarshalBinary].
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (d Decimal) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, 16))
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Decimal) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = Parse(value)
	case int64:
		*d, err = New(value, 0)
	case float64:
		*d, err = NewFromFloat64(value)
	case []byte:
		// Special case: MySQL driver sends DECIMAL as []byte
		*d, err = parse(value)
	case float32:
		// Special case: MySQL driver sends FLOAT as float32
		*d, err = NewFromFloat64(float64(value))
	case uint64:
		// Special case: ClickHouse driver sends 0 as uint64
		*d, err = NewFromUint64(value, 0)
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Decimal{}, NullDecimal{}, Decimal{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Decimal{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example  | Description         |
//	| ---------- | -------- | ------------------- |
//	| %f, %s, %v | 5.67     | Decimal             |
//	| %q         | "5.67"   | Quoted decimal      |
//	| %e, %E     | 5.67e+00 | Scientific notation |
//	| %k         | 567%     | Percentage          |
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
// The exception is the '0' flag with %e and %E, which is ignored: the
// width is padded with spaces.
//
// Precision is supported for %f, %k, %e, and %E verbs.
// For %f verb, the default precision is equal to the actual scale of the decimal,
// whereas, for verb %k the default precision is the actual scale of the decimal minus 2.
// For %e and %E verbs, precision sets the number of digits after the decimal
// point, and rounding uses [rounding half to even] (banker's rounding).
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
//
//nolint:gocyclo
func (d Decimal) Format(state fmt.State, verb rune) {
	var err error

	// Scientific notation
	if verb == 'e' || verb == 'E' {
		d.formatSci(state, verb)
		return
	}

	// Percentage multiplier
	if verb == 'k' || verb == 'K' {
		d, err = d.Mul(Hundred)
		if err != nil {
			// This panic is handled inside the fmt package.
			panic(fmt.Errorf("formatting percent: %w", err))
		}
	}

	// Rescaling
	var tzeros int
	if verb == 'f' || verb == 'F' || verb == 'k' || verb == 'K' {
		var scale int
		switch p, ok := state.Precision(); {
		case ok:
			scale = p
		case verb == 'k' || verb == 'K':
			scale = d.Scale() - 2
		case verb == 'f' || verb == 'F':
			scale = d.Scale()
		}
		scale = max(scale, MinScale)
		switch {
		case scale < d.Scale():
			d = d.Round(scale)
		case scale > d.Scale():
			tzeros = scale - d.Scale()
		}
	}

	// Integer and fractional digits
	var intdigs int
	fracdigs := d.Scale()
	if dprec := d.Prec(); dprec > fracdigs {
		intdigs = dprec - fracdigs
	}
	if d.WithinOne() {
		intdigs++ // leading 0
	}

	// Decimal point
	var dpoint int
	if fracdigs > 0 || tzeros > 0 {
		dpoint = 1
	}

	// Arithmetic sign
	var rsign int
	if d.IsNeg() || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Percentage sign
	var psign int
	if verb == 'k' || verb == 'K' {
		psign = 1
	}

	// Openning and closing quotes
	var lquote, tquote int
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + rsign + intdigs + dpoint + fracdigs + tzeros + psign + tquote
	var lspaces, tspaces, lzeros int
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for _i1 := 0; _i1 < tspaces; _i1++ {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	for _i2 := 0; _i2 < tquote; _i2++ {
		buf[pos] = '"'
		pos--
	}

	// Percentage sign
	for _i3 := 0; _i3 < psign; _i3++ {
		buf[pos] = '%'
		pos--
	}

	// Trailing zeros
	for _i4 := 0; _i4 < tzeros; _i4++ {
		buf[pos] = '0'
		pos--
	}

	// Fractional digits
	dcoef := d.coef
	for _i5 := 0; _i5 < fracdigs; _i5++ {
		var r uint32
		dcoef, r = dcoef.quoRem32(10)
		buf[pos] = byte(r) + '0'
		pos--
	}

	// Decimal point
	for _i6 := 0; _i6 < dpoint; _i6++ {
		buf[pos] = '.'
		pos--
	}

	// Integer digits
	for _i7 := 0; _i7 < intdigs; _i7++ {
		var r uint32
		dcoef, r = dcoef.quoRem32(10)
		buf[pos] = byte(r) + '0'
		pos--
	}

	// Leading zeros
	for _i8 := 0; _i8 < lzeros; _i8++ {
		buf[pos] = '0'
		pos--
	}

	// Arithmetic sign
	for _i9 := 0; _i9 < rsign; _i9++ {
		if d.IsNeg() {
			buf[pos] = '-'
		} else if state.Flag(' ') {
			buf[pos] = ' '
		} else {
			buf[pos] = '+'
		}
		pos--
	}

	// Opening quote
	for _i10 := 0; _i10 < lquote; _i10++ {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for _i11 := 0; _i11 < lspaces; _i11++ {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'k', 'K':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(decimal.Decimal="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// formatSci renders the decimal in scientific notation.
//
//nolint:gocyclo
func (d Decimal) formatSci(state fmt.State, verb rune) {
	// Significant digits, most significant first
	digs := make([]byte, 0, 32)
	if d.IsZero() {
		digs = append(digs, '0')
	} else {
		var rev [29]byte
		var n int
		coef := d.coef
		for !coef.isZero() {
			var r uint32
			coef, r = coef.quoRem32(10)
			rev[n] = byte(r) + '0'
			n++
		}
		for i := n - 1; i >= 0; i-- {
			digs = append(digs, rev[i])
		}
	}

	// Decimal exponent
	var exp int
	if !d.IsZero() {
		exp = len(digs) - 1 - d.Scale()
	}

	// Precision
	prec, ok := state.Precision()
	if !ok {
		prec = len(digs) - 1
	}

	// Rounding to prec digits after the decimal point, half to even
	if prec+1 < len(digs) {
		keep := prec + 1
		rdigit := digs[keep]
		var sticky bool
		for i := keep + 1; i < len(digs); i++ {
			if digs[i] != '0' {
				sticky = true
				break
			}
		}
		digs = digs[:keep]
		if rdigit > '5' || (rdigit == '5' && (sticky || (digs[keep-1]-'0')&1 == 1)) {
			i := keep - 1
			for ; i >= 0; i-- {
				if digs[i] != '9' {
					digs[i]++
					break
				}
				digs[i] = '0'
			}
			if i < 0 {
				// The carry propagated through all kept digits.
				digs[0] = '1'
				exp++
			}
		}
	}
	for len(digs) < prec+1 {
		digs = append(digs, '0')
	}

	// Assembling [sign] digit ['.' digits] ('e'|'E') sign exponent
	text := make([]byte, 0, len(digs)+8)
	switch {
	case d.IsNeg():
		text = append(text, '-')
	case state.Flag('+'):
		text = append(text, '+')
	case state.Flag(' '):
		text = append(text, ' ')
	}
	text = append(text, digs[0])
	if len(digs) > 1 {
		text = append(text, '.')
		text = append(text, digs[1:]...)
	}
	if verb == 'E' {
		text = append(text, 'E')
	} else {
		text = append(text, 'e')
	}
	if exp < 0 {
		text = append(text, '-')
		exp = -exp
	} else {
		text = append(text, '+')
	}
	if exp < 10 {
		text = append(text, '0')
	}
	text = strconv.AppendInt(text, int64(exp), 10)

	// Padding
	var lpad, tpad int
	if w, ok := state.Width(); ok && w > len(text) {
		if state.Flag('-') {
			tpad = w - len(text)
		} else {
			lpad = w - len(text)
		}
	}

	//nolint:errcheck
	for _i12 := 0; _i12 < lpad; _i12++ {
		state.Write([]byte{' '})
	}
	//nolint:errcheck
	state.Write(text)
	//nolint:errcheck
	for _i13 := 0; _i13 < tpad; _i13++ {
		state.Write([]byte{' '})
	}
}

// Zero returns a decimal with a value of 0, having the same scale as decimal d.
// See also methods [Decimal.One], [Decimal.ULP].
func (d Decimal) Zero() Decimal {
	return newUnsafe(false, u96{}, d.Scale())
}

// One returns a decimal with a value of 1, having the same scale as decimal d.
// See also methods [Decimal.Zero], [Decimal.ULP].
func (d Decimal) One() Decimal {
	return newUnsafe(false, pow10u96[d.Scale()], d.Scale())
}

// ULP (Unit in the Last Place) returns the smallest representable positive
// difference between two decimals with the same scale as decimal d.
// It can be useful for implementing rounding and comparison algorithms.
// See also methods [Decimal.Zero], [Decimal.One].
func (d Decimal) ULP() Decimal {
	return newUnsafe(false, u96{lo: 1}, d.Scale())
}

// Prec returns the number of digits in the coefficient.
func (d Decimal) Prec() int {
	return d.coef.prec()
}

// Scale returns the number of digits after the decimal point.
// See also methods [Decimal.Prec], [Decimal.MinScale].
func (d Decimal) Scale() int {
	return int(d.scale)
}

// MinScale returns the smallest scale that the decimal can be rescaled to
// without rounding.
// See also method [Decimal.Trim].
func (d Decimal) MinScale() int {
	// Special case: zero
	if d.IsZero() {
		return MinScale
	}
	// General case
	return max(MinScale, d.Scale()-d.coef.ntz())
}

// IsInt returns true if there are no significant digits after the decimal point.
func (d Decimal) IsInt() bool {
	if d.Scale() == 0 {
		return true
	}
	_, r := d.coef.quoRemPow10(d.Scale())
	return r.isZero()
}

// IsOne returns:
//
//	true  if d = -1 or d = 1
//	false otherwise
func (d Decimal) IsOne() bool {
	return d.coef == pow10u96[d.Scale()]
}

// WithinOne returns:
//
//	true  if -1 < d < 1
//	false otherwise
func (d Decimal) WithinOne() bool {
	return d.coef.cmp(pow10u96[d.Scale()]) < 0
}

// Round returns a decimal rounded to the specified number of digits after
// the decimal point using [rounding half to even] (banker's rounding).
// If the given scale is negative, it is redefined to zero.
// For financial calculations, the scale should be equal to or greater than
// the scale of the currency.
// See also method [Decimal.Rescale].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (d Decimal) Round(scale int) Decimal {
	scale = max(scale, MinScale)
	if scale >= d.Scale() {
		return d
	}
	coef := d.coef.rshHalfEven(d.Scale() - scale)
	return newUnsafe(d.IsNeg(), coef, scale)
}

// Pad returns a decimal zero-padded to the specified number of digits after
// the decimal point, as far as the 96-bit coefficient allows.
// See also method [Decimal.Trim].
func (d Decimal) Pad(scale int) Decimal {
	scale = min(scale, MaxScale)
	for k := scale - d.Scale(); k > 0; k-- {
		if coef, ok := d.coef.lsh(k); ok {
			return newUnsafe(d.IsNeg(), coef, d.Scale()+k)
		}
	}
	return d
}

// Rescale returns a decimal rounded or zero-padded to the given number of digits
// after the decimal point.
// If the given scale is negative, it is redefined to zero.
// See also methods [Decimal.Round], [Decimal.Pad].
func (d Decimal) Rescale(scale int) Decimal {
	if scale > d.Scale() {
		return d.Pad(scale)
	}
	return d.Round(scale)
}

// Quantize returns a decimal rescaled to the same scale as decimal e.
// The sign and the coefficient of decimal e are ignored.
// See also methods [Decimal.SameScale] and [Decimal.Rescale].
func (d Decimal) Quantize(e Decimal) Decimal {
	return d.Rescale(e.Scale())
}

// SameScale returns true if decimals have the same scale.
// See also methods [Decimal.Scale], [Decimal.Quantize].
func (d Decimal) SameScale(e Decimal) bool {
	return d.Scale() == e.Scale()
}

// Trunc returns a decimal truncated to the specified number of digits
// after the decimal point using [rounding toward zero].
// If the given scale is negative, it is redefined to zero.
//
// [rounding toward zero]: https://en.wikipedia.org/wiki/Rounding#Rounding_toward_zero
func (d Decimal) Trunc(scale int) Decimal {
	scale = max(scale, MinScale)
	if scale >= d.Scale() {
		return d
	}
	coef := d.coef.rshDown(d.Scale() - scale)
	return newUnsafe(d.IsNeg(), coef, scale)
}

// Fract returns the fractional part of the decimal, d - Trunc(d, 0).
// The result has the same sign and scale as the original decimal.
// See also method [Decimal.Trunc].
func (d Decimal) Fract() Decimal {
	_, r := d.coef.quoRemPow10(d.Scale())
	return newUnsafe(d.IsNeg(), r, d.Scale())
}

// Trim returns a decimal with trailing zeros removed up to the given number of
// digits after the decimal point.
// If the given scale is negative, it is redefined to zero.
// Trimming to scale 0 produces the normalized representation, which is the
// canonical choice for map keys, as == compares representations, not
// numeric values.
// See also method [Decimal.Pad].
func (d Decimal) Trim(scale int) Decimal {
	if d.Scale() <= scale {
		return d
	}
	scale = max(scale, d.MinScale())
	return d.Trunc(scale)
}

// Ceil returns a decimal rounded up to the given number of digits
// after the decimal point using [rounding toward positive infinity].
// If the given scale is negative, it is redefined to zero.
// See also method [Decimal.Floor].
//
// [rounding toward positive infinity]: https://en.wikipedia.org/wiki/Rounding#Rounding_up
func (d Decimal) Ceil(scale int) Decimal {
	scale = max(scale, MinScale)
	if scale >= d.Scale() {
		return d
	}
	var coef u96
	if d.IsNeg() {
		coef = d.coef.rshDown(d.Scale() - scale)
	} else {
		coef = d.coef.rshUp(d.Scale() - scale)
	}
	return newUnsafe(d.IsNeg(), coef, scale)
}

// Floor returns a decimal rounded down to the specified number of digits
// after the decimal point using [rounding toward negative infinity].
// If the given scale is negative, it is redefined to zero.
// See also method [Decimal.Ceil].
//
// [rounding toward negative infinity]: https://en.wikipedia.org/wiki/Rounding#Rounding_down
func (d Decimal) Floor(scale int) Decimal {
	scale = max(scale, MinScale)
	if scale >= d.Scale() {
		return d
	}
	var coef u96
	if d.IsNeg() {
		coef = d.coef.rshUp(d.Scale() - scale)
	} else {
		coef = d.coef.rshDown(d.Scale() - scale)
	}
	return newUnsafe(d.IsNeg(), coef, scale)
}

// Neg returns a decimal with the opposite sign.
func (d Decimal) Neg() Decimal {
	return newUnsafe(!d.IsNeg(), d.coef, d.Scale())
}

// Abs returns the absolute value of the decimal.
func (d Decimal) Abs() Decimal {
	return newUnsafe(false, d.coef, d.Scale())
}

// CopySign returns a decimal with the same sign as decimal e.
// CopySign treates 0 as positive.
// See also method [Decimal.Sign].
func (d Decimal) CopySign(e Decimal) Decimal {
	if d.IsNeg() == e.IsNeg() {
		return d
	}
	return d.Neg()
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d = 0
//	+1 if d > 0
//
// See also methods [Decimal.IsPos], [Decimal.IsNeg], [Decimal.IsZero].
func (d Decimal) Sign() int {
	switch {
	case d.neg:
		return -1
	case d.coef.isZero():
		return 0
	}
	return 1
}

// IsPos returns:
//
//	true  if d > 0
//	false otherwise
func (d Decimal) IsPos() bool {
	return !d.coef.isZero() && !d.neg
}

// IsNeg returns:
//
//	true  if d < 0
//	false otherwise
func (d Decimal) IsNeg() bool {
	return d.neg
}

// IsZero returns:
//
//	true  if d = 0
//	false otherwise
func (d Decimal) IsZero() bool {
	return d.coef.isZero()
}

// Mul returns the (possibly rounded) product of decimals d and e.
// The desired scale of the product is the sum of the operand scales;
// it is reduced with half-even rounding while it exceeds [MaxScale] or
// the coefficient exceeds 96 bits.
//
// Mul returns an error if the result exceeds the maximum possible value.
func (d Decimal) Mul(e Decimal) (Decimal, error) {
	return d.MulExact(e, 0)
}

// MulExact is similar to [Decimal.Mul], but it allows you to specify the number
// of digits after the decimal point that should be considered significant.
// If any of the significant digits are lost during rounding, the method will
// return an overflow error.
// This method is useful for financial calculations where the scale should be
// equal to or greater than the currency's scale.
func (d Decimal) MulExact(e Decimal, scale int) (Decimal, error) {
	if scale < MinScale || scale > MaxScale {
		return Decimal{}, fmt.Errorf("computing [%v * %v]: %w", d, e, ErrScaleRange)
	}
	coef := mul96(d.coef, e.coef)
	f, err := newFromU192(d.IsNeg() != e.IsNeg(), coef, d.Scale()+e.Scale(), scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v * %v]: %w", d, e, err)
	}
	return f, nil
}

// SubAbs returns the (possibly rounded) absolute difference between decimals d and e.
//
// SubAbs returns an error if the result exceeds the maximum possible value.
func (d Decimal) SubAbs(e Decimal) (Decimal, error) {
	f, err := d.Sub(e)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [abs(%v - %v)]: %w", d, e, err)
	}
	return f.Abs(), nil
}

// Sub returns the (possibly rounded) difference between decimals d and e.
//
// Sub returns an error if the result exceeds the maximum possible value.
func (d Decimal) Sub(e Decimal) (Decimal, error) {
	return d.AddExact(e.Neg(), 0)
}

// SubExact is similar to [Decimal.Sub], but it allows you to specify the number of digits
// after the decimal point that should be considered significant.
// If any of the significant digits are lost during rounding, the method will return an error.
func (d Decimal) SubExact(e Decimal, scale int) (Decimal, error) {
	return d.AddExact(e.Neg(), scale)
}

// Add returns the (possibly rounded) sum of decimals d and e.
// The operands are aligned to the larger of their scales; if the sum does
// not fit in the 96-bit coefficient, the scale is reduced with half-even
// rounding until it does.
//
// Add returns an error if the result exceeds the maximum possible value
// even at scale 0.
func (d Decimal) Add(e Decimal) (Decimal, error) {
	return d.AddExact(e, 0)
}

// AddExact is similar to [Decimal.Add], but it allows you to specify the number of digits
// after the decimal point that should be considered significant.
// If any of the significant digits are lost during rounding, the method will return an error.
// This method is useful for financial calculations where the scale should be
// equal to or greater than the currency's scale.
func (d Decimal) AddExact(e Decimal, scale int) (Decimal, error) {
	if scale < MinScale || scale > MaxScale {
		return Decimal{}, fmt.Errorf("computing [%v + %v]: %w", d, e, ErrScaleRange)
	}
	f, err := d.add192(e, scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v + %v]: %w", d, e, err)
	}
	return f, nil
}

// add192 computes the sum of two decimals, aligning both coefficients
// exactly in 192 bits.
// Scale reduction, if needed, therefore rounds the mathematically exact
// sum exactly once.
func (d Decimal) add192(e Decimal, minScale int) (Decimal, error) {
	dneg := d.IsNeg()

	// Alignment
	scale := max(d.Scale(), e.Scale())
	dcoef, _ := d.coef.wide().lsh(scale - d.Scale()) // exact, 2^96 * 10^28 < 2^191
	ecoef, _ := e.coef.wide().lsh(scale - e.Scale())

	// Compute d = d + e
	if dneg == e.IsNeg() {
		return newFromU192(dneg, dcoef.add(ecoef), scale, minScale)
	}
	switch dcoef.cmp(ecoef) {
	case -1:
		dneg = e.IsNeg()
		dcoef = ecoef.sub(dcoef)
	case 1:
		dcoef = dcoef.sub(ecoef)
	default:
		dcoef = u192{}
	}
	return newFromU192(dneg, dcoef, scale, minScale)
}

// Inv returns the (possibly rounded) inverse of the decimal.
//
// Inv returns an error if the decimal is 0.
func (d Decimal) Inv() (Decimal, error) {
	f, err := One.Quo(d)
	if err != nil {
		return Decimal{}, fmt.Errorf("inverting %v: %w", d, err)
	}
	return f, nil
}

// Quo returns the (possibly rounded) quotient of decimals d and e.
// A non-terminating expansion is carried out to 28 digits after the
// decimal point, or fewer if the 96-bit coefficient fills up first, and
// rounded using [rounding half to even] (banker's rounding).
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the integer part of the result exceeds the maximum possible value.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (d Decimal) Quo(e Decimal) (Decimal, error) {
	return d.QuoExact(e, 0)
}

// QuoExact is similar to [Decimal.Quo], but it allows you to specify the number of digits
// after the decimal point that should be considered significant.
// If any of the significant digits are lost during rounding, the method will return an error.
func (d Decimal) QuoExact(e Decimal, scale int) (Decimal, error) {
	if scale < MinScale || scale > MaxScale {
		return Decimal{}, fmt.Errorf("computing [%v / %v]: %w", d, e, ErrScaleRange)
	}

	// Special case: zero divisor
	if e.IsZero() {
		return Decimal{}, fmt.Errorf("computing [%v / %v]: %w", d, e, ErrDivisionByZero)
	}

	// Special case: zero dividend
	if d.IsZero() {
		scale = max(scale, d.Scale()-e.Scale())
		return newSafe(false, u96{}, scale)
	}

	// General case
	f, err := d.quo96(e, scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v / %v]: %w", d, e, err)
	}
	return f, nil
}

// quo96 computes the quotient by long division: an initial 192-bit
// division produces the integer digits, then the expansion is extended
// digit by digit while the remainder is nonzero, the quotient has room,
// and the scale is below [MaxScale].
func (d Decimal) quo96(e Decimal, minScale int) (Decimal, error) {
	neg := d.IsNeg() != e.IsNeg()

	// Alignment
	num := d.coef.wide()
	scale := d.Scale() - e.Scale()
	if scale < 0 {
		num, _ = num.lsh(-scale) // exact, 2^96 * 10^28 < 2^191
		scale = 0
	}

	// Integer digits
	q, r, ok := num.quoRem96(e.coef)
	if !ok {
		return Decimal{}, overflowError(neg)
	}

	// Extending the expansion
	ecoef := e.coef.wide()
	for !r.isZero() && scale < MaxScale {
		t, _ := r.wide().mul32(10)
		var digit byte
		for t.cmp(ecoef) >= 0 {
			t = t.sub(ecoef)
			digit++
		}
		q2, ok := q.fsa(1, digit)
		if !ok {
			break
		}
		q = q2
		r = t.u96()
		scale++
	}

	// Final rounding, half to even
	if !r.isZero() {
		t, _ := r.wide().mul32(2)
		if c := t.cmp(ecoef); c > 0 || (c == 0 && q.isOdd()) {
			return newFromU192(neg, q.wide().add32(1), scale, minScale)
		}
	}
	return newFromU96(neg, q, scale, minScale)
}

// QuoRem returns the quotient q and remainder r of decimals d and e
// such that d = e * q + r, where q is an integer and the sign of the
// reminder r is the same as the sign of the dividend d.
//
// QuoRem returns an error if:
//   - the divisor is 0;
//   - the integer part of the quotient has more than [MaxPrec] digits.
func (d Decimal) QuoRem(e Decimal) (q, r Decimal, err error) {
	// Special case: zero divisor
	if e.IsZero() {
		return Decimal{}, Decimal{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", d, e, d, e, ErrDivisionByZero)
	}

	// General case
	q, r, err = d.quoRem96(e)
	if err != nil {
		return Decimal{}, Decimal{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", d, e, d, e, err)
	}
	return q, r, nil
}

// quoRem96 computes the integer quotient and remainder, aligning the
// dividend in 192 bits so that no intermediate result overflows.
func (d Decimal) quoRem96(e Decimal) (q, r Decimal, err error) {
	qsign := d.IsNeg() != e.IsNeg()
	rscale := max(d.Scale(), e.Scale())

	// Alignment
	num, _ := d.coef.wide().lsh(rscale - d.Scale()) // exact, 2^96 * 10^28 < 2^191
	den, ok := e.coef.lsh(rscale - e.Scale())
	if !ok {
		// The aligned divisor exceeds 96 bits, and the dividend, which
		// did not need alignment, is necessarily smaller.
		return newUnsafe(false, u96{}, 0), d, nil
	}

	// Compute q = ⌊d / e⌋, r = d - e * q
	qcoef, rcoef, ok := num.quoRem96(den)
	if !ok {
		return Decimal{}, Decimal{}, overflowError(qsign)
	}

	q, err = newFromU96(qsign, qcoef, 0, 0)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	r, err = newFromU96(d.IsNeg(), rcoef, rscale, rscale)
	if err != nil {
		return Decimal{}, Decimal{}, err
	}
	return q, r, nil
}

// Max returns the larger decimal.
// See also method [Decimal.CmpTotal].
func (d Decimal) Max(e Decimal) Decimal {
	if d.CmpTotal(e) >= 0 {
		return d
	}
	return e
}

// Min returns the smaller decimal.
// See also method [Decimal.CmpTotal].
func (d Decimal) Min(e Decimal) Decimal {
	if d.CmpTotal(e) <= 0 {
		return d
	}
	return e
}

// Clamp compares decimals and returns:
//
//	min if d < min
//	max if d > max
//	  d otherwise
//
// See also method [Decimal.CmpTotal].
//
// Clamp returns an error if min is greater than max numerically.
//
//nolint:revive
func (d Decimal) Clamp(min, max Decimal) (Decimal, error) {
	if min.Cmp(max) > 0 {
		return Decimal{}, fmt.Errorf("clamping %v: invalid range", d)
	}
	if min.CmpTotal(max) > 0 {
		// min and max are equal numerically but have different scales.
		// Swaping min and max to ensure total ordering.
		min, max = max, min
	}
	if d.CmpTotal(min) < 0 {
		return min, nil
	}
	if d.CmpTotal(max) > 0 {
		return max, nil
	}
	return d, nil
}

// CmpTotal compares decimal representations and returns:
//
//	-1 if d < e
//	-1 if d = e and d.scale > e.scale
//	 0 if d = e and d.scale = e.scale
//	+1 if d = e and d.scale < e.scale
//	+1 if d > e
//
// See also method [Decimal.Cmp].
func (d Decimal) CmpTotal(e Decimal) int {
	switch d.Cmp(e) {
	case -1:
		return -1
	case 1:
		return 1
	}
	switch {
	case d.Scale() > e.Scale():
		return -1
	case d.Scale() < e.Scale():
		return 1
	}
	return 0
}

// CmpAbs compares absolute values of decimals and returns:
//
//	-1 if |d| < |e|
//	 0 if |d| = |e|
//	+1 if |d| > |e|
//
// See also method [Decimal.Cmp].
func (d Decimal) CmpAbs(e Decimal) int {
	d, e = d.Abs(), e.Abs()
	return d.Cmp(e)
}

// Equal compares decimals and returns:
//
//	 true if d = e
//	false otherwise
//
// See also method [Decimal.Cmp].
func (d Decimal) Equal(e Decimal) bool {
	return d.Cmp(e) == 0
}

// Less compares decimals and returns:
//
//	 true if d < e
//	false otherwise
//
// See also method [Decimal.Cmp].
func (d Decimal) Less(e Decimal) bool {
	return d.Cmp(e) < 0
}

// Cmp compares decimals and returns:
//
//	-1 if d < e
//	 0 if d = e
//	+1 if d > e
//
// Comparison aligns both coefficients exactly in 192 bits, so values that
// differ only in scale compare equal.
// See also methods [Decimal.CmpAbs], [Decimal.CmpTotal].
func (d Decimal) Cmp(e Decimal) int {
	// Special case: different signs
	switch {
	case d.Sign() > e.Sign():
		return 1
	case d.Sign() < e.Sign():
		return -1
	}

	// Alignment
	scale := max(d.Scale(), e.Scale())
	dcoef, _ := d.coef.wide().lsh(scale - d.Scale()) // exact, 2^96 * 10^28 < 2^191
	ecoef, _ := e.coef.wide().lsh(scale - e.Scale())

	// Comparison
	switch dcoef.cmp(ecoef) {
	case 1:
		return d.Sign()
	case -1:
		return -e.Sign()
	}
	return 0
}

// NullDecimal represents a decimal that can be null.
// Its zero value is null.
// NullDecimal is not thread-safe.
type NullDecimal struct {
	Decimal Decimal
	Valid   bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Decimal.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullDecimal) Scan(value any) error {
	if value == nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	err := n.Decimal.Scan(value)
	if err != nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [Decimal.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullDecimal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Decimal.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullDecimal) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	err := n.Decimal.UnmarshalJSON(data)
	if err != nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Decimal.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullDecimal) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Decimal.MarshalJSON()
}
