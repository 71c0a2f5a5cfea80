package edn

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// numState is the part of a numeric literal currently being scanned.
type numState int

const (
	numInteger    numState = iota // decimal digits
	numOctal                      // digits after a leading zero
	numRadix                      // digits after 0x or <base>r
	numFloat                      // fraction digits after '.'
	numExponent                   // exponent after 'e'
	numRatio                      // denominator digits after '/'
	numBigInt                     // after 'N'; only a terminator may follow
	numBigDecimal                 // after 'M'; only a terminator may follow
)

const (
	// accumulators above these may overflow on the next val*base+digit
	longLimit      = (math.MaxInt64 - 9) / 10
	longLimitRadix = (math.MaxInt64 - 35) / 36

	maxFractionDigits = 15
	// largest integer mantissa a float64 holds exactly
	maxExactMantissa = 1 << 53
)

var pow10 = [maxFractionDigits + 1]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12, 1e13, 1e14, 1e15,
}

// number is the scanner state for one numeric literal. While overflow is false the
// value is carried in fixed-width accumulators; once it is set, the literal is only
// validated and its value is rebuilt from the token text when the terminator arrives.
type number struct {
	state    numState
	negative bool
	overflow bool

	// radix of the integer digits: 10, 8 for a leading zero, or 2-36
	radix    int
	hex      bool
	badOctal bool

	// token offsets: first digit (past sign and radix prefix) and the ratio slash
	start int
	slash int

	val  int64
	val8 int64

	fraction  int
	expDigits int
	expSigned bool
	denDigits int
}

// readNumber scans a numeric literal whose first digit is the next rune. negative is
// set when a '-' sign has already been consumed into the token.
func (r *Reader) readNumber(negative bool) (Value, error) {
	b := r.buf
	n := number{
		state:    numInteger,
		negative: negative,
		radix:    10,
		start:    b.TokenLen(),
	}

	first := b.Read()
	if first == '0' {
		c := b.Read()
		switch {
		case c == 'x' || c == 'X':
			n.state = numRadix
			n.radix = 16
			n.hex = true
			n.start = b.TokenLen()
		case IsDigit(c):
			b.Unread()
			n.state = numOctal
			n.radix = 8
		default:
			b.Unread()
		}
	} else {
		n.val = int64(first - '0')
	}

	for {
		c := b.Read()
		if IsTerminator(c) {
			b.Unread()
			return r.finishNumber(&n)
		}
		if !n.step(c, b) {
			return r.invalid(ErrInvalidNumber)
		}
	}
}

// step applies one non-terminator rune to the state, reporting false if the rune
// cannot continue the literal.
func (n *number) step(c rune, b *Buffer) bool {
	switch n.state {
	case numInteger, numOctal:
		switch {
		case IsDigit(c):
			n.digit(c)
		case c == '.':
			n.state = numFloat
		case c == '/':
			n.state = numRatio
			n.slash = b.TokenLen() - 1
		case c == 'e' || c == 'E':
			n.state = numExponent
		case c == 'N':
			n.state = numBigInt
		case c == 'M':
			n.state = numBigDecimal
		case (c == 'r' || c == 'R') && n.state == numInteger:
			return n.toRadix(b.TokenLen() - 1)
		default:
			return false
		}

	case numRadix:
		d := digitValue(c)
		switch {
		case d >= 0 && d < n.radix:
			if n.overflow || n.val > longLimitRadix {
				n.overflow = true
			} else {
				n.val = n.val*int64(n.radix) + int64(d)
			}
		case c == 'N' && n.hex:
			n.state = numBigInt
		default:
			return false
		}

	case numFloat:
		switch {
		case IsDigit(c):
			n.fraction++
			if n.overflow || n.val > longLimit || n.fraction > maxFractionDigits {
				n.overflow = true
			} else {
				n.val = n.val*10 + int64(c-'0')
			}
		case c == 'e' || c == 'E':
			n.state = numExponent
		case c == 'M':
			n.state = numBigDecimal
		default:
			return false
		}

	case numExponent:
		switch {
		case IsDigit(c):
			n.expDigits++
		case (c == '+' || c == '-') && n.expDigits == 0 && !n.expSigned:
			n.expSigned = true
		case c == 'M' && n.expDigits > 0:
			n.state = numBigDecimal
		default:
			return false
		}

	case numRatio:
		if !IsDigit(c) {
			return false
		}
		n.denDigits++

	default:
		// suffixes end the literal
		return false
	}
	return true
}

func (n *number) digit(c rune) {
	d := int64(c - '0')
	if n.state == numOctal && d > 7 {
		n.badOctal = true
	}
	if n.overflow || n.val > longLimit {
		n.overflow = true
		return
	}
	n.val = n.val*10 + d
	n.val8 = n.val8*8 + d
}

// toRadix handles the 'r' of <base>r<digits> at token offset at. The base must be one
// or two digits naming a radix from 2 to 36.
func (n *number) toRadix(at int) bool {
	digits := at - n.start
	if digits < 1 || digits > 2 || n.val < 2 || n.val > 36 {
		return false
	}
	n.state = numRadix
	n.radix = int(n.val)
	n.start = at + 1
	n.val = 0
	return true
}

func (n *number) sign(v int64) int64 {
	if n.negative {
		return -v
	}
	return v
}

func (r *Reader) finishNumber(n *number) (Value, error) {
	tok := r.buf.Token()

	switch n.state {
	case numInteger, numRadix:
		if !n.overflow {
			return Int(n.sign(n.val)), nil
		}
		return r.parseInteger(tok[n.start:], n.radix, n.negative, false)

	case numOctal:
		if n.badOctal {
			return r.fail(ErrInvalidNumber, string(tok))
		}
		if !n.overflow {
			return Int(n.sign(n.val8)), nil
		}
		return r.parseInteger(tok[n.start:], 8, n.negative, false)

	case numFloat:
		if !n.overflow && n.val <= maxExactMantissa {
			f := float64(n.val) / pow10[n.fraction]
			if n.negative {
				f = -f
			}
			return Float(f), nil
		}
		return r.parseFloat(tok[n.start:], n.negative)

	case numExponent:
		if n.expDigits == 0 {
			return r.fail(ErrInvalidNumber, string(tok))
		}
		return r.parseFloat(tok[n.start:], n.negative)

	case numRatio:
		if n.denDigits == 0 {
			return r.fail(ErrInvalidNumber, string(tok))
		}
		return r.parseRatio(tok[n.start:n.slash], tok[n.slash+1:], n.negative)

	case numBigInt:
		if n.badOctal {
			return r.fail(ErrInvalidNumber, string(tok))
		}
		return r.parseInteger(tok[n.start:len(tok)-1], n.radix, n.negative, true)

	case numBigDecimal:
		d, err := decimal.NewFromString(string(tok[n.start : len(tok)-1]))
		if err != nil {
			return r.fail(ErrInvalidNumber, string(tok))
		}
		if n.negative {
			d = d.Neg()
		}
		return BigDecimal(d), nil
	}

	return r.fail(ErrInvalidNumber, string(tok))
}

// parseInteger rebuilds an integer from its digits. Unless forceBig is set the result
// takes the fixed-width form whenever it fits.
func (r *Reader) parseInteger(digits []rune, radix int, negative, forceBig bool) (Value, error) {
	i, ok := new(big.Int).SetString(string(digits), radix)
	if !ok {
		return r.fail(ErrInvalidNumber, r.buf.TokenString())
	}
	if negative {
		i.Neg(i)
	}
	if forceBig {
		return BigInt(i), nil
	}
	return Integer(i), nil
}

// parseFloat converts the literal text with strconv, saturating to ±Inf (or zero) when
// the exponent is out of range.
func (r *Reader) parseFloat(digits []rune, negative bool) (Value, error) {
	f, err := strconv.ParseFloat(string(digits), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return r.fail(ErrInvalidNumber, r.buf.TokenString())
	}
	if negative {
		f = -f
	}
	return Float(f), nil
}

func (r *Reader) parseRatio(numerator, denominator []rune, negative bool) (Value, error) {
	num, ok := new(big.Int).SetString(string(numerator), 10)
	if !ok {
		return r.fail(ErrInvalidNumber, r.buf.TokenString())
	}
	den, ok := new(big.Int).SetString(string(denominator), 10)
	if !ok || den.Sign() == 0 {
		return r.fail(ErrInvalidNumber, r.buf.TokenString())
	}
	if negative {
		num.Neg(num)
	}
	return Ratio(new(big.Rat).SetFrac(num, den)), nil
}
