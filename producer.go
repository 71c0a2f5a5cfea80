package edn

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Bool produces true or false.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Int produces a fixed-width integer.
func Int(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

// BigInt always produces the arbitrary-precision form, as an N-suffixed literal does.
func BigInt(i *big.Int) Value {
	return Value{Kind: KindBigInt, Big: i}
}

// Integer produces the fixed-width form when i fits in 64 bits and BigInt otherwise.
func Integer(i *big.Int) Value {
	if i.IsInt64() {
		return Int(i.Int64())
	}
	return BigInt(i)
}

// Float produces a double-precision floating point number.
func Float(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// BigDecimal produces an exact decimal, as an M-suffixed literal does.
func BigDecimal(d decimal.Decimal) Value {
	return Value{Kind: KindBigDecimal, Decimal: d}
}

// Ratio produces a rational in lowest terms, or an integer if the denominator is 1.
func Ratio(r *big.Rat) Value {
	if r.IsInt() {
		return Integer(new(big.Int).Set(r.Num()))
	}
	return Value{Kind: KindRatio, Ratio: r}
}

// Char produces a character literal.
func Char(r rune) Value {
	return Value{Kind: KindChar, Char: r}
}

// String produces a string literal with escapes already decoded.
func String(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// Symbol validates ns and name so that the result reads back as the same symbol.
// An empty ns means no namespace.
func Symbol(ns, name string) (v Value, err error) {
	if err = checkName(ns, name, true); err != nil {
		return
	}
	return Value{Kind: KindSymbol, Namespace: ns, Text: name}, nil
}

// MustSymbol is like Symbol but panics on invalid input.
func MustSymbol(ns, name string) (v Value) {
	var err error
	v, err = Symbol(ns, name)
	if err != nil {
		panic(err)
	}
	return
}

// Keyword validates ns and name like Symbol, except that the name may look like a number.
func Keyword(ns, name string) (v Value, err error) {
	if name == "/" && ns == "" {
		return v, errors.Wrapf(ErrInvalidSymbol, "keyword name %q", name)
	}
	if err = checkName(ns, name, false); err != nil {
		return
	}
	return Value{Kind: KindKeyword, Namespace: ns, Text: name}, nil
}

// MustKeyword is like Keyword but panics on invalid input.
func MustKeyword(ns, name string) (v Value) {
	var err error
	v, err = Keyword(ns, name)
	if err != nil {
		panic(err)
	}
	return
}

func checkName(ns, name string, symbol bool) error {
	if ns == "" && symbol {
		switch name {
		case "/":
			return nil
		case "nil", "true", "false":
			return errors.Wrapf(ErrInvalidSymbol, "reserved name %q", name)
		}
	} else if ns != "" && !isSymbolText(ns, symbol) {
		return errors.Wrapf(ErrInvalidSymbol, "namespace %q", ns)
	}
	if !isSymbolText(name, symbol) {
		return errors.Wrapf(ErrInvalidSymbol, "name %q", name)
	}
	return nil
}

// isSymbolText reports whether s reads back as a single name segment. Symbols may not
// look like numbers; keyword names may.
func isSymbolText(s string, symbol bool) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if IsTerminator(r) || r == '/' {
			return false
		}
		if symbol && i == 0 && IsDigit(r) {
			return false
		}
	}
	if symbol && len(s) > 1 && (s[0] == '+' || s[0] == '-') && IsDigit(rune(s[1])) {
		return false
	}
	return true
}
