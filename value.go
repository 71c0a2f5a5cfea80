package edn

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindBigInt
	KindFloat
	KindBigDecimal
	KindRatio
	KindChar
	KindString
	KindSymbol
	KindKeyword
	// KindMacro is not a value: Read consumed a reserved character (held in Char) that
	// the structural parser has to handle itself.
	KindMacro
)

var kindNames = [...]string{
	KindNil:        "nil",
	KindBool:       "bool",
	KindInt:        "int",
	KindBigInt:     "bigint",
	KindFloat:      "float",
	KindBigDecimal: "bigdec",
	KindRatio:      "ratio",
	KindChar:       "char",
	KindString:     "string",
	KindSymbol:     "symbol",
	KindKeyword:    "keyword",
	KindMacro:      "macro",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is one scalar read from the input. Only the fields belonging to Kind are set.
type Value struct {
	Kind
	Bool    bool
	Int     int64
	Big     *big.Int
	Float   float64
	Decimal decimal.Decimal
	Ratio   *big.Rat
	Char    rune
	// Text is the contents of a string, or the name of a symbol or keyword.
	Text      string
	Namespace string
}

// Nil is the zero Value.
var Nil = Value{Kind: KindNil}

// Equal reports whether v and o are the same scalar. Numbers of different kinds are
// never equal; floats compare by value, so NaN is not equal to itself.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindBigInt:
		return v.Big != nil && o.Big != nil && v.Big.Cmp(o.Big) == 0
	case KindFloat:
		return v.Float == o.Float
	case KindBigDecimal:
		return v.Decimal.Equal(o.Decimal)
	case KindRatio:
		return v.Ratio != nil && o.Ratio != nil && v.Ratio.Cmp(o.Ratio) == 0
	case KindChar, KindMacro:
		return v.Char == o.Char
	case KindString:
		return v.Text == o.Text
	case KindSymbol, KindKeyword:
		return v.Namespace == o.Namespace && v.Text == o.Text
	}
	return false
}

// String renders v in EDN notation.
func (v Value) String() string {
	var sb strings.Builder
	v.appendToBuilder(&sb)
	return sb.String()
}

var charNames = map[rune]string{
	'\n': "newline",
	'\r': "return",
	' ':  "space",
	'\t': "tab",
	'\b': "backspace",
	'\f': "formfeed",
}

func (v Value) appendToBuilder(sb *strings.Builder) {
	switch v.Kind {
	case KindNil:
		sb.WriteString("nil")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case KindBigInt:
		if v.Big != nil {
			sb.WriteString(v.Big.String())
		}
		sb.WriteByte('N')
	case KindFloat:
		appendFloat(sb, v.Float)
	case KindBigDecimal:
		sb.WriteString(v.Decimal.String())
		sb.WriteByte('M')
	case KindRatio:
		if v.Ratio != nil {
			sb.WriteString(v.Ratio.String())
		}
	case KindChar:
		sb.WriteByte('\\')
		if name, ok := charNames[v.Char]; ok {
			sb.WriteString(name)
		} else if v.Char < ' ' || v.Char == 0x7f {
			sb.WriteString("u")
			appendHex4(sb, v.Char)
		} else {
			sb.WriteRune(v.Char)
		}
	case KindString:
		appendQuoted(sb, v.Text)
	case KindSymbol:
		appendName(sb, v.Namespace, v.Text)
	case KindKeyword:
		sb.WriteByte(':')
		appendName(sb, v.Namespace, v.Text)
	case KindMacro:
		sb.WriteRune(v.Char)
	}
}

func appendFloat(sb *strings.Builder, f float64) {
	switch {
	case math.IsInf(f, 1):
		sb.WriteString("##Inf")
		return
	case math.IsInf(f, -1):
		sb.WriteString("##-Inf")
		return
	case math.IsNaN(f):
		sb.WriteString("##NaN")
		return
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	sb.WriteString(s)
	if !strings.ContainsAny(s, ".eE") {
		sb.WriteString(".0")
	}
}

func appendName(sb *strings.Builder, ns, name string) {
	if ns != "" {
		sb.WriteString(ns)
		sb.WriteByte('/')
	}
	sb.WriteString(name)
}

func appendHex4(sb *strings.Builder, r rune) {
	const digits = "0123456789abcdef"
	for shift := 12; shift >= 0; shift -= 4 {
		sb.WriteByte(digits[(r>>shift)&0xf])
	}
}

func appendQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < ' ' || r == 0x7f {
				sb.WriteString(`\u`)
				appendHex4(sb, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
