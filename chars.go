package edn

import (
	"unicode"
	"unicode/utf8"
)

// EOF is returned by Buffer.Read once the character source is exhausted.
const EOF rune = -1

// reserved characters that terminate a symbol or number token
var macroMask = [utf8.RuneSelf]bool{
	'"':  true,
	':':  true,
	';':  true,
	'\'': true,
	'@':  true,
	'^':  true,
	'`':  true,
	'~':  true,
	'(':  true,
	')':  true,
	'[':  true,
	']':  true,
	'{':  true,
	'}':  true,
	'\\': true,
	'%':  true,
	'#':  true,
}

// IsWhitespace reports whether r is insignificant between tokens. Commas count as whitespace.
// Unicode separators do too, except the no-break spaces U+00A0, U+2007 and U+202F.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', ',', '\t', '\n', '\v', '\f', '\r', '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// IsMacro reports whether r is a reserved macro character.
func IsMacro(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && macroMask[r]
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsTerminator reports whether r ends a number or symbol token.
func IsTerminator(r rune) bool {
	return r == EOF || IsWhitespace(r) || IsMacro(r)
}

func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

// digitValue returns the value of r in the 0-9a-zA-Z alphabet, or -1.
func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10
	}
	return -1
}

func hexValue(r rune) int {
	if v := digitValue(r); v >= 0 && v < 16 {
		return v
	}
	return -1
}
