package edn

import (
	"unicode/utf16"
	"unicode/utf8"
)

// escapes that decode to a single rune
var simpleEscapes = [utf8.RuneSelf]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'"':  '"',
	'\\': '\\',
}

var namedChars = []struct {
	name []rune
	char rune
}{
	{[]rune("newline"), '\n'},
	{[]rune("return"), '\r'},
	{[]rune("space"), ' '},
	{[]rune("tab"), '\t'},
	{[]rune("backspace"), '\b'},
	{[]rune("formfeed"), '\f'},
}

// readString reads a string literal after its opening quote. Escapes are decoded in
// place, so when the closing quote arrives the token holds the decoded contents.
func (r *Reader) readString() (Value, error) {
	for {
		switch r.buf.Read() {
		case EOF:
			return r.fail(ErrUnterminatedString, "")
		case '"':
			tok := r.buf.Token()
			return String(string(tok[1 : len(tok)-1])), nil
		case '\\':
			if ok, eof := r.readEscape(); eof {
				return r.fail(ErrUnterminatedString, "")
			} else if !ok {
				return r.invalidString()
			}
		}
	}
}

// readEscape decodes the escape following a backslash inside a string. Unknown escapes
// are left as written.
func (r *Reader) readEscape() (ok bool, eof bool) {
	c := r.buf.Read()
	switch {
	case c == EOF:
		return false, true

	case c < utf8.RuneSelf && simpleEscapes[c] != 0:
		r.buf.Collapse(2, simpleEscapes[c])

	case c == 'u':
		u, ok := r.readHex4()
		if !ok {
			return false, false
		}
		r.buf.Collapse(6, u)
		if tok := r.buf.Token(); utf16.IsSurrogate(u) && len(tok) > 2 {
			// a \uXXXX low surrogate completes a preceding high surrogate
			if pair := utf16.DecodeRune(tok[len(tok)-2], u); pair != utf8.RuneError {
				r.buf.Collapse(2, pair)
			}
		}

	case isOctalDigit(c):
		o, n := r.readOctal(c - '0')
		if o > 0377 {
			return false, false
		}
		r.buf.Collapse(1+n, o)
	}
	return true, false
}

// readHex4 reads exactly four hex digits. A rune that is not a hex digit is left unread.
func (r *Reader) readHex4() (v rune, ok bool) {
	for i := 0; i < 4; i++ {
		c := r.buf.Read()
		d := hexValue(c)
		if d < 0 {
			r.buf.Unread()
			return 0, false
		}
		v = v<<4 | rune(d)
	}
	return v, true
}

// readOctal continues an octal escape whose first digit has value v, reading at most
// three digits in total. n is the number of digits consumed.
func (r *Reader) readOctal(v rune) (o rune, n int) {
	o, n = v, 1
	for n < 3 {
		c := r.buf.Read()
		if !isOctalDigit(c) {
			r.buf.Unread()
			break
		}
		o = o*8 + c - '0'
		n++
	}
	return
}

// invalidString skips to the closing quote so the next Read starts after the literal.
func (r *Reader) invalidString() (Value, error) {
	for {
		c := r.buf.Read()
		if c == EOF || c == '"' {
			break
		}
		if c == '\\' && r.buf.Read() == EOF {
			break
		}
	}
	return r.fail(ErrInvalidEscape, r.buf.TokenString())
}

// readCharacter reads a character literal after its backslash.
func (r *Reader) readCharacter() (Value, error) {
	c := r.buf.Read()
	if c == EOF {
		return r.fail(ErrUnexpectedEOF, "")
	}
	if IsTerminator(r.buf.Peek()) {
		return Char(c), nil
	}

	switch c {
	case 'u':
		u, ok := r.readHex4()
		if !ok || !IsTerminator(r.buf.Peek()) || !utf8.ValidRune(u) {
			return r.invalid(ErrInvalidEscape)
		}
		return Char(u), nil

	case 'o':
		first := r.buf.Read()
		if !isOctalDigit(first) {
			return r.invalid(ErrInvalidEscape)
		}
		o, _ := r.readOctal(first - '0')
		if o > 0377 || !IsTerminator(r.buf.Peek()) {
			return r.invalid(ErrInvalidEscape)
		}
		return Char(o), nil
	}

	for {
		c = r.buf.Read()
		if IsTerminator(c) {
			r.buf.Unread()
			break
		}
	}

	name := r.buf.Token()[1:]
	for _, nc := range namedChars {
		if equalRunes(name, nc.name) {
			return Char(nc.char), nil
		}
	}
	return r.fail(ErrInvalidCharacterLiteral, r.buf.TokenString())
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
