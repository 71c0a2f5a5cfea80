package edn

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Strings(t *testing.T) {
	runReadCases(t, []readCase{
		{name: "xpass: empty", input: `""`, want: String("")},
		{name: "xpass: plain", input: `"abc"`, want: String("abc")},
		{name: "xpass: raw newline", input: "\"a\nb\"", want: String("a\nb")},
		{name: "xpass: non-ascii", input: `"héllo λ"`, want: String("héllo λ")},
		{name: "xpass: simple escapes", input: `"\n\t\r\b\f\"\\"`, want: String("\n\t\r\b\f\"\\")},
		{name: "xpass: unicode escape", input: `"\u0041"`, want: String("A")},
		{name: "xpass: unicode escape then digit", input: `"\u12345"`, want: String("\u1234" + "5")},
		{name: "xpass: surrogate pair", input: `"\ud83d\ude00"`, want: String("\U0001F600")},
		{name: "xpass: lone surrogate", input: `"\ud83dx"`, want: String("\uFFFDx")},
		{name: "xpass: octal escape", input: `"\101"`, want: String("A")},
		{name: "xpass: octal escape then digit", input: `"\3777"`, want: String("ÿ7")},
		{name: "xpass: short octal escape", input: `"\7x"`, want: String("\ax")},
		{name: "xpass: nul", input: `"\0"`, want: String("\x00")},
		{name: "xpass: unknown escape", input: `"\8"`, want: String(`\8`)},
		{name: "xpass: unknown letter escape", input: `"\q"`, want: String(`\q`)},
		{name: "xpass: mixed", input: `"x\ty z\41"`, want: String("x\ty z!")},

		{name: "xfail: octal out of range", input: `"\400"`, wantErr: ErrInvalidEscape},
		{name: "xfail: empty unicode escape", input: `"\u"`, wantErr: ErrInvalidEscape},
		{name: "xfail: short unicode escape", input: `"\u12"`, wantErr: ErrInvalidEscape},
		{name: "xfail: non-hex unicode escape", input: `"\u12g4"`, wantErr: ErrInvalidEscape},
		{name: "xfail: unterminated", input: `"abc`, wantErr: ErrUnterminatedString},
		{name: "xfail: unterminated after escape", input: `"abc\`, wantErr: ErrUnterminatedString},
		{name: "xfail: unterminated after decoded escape", input: `"abc\n`, wantErr: ErrUnterminatedString},
	})
}

func TestRead_StringResumesAfterBadEscape(t *testing.T) {
	r := NewStringReader(`"\400 \" x" 5`)

	_, err := r.Read()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.ErrorIs(t, err, ErrInvalidEscape)
	assert.Equal(t, `"\400 \" x"`, e.Token)

	got, err := r.Read()
	require.NoError(t, err)
	assertValue(t, Int(5), got)
}

func TestRead_LongStringWithEscapes(t *testing.T) {
	opts := DefaultOptions
	opts.ReadChunkSize = 4
	opts.TrackLines = true
	input := `"` + strings.Repeat(`a\tbé`, 50) + `" end`
	r := NewReader(NewStringSource(input), opts)

	got, err := r.Read()
	require.NoError(t, err)
	assertValue(t, String(strings.Repeat("a\tbé", 50)), got)

	// columns count the escapes as written
	line, column := r.Buffer().Position()
	assert.Equal(t, 0, line)
	assert.Equal(t, utf8.RuneCountInString(`"`+strings.Repeat(`a\tbé`, 50)+`"`), column)

	got, err = r.Read()
	require.NoError(t, err)
	assertValue(t, MustSymbol("", "end"), got)
}

func TestRead_Characters(t *testing.T) {
	runReadCases(t, []readCase{
		{name: "xpass: letter", input: `\a`, want: Char('a')},
		{name: "xpass: letter before macro", input: `\a)`, want: Char('a')},
		{name: "xpass: letter before space", input: `\b c`, want: Char('b')},
		{name: "xpass: backslash", input: `\\`, want: Char('\\')},
		{name: "xpass: paren", input: `\(`, want: Char('(')},
		{name: "xpass: quote", input: `\"`, want: Char('"')},
		{name: "xpass: non-ascii", input: `\λ`, want: Char('λ')},
		{name: "xpass: plain u", input: `\u`, want: Char('u')},
		{name: "xpass: plain o", input: `\o`, want: Char('o')},
		{name: "xpass: plain n", input: `\n`, want: Char('n')},
		{name: "xpass: newline", input: `\newline`, want: Char('\n')},
		{name: "xpass: return", input: `\return`, want: Char('\r')},
		{name: "xpass: space", input: `\space`, want: Char(' ')},
		{name: "xpass: tab", input: `\tab`, want: Char('\t')},
		{name: "xpass: backspace", input: `\backspace`, want: Char('\b')},
		{name: "xpass: formfeed", input: `\formfeed`, want: Char('\f')},
		{name: "xpass: unicode", input: `\u0041`, want: Char('A')},
		{name: "xpass: unicode lower hex", input: `\u00e9`, want: Char('é')},
		{name: "xpass: octal", input: `\o101`, want: Char('A')},
		{name: "xpass: short octal", input: `\o7`, want: Char('\a')},
		{name: "xpass: max octal", input: `\o377`, want: Char('ÿ')},

		{name: "xfail: two letters", input: `\aa`, wantErr: ErrInvalidCharacterLiteral},
		{name: "xfail: name with suffix", input: `\newlinex`, wantErr: ErrInvalidCharacterLiteral},
		{name: "xfail: upper name", input: `\Space`, wantErr: ErrInvalidCharacterLiteral},
		{name: "xfail: short unicode", input: `\u12`, wantErr: ErrInvalidEscape},
		{name: "xfail: long unicode", input: `\u00411`, wantErr: ErrInvalidEscape},
		{name: "xfail: surrogate", input: `\ud800`, wantErr: ErrInvalidEscape},
		{name: "xfail: octal out of range", input: `\o400`, wantErr: ErrInvalidEscape},
		{name: "xfail: bad octal digit", input: `\o8`, wantErr: ErrInvalidEscape},
		{name: "xfail: long octal", input: `\o1011`, wantErr: ErrInvalidEscape},
		{name: "xfail: bare backslash", input: `\`, wantErr: ErrUnexpectedEOF},
	})
}

func TestRead_CharacterResumes(t *testing.T) {
	r := NewStringReader(`\aa \b`)

	_, err := r.Read()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, `\aa`, e.Token)
	assert.Equal(t, `invalid character literal: \aa`, e.Msg)

	got, err := r.Read()
	require.NoError(t, err)
	assertValue(t, Char('b'), got)
}
