package edn

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const frenchProse = "Où est la fenêtre ? Je crois qu'elle est derrière le château, près de la forêt où l'été dure."

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func utf16le(s string) []byte {
	var buf bytes.Buffer
	for _, u := range utf16.Encode([]rune(s)) {
		_ = binary.Write(&buf, binary.LittleEndian, u)
	}
	return buf.Bytes()
}

func readValues(t *testing.T, src CharacterSource) []Value {
	t.Helper()
	vs, err := NewReader(src, DefaultOptions).ReadAll()
	require.NoError(t, err)
	return vs
}

func TestNewCharsetSource(t *testing.T) {
	tests := []struct {
		name  string
		label string
		input []byte
		want  []Value
	}{
		{
			name:  "latin1",
			label: "latin1",
			input: []byte{'"', 0xe9, '"', ' ', 0xb5},
			want:  []Value{String("é"), MustSymbol("", "µ")},
		},
		{
			name:  "utf-16le",
			label: "utf-16le",
			input: utf16le(`"λ" 42 :k`),
			want:  []Value{String("λ"), Int(42), MustKeyword("", "k")},
		},
		{
			name:  "utf-8",
			label: "UTF-8",
			input: []byte(`\λ 1/2`),
			want:  []Value{Char('λ'), ratio("1/2")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewCharsetSource(bytes.NewReader(tt.input), tt.label)
			require.NoError(t, err)

			got := readValues(t, src)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assertValue(t, tt.want[i], got[i])
			}
		})
	}
}

func TestNewCharsetSource_UnknownLabel(t *testing.T) {
	_, err := NewCharsetSource(bytes.NewReader(nil), "no-such-charset")
	assert.Error(t, err)
}

func TestNewDetectedSource(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		wantLabel string
		want      []Value
	}{
		{
			name:      "bom",
			input:     append(append([]byte{}, UTF8BOM...), "sym 1"...),
			wantLabel: "UTF-8",
			want:      []Value{MustSymbol("", "sym"), Int(1)},
		},
		{
			name:      "plain utf-8",
			input:     []byte(`"héllo" 2.5`),
			wantLabel: "UTF-8",
			want:      []Value{String("héllo"), Float(2.5)},
		},
		{
			name:      "empty",
			input:     nil,
			wantLabel: "UTF-8",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, label, err := NewDetectedSource(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, label)

			got := readValues(t, src)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assertValue(t, tt.want[i], got[i])
			}
		})
	}
}

func TestNewDetectedSource_Latin1(t *testing.T) {
	input := append(latin1(t, `"`+frenchProse+`"`), " :fin"...)

	src, label, err := NewDetectedSource(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", label)

	got := readValues(t, src)
	require.Len(t, got, 2)
	assertValue(t, String(frenchProse), got[0])
	assertValue(t, MustKeyword("", "fin"), got[1])
}

func TestNewDetectedSource_Undetectable(t *testing.T) {
	input := bytes.Repeat([]byte{'"', 0xe9, 't', 0xe9, '"', ' '}, 20)

	src, _, err := NewDetectedSource(bytes.NewReader(input))
	assert.Error(t, err)
	assert.Nil(t, src)
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{name: "xpass: ascii", content: []byte("plain ascii"), want: "UTF-8"},
		{name: "xpass: empty", content: nil, want: "UTF-8"},
		{name: "xpass: multibyte", content: []byte("λ"), want: "UTF-8"},
		// a sample cut in the middle of a character is still utf-8
		{name: "xpass: cut two byte rune", content: []byte("aé")[:2], want: "UTF-8"},
		{name: "xpass: cut three byte rune", content: []byte("a€")[:3], want: "UTF-8"},
		{name: "xpass: short latin1 prose", content: latin1(t, frenchProse), want: "ISO-8859-1"},
		{name: "xpass: long latin1 prose", content: latin1(t, strings.Repeat(frenchProse+"\n", 12)), want: "ISO-8859-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectEncoding(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectEncoding_NotDetected(t *testing.T) {
	_, err := DetectEncoding(bytes.Repeat([]byte{'"', 0xe9, 't', 0xe9, '"', ' '}, 20))
	assert.Error(t, err)
}
