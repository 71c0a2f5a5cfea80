package edn

import (
	"bufio"
	"io"
	"strings"
)

// CharacterSource supplies runes to a Buffer. Fill copies up to len(p) runes into p and
// returns how many were written. A call that writes nothing signals end of input; err
// is io.EOF for a clean end and anything else for a failing source.
type CharacterSource interface {
	Fill(p []rune) (n int, err error)
}

// SourceFunc adapts a plain function to CharacterSource.
type SourceFunc func(p []rune) (n int, err error)

func (f SourceFunc) Fill(p []rune) (int, error) {
	return f(p)
}

// buffered is implemented by readers that can tell how much input is ready without blocking.
type buffered interface {
	Buffered() int
}

type runeSource struct {
	rr io.RuneReader
	bf buffered
}

// NewRuneSource reads runes from rr. If rr reports how much input it has buffered (as
// bufio.Reader does), Fill stops once that input is drained instead of blocking for a full
// chunk, so interactive streams deliver tokens as soon as they are typed.
func NewRuneSource(rr io.RuneReader) CharacterSource {
	s := &runeSource{rr: rr}
	s.bf, _ = rr.(buffered)
	return s
}

// NewSource reads UTF-8 text from r.
func NewSource(r io.Reader) CharacterSource {
	if rr, ok := r.(io.RuneReader); ok {
		return NewRuneSource(rr)
	}
	return NewRuneSource(bufio.NewReader(r))
}

// NewStringSource reads the runes of s.
func NewStringSource(s string) CharacterSource {
	return NewRuneSource(strings.NewReader(s))
}

func (s *runeSource) Fill(p []rune) (n int, err error) {
	var r rune
	for n < len(p) {
		if n > 0 && s.bf != nil && s.bf.Buffered() == 0 {
			return
		}

		r, _, err = s.rr.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				err = nil
			}
			return
		}

		p[n] = r
		n++
	}
	return
}
