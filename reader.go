package edn

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Reader reads scalar values one token at a time. Collections, tagged literals and
// comments are left to the caller: their opening characters come back as KindMacro.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	buf  *Buffer
	opts Options
}

// NewReader reads values from src. A nil opts.Logger discards log output.
func NewReader(src CharacterSource, opts Options) *Reader {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	b := NewBuffer(src, opts.ReadChunkSize, opts.TrackLines)
	b.SetLogger(opts.Logger)
	return &Reader{buf: b, opts: opts}
}

// NewStringReader reads s with DefaultOptions.
func NewStringReader(s string) *Reader {
	return NewReader(NewStringSource(s), DefaultOptions)
}

// NewIOReader reads UTF-8 text from rd with DefaultOptions.
func NewIOReader(rd io.Reader) *Reader {
	return NewReader(NewSource(rd), DefaultOptions)
}

// Buffer exposes the underlying buffer so a structural parser can peek at delimiters.
func (r *Reader) Buffer() *Buffer {
	return r.buf
}

// Read returns the next scalar value. At end of input it returns Options.EOFValue, or
// fails with ErrUnexpectedEOF when Options.ThrowOnEOF is set.
func (r *Reader) Read() (v Value, err error) {
	r.skipWhitespace()
	r.buf.StartNewToken()

	c := r.buf.Read()
	switch {
	case c == EOF:
		return r.eof()
	case c == '"':
		return r.readString()
	case c == '\\':
		return r.readCharacter()
	case c == '-' || c == '+':
		if IsDigit(r.buf.Peek()) {
			return r.readNumber(c == '-')
		}
		return r.readSymbol()
	case IsDigit(c):
		r.buf.Unread()
		return r.readNumber(false)
	case IsMacro(c):
		return Value{Kind: KindMacro, Char: c}, nil
	}
	return r.readSymbol()
}

// ReadKeyword reads the text following a ':' macro as a keyword.
func (r *Reader) ReadKeyword() (v Value, err error) {
	r.buf.StartNewToken()
	return r.readName(KindKeyword)
}

// ReadAll reads values until the end of input.
func (r *Reader) ReadAll() (vs []Value, err error) {
	for {
		r.skipWhitespace()
		r.buf.StartNewToken()
		if r.buf.Peek() == EOF {
			if cause := r.buf.Err(); cause != nil {
				_, err = r.fail(ErrSource, "")
			}
			return
		}

		var v Value
		v, err = r.Read()
		if err != nil {
			return
		}
		if v.Kind == KindMacro && v.Char == ':' {
			v, err = r.ReadKeyword()
			if err != nil {
				return
			}
		}
		vs = append(vs, v)
	}
}

func (r *Reader) skipWhitespace() {
	for {
		// keep the token window empty so long runs of whitespace can be compacted away
		r.buf.StartNewToken()
		c := r.buf.Read()
		if !IsWhitespace(c) {
			r.buf.Unread()
			return
		}
	}
}

func (r *Reader) eof() (Value, error) {
	if r.buf.Err() != nil || r.opts.ThrowOnEOF {
		return r.fail(ErrUnexpectedEOF, "")
	}
	return r.opts.EOFValue, nil
}

// invalid consumes the rest of the token so the error reports all of it.
func (r *Reader) invalid(kind error) (Value, error) {
	for {
		c := r.buf.Read()
		if IsTerminator(c) {
			r.buf.Unread()
			break
		}
	}
	return r.fail(kind, r.buf.TokenString())
}

// fail builds a positioned error. If the input ended because the source failed, that
// failure is reported instead of kind.
func (r *Reader) fail(kind error, token string) (Value, error) {
	e := &Error{
		Kind:   kind,
		Source: r.opts.SourceName,
		Token:  token,
	}
	e.Line, e.Column = r.buf.Position()

	if cause := r.buf.Err(); cause != nil && r.buf.AtEOF() {
		e.Kind = ErrSource
		e.cause = cause
		e.Msg = errors.Wrap(cause, ErrSource.Error()).Error()
		return Value{}, e
	}

	e.Msg = kind.Error()
	if token != "" {
		e.Msg += ": " + token
	}
	return Value{}, e
}
