package edn

import (
	"io"

	"go.uber.org/zap"
)

// DefaultReadChunkSize is the refill granularity used when none is configured.
const DefaultReadChunkSize = 4096

// Buffer is a growable rune buffer over a CharacterSource. It keeps the text of the
// token being read contiguous so the reader can slice numbers, symbols and decoded
// strings out of it without copying them anywhere else.
//
// Invariant: 0 <= tokenStart <= pos <= limit <= len(buf).
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	src CharacterSource
	log *zap.Logger

	buf   []rune
	chunk int

	pos        int
	limit      int
	tokenStart int

	// eof stays set until the next StartNewToken; while set, Unread does nothing.
	eof bool
	err error

	trackLines bool
	lines      lineState
	linePos    int
	collapsed  []collapseMark
}

type lineState struct {
	line   int
	column int
	sawCR  bool
}

// collapseMark records a rune at index at that stands for width+1 source runes.
type collapseMark struct {
	at    int
	width int
}

// NewBuffer creates a buffer reading src readChunkSize runes at a time. Its capacity
// starts at (and never shrinks below) two chunks.
func NewBuffer(src CharacterSource, readChunkSize int, trackLines bool) *Buffer {
	if readChunkSize <= 0 {
		readChunkSize = DefaultReadChunkSize
	}
	return &Buffer{
		src:        src,
		log:        zap.NewNop(),
		buf:        make([]rune, 2*readChunkSize),
		chunk:      readChunkSize,
		trackLines: trackLines,
	}
}

// SetLogger directs debug events about buffer growth to l.
func (b *Buffer) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	b.log = l
}

// Read returns the next rune, refilling from the source as needed, or EOF.
func (b *Buffer) Read() rune {
	if b.pos >= b.limit && !b.fill() {
		return EOF
	}
	r := b.buf[b.pos]
	b.pos++
	return r
}

// Unread steps back one rune. It never moves before the start of the current token
// and does nothing after Read has returned EOF: the position already sits at the end
// of the input, so a caller that unreads its terminator lands in the right place
// whether that terminator was a real rune or the end of input.
func (b *Buffer) Unread() {
	if b.eof || b.pos <= b.tokenStart {
		return
	}
	b.pos--
}

// Peek returns the next rune without consuming it.
func (b *Buffer) Peek() rune {
	r := b.Read()
	b.Unread()
	return r
}

func (b *Buffer) fill() bool {
	if b.eof || b.err != nil {
		b.eof = true
		return false
	}

	if b.limit+b.chunk > len(b.buf) {
		b.resize(len(b.buf) + b.chunk)
		b.log.Debug("buffer grown",
			zap.Int("capacity", len(b.buf)),
			zap.Int("token", b.pos-b.tokenStart))
	}

	n, err := b.src.Fill(b.buf[b.limit : b.limit+b.chunk])
	if err != nil && err != io.EOF {
		b.err = err
		b.log.Debug("character source failed", zap.Error(err))
	}
	if n <= 0 {
		b.eof = true
		return false
	}

	b.limit += n
	return true
}

func (b *Buffer) resize(capacity int) {
	nb := make([]rune, capacity)
	copy(nb, b.buf[:b.limit])
	b.buf = nb
}

// StartNewToken begins a new token at the current position. Once the position is more
// than a chunk into the buffer the unread remainder is moved to the front, and a buffer
// that grew for a long token returns to its minimum size if the remainder fits.
func (b *Buffer) StartNewToken() {
	b.eof = false
	if b.pos > b.chunk {
		b.compact()
	}
	b.tokenStart = b.pos
}

func (b *Buffer) compact() {
	b.flushLines(b.pos)

	live := copy(b.buf, b.buf[b.pos:b.limit])
	b.pos = 0
	b.limit = live
	b.tokenStart = 0
	b.linePos = 0
	b.collapsed = b.collapsed[:0]

	if minimum := 2 * b.chunk; len(b.buf) > minimum && live <= minimum {
		b.resize(minimum)
		b.log.Debug("buffer shrunk", zap.Int("capacity", minimum))
	}
}

// Collapse replaces the last n runes read (an escape sequence) with the single rune r,
// closing the gap so the token window holds decoded text. n must count exactly the
// runes of the escape, backslash included, and may not reach before the token start.
func (b *Buffer) Collapse(n int, r rune) {
	if n < 1 || n > b.pos-b.tokenStart {
		return
	}

	at := b.pos - n
	b.buf[at] = r
	if n == 1 {
		return
	}

	copy(b.buf[at+1:], b.buf[b.pos:b.limit])
	b.pos -= n - 1
	b.limit -= n - 1

	if b.trackLines {
		width := n - 1
		for len(b.collapsed) > 0 && b.collapsed[len(b.collapsed)-1].at >= at {
			width += b.collapsed[len(b.collapsed)-1].width
			b.collapsed = b.collapsed[:len(b.collapsed)-1]
		}
		b.collapsed = append(b.collapsed, collapseMark{at: at, width: width})
	}
}

// Token returns the current token window. The slice aliases the buffer and is only
// valid until the next Read or StartNewToken.
func (b *Buffer) Token() []rune {
	return b.buf[b.tokenStart:b.pos]
}

// TokenString returns a copy of the current token.
func (b *Buffer) TokenString() string {
	return string(b.buf[b.tokenStart:b.pos])
}

// TokenStart is the buffer offset of the first rune of the current token.
func (b *Buffer) TokenStart() int {
	return b.tokenStart
}

// TokenEnd is the buffer offset just past the current token.
func (b *Buffer) TokenEnd() int {
	return b.pos
}

// TokenLen is the number of runes in the current token.
func (b *Buffer) TokenLen() int {
	return b.pos - b.tokenStart
}

// Cap returns the current capacity in runes.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// AtEOF reports whether Read has returned EOF.
func (b *Buffer) AtEOF() bool {
	return b.eof
}

// Err returns the error that ended the input, if the source failed rather than ran out.
func (b *Buffer) Err() error {
	return b.err
}

// Position returns the 0-based line and column of the read position, or -1, -1 when
// line tracking is off. Runes are only examined here and at compaction, never in Read.
func (b *Buffer) Position() (line, column int) {
	if !b.trackLines {
		return -1, -1
	}
	b.flushLines(b.tokenStart)
	st := b.account(b.linePos, b.pos, b.lines)
	return st.line, st.column
}

// Line returns the line half of Position.
func (b *Buffer) Line() int {
	line, _ := b.Position()
	return line
}

// Column returns the column half of Position.
func (b *Buffer) Column() int {
	_, column := b.Position()
	return column
}

func (b *Buffer) flushLines(to int) {
	if !b.trackLines || to <= b.linePos {
		return
	}
	b.lines = b.account(b.linePos, to, b.lines)
	b.linePos = to

	k := 0
	for k < len(b.collapsed) && b.collapsed[k].at < to {
		k++
	}
	b.collapsed = b.collapsed[:copy(b.collapsed, b.collapsed[k:])]
}

// account advances st over buf[from:to]. CRLF is one line break; a lone CR or LF is one too.
func (b *Buffer) account(from, to int, st lineState) lineState {
	m := 0
	for m < len(b.collapsed) && b.collapsed[m].at < from {
		m++
	}

	for i := from; i < to; i++ {
		if m < len(b.collapsed) && b.collapsed[m].at == i {
			// a decoded escape; its source runes never include a line break
			st.column += b.collapsed[m].width + 1
			st.sawCR = false
			m++
			continue
		}

		switch b.buf[i] {
		case '\r':
			st.line++
			st.column = 0
			st.sawCR = true
		case '\n':
			if st.sawCR {
				st.sawCR = false
				continue
			}
			st.line++
			st.column = 0
		default:
			st.column++
			st.sawCR = false
		}
	}
	return st
}
