package edn

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnexpectedEOF           = errors.New("EOF while reading")
	ErrUnterminatedString      = errors.New("EOF while reading string")
	ErrInvalidEscape           = errors.New("invalid escape sequence")
	ErrInvalidNumber           = errors.New("invalid number")
	ErrInvalidCharacterLiteral = errors.New("invalid character literal")
	ErrInvalidSymbol           = errors.New("invalid symbol")
	ErrSource                  = errors.New("character source failed")
)

// Error is a read failure positioned in the input. Line and Column are 0-based and -1
// when the reader does not track lines.
type Error struct {
	Kind   error
	Msg    string
	Source string
	Line   int
	Column int
	// Token is the offending token text, if any.
	Token string

	cause error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteByte(' ')
	}
	if e.Line != -1 && e.Column != -1 {
		sb.WriteString("[line ")
		sb.WriteString(strconv.Itoa(e.Line))
		sb.WriteString(", col ")
		sb.WriteString(strconv.Itoa(e.Column))
		sb.WriteString("] ")
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

// Unwrap exposes both the kind and, for source failures, the underlying error.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}
