package edn

import (
	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

// Options configures a Reader.
type Options struct {
	// ReadChunkSize is how many runes the buffer requests from the source per refill.
	ReadChunkSize int
	// ThrowOnEOF makes Read fail with ErrUnexpectedEOF at end of input instead of
	// returning EOFValue.
	ThrowOnEOF bool
	EOFValue   Value
	// TrackLines enables line/column positions in errors.
	TrackLines bool
	// SourceName is copied into errors; it is never derived from the source.
	SourceName string
	Logger     *zap.Logger
}

var DefaultOptions = Options{
	ReadChunkSize: DefaultReadChunkSize,
	ThrowOnEOF:    true,
	EOFValue:      Nil,
	TrackLines:    false,
}

// OptionsFromSection reads reader settings from an ini section:
//
//	[edn]
//	READ_CHUNK_SIZE = 4096
//	THROW_ON_EOF    = true
//	TRACK_LINES     = false
//	SOURCE_NAME     = data.edn
//
// Missing or malformed keys keep their DefaultOptions values.
func OptionsFromSection(sec *ini.Section) Options {
	opts := DefaultOptions
	if sec == nil {
		return opts
	}

	opts.ReadChunkSize = sec.Key("READ_CHUNK_SIZE").MustInt(DefaultOptions.ReadChunkSize)
	if opts.ReadChunkSize <= 0 {
		opts.ReadChunkSize = DefaultOptions.ReadChunkSize
	}
	opts.ThrowOnEOF = sec.Key("THROW_ON_EOF").MustBool(DefaultOptions.ThrowOnEOF)
	opts.TrackLines = sec.Key("TRACK_LINES").MustBool(DefaultOptions.TrackLines)
	opts.SourceName = sec.Key("SOURCE_NAME").String()
	return opts
}
