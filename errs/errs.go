// Package errs collects the sentinel errors returned across tpzip's
// packages so callers can classify failures with errors.Is instead of
// string matching.
package errs

import "errors"

var (
	// ErrInputRead is returned when the source file cannot be opened or read.
	ErrInputRead = errors.New("tpzip: input read error")

	// ErrOutputWrite is returned when the destination file cannot be created or written.
	ErrOutputWrite = errors.New("tpzip: output write error")

	// ErrMalformedCSV is returned when a line does not split into eight fields
	// or a numeric field fails to parse.
	ErrMalformedCSV = errors.New("tpzip: malformed csv line")

	// ErrCorruptStream is returned by the decoder when the declared trade
	// count implies more data than the stream holds, or a bit prefix grows
	// past every key in its table.
	ErrCorruptStream = errors.New("tpzip: corrupt compressed stream")

	// ErrEmptyHuffmanTable is returned by huffman.Build when a canonical
	// table is built from zero symbols; every call site should have
	// already special-cased the degenerate (zero-trade) stream before
	// reaching the builder.
	ErrEmptyHuffmanTable = errors.New("tpzip: huffman table has no symbols")

	// ErrUnknownEnvelope is returned by compress.New for an unrecognized
	// envelope kind.
	ErrUnknownEnvelope = errors.New("tpzip: unknown envelope codec")
)
