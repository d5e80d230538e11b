package codec

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tpzip/tpzip/endian"
	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/format"
	"github.com/tpzip/tpzip/internal/huffman"
)

// FieldHeaderSizes maps each of the nine trade fields to the byte size of
// its table section within the header, mirroring the original encoder's
// per-field `get_*_header_size()` getters. The CLI's verbose report uses
// this to break down where the header's bytes went.
type FieldHeaderSizes map[format.FieldKind]int

// Total sums every field's table size (excluding the leading trade count).
func (s FieldHeaderSizes) Total() int {
	var total int
	for _, n := range s {
		total += n
	}
	return total
}

// WriteHeader writes the header §6 describes: the little-endian trade
// count, then the nine field tables in their fixed order. It returns each
// field's table size in bytes, for the CLI's verbose report.
func WriteHeader(w io.Writer, numTrades uint64, tables EncodeTables) (FieldHeaderSizes, error) {
	engine := endian.GetLittleEndianEngine()
	sizes := make(FieldHeaderSizes, len(format.Fields()))

	if err := writeU64(w, engine, numTrades); err != nil {
		return nil, err
	}

	n, err := writeTable(w, engine, tables.Symbol, lessString, writeStringSymbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldSymbol] = n

	n, err = writeTable(w, engine, tables.ExchangeNewline, lessExchangeNewline, writePairSymbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldExchangeNewline] = n

	n, err = writeTable(w, engine, tables.Side, lessByte, writeByteSymbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldSide] = n

	n, err = writeTable(w, engine, tables.Condition, lessByte, writeByteSymbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldCondition] = n

	n, err = writeTable(w, engine, tables.SendTime, lessInt64, writeInt64Symbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldSendTime] = n

	n, err = writeTable(w, engine, tables.ReceiveTimeDiff, lessInt64, writeInt64Symbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldReceiveTimeDiff] = n

	n, err = writeTable(w, engine, tables.Price, lessInt32, writeInt32Symbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldPrice] = n

	n, err = writeTable(w, engine, tables.PriceOverflow, lessString, writeStringSymbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldPriceOverflow] = n

	n, err = writeTable(w, engine, tables.Quantity, lessInt32, writeInt32Symbol)
	if err != nil {
		return nil, err
	}
	sizes[format.FieldQuantity] = n

	return sizes, nil
}

// ReadHeader reads back what WriteHeader wrote: the trade count and the
// nine reconstructed decode tables, in wire order. br is the same buffered
// reader the caller goes on to read the payload from afterward — ReadHeader
// must not wrap r in a fresh bufio.Reader of its own, or bytes it buffers
// ahead of the header boundary would be silently dropped from the payload.
func ReadHeader(br *bufio.Reader) (uint64, DecodeTables, error) {
	engine := endian.GetLittleEndianEngine()

	numTrades, err := readU64(br, engine)
	if err != nil {
		return 0, DecodeTables{}, fmt.Errorf("%w: trade count: %v", errs.ErrCorruptStream, err)
	}

	var tables DecodeTables

	if tables.Symbol, err = readTable(br, engine, lessString, readStringSymbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.ExchangeNewline, err = readTable(br, engine, lessExchangeNewline, readPairSymbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.Side, err = readTable(br, engine, lessByte, readByteSymbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.Condition, err = readTable(br, engine, lessByte, readByteSymbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.SendTime, err = readTable(br, engine, lessInt64, readInt64Symbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.ReceiveTimeDiff, err = readTable(br, engine, lessInt64, readInt64Symbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.Price, err = readTable(br, engine, lessInt32, readInt32Symbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.PriceOverflow, err = readTable(br, engine, lessString, readStringSymbol); err != nil {
		return 0, DecodeTables{}, err
	}
	if tables.Quantity, err = readTable(br, engine, lessInt32, readInt32Symbol); err != nil {
		return 0, DecodeTables{}, err
	}

	return numTrades, tables, nil
}

// writeTable writes one field's table section and returns the number of
// bytes written, which the caller attributes to that field in
// FieldHeaderSizes.
func writeTable[T comparable](
	w io.Writer,
	engine endian.EndianEngine,
	table huffman.Table[T],
	less func(a, b T) bool,
	writeSymbol func(io.Writer, T) error,
) (int, error) {
	cw := &countingWriter{w: w}

	entries := make([]huffman.SymbolLength[T], 0, len(table))
	for sym, bits := range table {
		entries = append(entries, huffman.SymbolLength[T]{Symbol: sym, Length: len(bits)})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i].Symbol, entries[j].Symbol) })

	if err := writeU32(cw, engine, uint32(len(entries))); err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := writeSymbol(cw, e.Symbol); err != nil {
			return 0, err
		}
		if err := writeU32(cw, engine, uint32(e.Length)); err != nil {
			return 0, err
		}
	}
	return cw.n, nil
}

// countingWriter tracks how many bytes have passed through Write, so
// writeTable can report each field's table size without buffering it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

func readTable[T comparable](
	r *bufio.Reader,
	engine endian.EndianEngine,
	less func(a, b T) bool,
	readSymbol func(*bufio.Reader) (T, error),
) (huffman.DecodeTable[T], error) {
	size, err := readU32(r, engine)
	if err != nil {
		return huffman.DecodeTable[T]{}, fmt.Errorf("%w: table size: %v", errs.ErrCorruptStream, err)
	}

	records := make([]huffman.SymbolLength[T], 0, size)
	for i := uint32(0); i < size; i++ {
		sym, err := readSymbol(r)
		if err != nil {
			return huffman.DecodeTable[T]{}, fmt.Errorf("%w: table symbol: %v", errs.ErrCorruptStream, err)
		}
		length, err := readU32(r, engine)
		if err != nil {
			return huffman.DecodeTable[T]{}, fmt.Errorf("%w: prefix length: %v", errs.ErrCorruptStream, err)
		}
		records = append(records, huffman.SymbolLength[T]{Symbol: sym, Length: int(length)})
	}

	return huffman.Invert(huffman.FromLengths(records, less)), nil
}

func writeU32(w io.Writer, engine endian.EndianEngine, v uint32) error {
	var b [4]byte
	engine.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU64(w io.Writer, engine endian.EndianEngine, v uint64) error {
	var b [8]byte
	engine.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readU32(r io.Reader, engine endian.EndianEngine) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return engine.Uint32(b[:]), nil
}

func readU64(r io.Reader, engine endian.EndianEngine) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return engine.Uint64(b[:]), nil
}

func writeStringSymbol(w io.Writer, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("symbol contains embedded NUL")
	}
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

func readStringSymbol(r *bufio.Reader) (string, error) {
	b, err := r.ReadBytes(0)
	if err != nil {
		return "", err
	}
	return string(b[:len(b)-1]), nil
}

func writePairSymbol(w io.Writer, pair [2]byte) error {
	_, err := w.Write(pair[:])
	return err
}

func readPairSymbol(r *bufio.Reader) ([2]byte, error) {
	var b [2]byte
	_, err := io.ReadFull(r, b[:])
	return b, err
}

func writeByteSymbol(w io.Writer, v byte) error {
	_, err := w.Write([]byte{v})
	return err
}

func readByteSymbol(r *bufio.Reader) (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}

func writeInt64Symbol(w io.Writer, v int64) error {
	engine := endian.GetLittleEndianEngine()
	var b [8]byte
	engine.PutUint64(b[:], uint64(v))
	_, err := w.Write(b[:])
	return err
}

func readInt64Symbol(r *bufio.Reader) (int64, error) {
	engine := endian.GetLittleEndianEngine()
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int64(engine.Uint64(b[:])), nil
}

func writeInt32Symbol(w io.Writer, v int32) error {
	engine := endian.GetLittleEndianEngine()
	var b [4]byte
	engine.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}

func readInt32Symbol(r *bufio.Reader) (int32, error) {
	engine := endian.GetLittleEndianEngine()
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int32(engine.Uint32(b[:])), nil
}
