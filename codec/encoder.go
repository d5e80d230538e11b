package codec

import (
	"fmt"
	"io"
	"os"

	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/internal/bitio"
	"github.com/tpzip/tpzip/internal/huffman"
	"github.com/tpzip/tpzip/internal/options"
	"github.com/tpzip/tpzip/internal/predictor"
	"github.com/tpzip/tpzip/internal/trade"
)

// EncodeStats reports the header's per-field byte breakdown, mirroring the
// original encoder's get_*_header_size() getters. The CLI's -v report uses
// this to show where a compressed file's header bytes went.
type EncodeStats struct {
	NumTrades uint64

	// FieldHeaderSizes is nil when NumTrades is 0: the empty-input
	// shortcut writes no header at all.
	FieldHeaderSizes FieldHeaderSizes
}

// HeaderSize returns the total header size in bytes, including the
// leading 8-byte trade count, or 0 for the empty-input shortcut.
func (s EncodeStats) HeaderSize() int {
	if s.FieldHeaderSizes == nil {
		return 0
	}
	return 8 + s.FieldHeaderSizes.Total()
}

// defaultFlushThreshold is the 1 MiB pass-2 flush boundary of §4.4.
const defaultFlushThreshold = 1 << 20

type encodeConfig struct {
	flushThreshold int
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*encodeConfig]

// WithFlushThreshold overrides the number of fully-packed bytes pass 2
// accumulates before flushing to the output stream. Tests use this to
// exercise the flush path without generating a megabyte of trades.
func WithFlushThreshold(n int) EncodeOption {
	return options.NoError(func(c *encodeConfig) { c.flushThreshold = n })
}

// Encode runs the two-pass encoder of §4.4 against the CSV file at
// inputPath, writing the compressed result to w. Per §5, the input is a
// seekable regular file opened once per pass rather than read through a
// caller-supplied stream, since pass 2 must restart at the beginning of
// the same source pass 1 already consumed.
func Encode(inputPath string, w io.Writer, opts ...EncodeOption) (EncodeStats, error) {
	cfg := encodeConfig{flushThreshold: defaultFlushThreshold}
	if err := options.Apply(&cfg, opts...); err != nil {
		return EncodeStats{}, err
	}

	pass1, err := os.Open(inputPath)
	if err != nil {
		return EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrInputRead, err)
	}
	numTrades, tables, err := buildTables(pass1)
	pass1.Close()
	if err != nil {
		return EncodeStats{}, err
	}

	// Empty-input shortcut (§1, §7): zero trades writes nothing, not even
	// the header. The scanner reports any unparseable line as an error, so
	// this branch is reached only for a source with no lines at all (a
	// zero-byte file, which tpzip.CompressFile also short-circuits itself).
	if numTrades == 0 {
		return EncodeStats{}, nil
	}

	fieldSizes, err := WriteHeader(w, numTrades, tables)
	if err != nil {
		return EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	stats := EncodeStats{NumTrades: numTrades, FieldHeaderSizes: fieldSizes}

	pass2, err := os.Open(inputPath)
	if err != nil {
		return EncodeStats{}, fmt.Errorf("%w: %v", errs.ErrInputRead, err)
	}
	defer pass2.Close()

	if err := encodeTrades(pass2, w, tables, cfg); err != nil {
		return EncodeStats{}, err
	}
	return stats, nil
}

// buildTables is pass 1 (encode_header): it accumulates nine frequency
// maps over the predictor's residuals and derives the canonical tables
// pass 2 and the header both need.
func buildTables(r io.Reader) (uint64, EncodeTables, error) {
	scanner := trade.NewScanner(r)
	pred := predictor.New()
	defer pred.Close()

	symbolCounts := make(map[string]uint64)
	exchangeNewlineCounts := make(map[[2]byte]uint64)
	sideCounts := make(map[byte]uint64)
	conditionCounts := make(map[byte]uint64)
	sendTimeCounts := make(map[int64]uint64)
	receiveTimeDiffCounts := make(map[int64]uint64)
	priceCounts := make(map[int32]uint64)
	priceOverflowCounts := make(map[string]uint64)
	quantityCounts := make(map[int32]uint64)

	var n uint64
	for {
		tr, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, EncodeTables{}, err
		}

		res := computeResiduals(tr, pred)
		symbolCounts[res.symbol]++
		exchangeNewlineCounts[res.exchangeNewline]++
		sideCounts[res.side]++
		conditionCounts[res.condition]++
		sendTimeCounts[res.sendTime]++
		receiveTimeDiffCounts[res.receiveTimeDiff]++
		priceCounts[res.price]++
		priceOverflowCounts[res.priceOverflow]++
		quantityCounts[res.quantity]++
		n++

		pred.AddTrade(tr.Symbol, tr.SendTime, tr.ReceiveTime, tr.Price, tr.Quantity)
	}

	if n == 0 {
		return 0, EncodeTables{}, nil
	}

	var tables EncodeTables
	var err error

	if tables.Symbol, err = huffman.Build(symbolCounts, n, lessString); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.ExchangeNewline, err = huffman.Build(exchangeNewlineCounts, n, lessExchangeNewline); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.Side, err = huffman.Build(sideCounts, n, lessByte); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.Condition, err = huffman.Build(conditionCounts, n, lessByte); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.SendTime, err = huffman.Build(sendTimeCounts, n, lessInt64); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.ReceiveTimeDiff, err = huffman.Build(receiveTimeDiffCounts, n, lessInt64); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.Price, err = huffman.Build(priceCounts, n, lessInt32); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.PriceOverflow, err = huffman.Build(priceOverflowCounts, n, lessString); err != nil {
		return 0, EncodeTables{}, err
	}
	if tables.Quantity, err = huffman.Build(quantityCounts, n, lessInt32); err != nil {
		return 0, EncodeTables{}, err
	}

	return n, tables, nil
}

// encodeTrades is pass 2 (encode_trades): it re-runs an identical
// predictor over the same source and emits each trade's nine field codes
// through the bit packer, flushing whenever the packer crosses the flush
// threshold.
func encodeTrades(r io.Reader, w io.Writer, tables EncodeTables, cfg encodeConfig) error {
	scanner := trade.NewScanner(r)
	pred := predictor.New()
	defer pred.Close()

	packer := bitio.NewPacker()

	for {
		tr, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		res := computeResiduals(tr, pred)
		appendCodes(packer, tables, res)

		pred.AddTrade(tr.Symbol, tr.SendTime, tr.ReceiveTime, tr.Price, tr.Quantity)

		if packer.NumFullBytes() >= cfg.flushThreshold {
			if _, err := w.Write(packer.TakeBytes()); err != nil {
				return fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
			}
		}
	}

	if _, err := w.Write(packer.Finish()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	return nil
}

// appendCodes appends the nine fields' Huffman codes for one trade, in the
// fixed wire order §4.3 and §6 both specify.
func appendCodes(packer *bitio.Packer, tables EncodeTables, res residuals) {
	packer.Append(tables.Symbol[res.symbol])
	packer.Append(tables.ExchangeNewline[res.exchangeNewline])
	packer.Append(tables.Side[res.side])
	packer.Append(tables.Condition[res.condition])
	packer.Append(tables.SendTime[res.sendTime])
	packer.Append(tables.ReceiveTimeDiff[res.receiveTimeDiff])
	packer.Append(tables.Price[res.price])
	packer.Append(tables.PriceOverflow[res.priceOverflow])
	packer.Append(tables.Quantity[res.quantity])
}
