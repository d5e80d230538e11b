package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tpzip/tpzip/errs"
	"github.com/tpzip/tpzip/internal/bitio"
	"github.com/tpzip/tpzip/internal/huffman"
	"github.com/tpzip/tpzip/internal/predictor"
	"github.com/tpzip/tpzip/internal/trade"
)

// Decode runs the single-pass decoder of §4.5 against a compressed stream
// read from r, writing the reconstructed CSV lines to w.
func Decode(r io.Reader, w io.Writer) error {
	br := bufio.NewReaderSize(r, bitio.ChunkSize)

	numTrades, tables, err := ReadHeader(br)
	if err != nil {
		return err
	}
	if numTrades == 0 {
		return nil
	}

	pred := predictor.New()
	defer pred.Close()

	// br already holds any payload bytes it buffered ahead of the header
	// boundary; wrapping it again here (rather than r) is what keeps those
	// bytes in the stream the unpacker reads from.
	u := bitio.NewUnpacker(br)

	bw := bufio.NewWriterSize(w, 64*1024)
	for i := uint64(0); i < numTrades; i++ {
		tr, err := decodeTrade(u, tables, pred)
		if err != nil {
			return err
		}

		pred.AddTrade(tr.Symbol, tr.SendTime, tr.ReceiveTime, tr.Price, tr.Quantity)

		if _, err := io.WriteString(bw, trade.Serialize(tr)); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrOutputWrite, err)
	}
	return nil
}

// decodeTrade decodes one trade's nine fields, in the fixed order of §4.3,
// applying the inverse residual formula for each predicted field as soon
// as the values it depends on (symbol, send_time) are available.
func decodeTrade(u *bitio.Unpacker, tables DecodeTables, pred *predictor.Predictor) (trade.Trade, error) {
	symbol, err := huffman.Decode(u, tables.Symbol)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	exchangeNewline, err := huffman.Decode(u, tables.ExchangeNewline)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	side, err := huffman.Decode(u, tables.Side)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	condition, err := huffman.Decode(u, tables.Condition)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	sendTimeResidual, err := huffman.Decode(u, tables.SendTime)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	sendTime := sendTimeResidual + pred.PredictSendTime()

	receiveTimeDiffResidual, err := huffman.Decode(u, tables.ReceiveTimeDiff)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	receiveTime := sendTime + receiveTimeDiffResidual + pred.PredictReceiveDiff()

	priceResidual, err := huffman.Decode(u, tables.Price)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	price := priceResidual + pred.PredictPrice(symbol)

	overflow, err := huffman.Decode(u, tables.PriceOverflow)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}

	quantityResidual, err := huffman.Decode(u, tables.Quantity)
	if err != nil {
		return trade.Trade{}, wrapDecodeErr(err)
	}
	quantity := quantityResidual + pred.PredictQuantity(symbol)

	return trade.Trade{
		Symbol:      symbol,
		Exchange:    exchangeNewline[0],
		Newline:     exchangeNewline[1],
		Side:        side,
		Condition:   condition,
		SendTime:    sendTime,
		ReceiveTime: receiveTime,
		Price:       price,
		Overflow:    overflow,
		Quantity:    quantity,
	}, nil
}

func wrapDecodeErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %v", errs.ErrCorruptStream, err)
	}
	return err
}
