package trade

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tpzip/tpzip/errs"
)

// fieldCount is the number of comma-separated tokens one CSV line carries:
// symbol, exchange, side, condition, send_time, receive_time, price_text,
// quantity (§6). The newline terminator is not itself a token.
const fieldCount = 8

// Scanner reads trade records off a CSV stream one line at a time, so the
// encoder's two passes can each open the input fresh and stream through it
// without holding the whole file in memory (§5).
type Scanner struct {
	r *bufio.Reader
}

// NewScanner wraps r for trade-by-trade reading.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next trade, or io.EOF once the stream is exhausted.
// Any other error is either errs.ErrMalformedCSV (a line didn't parse) or
// errs.ErrInputRead (the underlying reader failed).
func (s *Scanner) Next() (Trade, error) {
	line, err := s.r.ReadString('\n')
	if len(line) == 0 {
		if err == io.EOF {
			return Trade{}, io.EOF
		}
		if err != nil {
			return Trade{}, fmt.Errorf("%w: %v", errs.ErrInputRead, err)
		}
	}

	var newline byte
	switch {
	case strings.HasSuffix(line, "\r\n"):
		newline = '\r'
		line = line[:len(line)-2]
	case strings.HasSuffix(line, "\n"):
		newline = '\n'
		line = line[:len(line)-1]
	default:
		// Final line with no trailing newline in the source file. Every
		// trade still needs a newline marker to round-trip, so treat a
		// missing terminator as malformed rather than guessing one.
		return Trade{}, fmt.Errorf("%w: final line has no newline terminator", errs.ErrMalformedCSV)
	}

	t, perr := Parse(line, newline)
	if perr != nil {
		return Trade{}, perr
	}
	if err != nil && err != io.EOF {
		return Trade{}, fmt.Errorf("%w: %v", errs.ErrInputRead, err)
	}
	return t, nil
}

// Parse decodes one CSV line (without its terminator) into a Trade, using
// newline as the line's terminator marker.
func Parse(line string, newline byte) (Trade, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return Trade{}, fmt.Errorf("%w: expected %d fields, got %d", errs.ErrMalformedCSV, fieldCount, len(fields))
	}

	symbol := fields[0]
	if symbol == "" {
		return Trade{}, fmt.Errorf("%w: empty symbol", errs.ErrMalformedCSV)
	}

	exchange, err := singleByte(fields[1])
	if err != nil {
		return Trade{}, fmt.Errorf("%w: exchange: %v", errs.ErrMalformedCSV, err)
	}
	side, err := singleByte(fields[2])
	if err != nil {
		return Trade{}, fmt.Errorf("%w: side: %v", errs.ErrMalformedCSV, err)
	}
	condition, err := singleByte(fields[3])
	if err != nil {
		return Trade{}, fmt.Errorf("%w: condition: %v", errs.ErrMalformedCSV, err)
	}

	sendTime, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: send_time: %v", errs.ErrMalformedCSV, err)
	}
	receiveTime, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: receive_time: %v", errs.ErrMalformedCSV, err)
	}

	price, overflow, err := parsePriceText(fields[6])
	if err != nil {
		return Trade{}, fmt.Errorf("%w: price: %v", errs.ErrMalformedCSV, err)
	}

	quantity, err := strconv.ParseInt(fields[7], 10, 32)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: quantity: %v", errs.ErrMalformedCSV, err)
	}

	return Trade{
		Symbol:      symbol,
		Exchange:    exchange,
		Newline:     newline,
		Side:        side,
		Condition:   condition,
		SendTime:    sendTime,
		ReceiveTime: receiveTime,
		Price:       price,
		Overflow:    overflow,
		Quantity:    int32(quantity),
	}, nil
}

// Serialize reconstructs the exact CSV line (with terminator) t was parsed
// from, provided Parse round-trips price/overflow losslessly (§8).
func Serialize(t Trade) string {
	priceText := formatPriceText(t.Price, t.Overflow)
	nl := "\n"
	if t.Newline == '\r' {
		nl = "\r\n"
	}
	return fmt.Sprintf("%s,%c,%c,%c,%d,%d,%s,%d%s",
		t.Symbol, t.Exchange, t.Side, t.Condition,
		t.SendTime, t.ReceiveTime, priceText, t.Quantity, nl)
}

func singleByte(field string) (byte, error) {
	if len(field) != 1 {
		return 0, fmt.Errorf("expected a single byte, got %q", field)
	}
	return field[0], nil
}

// parsePriceText splits price text like "-3.1415" into the magnitude-only
// price field (314) and the overflow string ("-15") that carries both the
// sign and any decimal digits past the first two (§3). The first two
// decimal digits (zero-padded if fewer are present) fold into price itself.
func parsePriceText(text string) (int32, string, error) {
	neg := strings.HasPrefix(text, "-")
	raw := text
	if neg {
		raw = raw[1:]
	}
	if raw == "" {
		return 0, "", fmt.Errorf("empty price")
	}

	intPart, decPart, _ := strings.Cut(raw, ".")
	if intPart == "" {
		intPart = "0"
	}

	first2 := decPart
	if len(first2) > 2 {
		first2 = first2[:2]
	}
	for len(first2) < 2 {
		first2 += "0"
	}

	intVal, err := strconv.ParseInt(intPart, 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("integer part %q: %w", intPart, err)
	}
	dec2, err := strconv.ParseInt(first2, 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("decimal part %q: %w", first2, err)
	}

	price := int32(intVal*100 + dec2)

	overflowDigits := ""
	if len(decPart) > 2 {
		overflowDigits = decPart[2:]
	}
	overflow := overflowDigits
	if neg {
		overflow = "-" + overflowDigits
	}
	return price, overflow, nil
}

// formatPriceText is parsePriceText's inverse: it reassembles the original
// decimal text from the magnitude-only price and the overflow string.
func formatPriceText(price int32, overflow string) string {
	sign := ""
	rest := overflow
	if strings.HasPrefix(overflow, "-") {
		sign = "-"
		rest = overflow[1:]
	}

	intPart := price / 100
	decPart := fmt.Sprintf("%02d", price%100) + rest
	decPart = strings.TrimRight(decPart, "0")

	if decPart == "" {
		return sign + strconv.FormatInt(int64(intPart), 10)
	}
	return sign + strconv.FormatInt(int64(intPart), 10) + "." + decPart
}
