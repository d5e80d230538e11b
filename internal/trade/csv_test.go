package trade

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tpzip/tpzip/errs"
)

func TestParse_BasicLine(t *testing.T) {
	tr, err := Parse("GEM8-GEU8,F,A,0,60303042,60303043,-0.14,115", '\n')
	require.NoError(t, err)
	require.Equal(t, "GEM8-GEU8", tr.Symbol)
	require.Equal(t, byte('F'), tr.Exchange)
	require.Equal(t, byte('\n'), tr.Newline)
	require.Equal(t, byte('A'), tr.Side)
	require.Equal(t, byte('0'), tr.Condition)
	require.Equal(t, int64(60303042), tr.SendTime)
	require.Equal(t, int64(60303043), tr.ReceiveTime)
	require.Equal(t, int32(14), tr.Price)
	require.Equal(t, "-", tr.Overflow)
	require.Equal(t, int32(115), tr.Quantity)
}

func TestParse_OverflowDigits(t *testing.T) {
	tr, err := Parse("GEM8-GEU8,F,A,0,60303042,60303043,-3.1415,115", '\n')
	require.NoError(t, err)
	require.Equal(t, int32(314), tr.Price)
	require.Equal(t, "-15", tr.Overflow)
}

func TestParse_NoDecimalPoint(t *testing.T) {
	tr, err := Parse("GEM8-GEU8,F,A,0,1,2,1351,10", '\n')
	require.NoError(t, err)
	require.Equal(t, int32(135100), tr.Price)
	require.Equal(t, "", tr.Overflow)
}

func TestParse_TrailingZeroDecimal(t *testing.T) {
	tr, err := Parse("GEM8-GEU8,F,A,0,1,2,905.1,10", '\n')
	require.NoError(t, err)
	require.Equal(t, int32(90510), tr.Price)
	require.Equal(t, "", tr.Overflow)
}

func TestParse_SubCentOverflow(t *testing.T) {
	tr, err := Parse("GEM8-GEU8,F,A,0,1,2,0.001,10", '\n')
	require.NoError(t, err)
	require.Equal(t, int32(0), tr.Price)
	require.Equal(t, "1", tr.Overflow)
}

func TestParse_WrongFieldCount(t *testing.T) {
	_, err := Parse("GEM8-GEU8,F,A,0,1,2,0.001", '\n')
	require.ErrorIs(t, err, errs.ErrMalformedCSV)
}

func TestParse_MultiByteExchange(t *testing.T) {
	_, err := Parse("GEM8-GEU8,FX,A,0,1,2,0.001,10", '\n')
	require.ErrorIs(t, err, errs.ErrMalformedCSV)
}

func TestSerialize_RoundTripsPriceText(t *testing.T) {
	cases := []struct {
		price    int32
		overflow string
		want     string
	}{
		{14, "-", "-0.14"},
		{314, "-15", "-3.1415"},
		{90510, "", "905.1"},
		{135100, "", "1351"},
		{0, "1", "0.001"},
		{314, "15", "3.1415"},
	}
	for _, c := range cases {
		tr := Trade{Symbol: "X", Exchange: 'F', Newline: '\n', Side: 'A', Condition: '0',
			Price: c.price, Overflow: c.overflow, Quantity: 1}
		line := Serialize(tr)
		reparsed, err := Parse(line[:len(line)-1], '\n')
		require.NoError(t, err)
		require.Equal(t, c.want, extractPriceText(t, line))
		require.Equal(t, c.price, reparsed.Price)
		require.Equal(t, c.overflow, reparsed.Overflow)
	}
}

func TestSerialize_CRNewline(t *testing.T) {
	tr := Trade{Symbol: "GEM8-GEU8", Exchange: 'F', Newline: '\r', Side: 'A', Condition: '0',
		SendTime: 1, ReceiveTime: 2, Price: 314, Overflow: "15", Quantity: 115}
	line := Serialize(tr)
	require.Equal(t, "GEM8-GEU8,F,A,0,1,2,3.1415,115\r\n", line)
}

func TestParseSerialize_FullRoundTrip(t *testing.T) {
	original := "GEM8-GEU8,F,A,0,60303042,60303043,-0.14,115\n"
	tr, err := Parse(original[:len(original)-1], '\n')
	require.NoError(t, err)
	require.Equal(t, original, Serialize(tr))
}

func TestScanner_MultipleLinesMixedTerminators(t *testing.T) {
	data := "GEM8-GEU8,F,A,0,1,2,-0.14,115\r\nSPZ8-SPH9,C,B,1,3,4,500,10\n"
	s := NewScanner(strings.NewReader(data))

	first, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, byte('\r'), first.Newline)
	require.Equal(t, "GEM8-GEU8", first.Symbol)

	second, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, byte('\n'), second.Newline)
	require.Equal(t, int32(50000), second.Price)

	_, err = s.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestScanner_MalformedLine(t *testing.T) {
	s := NewScanner(strings.NewReader("not,enough,fields\n"))
	_, err := s.Next()
	require.ErrorIs(t, err, errs.ErrMalformedCSV)
}

func extractPriceText(t *testing.T, line string) string {
	t.Helper()
	fields := splitIgnoringLast(line)
	return fields[6]
}

func splitIgnoringLast(line string) []string {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == '\n' {
			line = line[:i]
			break
		}
	}
	out := []string{}
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == ',' {
			out = append(out, line[start:i])
			start = i + 1
		}
	}
	out = append(out, line[start:])
	return out
}
