// Package format holds the small, dependency-free enums shared across
// codec and compress: which of the nine trade fields a Huffman table
// belongs to, and which envelope codec (if any) wraps the finished file.
package format

type (
	FieldKind    uint8
	EnvelopeKind uint8
)

// FieldKind enumerates the nine per-field Huffman tables a compressed file
// carries, in the fixed header order of §6.
const (
	FieldSymbol FieldKind = iota + 1
	FieldExchangeNewline
	FieldSide
	FieldCondition
	FieldSendTime
	FieldReceiveTimeDiff
	FieldPrice
	FieldPriceOverflow
	FieldQuantity
)

// EnvelopeKind enumerates the optional outer byte-compression layer
// applied to an already-encoded tpzip file. None is the default: the
// domain-specific encoding in codec is the primary compression mechanism,
// and wrapping it is opt-in.
const (
	EnvelopeNone EnvelopeKind = iota + 1
	EnvelopeLZ4
	EnvelopeS2
	EnvelopeZstd
)

func (f FieldKind) String() string {
	switch f {
	case FieldSymbol:
		return "Symbol"
	case FieldExchangeNewline:
		return "ExchangeNewline"
	case FieldSide:
		return "Side"
	case FieldCondition:
		return "Condition"
	case FieldSendTime:
		return "SendTime"
	case FieldReceiveTimeDiff:
		return "ReceiveTimeDiff"
	case FieldPrice:
		return "Price"
	case FieldPriceOverflow:
		return "PriceOverflow"
	case FieldQuantity:
		return "Quantity"
	default:
		return "Unknown"
	}
}

// Fields lists every FieldKind in wire order.
func Fields() []FieldKind {
	return []FieldKind{
		FieldSymbol, FieldExchangeNewline, FieldSide, FieldCondition,
		FieldSendTime, FieldReceiveTimeDiff, FieldPrice, FieldPriceOverflow, FieldQuantity,
	}
}

func (e EnvelopeKind) String() string {
	switch e {
	case EnvelopeNone:
		return "None"
	case EnvelopeLZ4:
		return "LZ4"
	case EnvelopeS2:
		return "S2"
	case EnvelopeZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}
