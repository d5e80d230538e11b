package codec

import (
	"github.com/tpzip/tpzip/internal/predictor"
	"github.com/tpzip/tpzip/internal/trade"
)

// residuals holds the nine field values actually Huffman-coded for one
// trade, after the predictor's forecasts have been subtracted where §4.3's
// residual table calls for it. Both pass 1 (frequency counting) and pass 2
// (code emission) compute the same residuals for the same trade, which is
// what keeps every residual pass 2 emits present as a key in the table
// pass 1 built from it.
type residuals struct {
	symbol          string
	exchangeNewline [2]byte
	side            byte
	condition       byte
	sendTime        int64
	receiveTimeDiff int64
	price           int32
	priceOverflow   string
	quantity        int32
}

// computeResiduals predicts each forecastable field from pred's current
// state and subtracts it from tr's actual value, per §4.3's residual
// table. It must be called before pred.AddTrade(tr) advances that state.
func computeResiduals(tr trade.Trade, pred *predictor.Predictor) residuals {
	predictedSend := pred.PredictSendTime()
	predictedRecvDiff := pred.PredictReceiveDiff()
	predictedPrice := pred.PredictPrice(tr.Symbol)
	predictedQuantity := pred.PredictQuantity(tr.Symbol)

	actualRecvDiff := tr.ReceiveTime - tr.SendTime

	return residuals{
		symbol:          tr.Symbol,
		exchangeNewline: tr.ExchangeNewline(),
		side:            tr.Side,
		condition:       tr.Condition,
		sendTime:        tr.SendTime - predictedSend,
		receiveTimeDiff: actualRecvDiff - predictedRecvDiff,
		price:           tr.Price - predictedPrice,
		priceOverflow:   tr.Overflow,
		quantity:        tr.Quantity - predictedQuantity,
	}
}
