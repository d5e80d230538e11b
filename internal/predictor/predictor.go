// Package predictor implements the online stats collector of §4.3: the
// forecaster both the encoder and the decoder run, step for step, so that
// every predicted field's residual on the wire reconstructs byte-for-byte.
package predictor

import (
	"github.com/tpzip/tpzip/internal/collision"
	"github.com/tpzip/tpzip/internal/hash"
)

// symbolMemory is the per-symbol state of §4.3: the last observed price
// and quantity for one instrument.
type symbolMemory struct {
	name         string
	lastPrice    int32
	lastQuantity int32
}

// Predictor maintains cross-trade context so each field can be encoded as
// a small residual. Both the encoder's pass 2 and the decoder run their
// own Predictor instance, feeding it trades in the same order, so their
// forecasts agree at every step.
type Predictor struct {
	hasPrev      bool
	prevSendTime int64
	prevRecvDiff int64 // previous (receive_time - send_time)

	sendGapAcc  *window
	recvDiffAcc *window

	// symbols is keyed by the symbol's xxHash64 id rather than the string
	// itself, for O(1) probing on the hot per-trade path; collisions
	// between distinct symbols sharing an id are resolved by keeping all
	// colliding symbols' state in the same bucket and disambiguating with
	// an exact string comparison (see internal/collision).
	symbols map[uint64][]symbolMemory
	tracker *collision.Tracker
}

// New creates a Predictor with empty state, ready for the first trade.
func New() *Predictor {
	return &Predictor{
		sendGapAcc:  newWindow(),
		recvDiffAcc: newWindow(),
		symbols:     make(map[uint64][]symbolMemory),
		tracker:     collision.NewTracker(),
	}
}

// Close releases the predictor's pooled window buffers. The predictor
// must not be used after Close.
func (p *Predictor) Close() {
	p.sendGapAcc.close()
	p.recvDiffAcc.close()
}

// PredictSendTime forecasts the next trade's send_time: 0 if no trade has
// been observed yet, else the previous send_time plus the truncated mean
// of recent send-time gaps (0 if only one trade has been seen so far).
func (p *Predictor) PredictSendTime() int64 {
	if !p.hasPrev {
		return 0
	}
	return p.prevSendTime + int64(p.sendGapAcc.mean())
}

// PredictReceiveDiff forecasts the next trade's (receive_time - send_time):
// 0 if no trade has been observed yet, else the previous difference plus
// the truncated mean of its recent second differences.
func (p *Predictor) PredictReceiveDiff() int64 {
	if !p.hasPrev {
		return 0
	}
	return p.prevRecvDiff + int64(p.recvDiffAcc.mean())
}

// PredictPrice forecasts symbol's price as its last-observed price, or 0
// if symbol has not been seen yet.
func (p *Predictor) PredictPrice(symbol string) int32 {
	return p.slot(symbol).lastPrice
}

// PredictQuantity forecasts symbol's quantity as its last-observed
// quantity, or 0 if symbol has not been seen yet.
func (p *Predictor) PredictQuantity(symbol string) int32 {
	return p.slot(symbol).lastQuantity
}

// AddTrade advances the predictor's state with one fully-resolved trade.
// The encoder calls this after computing the current trade's residuals;
// the decoder calls this after reconstructing the current trade. Calling
// it in the same relative order on both sides is what keeps their
// forecasts identical (§4.3).
func (p *Predictor) AddTrade(symbol string, sendTime, receiveTime int64, price, quantity int32) {
	recvDiff := receiveTime - sendTime

	if p.hasPrev {
		p.sendGapAcc.add(sendTime - p.prevSendTime)
		p.recvDiffAcc.add(recvDiff - p.prevRecvDiff)
	}
	p.prevSendTime = sendTime
	p.prevRecvDiff = recvDiff
	p.hasPrev = true

	s := p.slot(symbol)
	s.lastPrice = price
	s.lastQuantity = quantity
}

// slot returns the mutable per-symbol memory for symbol, creating a
// zero-valued entry on first use.
func (p *Predictor) slot(symbol string) *symbolMemory {
	id := hash.ID(symbol)
	idx, _ := p.tracker.Observe(id, symbol)

	slots := p.symbols[id]
	if idx == len(slots) {
		slots = append(slots, symbolMemory{name: symbol})
	}
	p.symbols[id] = slots

	return &slots[idx]
}
