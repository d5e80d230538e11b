package predictor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredictor_FirstTradeForecastsZero(t *testing.T) {
	p := New()
	defer p.Close()

	require.Equal(t, int64(0), p.PredictSendTime())
	require.Equal(t, int64(0), p.PredictReceiveDiff())
	require.Equal(t, int32(0), p.PredictPrice("GEM8-GEU8"))
	require.Equal(t, int32(0), p.PredictQuantity("GEM8-GEU8"))
}

func TestPredictor_SecondTradeUsesPreviousOnly(t *testing.T) {
	p := New()
	defer p.Close()

	p.AddTrade("GEM8-GEU8", 1000, 1001, 14, 115)

	// Only one trade seen: gap accumulator is empty, so forecast is just
	// the previous value with no gap added.
	require.Equal(t, int64(1000), p.PredictSendTime())
	require.Equal(t, int64(1), p.PredictReceiveDiff())
	require.Equal(t, int32(14), p.PredictPrice("GEM8-GEU8"))
	require.Equal(t, int32(115), p.PredictQuantity("GEM8-GEU8"))
}

func TestPredictor_ThirdTradeUsesGapMean(t *testing.T) {
	p := New()
	defer p.Close()

	p.AddTrade("GEM8-GEU8", 1000, 1001, 14, 115)
	p.AddTrade("GEM8-GEU8", 1100, 1102, 20, 200)

	// One gap observed so far: send gap 100, recv-diff second-diff (2-1)=1.
	require.Equal(t, int64(1200), p.PredictSendTime())
	require.Equal(t, int64(3), p.PredictReceiveDiff())
}

func TestPredictor_NewSymbolForecastsZero(t *testing.T) {
	p := New()
	defer p.Close()

	p.AddTrade("GEM8-GEU8", 1000, 1001, 14, 115)

	require.Equal(t, int32(0), p.PredictPrice("SPZ8-SPH9"))
	require.Equal(t, int32(0), p.PredictQuantity("SPZ8-SPH9"))
}

func TestPredictor_ReplayIsDeterministic(t *testing.T) {
	type step struct {
		symbol               string
		sendTime, receiveTime int64
		price, quantity      int32
	}
	steps := []step{
		{"GEM8-GEU8", 60303042, 60303043, 14, 115},
		{"SPZ8-SPH9", 60303100, 60303150, 500, 10},
		{"GEM8-GEU8", 60303200, 60303260, 16, 120},
		{"GEM8-GEU8", 60303400, 60303470, 18, 130},
	}

	encSide := New()
	defer encSide.Close()
	decSide := New()
	defer decSide.Close()

	for _, s := range steps {
		require.Equal(t, encSide.PredictSendTime(), decSide.PredictSendTime())
		require.Equal(t, encSide.PredictReceiveDiff(), decSide.PredictReceiveDiff())
		require.Equal(t, encSide.PredictPrice(s.symbol), decSide.PredictPrice(s.symbol))
		require.Equal(t, encSide.PredictQuantity(s.symbol), decSide.PredictQuantity(s.symbol))

		encSide.AddTrade(s.symbol, s.sendTime, s.receiveTime, s.price, s.quantity)
		decSide.AddTrade(s.symbol, s.sendTime, s.receiveTime, s.price, s.quantity)
	}
}

func TestPredictor_DistinctSymbolsDoNotCrossContaminate(t *testing.T) {
	// Two distinct symbol strings must keep independent state. These two
	// do not share a hash; same-bucket disambiguation is covered by
	// internal/collision's tests.
	p := New()
	defer p.Close()

	p.AddTrade("sym-a", 1000, 1001, 100, 10)
	p.AddTrade("sym-b", 1100, 1101, 200, 20)

	require.Equal(t, int32(100), p.PredictPrice("sym-a"))
	require.Equal(t, int32(200), p.PredictPrice("sym-b"))
}
