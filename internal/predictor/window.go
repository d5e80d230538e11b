package predictor

import "github.com/tpzip/tpzip/internal/pool"

// windowCapacity bounds the rolling mean to "at most the last 100 trades"
// per §4.3.
const windowCapacity = 100

// window is a fixed-capacity ring buffer of int64 samples with a running
// sum, so mean() is O(1) regardless of how many samples have been fed in.
type window struct {
	buf     []int64
	cleanup func()
	head    int
	count   int
	sum     int64
}

func newWindow() *window {
	buf, cleanup := pool.GetInt64Slice(windowCapacity)
	return &window{buf: buf, cleanup: cleanup}
}

func (w *window) add(v int64) {
	if w.count < windowCapacity {
		w.buf[w.head] = v
		w.sum += v
		w.count++
	} else {
		w.sum += v - w.buf[w.head]
		w.buf[w.head] = v
	}
	w.head = (w.head + 1) % windowCapacity
}

// mean returns the truncated-to-nothing float64 mean of the samples
// currently held; 0 if the window is empty. Truncation toward the final
// forecast int64 happens at the call site (§4.3, §15 of SPEC_FULL.md).
func (w *window) mean() float64 {
	if w.count == 0 {
		return 0
	}
	return float64(w.sum) / float64(w.count)
}

func (w *window) close() {
	w.cleanup()
}
