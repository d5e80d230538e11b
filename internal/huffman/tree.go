// Package huffman builds canonical Huffman code tables generically over
// any comparable symbol type, per §4.2. The same algorithm serves all nine
// trade fields: byte strings (as Go strings), single bytes, the
// exchange/newline pair (as a [2]byte array), and wide signed integers —
// the only operations it needs on a symbol are equality, a total order,
// and (at the call site) a deterministic header serialization.
package huffman

import "container/heap"

// node is a transient binary tree node used only to derive code lengths.
// Interior nodes own their children outright; the tree is discarded once
// lengths are extracted, so there is no need for shared ownership or
// back-pointers (see DESIGN.md's tree-ownership note).
type node[T comparable] struct {
	weight      float64
	symbol      T
	isLeaf      bool
	left, right *node[T]
}

// nodeHeap is a min-priority queue over *node[T], ordered by weight, with
// ties broken by insertion sequence so that repeated runs over the same
// sorted input produce the same tree shape.
type nodeHeap[T comparable] struct {
	nodes []*node[T]
	seq   []int
	next  int // sequence number the next pushed node receives
}

func (h *nodeHeap[T]) Len() int { return len(h.nodes) }
func (h *nodeHeap[T]) Less(i, j int) bool {
	if h.nodes[i].weight != h.nodes[j].weight {
		return h.nodes[i].weight < h.nodes[j].weight
	}
	return h.seq[i] < h.seq[j]
}
func (h *nodeHeap[T]) Swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.seq[i], h.seq[j] = h.seq[j], h.seq[i]
}
func (h *nodeHeap[T]) Push(x any) {
	h.nodes = append(h.nodes, x.(*node[T]))
	h.seq = append(h.seq, h.next)
	h.next++
}
func (h *nodeHeap[T]) Pop() any {
	n := len(h.nodes)
	v := h.nodes[n-1]
	h.nodes = h.nodes[:n-1]
	h.seq = h.seq[:n-1]

	return v
}

// codeLengths runs the standard priority-queue algorithm: repeatedly pop
// the two smallest-weight nodes, merge them under a new internal node, and
// push the merge back, until one node remains. It then walks the
// resulting tree to assign each leaf's depth as its code length.
//
// leaves must be non-empty and already in the deterministic order the
// caller wants ties broken in; that order seeds the heap's insertion
// sequence.
func codeLengths[T comparable](leaves []node[T]) map[T]int {
	lengths := make(map[T]int, len(leaves))

	if len(leaves) == 1 {
		// Degenerate case (§4.2): a single distinct symbol gets a
		// zero-length code and consumes no bits per trade.
		lengths[leaves[0].symbol] = 0
		return lengths
	}

	h := &nodeHeap[T]{}
	heap.Init(h)
	for i := range leaves {
		leaf := leaves[i]
		heap.Push(h, &leaf)
	}

	for h.Len() > 1 {
		a := heap.Pop(h).(*node[T])
		b := heap.Pop(h).(*node[T])
		heap.Push(h, &node[T]{weight: a.weight + b.weight, left: a, right: b})
	}

	root := heap.Pop(h).(*node[T])
	walk(root, 0, lengths)

	return lengths
}

func walk[T comparable](n *node[T], depth int, lengths map[T]int) {
	if n.left == nil && n.right == nil {
		lengths[n.symbol] = depth
		return
	}
	if n.left != nil {
		walk(n.left, depth+1, lengths)
	}
	if n.right != nil {
		walk(n.right, depth+1, lengths)
	}
}
