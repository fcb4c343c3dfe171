package runtime

import "math"

// node is one partial path of the search.
type node struct {
	cost     float64
	consumed int
	output   int // id in the cursor's outputs table
	state    int
	final    bool
	seq      uint64
}

// frontier is a min-heap ordered by cost, then by consumed input (more first),
// then by insertion order.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	a, b := f[i], f[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.consumed != b.consumed {
		return a.consumed > b.consumed
	}
	return a.seq < b.seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*node)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// emptyOutput is the id of the empty symbol sequence.
const emptyOutput = 0

type outputEdge struct {
	parent int
	sym    string
}

// outputs interns emitted symbol sequences as a trie of shared prefixes.
// Equal sequences get equal ids, so extending a path costs one entry and
// comparing two outputs is an integer compare.
type outputs struct {
	parent []int
	sym    []string
	depth  []int
	index  map[outputEdge]int
}

func newOutputs() *outputs {
	return &outputs{
		parent: []int{-1},
		sym:    []string{""},
		depth:  []int{0},
		index:  make(map[outputEdge]int),
	}
}

// extend returns the id of id's sequence with sym appended. Empty symbols add nothing.
func (o *outputs) extend(id int, sym string) int {
	if sym == "" {
		return id
	}
	e := outputEdge{parent: id, sym: sym}
	if next, ok := o.index[e]; ok {
		return next
	}
	next := len(o.parent)
	o.parent = append(o.parent, id)
	o.sym = append(o.sym, sym)
	o.depth = append(o.depth, o.depth[id]+1)
	o.index[e] = next
	return next
}

// symbols returns the sequence behind id, first symbol first.
func (o *outputs) symbols(id int) []string {
	out := make([]string, o.depth[id])
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = o.sym[id]
		id = o.parent[id]
	}
	return out
}

// nodeKey identifies search nodes that are interchangeable for the rest of the search.
type nodeKey struct {
	state    int
	consumed int
	cost     uint64
	final    bool
	output   int
}

func keyOf(n *node) nodeKey {
	return nodeKey{
		state:    n.state,
		consumed: n.consumed,
		cost:     math.Float64bits(n.cost),
		final:    n.final,
		output:   n.output,
	}
}
