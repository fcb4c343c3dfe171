package runtime

import (
	"container/heap"

	"github.com/aretw0/attlookup/pkg/domain"
)

// Stage turns the output of a previous step into a new result stream.
type Stage func(word string) Sequence

// Cascade feeds every result of first into stage, then every result of that into the
// next stage, and so on. Costs add up along the chain and the merged stream stays
// cost-ordered: an upstream result of cost c can only lead to results costing at least c.
func Cascade(first Sequence, stages ...Stage) Sequence {
	seq := first
	for _, st := range stages {
		seq = newCascade(seq, st)
	}
	return seq
}

type cascadeItem struct {
	key   float64
	order uint64

	// pending upstream result not expanded yet
	promise bool
	word    string

	// expanded downstream stream, its upstream cost and its peeked head
	sub  Sequence
	base float64
	head domain.Result
}

type cascadeHeap []*cascadeItem

func (h cascadeHeap) Len() int { return len(h) }
func (h cascadeHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].order < h[j].order
}
func (h cascadeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *cascadeHeap) Push(x any)   { *h = append(*h, x.(*cascadeItem)) }
func (h *cascadeHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

type cascade struct {
	upstream Sequence
	stage    Stage
	items    cascadeHeap
	order    uint64
	started  bool
	err      error
}

func newCascade(upstream Sequence, stage Stage) *cascade {
	return &cascade{upstream: upstream, stage: stage}
}

func (c *cascade) push(it *cascadeItem) {
	it.order = c.order
	c.order++
	heap.Push(&c.items, it)
}

func (c *cascade) pullUpstream() {
	r, ok := c.upstream.Next()
	if !ok {
		c.noteErr(c.upstream.Err())
		return
	}
	c.push(&cascadeItem{key: r.Cost, promise: true, word: r.Output})
}

func (c *cascade) advance(sub Sequence, base float64) {
	h, ok := sub.Next()
	if !ok {
		c.noteErr(sub.Err())
		return
	}
	h.Cost += base
	c.push(&cascadeItem{key: h.Cost, sub: sub, base: base, head: h})
}

func (c *cascade) noteErr(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

// Next implements Sequence. Nothing upstream is pulled before the first call.
func (c *cascade) Next() (domain.Result, bool) {
	if !c.started {
		c.started = true
		c.pullUpstream()
	}
	for c.items.Len() > 0 {
		it := heap.Pop(&c.items).(*cascadeItem)
		if it.promise {
			c.pullUpstream()
			c.advance(c.stage(it.word), it.key)
			continue
		}
		c.advance(it.sub, it.base)
		return it.head, true
	}
	return domain.Result{}, false
}

// Err implements Sequence.
func (c *cascade) Err() error { return c.err }

// Alternates yields the results of the first sequence that produces anything,
// trying them in order. Later sequences are never pulled once one has answered.
func Alternates(seqs ...Sequence) Sequence {
	return &alternates{seqs: seqs}
}

type alternates struct {
	seqs      []Sequence
	i         int
	committed bool
	err       error
}

func (a *alternates) Next() (domain.Result, bool) {
	for a.i < len(a.seqs) {
		cur := a.seqs[a.i]
		if r, ok := cur.Next(); ok {
			a.committed = true
			return r, true
		}
		if a.err == nil {
			a.err = cur.Err()
		}
		if a.committed {
			a.i = len(a.seqs)
			break
		}
		a.i++
	}
	return domain.Result{}, false
}

func (a *alternates) Err() error { return a.err }
