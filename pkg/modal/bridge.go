package modal

import (
	"sync"

	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// bridge hands the node built by Open to the Renderer published for it.
// It holds at most one node, tagged with the generation that produced it,
// and gives it out once.
type bridge struct {
	mu   sync.Mutex
	gen  uint64
	node *vdom.VNode
	full bool
}

func (b *bridge) put(gen uint64, node *vdom.VNode) {
	b.mu.Lock()
	b.gen, b.node, b.full = gen, node, true
	b.mu.Unlock()
}

// take returns the stored node if it belongs to gen and empties the cell.
func (b *bridge) take(gen uint64) (*vdom.VNode, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.full || b.gen != gen {
		return nil, false
	}
	node := b.node
	b.gen, b.node, b.full = 0, nil, false
	return node, true
}

func (b *bridge) clear() {
	b.mu.Lock()
	b.gen, b.node, b.full = 0, nil, false
	b.mu.Unlock()
}

func (b *bridge) pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.full
}
