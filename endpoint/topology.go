package endpoint

import (
	"sort"
	"sync"

	"github.com/canopy-network/omnichain/lib"
)

// NetworkTopology is the in-process directory of endpoints by chain id
// it replaces a global 'lookup the endpoint of a destination' registry with an explicit object owned by the harness
type NetworkTopology struct {
	mu        sync.RWMutex
	endpoints map[uint64]*Endpoint
}

// NewNetworkTopology() creates an empty topology
func NewNetworkTopology() *NetworkTopology {
	return &NetworkTopology{endpoints: make(map[uint64]*Endpoint)}
}

// Attach() adds the endpoint to the topology and lets it reach every other attached endpoint
func (n *NetworkTopology) Attach(e *Endpoint) lib.ErrorI {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, found := n.endpoints[e.chainId]; found {
		return ErrDuplicateChainId(e.chainId)
	}
	n.endpoints[e.chainId] = e
	e.setTopology(n)
	return nil
}

// Endpoint() returns the endpoint of a chain or nil
func (n *NetworkTopology) Endpoint(chainId uint64) *Endpoint {
	if n == nil {
		return nil
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.endpoints[chainId]
}

// ChainIds() returns the attached chain ids in ascending order
func (n *NetworkTopology) ChainIds() (ids []uint64) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for id := range n.endpoints {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return
}
