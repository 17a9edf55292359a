package corlena

import "math"

// noTap marks a node with no tap eligible for double-tap pairing.
var noTap = math.Inf(-1)

// pendingTap is a tap scheduled for emission once the simulation clock
// reaches readyAt. Clearing active cancels it.
type pendingTap struct {
	active  bool
	readyAt float64
}

// Node is a positioned rectangle owned by the engine. A single flat struct is
// used for all nodes; the registry stores them by value in a dense arena.
type Node struct {
	ID     int32
	X, Y   float64
	W, H   float64
	VX, VY float64
	Flags  uint32

	// Drag state
	grabbing bool
	grabDX   float64
	grabDY   float64

	// Gesture timers
	pressTime   float64
	pressX      float64
	pressY      float64
	maxDisplace float64
	lastTapTime float64
	pending     pendingTap
}

// Grabbing reports whether a pointer currently holds the node.
func (n *Node) Grabbing() bool {
	return n.grabbing
}

// PendingTap reports whether a single tap is scheduled and when it becomes due.
func (n *Node) PendingTap() (readyAt float64, ok bool) {
	return n.pending.readyAt, n.pending.active
}

func newNode(r NodeRecord) Node {
	return Node{
		ID: r.ID,
		X:  r.X, Y: r.Y,
		W: r.W, H: r.H,
		VX: r.VX, VY: r.VY,
		Flags:       r.Flags,
		lastTapTime: noTap,
	}
}

// registry is a dense arena of nodes plus an id->slot index kept in lockstep.
type registry struct {
	nodes []Node
	index map[int32]int
}

func newRegistry(capacity int) registry {
	if capacity < 0 {
		capacity = 0
	}
	return registry{
		nodes: make([]Node, 0, capacity),
		index: make(map[int32]int, capacity),
	}
}

func (r *registry) reset() {
	clear(r.nodes)
	r.nodes = r.nodes[:0]
	clear(r.index)
}

// upsert replaces the node with the record's id, discarding its gesture
// state, or appends a new one.
func (r *registry) upsert(rec NodeRecord) {
	n := newNode(rec)
	if slot, ok := r.index[rec.ID]; ok {
		r.nodes[slot] = n
		return
	}
	r.index[rec.ID] = len(r.nodes)
	r.nodes = append(r.nodes, n)
}

// get returns the node with the given id, or nil.
func (r *registry) get(id int32) *Node {
	slot, ok := r.index[id]
	if !ok {
		return nil
	}
	return &r.nodes[slot]
}

// remove swap-removes the node with the given id and repairs the index entry
// of the node moved into its slot.
func (r *registry) remove(id int32) bool {
	slot, ok := r.index[id]
	if !ok {
		return false
	}
	last := len(r.nodes) - 1
	if slot != last {
		r.nodes[slot] = r.nodes[last]
		r.index[r.nodes[slot].ID] = slot
	}
	r.nodes[last] = Node{}
	r.nodes = r.nodes[:last]
	delete(r.index, id)
	return true
}

// --- Engine surface ---

// UpsertNodes decodes a node buffer (stride NodeStride) and inserts or
// replaces each node. Later records for the same id win. A buffer whose
// length is not a multiple of the stride is ignored in full.
func (e *Engine) UpsertNodes(buf []float32) Result {
	res := checkStride(len(buf), NodeStride)
	if res != ResultApplied {
		e.noteIgnored("upsert nodes", res, len(buf))
		return res
	}
	e.nodeBuf = decodeNodes(buf, e.nodeBuf[:0])
	for _, rec := range e.nodeBuf {
		e.nodes.upsert(rec)
	}
	return ResultApplied
}

// RemoveNodes deletes the nodes with the given ids, dropping any pending
// taps. It returns how many nodes were removed.
func (e *Engine) RemoveNodes(ids ...int32) int {
	removed := 0
	for _, id := range ids {
		if e.nodes.remove(id) {
			removed++
		}
	}
	return removed
}

// Node returns the node with the given id. The pointer is valid until the
// next call that adds or removes nodes.
func (e *Engine) Node(id int32) (*Node, bool) {
	n := e.nodes.get(id)
	return n, n != nil
}

// NodeCount returns the number of registered nodes.
func (e *Engine) NodeCount() int {
	return len(e.nodes.nodes)
}
