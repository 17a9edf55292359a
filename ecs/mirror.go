package ecs

import (
	"github.com/phanxgames/corlena"

	"github.com/yohamta/donburi"
)

// NodeTransform is the per-node state copied from a transforms buffer.
type NodeTransform struct {
	ID             int32
	X, Y           float64
	ScaleX, ScaleY float64
}

// NodeTransformComponent holds a NodeTransform on mirrored entities.
var NodeTransformComponent = donburi.NewComponentType[NodeTransform]()

// Mirror maintains one entity per node id seen in the transforms buffer.
// Entities of nodes missing from a synced buffer are removed.
type Mirror struct {
	world    donburi.World
	entities map[int32]donburi.Entity
	seen     map[int32]bool
}

// NewMirror creates an empty mirror over world.
func NewMirror(world donburi.World) *Mirror {
	return &Mirror{
		world:    world,
		entities: make(map[int32]donburi.Entity),
		seen:     make(map[int32]bool),
	}
}

// Sync creates, updates, and removes entities to match transforms. Trailing
// partial records are ignored.
func (m *Mirror) Sync(transforms []float32) {
	clear(m.seen)
	for i := 0; i+corlena.TransformStride <= len(transforms); i += corlena.TransformStride {
		r := transforms[i : i+corlena.TransformStride]
		id := int32(r[0])
		m.seen[id] = true

		ent, ok := m.entities[id]
		if !ok || !m.world.Valid(ent) {
			ent = m.world.Create(NodeTransformComponent)
			m.entities[id] = ent
		}
		NodeTransformComponent.SetValue(m.world.Entry(ent), NodeTransform{
			ID:     id,
			X:      float64(r[1]),
			Y:      float64(r[2]),
			ScaleX: float64(r[4]),
			ScaleY: float64(r[5]),
		})
	}

	for id, ent := range m.entities {
		if m.seen[id] {
			continue
		}
		if m.world.Valid(ent) {
			m.world.Remove(ent)
		}
		delete(m.entities, id)
	}
}

// Entity returns the entity mirroring node id.
func (m *Mirror) Entity(id int32) (donburi.Entity, bool) {
	ent, ok := m.entities[id]
	return ent, ok
}

// Len returns the number of mirrored nodes.
func (m *Mirror) Len() int {
	return len(m.entities)
}
