package ecs

// ComponentStore is the destroy-cascade surface a Manager needs from each
// registered component container.
type ComponentStore interface {
	Has(Entity) bool
	Destroy(Entity)
}

// Manager hands out entity handles and cascades destruction into every
// registered component store. Indices are recycled through a free list;
// generations distinguish handles across recycling.
type Manager struct {
	next   uint32
	gens   []uint32
	free   []uint32
	stores []ComponentStore
}

func NewManager() *Manager {
	// gens[0] belongs to the reserved root index and is never bumped
	return &Manager{next: 1, gens: make([]uint32, 1)}
}

// Register adds a store to the destroy cascade. Stores register once, at
// world construction.
func (m *Manager) Register(s ComponentStore) {
	if s == nil {
		return
	}
	m.stores = append(m.stores, s)
}

// Create returns a fresh entity handle, recycling a destroyed index when one
// is available.
func (m *Manager) Create() Entity {
	var index uint32
	if n := len(m.free); n > 0 {
		index = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		index = m.next
		m.next++
		m.gens = append(m.gens, 0)
	}
	return makeEntity(index, m.gens[index])
}

// Destroy removes e's components from every registered store, then retires
// the index. Stale or root handles are ignored.
func (m *Manager) Destroy(e Entity) {
	if !m.Alive(e) {
		return
	}
	for _, s := range m.stores {
		if s.Has(e) {
			s.Destroy(e)
		}
	}
	i := e.Index()
	m.gens[i]++
	m.free = append(m.free, i)
}

// Alive reports whether e is a current handle: its generation matches the
// index's live generation.
func (m *Manager) Alive(e Entity) bool {
	i := e.Index()
	return i != 0 && i < uint32(len(m.gens)) && m.gens[i] == e.Generation()
}
