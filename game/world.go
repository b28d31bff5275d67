package game

import (
	"go.uber.org/zap"

	"github.com/vknauss/ld53/ecs"
	"github.com/vknauss/ld53/physics"
	"github.com/vknauss/ld53/scene"
)

// World wires the simulation core together: entity storage, the transform
// hierarchy, the physics world, and the gameplay components layered on top.
// It is single-threaded and frame-stepped; one Update per frame, run to
// completion before the renderer reads transforms.
type World struct {
	Entities    *ecs.Manager
	Graph       *scene.Graph
	Colliders   *ecs.Store[physics.Collider]
	Dynamics    *ecs.Store[physics.Dynamic]
	Physics     *physics.World
	Healths     *ecs.Store[Health]
	Temporaries *ecs.Store[Temporary]
	Sounds      *Sounds

	now  float64
	died []ecs.Entity
	log  *zap.Logger
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	em := ecs.NewManager()
	graph := scene.NewGraph(log.Named("scene"))
	colliders := ecs.NewStore[physics.Collider]()
	dynamics := ecs.NewStore[physics.Dynamic]()
	healths := ecs.NewStore[Health]()
	temporaries := ecs.NewStore[Temporary]()

	em.Register(graph)
	em.Register(colliders)
	em.Register(dynamics)
	em.Register(healths)
	em.Register(temporaries)

	return &World{
		Entities:    em,
		Graph:       graph,
		Colliders:   colliders,
		Dynamics:    dynamics,
		Physics:     physics.NewWorld(graph, colliders, dynamics),
		Healths:     healths,
		Temporaries: temporaries,
		Sounds:      &Sounds{},
		log:         log,
	}
}

// NewEntity creates an entity with a scene node under parent (the root when
// parent is the zero handle).
func (w *World) NewEntity(parent ecs.Entity) ecs.Entity {
	e := w.Entities.Create()
	w.Graph.CreateChild(e, parent)
	return e
}

// Now returns the accumulated simulation time in seconds.
func (w *World) Now() float64 {
	return w.now
}

// ApplyDamage reduces e's health. No-op for entities without Health; death is
// handled by the end-of-frame sweep, never here, so damage is safe to apply
// from collision handlers.
func (w *World) ApplyDamage(e ecs.Entity, amount float64) {
	if h := w.Healths.Get(e); h != nil {
		h.Value -= amount
	}
}

// Update advances the simulation one frame: physics first, then the health
// and lifetime sweeps that destroy dead entities.
func (w *World) Update(dt float64) {
	w.now += dt
	w.Physics.Update(dt)
	w.updateHealth()
	w.updateTemporaries(dt)
}

// updateHealth collects entities whose health is depleted and destroys them
// after the scan completes. Destroying mid-scan would invalidate the dense
// slices being iterated.
func (w *World) updateHealth() {
	w.died = w.died[:0]
	healths := w.Healths.All()
	for i, e := range w.Healths.Entities() {
		if healths[i].Value <= 0 {
			w.died = append(w.died, e)
		}
	}
	for _, e := range w.died {
		if h := w.Healths.Get(e); h != nil && h.OnDied != nil {
			h.OnDied(e)
		}
		w.destroyDead(e)
	}
}

func (w *World) updateTemporaries(dt float64) {
	w.died = w.died[:0]
	temporaries := w.Temporaries.All()
	for i, e := range w.Temporaries.Entities() {
		if temporaries[i].Elapsed >= temporaries[i].Duration {
			w.died = append(w.died, e)
		}
		temporaries[i].Elapsed += dt
	}
	for _, e := range w.died {
		w.destroyDead(e)
	}
}

func (w *World) destroyDead(e ecs.Entity) {
	if !w.Entities.Alive(e) {
		return
	}
	if w.Graph.Has(e) {
		w.Graph.DestroyHierarchy(w.Entities, e)
	} else {
		w.Entities.Destroy(e)
	}
}
