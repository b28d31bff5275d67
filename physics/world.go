package physics

import (
	"math"
	"sort"

	"github.com/vknauss/ld53/common"
	"github.com/vknauss/ld53/ecs"
	"github.com/vknauss/ld53/scene"
)

// Bodies with |mass| below this are treated as immovable.
const staticMassEpsilon = 1e-4

// Impulse scale for the penalty-based dynamic-dynamic push-apart.
const pushApartStiffness = 10.0

// World steps oriented-box colliders and velocity/mass dynamics against the
// transform hierarchy. It holds non-owning references into the component
// stores and must not outlive them.
//
// A step is synchronous and single-threaded: integrate, refresh AABBs, sweep
// the broad phase, run SAT on surviving pairs, resolve, dispatch handlers,
// then drain deferred structural changes.
type World struct {
	graph     *scene.Graph
	colliders *ecs.Store[Collider]
	dynamics  *ecs.Store[Dynamic]

	records   []CollisionRecord
	sorted    []ecs.Entity
	intervals []ecs.Entity
	deferred  []func()
}

func NewWorld(graph *scene.Graph, colliders *ecs.Store[Collider], dynamics *ecs.Store[Dynamic]) *World {
	return &World{
		graph:     graph,
		colliders: colliders,
		dynamics:  dynamics,
	}
}

// Records returns the collision records produced by the last Update. The
// slice is reused; it is valid until the next Update.
func (w *World) Records() []CollisionRecord {
	return w.records
}

// Defer queues fn to run after the current step's dispatch loop completes.
// Collision handlers use it for structural changes (entity destruction,
// component add/remove) that would otherwise invalidate the stores and
// records the step is iterating. Outside a step, fn runs at the end of the
// next Update.
func (w *World) Defer(fn func()) {
	if fn == nil {
		return
	}
	w.deferred = append(w.deferred, fn)
}

// Update advances the simulation by dt seconds.
func (w *World) Update(dt float64) {
	w.integrate(dt)
	w.refreshAABBs()
	w.broadPhase()
	w.resolveAndDispatch()
	w.flushDeferred()
}

// integrate advances every dynamic body's scene position and applies
// exponential damping. Explicit Euler; fine at fixed small dt.
func (w *World) integrate(dt float64) {
	for _, e := range w.dynamics.Entities() {
		body := w.dynamics.Get(e)
		w.graph.SetPosition(e, w.graph.LocalTransform(e).Position.Add(body.Velocity.Scale(dt)))
		body.Velocity = body.Velocity.Sub(body.Velocity.Scale(body.Damping * dt))
	}
}

// refreshAABBs recomputes each collider's world AABB: the abs of the rotation
// matrix times the half extents gives the half extents of the rotated box's
// bounding box.
func (w *World) refreshAABBs() {
	for _, e := range w.colliders.Entities() {
		wt := w.graph.WorldTransform(e)
		ext := common.Rotation(wt.Rotation).Abs().MulVec(w.colliders.Get(e).HalfExtents)
		c := w.colliders.Get(e)
		c.AABBMin = wt.Position.Sub(ext)
		c.AABBMax = wt.Position.Add(ext)
	}
}

// broadPhase sweeps colliders along x, pruning pairs whose AABBs cannot
// overlap, and runs the narrow phase on the survivors. O(n log n + k) for k
// overlapping AABB pairs.
func (w *World) broadPhase() {
	w.sorted = append(w.sorted[:0], w.colliders.Entities()...)
	sort.Slice(w.sorted, func(i, j int) bool {
		return w.colliders.Get(w.sorted[i]).AABBMin.X < w.colliders.Get(w.sorted[j]).AABBMin.X
	})

	w.records = w.records[:0]
	w.intervals = w.intervals[:0]
	for _, e0 := range w.sorted {
		c0 := w.colliders.Get(e0)

		// evict intervals that ended left of the current min; nothing
		// further right can overlap them either
		live := w.intervals[:0]
		for _, e1 := range w.intervals {
			if w.colliders.Get(e1).AABBMax.X < c0.AABBMin.X {
				continue
			}
			live = append(live, e1)
		}
		w.intervals = live

		for _, e1 := range w.intervals {
			c1 := w.colliders.Get(e1)
			if c0.AABBMax.X >= c1.AABBMin.X && c0.AABBMax.Y >= c1.AABBMin.Y &&
				c1.AABBMax.X > c0.AABBMin.X && c1.AABBMax.Y >= c0.AABBMin.Y {
				rec := collideBoxes(
					w.graph.WorldTransform(e0), c0.HalfExtents,
					w.graph.WorldTransform(e1), c1.HalfExtents)
				if rec.Depth < 0 {
					rec.E0, rec.E1 = e0, e1
					w.records = append(w.records, rec)
				}
			}
		}

		w.intervals = append(w.intervals, e0)
	}
}

// resolveAndDispatch applies collision response to each record, then invokes
// collider handlers for both roles of each pair.
func (w *World) resolveAndDispatch() {
	for i := range w.records {
		rec := w.records[i]
		b0 := w.dynamics.Get(rec.E0)
		b1 := w.dynamics.Get(rec.E1)
		if b0 != nil && b1 != nil {
			static0 := math.Abs(b0.Mass) < staticMassEpsilon
			static1 := math.Abs(b1.Mass) < staticMassEpsilon
			if static0 != static1 {
				// push the moving body out, then cancel its
				// velocity along the normal so it slides
				if static0 {
					w.graph.SetPosition(rec.E1,
						w.graph.LocalTransform(rec.E1).Position.Sub(rec.Axis.Scale(rec.Depth)))
					rel := b1.Velocity.Sub(b0.Velocity)
					rel = rel.Sub(rec.Axis.Scale(rel.Dot(rec.Axis)))
					b1.Velocity = rel.Add(b0.Velocity)
				} else {
					w.graph.SetPosition(rec.E0,
						w.graph.LocalTransform(rec.E0).Position.Add(rec.Axis.Scale(rec.Depth)))
					rel := b0.Velocity.Sub(b1.Velocity)
					rel = rel.Sub(rec.Axis.Scale(rel.Dot(rec.Axis)))
					b0.Velocity = rel.Add(b1.Velocity)
				}
			} else if !static0 {
				// depth is negative, so the impulse pushes apart
				impulse := rec.Axis.Scale(pushApartStiffness * rec.Depth)
				b0.Velocity = b0.Velocity.Add(impulse.Scale(1 / b0.Mass))
				b1.Velocity = b1.Velocity.Sub(impulse.Scale(1 / b1.Mass))
			}
		}

		for role := 0; role < 2; role++ {
			active, other := rec.E0, rec.E1
			if role == 1 {
				active, other = rec.E1, rec.E0
			}
			if c := w.colliders.Get(active); c != nil && c.Handler != nil {
				c.Handler.OnCollision(active, other, rec)
			}
		}
	}
}

func (w *World) flushDeferred() {
	// deferred ops may defer more work; run until drained
	for i := 0; i < len(w.deferred); i++ {
		w.deferred[i]()
	}
	w.deferred = w.deferred[:0]
}
