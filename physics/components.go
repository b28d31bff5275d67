package physics

import (
	"github.com/vknauss/ld53/common"
	"github.com/vknauss/ld53/ecs"
)

// CollisionRecord is the transient result of one overlapping collider pair,
// valid until the next World.Update. Depth is negative for genuine overlaps
// and its magnitude is the overlap distance along Axis. Axis is the unit
// minimum-translation axis, oriented from E0's interior toward E1.
type CollisionRecord struct {
	E0, E1 ecs.Entity
	Depth  float64
	Axis   common.Vec2
}

// Handler receives collision notifications for a collider. Every overlapping
// pair is dispatched twice per step, once with each side in the active role,
// so a handler can react only from the perspective it cares about.
//
// Handlers run inside the step's dispatch loop and must not create or destroy
// entities or components directly; queue structural changes with World.Defer.
type Handler interface {
	OnCollision(active, other ecs.Entity, rec CollisionRecord)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(active, other ecs.Entity, rec CollisionRecord)

func (f HandlerFunc) OnCollision(active, other ecs.Entity, rec CollisionRecord) {
	f(active, other, rec)
}

// Collider is an oriented-box collision volume. HalfExtents are in the
// entity's local space; AABBMin/AABBMax are the world-space bounds the broad
// phase uses, refreshed at the start of every step.
type Collider struct {
	HalfExtents common.Vec2
	AABBMin     common.Vec2
	AABBMax     common.Vec2
	Handler     Handler
}

// Dynamic gives an entity velocity and mass. A mass within staticMassEpsilon
// of zero marks the body immovable: it still collides but never moves.
// Damping is an exponential velocity decay coefficient.
type Dynamic struct {
	Mass     float64
	Damping  float64
	Velocity common.Vec2
}
