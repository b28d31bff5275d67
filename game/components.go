package game

import "github.com/vknauss/ld53/ecs"

// Health tracks an entity's hit points. When Value reaches zero the world's
// end-of-frame sweep fires OnDied once and then destroys the entity (and its
// scene subtree, if it has one).
type Health struct {
	Max    float64
	Value  float64
	OnDied func(e ecs.Entity)
}

// Temporary destroys its entity once Duration seconds of simulation have
// elapsed. Used for short-lived effects and projectiles.
type Temporary struct {
	Duration float64
	Elapsed  float64
}
