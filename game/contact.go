package game

import (
	"github.com/vknauss/ld53/ecs"
	"github.com/vknauss/ld53/physics"
)

// ContactDamage is a collision handler that damages whatever the owning
// collider touches. Damage goes through World.ApplyDamage and death through
// the world's end-of-frame sweep, so the handler never mutates component
// storage during physics dispatch.
type ContactDamage struct {
	World  *World
	Damage float64
	// Sound queued on every successful hit (optional).
	Sound string
	// Cooldown is the minimum simulation time in seconds between hits on
	// the same victim. Zero means every step hits.
	Cooldown float64

	lastHit map[ecs.Entity]float64
}

func (cd *ContactDamage) OnCollision(active, other ecs.Entity, rec physics.CollisionRecord) {
	if cd.World == nil {
		return
	}
	if cd.World.Healths.Get(other) == nil {
		return
	}
	if cd.Cooldown > 0 {
		now := cd.World.Now()
		// entries older than the cooldown no longer gate anything; drop
		// them so the map only tracks victims inside the window
		for e, t := range cd.lastHit {
			if now-t >= cd.Cooldown {
				delete(cd.lastHit, e)
			}
		}
		if _, ok := cd.lastHit[other]; ok {
			return
		}
		if cd.lastHit == nil {
			cd.lastHit = make(map[ecs.Entity]float64)
		}
		cd.lastHit[other] = now
	}
	cd.World.ApplyDamage(other, cd.Damage)
	cd.World.Sounds.Play(cd.Sound)
}
