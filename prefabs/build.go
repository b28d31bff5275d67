package prefabs

import (
	"fmt"

	"github.com/vknauss/ld53/common"
	"github.com/vknauss/ld53/ecs"
	"github.com/vknauss/ld53/game"
	"github.com/vknauss/ld53/physics"
)

type buildContext struct {
	world    *game.World
	handlers map[string]physics.Handler
}

type componentBuildFn func(ctx *buildContext, e ecs.Entity, es *EntitySpec) error

var componentRegistry = map[string]componentBuildFn{
	"transform": buildTransform,
	"collider":  buildCollider,
	"dynamic":   buildDynamic,
	"health":    buildHealth,
	"lifetime":  buildLifetime,
}

// Build order matters: the scene node exists before any component that reads
// or moves it.
var componentBuildOrder = []string{
	"transform",
	"collider",
	"dynamic",
	"health",
	"lifetime",
}

// Build instantiates every entity in spec into w and returns the top-level
// entities in spec order. Collider handler names resolve through handlers;
// an unknown name is an error. On error the entities built so far are
// destroyed again, so a failed Build leaves w unchanged.
func Build(w *game.World, spec *SceneSpec, handlers map[string]physics.Handler) ([]ecs.Entity, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("build scene: nil world or spec")
	}
	ctx := &buildContext{world: w, handlers: handlers}
	roots := make([]ecs.Entity, 0, len(spec.Entities))
	for i := range spec.Entities {
		e, err := buildEntity(ctx, 0, &spec.Entities[i])
		if err != nil {
			for _, r := range roots {
				w.Graph.DestroyHierarchy(w.Entities, r)
			}
			return nil, fmt.Errorf("build scene %q: %w", spec.Name, err)
		}
		roots = append(roots, e)
	}
	return roots, nil
}

func buildEntity(ctx *buildContext, parent ecs.Entity, es *EntitySpec) (ecs.Entity, error) {
	e := ctx.world.NewEntity(parent)
	for _, name := range componentBuildOrder {
		if err := componentRegistry[name](ctx, e, es); err != nil {
			ctx.world.Graph.DestroyHierarchy(ctx.world.Entities, e)
			return 0, fmt.Errorf("entity %q: %s: %w", es.Name, name, err)
		}
	}
	for i := range es.Children {
		if _, err := buildEntity(ctx, e, &es.Children[i]); err != nil {
			ctx.world.Graph.DestroyHierarchy(ctx.world.Entities, e)
			return 0, err
		}
	}
	return e, nil
}

func buildTransform(ctx *buildContext, e ecs.Entity, es *EntitySpec) error {
	ts := es.Transform
	if ts == nil {
		return nil
	}
	g := ctx.world.Graph
	g.SetPosition(e, common.Vec2{X: ts.Position[0], Y: ts.Position[1]})
	g.SetRotation(e, ts.Rotation)
	g.SetDepth(e, ts.Depth)
	g.SetHeightForDepth(e, ts.HeightForDepth)
	return nil
}

func buildCollider(ctx *buildContext, e ecs.Entity, es *EntitySpec) error {
	cs := es.Collider
	if cs == nil {
		return nil
	}
	c := ctx.world.Colliders.Create(e)
	c.HalfExtents = common.Vec2{X: cs.HalfExtents[0], Y: cs.HalfExtents[1]}
	if cs.Handler != "" {
		h, ok := ctx.handlers[cs.Handler]
		if !ok {
			return fmt.Errorf("unknown collision handler %q", cs.Handler)
		}
		c.Handler = h
	}
	return nil
}

func buildDynamic(ctx *buildContext, e ecs.Entity, es *EntitySpec) error {
	ds := es.Dynamic
	if ds == nil {
		return nil
	}
	d := ctx.world.Dynamics.Create(e)
	d.Mass = ds.Mass
	d.Damping = ds.Damping
	d.Velocity = common.Vec2{X: ds.Velocity[0], Y: ds.Velocity[1]}
	return nil
}

func buildHealth(ctx *buildContext, e ecs.Entity, es *EntitySpec) error {
	hs := es.Health
	if hs == nil {
		return nil
	}
	h := ctx.world.Healths.Create(e)
	h.Max = hs.Max
	h.Value = hs.Max
	return nil
}

func buildLifetime(ctx *buildContext, e ecs.Entity, es *EntitySpec) error {
	if es.Lifetime <= 0 {
		return nil
	}
	ctx.world.Temporaries.Create(e).Duration = es.Lifetime
	return nil
}
