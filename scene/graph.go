package scene

import (
	"math"

	"go.uber.org/zap"

	"github.com/vknauss/ld53/common"
	"github.com/vknauss/ld53/ecs"
)

type node struct {
	local Transform
	world Transform
	// subtracted from the local y position when computing a top-level
	// node's world depth, so sprites depth-sort by their visual footprint
	heightForDepth float64
	parent         ecs.Entity
	children       []ecs.Entity
	dirty          bool
}

// Graph is the transform hierarchy: a forest of nodes backed by a sparse-set
// store, keyed by entity. Local transforms are always current; world
// transforms are cached and recomputed lazily under a dirty flag.
//
// Graph implements ecs.ComponentStore, so registering it with a Manager makes
// node removal part of entity destruction.
type Graph struct {
	nodes *ecs.Store[node]
	log   *zap.Logger
}

// NewGraph creates an empty hierarchy. The root node (entity 0) exists from
// the start, parented to itself, so top-level nodes always have a live parent
// to link under.
func NewGraph(log *zap.Logger) *Graph {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Graph{nodes: ecs.NewStore[node](), log: log}
	root := g.nodes.Create(0)
	root.dirty = true
	return g
}

// Create adds a node for e under the root.
func (g *Graph) Create(e ecs.Entity) {
	g.CreateChild(e, 0)
}

// CreateChild adds a node for e under parent. The local transform starts as
// identity and the world transform is computed on first read.
func (g *Graph) CreateChild(e, parent ecs.Entity) {
	n := g.nodes.Create(e)
	n.dirty = true
	g.link(e, parent)
}

// Destroy unlinks e from its parent and removes its node. Children are left
// untouched; destroying a node with live children orphans them, so callers
// with subtrees use DestroyHierarchy instead.
func (g *Graph) Destroy(e ecs.Entity) {
	if !g.nodes.Has(e) {
		return
	}
	g.unlink(e)
	g.nodes.Destroy(e)
}

// DestroyHierarchy destroys the subtree rooted at e post-order, children
// before parents, destroying each entity in full through em (cascading to
// every registered component store, this graph included).
func (g *Graph) DestroyHierarchy(em *ecs.Manager, e ecs.Entity) {
	children := append([]ecs.Entity(nil), g.nodes.Get(e).children...)
	for _, c := range children {
		g.DestroyHierarchy(em, c)
	}
	em.Destroy(e)
}

// Has reports whether e has a node.
func (g *Graph) Has(e ecs.Entity) bool {
	return g.nodes.Has(e)
}

// SetParent moves e under newParent, dirtying e's subtree. No-op when the
// parent is unchanged. Cycles are not detected; a node must never become its
// own ancestor.
func (g *Graph) SetParent(e, newParent ecs.Entity) {
	if g.nodes.Get(e).parent == newParent {
		return
	}
	g.unlink(e)
	g.link(e, newParent)
	g.markDirty(e)
}

func (g *Graph) SetPosition(e ecs.Entity, position common.Vec2) {
	g.nodes.Get(e).local.Position = position
	g.markDirty(e)
}

func (g *Graph) SetRotation(e ecs.Entity, rotation float64) {
	g.nodes.Get(e).local.Rotation = rotation
	g.markDirty(e)
}

func (g *Graph) SetDepth(e ecs.Entity, depth float64) {
	g.nodes.Get(e).local.Depth = depth
	g.markDirty(e)
}

func (g *Graph) SetHeightForDepth(e ecs.Entity, heightForDepth float64) {
	g.nodes.Get(e).heightForDepth = heightForDepth
	g.markDirty(e)
}

// Parent returns e's parent entity (the root handle for top-level nodes).
func (g *Graph) Parent(e ecs.Entity) ecs.Entity {
	return g.nodes.Get(e).parent
}

// Children returns e's child list. The slice is owned by the graph; callers
// must not mutate it.
func (g *Graph) Children(e ecs.Entity) []ecs.Entity {
	return g.nodes.Get(e).children
}

// LocalTransform returns e's local transform, which is always current.
func (g *Graph) LocalTransform(e ecs.Entity) Transform {
	return g.nodes.Get(e).local
}

// WorldTransform returns e's world transform, recomputing the parent chain
// first if the cache is stale. Each node recomputes at most once per dirty
// period. The recursion terminates at the root, which is its own parent.
func (g *Graph) WorldTransform(e ecs.Entity) Transform {
	n := g.nodes.Get(e)
	if n.dirty {
		if n.parent != e {
			pw := g.WorldTransform(n.parent)
			c, s := math.Cos(pw.Rotation), math.Sin(pw.Rotation)
			n.world.Position = pw.Position.Add(common.Vec2{
				X: c*n.local.Position.X - s*n.local.Position.Y,
				Y: s*n.local.Position.X + c*n.local.Position.Y,
			})
			n.world.Rotation = pw.Rotation + n.local.Rotation
			n.world.Depth = pw.Depth + n.local.Depth
			if !n.parent.Valid() {
				// feet-position depth sort for top-level sprites
				n.world.Depth -= n.local.Position.Y - n.heightForDepth
			}
		} else {
			n.world = n.local
		}
		n.dirty = false
	}
	return n.world
}

// Recurse applies fn to every entity in the subtree rooted at e, children
// before parents, and returns the root invocation's result.
func Recurse[R any](g *Graph, e ecs.Entity, fn func(ecs.Entity) R) R {
	for _, c := range g.nodes.Get(e).children {
		Recurse(g, c, fn)
	}
	return fn(e)
}

func (g *Graph) link(e, parent ecs.Entity) {
	g.nodes.Get(e).parent = parent
	pn := g.nodes.Get(parent)
	pn.children = append(pn.children, e)
}

func (g *Graph) unlink(e ecs.Entity) {
	n := g.nodes.Get(e)
	pn := g.nodes.Get(n.parent)
	if pn != nil {
		for i, c := range pn.children {
			if c == e {
				last := len(pn.children) - 1
				pn.children[i] = pn.children[last]
				pn.children = pn.children[:last]
				return
			}
		}
	}
	g.log.Warn("child missing from parent list; transform hierarchy data is suspect",
		zap.Uint32("entity", e.Index()),
		zap.Uint32("parent", n.parent.Index()))
}

// markDirty invalidates e's cached world transform and, transitively, its
// descendants'. An already-dirty node's subtree is guaranteed dirty, so the
// walk stops there.
func (g *Graph) markDirty(e ecs.Entity) {
	n := g.nodes.Get(e)
	if n.dirty {
		return
	}
	n.dirty = true
	for _, c := range n.children {
		g.markDirty(c)
	}
}
