package ecs

import "strconv"

// Entity is a handle to a simulation entity. The low 32 bits are a recycled
// index and the high 32 bits are the index's generation at creation time, so
// a handle kept across a destroy/recreate cycle stops matching instead of
// silently aliasing the new entity.
//
// The zero value is the reserved root/none handle (index 0). Manager never
// returns it; the scene graph parents top-level nodes to it.
type Entity uint64

const indexBits = 32

func makeEntity(index, gen uint32) Entity {
	return Entity(uint64(gen)<<indexBits | uint64(index))
}

// Index returns the storage index part of the handle.
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation returns the generation part of the handle.
func (e Entity) Generation() uint32 {
	return uint32(uint64(e) >> indexBits)
}

// Valid reports whether e is a real entity rather than the root/none handle.
func (e Entity) Valid() bool {
	return e.Index() != 0
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
