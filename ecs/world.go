// Package ecs stores scene entities as component bundles and answers tag queries.
package ecs

import (
	"errors"
	"fmt"
	"strings"

	"orbitlight/gfx"
)

// Entity identifies a spawned bundle. It stays valid until despawned.
type Entity int32

// Tag is a bitmask of component kinds.
type Tag uint16

const (
	TagMesh Tag = 1 << iota
	TagWireframe
	TagDirectionalLight
	TagShadows
	TagCamera
	TagExposure
	TagFog
	TagMovable
)

var tagNames = [...]string{"Mesh", "Wireframe", "DirectionalLight", "Shadows", "Camera", "Exposure", "Fog", "Movable"}

func (t Tag) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for i, name := range tagNames {
		if t&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

var (
	ErrWorldFull       = errors.New("ecs: world is full")
	ErrNoMatch         = errors.New("ecs: no entity matches")
	ErrMultipleMatches = errors.New("ecs: more than one entity matches")
)

// World holds entities in fixed-capacity storage. It is not safe for
// concurrent use; the frame loop is its only writer.
type World struct {
	bundles []Bundle
	tags    []Tag
	alive   []bool
	n       int
}

// NewWorld allocates a world with room for capacity entities.
func NewWorld(capacity int) *World {
	if capacity < 0 {
		capacity = 0
	}
	return &World{
		bundles: make([]Bundle, capacity),
		tags:    make([]Tag, capacity),
		alive:   make([]bool, capacity),
	}
}

// Spawn stores b and returns its entity id.
func (w *World) Spawn(b Bundle) (Entity, error) {
	for i := range w.bundles {
		if w.alive[i] {
			continue
		}
		if b.Transform.Rotation == (gfx.Quat{}) {
			b.Transform.Rotation = gfx.QuatIdentity()
		}
		if b.Transform.Scale == (gfx.Vec3{}) {
			b.Transform.Scale = gfx.V3(1, 1, 1)
		}
		w.bundles[i] = b
		w.tags[i] = b.Tags()
		w.alive[i] = true
		w.n++
		return Entity(i), nil
	}
	return -1, fmt.Errorf("spawn %q: %w (capacity %d)", b.Name, ErrWorldFull, len(w.bundles))
}

// Despawn removes an entity. Unknown ids are ignored.
func (w *World) Despawn(e Entity) {
	if !w.valid(e) {
		return
	}
	w.alive[e] = false
	w.bundles[e] = Bundle{}
	w.tags[e] = 0
	w.n--
}

// Get returns the bundle of e for mutation.
func (w *World) Get(e Entity) (*Bundle, bool) {
	if !w.valid(e) {
		return nil, false
	}
	return &w.bundles[e], true
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.n }

// Query calls fn for every live entity carrying all of tags, in id order.
// fn may mutate the bundle but must not add or remove components.
func (w *World) Query(tags Tag, fn func(e Entity, b *Bundle)) {
	for i := range w.bundles {
		if !w.alive[i] || w.tags[i]&tags != tags {
			continue
		}
		fn(Entity(i), &w.bundles[i])
	}
}

// Count returns how many live entities carry all of tags.
func (w *World) Count(tags Tag) int {
	n := 0
	w.Query(tags, func(Entity, *Bundle) { n++ })
	return n
}

// Single returns the only entity carrying all of tags.
func (w *World) Single(tags Tag) (Entity, *Bundle, error) {
	found := Entity(-1)
	var out *Bundle
	n := 0
	w.Query(tags, func(e Entity, b *Bundle) {
		if n == 0 {
			found, out = e, b
		}
		n++
	})
	switch n {
	case 0:
		return -1, nil, fmt.Errorf("single %s: %w", tags, ErrNoMatch)
	case 1:
		return found, out, nil
	default:
		return -1, nil, fmt.Errorf("single %s: %w (%d found)", tags, ErrMultipleMatches, n)
	}
}

func (w *World) valid(e Entity) bool {
	return e >= 0 && int(e) < len(w.bundles) && w.alive[e]
}
