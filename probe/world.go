// Package probe is a ProbeService and grounding oracle over static axis-aligned boxes. It is meant
// for driving controllers headless, not as a physics engine.
package probe

import (
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/utils"
)

// Box is a static collider.
type Box struct {
	BBox cube.BBox
	// Owner identifies the object the box belongs to. Views can ignore boxes by owner.
	Owner string
	// Normal, when set, is reported as the ground normal of the box's top face instead of straight
	// up. It lets a flat box stand in for a ramp.
	Normal mgl32.Vec3
}

// World holds the static geometry. It is safe for concurrent reads once built; Add must not race
// with queries.
type World struct {
	mu    sync.RWMutex
	boxes []Box
}

func NewWorld(boxes ...Box) *World {
	return &World{boxes: boxes}
}

// Add adds a box to the world.
func (w *World) Add(b Box) {
	w.mu.Lock()
	w.boxes = append(w.boxes, b)
	w.mu.Unlock()
}

// Boxes returns a copy of the world's boxes.
func (w *World) Boxes() []Box {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Box(nil), w.boxes...)
}

// View returns the world as seen by a character that ignores boxes owned by any of ignored.
func (w *World) View(ignored ...string) *View {
	v := &View{world: w, ignored: make(map[string]struct{}, len(ignored))}
	for _, id := range ignored {
		v.ignored[id] = struct{}{}
	}
	return v
}

// each calls f for every box visible to v until f returns false.
func (v *View) each(f func(b Box) bool) {
	v.world.mu.RLock()
	defer v.world.mu.RUnlock()
	for _, b := range v.world.boxes {
		if _, ok := v.ignored[b.Owner]; ok && b.Owner != "" {
			continue
		}
		if !f(b) {
			return
		}
	}
}

// Nearby appends the visible boxes intersecting bb to a pooled list. The caller must hand the list
// back with utils.PutBBoxList.
func (v *View) Nearby(bb cube.BBox) *[]cube.BBox {
	list := utils.GetBBoxList()
	v.each(func(b Box) bool {
		if b.BBox.IntersectsWith(bb) {
			*list = append(*list, b.BBox)
		}
		return true
	})
	return list
}
