package world

import (
	"github.com/oomph-ac/charsim/ai"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/motion"
)

// perceive computes what every enemy sees at the start of a tick. Each enemy targets the nearest
// player it has a clear line of sight to.
func (w *World) perceive(chars []*Character) []ai.Perception {
	perceptions := make([]ai.Perception, len(chars))
	for i, ch := range chars {
		if ch.brain == nil {
			continue
		}

		best := float32(-1)
		for _, other := range chars {
			if other == ch || other.ctrl.Archetype() != motion.ArchetypePlayer {
				continue
			}
			dist := game.Vec3HzDistSqr(other.position.Sub(ch.position))
			if best >= 0 && dist >= best {
				continue
			}
			if !w.lineOfSight(ch, other) {
				continue
			}
			best = dist
			perceptions[i] = ai.Perception{TargetVisible: true, TargetPosition: other.position}
		}
	}
	return perceptions
}

// lineOfSight reports whether no box visible to from blocks the segment between the two eyes.
func (w *World) lineOfSight(from, to *Character) bool {
	origin, target := from.eye(), to.eye()
	delta := target.Sub(origin)
	dist := delta.Len()
	if dist == 0 {
		return true
	}
	hit, ok := from.view.Raycast(origin, delta, dist)
	return !ok || hit.Distance >= dist
}
