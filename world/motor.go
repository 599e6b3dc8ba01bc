package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/probe"
	"github.com/oomph-ac/charsim/utils"
)

// DefaultGroundSnap is how far below its feet a character still finds ground after moving.
const DefaultGroundSnap = float32(0.1)

// move integrates the result of the last controller tick: the body moves by velocity*dt, clipped
// against nearby boxes one axis at a time, and the ground below the new position becomes the
// grounding report of the next tick.
func (ch *Character) move(dt, snap float32) {
	res := ch.result
	displacement := res.Velocity.Mul(dt)

	bb := probe.CapsuleBBox(res.Capsule, ch.position, mgl32.QuatIdent())
	nearby := ch.view.Nearby(bb.Extend(displacement).Grow(0.01))
	applied, clipped := utils.ClipDisplacement(*nearby, bb, displacement)
	utils.PutBBoxList(nearby)
	ch.position = ch.position.Add(applied)

	if clipped[1] && displacement.Y() < 0 {
		ch.ctrl.OnGroundHit()
	}
	if clipped[0] {
		ch.ctrl.OnMovementHit(mgl32.Vec3{-sign(displacement.X()), 0, 0})
	}
	if clipped[2] {
		ch.ctrl.OnMovementHit(mgl32.Vec3{0, 0, -sign(displacement.Z())})
	}

	if res.ForceUnground {
		ch.grounding = motion.GroundingReport{}
		return
	}
	ch.grounding = ch.view.Ground(res.Capsule, ch.position, res.MaxStableSlopeAngle, snap)
	if ch.grounding.StableOnGround && !ch.grounding.SnappingPrevented {
		ch.position[1] = ch.grounding.GroundPoint.Y()
	}
}

func sign(f float32) float32 {
	if f < 0 {
		return -1
	}
	return 1
}
