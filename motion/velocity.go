package motion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// effectiveGroundNormal returns the ground normal velocity should follow. When the motor refused
// to snap this tick, the normal on the side the character is moving away from is used so that
// ledges and steps do not bend the velocity.
func (c *Controller) effectiveGroundNormal(v mgl32.Vec3) mgl32.Vec3 {
	up := c.up()
	normal := c.report.GroundNormal
	if v.LenSqr() > 0 && c.report.SnappingPrevented {
		groundPointToCharacter := c.input.Position.Sub(c.report.GroundPoint)
		if v.Dot(groundPointToCharacter) >= 0 {
			normal = c.report.OuterGroundNormal
		} else {
			normal = c.report.InnerGroundNormal
		}
	}
	return game.NormalizeOr(normal, up)
}

// groundNormal returns the reported ground normal, or up when there is none.
func (c *Controller) groundNormal() mgl32.Vec3 {
	return game.NormalizeOr(c.report.GroundNormal, c.up())
}

// reorientInput bends the move input onto the surface described by normal, keeping its magnitude.
func (c *Controller) reorientInput(input, normal mgl32.Vec3) mgl32.Vec3 {
	right := input.Cross(c.up())
	return game.NormalizeOrZero(normal.Cross(right)).Mul(input.Len())
}

// groundMove smoothly approaches the slope-relative target velocity for the given speed.
func (c *Controller) groundMove(ctx *tickContext, v mgl32.Vec3, speed float32) mgl32.Vec3 {
	normal := c.effectiveGroundNormal(v)
	v = game.ReorientOnSurface(v, normal, c.up())

	target := c.reorientInput(c.moveInput, normal).Mul(speed)
	v = game.LerpVec3(v, target, game.ExpSmoothing(c.arch.stableSharpness, ctx.dt))
	c.dbg.Notify(DebugModeVelocity, true, "ground move (normal=%v target=%v): %v", normal, target, v)
	return v
}

// obstructionNormal is the horizontal direction of the found ground's normal. Air control is
// clamped against it so that unstable slopes cannot be climbed by steering into them.
func (c *Controller) obstructionNormal() mgl32.Vec3 {
	up := c.up()
	return game.NormalizeOrZero(up.Cross(c.groundNormal()).Cross(up))
}

// airMove integrates air control, gravity and drag.
func (c *Controller) airMove(ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	up := c.up()

	var accel mgl32.Vec3
	switch c.arch.airControl {
	case airControlAcceleration:
		accel = c.moveInput.Mul(c.arch.airAcceleration * ctx.dt)
	case airControlTargetSpeed:
		if !game.IsZeroVec3(c.moveInput) {
			target := c.moveInput.Mul(c.arch.maxAirSpeed)
			if c.report.FoundAnyGround {
				target = game.ProjectOnPlane(target, c.obstructionNormal())
			}
			accel = game.ProjectOnPlane(target.Sub(v), c.arch.gravity).Mul(c.arch.airAcceleration * ctx.dt)
		}
	}
	if c.report.FoundAnyGround {
		accel = game.ProjectOnPlane(accel, c.obstructionNormal())
	}

	next := v.Add(accel)
	if c.arch.airControl == airControlAcceleration && c.arch.maxAirSpeed > 0 {
		next = c.capAirSpeed(v, next, up)
	}
	v = next

	if c.arch.reorientAirborne && c.report.FoundAnyGround {
		v = game.ReorientOnSurface(v, c.groundNormal(), up)
	}

	v = v.Add(c.arch.gravity.Mul(ctx.dt))
	v = v.Mul(1 / (1 + c.arch.drag*ctx.dt))
	c.dbg.Notify(DebugModeVelocity, true, "air move (accel=%v): %v", accel, v)
	return v
}

// capAirSpeed keeps air control from raising the planar speed above the air speed limit. Speed
// that was already above the limit is kept but not increased.
func (c *Controller) capAirSpeed(before, after, up mgl32.Vec3) mgl32.Vec3 {
	planarBefore := game.ProjectOnPlane(before, up).Len()
	planar := game.ProjectOnPlane(after, up)
	planarAfter := planar.Len()

	limit := c.arch.maxAirSpeed
	if planarBefore > limit {
		limit = planarBefore
	}
	if planarAfter <= limit || planarAfter == 0 {
		return after
	}
	return after.Sub(planar).Add(planar.Mul(limit / planarAfter))
}

// consumeVelocityAdd adds and clears the pending external impulse.
func (c *Controller) consumeVelocityAdd(v mgl32.Vec3) mgl32.Vec3 {
	if c.internalVelocityAdd.LenSqr() <= 0 {
		return v
	}
	v = v.Add(c.internalVelocityAdd)
	c.dbg.Notify(DebugModeVelocity, true, "consumed velocity add %v", c.internalVelocityAdd)
	c.internalVelocityAdd = mgl32.Vec3{}
	return v
}
