package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// wallProbe is the nearest wall found by the wall-jump probe rays.
type wallProbe struct {
	hit       RayHit
	direction mgl32.Vec3
}

// probeWall casts every wall-jump probe ray and keeps the nearest hit along with the direction of
// the ray that found it.
func (c *Controller) probeWall() (wallProbe, bool) {
	var (
		nearest wallProbe
		found   bool
	)
	origin := c.input.Position.Add(c.rotation.Rotate(c.player.WallJumpProbeOffset))
	for _, local := range c.player.WallJumpProbes {
		dir, ok := game.SafeNormalize(c.rotation.Rotate(local))
		if !ok {
			continue
		}
		hit, ok := c.probes.Raycast(origin, dir, c.player.WallJumpRayLength)
		if !ok {
			continue
		}
		if !found || hit.Distance < nearest.hit.Distance {
			nearest = wallProbe{hit: hit, direction: dir}
			found = true
		}
	}
	return nearest, found
}

// tryWallJump honors a wall-jump request when the character is airborne, moving, and next to a
// near vertical wall it is not moving into. The velocity is replaced, not added to.
func (c *Controller) tryWallJump(ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	if c.wallJump.phase != WallJumpRequested || c.report.FoundAnyGround || game.IsZeroVec3(c.moveInput) {
		return v
	}

	wall, ok := c.probeWall()
	if !ok {
		c.dbg.Notify(DebugModeJump, true, "wall jump requested but no wall in reach")
		return v
	}

	wallAngle := game.Angle(wall.hit.Normal, c.up())
	awayAngle := game.Angle(wall.hit.Normal.Mul(-1), c.moveInput)
	if !game.Between(c.player.WallJumpMinWallAngle, wallAngle, c.player.WallJumpMaxWallAngle) || awayAngle < c.player.WallJumpMaxJumpAngleFromNormal {
		c.dbg.Notify(DebugModeJump, true, "wall jump rejected (wallAngle=%.1f awayAngle=%.1f)", wallAngle, awayAngle)
		return v
	}

	dir := mgl32.Vec3{c.moveInput.X(), math32.Abs(wall.direction.Y()), c.moveInput.Z()}
	v = game.NormalizeOr(dir, c.up()).Mul(c.jumpSpeed(c.player.WallJumpHeight))
	c.wallJump.consume(c.now)
	ctx.wallJumped = true

	c.dbg.Notify(DebugModeJump, true, "wall jumped off %v: %v", wall.hit.Normal, v)
	if c.observer != nil {
		c.observer.Jumped(true, v)
	}
	return v
}
