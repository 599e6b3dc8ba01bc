package motion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// up is the character's current up axis.
func (c *Controller) up() mgl32.Vec3 {
	return game.NormalizeOr(c.rotation.Rotate(game.Up), game.Up)
}

// forward is the character's current facing.
func (c *Controller) forward() mgl32.Vec3 {
	return game.NormalizeOr(c.rotation.Rotate(game.Forward), game.Forward)
}

// updateRotation turns the character towards the look vector and optionally stands it up against
// gravity.
func (c *Controller) updateRotation(ctx *tickContext) {
	if !game.IsZeroVec3(c.lookInput) && c.arch.orientationSharpness > 0 {
		forward, up := c.forward(), c.up()
		smoothed := game.SlerpVec3(forward, c.lookInput, up, game.ExpSmoothing(c.arch.orientationSharpness, ctx.dt))
		c.rotation = game.LookRotation(game.NormalizeOr(game.ProjectOnPlane(smoothed, up), forward), up)
	}
	if c.arch.orientTowardsGravity {
		c.rotation = game.FromToRotation(c.rotation.Rotate(game.Up), c.arch.gravity.Mul(-1)).Mul(c.rotation).Normalize()
	}
}

// updateLookInput derives the look vector from the move input: the input projected on the
// character plane, or the current facing when there is no input.
func (c *Controller) updateLookInput() {
	if game.IsZeroVec3(c.moveInput) {
		c.lookInput = c.forward()
		return
	}
	c.lookInput = game.NormalizeOr(game.ProjectOnPlane(c.moveInput, c.up()), c.forward())
}
