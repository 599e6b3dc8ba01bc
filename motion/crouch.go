package motion

// crouchState tracks whether the character is crouched and whether it still wants to be.
type crouchState struct {
	crouching bool
	should    bool
}

// handleCrouching records the crouch wish. Crouching down always succeeds; standing up is left
// to handleUncrouching since it needs clearance.
func (c *Controller) handleCrouching(crouch bool) {
	if !crouch {
		c.crouch.should = false
		return
	}

	c.crouch.should = true
	if c.crouch.crouching {
		return
	}
	c.crouch.crouching = true
	c.cameraTargetHeight = c.player.CrouchingCameraHeight
	c.setCrouch(true)
	c.dbg.Notify(DebugModeCrouch, true, "crouched")
}

// handleUncrouching stands the character up if it no longer wants to crouch and the standing
// capsule fits. A blocked attempt keeps the crouching capsule and is retried on the next call.
func (c *Controller) handleUncrouching() {
	if !c.crouch.crouching || c.crouch.should {
		return
	}

	if c.probes.Overlaps(c.player.StandingCapsule, c.input.Position, c.rotation) {
		c.dbg.Notify(DebugModeCrouch, true, "uncrouch blocked at %v", c.input.Position)
		return
	}
	c.crouch.crouching = false
	c.cameraTargetHeight = c.player.StandingCameraHeight
	c.setCrouch(false)
	c.dbg.Notify(DebugModeCrouch, true, "uncrouched")
}

// capsule returns the collision volume the motor should use.
func (c *Controller) capsule() Capsule {
	if c.player == nil {
		return StandingCapsule()
	}
	if c.crouch.crouching {
		return c.player.CrouchingCapsule
	}
	return c.player.StandingCapsule
}
