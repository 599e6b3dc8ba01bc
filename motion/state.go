package motion

import "github.com/go-gl/mathgl/mgl32"

// StateKind names the behavior mode a controller is in.
type StateKind uint8

const (
	StateDefault StateKind = iota
	StateSprinting
	StateSliding
)

func (k StateKind) String() string {
	switch k {
	case StateDefault:
		return "default"
	case StateSprinting:
		return "sprinting"
	case StateSliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// state is one case of the controller's behavior. Every case carries only the data it needs, so a
// controller that is not sliding has no slide data at all.
type state interface {
	Kind() StateKind

	enter(c *Controller, from StateKind)
	exit(c *Controller, to StateKind)

	handleInput(c *Controller, ctx *tickContext)
	beforeUpdate(c *Controller, ctx *tickContext)
	updateVelocity(c *Controller, ctx *tickContext, v mgl32.Vec3) mgl32.Vec3
	afterUpdate(c *Controller, ctx *tickContext)

	onLanded(c *Controller)
	onLeaveStableGround(c *Controller)
	onGroundHit(c *Controller)
	onMovementHit(c *Controller, normal mgl32.Vec3)
}

// defaultState is grounded or airborne locomotion. It is the only state an enemy has.
type defaultState struct{}

func (*defaultState) Kind() StateKind { return StateDefault }

func (*defaultState) enter(*Controller, StateKind) {}
func (*defaultState) exit(*Controller, StateKind)  {}

func (*defaultState) handleInput(c *Controller, _ *tickContext) {
	if c.player == nil {
		return
	}

	if c.takeJump() {
		if c.report.FoundAnyGround {
			c.jump.request()
		} else {
			c.wallJump.request()
		}
	}
	if c.input.Crouch && c.report.StableOnGround {
		c.handleCrouching(true)
	}
	if c.sprintAvailable() && c.report.StableOnGround && c.input.forwardFacing() {
		c.buttons.sprintConsumed = true
		c.transitionTo(&sprintState{})
	}
}

func (*defaultState) beforeUpdate(*Controller, *tickContext) {}

func (*defaultState) updateVelocity(c *Controller, ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	if c.report.StableOnGround {
		speed := c.arch.stableSpeed
		if c.player != nil && c.crouch.crouching {
			speed = c.player.CrouchSpeed()
		}
		v = c.groundMove(ctx, v, speed)
	} else {
		v = c.airMove(ctx, v)
	}

	if c.player != nil {
		if c.jump.pending() {
			v = c.tryJump(ctx, v)
		} else if c.wallJump.phase == WallJumpRequested {
			v = c.tryWallJump(ctx, v)
		}
	}
	return c.consumeVelocityAdd(v)
}

func (*defaultState) afterUpdate(c *Controller, ctx *tickContext) {
	if c.player == nil {
		return
	}

	c.expireJumpRequest()
	c.wallJump.endTick(c.now, c.player.WallJumpCooldownTime)
	c.resetJumpOnContact(ctx)

	if !c.input.Crouch && c.crouch.should {
		c.handleCrouching(false)
	}
	c.handleUncrouching()
}

func (*defaultState) onLanded(c *Controller) {
	c.trySlideRecovery()
}

func (*defaultState) onLeaveStableGround(*Controller) {}

func (*defaultState) onGroundHit(c *Controller) {
	c.trySlideRecovery()
}

func (*defaultState) onMovementHit(*Controller, mgl32.Vec3) {}

// sprintState is fast grounded locomotion. It ends as soon as the character slows down, stops
// moving forward or leaves stable ground.
type sprintState struct{}

func (*sprintState) Kind() StateKind { return StateSprinting }

func (*sprintState) enter(c *Controller, _ StateKind) {
	c.dbg.Notify(DebugModeState, true, "started sprint at %v", c.velocity)
}

func (*sprintState) exit(c *Controller, _ StateKind) {
	c.dbg.Notify(DebugModeState, true, "stopped sprint at %v", c.velocity)
}

func (*sprintState) handleInput(c *Controller, _ *tickContext) {
	if c.takeJump() {
		c.jump.request()
		c.transitionTo(&defaultState{})
		return
	}
	if c.input.Crouch {
		c.transitionTo(&slideState{})
	}
}

func (*sprintState) beforeUpdate(c *Controller, _ *tickContext) {
	if !c.input.forwardFacing() {
		c.transitionTo(&defaultState{})
	}
}

func (*sprintState) updateVelocity(c *Controller, ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	return c.groundMove(ctx, v, c.player.SprintSpeed())
}

func (*sprintState) afterUpdate(c *Controller, _ *tickContext) {
	if c.velocity.Len() <= c.player.SprintVelocityThreshold() {
		c.transitionTo(&defaultState{})
	}
}

func (*sprintState) onLanded(*Controller) {}

func (*sprintState) onLeaveStableGround(c *Controller) {
	c.transitionTo(&defaultState{})
}

func (*sprintState) onGroundHit(*Controller)               {}
func (*sprintState) onMovementHit(*Controller, mgl32.Vec3) {}
