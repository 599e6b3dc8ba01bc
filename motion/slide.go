package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// slideState is the slide mechanic. A fresh value is created for every slide so that no slide data
// outlives the slide it belongs to.
type slideState struct {
	// direction is the camera-relative input direction captured when the slide started.
	direction mgl32.Vec3
	// started is true until the first stable tick of the slide applied the launch speed.
	started bool
	// recovering is true when the slide was caused by a high speed landing.
	recovering bool
	// unstable is true once the slope grace period has elapsed.
	unstable bool
}

func (*slideState) Kind() StateKind { return StateSliding }

func (s *slideState) enter(c *Controller, from StateKind) {
	c.maxStableSlopeAngle = c.player.SlideSlopeGraceAngle
	s.unstable = false

	move := game.NormalizeOrZero(mgl32.Vec3{c.input.Move.X(), 0, c.input.Move.Y()})
	s.direction = game.PlanarRotation(c.input.Look, c.up()).Rotate(move)
	s.started = true

	c.handleCrouching(true)
	c.setSlide(true)
	c.dbg.Notify(DebugModeSlide, true, "slide started from %v (recovering=%v direction=%v)", from, s.recovering, s.direction)
}

func (s *slideState) exit(c *Controller, to StateKind) {
	c.maxStableSlopeAngle = c.arch.maxStableSlopeAngle
	if !c.report.StableOnGround || !c.input.Crouch {
		c.handleCrouching(false)
	}
	c.setSlide(false)
	c.dbg.Notify(DebugModeSlide, true, "slide ended into %v after %.3fs at %v", to, c.TimeSinceEnteringState(), c.velocity)
}

func (*slideState) handleInput(c *Controller, _ *tickContext) {
	if c.report.FoundAnyGround && c.takeJump() {
		c.jump.request()
	}
}

func (*slideState) beforeUpdate(*Controller, *tickContext) {}

func (s *slideState) updateVelocity(c *Controller, ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	if c.report.StableOnGround {
		return s.stableVelocity(c, ctx, v)
	}

	if !c.report.FoundAnyGround {
		v = v.Add(c.arch.gravity.Mul(ctx.dt))
	} else {
		normal := c.groundNormal()
		v = game.ReorientOnSurface(v, normal, c.up())
		v = s.steer(c, ctx, v, normal, c.player.SlideRotationDegreesPerSecondUnstable)
		v = c.tryJump(ctx, v)
		v = c.slideGravity(ctx, v, normal)
	}
	return v.Mul(1 / (1 + c.player.Drag*ctx.dt))
}

// stableVelocity is the slide on walkable ground. The first stable tick launches the slide along
// the captured direction, after which velocity can only be steered at a limited rate.
func (s *slideState) stableVelocity(c *Controller, ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	normal := c.groundNormal()
	v = game.ReorientOnSurface(v, normal, c.up())

	if s.started {
		if s.recovering {
			v = v.Mul(c.player.SlideRecoverySpeedMultiplier)
		} else {
			launch := c.reorientInput(s.direction, normal)
			v = launch.Mul(v.Len() * c.player.SlideSpeedMultiplier)
		}
		c.dbg.Notify(DebugModeSlide, true, "slide launch (recovering=%v): %v", s.recovering, v)
		s.started = false
		s.recovering = false
	}

	v = s.steer(c, ctx, v, normal, c.player.SlideRotationDegreesPerSecondStable)
	v = c.tryJump(ctx, v)
	v = c.slideGravity(ctx, v, normal)
	return v.Mul(1 / (1 + c.player.SlideDrag*ctx.dt))
}

// steer rotates velocity towards the forward-facing move input at a fixed angular rate.
func (*slideState) steer(c *Controller, ctx *tickContext, v, normal mgl32.Vec3, degreesPerSecond float32) mgl32.Vec3 {
	if c.input.Move.Len() <= 0 || c.input.Move.Y() < 0 {
		return v
	}
	target := game.NormalizeOrZero(normal.Cross(c.moveInput.Cross(c.up())))
	return game.RotateTowards(v, target.Mul(v.Len()), normal, mgl32.DegToRad(degreesPerSecond)*ctx.dt, 0)
}

func (s *slideState) afterUpdate(c *Controller, ctx *tickContext) {
	c.expireJumpRequest()
	c.resetJumpOnContact(ctx)

	since := c.TimeSinceEnteringState()
	if !s.unstable {
		if since <= c.player.SlideSlopeGraceTime {
			c.maxStableSlopeAngle = c.player.SlideSlopeGraceAngle
		} else {
			s.unstable = true
			c.maxStableSlopeAngle = c.player.SlideSlopeUnstableAngle
			c.dbg.Notify(DebugModeSlide, true, "slide grace elapsed, max stable slope now %.1f", c.maxStableSlopeAngle)
		}
	}

	threshold := c.player.SlideVelocityThresholdPreGrace
	if since >= c.player.SlideSlopeGraceTime {
		threshold = c.player.SlideVelocityThresholdPostGrace
	}
	if since >= c.player.SlideMinimumDuration && c.velocity.Len() <= threshold {
		c.transitionTo(&defaultState{})
	}
}

func (*slideState) onLanded(*Controller)            {}
func (*slideState) onLeaveStableGround(*Controller) {}
func (*slideState) onGroundHit(*Controller)         {}

// onMovementHit drops the character off a surface that became too steep for the slide.
func (*slideState) onMovementHit(c *Controller, normal mgl32.Vec3) {
	if c.report.StableOnGround && game.Angle(normal, c.up()) > c.maxStableSlopeAngle {
		c.forceUnground = true
		c.dbg.Notify(DebugModeSlide, true, "slide hit steep surface %v, ungrounding", normal)
	}
}

// slideGravity applies the part of gravity that pulls along the slope. Gravity is strengthened
// while the character is still moving up the slope.
func (c *Controller) slideGravity(ctx *tickContext, v, normal mgl32.Vec3) mgl32.Vec3 {
	g := c.arch.gravity
	angle := game.Angle(g, normal)
	component := g.Mul(math32.Sin(mgl32.DegToRad(angle)) * c.player.SlideGravityAccelerationFactor)

	up := c.up()
	if v.Dot(up) >= 0 {
		vertical := game.Project(component, up)
		component = component.Sub(vertical).Add(vertical.Mul(c.player.SlideGravityUpwardMotionMultiplier))
	}
	return v.Add(component.Mul(ctx.dt))
}

// trySlideRecovery starts an involuntary slide when the character lands too fast.
func (c *Controller) trySlideRecovery() {
	if c.player == nil {
		return
	}

	speed := c.velocity.Len()
	crouched := c.crouch.crouching || c.input.Crouch
	switch {
	case crouched && speed >= c.player.CrouchingSlideOnLandVelocityThreshold():
		c.transitionTo(&slideState{recovering: true})
	case !c.crouch.crouching && speed >= c.player.StandingSlideOnLandVelocityThreshold():
		c.transitionTo(&slideState{recovering: true})
	}
}
