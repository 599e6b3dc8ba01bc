package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// JumpPhase is the lifecycle of a jump request.
type JumpPhase uint8

const (
	// JumpIdle has no pending request and a jump available.
	JumpIdle JumpPhase = iota
	// JumpRequested has a pending request and a jump available.
	JumpRequested
	// JumpConsumed has used its jump and waits for ground contact.
	JumpConsumed
	// JumpBuffered has a pending request made while the jump was still consumed.
	JumpBuffered
)

func (p JumpPhase) String() string {
	switch p {
	case JumpIdle:
		return "idle"
	case JumpRequested:
		return "requested"
	case JumpConsumed:
		return "consumed"
	case JumpBuffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// jumpArbiter owns the jump request/consumed state as a single phase value.
type jumpArbiter struct {
	phase JumpPhase
}

func (j *jumpArbiter) request() {
	switch j.phase {
	case JumpIdle:
		j.phase = JumpRequested
	case JumpConsumed:
		j.phase = JumpBuffered
	}
}

// pending reports whether a request is waiting to be honored or to expire.
func (j *jumpArbiter) pending() bool {
	return j.phase == JumpRequested || j.phase == JumpBuffered
}

// honorable reports whether a pending request can be honored now.
func (j *jumpArbiter) honorable() bool {
	return j.phase == JumpRequested
}

func (j *jumpArbiter) consume() {
	j.phase = JumpConsumed
}

// expire drops a pending request whose grace period elapsed.
func (j *jumpArbiter) expire() {
	switch j.phase {
	case JumpRequested:
		j.phase = JumpIdle
	case JumpBuffered:
		j.phase = JumpConsumed
	}
}

// groundContact makes a consumed jump available again.
func (j *jumpArbiter) groundContact() {
	switch j.phase {
	case JumpConsumed:
		j.phase = JumpIdle
	case JumpBuffered:
		j.phase = JumpRequested
	}
}

// WallJumpPhase is the lifecycle of a wall-jump request.
type WallJumpPhase uint8

const (
	WallJumpIdle WallJumpPhase = iota
	WallJumpRequested
	WallJumpConsumed
)

func (p WallJumpPhase) String() string {
	switch p {
	case WallJumpIdle:
		return "idle"
	case WallJumpRequested:
		return "requested"
	case WallJumpConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// wallJumpArbiter owns the wall-jump request/consumed state. A request only lives for the tick it
// was made in; a consumed wall jump becomes available again after a cooldown.
type wallJumpArbiter struct {
	phase      WallJumpPhase
	consumedAt float32
}

func (w *wallJumpArbiter) request() {
	if w.phase == WallJumpIdle {
		w.phase = WallJumpRequested
	}
}

func (w *wallJumpArbiter) consume(now float32) {
	w.phase = WallJumpConsumed
	w.consumedAt = now
}

// endTick drops an unhonored request and releases the cooldown once it elapsed.
func (w *wallJumpArbiter) endTick(now, cooldown float32) {
	switch w.phase {
	case WallJumpRequested:
		w.phase = WallJumpIdle
	case WallJumpConsumed:
		if now-w.consumedAt >= cooldown {
			w.phase = WallJumpIdle
		}
	}
}

// jumpSpeed is the launch speed needed to reach height under the controller's gravity.
func (c *Controller) jumpSpeed(height float32) float32 {
	return math32.Sqrt(2 * height * c.arch.gravity.Len())
}

// tryJump honors a pending jump request if the character has any ground contact. The vertical
// component of v is replaced by the jump speed along the character up, or along the ground normal
// when the ground is unstable.
func (c *Controller) tryJump(ctx *tickContext, v mgl32.Vec3) mgl32.Vec3 {
	if !c.jump.honorable() {
		c.dbg.Notify(DebugModeJump, c.jump.pending(), "jump request not honorable (phase=%v)", c.jump.phase)
		return v
	}
	if !c.report.FoundAnyGround {
		return v
	}

	up := c.up()
	dir := up
	if !c.report.StableOnGround {
		dir = game.NormalizeOr(c.report.GroundNormal, up)
	}
	c.forceUnground = true

	v = v.Add(dir.Mul(c.jumpSpeed(c.player.JumpHeight))).Sub(game.Project(v, up))
	c.jump.consume()
	c.airborneSinceJump = false
	ctx.jumped = true

	c.dbg.Notify(DebugModeJump, true, "jumped (dir=%v stable=%v): %v", dir, c.report.StableOnGround, v)
	if c.observer != nil {
		c.observer.Jumped(false, v)
	}
	return v
}

// expireJumpRequest drops a pending jump once the character has been off stable ground for longer
// than the jump grace window.
func (c *Controller) expireJumpRequest() {
	if c.jump.pending() && c.TimeSinceGrounded() >= c.player.JumpCooldownTime {
		c.dbg.Notify(DebugModeJump, true, "jump request expired after %.3fs", c.TimeSinceGrounded())
		c.jump.expire()
	}
}

// resetJumpOnContact makes the jump available again on the first ground contact after the
// character actually left the ground. Requests made while still on the ground the jump was taken
// from are dropped, so one contact yields at most one jump.
func (c *Controller) resetJumpOnContact(ctx *tickContext) {
	if !c.report.FoundAnyGround {
		return
	}
	switch {
	case ctx.jumped:
		if c.crouch.should {
			c.handleCrouching(false)
		}
	case c.airborneSinceJump:
		c.jump.groundContact()
	case c.jump.phase == JumpBuffered:
		c.dbg.Notify(DebugModeJump, true, "dropped jump request made during the same ground contact")
		c.jump.expire()
	}
}
