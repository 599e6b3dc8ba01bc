package motion

import "github.com/go-gl/mathgl/mgl32"

// AnimationSink receives scalar and boolean state derived from the controller. Calls are made only
// when a value changes and nothing is read back.
type AnimationSink interface {
	SetMovement(amount float32)
	SetWalking(walking bool)
	SetCrouch(crouching bool)
	SetSlide(sliding bool)
}

// Observer is optionally implemented by an AnimationSink that also wants discrete motion events.
type Observer interface {
	StateChanged(from, to StateKind)
	Jumped(wall bool, velocity mgl32.Vec3)
	Landed(velocity mgl32.Vec3)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) SetMovement(float32) {}
func (NopSink) SetWalking(bool)     {}
func (NopSink) SetCrouch(bool)      {}
func (NopSink) SetSlide(bool)       {}

// animationState remembers the last values sent to the sink.
type animationState struct {
	movement float32
	walking  bool
	crouch   bool
	slide    bool
}

func (c *Controller) setMovement(amount float32) {
	if amount == c.anim.movement {
		return
	}
	c.anim.movement = amount
	c.sink.SetMovement(amount)
}

func (c *Controller) setWalking(walking bool) {
	if walking == c.anim.walking {
		return
	}
	c.anim.walking = walking
	c.sink.SetWalking(walking)
}

func (c *Controller) setCrouch(crouching bool) {
	if crouching == c.anim.crouch {
		return
	}
	c.anim.crouch = crouching
	c.sink.SetCrouch(crouching)
}

func (c *Controller) setSlide(sliding bool) {
	if sliding == c.anim.slide {
		return
	}
	c.anim.slide = sliding
	c.sink.SetSlide(sliding)
}
