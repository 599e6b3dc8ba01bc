package motion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// Input is everything a controller consumes for one tick.
type Input struct {
	// Move is the normalized move vector: X strafes right, Y moves forward.
	Move mgl32.Vec2
	// Look is the camera rotation for players, or the desired look rotation for enemies.
	Look mgl32.Quat

	// Button states as currently held. A held button counts as one press until it is released.
	Jump   bool
	Sprint bool
	Crouch bool
	Walk   bool

	// SpeedScale scales the normalized move vector when it is within (0, 1). Zero moves at full
	// speed.
	SpeedScale float32

	// Grounding is the contact state produced by the previous tick's movement.
	Grounding GroundingReport
	// Position is the motor's current position.
	Position mgl32.Vec3

	// DeltaTime is the elapsed time of this tick in seconds.
	DeltaTime float32
}

// forwardFacing reports whether the move input points forward.
func (in Input) forwardFacing() bool {
	return in.Move.Y() > 0
}

// valid reports whether the input can be simulated. Inputs that are not valid are skipped.
func (in Input) valid() bool {
	if !game.ValidFloat(in.DeltaTime) || in.DeltaTime <= 0 {
		return false
	}
	if !game.ValidFloat(in.Move.X()) || !game.ValidFloat(in.Move.Y()) {
		return false
	}
	if !game.ValidFloat(in.SpeedScale) || in.SpeedScale < 0 {
		return false
	}
	if !game.ValidFloat(in.Look.W) || !game.ValidVec3(in.Look.V) {
		return false
	}
	return game.ValidVec3(in.Position)
}

// buttonLatch turns held button states into presses. A press is available until something uses
// it, after which the button has to be released before it counts again.
type buttonLatch struct {
	jumpConsumed   bool
	sprintConsumed bool
}

// release frees the presses of buttons that are no longer held.
func (l *buttonLatch) release(in Input) {
	if !in.Jump {
		l.jumpConsumed = false
	}
	if !in.Sprint {
		l.sprintConsumed = false
	}
}

// takeJump consumes an available jump press.
func (c *Controller) takeJump() bool {
	if !c.input.Jump || c.buttons.jumpConsumed {
		return false
	}
	c.buttons.jumpConsumed = true
	return true
}

// sprintAvailable reports whether a sprint press is waiting to be used.
func (c *Controller) sprintAvailable() bool {
	return c.input.Sprint && !c.buttons.sprintConsumed
}
