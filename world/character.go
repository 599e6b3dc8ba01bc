package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/ai"
	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/probe"
)

// Controls is the input a player holds for the next tick.
type Controls struct {
	Move   mgl32.Vec2
	Look   mgl32.Quat
	Jump   bool
	Sprint bool
	Crouch bool
	Walk   bool
}

// Spawn describes where and how a character enters the world.
type Spawn struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	// Ignore lists the owners of boxes the character passes through and does not probe.
	Ignore   []string
	Debugger *motion.Debugger
}

// Character is a controller together with the body the world moves for it.
type Character struct {
	id    string
	ctrl  *motion.Controller
	brain *ai.Brain
	sink  *event.Sink
	view  *probe.View

	position  mgl32.Vec3
	grounding motion.GroundingReport
	controls  Controls
	result    motion.Result

	// attack is the damage of an attack started during the last tick.
	attack float32
	// completed is cleared when a tick starts and set when it finishes without panicking.
	completed bool
}

func (ch *Character) ID() string {
	return ch.id
}

func (ch *Character) Position() mgl32.Vec3 {
	return ch.position
}

func (ch *Character) Controller() *motion.Controller {
	return ch.ctrl
}

// Brain returns the AI of an enemy, or nil for players.
func (ch *Character) Brain() *ai.Brain {
	return ch.brain
}

// Grounding returns the contact state that will be passed to the next tick.
func (ch *Character) Grounding() motion.GroundingReport {
	return ch.grounding
}

func (ch *Character) Result() motion.Result {
	return ch.result
}

// eye is the point enemies look from and at.
func (ch *Character) eye() mgl32.Vec3 {
	return ch.position.Add(mgl32.Vec3{0, ch.result.Capsule.YOffset, 0})
}

// step runs one tick of the character. It only touches the character itself, so steps of different
// characters may run concurrently.
func (ch *Character) step(tick uint64, perception ai.Perception, dt, snap float32) {
	ch.completed = false
	ch.attack = 0
	ch.sink.SetTick(tick)

	in := motion.Input{
		Grounding: ch.grounding,
		Position:  ch.position,
		DeltaTime: dt,
	}
	if ch.brain != nil {
		cmd := ch.brain.Think(ch.position, ch.ctrl.Rotation(), perception, dt)
		in.Move, in.Look, in.SpeedScale = cmd.Move, cmd.Look, cmd.Speed
		ch.attack = cmd.Attack
	} else {
		in.Move, in.Look = ch.controls.Move, ch.controls.Look
		in.Jump, in.Sprint, in.Crouch, in.Walk = ch.controls.Jump, ch.controls.Sprint, ch.controls.Crouch, ch.controls.Walk
	}

	ch.result = ch.ctrl.Tick(in)
	ch.move(dt, snap)
	ch.completed = true
}
