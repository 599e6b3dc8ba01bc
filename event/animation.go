package event

import (
	"bytes"

	"github.com/oomph-ac/charsim/utils"
)

// MovementEvent is emitted when a character's movement input magnitude changes.
type MovementEvent struct {
	NopEvent

	Amount float32
}

func (MovementEvent) ID() byte {
	return EventIDMovement
}

func (ev MovementEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteLFloat32(buf, ev.Amount)
	})
}

type WalkEvent struct {
	NopEvent

	Walking bool
}

func (WalkEvent) ID() byte {
	return EventIDWalk
}

func (ev WalkEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteBool(buf, ev.Walking)
	})
}

type CrouchEvent struct {
	NopEvent

	Crouching bool
}

func (CrouchEvent) ID() byte {
	return EventIDCrouch
}

func (ev CrouchEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteBool(buf, ev.Crouching)
	})
}

type SlideEvent struct {
	NopEvent

	Sliding bool
}

func (SlideEvent) ID() byte {
	return EventIDSlide
}

func (ev SlideEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteBool(buf, ev.Sliding)
	})
}

// AttackEvent is emitted by an enemy's AI when it starts or stops a melee attack.
type AttackEvent struct {
	NopEvent

	Attacking bool
}

func (AttackEvent) ID() byte {
	return EventIDAttack
}

func (ev AttackEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteBool(buf, ev.Attacking)
	})
}

// DeathEvent is emitted once when an enemy dies.
type DeathEvent struct {
	NopEvent
}

func (DeathEvent) ID() byte {
	return EventIDDeath
}

func (ev DeathEvent) Encode() []byte {
	return encode(ev, nil)
}
