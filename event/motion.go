package event

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/utils"
)

// StateEvent is emitted after a controller finishes a state transition.
type StateEvent struct {
	NopEvent

	From, To motion.StateKind
}

func (StateEvent) ID() byte {
	return EventIDState
}

func (ev StateEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		buf.WriteByte(byte(ev.From))
		buf.WriteByte(byte(ev.To))
	})
}

// JumpEvent is emitted when a jump or wall jump is honored. Velocity is the velocity right after
// the jump was applied.
type JumpEvent struct {
	NopEvent

	Wall     bool
	Velocity mgl32.Vec3
}

func (JumpEvent) ID() byte {
	return EventIDJump
}

func (ev JumpEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteBool(buf, ev.Wall)
		utils.WriteVec3(buf, ev.Velocity)
	})
}

// LandEvent is emitted when a character regains stable ground. Velocity is the velocity it landed
// with.
type LandEvent struct {
	NopEvent

	Velocity mgl32.Vec3
}

func (LandEvent) ID() byte {
	return EventIDLand
}

func (ev LandEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteVec3(buf, ev.Velocity)
	})
}
