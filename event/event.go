package event

import (
	"bytes"

	"github.com/oomph-ac/charsim/internal"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/utils"
)

const EventsVersion = "1"

// Event is something that happened to a character during a world tick.
type Event interface {
	ID() byte
	Encode() []byte

	Tick() uint64
	Character() string
}

// NopEvent carries the fields shared by every event.
type NopEvent struct {
	EvTick      uint64
	EvCharacter string
}

func (n NopEvent) Tick() uint64 {
	return n.EvTick
}

func (n NopEvent) Character() string {
	return n.EvCharacter
}

func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	buf.WriteByte(ev.ID())
	utils.WriteLUint64(buf, ev.Tick())
	utils.WriteString(buf, ev.Character())
}

// EncodeEvents concatenates the encodings of events.
func EncodeEvents(events []Event) []byte {
	var out []byte
	for _, ev := range events {
		out = append(out, ev.Encode()...)
	}
	return out
}

func DecodeEvents(dat []byte) ([]Event, error) {
	r := utils.NewReader(dat)
	events := []Event{}
	for r.Len() > 0 {
		ev, err := DecodeEvent(r)
		if err != nil {
			return events, oerror.New("error decoding event %d: %v", len(events), err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func DecodeEvent(r *utils.Reader) (Event, error) {
	id := r.Byte()
	nop := NopEvent{EvTick: r.Uint64(), EvCharacter: r.String()}

	var ev Event
	switch id {
	case EventIDTick:
		ev = TickEvent{NopEvent: nop, Characters: int(r.Int32())}
	case EventIDMovement:
		ev = MovementEvent{NopEvent: nop, Amount: r.Float32()}
	case EventIDWalk:
		ev = WalkEvent{NopEvent: nop, Walking: r.Bool()}
	case EventIDCrouch:
		ev = CrouchEvent{NopEvent: nop, Crouching: r.Bool()}
	case EventIDSlide:
		ev = SlideEvent{NopEvent: nop, Sliding: r.Bool()}
	case EventIDState:
		from := r.Byte()
		ev = StateEvent{NopEvent: nop, From: motion.StateKind(from), To: motion.StateKind(r.Byte())}
	case EventIDJump:
		wall := r.Bool()
		ev = JumpEvent{NopEvent: nop, Wall: wall, Velocity: r.Vec3()}
	case EventIDLand:
		ev = LandEvent{NopEvent: nop, Velocity: r.Vec3()}
	case EventIDAttack:
		ev = AttackEvent{NopEvent: nop, Attacking: r.Bool()}
	case EventIDDeath:
		ev = DeathEvent{NopEvent: nop}
	default:
		if r.Err() != nil {
			return nil, r.Err()
		}
		return nil, oerror.New("unknown event: %d", id)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ev, nil
}

// encode writes the header of ev followed by its body into a pooled buffer and returns a copy.
func encode(ev Event, body func(buf *bytes.Buffer)) []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	WriteEventHeader(ev, buf)
	if body != nil {
		body(buf)
	}
	return bytes.Clone(buf.Bytes())
}

const (
	_ = iota
	EventIDTick
	EventIDMovement
	EventIDWalk
	EventIDCrouch
	EventIDSlide
	EventIDState
	EventIDJump
	EventIDLand
	EventIDAttack
	EventIDDeath
)
