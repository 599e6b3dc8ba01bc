package event

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/motion"
)

// Sink collects the animation calls and motion events of a single character. Characters tick
// concurrently, so each one writes to its own Sink and the world flushes them to the Bus in a fixed
// order once every character has ticked.
type Sink struct {
	character string
	tick      uint64
	events    []Event
}

func NewSink(character string) *Sink {
	return &Sink{character: character}
}

// SetTick sets the world tick stamped on events added from now on.
func (s *Sink) SetTick(tick uint64) {
	s.tick = tick
}

func (s *Sink) nop() NopEvent {
	return NopEvent{EvTick: s.tick, EvCharacter: s.character}
}

func (s *Sink) add(ev Event) {
	s.events = append(s.events, ev)
}

func (s *Sink) SetMovement(amount float32) {
	s.add(MovementEvent{NopEvent: s.nop(), Amount: amount})
}

func (s *Sink) SetWalking(walking bool) {
	s.add(WalkEvent{NopEvent: s.nop(), Walking: walking})
}

func (s *Sink) SetCrouch(crouching bool) {
	s.add(CrouchEvent{NopEvent: s.nop(), Crouching: crouching})
}

func (s *Sink) SetSlide(sliding bool) {
	s.add(SlideEvent{NopEvent: s.nop(), Sliding: sliding})
}

func (s *Sink) StateChanged(from, to motion.StateKind) {
	s.add(StateEvent{NopEvent: s.nop(), From: from, To: to})
}

func (s *Sink) Jumped(wall bool, velocity mgl32.Vec3) {
	s.add(JumpEvent{NopEvent: s.nop(), Wall: wall, Velocity: velocity})
}

func (s *Sink) Landed(velocity mgl32.Vec3) {
	s.add(LandEvent{NopEvent: s.nop(), Velocity: velocity})
}

func (s *Sink) SetAttacking(attacking bool) {
	s.add(AttackEvent{NopEvent: s.nop(), Attacking: attacking})
}

func (s *Sink) SetDead() {
	s.add(DeathEvent{NopEvent: s.nop()})
}

// Pending returns the number of buffered events.
func (s *Sink) Pending() int {
	return len(s.events)
}

// Discard drops the buffered events.
func (s *Sink) Discard() {
	clear(s.events)
	s.events = s.events[:0]
}

// Flush publishes the buffered events to bus and empties the buffer. It returns the events that
// were published; the slice is reused once the sink receives another event.
func (s *Sink) Flush(bus *Bus) []Event {
	flushed := s.events
	bus.Publish(flushed...)
	s.events = s.events[:0]
	return flushed
}

var (
	_ motion.AnimationSink = (*Sink)(nil)
	_ motion.Observer      = (*Sink)(nil)
)
