package ai

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// StateKind names the behavior an enemy is in.
type StateKind uint8

const (
	StateIdle StateKind = iota
	StateChasing
	StateFleeing
	StateAttacking
	StateDead
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateChasing:
		return "chasing"
	case StateFleeing:
		return "fleeing"
	case StateAttacking:
		return "attacking"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// arrivalDistance is how close a chasing enemy gets to the last known target position before it
// gives up.
const arrivalDistance = 0.25

type brainState interface {
	Kind() StateKind
	enter(b *Brain)
	exit(b *Brain)
	// spotted is called when the target is in sight this tick, lost when it is not.
	spotted(b *Brain, self mgl32.Vec3)
	lost(b *Brain, self mgl32.Vec3)
	update(b *Brain, self mgl32.Vec3)
	command(b *Brain, self mgl32.Vec3, facing mgl32.Quat) Command
}

// stand returns a command that keeps the enemy in place facing look.
func stand(look mgl32.Quat) Command {
	return Command{Look: look}
}

// moveAlong returns a command that moves the enemy along the planar direction dir at the given
// fraction of full speed.
func moveAlong(dir mgl32.Vec3, speed float32, facing mgl32.Quat) Command {
	dir[1] = 0
	dir, ok := game.SafeNormalize(dir)
	if !ok || speed <= 0 {
		return stand(facing)
	}
	return Command{
		Move:  mgl32.Vec2{0, 1},
		Look:  game.LookRotation(dir, game.Up),
		Speed: min(speed, 1),
	}
}

type idleState struct{}

func (idleState) Kind() StateKind { return StateIdle }
func (idleState) enter(*Brain)    {}
func (idleState) exit(*Brain)     {}

func (idleState) spotted(b *Brain, _ mgl32.Vec3) {
	if b.shouldFlee() {
		b.transitionTo(fleeingState{})
		return
	}
	b.transitionTo(chasingState{})
}

func (idleState) lost(*Brain, mgl32.Vec3)   {}
func (idleState) update(*Brain, mgl32.Vec3) {}

func (idleState) command(_ *Brain, _ mgl32.Vec3, facing mgl32.Quat) Command {
	return stand(facing)
}

// chasingState travels to the last position the target was seen at.
type chasingState struct{}

func (chasingState) Kind() StateKind { return StateChasing }
func (chasingState) enter(*Brain)    {}
func (chasingState) exit(*Brain)     {}

func (chasingState) spotted(b *Brain, self mgl32.Vec3) {
	if b.distanceTo(self, b.target) < b.cfg.AttackRange {
		b.transitionTo(attackingState{})
	}
}

func (chasingState) lost(b *Brain, self mgl32.Vec3) {
	if b.distanceTo(self, b.target) <= arrivalDistance {
		b.transitionTo(idleState{})
	}
}

func (chasingState) update(b *Brain, _ mgl32.Vec3) {
	if b.shouldFlee() {
		b.transitionTo(fleeingState{})
	}
}

func (chasingState) command(b *Brain, self mgl32.Vec3, facing mgl32.Quat) Command {
	return moveAlong(b.target.Sub(self), 1, facing)
}

// fleeingState runs directly away from the target while it is in sight.
type fleeingState struct{}

func (fleeingState) Kind() StateKind            { return StateFleeing }
func (fleeingState) enter(*Brain)               {}
func (fleeingState) exit(*Brain)                {}
func (fleeingState) spotted(*Brain, mgl32.Vec3) {}
func (fleeingState) update(*Brain, mgl32.Vec3)  {}

func (fleeingState) lost(b *Brain, _ mgl32.Vec3) {
	b.transitionTo(idleState{})
}

func (fleeingState) command(b *Brain, self mgl32.Vec3, facing mgl32.Quat) Command {
	return moveAlong(self.Sub(b.target), b.cfg.FleeSpeedScale, facing)
}

// attackingState stands still facing the target for AttackTime, then resumes the chase.
type attackingState struct{}

func (attackingState) Kind() StateKind { return StateAttacking }

func (attackingState) enter(b *Brain) {
	b.sink.SetAttacking(true)
	b.attack = b.cfg.AttackDamage
}

func (attackingState) exit(b *Brain) {
	b.sink.SetAttacking(false)
}

func (attackingState) spotted(*Brain, mgl32.Vec3) {}
func (attackingState) lost(*Brain, mgl32.Vec3)    {}

func (attackingState) update(b *Brain, _ mgl32.Vec3) {
	if b.TimeSinceEnteringState() >= b.cfg.AttackTime {
		b.transitionTo(chasingState{})
	}
}

func (attackingState) command(b *Brain, self mgl32.Vec3, facing mgl32.Quat) Command {
	dir := b.target.Sub(self)
	dir[1] = 0
	if dir, ok := game.SafeNormalize(dir); ok {
		return stand(game.LookRotation(dir, game.Up))
	}
	return stand(facing)
}

// deadState is terminal and never moves.
type deadState struct{}

func (deadState) Kind() StateKind { return StateDead }

func (deadState) enter(b *Brain) {
	b.sink.SetDead()
}

func (deadState) exit(*Brain)                {}
func (deadState) spotted(*Brain, mgl32.Vec3) {}
func (deadState) lost(*Brain, mgl32.Vec3)    {}
func (deadState) update(*Brain, mgl32.Vec3)  {}

func (deadState) command(_ *Brain, _ mgl32.Vec3, facing mgl32.Quat) Command {
	return stand(facing)
}
