// Package ai drives enemy controllers. A Brain turns what an enemy perceives into the move and look
// input of its motion controller.
package ai

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/assert"
	"github.com/oomph-ac/charsim/game"
	"github.com/sirupsen/logrus"
)

// Config holds the tuning of a melee enemy.
type Config struct {
	MaxHealth    float32
	AttackRange  float32
	AttackDamage float32
	AttackTime   float32
	// FleeHealthFraction is the fraction of MaxHealth below which the enemy runs away.
	FleeHealthFraction float32
	SightRange         float32
	// FleeSpeedScale is the fraction of full speed the enemy flees at.
	FleeSpeedScale float32
}

func DefaultConfig() Config {
	return Config{
		MaxHealth:          game.DefaultEnemyMaxHealth,
		AttackRange:        game.DefaultMeleeAttackRange,
		AttackDamage:       game.DefaultMeleeAttackDamage,
		AttackTime:         game.DefaultMeleeAttackTime,
		FleeHealthFraction: game.DefaultFleeHealthFraction,
		SightRange:         game.DefaultEnemySightRange,
		FleeSpeedScale:     game.DefaultEnemyFleeSpeedScale,
	}
}

// Sink receives the animation state the AI owns.
type Sink interface {
	SetAttacking(attacking bool)
	SetDead()
}

type nopSink struct{}

func (nopSink) SetAttacking(bool) {}
func (nopSink) SetDead()          {}

// Perception is what the enemy knows about its target this tick.
type Perception struct {
	TargetVisible  bool
	TargetPosition mgl32.Vec3
}

// Command is the controller input produced by a Brain.
type Command struct {
	// Move is relative to Look, like a player's move input.
	Move mgl32.Vec2
	Look mgl32.Quat
	// Speed is the fraction of full speed to move at.
	Speed float32
	// Attack is the damage of an attack started this tick, or zero.
	Attack float32
}

// Brain is the AI state machine of one enemy.
type Brain struct {
	cfg    Config
	status *Status
	sink   Sink
	log    logrus.FieldLogger

	state            brainState
	previousState    StateKind
	now              float32
	timeEnteredState float32
	transitioning    bool
	pending          [2]StateKind

	target    mgl32.Vec3
	hasTarget bool
	attack    float32
}

// NewBrain returns an idle brain. sink and log may be nil.
func NewBrain(cfg Config, sink Sink, log logrus.FieldLogger) *Brain {
	if sink == nil {
		sink = nopSink{}
	}
	return &Brain{
		cfg:    cfg,
		status: NewStatus(cfg.MaxHealth),
		sink:   sink,
		log:    log,
		state:  idleState{},
	}
}

// Think advances the brain by dt and returns the input for the enemy's controller. self and facing
// are the enemy's current position and rotation.
func (b *Brain) Think(self mgl32.Vec3, facing mgl32.Quat, p Perception, dt float32) Command {
	hold := Command{Look: facing}
	if !game.ValidFloat(dt) || dt <= 0 || !game.ValidVec3(self) {
		return hold
	}
	b.now += dt
	b.attack = 0

	if b.status.Dead() {
		b.transitionTo(deadState{})
	}
	if p.TargetVisible && game.ValidVec3(p.TargetPosition) && b.distanceTo(self, p.TargetPosition) <= b.cfg.SightRange {
		b.target = p.TargetPosition
		b.hasTarget = true
		b.state.spotted(b, self)
	} else {
		b.state.lost(b, self)
	}
	b.state.update(b, self)

	cmd := b.state.command(b, self, facing)
	cmd.Attack = b.attack
	return cmd
}

// TakeDamage applies damage to the enemy. The brain switches to Dead on its next Think.
func (b *Brain) TakeDamage(damage float32) bool {
	return b.status.TakeDamage(damage)
}

func (b *Brain) transitionTo(next brainState) {
	from := b.state.Kind()
	if from == StateDead || from == next.Kind() {
		return
	}
	assert.IsTrue(!b.transitioning, game.ErrorReentrantTransition, from, next.Kind(), b.pending[0], b.pending[1])
	b.transitioning = true
	b.pending = [2]StateKind{from, next.Kind()}
	defer func() { b.transitioning = false }()

	b.state.exit(b)
	b.previousState = from
	b.state = next
	b.timeEnteredState = b.now
	next.enter(b)

	if b.log != nil {
		b.log.WithFields(logrus.Fields{"from": from, "to": next.Kind(), "health": b.status.Health()}).Debug("ai transition")
	}
}

// distanceTo is the planar distance from self to pos.
func (b *Brain) distanceTo(self, pos mgl32.Vec3) float32 {
	d := pos.Sub(self)
	d[1] = 0
	return d.Len()
}

// shouldFlee reports whether health is low enough to run away.
func (b *Brain) shouldFlee() bool {
	return b.status.Fraction() < b.cfg.FleeHealthFraction
}

func (b *Brain) State() StateKind {
	return b.state.Kind()
}

func (b *Brain) PreviousState() StateKind {
	return b.previousState
}

func (b *Brain) TimeSinceEnteringState() float32 {
	return b.now - b.timeEnteredState
}

func (b *Brain) Status() *Status {
	return b.status
}

// Target returns the last position the target was seen at.
func (b *Brain) Target() (mgl32.Vec3, bool) {
	return b.target, b.hasTarget
}
