package ai

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

const dt = float32(1) / 60

type recordingSink struct {
	attacking []bool
	deaths    int
}

func (s *recordingSink) SetAttacking(attacking bool) { s.attacking = append(s.attacking, attacking) }
func (s *recordingSink) SetDead()                    { s.deaths++ }

func seen(pos mgl32.Vec3) Perception {
	return Perception{TargetVisible: true, TargetPosition: pos}
}

func TestStatus(t *testing.T) {
	s := NewStatus(100)
	if s.TakeDamage(30) || s.Health() != 70 {
		t.Fatalf("expected 70 health, got %v", s.Health())
	}
	s.TakeDamage(-10)
	s.TakeDamage(math32.NaN())
	if s.Health() != 70 {
		t.Fatalf("expected invalid damage to be ignored, got %v", s.Health())
	}
	if !s.TakeDamage(70) || !s.Dead() {
		t.Fatalf("expected death at zero health")
	}
	if s.Fraction() != 0 {
		t.Fatalf("expected zero health fraction, got %v", s.Fraction())
	}
}

func TestIdleUntilSpotted(t *testing.T) {
	b := NewBrain(DefaultConfig(), nil, nil)
	cmd := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), Perception{}, dt)
	if b.State() != StateIdle || cmd.Move != (mgl32.Vec2{}) {
		t.Fatalf("expected to idle in place, got %v %v", b.State(), cmd.Move)
	}

	// Out of sight range.
	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(mgl32.Vec3{0, 0, 100}), dt)
	if b.State() != StateIdle {
		t.Fatalf("expected a distant target to be ignored, got %v", b.State())
	}
}

func TestChaseTowardsTarget(t *testing.T) {
	b := NewBrain(DefaultConfig(), nil, nil)
	target := mgl32.Vec3{5, 0, 0}
	cmd := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	if b.State() != StateChasing {
		t.Fatalf("expected to chase, got %v", b.State())
	}
	if cmd.Move != (mgl32.Vec2{0, 1}) {
		t.Fatalf("expected forward move input, got %v", cmd.Move)
	}
	if dir := cmd.Look.Rotate(game.Forward); dir.Sub(mgl32.Vec3{1, 0, 0}).Len() > 1e-4 {
		t.Fatalf("expected to look at the target, got %v", dir)
	}

	// Losing sight keeps the chase going towards the last known position.
	cmd = b.Think(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), Perception{}, dt)
	if b.State() != StateChasing || cmd.Move.Y() != 1 {
		t.Fatalf("expected to keep chasing, got %v %v", b.State(), cmd.Move)
	}
	b.Think(mgl32.Vec3{4.9, 0, 0}, mgl32.QuatIdent(), Perception{}, dt)
	if b.State() != StateIdle {
		t.Fatalf("expected to give up at the last known position, got %v", b.State())
	}
}

func TestMeleeAttack(t *testing.T) {
	cfg := DefaultConfig()
	sink := &recordingSink{}
	b := NewBrain(cfg, sink, nil)
	target := mgl32.Vec3{0, 0, 1}

	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	cmd := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	if b.State() != StateAttacking {
		t.Fatalf("expected to attack within range, got %v", b.State())
	}
	if cmd.Move != (mgl32.Vec2{}) || cmd.Attack != cfg.AttackDamage {
		t.Fatalf("expected a stationary attack dealing %v, got %+v", cfg.AttackDamage, cmd)
	}

	ticks := 0
	for b.State() == StateAttacking {
		cmd = b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
		if cmd.Attack != 0 && b.State() == StateAttacking {
			t.Fatalf("expected a single attack per attacking state")
		}
		ticks++
		if ticks > 100 {
			t.Fatalf("expected the attack to end")
		}
	}
	if want := int(math32.Ceil(cfg.AttackTime / dt)); ticks < want-1 || ticks > want+1 {
		t.Fatalf("expected the attack to last about %d ticks, got %d", want, ticks)
	}
	if b.State() != StateChasing {
		t.Fatalf("expected to resume the chase, got %v", b.State())
	}
	if len(sink.attacking) != 2 || !sink.attacking[0] || sink.attacking[1] {
		t.Fatalf("expected attacking calls [true false], got %v", sink.attacking)
	}
}

func TestFleeOnLowHealth(t *testing.T) {
	b := NewBrain(DefaultConfig(), nil, nil)
	target := mgl32.Vec3{0, 0, 5}
	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)

	b.TakeDamage(85)
	cmd := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	if b.State() != StateFleeing {
		t.Fatalf("expected to flee, got %v", b.State())
	}
	if dir := cmd.Look.Rotate(game.Forward); dir.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-4 || cmd.Move.Y() <= 0 {
		t.Fatalf("expected to run away from the target, got look %v move %v", dir, cmd.Move)
	}
	if cmd.Speed != DefaultConfig().FleeSpeedScale {
		t.Fatalf("expected to flee at %v of full speed, got %v", DefaultConfig().FleeSpeedScale, cmd.Speed)
	}

	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), Perception{}, dt)
	if b.State() != StateIdle {
		t.Fatalf("expected to calm down once the target is out of sight, got %v", b.State())
	}
	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	if b.State() != StateFleeing {
		t.Fatalf("expected a wounded enemy to flee on sight, got %v", b.State())
	}
}

func TestFleeSpeedScale(t *testing.T) {
	tests := []struct {
		scale float32
		want  float32
	}{
		{scale: 0.25, want: 0.25},
		{scale: 1, want: 1},
		{scale: 3, want: 1},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.FleeSpeedScale = tt.scale
		b := NewBrain(cfg, nil, nil)
		target := mgl32.Vec3{0, 0, 5}

		chase := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
		if b.State() != StateChasing || chase.Speed != 1 {
			t.Fatalf("scale %v: expected to chase at full speed, got %v %v", tt.scale, b.State(), chase.Speed)
		}
		b.TakeDamage(85)
		flee := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
		if b.State() != StateFleeing || flee.Speed != tt.want || flee.Move != (mgl32.Vec2{0, 1}) {
			t.Fatalf("scale %v: expected to flee at %v, got %v %+v", tt.scale, tt.want, b.State(), flee)
		}
	}
}

func TestDeathIsTerminal(t *testing.T) {
	sink := &recordingSink{}
	b := NewBrain(DefaultConfig(), sink, nil)
	target := mgl32.Vec3{0, 0, 1}
	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
	if b.State() != StateAttacking {
		t.Fatalf("expected to attack, got %v", b.State())
	}

	b.TakeDamage(1000)
	for i := 0; i < 10; i++ {
		cmd := b.Think(mgl32.Vec3{}, mgl32.QuatIdent(), seen(target), dt)
		if b.State() != StateDead {
			t.Fatalf("expected to stay dead, got %v", b.State())
		}
		if cmd.Move != (mgl32.Vec2{}) || cmd.Attack != 0 {
			t.Fatalf("expected a dead enemy not to act, got %+v", cmd)
		}
	}
	if sink.deaths != 1 {
		t.Fatalf("expected a single death call, got %d", sink.deaths)
	}
	if len(sink.attacking) != 2 || sink.attacking[1] {
		t.Fatalf("expected dying mid-attack to stop the attack, got %v", sink.attacking)
	}
	if b.PreviousState() != StateAttacking {
		t.Fatalf("expected to die from the attacking state, got %v", b.PreviousState())
	}
}

func TestInvalidDeltaTimeHolds(t *testing.T) {
	b := NewBrain(DefaultConfig(), nil, nil)
	facing := mgl32.QuatRotate(1, game.Up)
	cmd := b.Think(mgl32.Vec3{}, facing, seen(mgl32.Vec3{0, 0, 5}), math32.NaN())
	if b.State() != StateIdle || cmd.Look != facing || cmd.Move != (mgl32.Vec2{}) {
		t.Fatalf("expected invalid input to be ignored, got %v %+v", b.State(), cmd)
	}
}
