package motion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestWallJumpEligibility(t *testing.T) {
	tests := []struct {
		name   string
		move   mgl32.Vec2
		normal mgl32.Vec3
		want   bool
	}{
		{name: "moving along and away from a wall", move: mgl32.Vec2{1, -0.3}, normal: mgl32.Vec3{0, 0, -1}, want: true},
		{name: "moving into the wall", move: mgl32.Vec2{0, 1}, normal: mgl32.Vec3{0, 0, -1}, want: false},
		{name: "surface too flat", move: mgl32.Vec2{1, -0.3}, normal: mgl32.Vec3{0, 1, 0}, want: false},
		{name: "overhang", move: mgl32.Vec2{1, -0.3}, normal: mgl32.Vec3{0, -0.5, -1}.Normalize(), want: false},
		{name: "no move input", move: mgl32.Vec2{}, normal: mgl32.Vec3{0, 0, -1}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlayerConfig()
			sink := &recordingSink{}
			probes := &mockProbes{wall: &RayHit{Point: mgl32.Vec3{0, 1, 0.3}, Normal: tt.normal, Distance: 0.4}}
			c := NewPlayer(cfg, Options{Probes: probes, Sink: sink})

			in := airborne(tt.move)
			in.Jump = true
			res := c.Tick(in)
			if res.WallJumped != tt.want {
				t.Fatalf("expected wall jump %v, got %v (velocity %v)", tt.want, res.WallJumped, res.Velocity)
			}
			if !tt.want {
				if c.WallJumpPhase() != WallJumpIdle {
					t.Fatalf("expected an unhonored request to be dropped, got %v", c.WallJumpPhase())
				}
				return
			}

			speed := math32.Sqrt(2 * cfg.WallJumpHeight * -cfg.Gravity.Y())
			if math32.Abs(res.Velocity.Len()-speed) > 1e-3 {
				t.Fatalf("expected wall jump speed %v, got %v", speed, res.Velocity.Len())
			}
			if res.Velocity.Y() <= 0 || res.Velocity.X() <= 0 || res.Velocity.Z() >= 0 {
				t.Fatalf("expected velocity up and along the move input, got %v", res.Velocity)
			}
			if c.WallJumpPhase() != WallJumpConsumed || sink.wallJumps != 1 {
				t.Fatalf("expected a consumed wall jump, got %v (observed %d)", c.WallJumpPhase(), sink.wallJumps)
			}
		})
	}
}

func TestWallJumpCooldown(t *testing.T) {
	cfg := DefaultPlayerConfig()
	probes := &mockProbes{wall: &RayHit{Normal: mgl32.Vec3{0, 0, -1}, Distance: 0.4}}
	c := NewPlayer(cfg, Options{Probes: probes})

	in := airborne(mgl32.Vec2{1, -0.3})
	in.Jump = true
	if !c.Tick(in).WallJumped {
		t.Fatalf("expected a wall jump")
	}

	// A fresh press during the cooldown is ignored.
	c.Tick(airborne(mgl32.Vec2{1, -0.3}))
	if c.Tick(in).WallJumped {
		t.Fatalf("expected no wall jump during the cooldown")
	}

	ticks := int(cfg.WallJumpCooldownTime/dt) + 2
	for i := 0; i < ticks; i++ {
		c.Tick(airborne(mgl32.Vec2{1, -0.3}))
	}
	if c.WallJumpPhase() != WallJumpIdle {
		t.Fatalf("expected the cooldown to elapse, got %v", c.WallJumpPhase())
	}
}

func TestWallJumpNeedsAirborne(t *testing.T) {
	probes := &mockProbes{wall: &RayHit{Normal: mgl32.Vec3{0, 0, -1}, Distance: 0.4}}
	c := NewPlayer(DefaultPlayerConfig(), Options{Probes: probes})
	c.Tick(grounded(mgl32.Vec2{}))

	in := grounded(mgl32.Vec2{1, -0.3})
	in.Jump = true
	res := c.Tick(in)
	if res.WallJumped || !res.Jumped {
		t.Fatalf("expected a regular jump on the ground, got %+v", res)
	}
}
