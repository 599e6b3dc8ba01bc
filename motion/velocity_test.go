package motion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

func TestGroundMoveFollowsSlope(t *testing.T) {
	tests := []struct {
		name   string
		normal mgl32.Vec3
		// climb is the expected sign of the vertical velocity.
		climb float32
	}{
		{name: "flat", normal: game.Up, climb: 0},
		{name: "uphill", normal: mgl32.Vec3{0, 1, -0.4}.Normalize(), climb: 1},
		{name: "downhill", normal: mgl32.Vec3{0, 1, 0.4}.Normalize(), climb: -1},
		{name: "side slope", normal: mgl32.Vec3{0.3, 1, 0}.Normalize(), climb: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlayerConfig()
			c := NewPlayer(cfg, Options{})
			in := grounded(mgl32.Vec2{0, 1})
			in.Grounding = StableGround(tt.normal, mgl32.Vec3{})

			var res Result
			for i := 0; i < 120; i++ {
				res = c.Tick(in)
				if d := res.Velocity.Dot(tt.normal); math32.Abs(d) > 1e-3 {
					t.Fatalf("tick %d: expected velocity tangent to the ground, got v.n = %v", i, d)
				}
			}
			if speed := res.Velocity.Len(); math32.Abs(speed-cfg.RunSpeed) > 1e-2 {
				t.Fatalf("expected speed %v along the slope, got %v", cfg.RunSpeed, speed)
			}
			switch y := res.Velocity.Y(); {
			case tt.climb > 0 && y <= 0.1, tt.climb < 0 && y >= -0.1, tt.climb == 0 && math32.Abs(y) > 1e-3:
				t.Fatalf("expected vertical velocity of sign %v, got %v", tt.climb, res.Velocity)
			}
			if res.Velocity.Z() <= 0 {
				t.Fatalf("expected to keep heading forward, got %v", res.Velocity)
			}
		})
	}
}

func TestEffectiveGroundNormal(t *testing.T) {
	ground := mgl32.Vec3{0, 1, -0.2}.Normalize()
	inner := game.Up
	outer := mgl32.Vec3{0, 1, 0.5}.Normalize()
	// The character stands past the ground point towards +Z.
	position := mgl32.Vec3{0, 0, 1}

	tests := []struct {
		name      string
		prevented bool
		velocity  mgl32.Vec3
		want      mgl32.Vec3
	}{
		{name: "snapping allowed", prevented: false, velocity: mgl32.Vec3{0, 0, 3}, want: ground},
		{name: "moving away from the ground point", prevented: true, velocity: mgl32.Vec3{0, 0, 3}, want: outer},
		{name: "moving sideways", prevented: true, velocity: mgl32.Vec3{3, 0, 0}, want: outer},
		{name: "moving towards the ground point", prevented: true, velocity: mgl32.Vec3{0, 0, -3}, want: inner},
		{name: "standing still", prevented: true, velocity: mgl32.Vec3{}, want: ground},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPlayer(DefaultPlayerConfig(), Options{})
			c.input.Position = position
			c.report = GroundingReport{
				FoundAnyGround:    true,
				StableOnGround:    true,
				SnappingPrevented: tt.prevented,
				GroundNormal:      ground,
				InnerGroundNormal: inner,
				OuterGroundNormal: outer,
			}
			if got := c.effectiveGroundNormal(tt.velocity); !vecApproxEq(got, tt.want, 1e-5) {
				t.Fatalf("expected normal %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLedgeUsesOuterNormal(t *testing.T) {
	c := NewPlayer(DefaultPlayerConfig(), Options{})
	for i := 0; i < 30; i++ {
		c.Tick(grounded(mgl32.Vec2{0, 1}))
	}

	outer := mgl32.Vec3{0, 1, 0.5}.Normalize()
	in := grounded(mgl32.Vec2{0, 1})
	in.Position = mgl32.Vec3{0, 0, 1}
	in.Grounding = GroundingReport{
		FoundAnyGround:    true,
		StableOnGround:    true,
		SnappingPrevented: true,
		GroundNormal:      game.Up,
		InnerGroundNormal: game.Up,
		OuterGroundNormal: outer,
	}
	res := c.Tick(in)
	if d := res.Velocity.Dot(outer); math32.Abs(d) > 1e-4 {
		t.Fatalf("expected velocity along the outer surface, got v.n = %v (%v)", d, res.Velocity)
	}
	if res.Velocity.Y() >= 0 {
		t.Fatalf("expected to follow the outer surface down, got %v", res.Velocity)
	}
}
