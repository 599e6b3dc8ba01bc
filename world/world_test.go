package world

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/ai"
	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/probe"
)

const dt = float32(1) / 60

func newTestWorld(t *testing.T, boxes ...probe.Box) *World {
	t.Helper()
	boxes = append([]probe.Box{{BBox: cube.Box(-50, -1, -50, 50, 0, 50), Owner: "floor"}}, boxes...)
	w := New(probe.NewWorld(boxes...), Options{Workers: 2})
	t.Cleanup(w.Close)
	return w
}

type collector struct {
	events []event.Event
}

func (c *collector) HandleEvent(ev event.Event) {
	c.events = append(c.events, ev)
}

func TestPlayerWalksOnFloor(t *testing.T) {
	w := newTestWorld(t)
	p, err := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Grounding().StableOnGround {
		t.Fatalf("expected the spawn to be grounded, got %+v", p.Grounding())
	}

	if err := w.SetControls("p1", Controls{Move: mgl32.Vec2{0, 1}, Look: mgl32.QuatIdent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	pos := p.Position()
	if pos.Z() < 5 || math32.Abs(pos.Y()) > 1e-4 || math32.Abs(pos.X()) > 1e-4 {
		t.Fatalf("expected to walk forward along the floor, got %v", pos)
	}
	if !p.Grounding().StableOnGround {
		t.Fatalf("expected to stay grounded, got %+v", p.Grounding())
	}
	if w.Tick() != 120 {
		t.Fatalf("expected 120 ticks, got %d", w.Tick())
	}
}

func TestPlayerLandsOnFloor(t *testing.T) {
	w := newTestWorld(t)
	c := &collector{}
	w.Bus().Subscribe(c)
	p, _ := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{Position: mgl32.Vec3{0, 1, 0}})
	if p.Grounding().FoundAnyGround {
		t.Fatalf("expected to spawn in the air")
	}

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if math32.Abs(p.Position().Y()) > 1e-4 {
		t.Fatalf("expected to rest on the floor, got %v", p.Position())
	}

	landed := false
	for _, ev := range c.events {
		if land, ok := ev.(event.LandEvent); ok && land.Character() == "p1" {
			landed = true
			if land.Velocity.Y() > -4 {
				t.Fatalf("expected to land falling, got %v", land.Velocity)
			}
		}
	}
	if !landed {
		t.Fatalf("expected a land event")
	}
}

func TestWallStopsMovement(t *testing.T) {
	w := newTestWorld(t, probe.Box{BBox: cube.Box(-5, 0, 2, 5, 3, 3), Owner: "wall"})
	p, _ := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{})
	w.SetControls("p1", Controls{Move: mgl32.Vec2{0, 1}, Look: mgl32.QuatIdent()})

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	limit := 2 - motion.StandingCapsule().Radius
	if z := p.Position().Z(); z > limit+1e-4 || z < limit-0.05 {
		t.Fatalf("expected to stop against the wall at %v, got %v", limit, z)
	}
}

func TestIgnoredBoxesArePassable(t *testing.T) {
	w := newTestWorld(t, probe.Box{BBox: cube.Box(-5, 0, 2, 5, 3, 3), Owner: "door"})
	p, _ := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{Ignore: []string{"door"}})
	w.SetControls("p1", Controls{Move: mgl32.Vec2{0, 1}, Look: mgl32.QuatIdent()})

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if z := p.Position().Z(); z < 3 {
		t.Fatalf("expected to pass through the ignored door, got %v", z)
	}
}

func TestEventsEndWithTick(t *testing.T) {
	w := newTestWorld(t)
	c := &collector{}
	w.Bus().Subscribe(c)
	w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{})
	w.AddEnemy("e1", motion.DefaultEnemyConfig(), nil, Spawn{Position: mgl32.Vec3{0, 0, 10}})
	w.SetControls("p1", Controls{Move: mgl32.Vec2{0, 1}, Look: mgl32.QuatIdent()})
	w.Step(dt)

	if len(c.events) < 2 {
		t.Fatalf("expected character events and a tick event, got %v", c.events)
	}
	tick, ok := c.events[len(c.events)-1].(event.TickEvent)
	if !ok || tick.Characters != 2 || tick.Tick() != 1 {
		t.Fatalf("expected a closing tick event, got %#v", c.events[len(c.events)-1])
	}
	for _, ev := range c.events[:len(c.events)-1] {
		if ev.Tick() != 1 {
			t.Fatalf("expected every event to be stamped with tick 1, got %#v", ev)
		}
	}
}

func TestEnemyHuntsPlayer(t *testing.T) {
	w := newTestWorld(t)
	c := &collector{}
	w.Bus().Subscribe(c)
	cfg := ai.DefaultConfig()
	w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{})
	e, _ := w.AddEnemy("e1", motion.DefaultEnemyConfig(), &cfg, Spawn{Position: mgl32.Vec3{0, 0, 5}})

	attacked := false
	for i := 0; i < 180 && !attacked; i++ {
		w.Step(dt)
		for _, ev := range c.events {
			if a, ok := ev.(event.AttackEvent); ok && a.Attacking && a.Character() == "e1" {
				attacked = true
			}
		}
	}
	if !attacked {
		t.Fatalf("expected the enemy to reach and attack the player, enemy at %v", e.Position())
	}

	dead, err := w.Damage("e1", 1000)
	if err != nil || !dead {
		t.Fatalf("expected the enemy to die, got %v %v", dead, err)
	}
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if e.Brain().State() != ai.StateDead {
		t.Fatalf("expected a dead brain, got %v", e.Brain().State())
	}
	if speed := e.Controller().Velocity().Len(); speed > 0.01 {
		t.Fatalf("expected a dead enemy to stop, got speed %v", speed)
	}
	deaths := 0
	for _, ev := range c.events {
		if _, ok := ev.(event.DeathEvent); ok {
			deaths++
		}
	}
	if deaths != 1 {
		t.Fatalf("expected a single death event, got %d", deaths)
	}
}

func TestRegistryErrors(t *testing.T) {
	w := newTestWorld(t)
	if _, err := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var oerr *oerror.Error
	if _, err := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{}); !errors.As(err, &oerr) {
		t.Fatalf("expected a duplicate id error, got %v", err)
	}
	if err := w.SetControls("ghost", Controls{}); err == nil {
		t.Fatalf("expected an unknown id error")
	}
	if _, err := w.Damage("p1", 10); err == nil {
		t.Fatalf("expected players to have no health")
	}
	if _, err := w.AddPlayer("p2", motion.DefaultPlayerConfig(), Spawn{Position: mgl32.Vec3{math32.NaN(), 0, 0}}); err == nil {
		t.Fatalf("expected an invalid spawn to be rejected")
	}

	if !w.Remove("p1") || w.Remove("p1") {
		t.Fatalf("expected a single successful removal")
	}
	if len(w.Characters()) != 0 {
		t.Fatalf("expected no characters left")
	}
}

func TestImpulse(t *testing.T) {
	w := newTestWorld(t)
	p, _ := w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{})
	w.Step(dt)
	ok, err := w.Impulse("p1", mgl32.Vec3{0, 8, 0})
	if err != nil || !ok {
		t.Fatalf("expected the impulse to be accepted, got %v %v", ok, err)
	}
	w.Step(dt)
	if p.Controller().Velocity().Y() <= 0 {
		t.Fatalf("expected the impulse to apply, got %v", p.Controller().Velocity())
	}
}

func TestEnemyFleesAtScaledSpeed(t *testing.T) {
	for _, scale := range []float32{0.25, 0.5, 1} {
		w := newTestWorld(t)
		cfg := ai.DefaultConfig()
		cfg.FleeSpeedScale = scale
		motionCfg := motion.DefaultEnemyConfig()
		w.AddPlayer("p1", motion.DefaultPlayerConfig(), Spawn{})
		// The enemy faces the player, so fleeing turns it all the way around.
		e, _ := w.AddEnemy("e1", motionCfg, &cfg, Spawn{Position: mgl32.Vec3{0, 0, -5}, Rotation: mgl32.QuatIdent()})
		if _, err := w.Damage("e1", 85); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 0; i < 60; i++ {
			w.Step(dt)
			if up := e.Result().Rotation.Rotate(mgl32.Vec3{0, 1, 0}); up.Y() < 1-1e-4 {
				t.Fatalf("scale %v, tick %d: expected the enemy to stay upright, got up %v", scale, i, up)
			}
		}
		if e.Brain().State() != ai.StateFleeing {
			t.Fatalf("scale %v: expected the enemy to flee, got %v", scale, e.Brain().State())
		}
		want := mgl32.Vec3{0, 0, -motionCfg.MaxStableRunSpeed * scale}
		if v := e.Controller().Velocity(); math32.Abs(v.Z()-want.Z()) > 0.05 || math32.Abs(v.X()) > 0.05 {
			t.Fatalf("scale %v: expected velocity %v, got %v", scale, want, v)
		}
	}
}
