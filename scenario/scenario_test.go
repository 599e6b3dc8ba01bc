package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/world"
)

const dt = float32(1) / 60

func TestEmbeddedScenariosAreValid(t *testing.T) {
	names := Names()
	for _, want := range []string{"arena", "ramp", "wall_jump"} {
		if !slices.Contains(names, want) {
			t.Fatalf("expected %q to be embedded, got %v", want, names)
		}
	}
	for _, name := range names {
		sc, err := Load(name)
		if err != nil {
			t.Fatalf("expected %q to load, got %v", name, err)
		}
		if sc.Name != name {
			t.Fatalf("expected name %q, got %q", name, sc.Name)
		}
	}
}

func TestLoadUnknownScenario(t *testing.T) {
	_, err := Load("does-not-exist")
	var oerr *oerror.Error
	if !errors.As(err, &oerr) || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected a not found error, got %v", err)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	old := DiskDir
	DiskDir = dir
	defer func() { DiskDir = old }()

	doc := "name: arena\nticks: 5\nplayers:\n  - id: solo\n    position: [0, 0, 0]\n"
	if err := os.WriteFile(filepath.Join(dir, "arena.yaml"), []byte(doc), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sc, err := Load("arena")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Ticks != 5 || len(sc.Players) != 1 || sc.Players[0].ID != "solo" {
		t.Fatalf("expected the disk copy to win, got %+v", sc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no ticks", "ticks: 0", "ticks must be positive"},
		{"short vector", "ticks: 1\ngeometry:\n  - min: [0, 0]\n    max: [1, 1, 1]", "three finite components"},
		{"inverted box", "ticks: 1\ngeometry:\n  - min: [1, 1, 1]\n    max: [0, 0, 0]", "exceeds max"},
		{"duplicate id", "ticks: 1\nplayers:\n  - id: a\n    position: [0, 0, 0]\nenemies:\n  - id: a\n    position: [1, 0, 0]", "duplicate id"},
		{"unknown character", "ticks: 1\ntimeline:\n  - tick: 1\n    character: ghost", "unknown character"},
		{"tick out of range", "ticks: 1\nplayers:\n  - id: a\n    position: [0, 0, 0]\ntimeline:\n  - tick: 2\n    character: a", "outside"},
		{"damage a player", "ticks: 1\nplayers:\n  - id: a\n    position: [0, 0, 0]\ntimeline:\n  - tick: 1\n    character: a\n    damage: 5", "no health"},
		{"bad move", "ticks: 1\nplayers:\n  - id: a\n    position: [0, 0, 0]\ntimeline:\n  - tick: 1\n    character: a\n    controls:\n      move: [1]", "two finite components"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", []byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected an error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := Parse("test", []byte("ticks: [")); err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestArenaRunsToCompletion(t *testing.T) {
	sc, err := Load("arena")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := sc.Build(world.Options{Workers: 2}, DefaultConfigs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	ticks := 0
	err = r.Run(context.Background(), dt, func(tick uint64) error {
		ticks++
		if tick != uint64(ticks) {
			t.Fatalf("expected tick %d, got %d", ticks, tick)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticks != sc.Ticks || !r.Done() {
		t.Fatalf("expected %d ticks, got %d", sc.Ticks, ticks)
	}

	runner, ok := r.World().Character("runner")
	if !ok {
		t.Fatalf("expected the runner to exist")
	}
	if runner.Position().Len() < 1 {
		t.Fatalf("expected the runner to have moved, got %v", runner.Position())
	}
	if len(r.World().Characters()) != len(sc.Characters()) {
		t.Fatalf("expected every spawn to exist")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sc, _ := Load("wall_jump")
	r, err := sc.Build(world.Options{Workers: 1}, DefaultConfigs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	err = r.Run(ctx, dt, func(tick uint64) error {
		if tick == 10 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the run to be cancelled, got %v", err)
	}
	if r.World().Tick() != 10 {
		t.Fatalf("expected to stop after tick 10, got %d", r.World().Tick())
	}
}

func TestJumpIsAPress(t *testing.T) {
	doc := `
ticks: 120
geometry:
  - owner: floor
    min: [-10, -1, -10]
    max: [10, 0, 10]
players:
  - id: hopper
    position: [0, 0, 0]
timeline:
  - tick: 1
    character: hopper
    controls:
      jump: true
`
	sc, err := Parse("hop", []byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := sc.Build(world.Options{Workers: 1}, DefaultConfigs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	jumps := 0
	r.World().Bus().Subscribe(event.ListenerFunc(func(ev event.Event) {
		if _, ok := ev.(event.JumpEvent); ok {
			jumps++
		}
	}))
	if err := r.Run(context.Background(), dt, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jumps != 1 {
		t.Fatalf("expected a single jump, got %d", jumps)
	}
}
