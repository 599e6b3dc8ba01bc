package recording

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/probe"
	"github.com/oomph-ac/charsim/utils"
	"github.com/oomph-ac/charsim/world"
)

const dt = float32(1) / 60

// record runs a player walking in the given direction for ticks ticks.
func record(t *testing.T, move mgl32.Vec2, ticks, capacity int) *Recorder {
	t.Helper()
	w := world.New(probe.NewWorld(probe.Box{BBox: cube.Box(-50, -1, -50, 50, 0, 50), Owner: "floor"}), world.Options{Workers: 2})
	t.Cleanup(w.Close)
	if _, err := w.AddPlayer("p1", motion.DefaultPlayerConfig(), world.Spawn{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.AddEnemy("e1", motion.DefaultEnemyConfig(), nil, world.Spawn{Position: mgl32.Vec3{5, 0, 5}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.SetControls("p1", world.Controls{Move: move, Look: mgl32.QuatIdent()})

	rec := NewRecorder(w, "walk", capacity)
	for range ticks {
		w.Step(dt)
	}
	rec.Stop()
	return rec
}

func TestRecorderCapturesEveryTick(t *testing.T) {
	rec := record(t, mgl32.Vec2{0, 1}, 30, 0)
	if rec.Len() != 30 || rec.Dropped() != 0 {
		t.Fatalf("expected 30 frames and no drops, got %d and %d", rec.Len(), rec.Dropped())
	}

	last, ok := rec.Last()
	if !ok || last.Tick != 30 {
		t.Fatalf("expected the last frame to be tick 30, got %+v", last)
	}
	if len(last.Snapshots) != 2 || last.Snapshots[0].ID != "p1" || last.Snapshots[1].ID != "e1" {
		t.Fatalf("expected snapshots in spawn order, got %+v", last.Snapshots)
	}
	if last.Snapshots[0].Position.Z() <= 0 || !last.Snapshots[0].Grounded {
		t.Fatalf("expected the player to walk forward on the ground, got %+v", last.Snapshots[0])
	}
	if _, ok := last.Events[len(last.Events)-1].(event.TickEvent); !ok {
		t.Fatalf("expected every frame to end with its tick event, got %v", last.Events)
	}
	if last.Digest != Digest(last.Tick, last.Snapshots) {
		t.Fatalf("expected the digest to match the snapshots")
	}
}

func TestRecorderRing(t *testing.T) {
	rec := record(t, mgl32.Vec2{0, 1}, 25, 10)
	if rec.Len() != 10 || rec.Dropped() != 15 {
		t.Fatalf("expected 10 frames and 15 drops, got %d and %d", rec.Len(), rec.Dropped())
	}
	frames := rec.Recording().Frames
	if frames[0].Tick != 16 || frames[9].Tick != 25 {
		t.Fatalf("expected ticks 16 to 25, got %d to %d", frames[0].Tick, frames[9].Tick)
	}
}

func TestEncodeDecode(t *testing.T) {
	rec := record(t, mgl32.Vec2{1, 0}, 20, 0).Recording()
	decoded, err := Decode(rec.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Version != CurrentRecordingVer || decoded.Scenario != "walk" || len(decoded.Frames) != 20 {
		t.Fatalf("expected the header to survive, got %s %s %d", decoded.Version, decoded.Scenario, len(decoded.Frames))
	}
	for i, f := range decoded.Frames {
		want := rec.Frames[i]
		if f.Tick != want.Tick || f.Digest != want.Digest || len(f.Events) != len(want.Events) {
			t.Fatalf("frame %d differs after decoding", i)
		}
		if Digest(f.Tick, f.Snapshots) != f.Digest {
			t.Fatalf("frame %d: expected the decoded snapshots to hash to the stored digest", i)
		}
	}
	if err := rec.Verify(decoded); err != nil {
		t.Fatalf("expected a recording to verify against its own encoding, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	dat := record(t, mgl32.Vec2{0, 1}, 5, 0).Recording().Encode()

	var oerr *oerror.Error
	if _, err := Decode(dat[:len(dat)-3]); !errors.As(err, &oerr) || !strings.Contains(err.Error(), "truncated") {
		t.Fatalf("expected a truncation error, got %v", err)
	}

	buf := &bytes.Buffer{}
	utils.WriteString(buf, "99")
	if _, err := Decode(buf.Bytes()); err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected a version error, got %v", err)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	first := record(t, mgl32.Vec2{0.3, 1}, 90, 0).Recording()
	second := record(t, mgl32.Vec2{0.3, 1}, 90, 0).Recording()
	if err := first.Verify(second); err != nil {
		t.Fatalf("expected identical runs to match, got %v", err)
	}

	diverged := record(t, mgl32.Vec2{-0.3, 1}, 90, 0).Recording()
	err := first.Verify(diverged)
	if err == nil || !strings.Contains(err.Error(), "diverged at tick 1") {
		t.Fatalf("expected a divergence at the first tick, got %v", err)
	}
	if _, ok := first.Frame(45); !ok {
		t.Fatalf("expected tick 45 to be recorded")
	}
	if _, ok := first.Frame(500); ok {
		t.Fatalf("expected tick 500 to be missing")
	}
}

func TestFileRoundTrip(t *testing.T) {
	rec := record(t, mgl32.Vec2{0, 1}, 15, 0).Recording()
	path := filepath.Join(t.TempDir(), "walk.rec")
	if err := rec.WriteFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	read, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(read.Frames) != 15 {
		t.Fatalf("expected 15 frames, got %d", len(read.Frames))
	}
	if err := rec.Verify(read); err != nil {
		t.Fatalf("expected the stored recording to verify, got %v", err)
	}

	if err := os.WriteFile(path, []byte("not snappy"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatalf("expected a corrupt file to be rejected")
	}
}

func TestStats(t *testing.T) {
	rec := record(t, mgl32.Vec2{0, 1}, 120, 0).Recording()
	st := rec.Stats("p1")
	if st.Frames != 120 {
		t.Fatalf("expected 120 frames, got %d", st.Frames)
	}
	if st.MaxSpeed < 4.9 || st.MaxSpeed > 5.01 {
		t.Fatalf("expected to approach the run speed, got %v", st.MaxSpeed)
	}
	if st.MeanSpeed <= 0 || st.MeanSpeed > st.MaxSpeed || st.SpeedDeviation <= 0 {
		t.Fatalf("unexpected speed statistics %+v", st)
	}
	if st.Distance < 5 || st.Airborne != 0 || st.Sliding != 0 {
		t.Fatalf("expected a grounded walk of several meters, got %+v", st)
	}

	if idle := rec.Stats("e1"); idle.MaxSpeed != 0 || idle.Distance != 0 {
		t.Fatalf("expected the idle enemy to stand still, got %+v", idle)
	}
	if none := rec.Stats("ghost"); none.Frames != 0 {
		t.Fatalf("expected no frames for an unknown id, got %+v", none)
	}
}

func TestVerifyRejectsUnrelatedRecordings(t *testing.T) {
	early := record(t, mgl32.Vec2{0, 1}, 10, 0).Recording()
	late := record(t, mgl32.Vec2{0, 1}, 25, 10).Recording()

	tests := []struct {
		name  string
		other *Recording
		want  string
	}{
		{name: "other scenario", other: &Recording{Version: CurrentRecordingVer, Scenario: "arena", Frames: early.Frames}, want: `got a run of "arena"`},
		{name: "disjoint ticks", other: late, want: "share no ticks"},
		{name: "empty", other: &Recording{Version: CurrentRecordingVer, Scenario: "walk"}, want: "share no ticks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := early.Verify(tt.other)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected an error containing %q, got %v", tt.want, err)
			}
		})
	}
}
