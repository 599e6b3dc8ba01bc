// Package recording captures per-tick snapshots of a simulation so that runs can be stored, compared
// and replayed. Each frame carries a digest of the character state, which makes divergence between
// two runs of the same scenario cheap to find.
package recording

import (
	"bytes"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/internal"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/utils"
	"github.com/oomph-ac/charsim/world"
	"github.com/zeebo/xxh3"
)

// CurrentRecordingVer is bumped whenever the encoding of a recording changes.
const CurrentRecordingVer = "1"

// Snapshot is the state of one character at the end of a tick.
type Snapshot struct {
	ID       string
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Rotation mgl32.Quat
	State    motion.StateKind
	Grounded bool
}

// Frame is everything that happened in one tick.
type Frame struct {
	Tick      uint64
	Digest    uint64
	Snapshots []Snapshot
	Events    []event.Event
}

// Recording is an ordered run of frames.
type Recording struct {
	Version  string
	Scenario string
	Frames   []Frame
}

// Capture snapshots every character of w in spawn order.
func Capture(w *world.World, events []event.Event) Frame {
	chars := w.Characters()
	f := Frame{Tick: w.Tick(), Snapshots: make([]Snapshot, 0, len(chars)), Events: events}
	for _, ch := range chars {
		ctrl := ch.Controller()
		f.Snapshots = append(f.Snapshots, Snapshot{
			ID:       ch.ID(),
			Position: ch.Position(),
			Velocity: ctrl.Velocity(),
			Rotation: ctrl.Rotation(),
			State:    ctrl.State(),
			Grounded: ch.Grounding().StableOnGround,
		})
	}
	f.Digest = Digest(f.Tick, f.Snapshots)
	return f
}

// Digest hashes a tick's snapshots. Events are not part of the digest; they follow from the state.
func Digest(tick uint64, snapshots []Snapshot) uint64 {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	utils.WriteLUint64(buf, tick)
	for _, s := range snapshots {
		writeSnapshot(buf, s)
	}
	return xxh3.Hash(buf.Bytes())
}

// Encode serializes the recording.
func (rec *Recording) Encode() []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	utils.WriteString(buf, CurrentRecordingVer)
	utils.WriteString(buf, rec.Scenario)
	utils.WriteLInt32(buf, int32(len(rec.Frames)))
	for _, f := range rec.Frames {
		utils.WriteLUint64(buf, f.Tick)
		utils.WriteLUint64(buf, f.Digest)
		utils.WriteLInt32(buf, int32(len(f.Snapshots)))
		for _, s := range f.Snapshots {
			writeSnapshot(buf, s)
		}
		utils.WriteString(buf, string(event.EncodeEvents(f.Events)))
	}
	return bytes.Clone(buf.Bytes())
}

// Decode parses a recording produced by Encode.
func Decode(dat []byte) (*Recording, error) {
	r := utils.NewReader(dat)
	rec := &Recording{Version: r.String()}
	if err := r.Err(); err != nil {
		return nil, oerror.New(game.ErrorRecordingTruncated, 0, err)
	}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New(game.ErrorRecordingVersion, rec.Version, CurrentRecordingVer)
	}
	rec.Scenario = r.String()
	count := r.Int32()
	if err := r.Err(); err != nil || count < 0 {
		return nil, oerror.New(game.ErrorRecordingTruncated, 0, err)
	}

	rec.Frames = make([]Frame, 0, min(int(count), 1<<16))
	for i := range int(count) {
		f := Frame{Tick: r.Uint64(), Digest: r.Uint64()}
		n := r.Int32()
		if err := r.Err(); err != nil || n < 0 {
			return nil, oerror.New(game.ErrorRecordingTruncated, i, err)
		}
		f.Snapshots = make([]Snapshot, 0, min(int(n), 1<<10))
		for range int(n) {
			f.Snapshots = append(f.Snapshots, readSnapshot(r))
		}
		blob := r.String()
		if err := r.Err(); err != nil {
			return nil, oerror.New(game.ErrorRecordingTruncated, i, err)
		}
		events, err := event.DecodeEvents([]byte(blob))
		if err != nil {
			return nil, oerror.New(game.ErrorRecordingTruncated, i, err)
		}
		f.Events = events
		rec.Frames = append(rec.Frames, f)
	}
	return rec, nil
}

// Frame returns the frame of the given tick.
func (rec *Recording) Frame(tick uint64) (Frame, bool) {
	i, ok := slices.BinarySearchFunc(rec.Frames, tick, func(f Frame, t uint64) int {
		switch {
		case f.Tick < t:
			return -1
		case f.Tick > t:
			return 1
		}
		return 0
	})
	if !ok {
		return Frame{}, false
	}
	return rec.Frames[i], true
}

// Verify checks that other is a run of the same scenario and that every frame of other that rec
// also holds has the same digest. The first divergent tick is reported. Recordings without a
// common tick do not verify.
func (rec *Recording) Verify(other *Recording) error {
	if rec.Scenario != other.Scenario {
		return oerror.New(game.ErrorRecordingScenario, rec.Scenario, other.Scenario)
	}
	compared := 0
	for _, f := range other.Frames {
		want, ok := rec.Frame(f.Tick)
		if !ok {
			continue
		}
		if want.Digest != f.Digest {
			return oerror.New(game.ErrorRecordingMismatch, f.Tick, want.Digest, f.Digest)
		}
		compared++
	}
	if compared == 0 {
		return oerror.New(game.ErrorRecordingNoOverlap, len(rec.Frames), len(other.Frames))
	}
	return nil
}

func writeSnapshot(buf *bytes.Buffer, s Snapshot) {
	utils.WriteString(buf, s.ID)
	utils.WriteVec3(buf, s.Position)
	utils.WriteVec3(buf, s.Velocity)
	utils.WriteQuat(buf, s.Rotation)
	buf.WriteByte(byte(s.State))
	utils.WriteBool(buf, s.Grounded)
}

func readSnapshot(r *utils.Reader) Snapshot {
	return Snapshot{
		ID:       r.String(),
		Position: r.Vec3(),
		Velocity: r.Vec3(),
		Rotation: r.Quat(),
		State:    motion.StateKind(r.Byte()),
		Grounded: r.Bool(),
	}
}
