package recording

import (
	"sync"

	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/utils"
	"github.com/oomph-ac/charsim/world"
)

// DefaultCapacity is the number of frames a recorder keeps: one minute at the default tick rate.
const DefaultCapacity = 3600

// Recorder listens on a world's bus and captures a frame whenever a tick ends. It keeps the latest
// frames in a ring, so a long run can be recorded without growing memory.
type Recorder struct {
	mu       sync.Mutex
	world    *world.World
	scenario string
	frames   *utils.CircularQueue[Frame]
	pending  []event.Event
	dropped  uint64

	unsubscribe func()
}

// NewRecorder starts recording w. A non-positive capacity uses DefaultCapacity.
func NewRecorder(w *world.World, scenario string, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Recorder{
		world:    w,
		scenario: scenario,
		frames:   utils.NewCircularQueue[Frame](capacity),
	}
	r.unsubscribe = w.Bus().Subscribe(r)
	return r
}

// HandleEvent collects the events of the current tick and captures a frame on the closing TickEvent.
func (r *Recorder) HandleEvent(ev event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := ev.(event.TickEvent); !ok {
		r.pending = append(r.pending, ev)
		return
	}
	events := append(r.pending, ev)
	r.pending = nil
	if _, evicted, err := r.frames.Append(Capture(r.world, events)); err == nil && evicted {
		r.dropped++
	}
}

// Len returns the number of frames held.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames.Len()
}

// Dropped returns how many frames were evicted from the ring.
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Last returns the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := r.frames.Get(r.frames.Len() - 1)
	return f, err == nil
}

// Recording returns the frames held, oldest first.
func (r *Recorder) Recording() *Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := &Recording{Version: CurrentRecordingVer, Scenario: r.scenario, Frames: make([]Frame, 0, r.frames.Len())}
	for f := range r.frames.Iter() {
		rec.Frames = append(rec.Frames, f)
	}
	return rec
}

// Stop detaches the recorder from the bus. Frames recorded so far stay available.
func (r *Recorder) Stop() {
	r.unsubscribe()
}
