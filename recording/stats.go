package recording

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/motion"
)

// Stats summarizes the motion of one character over a recording.
type Stats struct {
	Frames int
	// Horizontal speed in m/s.
	MeanSpeed, MaxSpeed, SpeedDeviation float32
	// Distance is the horizontal path length travelled.
	Distance float32
	// Airborne is the share of frames spent off stable ground.
	Airborne float32
	// Sliding is the share of frames spent in the sliding state.
	Sliding float32
}

// Stats computes the motion statistics of the character with the given id. Frames the character is
// absent from are skipped.
func (rec *Recording) Stats(id string) Stats {
	var (
		st       Stats
		speeds   []float32
		airborne int
		sliding  int
		last     *Snapshot
	)
	for _, f := range rec.Frames {
		for i := range f.Snapshots {
			s := &f.Snapshots[i]
			if s.ID != id {
				continue
			}
			speed := horizontal(s.Velocity)
			speeds = append(speeds, speed)
			st.MaxSpeed = max(st.MaxSpeed, speed)
			if !s.Grounded {
				airborne++
			}
			if s.State == motion.StateSliding {
				sliding++
			}
			if last != nil {
				st.Distance += horizontal(s.Position.Sub(last.Position))
			}
			last = s
			break
		}
	}

	st.Frames = len(speeds)
	if st.Frames == 0 {
		return st
	}
	st.MeanSpeed = game.Mean(speeds)
	st.SpeedDeviation = game.StandardDeviation(speeds)
	st.Airborne = float32(airborne) / float32(st.Frames)
	st.Sliding = float32(sliding) / float32(st.Frames)
	return st
}

func horizontal(v mgl32.Vec3) float32 {
	return math32.Sqrt(game.Vec3HzDistSqr(v))
}
