package utils

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

const clipEpsilon = 1e-5

// ClipAxis limits delta, the movement of moving along axis, so that moving stops at the face of
// stationary instead of entering it. Boxes that do not overlap moving on the other two axes, and
// boxes moving already intersects, do not clip.
func ClipAxis(stationary, moving cube.BBox, axis int, delta float32) float32 {
	if delta == 0 || HasZeroVolume(stationary) {
		return delta
	}
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if moving.Max()[i] <= stationary.Min()[i]+clipEpsilon || moving.Min()[i] >= stationary.Max()[i]-clipEpsilon {
			return delta
		}
	}

	if delta > 0 && moving.Max()[axis] <= stationary.Min()[axis]+clipEpsilon {
		return math32.Min(delta, math32.Max(stationary.Min()[axis]-moving.Max()[axis], 0))
	}
	if delta < 0 && moving.Min()[axis] >= stationary.Max()[axis]-clipEpsilon {
		return math32.Max(delta, math32.Min(stationary.Max()[axis]-moving.Min()[axis], 0))
	}
	return delta
}

// ClipDisplacement moves bb by displacement one axis at a time (Y, then X, then Z), clipping each
// axis against boxes. It returns the displacement that was actually applied and which axes were
// clipped.
func ClipDisplacement(boxes []cube.BBox, bb cube.BBox, displacement mgl32.Vec3) (mgl32.Vec3, [3]bool) {
	var (
		applied mgl32.Vec3
		clipped [3]bool
	)
	for _, axis := range [3]int{1, 0, 2} {
		delta := displacement[axis]
		for _, box := range boxes {
			delta = ClipAxis(box, bb, axis, delta)
		}
		clipped[axis] = math32.Abs(delta-displacement[axis]) > clipEpsilon
		applied[axis] = delta

		var step mgl32.Vec3
		step[axis] = delta
		bb = bb.Translate(step)
	}
	return applied, clipped
}

// HasZeroVolume reports whether bb is degenerate on every axis.
func HasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}
