package probe

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/motion"
)

// groundTolerance is how far above the feet a box top may be and still count as ground.
const groundTolerance = 0.01

// View is a character's view of a World. It implements motion.ProbeService.
type View struct {
	world   *World
	ignored map[string]struct{}
}

// Raycast returns the nearest visible box hit by the ray.
func (v *View) Raycast(origin, direction mgl32.Vec3, length float32) (motion.RayHit, bool) {
	dir := game.NormalizeOrZero(direction)
	if game.IsZeroVec3(dir) || length <= 0 || !game.ValidVec3(origin) {
		return motion.RayHit{}, false
	}
	end := origin.Add(dir.Mul(length))

	var (
		best  motion.RayHit
		found bool
	)
	v.each(func(b Box) bool {
		res, ok := trace.BBoxIntercept(b.BBox, origin, end)
		if !ok {
			return true
		}
		point := res.Position()
		dist := point.Sub(origin).Len()
		if !found || dist < best.Distance {
			best = motion.RayHit{Point: point, Normal: faceNormal(b.BBox, point), Distance: dist}
			found = true
		}
		return true
	})
	return best, found
}

// Overlaps reports whether the bounds of the capsule intersect a visible box.
func (v *View) Overlaps(c motion.Capsule, position mgl32.Vec3, rotation mgl32.Quat) bool {
	bb := CapsuleBBox(c, position, rotation)
	overlaps := false
	v.each(func(b Box) bool {
		overlaps = b.BBox.IntersectsWith(bb)
		return !overlaps
	})
	return overlaps
}

// Ground looks for the highest box top under the capsule's footprint, no further than snap below
// the feet, and reports it the way a character motor would.
func (v *View) Ground(c motion.Capsule, position mgl32.Vec3, maxStableSlopeAngle, snap float32) motion.GroundingReport {
	footprint := cube.Box(
		position.X()-c.Radius, position.Y()-snap, position.Z()-c.Radius,
		position.X()+c.Radius, position.Y()+groundTolerance, position.Z()+c.Radius,
	)

	var (
		top    float32
		normal mgl32.Vec3
		found  bool
	)
	v.each(func(b Box) bool {
		if !b.BBox.IntersectsWith(footprint) || b.BBox.Max().Y() > position.Y()+groundTolerance {
			return true
		}
		if !found || b.BBox.Max().Y() > top {
			top, found = b.BBox.Max().Y(), true
			normal = game.NormalizeOr(b.Normal, mgl32.Vec3{0, 1, 0})
		}
		return true
	})
	if !found {
		return motion.GroundingReport{}
	}

	point := mgl32.Vec3{position.X(), top, position.Z()}
	if game.Angle(normal, mgl32.Vec3{0, 1, 0}) <= maxStableSlopeAngle {
		return motion.StableGround(normal, point)
	}
	return motion.UnstableGround(normal, point)
}

// CapsuleBBox returns the axis-aligned bounds of the capsule placed at position with rotation.
func CapsuleBBox(c motion.Capsule, position mgl32.Vec3, rotation mgl32.Quat) cube.BBox {
	axis := game.NormalizeOr(rotation.Rotate(mgl32.Vec3{0, 1, 0}), mgl32.Vec3{0, 1, 0})
	center := position.Add(axis.Mul(c.YOffset))
	half := axis.Mul(math32.Max(c.Height/2-c.Radius, 0))
	a, b := center.Sub(half), center.Add(half)
	return cube.Box(
		math32.Min(a.X(), b.X())-c.Radius, math32.Min(a.Y(), b.Y())-c.Radius, math32.Min(a.Z(), b.Z())-c.Radius,
		math32.Max(a.X(), b.X())+c.Radius, math32.Max(a.Y(), b.Y())+c.Radius, math32.Max(a.Z(), b.Z())+c.Radius,
	)
}

// faceNormal returns the outward normal of the face of bb closest to point.
func faceNormal(bb cube.BBox, point mgl32.Vec3) mgl32.Vec3 {
	var (
		normal mgl32.Vec3
		best   = float32(math32.MaxFloat32)
	)
	for axis := 0; axis < 3; axis++ {
		if d := math32.Abs(point[axis] - bb.Min()[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
		if d := math32.Abs(point[axis] - bb.Max()[axis]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
	}
	return normal
}

var _ motion.ProbeService = (*View)(nil)
