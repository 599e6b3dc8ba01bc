package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// epsilonSqr is the squared length below which a vector is treated as zero.
	epsilonSqr = float32(1e-10)
	// angleEpsilon is the tolerance used when comparing angles in radians.
	angleEpsilon = float32(1e-6)
)

var (
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, 1}
	Right   = mgl32.Vec3{1, 0, 0}
)

// ExpSmoothing returns the frame-rate independent interpolation factor for the given sharpness.
func ExpSmoothing(sharpness, dt float32) float32 {
	return 1 - math32.Exp(-sharpness*dt)
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Between reports whether a <= b < c.
func Between(a, b, c float32) bool {
	return a <= b && b < c
}

// ValidFloat returns false for NaN and infinite values.
func ValidFloat(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// ValidVec3 returns false if any component of the vector is NaN or infinite.
func ValidVec3(v mgl32.Vec3) bool {
	return ValidFloat(v[0]) && ValidFloat(v[1]) && ValidFloat(v[2])
}

// IsZeroVec3 reports whether the vector is too short to be given a direction.
func IsZeroVec3(v mgl32.Vec3) bool {
	return v.LenSqr() <= epsilonSqr
}

// SafeNormalize normalizes the vector. The zero vector is returned with false when it has no direction.
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	if IsZeroVec3(v) {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / v.Len()), true
}

// NormalizeOrZero normalizes the vector, returning the zero vector if it cannot be normalized.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	n, _ := SafeNormalize(v)
	return n
}

// NormalizeOr normalizes the vector, returning fallback if it cannot be normalized.
func NormalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if n, ok := SafeNormalize(v); ok {
		return n
	}
	return fallback
}

// LerpVec3 linearly interpolates between a and b. t is clamped to [0, 1].
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// LerpFloat linearly interpolates between a and b. t is clamped to [0, 1].
func LerpFloat(a, b, t float32) float32 {
	t = mgl32.Clamp(t, 0, 1)
	return a + (b-a)*t
}

// MoveTowards moves current towards target by at most maxDelta.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Project projects v onto the direction of onto.
func Project(v, onto mgl32.Vec3) mgl32.Vec3 {
	sqr := onto.LenSqr()
	if sqr <= epsilonSqr {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / sqr)
}

// ProjectOnPlane removes the component of v along the plane normal.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(Project(v, normal))
}

// Angle returns the unsigned angle in degrees between a and b. Zero vectors yield zero.
func Angle(a, b mgl32.Vec3) float32 {
	denominator := math32.Sqrt(a.LenSqr() * b.LenSqr())
	if denominator <= 1e-15 {
		return 0
	}
	dot := mgl32.Clamp(a.Dot(b)/denominator, -1, 1)
	return mgl32.RadToDeg(math32.Acos(dot))
}

// Perpendicular returns a unit vector perpendicular to v.
func Perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	axis := Right
	if math32.Abs(v.Normalize().Dot(Right)) > 0.9 {
		axis = Up
	}
	return NormalizeOr(v.Cross(axis), Forward)
}

// DirectionTangentToSurface returns the unit direction along the surface described by normal that
// is closest to dir, keeping dir's heading relative to up.
func DirectionTangentToSurface(dir, normal, up mgl32.Vec3) mgl32.Vec3 {
	right := dir.Cross(up)
	return NormalizeOrZero(normal.Cross(right))
}

// ReorientOnSurface rotates v onto the tangent plane of normal while preserving its magnitude.
func ReorientOnSurface(v, normal, up mgl32.Vec3) mgl32.Vec3 {
	return DirectionTangentToSurface(v, normal, up).Mul(v.Len())
}

// RotateTowards rotates current towards target by at most maxRadians and changes its magnitude
// by at most maxMagnitudeDelta. Opposite vectors turn around up.
func RotateTowards(current, target, up mgl32.Vec3, maxRadians, maxMagnitudeDelta float32) mgl32.Vec3 {
	curLen, targetLen := current.Len(), target.Len()
	if curLen*curLen <= epsilonSqr || targetLen*targetLen <= epsilonSqr {
		// No direction to rotate from or to, only the magnitude can move.
		if curLen*curLen <= epsilonSqr {
			return mgl32.Vec3{}
		}
		return current.Mul(MoveTowards(curLen, 0, maxMagnitudeDelta) / curLen)
	}

	from, to := current.Mul(1/curLen), target.Mul(1/targetLen)
	dir := rotateUnit(from, to, up, maxRadians)
	return dir.Mul(MoveTowards(curLen, targetLen, maxMagnitudeDelta))
}

// SlerpVec3 spherically interpolates between a and b, treating them as directions with magnitudes.
// Opposite vectors turn around up.
func SlerpVec3(a, b, up mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	aLen, bLen := a.Len(), b.Len()
	if aLen*aLen <= epsilonSqr || bLen*bLen <= epsilonSqr {
		return LerpVec3(a, b, t)
	}

	from, to := a.Mul(1/aLen), b.Mul(1/bLen)
	angle := math32.Acos(mgl32.Clamp(from.Dot(to), -1, 1))
	return rotateUnit(from, to, up, angle*t).Mul(LerpFloat(aLen, bLen, t))
}

// rotateUnit rotates the unit vector from towards the unit vector to by at most maxRadians.
func rotateUnit(from, to, up mgl32.Vec3, maxRadians float32) mgl32.Vec3 {
	dot := mgl32.Clamp(from.Dot(to), -1, 1)
	angle := math32.Acos(dot)
	if angle <= maxRadians || angle <= angleEpsilon {
		return to
	}
	if maxRadians <= 0 {
		return from
	}

	ortho, ok := SafeNormalize(to.Sub(from.Mul(dot)))
	if !ok {
		// Opposite directions turn around up, or around any perpendicular axis when from is
		// parallel to up.
		if ortho, ok = SafeNormalize(up.Cross(from)); !ok {
			ortho = Perpendicular(from)
		}
	}
	return from.Mul(math32.Cos(maxRadians)).Add(ortho.Mul(math32.Sin(maxRadians)))
}

// LookRotation returns the rotation whose +Z axis points along forward and whose +Y axis is as
// close to up as possible.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	f, ok := SafeNormalize(forward)
	if !ok {
		return mgl32.QuatIdent()
	}
	r, ok := SafeNormalize(up.Cross(f))
	if !ok {
		// forward is parallel to up, fall back to the shortest arc from +Z.
		return FromToRotation(Forward, f)
	}
	u := f.Cross(r)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(r, u, f).Mat4()).Normalize()
}

// FromToRotation returns the shortest rotation taking from onto to.
func FromToRotation(from, to mgl32.Vec3) mgl32.Quat {
	f, okF := SafeNormalize(from)
	t, okT := SafeNormalize(to)
	if !okF || !okT {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(f, t).Normalize()
}

// PlanarRotation returns the yaw-only rotation of rot on the plane described by up. When rot looks
// straight along up, its up axis is used as the planar direction instead.
func PlanarRotation(rot mgl32.Quat, up mgl32.Vec3) mgl32.Quat {
	dir := ProjectOnPlane(rot.Rotate(Forward), up)
	if IsZeroVec3(dir) {
		dir = ProjectOnPlane(rot.Rotate(Up), up)
	}
	if IsZeroVec3(dir) {
		return mgl32.QuatIdent()
	}
	return LookRotation(dir, up)
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}
