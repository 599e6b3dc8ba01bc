package motion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// GroundingReport is the contact state produced by the character motor after integrating a tick.
// The report passed to a tick always describes the result of the previous tick's movement.
type GroundingReport struct {
	// FoundAnyGround is true when any surface was found below the character, walkable or not.
	FoundAnyGround bool
	// StableOnGround is true when the surface is within the walkable slope limit.
	StableOnGround bool
	// SnappingPrevented is true when the motor refused to snap onto a ledge or step this tick.
	SnappingPrevented bool

	GroundNormal      mgl32.Vec3
	InnerGroundNormal mgl32.Vec3
	OuterGroundNormal mgl32.Vec3
	GroundPoint       mgl32.Vec3
}

// StableGround returns a report for stable contact with a surface of the given normal.
func StableGround(normal, point mgl32.Vec3) GroundingReport {
	return GroundingReport{
		FoundAnyGround:    true,
		StableOnGround:    true,
		GroundNormal:      normal,
		InnerGroundNormal: normal,
		OuterGroundNormal: normal,
		GroundPoint:       point,
	}
}

// UnstableGround returns a report for contact with a surface too steep to stand on.
func UnstableGround(normal, point mgl32.Vec3) GroundingReport {
	r := StableGround(normal, point)
	r.StableOnGround = false
	return r
}

// RayHit is the nearest intersection of a probe ray.
type RayHit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Capsule describes the character's collision volume. YOffset is the height of the capsule's
// center above the character's feet.
type Capsule struct {
	Radius  float32
	Height  float32
	YOffset float32
}

// StandingCapsule returns the collision volume of a standing character.
func StandingCapsule() Capsule {
	return Capsule{Radius: game.CapsuleRadius, Height: game.StandingCapsuleHeight, YOffset: game.StandingCapsuleYOffset}
}

// CrouchingCapsule returns the collision volume of a crouching character.
func CrouchingCapsule() Capsule {
	return Capsule{Radius: game.CapsuleRadius, Height: game.CrouchCapsuleHeight, YOffset: game.CrouchCapsuleYOffset}
}

// ProbeService answers the synchronous world queries the controller needs during a tick.
type ProbeService interface {
	// Raycast casts a ray of the given length and returns the nearest hit.
	Raycast(origin, direction mgl32.Vec3, length float32) (RayHit, bool)
	// Overlaps reports whether the capsule placed at position with rotation intersects the world.
	Overlaps(c Capsule, position mgl32.Vec3, rotation mgl32.Quat) bool
}

// NopProbes is a ProbeService for an empty world.
type NopProbes struct{}

func (NopProbes) Raycast(mgl32.Vec3, mgl32.Vec3, float32) (RayHit, bool) {
	return RayHit{}, false
}

func (NopProbes) Overlaps(Capsule, mgl32.Vec3, mgl32.Quat) bool {
	return false
}
