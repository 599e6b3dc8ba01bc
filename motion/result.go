package motion

import "github.com/go-gl/mathgl/mgl32"

// Result is what the motor reads back after a tick.
type Result struct {
	Velocity mgl32.Vec3
	Rotation mgl32.Quat
	State    StateKind

	// ForceUnground asks the motor to skip ground probing and snapping on its next update.
	ForceUnground bool
	// MaxStableSlopeAngle is the steepest slope, in degrees, the motor should treat as walkable.
	MaxStableSlopeAngle float32
	// Capsule is the collision volume the motor should use.
	Capsule   Capsule
	Crouching bool
	// CameraHeight is the smoothed eye height above the character's feet.
	CameraHeight float32

	Jumped     bool
	WallJumped bool
	Landed     bool
}
