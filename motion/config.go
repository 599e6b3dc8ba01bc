package motion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
)

// PlayerConfig holds the load-time tuning of a player controller.
type PlayerConfig struct {
	RunSpeed                      float32
	CrouchSpeedFactor             float32
	SprintSpeedMultiplier         float32
	WalkSpeedFactor               float32
	SprintVelocityThresholdFactor float32
	StableMovementSharpness       float32
	OrientationSharpness          float32

	MaxAirSpeed      float32
	AirControlFactor float32
	Drag             float32

	JumpHeight       float32
	JumpCooldownTime float32

	SlideVelocityThresholdPreGrace         float32
	SlideVelocityThresholdPostGrace        float32
	SlideSpeedMultiplier                   float32
	SlideRecoverySpeedMultiplier           float32
	StandingSlideOnLandVelocityMultiplier  float32
	CrouchingSlideOnLandVelocityMultiplier float32
	SlideMinimumDuration                   float32
	SlideDrag                              float32
	SlideGravityAccelerationFactor         float32
	SlideGravityUpwardMotionMultiplier     float32
	SlideSlopeGraceTime                    float32
	SlideSlopeGraceAngle                   float32
	SlideSlopeUnstableAngle                float32
	SlideRotationDegreesPerSecondStable    float32
	SlideRotationDegreesPerSecondUnstable  float32

	WallJumpRayLength              float32
	WallJumpHeight                 float32
	WallJumpCooldownTime           float32
	WallJumpMinWallAngle           float32
	WallJumpMaxWallAngle           float32
	WallJumpMaxJumpAngleFromNormal float32
	// WallJumpProbes are the probe ray directions in character space.
	WallJumpProbes []mgl32.Vec3
	// WallJumpProbeOffset is the probe ray origin in character space.
	WallJumpProbeOffset mgl32.Vec3

	CameraMovementSharpness float32
	CrouchingCameraHeight   float32
	StandingCameraHeight    float32

	StandingCapsule  Capsule
	CrouchingCapsule Capsule

	MaxStableSlopeAngle  float32
	OrientTowardsGravity bool
	Gravity              mgl32.Vec3
}

// CrouchSpeed is the grounded target speed while crouching.
func (cfg PlayerConfig) CrouchSpeed() float32 {
	return cfg.RunSpeed * cfg.CrouchSpeedFactor
}

// SprintSpeed is the grounded target speed while sprinting.
func (cfg PlayerConfig) SprintSpeed() float32 {
	return cfg.RunSpeed * cfg.SprintSpeedMultiplier
}

// SprintVelocityThreshold is the speed at or below which sprinting ends.
func (cfg PlayerConfig) SprintVelocityThreshold() float32 {
	return cfg.RunSpeed * cfg.SprintVelocityThresholdFactor
}

// AirAccelerationSpeed is the rate at which move input accelerates an airborne player.
func (cfg PlayerConfig) AirAccelerationSpeed() float32 {
	return cfg.RunSpeed * cfg.AirControlFactor
}

// StandingSlideOnLandVelocityThreshold is the landing speed that starts a slide recovery when standing.
func (cfg PlayerConfig) StandingSlideOnLandVelocityThreshold() float32 {
	return cfg.RunSpeed * cfg.StandingSlideOnLandVelocityMultiplier
}

// CrouchingSlideOnLandVelocityThreshold is the landing speed that starts a slide recovery when crouched.
func (cfg PlayerConfig) CrouchingSlideOnLandVelocityThreshold() float32 {
	return cfg.CrouchSpeed() * cfg.CrouchingSlideOnLandVelocityMultiplier
}

// DefaultPlayerConfig returns the stock player tuning.
func DefaultPlayerConfig() PlayerConfig {
	const diag = float32(0.70710677)
	return PlayerConfig{
		RunSpeed:                      game.DefaultRunSpeed,
		CrouchSpeedFactor:             game.DefaultCrouchSpeedFactor,
		SprintSpeedMultiplier:         game.DefaultSprintSpeedMultiplier,
		WalkSpeedFactor:               game.DefaultWalkSpeedFactor,
		SprintVelocityThresholdFactor: game.DefaultSprintVelocityThresholdFactor,
		StableMovementSharpness:       game.DefaultStableMovementSharpness,
		OrientationSharpness:          game.DefaultOrientationSharpness,

		MaxAirSpeed:      game.DefaultMaxAirSpeed,
		AirControlFactor: game.DefaultAirControlFactor,
		Drag:             game.DefaultDrag,

		JumpHeight:       game.DefaultJumpHeight,
		JumpCooldownTime: game.DefaultJumpCooldownTime,

		SlideVelocityThresholdPreGrace:         game.DefaultSlideVelocityThresholdPreGrace,
		SlideVelocityThresholdPostGrace:        game.DefaultSlideVelocityThresholdPostGrace,
		SlideSpeedMultiplier:                   game.DefaultSlideSpeedMultiplier,
		SlideRecoverySpeedMultiplier:           game.DefaultSlideRecoverySpeedMultiplier,
		StandingSlideOnLandVelocityMultiplier:  game.DefaultStandingSlideOnLandVelocityMultiplier,
		CrouchingSlideOnLandVelocityMultiplier: game.DefaultCrouchingSlideOnLandVelocityMultiplier,
		SlideMinimumDuration:                   game.DefaultSlideMinimumDuration,
		SlideDrag:                              game.DefaultSlideDrag,
		SlideGravityAccelerationFactor:         game.DefaultSlideGravityAccelerationFactor,
		SlideGravityUpwardMotionMultiplier:     game.DefaultSlideGravityUpwardMotionMultiplier,
		SlideSlopeGraceTime:                    game.DefaultSlideSlopeGraceTime,
		SlideSlopeGraceAngle:                   game.DefaultSlideSlopeGraceAngle,
		SlideSlopeUnstableAngle:                game.DefaultSlideSlopeUnstableAngle,
		SlideRotationDegreesPerSecondStable:    game.DefaultSlideRotationDegreesPerSecondStable,
		SlideRotationDegreesPerSecondUnstable:  game.DefaultSlideRotationDegreesPerSecondUnstable,

		WallJumpRayLength:              game.DefaultWallJumpRayLength,
		WallJumpHeight:                 game.DefaultWallJumpHeight,
		WallJumpCooldownTime:           game.DefaultWallJumpCooldownTime,
		WallJumpMinWallAngle:           game.DefaultWallJumpMinWallAngle,
		WallJumpMaxWallAngle:           game.DefaultWallJumpMaxWallAngle,
		WallJumpMaxJumpAngleFromNormal: game.DefaultWallJumpMaxJumpAngleFromNormal,
		WallJumpProbes: []mgl32.Vec3{
			{0, diag, diag},
			{diag, diag, 0},
			{-diag, diag, 0},
			{0, diag, -diag},
		},
		WallJumpProbeOffset: mgl32.Vec3{0, game.StandingCapsuleYOffset, 0},

		CameraMovementSharpness: game.DefaultCameraMovementSharpness,
		CrouchingCameraHeight:   game.DefaultCrouchingCameraHeight,
		StandingCameraHeight:    game.DefaultStandingCameraHeight,

		StandingCapsule:  StandingCapsule(),
		CrouchingCapsule: CrouchingCapsule(),

		MaxStableSlopeAngle: game.DefaultMaxStableSlopeAngle,
		Gravity:             mgl32.Vec3{0, game.DefaultPlayerGravity, 0},
	}
}

// EnemyConfig holds the load-time tuning of an enemy controller.
type EnemyConfig struct {
	MaxStableRunSpeed       float32
	StableMovementSharpness float32
	OrientationSharpness    float32

	MaxAirMoveSpeed      float32
	AirAccelerationSpeed float32
	Drag                 float32

	MaxStableSlopeAngle  float32
	OrientTowardsGravity bool
	Gravity              mgl32.Vec3
}

// DefaultEnemyConfig returns the stock enemy tuning.
func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		MaxStableRunSpeed:       game.DefaultEnemyMaxStableRunSpeed,
		StableMovementSharpness: game.DefaultEnemyStableMovementSharpness,
		OrientationSharpness:    game.DefaultEnemyOrientationSharpness,
		MaxAirMoveSpeed:         game.DefaultEnemyMaxAirMoveSpeed,
		AirAccelerationSpeed:    game.DefaultEnemyAirAccelerationSpeed,
		Drag:                    game.DefaultEnemyDrag,
		MaxStableSlopeAngle:     game.DefaultMaxStableSlopeAngle,
		Gravity:                 mgl32.Vec3{0, game.DefaultEnemyGravity, 0},
	}
}

// Archetype identifies which character family a controller was built for.
type Archetype uint8

const (
	ArchetypePlayer Archetype = iota
	ArchetypeEnemy
)

func (a Archetype) String() string {
	switch a {
	case ArchetypePlayer:
		return "player"
	case ArchetypeEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// airControlMode selects how move input acts on an airborne character.
type airControlMode uint8

const (
	// airControlAcceleration adds move input as a raw acceleration.
	airControlAcceleration airControlMode = iota
	// airControlTargetSpeed accelerates towards a target air velocity.
	airControlTargetSpeed
)

// archetype is the locomotion skeleton shared by every character family. Family specific
// mechanics are switched on by the optional player tuning on the controller.
type archetype struct {
	kind Archetype

	stableSpeed          float32
	stableSharpness      float32
	orientationSharpness float32

	airControl      airControlMode
	airAcceleration float32
	maxAirSpeed     float32
	// reorientAirborne keeps airborne velocity tangent to ground found below the character.
	reorientAirborne bool
	drag             float32

	maxStableSlopeAngle  float32
	orientTowardsGravity bool
	gravity              mgl32.Vec3
}

func playerArchetype(cfg PlayerConfig) archetype {
	return archetype{
		kind:                 ArchetypePlayer,
		stableSpeed:          cfg.RunSpeed,
		stableSharpness:      cfg.StableMovementSharpness,
		orientationSharpness: cfg.OrientationSharpness,
		airControl:           airControlAcceleration,
		airAcceleration:      cfg.AirAccelerationSpeed(),
		maxAirSpeed:          cfg.MaxAirSpeed,
		reorientAirborne:     true,
		drag:                 cfg.Drag,
		maxStableSlopeAngle:  cfg.MaxStableSlopeAngle,
		orientTowardsGravity: cfg.OrientTowardsGravity,
		gravity:              cfg.Gravity,
	}
}

func enemyArchetype(cfg EnemyConfig) archetype {
	return archetype{
		kind:                 ArchetypeEnemy,
		stableSpeed:          cfg.MaxStableRunSpeed,
		stableSharpness:      cfg.StableMovementSharpness,
		orientationSharpness: cfg.OrientationSharpness,
		airControl:           airControlTargetSpeed,
		airAcceleration:      cfg.AirAccelerationSpeed,
		maxAirSpeed:          cfg.MaxAirMoveSpeed,
		drag:                 cfg.Drag,
		maxStableSlopeAngle:  cfg.MaxStableSlopeAngle,
		orientTowardsGravity: cfg.OrientTowardsGravity,
		gravity:              cfg.Gravity,
	}
}
