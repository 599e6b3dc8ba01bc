package game

// Player locomotion defaults.
const (
	DefaultRunSpeed                      = float32(5)
	DefaultCrouchSpeedFactor             = float32(0.7)
	DefaultSprintSpeedMultiplier         = float32(1.6)
	DefaultWalkSpeedFactor               = float32(0.5)
	DefaultSprintVelocityThresholdFactor = float32(0.3)
	DefaultStableMovementSharpness       = float32(12)
	DefaultOrientationSharpness          = float32(12)

	DefaultMaxAirSpeed      = float32(20)
	DefaultAirControlFactor = float32(1.1)
	DefaultDrag             = float32(0.1)

	DefaultJumpHeight       = float32(1.3)
	DefaultJumpCooldownTime = float32(0.2)

	DefaultMaxStableSlopeAngle = float32(45)
	DefaultPlayerGravity       = float32(-20)
)

// Slide defaults.
const (
	DefaultSlideVelocityThresholdPreGrace         = float32(2.25)
	DefaultSlideVelocityThresholdPostGrace        = float32(5)
	DefaultSlideSpeedMultiplier                   = float32(2.5)
	DefaultSlideRecoverySpeedMultiplier           = float32(1)
	DefaultStandingSlideOnLandVelocityMultiplier  = float32(2)
	DefaultCrouchingSlideOnLandVelocityMultiplier = float32(1.5)
	DefaultSlideMinimumDuration                   = float32(0.3)
	DefaultSlideDrag                              = float32(2.5)
	DefaultSlideGravityAccelerationFactor         = float32(1)
	DefaultSlideGravityUpwardMotionMultiplier     = float32(1.5)
	DefaultSlideSlopeGraceTime                    = float32(0.1)
	DefaultSlideSlopeGraceAngle                   = float32(45)
	DefaultSlideSlopeUnstableAngle                = float32(15)
	DefaultSlideRotationDegreesPerSecondStable    = float32(135)
	DefaultSlideRotationDegreesPerSecondUnstable  = float32(90)
)

// Wall jump defaults.
const (
	DefaultWallJumpRayLength              = float32(0.6)
	DefaultWallJumpHeight                 = float32(1.8)
	DefaultWallJumpCooldownTime           = float32(0.2)
	DefaultWallJumpMinWallAngle           = float32(80)
	DefaultWallJumpMaxWallAngle           = float32(100)
	DefaultWallJumpMaxJumpAngleFromNormal = float32(90)
)

// Capsule and camera defaults.
const (
	CapsuleRadius          = float32(0.3)
	StandingCapsuleHeight  = float32(1.8)
	StandingCapsuleYOffset = float32(0.9)
	CrouchCapsuleHeight    = float32(0.9)
	CrouchCapsuleYOffset   = float32(0.45)

	DefaultCameraMovementSharpness = float32(12)
	DefaultCrouchingCameraHeight   = float32(0.85)
	DefaultStandingCameraHeight    = float32(1.5)
)

// Enemy locomotion defaults.
const (
	DefaultEnemyMaxStableRunSpeed       = float32(5)
	DefaultEnemyStableMovementSharpness = float32(12)
	DefaultEnemyOrientationSharpness    = float32(10)
	DefaultEnemyMaxAirMoveSpeed         = float32(5)
	DefaultEnemyAirAccelerationSpeed    = float32(0)
	DefaultEnemyDrag                    = float32(0.1)
	DefaultEnemyGravity                 = float32(-25)
)

// Enemy AI defaults.
const (
	DefaultEnemyMaxHealth      = float32(100)
	DefaultMeleeAttackRange    = float32(1.2)
	DefaultMeleeAttackTime     = float32(0.5)
	DefaultMeleeAttackDamage   = float32(10)
	DefaultFleeHealthFraction  = float32(0.2)
	DefaultEnemySightRange     = float32(15)
	DefaultEnemyFleeSpeedScale = float32(1)
)

// DefaultTickRate is the number of simulation ticks per second used by the headless runner.
const DefaultTickRate = 60
