package settings

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/ai"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings is the tuning file of the simulator.
type Settings struct {
	Simulation struct {
		TickRate   int
		Workers    int
		GroundSnap float32
		LogLevel   string
		// DebugModes lists the motion debug modes enabled on every character.
		DebugModes []string
	}
	Player PlayerSettings
	Enemy  EnemySettings
	AI     AISettings
}

// PlayerSettings mirrors motion.PlayerConfig with file-friendly types.
type PlayerSettings struct {
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
	Gravity          float32

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

	CameraMovementSharpness float32
	CrouchingCameraHeight   float32
	StandingCameraHeight    float32

	MaxStableSlopeAngle  float32
	OrientTowardsGravity bool
}

type EnemySettings struct {
	MaxStableRunSpeed       float32
	StableMovementSharpness float32
	OrientationSharpness    float32
	MaxAirMoveSpeed         float32
	AirAccelerationSpeed    float32
	Drag                    float32
	Gravity                 float32
	MaxStableSlopeAngle     float32
	OrientTowardsGravity    bool
}

type AISettings struct {
	MaxHealth          float32
	AttackRange        float32
	AttackDamage       float32
	AttackTime         float32
	FleeHealthFraction float32
	SightRange         float32
	FleeSpeedScale     float32
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	s := Settings{}
	s.Simulation.TickRate = game.DefaultTickRate
	s.Simulation.GroundSnap = 0.1
	s.Simulation.LogLevel = logrus.InfoLevel.String()
	s.Simulation.DebugModes = []string{}

	p := motion.DefaultPlayerConfig()
	s.Player = PlayerSettings{
		RunSpeed:                      p.RunSpeed,
		CrouchSpeedFactor:             p.CrouchSpeedFactor,
		SprintSpeedMultiplier:         p.SprintSpeedMultiplier,
		WalkSpeedFactor:               p.WalkSpeedFactor,
		SprintVelocityThresholdFactor: p.SprintVelocityThresholdFactor,
		StableMovementSharpness:       p.StableMovementSharpness,
		OrientationSharpness:          p.OrientationSharpness,

		MaxAirSpeed:      p.MaxAirSpeed,
		AirControlFactor: p.AirControlFactor,
		Drag:             p.Drag,
		Gravity:          p.Gravity.Y(),

		JumpHeight:       p.JumpHeight,
		JumpCooldownTime: p.JumpCooldownTime,

		SlideVelocityThresholdPreGrace:         p.SlideVelocityThresholdPreGrace,
		SlideVelocityThresholdPostGrace:        p.SlideVelocityThresholdPostGrace,
		SlideSpeedMultiplier:                   p.SlideSpeedMultiplier,
		SlideRecoverySpeedMultiplier:           p.SlideRecoverySpeedMultiplier,
		StandingSlideOnLandVelocityMultiplier:  p.StandingSlideOnLandVelocityMultiplier,
		CrouchingSlideOnLandVelocityMultiplier: p.CrouchingSlideOnLandVelocityMultiplier,
		SlideMinimumDuration:                   p.SlideMinimumDuration,
		SlideDrag:                              p.SlideDrag,
		SlideGravityAccelerationFactor:         p.SlideGravityAccelerationFactor,
		SlideGravityUpwardMotionMultiplier:     p.SlideGravityUpwardMotionMultiplier,
		SlideSlopeGraceTime:                    p.SlideSlopeGraceTime,
		SlideSlopeGraceAngle:                   p.SlideSlopeGraceAngle,
		SlideSlopeUnstableAngle:                p.SlideSlopeUnstableAngle,
		SlideRotationDegreesPerSecondStable:    p.SlideRotationDegreesPerSecondStable,
		SlideRotationDegreesPerSecondUnstable:  p.SlideRotationDegreesPerSecondUnstable,

		WallJumpRayLength:              p.WallJumpRayLength,
		WallJumpHeight:                 p.WallJumpHeight,
		WallJumpCooldownTime:           p.WallJumpCooldownTime,
		WallJumpMinWallAngle:           p.WallJumpMinWallAngle,
		WallJumpMaxWallAngle:           p.WallJumpMaxWallAngle,
		WallJumpMaxJumpAngleFromNormal: p.WallJumpMaxJumpAngleFromNormal,

		CameraMovementSharpness: p.CameraMovementSharpness,
		CrouchingCameraHeight:   p.CrouchingCameraHeight,
		StandingCameraHeight:    p.StandingCameraHeight,

		MaxStableSlopeAngle:  p.MaxStableSlopeAngle,
		OrientTowardsGravity: p.OrientTowardsGravity,
	}

	e := motion.DefaultEnemyConfig()
	s.Enemy = EnemySettings{
		MaxStableRunSpeed:       e.MaxStableRunSpeed,
		StableMovementSharpness: e.StableMovementSharpness,
		OrientationSharpness:    e.OrientationSharpness,
		MaxAirMoveSpeed:         e.MaxAirMoveSpeed,
		AirAccelerationSpeed:    e.AirAccelerationSpeed,
		Drag:                    e.Drag,
		Gravity:                 e.Gravity.Y(),
		MaxStableSlopeAngle:     e.MaxStableSlopeAngle,
		OrientTowardsGravity:    e.OrientTowardsGravity,
	}

	a := ai.DefaultConfig()
	s.AI = AISettings{
		MaxHealth:          a.MaxHealth,
		AttackRange:        a.AttackRange,
		AttackDamage:       a.AttackDamage,
		AttackTime:         a.AttackTime,
		FleeHealthFraction: a.FleeHealthFraction,
		SightRange:         a.SightRange,
		FleeSpeedScale:     a.FleeSpeedScale,
	}
	return s
}

// PlayerConfig converts the player section into controller tuning.
func (s Settings) PlayerConfig() motion.PlayerConfig {
	p := s.Player
	cfg := motion.DefaultPlayerConfig()
	cfg.RunSpeed = p.RunSpeed
	cfg.CrouchSpeedFactor = p.CrouchSpeedFactor
	cfg.SprintSpeedMultiplier = p.SprintSpeedMultiplier
	cfg.WalkSpeedFactor = p.WalkSpeedFactor
	cfg.SprintVelocityThresholdFactor = p.SprintVelocityThresholdFactor
	cfg.StableMovementSharpness = p.StableMovementSharpness
	cfg.OrientationSharpness = p.OrientationSharpness

	cfg.MaxAirSpeed = p.MaxAirSpeed
	cfg.AirControlFactor = p.AirControlFactor
	cfg.Drag = p.Drag
	cfg.Gravity = mgl32.Vec3{0, p.Gravity, 0}

	cfg.JumpHeight = p.JumpHeight
	cfg.JumpCooldownTime = p.JumpCooldownTime

	cfg.SlideVelocityThresholdPreGrace = p.SlideVelocityThresholdPreGrace
	cfg.SlideVelocityThresholdPostGrace = p.SlideVelocityThresholdPostGrace
	cfg.SlideSpeedMultiplier = p.SlideSpeedMultiplier
	cfg.SlideRecoverySpeedMultiplier = p.SlideRecoverySpeedMultiplier
	cfg.StandingSlideOnLandVelocityMultiplier = p.StandingSlideOnLandVelocityMultiplier
	cfg.CrouchingSlideOnLandVelocityMultiplier = p.CrouchingSlideOnLandVelocityMultiplier
	cfg.SlideMinimumDuration = p.SlideMinimumDuration
	cfg.SlideDrag = p.SlideDrag
	cfg.SlideGravityAccelerationFactor = p.SlideGravityAccelerationFactor
	cfg.SlideGravityUpwardMotionMultiplier = p.SlideGravityUpwardMotionMultiplier
	cfg.SlideSlopeGraceTime = p.SlideSlopeGraceTime
	cfg.SlideSlopeGraceAngle = p.SlideSlopeGraceAngle
	cfg.SlideSlopeUnstableAngle = p.SlideSlopeUnstableAngle
	cfg.SlideRotationDegreesPerSecondStable = p.SlideRotationDegreesPerSecondStable
	cfg.SlideRotationDegreesPerSecondUnstable = p.SlideRotationDegreesPerSecondUnstable

	cfg.WallJumpRayLength = p.WallJumpRayLength
	cfg.WallJumpHeight = p.WallJumpHeight
	cfg.WallJumpCooldownTime = p.WallJumpCooldownTime
	cfg.WallJumpMinWallAngle = p.WallJumpMinWallAngle
	cfg.WallJumpMaxWallAngle = p.WallJumpMaxWallAngle
	cfg.WallJumpMaxJumpAngleFromNormal = p.WallJumpMaxJumpAngleFromNormal

	cfg.CameraMovementSharpness = p.CameraMovementSharpness
	cfg.CrouchingCameraHeight = p.CrouchingCameraHeight
	cfg.StandingCameraHeight = p.StandingCameraHeight

	cfg.MaxStableSlopeAngle = p.MaxStableSlopeAngle
	cfg.OrientTowardsGravity = p.OrientTowardsGravity
	return cfg
}

// EnemyConfig converts the enemy section into controller tuning.
func (s Settings) EnemyConfig() motion.EnemyConfig {
	e := s.Enemy
	return motion.EnemyConfig{
		MaxStableRunSpeed:       e.MaxStableRunSpeed,
		StableMovementSharpness: e.StableMovementSharpness,
		OrientationSharpness:    e.OrientationSharpness,
		MaxAirMoveSpeed:         e.MaxAirMoveSpeed,
		AirAccelerationSpeed:    e.AirAccelerationSpeed,
		Drag:                    e.Drag,
		MaxStableSlopeAngle:     e.MaxStableSlopeAngle,
		OrientTowardsGravity:    e.OrientTowardsGravity,
		Gravity:                 mgl32.Vec3{0, e.Gravity, 0},
	}
}

// AIConfig converts the AI section into brain tuning.
func (s Settings) AIConfig() ai.Config {
	a := s.AI
	return ai.Config{
		MaxHealth:          a.MaxHealth,
		AttackRange:        a.AttackRange,
		AttackDamage:       a.AttackDamage,
		AttackTime:         a.AttackTime,
		FleeHealthFraction: a.FleeHealthFraction,
		SightRange:         a.SightRange,
		FleeSpeedScale:     a.FleeSpeedScale,
	}
}

// Debugger builds a motion debugger with the configured modes enabled.
func (s Settings) Debugger(log logrus.FieldLogger) *motion.Debugger {
	if len(s.Simulation.DebugModes) == 0 {
		return nil
	}
	modes := make([]motion.DebugMode, 0, len(s.Simulation.DebugModes))
	for _, name := range s.Simulation.DebugModes {
		if mode, ok := motion.ParseDebugMode(name); ok {
			modes = append(modes, mode)
		}
	}
	return motion.NewDebugger(log, modes...)
}

// Validate reports every setting that is out of range.
func (s Settings) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(s.Simulation.TickRate > 0, "Simulation.TickRate must be positive, got %d", s.Simulation.TickRate)
	check(s.Simulation.Workers >= 0, "Simulation.Workers must not be negative, got %d", s.Simulation.Workers)
	check(s.Simulation.GroundSnap >= 0, "Simulation.GroundSnap must not be negative, got %v", s.Simulation.GroundSnap)
	if _, err := logrus.ParseLevel(s.Simulation.LogLevel); err != nil {
		check(false, "Simulation.LogLevel: %v", err)
	}
	for _, name := range s.Simulation.DebugModes {
		_, ok := motion.ParseDebugMode(name)
		check(ok, "Simulation.DebugModes: unknown mode %q", name)
	}

	p := s.Player
	positive := map[string]float32{
		"Player.RunSpeed":                p.RunSpeed,
		"Player.StableMovementSharpness": p.StableMovementSharpness,
		"Player.OrientationSharpness":    p.OrientationSharpness,
		"Player.MaxAirSpeed":             p.MaxAirSpeed,
		"Player.JumpHeight":              p.JumpHeight,
		"Player.WallJumpHeight":          p.WallJumpHeight,
		"Player.WallJumpRayLength":       p.WallJumpRayLength,
		"Player.CameraMovementSharpness": p.CameraMovementSharpness,
		"Enemy.MaxStableRunSpeed":        s.Enemy.MaxStableRunSpeed,
		"Enemy.StableMovementSharpness":  s.Enemy.StableMovementSharpness,
		"AI.MaxHealth":                   s.AI.MaxHealth,
	}
	for _, name := range slices.Sorted(maps.Keys(positive)) {
		check(positive[name] > 0, "%s must be positive, got %v", name, positive[name])
	}
	nonNegative := map[string]float32{
		"Player.JumpCooldownTime":     p.JumpCooldownTime,
		"Player.WallJumpCooldownTime": p.WallJumpCooldownTime,
		"Player.SlideMinimumDuration": p.SlideMinimumDuration,
		"Player.SlideSlopeGraceTime":  p.SlideSlopeGraceTime,
		"Player.Drag":                 p.Drag,
		"Player.SlideDrag":            p.SlideDrag,
		"Enemy.Drag":                  s.Enemy.Drag,
		"Enemy.AirAccelerationSpeed":  s.Enemy.AirAccelerationSpeed,
		"AI.AttackTime":               s.AI.AttackTime,
		"AI.AttackRange":              s.AI.AttackRange,
	}
	for _, name := range slices.Sorted(maps.Keys(nonNegative)) {
		check(nonNegative[name] >= 0, "%s must not be negative, got %v", name, nonNegative[name])
	}
	check(p.WallJumpMinWallAngle <= p.WallJumpMaxWallAngle, "Player.WallJumpMinWallAngle (%v) exceeds Player.WallJumpMaxWallAngle (%v)", p.WallJumpMinWallAngle, p.WallJumpMaxWallAngle)
	check(p.MaxStableSlopeAngle >= 0 && p.MaxStableSlopeAngle <= 90, "Player.MaxStableSlopeAngle must be within [0, 90], got %v", p.MaxStableSlopeAngle)
	check(s.Enemy.MaxStableSlopeAngle >= 0 && s.Enemy.MaxStableSlopeAngle <= 90, "Enemy.MaxStableSlopeAngle must be within [0, 90], got %v", s.Enemy.MaxStableSlopeAngle)
	check(s.AI.FleeHealthFraction >= 0 && s.AI.FleeHealthFraction <= 1, "AI.FleeHealthFraction must be within [0, 1], got %v", s.AI.FleeHealthFraction)
	check(s.AI.FleeSpeedScale > 0 && s.AI.FleeSpeedScale <= 1, "AI.FleeSpeedScale must be within (0, 1], got %v", s.AI.FleeSpeedScale)

	if len(problems) > 0 {
		return oerror.New(game.ErrorInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// Load reads the settings file at path. If the file does not exist, the default settings are
// written to it and returned.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s := DefaultSettings()
		return s, Save(path, s)
	}
	return Read(path)
}

// Read decodes and validates the settings file at path.
func Read(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.New(game.ErrorSettingsDecode, path, err)
	}
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, oerror.New(game.ErrorSettingsDecode, path, err)
	}
	if s.Simulation.DebugModes == nil {
		s.Simulation.DebugModes = []string{}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save encodes s to path.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return oerror.New(game.ErrorSettingsEncode, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.New(game.ErrorSettingsEncode, err)
	}
	return nil
}
