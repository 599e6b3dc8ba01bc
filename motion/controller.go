package motion

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/assert"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/utils"
)

// Options are the collaborators injected into a controller.
type Options struct {
	// Probes answers raycasts and overlap tests. A nil value behaves like an empty world.
	Probes ProbeService
	// Sink receives animation state. If it also implements Observer, it receives motion events too.
	Sink AnimationSink
	// Debugger receives diagnostics. A nil value disables them.
	Debugger *Debugger
	// Name identifies the character in diagnostics.
	Name string
	// Rotation is the initial facing. The zero value faces +Z.
	Rotation mgl32.Quat
}

// Controller is the motion state machine of one character. It is not safe for concurrent use: each
// controller is ticked by exactly one owner.
type Controller struct {
	arch archetype
	// player holds the tuning of player-only mechanics. It is nil for enemies, which disables
	// sprinting, sliding, crouching, jumping and wall jumping.
	player *PlayerConfig

	probes   ProbeService
	sink     AnimationSink
	observer Observer
	dbg      *Debugger

	now      float32
	velocity mgl32.Vec3
	rotation mgl32.Quat

	state            state
	previousState    StateKind
	timeEnteredState float32
	transitioning    bool
	pendingFrom      StateKind
	pendingTo        StateKind

	jump                jumpArbiter
	wallJump            wallJumpArbiter
	internalVelocityAdd mgl32.Vec3

	crouch              crouchState
	cameraHeight        float32
	cameraTargetHeight  float32
	maxStableSlopeAngle float32

	input     Input
	buttons   buttonLatch
	moveInput mgl32.Vec3
	lookInput mgl32.Vec3

	report               GroundingReport
	lastReport           GroundingReport
	timeLeftStableGround float32
	forceUnground        bool

	// airborneSinceJump is set once the caller reports no ground after the last jump.
	airborneSinceJump bool

	anim   animationState
	result Result
}

// NewPlayer returns a controller with every player mechanic enabled.
func NewPlayer(cfg PlayerConfig, opts Options) *Controller {
	c := newController(playerArchetype(cfg), opts)
	c.player = &cfg
	c.cameraHeight = cfg.StandingCameraHeight
	c.cameraTargetHeight = cfg.StandingCameraHeight
	c.result = c.buildResult(nil)
	return c
}

// NewEnemy returns a controller limited to default locomotion.
func NewEnemy(cfg EnemyConfig, opts Options) *Controller {
	c := newController(enemyArchetype(cfg), opts)
	c.result = c.buildResult(nil)
	return c
}

func newController(arch archetype, opts Options) *Controller {
	c := &Controller{
		arch:                arch,
		probes:              opts.Probes,
		sink:                opts.Sink,
		dbg:                 opts.Debugger,
		rotation:            opts.Rotation,
		state:               &defaultState{},
		maxStableSlopeAngle: arch.maxStableSlopeAngle,
	}
	if c.probes == nil {
		c.probes = NopProbes{}
	}
	if c.sink == nil {
		c.sink = NopSink{}
	}
	if o, ok := c.sink.(Observer); ok {
		c.observer = o
	}
	if c.rotation.Len() == 0 {
		c.rotation = mgl32.QuatIdent()
	}
	if opts.Name != "" {
		c.dbg = c.dbg.with("character", opts.Name)
	}
	return c
}

// ReconfigurePlayer replaces the tuning of a player controller. It must be called between ticks and
// returns false for enemies. The current state, velocity and timers are kept.
func (c *Controller) ReconfigurePlayer(cfg PlayerConfig) bool {
	if c.player == nil {
		return false
	}
	c.arch = playerArchetype(cfg)
	c.player = &cfg
	if c.state.Kind() != StateSliding {
		c.maxStableSlopeAngle = c.arch.maxStableSlopeAngle
	}
	return true
}

// ReconfigureEnemy replaces the tuning of an enemy controller. It must be called between ticks and
// returns false for players.
func (c *Controller) ReconfigureEnemy(cfg EnemyConfig) bool {
	if c.player != nil {
		return false
	}
	c.arch = enemyArchetype(cfg)
	c.maxStableSlopeAngle = c.arch.maxStableSlopeAngle
	return true
}

// Tick advances the controller by one step. The steps always run in the same order: input,
// grounding transitions, rotation, velocity, and the after-update bookkeeping. Invalid input is
// ignored and the previous result is returned.
func (c *Controller) Tick(in Input) Result {
	if !in.valid() {
		c.dbg.Notify(DebugModeState, true, "ignored invalid input (dt=%v move=%v)", in.DeltaTime, in.Move)
		return c.result
	}

	ctx := newCtx(in.DeltaTime)
	defer putCtx(ctx)

	c.now += in.DeltaTime
	c.input = in
	c.buttons.release(in)
	c.lastReport = c.report
	c.report = in.Grounding
	if !in.Grounding.FoundAnyGround {
		c.airborneSinceJump = true
	}
	if c.forceUnground {
		c.report = GroundingReport{}
		c.forceUnground = false
	}

	c.readInput()
	c.state.handleInput(c, ctx)
	c.state.beforeUpdate(c, ctx)
	c.updateCamera(ctx)
	c.groundingUpdate(ctx)

	c.updateRotation(ctx)
	v := c.state.updateVelocity(c, ctx, c.velocity)
	if !game.ValidVec3(v) {
		c.dbg.Notify(DebugModeVelocity, true, "discarded non-finite velocity %v", v)
		v = mgl32.Vec3{}
	}
	c.velocity = v
	c.state.afterUpdate(c, ctx)

	c.result = c.buildResult(ctx)
	return c.result
}

// readInput turns the raw move vector into a world-space move input relative to the camera.
func (c *Controller) readInput() {
	move := game.NormalizeOrZero(mgl32.Vec3{c.input.Move.X(), 0, c.input.Move.Y()})
	if s := c.input.SpeedScale; s > 0 && s < 1 {
		move = move.Mul(s)
	}
	if c.player != nil {
		if c.input.Walk {
			move = move.Mul(c.player.WalkSpeedFactor)
		}
		c.setWalking(c.input.Walk)
	}
	c.setMovement(move.Len())

	c.moveInput = game.PlanarRotation(c.input.Look, c.up()).Rotate(move)
	c.updateLookInput()
}

// updateCamera eases the eye height towards the crouch or standing height.
func (c *Controller) updateCamera(ctx *tickContext) {
	if c.player == nil {
		return
	}
	c.cameraHeight = game.LerpFloat(c.cameraHeight, c.cameraTargetHeight, game.ExpSmoothing(c.player.CameraMovementSharpness, ctx.dt))
}

// groundingUpdate reacts to the change in stable grounding caused by the previous tick's movement.
func (c *Controller) groundingUpdate(ctx *tickContext) {
	switch {
	case c.report.StableOnGround && !c.lastReport.StableOnGround:
		ctx.landed = true
		c.dbg.Notify(DebugModeState, true, "landed at %v", c.velocity)
		if c.observer != nil {
			c.observer.Landed(c.velocity)
		}
		c.state.onLanded(c)
	case !c.report.StableOnGround && c.lastReport.StableOnGround:
		c.timeLeftStableGround = c.now
		c.dbg.Notify(DebugModeState, true, "left stable ground at %v", c.velocity)
		c.state.onLeaveStableGround(c)
	}
}

// transitionTo exits the current state, swaps in next and enters it. Transitions never nest.
func (c *Controller) transitionTo(next state) {
	from, to := c.state.Kind(), next.Kind()
	assert.IsTrue(!c.transitioning, game.ErrorReentrantTransition, from, to, c.pendingFrom, c.pendingTo)

	c.transitioning = true
	c.pendingFrom, c.pendingTo = from, to

	if c.dbg.Enabled(DebugModeState) {
		data := orderedmap.NewOrderedMap[string, any]()
		data.Set("from", from)
		data.Set("to", to)
		data.Set("after", c.TimeSinceEnteringState())
		data.Set("speed", c.velocity.Len())
		data.Set("stable", c.report.StableOnGround)
		data.Set("crouching", c.crouch.crouching)
		c.dbg.Notify(DebugModeState, true, "transition %s", utils.OrderedMapToString(*data))
	}

	c.state.exit(c, to)
	c.previousState = from
	c.state = next
	c.timeEnteredState = c.now
	next.enter(c, from)

	c.transitioning = false
	if c.observer != nil {
		c.observer.StateChanged(from, to)
	}
}

func (c *Controller) buildResult(ctx *tickContext) Result {
	r := Result{
		Velocity:            c.velocity,
		Rotation:            c.rotation,
		State:               c.state.Kind(),
		ForceUnground:       c.forceUnground,
		MaxStableSlopeAngle: c.maxStableSlopeAngle,
		Capsule:             c.capsule(),
		Crouching:           c.crouch.crouching,
		CameraHeight:        c.cameraHeight,
	}
	if ctx != nil {
		r.Jumped = ctx.jumped
		r.WallJumped = ctx.wallJumped
		r.Landed = ctx.landed
	}
	return r
}

// AddVelocity queues an impulse to be added to the velocity on the next velocity update. Impulses
// are only accepted in the default state.
func (c *Controller) AddVelocity(v mgl32.Vec3) bool {
	if c.state.Kind() != StateDefault || !game.ValidVec3(v) {
		return false
	}
	c.internalVelocityAdd = c.internalVelocityAdd.Add(v)
	return true
}

// OnGroundHit is called by the motor when it collides with ground during movement.
func (c *Controller) OnGroundHit() {
	c.state.onGroundHit(c)
}

// OnMovementHit is called by the motor when it collides with a surface during movement.
func (c *Controller) OnMovementHit(normal mgl32.Vec3) {
	if !game.ValidVec3(normal) {
		return
	}
	c.state.onMovementHit(c, normal)
}

// Velocity is the current velocity.
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.velocity
}

// Rotation is the current facing.
func (c *Controller) Rotation() mgl32.Quat {
	return c.rotation
}

// State is the kind of the active state.
func (c *Controller) State() StateKind {
	return c.state.Kind()
}

// PreviousState is the kind of the state active before the last transition.
func (c *Controller) PreviousState() StateKind {
	return c.previousState
}

// Archetype is the character family the controller was built for.
func (c *Controller) Archetype() Archetype {
	return c.arch.kind
}

// Now is the controller's clock: the sum of every simulated tick's delta time.
func (c *Controller) Now() float32 {
	return c.now
}

// TimeSinceEnteringState is the age of the active state.
func (c *Controller) TimeSinceEnteringState() float32 {
	return c.now - c.timeEnteredState
}

// TimeSinceGrounded is zero while on stable ground, and otherwise the time since stable ground was
// left.
func (c *Controller) TimeSinceGrounded() float32 {
	if c.report.StableOnGround {
		return 0
	}
	return c.now - c.timeLeftStableGround
}

// Crouching reports whether the crouching capsule is in use.
func (c *Controller) Crouching() bool {
	return c.crouch.crouching
}

// JumpPhase is the state of the jump request.
func (c *Controller) JumpPhase() JumpPhase {
	return c.jump.phase
}

// WallJumpPhase is the state of the wall-jump request.
func (c *Controller) WallJumpPhase() WallJumpPhase {
	return c.wallJump.phase
}

// SlideDirection is the direction captured when the active slide started. It is only available
// while sliding.
func (c *Controller) SlideDirection() (mgl32.Vec3, bool) {
	s, ok := c.state.(*slideState)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return s.direction, true
}

// Result is the result of the last tick.
func (c *Controller) Result() Result {
	return c.result
}
