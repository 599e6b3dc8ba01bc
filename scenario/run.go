package scenario

import (
	"context"

	"github.com/oomph-ac/charsim/ai"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/probe"
	"github.com/oomph-ac/charsim/world"
)

// Configs is the tuning a scenario spawns its characters with.
type Configs struct {
	Player   motion.PlayerConfig
	Enemy    motion.EnemyConfig
	AI       ai.Config
	Debugger *motion.Debugger
}

// DefaultConfigs returns the stock tuning of every character family.
func DefaultConfigs() Configs {
	return Configs{
		Player: motion.DefaultPlayerConfig(),
		Enemy:  motion.DefaultEnemyConfig(),
		AI:     ai.DefaultConfig(),
	}
}

// Runner plays a scenario's timeline against a world.
type Runner struct {
	sc    *Scenario
	world *world.World
	held  map[string]world.Controls
}

// Build creates a world holding the scenario's geometry and characters.
func (sc *Scenario) Build(opts world.Options, cfg Configs) (*Runner, error) {
	w := world.New(probe.NewWorld(sc.Boxes()...), opts)
	for _, s := range sc.Players {
		pos, _ := vec3(s.Position)
		spawn := world.Spawn{Position: pos, Rotation: yaw(s.Yaw), Ignore: s.Ignore, Debugger: cfg.Debugger}
		if _, err := w.AddPlayer(s.ID, cfg.Player, spawn); err != nil {
			w.Close()
			return nil, err
		}
	}
	for _, s := range sc.Enemies {
		pos, _ := vec3(s.Position)
		spawn := world.Spawn{Position: pos, Rotation: yaw(s.Yaw), Ignore: s.Ignore, Debugger: cfg.Debugger}
		var brain *ai.Config
		if s.AI {
			brain = &cfg.AI
		}
		if _, err := w.AddEnemy(s.ID, cfg.Enemy, brain, spawn); err != nil {
			w.Close()
			return nil, err
		}
	}
	return &Runner{sc: sc, world: w, held: make(map[string]world.Controls)}, nil
}

func (r *Runner) World() *world.World {
	return r.world
}

func (r *Runner) Scenario() *Scenario {
	return r.sc
}

// Done reports whether every tick of the scenario has run.
func (r *Runner) Done() bool {
	return r.world.Tick() >= uint64(r.sc.Ticks)
}

// Step applies the timeline entries of the next tick and runs it. Jump is a press: it is released
// again after the tick it was applied on.
func (r *Runner) Step(dt float32) error {
	tick := r.world.Tick() + 1
	for id, c := range r.held {
		if c.Jump {
			c.Jump = false
			r.held[id] = c
			if err := r.world.SetControls(id, c); err != nil {
				return err
			}
		}
	}
	for _, st := range r.sc.steps(tick) {
		if err := r.apply(st); err != nil {
			return err
		}
	}
	r.world.Step(dt)
	return nil
}

func (r *Runner) apply(st StepSpec) error {
	if st.Controls != nil {
		c := world.Controls{
			Look:   yaw(st.Controls.Yaw),
			Jump:   st.Controls.Jump,
			Sprint: st.Controls.Sprint,
			Crouch: st.Controls.Crouch,
			Walk:   st.Controls.Walk,
		}
		if move, ok := vec2(st.Controls.Move); ok {
			c.Move = move
		}
		r.held[st.Character] = c
		if err := r.world.SetControls(st.Character, c); err != nil {
			return err
		}
	}
	if st.Damage > 0 {
		if _, err := r.world.Damage(st.Character, st.Damage); err != nil {
			return err
		}
	}
	if impulse, ok := vec3(st.Impulse); ok {
		if _, err := r.world.Impulse(st.Character, impulse); err != nil {
			return err
		}
	}
	return nil
}

// Run steps the scenario to its end. after is called once every tick has been stepped; an error from
// it, a timeline error or a cancelled context stops the run.
func (r *Runner) Run(ctx context.Context, dt float32, after func(tick uint64) error) error {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Step(dt); err != nil {
			return err
		}
		if after != nil {
			if err := after(r.world.Tick()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases the world.
func (r *Runner) Close() {
	r.world.Close()
}
