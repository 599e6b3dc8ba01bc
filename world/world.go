// Package world steps a set of characters over static geometry. It owns the event bus, moves each
// character's body according to its controller, and feeds the resulting contact state back as the
// next tick's grounding report.
package world

import (
	"io"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/ai"
	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/motion"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/probe"
	"github.com/oomph-ac/charsim/worker"
	"github.com/sirupsen/logrus"
)

// Options configure a World.
type Options struct {
	// Log receives world diagnostics. A nil value discards them.
	Log logrus.FieldLogger
	// Workers is the number of goroutines characters are ticked on. Zero uses one per CPU.
	Workers int
	// GroundSnap overrides DefaultGroundSnap when positive.
	GroundSnap float32
}

// World is the composition root of a simulation. Its methods must be called from one goroutine.
type World struct {
	log    logrus.FieldLogger
	geo    *probe.World
	bus    *event.Bus
	pool   *worker.Pool
	snap   float32
	tick   uint64
	chars  *orderedmap.OrderedMap[string, *Character]
	closed bool
}

func New(geo *probe.World, opts Options) *World {
	if geo == nil {
		geo = probe.NewWorld()
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	snap := opts.GroundSnap
	if snap <= 0 {
		snap = DefaultGroundSnap
	}

	w := &World{
		log:   log,
		geo:   geo,
		bus:   event.NewBus(),
		pool:  worker.New(opts.Workers),
		snap:  snap,
		chars: orderedmap.NewOrderedMap[string, *Character](),
	}
	w.pool.OnPanic = func(v any) {
		w.log.Errorf("recovered panic in character tick: %v", v)
	}
	return w
}

// Bus returns the bus every character event is published to.
func (w *World) Bus() *event.Bus {
	return w.bus
}

// Geometry returns the static geometry of the world.
func (w *World) Geometry() *probe.World {
	return w.geo
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// AddPlayer spawns a player controlled through SetControls.
func (w *World) AddPlayer(id string, cfg motion.PlayerConfig, spawn Spawn) (*Character, error) {
	ch, err := w.newCharacter(id, spawn)
	if err != nil {
		return nil, err
	}
	ch.ctrl = motion.NewPlayer(cfg, w.controllerOptions(ch, spawn))
	ch.result = ch.ctrl.Result()
	w.add(ch)
	return ch, nil
}

// AddEnemy spawns an enemy. If brain is not nil the enemy is driven by a melee AI that hunts the
// nearest visible player; otherwise it stands still.
func (w *World) AddEnemy(id string, cfg motion.EnemyConfig, brain *ai.Config, spawn Spawn) (*Character, error) {
	ch, err := w.newCharacter(id, spawn)
	if err != nil {
		return nil, err
	}
	ch.ctrl = motion.NewEnemy(cfg, w.controllerOptions(ch, spawn))
	ch.result = ch.ctrl.Result()
	if brain != nil {
		ch.brain = ai.NewBrain(*brain, ch.sink, w.log.WithField("character", id))
	}
	w.add(ch)
	return ch, nil
}

func (w *World) newCharacter(id string, spawn Spawn) (*Character, error) {
	if _, ok := w.chars.Get(id); ok {
		return nil, oerror.New(game.ErrorDuplicateCharacter, id)
	}
	if !game.ValidVec3(spawn.Position) {
		return nil, oerror.New("character %q has an invalid spawn position %v", id, spawn.Position)
	}
	return &Character{
		id:       id,
		sink:     event.NewSink(id),
		view:     w.geo.View(spawn.Ignore...),
		position: spawn.Position,
	}, nil
}

func (w *World) controllerOptions(ch *Character, spawn Spawn) motion.Options {
	return motion.Options{
		Probes:   ch.view,
		Sink:     ch.sink,
		Debugger: spawn.Debugger,
		Name:     ch.id,
		Rotation: spawn.Rotation,
	}
}

func (w *World) add(ch *Character) {
	ch.grounding = ch.view.Ground(ch.result.Capsule, ch.position, ch.result.MaxStableSlopeAngle, w.snap)
	w.chars.Set(ch.id, ch)
	w.log.WithFields(logrus.Fields{"character": ch.id, "archetype": ch.ctrl.Archetype(), "position": ch.position}).Debug("character spawned")
}

// Remove despawns a character.
func (w *World) Remove(id string) bool {
	return w.chars.Delete(id)
}

// Character returns the character with the given id.
func (w *World) Character(id string) (*Character, bool) {
	return w.chars.Get(id)
}

// Characters returns every character in spawn order.
func (w *World) Characters() []*Character {
	out := make([]*Character, 0, w.chars.Len())
	for _, id := range w.chars.Keys() {
		ch, _ := w.chars.Get(id)
		out = append(out, ch)
	}
	return out
}

// SetControls sets the input a player holds from the next tick on.
func (w *World) SetControls(id string, c Controls) error {
	ch, ok := w.chars.Get(id)
	if !ok {
		return oerror.New(game.ErrorUnknownCharacter, id)
	}
	ch.controls = c
	return nil
}

// Damage hurts an enemy. It returns whether the enemy is dead afterwards.
func (w *World) Damage(id string, amount float32) (bool, error) {
	ch, ok := w.chars.Get(id)
	if !ok {
		return false, oerror.New(game.ErrorUnknownCharacter, id)
	}
	if ch.brain == nil {
		return false, oerror.New("character %q has no health", id)
	}
	return ch.brain.TakeDamage(amount), nil
}

// Impulse adds a one-shot velocity to a character. It is only accepted in the default state.
func (w *World) Impulse(id string, v mgl32.Vec3) (bool, error) {
	ch, ok := w.chars.Get(id)
	if !ok {
		return false, oerror.New(game.ErrorUnknownCharacter, id)
	}
	return ch.ctrl.AddVelocity(v), nil
}

// Reconfigure swaps the tuning of every character between ticks.
func (w *World) Reconfigure(player motion.PlayerConfig, enemy motion.EnemyConfig) {
	for _, ch := range w.Characters() {
		if !ch.ctrl.ReconfigurePlayer(player) {
			ch.ctrl.ReconfigureEnemy(enemy)
		}
	}
}

// Step advances every character by dt. Characters tick concurrently; their events are published
// afterwards in spawn order, followed by a TickEvent.
func (w *World) Step(dt float32) {
	if w.closed {
		return
	}
	w.tick++
	chars := w.Characters()
	perceptions := w.perceive(chars)

	g := w.pool.Group()
	for i, ch := range chars {
		g.Go(func() {
			ch.step(w.tick, perceptions[i], dt, w.snap)
		})
	}
	g.Wait()

	for _, ch := range chars {
		if !ch.completed {
			w.log.Errorf(game.ErrorCharacterTickPanic, ch.id, "tick dropped")
			ch.sink.Discard()
			continue
		}
		if ch.attack > 0 {
			w.log.WithFields(logrus.Fields{"character": ch.id, "damage": ch.attack}).Debug("melee attack")
		}
		ch.sink.Flush(w.bus)
	}
	w.bus.Publish(event.TickEvent{NopEvent: event.NopEvent{EvTick: w.tick}, Characters: len(chars)})
}

// Close stops the worker pool. The world cannot be stepped afterwards.
func (w *World) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.pool.Close()
}
