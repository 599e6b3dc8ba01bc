// Package scenario describes reproducible simulation runs: the static geometry, who spawns where,
// and a timeline of scripted input. Scenarios are YAML documents, either embedded in the binary or
// overridden from disk.
package scenario

import (
	"fmt"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/game"
	"github.com/oomph-ac/charsim/oerror"
	"github.com/oomph-ac/charsim/probe"
	"gopkg.in/yaml.v3"
)

type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Ticks       int         `yaml:"ticks"`
	Geometry    []BoxSpec   `yaml:"geometry"`
	Players     []SpawnSpec `yaml:"players"`
	Enemies     []SpawnSpec `yaml:"enemies"`
	Timeline    []StepSpec  `yaml:"timeline"`
}

// BoxSpec is a static box. Normal optionally overrides the ground normal of its top face.
type BoxSpec struct {
	Owner  string    `yaml:"owner"`
	Min    []float32 `yaml:"min"`
	Max    []float32 `yaml:"max"`
	Normal []float32 `yaml:"normal"`
}

type SpawnSpec struct {
	ID       string    `yaml:"id"`
	Position []float32 `yaml:"position"`
	// Yaw is the initial facing in degrees. Positive angles turn +Z towards +X.
	Yaw    float32  `yaml:"yaw"`
	Ignore []string `yaml:"ignore"`
	// AI gives an enemy a melee brain. It is ignored for players.
	AI bool `yaml:"ai"`
}

// StepSpec is scripted input applied right before the given tick runs. Controls replace what the
// character holds until the next controls step for it.
type StepSpec struct {
	Tick      uint64        `yaml:"tick"`
	Character string        `yaml:"character"`
	Controls  *ControlsSpec `yaml:"controls"`
	Damage    float32       `yaml:"damage"`
	Impulse   []float32     `yaml:"impulse"`
}

type ControlsSpec struct {
	Move   []float32 `yaml:"move"`
	Yaw    float32   `yaml:"yaw"`
	Jump   bool      `yaml:"jump"`
	Sprint bool      `yaml:"sprint"`
	Crouch bool      `yaml:"crouch"`
	Walk   bool      `yaml:"walk"`
}

// Parse decodes and validates a scenario document.
func Parse(name string, data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, oerror.New(game.ErrorScenarioDecode, name, err)
	}
	if sc.Name == "" {
		sc.Name = name
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that every vector has the right arity, boxes are not inverted, ids are unique and
// the timeline only names characters that exist.
func (sc *Scenario) Validate() error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if sc.Ticks <= 0 {
		fail("ticks must be positive, got %d", sc.Ticks)
	}
	for i, b := range sc.Geometry {
		lo, okLo := vec3(b.Min)
		hi, okHi := vec3(b.Max)
		if !okLo || !okHi {
			fail("geometry[%d]: min and max need three finite components", i)
			continue
		}
		if lo.X() > hi.X() || lo.Y() > hi.Y() || lo.Z() > hi.Z() {
			fail("geometry[%d]: min %v exceeds max %v", i, lo, hi)
		}
		if b.Normal != nil {
			if n, ok := vec3(b.Normal); !ok || game.IsZeroVec3(n) {
				fail("geometry[%d]: normal needs three finite components and a length", i)
			}
		}
	}

	kinds := make(map[string]bool)
	spawns := func(list []SpawnSpec, enemy bool, section string) {
		for i, s := range list {
			if s.ID == "" {
				fail("%s[%d]: missing id", section, i)
				continue
			}
			if _, ok := kinds[s.ID]; ok {
				fail("%s[%d]: duplicate id %q", section, i, s.ID)
				continue
			}
			kinds[s.ID] = enemy && s.AI
			if _, ok := vec3(s.Position); !ok {
				fail("%s[%d]: position needs three finite components", section, i)
			}
		}
	}
	spawns(sc.Players, false, "players")
	spawns(sc.Enemies, true, "enemies")

	for i, st := range sc.Timeline {
		if st.Tick == 0 || st.Tick > uint64(max(sc.Ticks, 0)) {
			fail("timeline[%d]: tick %d is outside [1, %d]", i, st.Tick, sc.Ticks)
		}
		hasHealth, ok := kinds[st.Character]
		if !ok {
			fail("timeline[%d]: unknown character %q", i, st.Character)
			continue
		}
		if st.Controls != nil && st.Controls.Move != nil {
			if _, ok := vec2(st.Controls.Move); !ok {
				fail("timeline[%d]: move needs two finite components", i)
			}
		}
		if st.Damage < 0 {
			fail("timeline[%d]: negative damage %v", i, st.Damage)
		}
		if st.Damage > 0 && !hasHealth {
			fail("timeline[%d]: %q has no health to damage", i, st.Character)
		}
		if st.Impulse != nil {
			if _, ok := vec3(st.Impulse); !ok {
				fail("timeline[%d]: impulse needs three finite components", i)
			}
		}
	}

	if len(problems) > 0 {
		return oerror.New(game.ErrorScenarioInvalid, sc.Name, strings.Join(problems, "; "))
	}
	return nil
}

// Boxes converts the geometry section into colliders.
func (sc *Scenario) Boxes() []probe.Box {
	boxes := make([]probe.Box, 0, len(sc.Geometry))
	for _, b := range sc.Geometry {
		lo, _ := vec3(b.Min)
		hi, _ := vec3(b.Max)
		box := probe.Box{BBox: cube.Box(lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z()), Owner: b.Owner}
		if n, ok := vec3(b.Normal); ok {
			box.Normal = n.Normalize()
		}
		boxes = append(boxes, box)
	}
	return boxes
}

// Characters returns the ids of every spawn, players first.
func (sc *Scenario) Characters() []string {
	ids := make([]string, 0, len(sc.Players)+len(sc.Enemies))
	for _, s := range sc.Players {
		ids = append(ids, s.ID)
	}
	for _, s := range sc.Enemies {
		ids = append(ids, s.ID)
	}
	return ids
}

// steps returns the timeline entries of a tick in document order.
func (sc *Scenario) steps(tick uint64) []StepSpec {
	var out []StepSpec
	for _, st := range sc.Timeline {
		if st.Tick == tick {
			out = append(out, st)
		}
	}
	return out
}

// yaw returns the rotation facing the given number of degrees around up.
func yaw(degrees float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), game.Up)
}

func vec3(v []float32) (mgl32.Vec3, bool) {
	if len(v) != 3 {
		return mgl32.Vec3{}, false
	}
	out := mgl32.Vec3{v[0], v[1], v[2]}
	return out, game.ValidVec3(out)
}

func vec2(v []float32) (mgl32.Vec2, bool) {
	if len(v) != 2 || !game.ValidFloat(v[0]) || !game.ValidFloat(v[1]) {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{v[0], v[1]}, true
}
