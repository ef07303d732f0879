package levels

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel wraps every validation failure.
var ErrInvalidLevel = errors.New("levels: invalid level")

// Kind selects level-specific navigation rules.
type Kind string

const (
	KindStandard Kind = "standard"
	// KindBus freezes zombies in place.
	KindBus Kind = "bus"
	// KindSewer uses proximity horizontal chase.
	KindSewer Kind = "sewer"
	// KindArena hosts a boss and disables cross-tier chasing.
	KindArena Kind = "arena"
	// KindLab hosts a boss that chases across tiers.
	KindLab Kind = "lab"
)

func (k Kind) valid() bool {
	switch k {
	case KindStandard, KindBus, KindSewer, KindArena, KindLab:
		return true
	}
	return false
}

// Vec2 is a YAML [x, y] pair.
type Vec2 [2]float64

// Vector converts to cp.Vector.
func (v Vec2) Vector() cp.Vector {
	return cp.Vector{X: v[0], Y: v[1]}
}

// Level is the read-only description of one level.
type Level struct {
	Name     string  `yaml:"name"`
	Index    int     `yaml:"index"`
	Kind     Kind    `yaml:"kind"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	BGM      string  `yaml:"bgm"`
	Required int     `yaml:"required_collectibles"`
	Script   string  `yaml:"script"`

	// Floors holds the floor surface y of each tier, bottom tier first.
	Floors []float64 `yaml:"floors"`
	// Ladders[i] holds the x of ladders leading from tier i to tier i+1.
	Ladders    [][]float64 `yaml:"ladders"`
	JumpPoints [][]float64 `yaml:"jump_points"`

	ZombieSpawns  SpawnPool `yaml:"zombie_spawns"`
	StudentSpawns SpawnPool `yaml:"student_spawns"`

	Player   Vec2      `yaml:"player"`
	Door     *Vec2     `yaml:"door"`
	Blocks   []Block   `yaml:"blocks"`
	Entities []Entity  `yaml:"entities"`
	Boss     *BossSpec `yaml:"boss"`
	Bus      *BusSpec  `yaml:"bus"`
}

// SpawnPool configures one spawn timer.
type SpawnPool struct {
	IntervalMs float64 `yaml:"interval_ms"`
	Cap        int     `yaml:"cap"`
	Points     []Vec2  `yaml:"points"`
}

// Block is static geometry given by its top-left corner and size.
type Block struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
	H    float64 `yaml:"h"`
}

// Center returns the block center.
func (b Block) Center() cp.Vector {
	return cp.Vector{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Entity is a placed dynamic object.
type Entity struct {
	Type      string  `yaml:"type"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	VX        float64 `yaml:"vx"`
	Points    []Vec2  `yaml:"points"`
	Quadratic bool    `yaml:"quadratic"`
}

// BossSpec places the boss and its blockade.
type BossSpec struct {
	Variant  string  `yaml:"variant"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Health   int     `yaml:"health"`
	Blockade *Block  `yaml:"blockade"`
}

// BusSpec places the oscillating bus.
type BusSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	Speed float64 `yaml:"speed"`
}

var blockTypes = map[string]bool{"platform": true, "wall": true, "ladder": true}

var entityTypes = map[string]bool{
	"zombie": true, "student": true, "spike": true, "wheel": true, "book": true,
	"collectible": true, "curve_hazard": true,
}

// Parse decodes and validates level data.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Kind == "" {
		lvl.Kind = KindStandard
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks that every per-tier table matches the floor count and that
// placed data is inside the level.
func (l *Level) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidLevel, l.Name, fmt.Sprintf(format, args...))
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fail("non-positive size %vx%v", l.Width, l.Height)
	}
	if !l.Kind.valid() {
		return fail("unknown kind %q", l.Kind)
	}
	if len(l.Floors) == 0 {
		return fail("no floors")
	}
	for i := 1; i < len(l.Floors); i++ {
		if l.Floors[i] >= l.Floors[i-1] {
			return fail("floors must rise: floor %d at %v is not above %v", i, l.Floors[i], l.Floors[i-1])
		}
	}
	if len(l.Ladders) != len(l.Floors) {
		return fail("ladders has %d tiers, floors has %d", len(l.Ladders), len(l.Floors))
	}
	if len(l.JumpPoints) != len(l.Floors) {
		return fail("jump_points has %d tiers, floors has %d", len(l.JumpPoints), len(l.Floors))
	}
	for i, b := range l.Blocks {
		if !blockTypes[b.Type] {
			return fail("block %d has unknown type %q", i, b.Type)
		}
		if b.W <= 0 || b.H <= 0 {
			return fail("block %d has non-positive size", i)
		}
	}
	for i, e := range l.Entities {
		if !entityTypes[e.Type] {
			return fail("entity %d has unknown type %q", i, e.Type)
		}
		if e.Type == "curve_hazard" && len(e.Points) != 3 && len(e.Points) != 4 {
			return fail("curve_hazard %d needs 3 or 4 points, has %d", i, len(e.Points))
		}
	}
	for name, pool := range map[string]SpawnPool{"zombie": l.ZombieSpawns, "student": l.StudentSpawns} {
		for _, p := range pool.Points {
			if !l.inside(p) {
				return fail("%s spawn %v outside level", name, p)
			}
		}
	}
	if !l.inside(l.Player) {
		return fail("player start %v outside level", l.Player)
	}
	if l.Boss != nil {
		switch l.Boss.Variant {
		case "ground", "arena":
		default:
			return fail("unknown boss variant %q", l.Boss.Variant)
		}
	}
	if l.Bus != nil && l.Bus.MinX >= l.Bus.MaxX {
		return fail("bus range [%v, %v] is empty", l.Bus.MinX, l.Bus.MaxX)
	}
	return nil
}

func (l *Level) inside(p Vec2) bool {
	return p[0] >= 0 && p[0] <= l.Width && p[1] >= 0 && p[1] <= l.Height
}

// tierSlack absorbs float drift on entities resting exactly on a floor.
const tierSlack = 0.5

// Tier maps a feet y to a tier index: the highest tier whose floor is at or
// below the feet.
func (l *Level) Tier(feetY float64) int {
	tier := 0
	for i, f := range l.Floors {
		if feetY <= f+tierSlack {
			tier = i
		}
	}
	return tier
}

// LaddersFrom returns the ladders leading up from tier, or nil.
func (l *Level) LaddersFrom(tier int) []float64 {
	if tier < 0 || tier >= len(l.Ladders) {
		return nil
	}
	return l.Ladders[tier]
}

// JumpsOn returns the jump points of tier, or nil.
func (l *Level) JumpsOn(tier int) []float64 {
	if tier < 0 || tier >= len(l.JumpPoints) {
		return nil
	}
	return l.JumpPoints[tier]
}

// Floor returns the floor y of tier, clamped to the known tiers.
func (l *Level) Floor(tier int) float64 {
	if tier < 0 {
		tier = 0
	}
	if tier >= len(l.Floors) {
		tier = len(l.Floors) - 1
	}
	return l.Floors[tier]
}

// NearestLadder returns the ladder x closest to x.
func NearestLadder(ladders []float64, x float64) (float64, bool) {
	best, found := 0.0, false
	for _, lx := range ladders {
		if !found || math.Abs(lx-x) < math.Abs(best-x) {
			best, found = lx, true
		}
	}
	return best, found
}

// HasBoss reports whether the level is boss-gated.
func (l *Level) HasBoss() bool {
	return l.Boss != nil
}
