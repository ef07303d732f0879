package component

// BossVariant selects the boss movement rules.
type BossVariant string

const (
	// BossGround chases across tiers through ladders.
	BossGround BossVariant = "ground"
	// BossArena stays on its tier.
	BossArena BossVariant = "arena"
)

// BossPhase is the summon cycle state.
type BossPhase uint8

const (
	BossPhaseMove BossPhase = iota
	BossPhaseSummon
)

// Boss stores boss health and the summon cycle.
type Boss struct {
	Variant   BossVariant
	Health    int
	MaxHealth int
	Phase     BossPhase
	// SummonMs counts down to the next summon phase.
	SummonMs float64
	// PhaseMs counts down the current summon phase.
	PhaseMs float64
	// Triggered is set once the falling hazards fired for this phase entry.
	Triggered bool
	Dead      bool
	Direction float64
	ClimbTo   int
}

var BossComponent = NewComponent[Boss]()

// HealthBar tracks a boss on screen.
type HealthBar struct {
	Owner  uint64
	Width  float64
	Offset float64
}

var HealthBarComponent = NewComponent[HealthBar]()
