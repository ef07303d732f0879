package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. Velocities are pixels per second,
// accelerations pixels per second squared, durations milliseconds.
type Tuning struct {
	Gravity GravitySpec `yaml:"gravity"`
	Player  PlayerSpec  `yaml:"player"`
	Zombie  ZombieSpec  `yaml:"zombie"`
	Sewer   SewerSpec   `yaml:"sewer"`
	Student StudentSpec `yaml:"student"`
	Wheel   WheelSpec   `yaml:"wheel"`
	Spike   SpikeSpec   `yaml:"spike"`
	Curve   CurveSpec   `yaml:"curve"`
	Falling FallingSpec `yaml:"falling"`
	Boss    BossSpec    `yaml:"boss"`
	Timers  TimerSpec   `yaml:"timers"`
	World   WorldSpec   `yaml:"world"`
	Camera  CameraSpec  `yaml:"camera"`
	Sizes   SizeSpec    `yaml:"sizes"`
}

type GravitySpec struct {
	Human   float64 `yaml:"human"`
	Zombie  float64 `yaml:"zombie"`
	Weapon  float64 `yaml:"weapon"`
	Wheel   float64 `yaml:"wheel"`
	Boss    float64 `yaml:"boss"`
	Vehicle float64 `yaml:"vehicle"`
}

type PlayerSpec struct {
	WalkSpeed  float64 `yaml:"walk_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	ClimbSpeed float64 `yaml:"climb_speed"`
	Lives      int     `yaml:"lives"`
	ThrowSpeed float64 `yaml:"throw_speed"`
	ThrowLift  float64 `yaml:"throw_lift"`
	ReticleGap float64 `yaml:"reticle_gap"`
}

type ZombieSpec struct {
	WalkSpeed       float64 `yaml:"walk_speed"`
	ClimbSpeed      float64 `yaml:"climb_speed"`
	LadderTolerance float64 `yaml:"ladder_tolerance"`
	JumpTolerance   float64 `yaml:"jump_tolerance"`
	JumpVX          float64 `yaml:"jump_vx"`
	JumpVY          float64 `yaml:"jump_vy"`
	AttackRange     float64 `yaml:"attack_range"`
}

type SewerSpec struct {
	ChaseRange  float64 `yaml:"chase_range"`
	ChaseHeight float64 `yaml:"chase_height"`
	Hysteresis  float64 `yaml:"hysteresis"`
	PatrolSpeed float64 `yaml:"patrol_speed"`
}

type StudentSpec struct {
	WalkSpeed float64 `yaml:"walk_speed"`
	HopSpeed  float64 `yaml:"hop_speed"`
}

type WheelSpec struct {
	Mass        float64 `yaml:"mass"`
	Speed       float64 `yaml:"speed"`
	Restitution float64 `yaml:"restitution"`
}

type SpikeSpec struct {
	MeshScale float64 `yaml:"mesh_scale"`
}

type CurveSpec struct {
	ActiveMs float64 `yaml:"active_ms"`
	CycleMs  float64 `yaml:"cycle_ms"`
}

type FallingSpec struct {
	Drift float64 `yaml:"drift"`
}

type BossSpec struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	Health           int     `yaml:"health"`
	SummonMs         float64 `yaml:"summon_ms"`
	CooldownMs       float64 `yaml:"cooldown_ms"`
	SummonPhaseMs    float64 `yaml:"summon_phase_ms"`
	Hazards          int     `yaml:"hazards"`
	ReinforcementCap int     `yaml:"reinforcement_cap"`
	Knockback        float64 `yaml:"knockback"`
	BarOffset        float64 `yaml:"bar_offset"`
}

type TimerSpec struct {
	DeathMs       float64 `yaml:"death_ms"`
	InfectionMs   float64 `yaml:"infection_ms"`
	ZombieDeathMs float64 `yaml:"zombie_death_ms"`
	LostLifeMs    float64 `yaml:"lost_life_ms"`
	CutsceneMs    float64 `yaml:"cutscene_ms"`
	FadeMs        float64 `yaml:"fade_ms"`
}

type WorldSpec struct {
	Locality     float64 `yaml:"locality"`
	LandBand     float64 `yaml:"land_band"`
	SideFraction float64 `yaml:"side_fraction"`
	LedgeNudge   float64 `yaml:"ledge_nudge"`
}

type CameraSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Bias           float64 `yaml:"bias"`
	ShiftMs        float64 `yaml:"shift_ms"`
	VerticalMargin float64 `yaml:"vertical_margin"`
}

// SizeSpec is the box size per entity class, keyed by class name.
type SizeSpec map[string]Vec2

// DefaultTuning mirrors tuning.yaml.
func DefaultTuning() *Tuning {
	return &Tuning{
		Gravity: GravitySpec{Human: 1200, Zombie: 1200, Weapon: 900, Wheel: 1500, Boss: 1400, Vehicle: 1200},
		Player:  PlayerSpec{WalkSpeed: 220, JumpSpeed: 560, ClimbSpeed: 160, Lives: 3, ThrowSpeed: 480, ThrowLift: 150, ReticleGap: 60},
		Zombie: ZombieSpec{
			WalkSpeed:       70,
			ClimbSpeed:      100,
			LadderTolerance: 10,
			JumpTolerance:   4,
			JumpVX:          110,
			JumpVY:          -420,
			AttackRange:     48,
		},
		Sewer:   SewerSpec{ChaseRange: 360, ChaseHeight: 160, Hysteresis: 24, PatrolSpeed: 40},
		Student: StudentSpec{WalkSpeed: 60, HopSpeed: 300},
		Wheel:   WheelSpec{Mass: 10, Speed: 120, Restitution: 0.5},
		Spike:   SpikeSpec{MeshScale: 25},
		Curve:   CurveSpec{ActiveMs: 2000, CycleMs: 4000},
		Falling: FallingSpec{Drift: 180},
		Boss: BossSpec{
			WalkSpeed:        90,
			Health:           8,
			SummonMs:         6000,
			CooldownMs:       9000,
			SummonPhaseMs:    1500,
			Hazards:          4,
			ReinforcementCap: 5,
			Knockback:        260,
			BarOffset:        70,
		},
		Timers: TimerSpec{DeathMs: 3000, InfectionMs: 2500, ZombieDeathMs: 1200, LostLifeMs: 1500, CutsceneMs: 2500, FadeMs: 1000},
		World:  WorldSpec{Locality: 400, LandBand: 12, SideFraction: 0.25, LedgeNudge: 2},
		Camera: CameraSpec{Width: 1280, Height: 720, Bias: 0.15, ShiftMs: 600, VerticalMargin: 0.25},
		Sizes: SizeSpec{
			"player":         {40, 64},
			"zombie":         {40, 64},
			"student":        {36, 60},
			"book":           {20, 16},
			"wheel":          {48, 48},
			"spike":          {50, 50},
			"boss":           {96, 128},
			"bus":            {320, 140},
			"collectible":    {24, 24},
			"door":           {64, 96},
			"falling_hazard": {24, 24},
			"curve_hazard":   {32, 32},
			"reticle":        {16, 16},
			"health_bar":     {120, 10},
		},
	}
}

// LoadTuning overlays tuning.yaml on the defaults.
func LoadTuning() (*Tuning, error) {
	data, err := Load("tuning.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load tuning.yaml: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning overlays YAML data on the defaults.
func ParseTuning(data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal tuning: %w", err)
	}
	return t, nil
}

// Size returns the configured box size for a class name.
func (t *Tuning) Size(class string) (w, h float64) {
	if s, ok := t.Sizes[class]; ok {
		return s[0], s[1]
	}
	return 32, 32
}
