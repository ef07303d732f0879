package component

import "image/color"

// AnimMode is the sprite mode chosen by the core. Drawing it is the
// renderer's business.
type AnimMode string

const (
	AnimIdle   AnimMode = "idle"
	AnimRun    AnimMode = "run"
	AnimJump   AnimMode = "jump"
	AnimClimb  AnimMode = "climb"
	AnimAttack AnimMode = "attack"
	AnimDead   AnimMode = "dead"
	AnimWin    AnimMode = "win"
	AnimSummon AnimMode = "summon"
	AnimHit    AnimMode = "hit"
	AnimOpen   AnimMode = "open"
	AnimClosed AnimMode = "closed"
)

// Animation records the current mode so cues fire only on change.
type Animation struct {
	Mode AnimMode
}

var AnimationComponent = NewComponent[Animation]()

// Tint overrides the sprite colour while present.
type Tint struct {
	Color color.RGBA
}

var TintComponent = NewComponent[Tint]()
