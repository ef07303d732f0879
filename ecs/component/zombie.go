package component

// ZombieAI stores per-zombie navigation state. Side flags are written by the
// world collision pass and read by navigation in the same frame.
type ZombieAI struct {
	BlockedLeft  bool
	BlockedRight bool
	// Direction is the latched patrol/chase direction (-1 or 1).
	Direction float64
	// ClimbTo is the tier a climb ends on.
	ClimbTo int
	Mode    AnimMode
}

var ZombieAIComponent = NewComponent[ZombieAI]()
