package component

// Timers count down in milliseconds. Removing the component is the terminal
// state; the timer system performs the matching side effect first.

// DeathTimer runs while the player is dying. Direction is the tilt sign.
type DeathTimer struct {
	TimerMs   float64
	Direction float64
}

var DeathTimerComponent = NewComponent[DeathTimer]()

// InfectionTimer turns a student into a zombie when it expires.
type InfectionTimer struct {
	TimerMs float64
}

var InfectionTimerComponent = NewComponent[InfectionTimer]()

// ZombieDeathTimer despawns its entity when it expires. Bosses and their
// health bars use it too.
type ZombieDeathTimer struct {
	TimerMs   float64
	Direction float64
}

var ZombieDeathTimerComponent = NewComponent[ZombieDeathTimer]()

// LostLifeTimer is the post-hit window: the player blinks and ignores hits,
// a boss is stunned and knocked back.
type LostLifeTimer struct {
	TimerMs float64
}

var LostLifeTimerComponent = NewComponent[LostLifeTimer]()

// CutsceneTimer despawns its entity and advances the level on expiry.
type CutsceneTimer struct {
	TimerMs float64
}

var CutsceneTimerComponent = NewComponent[CutsceneTimer]()

// FadingTimer decays an overlay's opacity. Factor is the current opacity.
type FadingTimer struct {
	TimerMs float64
	TotalMs float64
	Factor  float64
}

var FadingTimerComponent = NewComponent[FadingTimer]()
