package component

// Player stores per-level player progress.
type Player struct {
	Lives     int
	Collected int
}

var PlayerComponent = NewComponent[Player]()

// Input is the per-frame input sample written by the host.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Jump  bool
	Throw bool
}

var InputComponent = NewComponent[Input]()

// Book is a throwable weapon. A carried, un-thrown book follows its holder.
type Book struct {
	Holder  uint64
	Carried bool
	Thrown  bool
}

var BookComponent = NewComponent[Book]()

// Follower tracks another entity at an offset (aiming reticle).
type Follower struct {
	Target  uint64
	OffsetX float64
	OffsetY float64
}

var FollowerComponent = NewComponent[Follower]()
