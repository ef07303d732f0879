package component

// Bus oscillates between MinX and MaxX.
type Bus struct {
	MinX  float64
	MaxX  float64
	Speed float64
}

var BusComponent = NewComponent[Bus]()

// Door is the level exit. It opens when the level is complete.
type Door struct {
	Open bool
}

var DoorComponent = NewComponent[Door]()

// Overlay is a full-screen fade layer.
type Overlay struct {
	Opacity float64
}

var OverlayComponent = NewComponent[Overlay]()

// Debug marks entities that live for a single frame.
type Debug struct{}

var DebugComponent = NewComponent[Debug]()
