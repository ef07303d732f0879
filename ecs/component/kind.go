package component

// Class is the closed set of entity kinds. Every simulated entity carries
// exactly one Kind; systems branch on it instead of probing marker tables.
type Class uint8

const (
	ClassNone Class = iota
	ClassPlayer
	ClassZombie
	ClassStudent
	ClassBook
	ClassWheel
	ClassSpike
	ClassBoss
	ClassBus
	ClassPlatform
	ClassWall
	ClassLadder
	ClassBlockade
	ClassCollectible
	ClassDoor
	ClassFallingHazard
	ClassCurveHazard
	ClassReticle
	ClassHealthBar
	ClassOverlay
	ClassDebug
)

var classNames = [...]string{
	ClassNone:          "none",
	ClassPlayer:        "player",
	ClassZombie:        "zombie",
	ClassStudent:       "student",
	ClassBook:          "book",
	ClassWheel:         "wheel",
	ClassSpike:         "spike",
	ClassBoss:          "boss",
	ClassBus:           "bus",
	ClassPlatform:      "platform",
	ClassWall:          "wall",
	ClassLadder:        "ladder",
	ClassBlockade:      "blockade",
	ClassCollectible:   "collectible",
	ClassDoor:          "door",
	ClassFallingHazard: "falling_hazard",
	ClassCurveHazard:   "curve_hazard",
	ClassReticle:       "reticle",
	ClassHealthBar:     "health_bar",
	ClassOverlay:       "overlay",
	ClassDebug:         "debug",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// ParseClass maps a level-data name to a Class.
func ParseClass(name string) (Class, bool) {
	for i, n := range classNames {
		if n == name && i != int(ClassNone) {
			return Class(i), true
		}
	}
	return ClassNone, false
}

// IsStatic reports static level geometry resolved by the world collision pass.
func (c Class) IsStatic() bool {
	switch c {
	case ClassPlatform, ClassWall, ClassLadder, ClassBlockade:
		return true
	}
	return false
}

// IsSolid reports blocks that stop movement from every side. Platforms are
// solid too but climbers pass through them.
func (c Class) IsSolid() bool {
	return c == ClassPlatform || c == ClassWall || c == ClassBlockade
}

// IsHostile reports entities that take a life from the player on contact.
func (c Class) IsHostile() bool {
	switch c {
	case ClassZombie, ClassBoss, ClassSpike, ClassWheel, ClassFallingHazard, ClassCurveHazard:
		return true
	}
	return false
}

// IsDecoration reports entities that never take part in collisions.
func (c Class) IsDecoration() bool {
	switch c {
	case ClassReticle, ClassHealthBar, ClassOverlay, ClassDebug:
		return true
	}
	return false
}

// GravityCategory groups classes that share a gravity constant.
type GravityCategory uint8

const (
	GravityNone GravityCategory = iota
	GravityHuman
	GravityZombie
	GravityWeapon
	GravityWheel
	GravityBoss
	GravityVehicle
)

func (c Class) Gravity() GravityCategory {
	switch c {
	case ClassPlayer, ClassStudent:
		return GravityHuman
	case ClassZombie:
		return GravityZombie
	case ClassBook:
		return GravityWeapon
	case ClassWheel:
		return GravityWheel
	case ClassBoss:
		return GravityBoss
	case ClassBus:
		return GravityVehicle
	}
	return GravityNone
}

// Kind classifies an entity.
type Kind struct {
	Class Class
}

var KindComponent = NewComponent[Kind]()
