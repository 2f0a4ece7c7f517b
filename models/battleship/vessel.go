package battleship

const (
	MaxShips = 5
)

type VesselClass uint8

const (
	Destroyer VesselClass = iota
	Submarine
	Cruiser
	Battleship
	Carrier
)

// FleetClasses is the order vessels are placed in during setup.
var FleetClasses = [MaxShips]VesselClass{Destroyer, Submarine, Cruiser, Battleship, Carrier}

func (vc VesselClass) String() string {
	switch vc {
	case Destroyer:
		return "Destroyer"
	case Submarine:
		return "Submarine"
	case Cruiser:
		return "Cruiser"
	case Battleship:
		return "Battleship"
	case Carrier:
		return "Carrier"
	default:
		return "Unknown"
	}
}

func (vc VesselClass) Length() int {
	switch vc {
	case Destroyer:
		return 2
	case Submarine, Cruiser:
		return 3
	case Battleship:
		return 4
	case Carrier:
		return 5
	default:
		return 0
	}
}

type Vessel struct {
	class     VesselClass
	coords    []Coordinates
	hitCoords []Coordinates
}

// NewVessel lays the vessel out from origin towards orientation.
// It does not validate the placement; see Fleet.Place.
func NewVessel(class VesselClass, origin Coordinates, orientation Direction) Vessel {
	length := class.Length()
	coords := make([]Coordinates, 0, length)

	c := origin
	for i := 0; i < length; i++ {
		coords = append(coords, c)
		c = c.Next(orientation)
	}

	return Vessel{
		class:     class,
		coords:    coords,
		hitCoords: make([]Coordinates, 0, length),
	}
}

func (v *Vessel) Name() string {
	return v.class.String()
}

func (v *Vessel) Class() VesselClass {
	return v.class
}

func (v *Vessel) Length() int {
	return len(v.coords)
}

func (v *Vessel) Occupies(c Coordinates) bool {
	for _, coord := range v.coords {
		if coord == c {
			return true
		}
	}
	return false
}

func (v *Vessel) isHitAt(c Coordinates) bool {
	for _, coord := range v.hitCoords {
		if coord == c {
			return true
		}
	}
	return false
}

// RecordHit ignores coordinates the vessel does not occupy and
// coordinates already recorded.
func (v *Vessel) RecordHit(c Coordinates) {
	if !v.Occupies(c) || v.isHitAt(c) {
		return
	}
	v.hitCoords = append(v.hitCoords, c)
}

func (v *Vessel) IsSunk() bool {
	return len(v.hitCoords) == len(v.coords)
}

func (v *Vessel) OccupiedCoords() []Coordinates {
	coords := make([]Coordinates, len(v.coords))
	copy(coords, v.coords)
	return coords
}

func (v *Vessel) HitCoords() []Coordinates {
	coords := make([]Coordinates, len(v.hitCoords))
	copy(coords, v.hitCoords)
	return coords
}

// Snapshot is the read-only view handed to the attacker's engine.
func (v *Vessel) Snapshot() VesselSnapshot {
	return VesselSnapshot{
		Name:   v.Name(),
		Length: v.Length(),
		Hits:   v.HitCoords(),
	}
}

// VesselSnapshot is what the attacker learns about a vessel it hit.
type VesselSnapshot struct {
	Name   string
	Length int
	Hits   []Coordinates
}

func (vs VesselSnapshot) hasHit(c Coordinates) bool {
	for _, hit := range vs.Hits {
		if hit == c {
			return true
		}
	}
	return false
}
