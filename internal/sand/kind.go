package sand

import "image/color"

// KindID indexes the particle registry.
type KindID uint8

const (
	Air KindID = iota
	Sand
	Water
	Oil
	Wood
	Fire
	Smoke
	Gunpowder
	Acid
	Cotton
	Fuse

	numKinds
)

// Kind describes the physical attributes of one particle species. The
// registry is immutable; cells reference kinds by id.
type Kind struct {
	ID           KindID
	Name         string
	Color        color.RGBA
	Density      float64 // negative means immovable
	Flammability float64 // chance per fire visit of catching
	BurnTime     int64   // ticks a fire fed by this kind lasts
	Acidability  float64 // chance per acid visit of dissolving
	Movable      bool
	Solid        bool
}

// kinds is the fixed registry. Attribute values are load-bearing: densities
// drive the stratification rules and ids are the wire format for scene blobs.
var kinds = [numKinds]Kind{
	{ID: Air, Name: "Air", Color: rgb(0, 0, 0), Density: 1, Movable: true},
	{ID: Sand, Name: "Sand", Color: rgb(179, 128, 66), Density: 60, Acidability: 0.2, Movable: true, Solid: true},
	{ID: Water, Name: "Water", Color: rgb(51, 77, 204), Density: 5, Movable: true},
	{ID: Oil, Name: "Oil", Color: rgb(204, 153, 102), Density: 2, Flammability: 0.04, BurnTime: 3000, Movable: true},
	{ID: Wood, Name: "Wood", Color: rgb(128, 51, 26), Density: -1, Flammability: 0.001, BurnTime: 10000, Acidability: 0.02, Solid: true},
	{ID: Fire, Name: "Fire", Color: rgb(179, 26, 0), Density: -1},
	{ID: Smoke, Name: "Smoke", Color: rgb(26, 26, 26), Density: 0.9999, Movable: true},
	{ID: Gunpowder, Name: "Gunpowder", Color: rgb(64, 64, 64), Density: 40, Flammability: 1, BurnTime: 50, Acidability: 0.2, Movable: true, Solid: true},
	{ID: Acid, Name: "Acid", Color: rgb(64, 230, 128), Density: 5.001, Movable: true},
	{ID: Cotton, Name: "Cotton", Color: rgb(214, 214, 214), Density: -1, Flammability: 0.05, BurnTime: 1000, Acidability: 0.5, Solid: true},
	{ID: Fuse, Name: "Fuse", Color: rgb(77, 77, 77), Density: -1, Flammability: 0.3, BurnTime: 200, Acidability: 0.5, Solid: true},
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// KindOf returns the registry entry for id. The bool is false for ids outside
// the registry.
func KindOf(id KindID) (Kind, bool) {
	if int(id) >= len(kinds) {
		return Kind{}, false
	}
	return kinds[id], true
}

// Kinds returns the full registry in id order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds[:])
	return out
}

// NumKinds is the registry size.
func NumKinds() int { return len(kinds) }
