package types

// Box is a bounding box in a stated coordinate space (native pixels before
// rescaling, final pixels after). X and Y may be negative: layout files
// position artwork relative to the view origin, which can sit inside the
// bezel image.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Game is one row of an Attract-Mode romlist. Only the fields the bezel
// pipeline consumes are carried; the romlist has more.
type Game struct {
	Name     string // romname, unique key
	Title    string
	Emulator string
	CloneOf  string // parent romname, empty when the game is not a clone
	Year     string
	AltTitle string
}

// IsClone reports whether the game declares a parent.
func (g Game) IsClone() bool {
	return g.CloneOf != ""
}

// BezelRecord is the finalized per-game unit written to the record store.
// Boxes are in the final coordinate space; rounding to integers happens at
// persistence, not here.
type BezelRecord struct {
	Name     string
	Filename string
	Screen   Box
	Bezel    Box
	Total    Box
}

// WithName returns a copy of the record under a different romname. Used when
// a clone inherits its parent's bezel data.
func (r BezelRecord) WithName(name string) BezelRecord {
	r.Name = name
	return r
}
