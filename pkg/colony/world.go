package colony

import (
	"fmt"
	"math/rand"
	"slices"
)

// Cell is the content of one grid square.
type Cell uint8

const (
	Empty Cell = iota
	Food
	Wall
	Nest
)

// Heading is the direction an ant faces.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

var headingNames = [...]string{North: "north", East: "east", South: "south", West: "west"}

func (h Heading) String() string {
	if h < North || h > West {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return headingNames[h]
}

var offsets = [...][2]int{North: {0, -1}, East: {1, 0}, South: {0, 1}, West: {-1, 0}}

// World is a toroidal grid.
type World struct {
	Width  int
	Height int
	cells  []Cell
}

// NewWorld creates an empty world.
func NewWorld(width, height int) *World {
	return &World{Width: width, Height: height, cells: make([]Cell, width*height)}
}

// RandomWorld seeds a world with food and walls and a nest in the centre.
func RandomWorld(width, height int, r *rand.Rand) *World {
	w := NewWorld(width, height)
	for i := range w.cells {
		switch p := r.Float64(); {
		case p < 0.15:
			w.cells[i] = Food
		case p < 0.25:
			w.cells[i] = Wall
		}
	}
	w.Set(width/2, height/2, Nest)
	return w
}

func (w *World) index(x, y int) int {
	x = ((x % w.Width) + w.Width) % w.Width
	y = ((y % w.Height) + w.Height) % w.Height
	return y*w.Width + x
}

// At returns the cell at (x, y), wrapping around the edges.
func (w *World) At(x, y int) Cell {
	return w.cells[w.index(x, y)]
}

// Set writes the cell at (x, y), wrapping around the edges.
func (w *World) Set(x, y int, c Cell) {
	w.cells[w.index(x, y)] = c
}

// Clone returns an independent copy.
func (w *World) Clone() *World {
	return &World{Width: w.Width, Height: w.Height, cells: slices.Clone(w.cells)}
}

// Equal reports whether both worlds have the same size and cells.
func (w *World) Equal(other *World) bool {
	return w.Width == other.Width && w.Height == other.Height && slices.Equal(w.cells, other.cells)
}

// Ant is the agent acted upon by the colony catalogue.
type Ant struct {
	X, Y      int
	Heading   Heading
	Carrying  bool
	Steps     int
	Delivered int
}

// Ahead returns the coordinates of the cell the ant faces.
func (a *Ant) Ahead() (int, int) {
	o := offsets[a.Heading]
	return a.X + o[0], a.Y + o[1]
}

// Situation pairs an ant with the world it lives in.
type Situation struct {
	Ant   *Ant
	World *World
}

// Clone returns an independent copy of the situation.
func (s Situation) Clone() Situation {
	ant := *s.Ant
	return Situation{Ant: &ant, World: s.World.Clone()}
}

// Equal reports whether ant and world match.
func (s Situation) Equal(other Situation) bool {
	return *s.Ant == *other.Ant && s.World.Equal(other.World)
}

// Sample draws n random situations on small worlds.
func Sample(r *rand.Rand, n int) []Situation {
	out := make([]Situation, 0, n)
	for range n {
		w := RandomWorld(8, 8, r)
		ant := &Ant{
			X:        r.Intn(w.Width),
			Y:        r.Intn(w.Height),
			Heading:  Heading(r.Intn(4)),
			Carrying: r.Intn(2) == 0,
		}
		out = append(out, Situation{Ant: ant, World: w})
	}
	return out
}
