package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a cell coordinate, 0:0 being the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Neighbors returns the up-to-8 cells surrounding x:y, clipped to a
// width-by-height grid. Corner cells have 3 neighbors, edge cells 5.
func Neighbors(x, y, width, height int) []Point {
	ps := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if 0 <= xx && xx < width && 0 <= yy && yy < height {
				ps = append(ps, Point{xx, yy})
			}
		}
	}
	return ps
}

type CellState int8

const (
	Hidden CellState = -1
	Flag1  CellState = -2
	Flag2  CellState = -3
	Flag3  CellState = -4
	// 0-8 for an open cell with that many mined neighbors
	MineHit       CellState = 64 // the mine the player set off
	MineFlagged   CellState = 65 // mine under a correct flag
	MineUnflagged CellState = 66 // mine nobody touched
	FlagWrong     CellState = 67 // crossed-out flag on a safe cell
)

func (s CellState) IsHidden() bool {
	return s == Hidden
}

func (s CellState) IsFlagged() bool {
	return Flag3 <= s && s <= Flag1
}

// FlagLevel returns 1-3 for flagged cells and 0 otherwise.
func (s CellState) FlagLevel() int {
	if !s.IsFlagged() {
		return 0
	}
	return -int(s) - 1
}

func (s CellState) IsOpen() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return " "
	case s.IsFlagged():
		return "*"
	case s.IsOpen():
		return strconv.Itoa(int(s))
	case s == MineHit:
		return "X"
	case s == MineFlagged:
		return "F"
	case s == MineUnflagged:
		return "o"
	case s == FlagWrong:
		return "x"
	default:
		return "!"
	}
}

// GridView is a flat row-major snapshot of cell states, indexed y*width+x.
type GridView []CellState

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
