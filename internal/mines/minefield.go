package mines

import (
	"fmt"
	"math/rand/v2"
)

// Minefield is the mine layout of a single game. It is generated once
// and never mutated afterwards; all per-game progress lives on [Board].
type Minefield struct {
	Width, Height int
	MineCount     int
	Mines         []bool // flat, y*Width+x
	Adjacent      []int8 // mined-neighbor counts, meaningless under a mine
}

// NewMinefield builds a field with mines at exactly the given points.
// Useful for replays and fixed layouts; random games should use
// [GenerateMinefield].
func NewMinefield(width, height int, mines []Point) (*Minefield, error) {
	params := GameParams{Width: width, Height: height, MineCount: len(mines)}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	grid := make([]bool, width*height)
	for _, p := range mines {
		if !params.Inside(p.X, p.Y) {
			return nil, ConfigError{fmt.Sprintf(
				"mine %s is outside the %dx%d grid", p, width, height,
			)}
		}
		if grid[p.Y*width+p.X] {
			return nil, ConfigError{fmt.Sprintf("duplicate mine at %s", p)}
		}
		grid[p.Y*width+p.X] = true
	}
	return newMinefield(params, grid), nil
}

// GenerateMinefield places params.MineCount mines uniformly at random on
// all cells except excluded ones. It fails with [ConfigError] when the
// mines do not fit the remaining free cells. The layout is fully
// determined by r, so a pinned seed reproduces the same field.
func GenerateMinefield(
	params GameParams, excluded []Point, r *rand.Rand,
) (*Minefield, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	banned := make(map[int]bool, len(excluded))
	for _, p := range excluded {
		if params.Inside(p.X, p.Y) {
			banned[p.Y*params.Width+p.X] = true
		}
	}
	if params.MineCount >= params.Cells()-len(banned) {
		return nil, ConfigError{fmt.Sprintf(
			"%d mines do not fit a %dx%d board with %d cells excluded",
			params.MineCount, params.Width, params.Height, len(banned),
		)}
	}

	candidates := make([]int, 0, params.Cells()-len(banned))
	for i := range params.Cells() {
		if !banned[i] {
			candidates = append(candidates, i)
		}
	}

	// Pick MineCount cells off the candidate list at random.
	grid := make([]bool, params.Cells())
	k := len(candidates)
	for range params.MineCount {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return newMinefield(params, grid), nil
}

func newMinefield(params GameParams, grid []bool) *Minefield {
	f := &Minefield{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
		Mines:     grid,
		Adjacent:  make([]int8, len(grid)),
	}
	for y := range f.Height {
		for x := range f.Width {
			var n int8
			for _, p := range Neighbors(x, y, f.Width, f.Height) {
				if f.Mines[p.Y*f.Width+p.X] {
					n++
				}
			}
			f.Adjacent[y*f.Width+x] = n
		}
	}
	return f
}

func (f *Minefield) MineAt(x, y int) bool {
	return f.Mines[y*f.Width+x]
}

// AdjacentMines returns the number of mined neighbors of a cell.
func (f *Minefield) AdjacentMines(x, y int) int {
	return int(f.Adjacent[y*f.Width+x])
}

func (f *Minefield) String() string {
	var b []byte
	for y := range f.Height {
		for x := range f.Width {
			if f.MineAt(x, y) {
				b = append(b, '*', ' ')
			} else {
				b = append(b, '-', ' ')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
