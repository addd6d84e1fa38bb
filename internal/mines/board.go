package mines

// Board is the player-visible overlay on a [Minefield]: which cells are
// hidden, flagged or open. A cell is always in exactly one of those
// three states and an open cell never becomes hidden again.
type Board struct {
	Width, Height int
	Cells         GridView
}

func NewBoard(width, height int) *Board {
	cells := make(GridView, width*height)
	for i := range cells {
		cells[i] = Hidden
	}
	return &Board{Width: width, Height: height, Cells: cells}
}

func (b *Board) At(x, y int) CellState {
	return b.Cells[y*b.Width+x]
}

func (b *Board) set(x, y int, s CellState) {
	b.Cells[y*b.Width+x] = s
}

// Reveal opens a hidden safe cell and, when its mined-neighbor count is
// zero, flood-fills through hidden unflagged neighbors until the open
// region is bordered by numbered cells. It returns the newly opened
// points; revealing an already open cell returns nothing. The caller is
// responsible for mines — Reveal must not be handed a mined cell.
func (b *Board) Reveal(field *Minefield, x, y int) []Point {
	if !b.At(x, y).IsHidden() {
		return nil
	}
	b.set(x, y, CellState(field.AdjacentMines(x, y)))
	opened := []Point{{x, y}}
	queue := []Point{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if b.At(p.X, p.Y) != 0 {
			continue
		}
		for _, n := range Neighbors(p.X, p.Y, b.Width, b.Height) {
			if !b.At(n.X, n.Y).IsHidden() {
				continue // flagged cells are never auto-opened
			}
			b.set(n.X, n.Y, CellState(field.AdjacentMines(n.X, n.Y)))
			opened = append(opened, n)
			queue = append(queue, n)
		}
	}
	return opened
}

// CycleFlag advances a cell through hidden -> flag(1) -> ... ->
// flag(levels) -> hidden. It returns the new flag level (0 for hidden)
// and the flagged-cell count delta, which is nonzero only when the cell
// enters or leaves the flagged state.
func (b *Board) CycleFlag(x, y, levels int) (level, delta int, err error) {
	switch s := b.At(x, y); {
	case s.IsHidden():
		b.set(x, y, Flag1)
		return 1, +1, nil
	case s.IsFlagged():
		if s.FlagLevel() >= levels {
			b.set(x, y, Hidden)
			return 0, -1, nil
		}
		b.set(x, y, s-1)
		return s.FlagLevel() + 1, 0, nil
	default:
		return 0, 0, InvalidActionError{
			Action: "flag",
			Reason: "cell is already open",
		}
	}
}
