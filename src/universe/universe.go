package universe

import (
	"lifeplayer/src/grid"
)

//Classification results returned by Classify
const (
	Dead     = 0  //no live cells
	Static   = 1  //the board did not change during the last generation
	Evolving = -1 //no cycle was found
)

//historyDepth limits the cycle detection to period 1 and period 2
const historyDepth = 2

//snapshot is one generation kept in the history
type snapshot struct {
	board     *grid.Grid
	liveCells int
}

//Universe is the Game of Life engine
//it owns the present board, the start board (used by ResetBoard) and a short history used for cycle detection
type Universe struct {
	present   *grid.Grid
	start     *grid.Grid
	liveCells int
	wrap      bool
	workers   int
	past      []snapshot
}

//New creates the universe with an empty rows x cols board, wrapping is enabled
func New(rows int, cols int) *Universe {
	b := grid.New(rows, cols, 0)
	return &Universe{
		present: b,
		start:   b,
		wrap:    true,
		past:    make([]snapshot, 0, historyDepth),
	}
}

//Board returns the present board, it must be treated as read only
func (u *Universe) Board() *grid.Grid { return u.present }

//LiveCells returns the population of the present board
func (u *Universe) LiveCells() int { return u.liveCells }

func (u *Universe) Rows() int { return u.present.Rows() }

func (u *Universe) Cols() int { return u.present.Cols() }

func (u *Universe) Wrap() bool { return u.wrap }

//SetWrap turns the toroidal neighbourhood on or off
func (u *Universe) SetWrap(wrap bool) { u.wrap = wrap }

//SetBoard replaces the present board and records it as the start of the game
func (u *Universe) SetBoard(b *grid.Grid) {
	u.clearHistory()
	u.present = b
	u.start = b
	u.liveCells = b.Population()
}

//Show replaces the present board without touching the start board
func (u *Universe) Show(b *grid.Grid) {
	u.clearHistory()
	u.present = b
	u.liveCells = b.Population()
}

//ResetBoard restores the last start board and returns it
func (u *Universe) ResetBoard() *grid.Grid {
	u.clearHistory()
	u.present = u.start
	u.liveCells = u.present.Population()
	return u.present
}

//Clear kills all cells, the start board is kept
func (u *Universe) Clear() {
	u.clearHistory()
	u.present = grid.New(u.present.Rows(), u.present.Cols(), 0)
	u.liveCells = 0
}

//Resize replaces the board with an empty one of the new size
//it reports false when the size did not change
func (u *Universe) Resize(rows int, cols int) bool {
	if u.present.Rows() == rows && u.present.Cols() == cols {
		return false
	}
	u.SetBoard(grid.New(rows, cols, 0))
	return true
}

func (u *Universe) clearHistory() {
	u.past = u.past[:0]
}

//updateHistory pushes the present board to the history, the oldest entry is dropped
func (u *Universe) updateHistory() {
	s := snapshot{board: u.present, liveCells: u.liveCells}
	if len(u.past) < historyDepth {
		u.past = append(u.past, snapshot{})
	}
	copy(u.past[1:], u.past[:len(u.past)-1])
	u.past[0] = s
}

//Step computes the next generation and returns the new present board
func (u *Universe) Step() *grid.Grid {
	u.updateHistory()

	var next *grid.Grid
	if u.workers > 1 {
		next, u.liveCells = u.stepParallel(u.present)
	} else {
		next, u.liveCells = u.stepSequential(u.present)
	}
	u.present = next
	return next
}

//stepSequential counts the neighbours of all cells in a single pass over the live cells
func (u *Universe) stepSequential(src *grid.Grid) (*grid.Grid, int) {
	rows, cols := src.Rows(), src.Cols()
	neighbours := make([]int, rows*cols)

	//for each live cell increment the counters of its neighbours
	src.Walk(func(row int, col int, v grid.Cell) {
		if v > 0 {
			u.markNeighbours(neighbours, rows, cols, row, col)
		}
	})

	//3 neighbours: alive, 2 neighbours: survives if already alive, otherwise dead
	next := grid.New(rows, cols, 0)
	liveCells := 0
	for i, n := range neighbours {
		row, col := i/cols, i%cols
		var v grid.Cell
		switch n {
		case 3:
			v = 1
		case 2:
			v = src.Get(row, col)
		}
		if v > 0 {
			next.Set(row, col, v)
			liveCells++
		}
	}

	return next, liveCells
}

//markNeighbours increments the eight neighbours of (row, col)
//with wrap the edges continue on the opposite side, otherwise neighbours outside the board are skipped
func (u *Universe) markNeighbours(dst []int, rows int, cols int, row int, col int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			//skip my position
			if dx == 0 && dy == 0 {
				continue
			}
			ny := row + dy
			nx := col + dx
			if u.wrap {
				ny = (ny + rows) % rows
				nx = (nx + cols) % cols
			} else if nx < 0 || ny < 0 || nx >= cols || ny >= rows {
				continue
			}
			dst[ny*cols+nx]++
		}
	}
}

//Classify analyzes the present board
//returns Dead, Static, the period of a detected cycle, or Evolving
//the history is searched most recent first, so only periods 1 and 2 can be found
func (u *Universe) Classify() int {
	if u.liveCells == 0 {
		return Dead
	}
	for i, s := range u.past {
		if s.liveCells == u.liveCells && u.present.Equal(s.board) {
			return i + 1
		}
	}
	return Evolving
}
