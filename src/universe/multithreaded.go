package universe

import (
	"sync"

	"lifeplayer/src/grid"
)

//the board is split into bands of rows, each band is computed by its own goroutine
const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

//workArea describes the rows computed by one worker
type workArea struct {
	y1        int
	y2        int
	liveCells int
}

//splitRows divides rows into at most workers bands of at least DefMinRowsPerWorker rows
func splitRows(rows int, workers int) []workArea {
	linesPerWorker := rows / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < rows {
		linesPerWorker++
	}
	areas := make([]workArea, 0, workers)
	for y1 := 0; y1 < rows; y1 += linesPerWorker {
		y2 := min(y1+linesPerWorker-1, rows-1)
		areas = append(areas, workArea{y1: y1, y2: y2})
	}
	return areas
}

//SetWorkers sets the number of goroutines computing a generation, 1 or less computes on the caller's goroutine
func (u *Universe) SetWorkers(workers int) { u.workers = workers }

func (u *Universe) Workers() int { return max(u.workers, 1) }

//stepParallel starts the workers, waits for them and sums up the population
func (u *Universe) stepParallel(src *grid.Grid) (*grid.Grid, int) {
	next := grid.New(src.Rows(), src.Cols(), 0)
	areas := splitRows(src.Rows(), u.workers)
	var waitGroup sync.WaitGroup
	for i := range areas {
		wa := &areas[i]
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			u.calcArea(src, next, wa)
		}()
	}
	waitGroup.Wait()
	liveCells := 0
	for _, wa := range areas {
		liveCells += wa.liveCells
	}
	return next, liveCells
}

//calcArea calculates the new states of the cells inside the work area
//workers write disjoint rows of next
func (u *Universe) calcArea(src *grid.Grid, next *grid.Grid, wa *workArea) {
	wa.liveCells = 0
	for y := wa.y1; y <= wa.y2; y++ {
		for x := 0; x < src.Cols(); x++ {
			if v := u.cellNextState(src, y, x); v > 0 {
				next.Set(y, x, v)
				wa.liveCells++
			}
		}
	}
}

//cellNextState applies the rules to a single cell
func (u *Universe) cellNextState(src *grid.Grid, row int, col int) grid.Cell {
	rows, cols := src.Rows(), src.Cols()
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny, nx := row+dy, col+dx
			if u.wrap {
				ny = (ny + rows) % rows
				nx = (nx + cols) % cols
			} else if nx < 0 || ny < 0 || nx >= cols || ny >= rows {
				continue
			}
			if src.Get(ny, nx) > 0 {
				n++
			}
		}
	}
	switch n {
	case 3:
		return 1
	case 2:
		return src.Get(row, col)
	}
	return 0
}
