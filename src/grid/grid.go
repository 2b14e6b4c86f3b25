package grid

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

//Cell is the state of one cell: 0 is dead, anything above 0 is alive
type Cell uint8

//Coord is a position on the board, X is the column and Y is the row
//coordinates may be negative while shapes are being placed
type Coord struct {
	X int
	Y int
}

//Direction is the direction of a shift or a wipe
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

//Window is a sub-rectangle of the board requested by a display surface
//it may extend past the board edges
type Window struct {
	X int
	Y int
	W int
	H int
}

//Glyphs are the strings used to render the cells
//Blank is used for positions of a Window which are outside the board
type Glyphs struct {
	Off   string
	On    string
	Blank string
}

var DefaultGlyphs = Glyphs{Off: "·", On: "●", Blank: " "}

//Grid is a fixed size matrix of cells
//rows share one row-major buffer, the dimensions never change after creation
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

//New allocates the grid with all cells set to fill
func New(rows int, cols int, fill Cell) *Grid {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", rows, cols))
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	if fill != 0 {
		for i := range g.cells {
			g.cells[i] = fill
		}
	}
	return g
}

//FromRows builds the grid from a slice of equally sized rows
func FromRows(rows [][]Cell) *Grid {
	if len(rows) == 0 {
		panic("grid: no rows")
	}
	g := New(len(rows), len(rows[0]), 0)
	for r, row := range rows {
		if len(row) != g.cols {
			panic(fmt.Sprintf("grid: row %d has %d cells, expected %d", r, len(row), g.cols))
		}
		copy(g.row(r), row)
	}
	return g
}

//Random fills a new grid so that roughly density of the cells are alive
func Random(rows int, cols int, density float64, rng *rand.Rand) *Grid {
	g := New(rows, cols, 0)
	for i := range g.cells {
		if rng.Float64() < density {
			g.cells[i] = 1
		}
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

//Copy returns the deep copy of the grid, no memory is shared with the source
func (g *Grid) Copy() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) index(row int, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}

func (g *Grid) Get(row int, col int) Cell {
	return g.cells[g.index(row, col)]
}

func (g *Grid) Set(row int, col int, v Cell) {
	g.cells[g.index(row, col)] = v
}

//row returns the backing slice of the row, callers must not keep it
func (g *Grid) row(r int) []Cell {
	start := r * g.cols
	return g.cells[start : start+g.cols : start+g.cols]
}

//Row returns a copy of the row r
func (g *Grid) Row(r int) []Cell {
	g.index(r, 0)
	return append([]Cell(nil), g.row(r)...)
}

//Column returns a copy of the column c
func (g *Grid) Column(c int) []Cell {
	g.index(0, c)
	col := make([]Cell, g.rows)
	for r := range col {
		col[r] = g.cells[r*g.cols+c]
	}
	return col
}

//ShiftRow returns the new grid with the leading row removed and replacement appended at the trailing edge
//towardStart removes the first row and appends at the bottom, otherwise the last row is removed and replacement becomes the first row
//nil replacement means a row of dead cells
func (g *Grid) ShiftRow(towardStart bool, replacement []Cell) *Grid {
	if replacement != nil && len(replacement) != g.cols {
		panic(fmt.Sprintf("grid: replacement row has %d cells, expected %d", len(replacement), g.cols))
	}
	res := New(g.rows, g.cols, 0)
	n := len(g.cells) - g.cols
	if towardStart {
		copy(res.cells, g.cells[g.cols:])
		copy(res.cells[n:], replacement)
	} else {
		copy(res.cells[g.cols:], g.cells[:n])
		copy(res.cells[:g.cols], replacement)
	}
	return res
}

//ShiftColumn is the column analogue of ShiftRow
//towardStart removes the first column and appends replacement as the last one
func (g *Grid) ShiftColumn(towardStart bool, replacement []Cell) *Grid {
	if replacement != nil && len(replacement) != g.rows {
		panic(fmt.Sprintf("grid: replacement column has %d cells, expected %d", len(replacement), g.rows))
	}
	res := New(g.rows, g.cols, 0)
	for r := 0; r < g.rows; r++ {
		src := g.row(r)
		dst := res.row(r)
		var v Cell
		if replacement != nil {
			v = replacement[r]
		}
		if towardStart {
			copy(dst, src[1:])
			dst[g.cols-1] = v
		} else {
			copy(dst[1:], src[:g.cols-1])
			dst[0] = v
		}
	}
	return res
}

//Wipe shifts the grid one step in dir, the row or column idx of from is moved in at the trailing edge
func (g *Grid) Wipe(dir Direction, from *Grid, idx int) *Grid {
	switch dir {
	case Up, Down:
		return g.ShiftRow(dir == Up, from.Row(idx))
	case Left, Right:
		return g.ShiftColumn(dir == Left, from.Column(idx))
	}
	panic(fmt.Sprintf("grid: unknown direction %v", dir))
}

//Wrap rotates the grid one step in dir, the removed row or column reappears on the opposite edge
func (g *Grid) Wrap(dir Direction) *Grid {
	switch dir {
	case Up:
		return g.Wipe(dir, g, 0)
	case Down:
		return g.Wipe(dir, g, g.rows-1)
	case Left:
		return g.Wipe(dir, g, 0)
	case Right:
		return g.Wipe(dir, g, g.cols-1)
	}
	panic(fmt.Sprintf("grid: unknown direction %v", dir))
}

func wrapIndex(v int, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

//SetShape sets the cells of the shape placed at offset
//positions outside the grid wrap around, so the call never fails
//toggle inverts the cells instead of setting them
func (g *Grid) SetShape(coords []Coord, toggle bool, offset Coord) {
	for _, c := range coords {
		row := wrapIndex(c.Y+offset.Y, g.rows)
		col := wrapIndex(c.X+offset.X, g.cols)
		i := row*g.cols + col
		if toggle && g.cells[i] > 0 {
			g.cells[i] = 0
		} else {
			g.cells[i] = 1
		}
	}
}

//LiveCells returns the coordinates of all live cells in row-major order
//normalize translates them so the smallest row and column are 0
func (g *Grid) LiveCells(normalize bool) []Coord {
	var res []Coord
	minX, minY := g.cols, g.rows
	g.Walk(func(row int, col int, v Cell) {
		if v == 0 {
			return
		}
		res = append(res, Coord{X: col, Y: row})
		minX = min(minX, col)
		minY = min(minY, row)
	})
	if normalize {
		for i := range res {
			res[i].X -= minX
			res[i].Y -= minY
		}
	}
	return res
}

//Population returns the count of live cells
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.cells {
		if v > 0 {
			n++
		}
	}
	return n
}

//Equal reports whether both grids have the same dimensions and cell values
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

//Walk calls cb for each cell in row-major order
func (g *Grid) Walk(cb func(row int, col int, v Cell)) {
	for i, v := range g.cells {
		cb(i/g.cols, i%g.cols, v)
	}
}

//Render draws the grid as lines of glyphs joined by newlines
//with a window only that part is drawn, positions outside the grid use the Blank glyph
func (g *Grid) Render(glyphs Glyphs, w *Window) string {
	win := Window{W: g.cols, H: g.rows}
	if w != nil {
		win = *w
	}
	var b strings.Builder
	for r := win.Y; r < win.Y+win.H; r++ {
		if r != win.Y {
			b.WriteByte('\n')
		}
		for c := win.X; c < win.X+win.W; c++ {
			switch {
			case r < 0 || r >= g.rows || c < 0 || c >= g.cols:
				b.WriteString(glyphs.Blank)
			case g.cells[r*g.cols+c] > 0:
				b.WriteString(glyphs.On)
			default:
				b.WriteString(glyphs.Off)
			}
		}
	}
	return b.String()
}

func (g *Grid) String() string {
	return g.Render(Glyphs{Off: ".", On: "#", Blank: " "}, nil)
}
