package view

import (
	"image/color"

	"lifeplayer/src/grid"
)

var (
	ledOn  = color.RGBA{R: 0xff, G: 0x8c, B: 0x1a, A: 0xff}
	ledOff = color.RGBA{R: 0x1c, G: 0x10, B: 0x08, A: 0xff}
)

//fillLEDs converts the board into RGBA pixels in buf, one pixel per cell
//buf must hold 4*rows*cols bytes
func fillLEDs(buf []byte, b *grid.Grid, on color.RGBA, off color.RGBA) {
	b.Walk(func(row int, col int, v grid.Cell) {
		base := (row*b.Cols() + col) * 4
		c := off
		if v > 0 {
			c = on
		}
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	})
}

//ledSnapshot is the board as the panel last saw it
type ledSnapshot struct {
	rows   int
	cols   int
	pixels []byte
}

func newLEDSnapshot(b *grid.Grid) ledSnapshot {
	s := ledSnapshot{rows: b.Rows(), cols: b.Cols(), pixels: make([]byte, 4*b.Rows()*b.Cols())}
	fillLEDs(s.pixels, b, ledOn, ledOff)
	return s
}

//cellAt maps a cursor position on a panel drawn with scale to a board cell
func cellAt(x int, y int, scale int, rows int, cols int) (grid.Coord, bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return grid.Coord{}, false
	}
	c := grid.Coord{X: x / scale, Y: y / scale}
	if c.X >= cols || c.Y >= rows {
		return grid.Coord{}, false
	}
	return c, true
}
