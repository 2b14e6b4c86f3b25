package shapes

import "lifeplayer/src/grid"

//Point is the single cell shape, placing it toggles the cell
const Point = "point"

var (
	glider = FromBitmap([][]int{
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	})
	block = FromBitmap([][]int{
		{1, 1},
		{1, 1},
	})
	toad = FromBitmap([][]int{
		{0, 1, 1, 1},
		{1, 1, 1, 0},
	})
	lwss = FromBitmap([][]int{
		{0, 1, 0, 0, 1},
		{1, 0, 0, 0, 0},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 0},
	})
)

//Builtin returns the catalog with the stock seeds
func Builtin() *Catalog {
	return NewCatalog(
		Template{Point, "a single cell", []string{"building-block"}, []grid.Coord{{X: 0, Y: 0}}},
		Template{"block", "2x2 still life", []string{"building-block", "static"}, block},
		Template{"S", "still life shaped like an S", []string{"building-block", "static"}, FromBitmap([][]int{
			{1, 0, 1, 1},
			{1, 1, 0, 1},
		})},
		Template{"blinker", "period 2 oscillator", []string{"oscillator"}, FromBitmap([][]int{
			{1, 1, 1},
		})},
		Template{"toad", "period 2 oscillator", []string{"oscillator"}, toad},
		Template{"toad, transposed", "period 2 oscillator standing upright", []string{"oscillator"}, Transpose(toad)},
		Template{"beacon", "period 2 oscillator with changing population", []string{"oscillator"}, FromBitmap([][]int{
			{1, 1, 0, 0},
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 1},
		})},
		Template{"glider", "glider heading down-right", []string{"spaceship"}, glider},
		Template{"glider-ul", "glider heading up-left", []string{"spaceship"}, Rotate180(glider)},
		Template{"glider-dl", "glider heading down-left", []string{"spaceship"}, Rotate90CW(glider)},
		Template{"glider-ur", "glider heading up-right", []string{"spaceship"}, Rotate90CCW(glider)},
		Template{"lwss", "lightweight spaceship heading left", []string{"spaceship"}, lwss},
		Template{"lwss-up", "lightweight spaceship heading up", []string{"spaceship"}, Rotate90CW(lwss)},
		Template{"lwss-down", "lightweight spaceship heading down", []string{"spaceship"}, Rotate90CCW(lwss)},
		Template{"glider and block", "glider crashing into a block", []string{"collision"},
			append(Translate(block, grid.Coord{X: 2, Y: 6}), glider...)},
		Template{"r-pentomino", "methuselah", []string{"methuselah", "works on 10x11 board"}, FromBitmap([][]int{
			{0, 1, 1},
			{1, 1, 0},
			{0, 1, 0},
		})},
		Template{"testSample1", "the test sample with 3 stable patterns", []string{"static"}, []grid.Coord{
			{X: 1, Y: 1}, {X: 1, Y: 2},
			{X: 2, Y: 1}, {X: 2, Y: 2},
			{X: 3, Y: 3},
			{X: 4, Y: 2},
			{X: 4, Y: 3},
			{X: 5, Y: 3},
		}},
	)
}
