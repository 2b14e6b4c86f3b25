package shapes

import "lifeplayer/src/grid"

//FromBitmap converts rows of 0/1 values to the coordinates of the set bits
func FromBitmap(bits [][]int) []grid.Coord {
	var res []grid.Coord
	for y, row := range bits {
		for x, v := range row {
			if v > 0 {
				res = append(res, grid.Coord{X: x, Y: y})
			}
		}
	}
	return res
}

//Extent returns the inclusive bounding box of the shape, coordinates may be negative
//an empty shape has the zero extent
func Extent(coords []grid.Coord) (lo grid.Coord, hi grid.Coord) {
	if len(coords) == 0 {
		return
	}
	lo, hi = coords[0], coords[0]
	for _, c := range coords[1:] {
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return
}

//ToGrid draws the shape on the smallest grid containing it
func ToGrid(coords []grid.Coord) *grid.Grid {
	lo, hi := Extent(coords)
	g := grid.New(hi.Y-lo.Y+1, hi.X-lo.X+1, 0)
	g.SetShape(coords, false, grid.Coord{X: -lo.X, Y: -lo.Y})
	return g
}

func mapCoords(coords []grid.Coord, f func(grid.Coord) grid.Coord) []grid.Coord {
	res := make([]grid.Coord, len(coords))
	for i, c := range coords {
		res[i] = f(c)
	}
	return res
}

func Translate(coords []grid.Coord, offset grid.Coord) []grid.Coord {
	return mapCoords(coords, func(c grid.Coord) grid.Coord {
		return grid.Coord{X: c.X + offset.X, Y: c.Y + offset.Y}
	})
}

func Transpose(coords []grid.Coord) []grid.Coord {
	return mapCoords(coords, func(c grid.Coord) grid.Coord { return grid.Coord{X: c.Y, Y: c.X} })
}

//HMirror flips the shape left to right
func HMirror(coords []grid.Coord) []grid.Coord {
	_, hi := Extent(coords)
	return mapCoords(coords, func(c grid.Coord) grid.Coord { return grid.Coord{X: hi.X - c.X, Y: c.Y} })
}

//VMirror flips the shape top to bottom
func VMirror(coords []grid.Coord) []grid.Coord {
	_, hi := Extent(coords)
	return mapCoords(coords, func(c grid.Coord) grid.Coord { return grid.Coord{X: c.X, Y: hi.Y - c.Y} })
}

func Rotate90CW(coords []grid.Coord) []grid.Coord { return HMirror(Transpose(coords)) }

func Rotate90CCW(coords []grid.Coord) []grid.Coord { return VMirror(Transpose(coords)) }

func Rotate180(coords []grid.Coord) []grid.Coord { return VMirror(HMirror(coords)) }
