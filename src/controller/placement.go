package controller

import (
	"lifeplayer/src/grid"
	"lifeplayer/src/shapes"
)

//ShapeSource resolves shape names to coordinates
type ShapeSource interface {
	Lookup(name string) ([]grid.Coord, bool)
}

//Typesetter renders text as live cells
type Typesetter interface {
	Typeset(text string) ([]grid.Coord, bool)
}

func floorDiv(a int, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

//centered returns the origin that puts lo..hi in the middle of size cells, an odd leftover cell goes after the shape
func centered(size int, lo int, hi int) int {
	return floorDiv(size-(hi-lo+1), 2) - lo
}

//topLeft computes where the shape origin goes so the shape with extent lo..hi gets aligned on a rows x cols board
func topLeft(align Alignment, lo grid.Coord, hi grid.Coord, rows int, cols int) grid.Coord {
	center := grid.Coord{
		X: centered(cols, lo.X, hi.X),
		Y: centered(rows, lo.Y, hi.Y),
	}
	switch align {
	case AlignCenter, "":
		return center
	case AlignTopCenter:
		return grid.Coord{X: center.X, Y: -lo.Y}
	case AlignBottomCenter:
		return grid.Coord{X: center.X, Y: rows - 1 - hi.Y}
	case AlignCenterLeft:
		return grid.Coord{X: -lo.X, Y: center.Y}
	case AlignCenterRight:
		return grid.Coord{X: cols - 1 - hi.X, Y: center.Y}
	}
	return grid.Coord{}
}

//shapeCoords returns the cells of the item's shape
func (c *Controller) shapeCoords(item Item) ([]grid.Coord, bool) {
	switch {
	case item.Cells != nil:
		return item.Cells, true
	case item.Shape == TextShape:
		if c.options.Typesetter == nil {
			return nil, false
		}
		return c.options.Typesetter.Typeset(item.Text)
	case c.shapes == nil:
		return nil, false
	}
	return c.shapes.Lookup(item.Shape)
}

//ResolveBoard builds a new board of the current size with the item's shape placed on it
//an unknown shape gives an empty board, the present board is never touched
func (c *Controller) ResolveBoard(item Item) *grid.Grid {
	b := grid.New(c.universe.Rows(), c.universe.Cols(), 0)
	coords, ok := c.shapeCoords(item)
	if !ok || len(coords) == 0 {
		c.log.Warn("nothing to place", "item", item.String(), "error", ErrShapeNotFound)
		return b
	}
	lo, hi := shapes.Extent(coords)
	at := topLeft(item.Align, lo, hi, b.Rows(), b.Cols())
	at.X += item.Offset.X
	at.Y += item.Offset.Y
	b.SetShape(coords, false, at)
	return b
}
