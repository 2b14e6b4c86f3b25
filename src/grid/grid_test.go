package grid

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func fromStrings(lines ...string) *Grid {
	rows := make([][]Cell, len(lines))
	for i, l := range lines {
		for _, ch := range l {
			var v Cell
			if ch == '#' {
				v = 1
			}
			rows[i] = append(rows[i], v)
		}
	}
	return FromRows(rows)
}

func TestNewFill(t *testing.T) {
	g := New(3, 4, 1)
	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("dimensions %dx%d, expected 3x4", g.Rows(), g.Cols())
	}
	if p := g.Population(); p != 12 {
		t.Fatalf("population %d, expected 12", p)
	}
}

func TestNewInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero rows")
		}
	}()
	New(0, 3, 0)
}

func TestCopyDoesNotAlias(t *testing.T) {
	g := New(2, 2, 0)
	c := g.Copy()
	c.Set(1, 1, 1)
	if g.Get(1, 1) != 0 {
		t.Fatal("copy shares memory with the source")
	}
	if !g.Equal(New(2, 2, 0)) {
		t.Fatal("source changed")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(2, 2, 0).Get(2, 0)
}

func TestShiftRow(t *testing.T) {
	g := fromStrings(
		"#..",
		".#.",
		"..#",
	)
	up := g.ShiftRow(true, nil)
	if !up.Equal(fromStrings(".#.", "..#", "...")) {
		t.Fatalf("shift up:\n%v", up)
	}
	down := g.ShiftRow(false, []Cell{1, 1, 1})
	if !down.Equal(fromStrings("###", "#..", ".#.")) {
		t.Fatalf("shift down:\n%v", down)
	}
	if !g.Equal(fromStrings("#..", ".#.", "..#")) {
		t.Fatal("source grid was modified")
	}
}

func TestShiftColumn(t *testing.T) {
	g := fromStrings(
		"#..",
		".#.",
	)
	left := g.ShiftColumn(true, []Cell{1, 0})
	if !left.Equal(fromStrings("..#", "#..")) {
		t.Fatalf("shift left:\n%v", left)
	}
	right := g.ShiftColumn(false, nil)
	if !right.Equal(fromStrings(".#.", "..#")) {
		t.Fatalf("shift right:\n%v", right)
	}
}

func TestWrapRoundTrip(t *testing.T) {
	g := fromStrings(
		"##..",
		".#..",
		"...#",
	)
	for _, d := range []struct{ there, back Direction }{{Up, Down}, {Left, Right}} {
		w := g.Wrap(d.there)
		if w.Equal(g) {
			t.Fatalf("wrap %v did not move anything", d.there)
		}
		if w.Population() != g.Population() {
			t.Fatalf("wrap %v lost cells", d.there)
		}
		if !w.Wrap(d.back).Equal(g) {
			t.Fatalf("wrap %v then %v is not identity", d.there, d.back)
		}
	}
	if !g.Wrap(Up).Equal(fromStrings(".#..", "...#", "##..")) {
		t.Fatalf("wrap up:\n%v", g.Wrap(Up))
	}
}

func TestWipeFullSequence(t *testing.T) {
	from := fromStrings("#.", ".#", "##")
	to := New(3, 2, 0)
	for i := 0; i < from.Rows(); i++ {
		to = to.Wipe(Up, from, i)
	}
	if !to.Equal(from) {
		t.Fatalf("after a full upward wipe:\n%v", to)
	}
	to = New(3, 2, 0)
	for i := from.Cols() - 1; i >= 0; i-- {
		to = to.Wipe(Right, from, i)
	}
	if !to.Equal(from) {
		t.Fatalf("after a full right wipe:\n%v", to)
	}
}

func TestSetShapeWraps(t *testing.T) {
	g := New(3, 4, 0)
	g.SetShape([]Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}, false, Coord{X: 3, Y: -1})
	if g.Get(2, 3) != 1 || g.Get(2, 0) != 1 {
		t.Fatalf("wrapped cells not set:\n%v", g)
	}
	if g.Population() != 2 {
		t.Fatalf("population %d, expected 2", g.Population())
	}
	g.SetShape([]Coord{{X: 10, Y: 10}}, false, Coord{})
	if g.Get(1, 2) != 1 {
		t.Fatalf("large coordinate not wrapped:\n%v", g)
	}
}

func TestSetShapeToggle(t *testing.T) {
	g := New(2, 2, 0)
	point := []Coord{{X: 1, Y: 1}}
	g.SetShape(point, true, Coord{})
	if g.Get(1, 1) != 1 {
		t.Fatal("toggle did not turn the cell on")
	}
	g.SetShape(point, true, Coord{})
	if g.Get(1, 1) != 0 {
		t.Fatal("toggle did not turn the cell off")
	}
	g.SetShape(point, false, Coord{})
	g.SetShape(point, false, Coord{})
	if g.Get(1, 1) != 1 {
		t.Fatal("set without toggle must leave the cell on")
	}
}

func TestLiveCells(t *testing.T) {
	g := fromStrings(
		"....",
		"..#.",
		"...#",
	)
	raw := g.LiveCells(false)
	if !slices.Equal(raw, []Coord{{X: 2, Y: 1}, {X: 3, Y: 2}}) {
		t.Fatalf("raw cells %v", raw)
	}
	norm := g.LiveCells(true)
	if !slices.Equal(norm, []Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}) {
		t.Fatalf("normalized cells %v", norm)
	}
	if New(2, 2, 0).LiveCells(true) != nil {
		t.Fatal("empty grid must have no live cells")
	}
}

func TestPopulationCountsIntensity(t *testing.T) {
	g := New(2, 2, 0)
	g.Set(0, 0, 3)
	g.Set(1, 1, 1)
	if g.Population() != 2 {
		t.Fatalf("population %d, expected 2", g.Population())
	}
}

func TestRender(t *testing.T) {
	g := fromStrings(
		"#.",
		".#",
	)
	glyphs := Glyphs{Off: "o", On: "X", Blank: "_"}
	if s := g.Render(glyphs, nil); s != "Xo\noX" {
		t.Fatalf("render %q", s)
	}
	if s := g.Render(glyphs, &Window{X: 1, Y: -1, W: 3, H: 3}); s != "___\no__\nX__" {
		t.Fatalf("window render %q", s)
	}
}

func TestRandomDensity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	if Random(5, 5, 0, rng).Population() != 0 {
		t.Fatal("zero density must give an empty grid")
	}
	if Random(5, 5, 1, rng).Population() != 25 {
		t.Fatal("density 1 must fill the grid")
	}
}

func TestDirectionString(t *testing.T) {
	if Left.String() != "left" || Direction(9).String() != "Direction(9)" {
		t.Fatalf("unexpected names %v %v", Left, Direction(9))
	}
}
