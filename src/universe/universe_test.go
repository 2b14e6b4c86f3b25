package universe

import (
	"testing"

	"lifeplayer/src/grid"
)

var (
	glider  = []grid.Coord{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	blinker = []grid.Coord{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	block   = []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	beacon  = []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}}
)

func board(rows int, cols int, coords []grid.Coord, offset grid.Coord) *grid.Grid {
	b := grid.New(rows, cols, 0)
	b.SetShape(coords, false, offset)
	return b
}

func newUniverse(b *grid.Grid, wrap bool) *Universe {
	u := New(b.Rows(), b.Cols())
	u.SetWrap(wrap)
	u.SetBoard(b)
	return u
}

func TestBlinkerOscillation(t *testing.T) {
	u := newUniverse(board(5, 5, blinker, grid.Coord{}), true)

	u.Step()
	expected := board(5, 5, []grid.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}, grid.Coord{})
	if !u.Board().Equal(expected) {
		t.Fatalf("after first step:\n%v", u.Board())
	}
	if c := u.Classify(); c != Evolving {
		t.Fatalf("after one step classified %d, expected %d", c, Evolving)
	}

	u.Step()
	if !u.Board().Equal(board(5, 5, blinker, grid.Coord{})) {
		t.Fatalf("after second step:\n%v", u.Board())
	}
	if c := u.Classify(); c != 2 {
		t.Fatalf("after two steps classified %d, expected 2", c)
	}
}

func TestBlockIsStatic(t *testing.T) {
	u := newUniverse(board(6, 6, block, grid.Coord{X: 2, Y: 2}), true)
	u.Step()
	if c := u.Classify(); c != Static {
		t.Fatalf("block classified %d, expected %d", c, Static)
	}
}

func TestBeaconPeriodTwo(t *testing.T) {
	u := newUniverse(board(6, 6, beacon, grid.Coord{X: 1, Y: 1}), true)
	u.Step()
	if u.LiveCells() != 8 {
		t.Fatalf("beacon population %d, expected 8", u.LiveCells())
	}
	if c := u.Classify(); c != Evolving {
		t.Fatalf("classified %d after one step", c)
	}
	u.Step()
	if c := u.Classify(); c != 2 {
		t.Fatalf("beacon classified %d, expected 2", c)
	}
}

func TestEmptyBoardIsDead(t *testing.T) {
	u := New(4, 4)
	if c := u.Classify(); c != Dead {
		t.Fatalf("empty board classified %d", c)
	}
	u = newUniverse(board(4, 4, []grid.Coord{{X: 1, Y: 1}}, grid.Coord{}), true)
	u.Step()
	if u.LiveCells() != 0 || u.Classify() != Dead {
		t.Fatalf("single cell must die, population %d", u.LiveCells())
	}
}

func TestGliderWrapsAround(t *testing.T) {
	const rows, cols = 6, 7
	u := newUniverse(board(rows, cols, glider, grid.Coord{}), true)
	for k := 1; k <= 20; k++ {
		for i := 0; i < 4; i++ {
			u.Step()
		}
		expected := board(rows, cols, glider, grid.Coord{X: k, Y: k})
		if !u.Board().Equal(expected) {
			t.Fatalf("glider not intact after %d generations:\n%v", 4*k, u.Board())
		}
		if u.LiveCells() != len(glider) {
			t.Fatalf("population %d after %d generations", u.LiveCells(), 4*k)
		}
	}
}

func TestGliderStopsAtBoundedEdge(t *testing.T) {
	u := newUniverse(board(6, 6, glider, grid.Coord{}), false)
	gen := 0
	for u.Classify() != Static {
		u.Step()
		gen++
		if gen > 100 {
			t.Fatal("glider did not settle on a bounded board")
		}
	}
	if gen != 16 {
		t.Fatalf("settled after %d generations, expected 16", gen)
	}
	if !u.Board().Equal(board(6, 6, block, grid.Coord{X: 4, Y: 4})) {
		t.Fatalf("expected a block in the corner:\n%v", u.Board())
	}
}

func TestWrapChangesNeighbours(t *testing.T) {
	//a vertical line crossing the top edge
	line := []grid.Coord{{X: 2, Y: 4}, {X: 2, Y: 0}, {X: 2, Y: 1}}
	wrapped := newUniverse(board(5, 5, line, grid.Coord{}), true)
	wrapped.Step()
	if wrapped.LiveCells() != 3 {
		t.Fatalf("wrapped blinker population %d, expected 3", wrapped.LiveCells())
	}
	bounded := newUniverse(board(5, 5, line, grid.Coord{}), false)
	bounded.Step()
	if bounded.LiveCells() != 0 {
		t.Fatalf("bounded board population %d, expected 0", bounded.LiveCells())
	}
}

func TestStepDeterminism(t *testing.T) {
	seed := board(10, 11, []grid.Coord{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}}, grid.Coord{X: 4, Y: 4})
	a := newUniverse(seed.Copy(), true)
	b := newUniverse(seed.Copy(), true)
	for i := 0; i < 30; i++ {
		if !a.Step().Equal(b.Step()) {
			t.Fatalf("generation %d differs", i+1)
		}
		if a.Classify() != b.Classify() {
			t.Fatalf("classification differs at generation %d", i+1)
		}
	}
}

func TestPopulationAccounting(t *testing.T) {
	seed := board(8, 8, glider, grid.Coord{X: 2, Y: 2})
	seed.Set(0, 0, 2)
	u := newUniverse(seed, true)
	if u.LiveCells() != 6 {
		t.Fatalf("population %d after SetBoard, expected 6", u.LiveCells())
	}
	for i := 0; i < 10; i++ {
		u.Step()
		if u.LiveCells() != u.Board().Population() {
			t.Fatalf("population %d, board has %d live cells", u.LiveCells(), u.Board().Population())
		}
	}
}

func TestResetBoard(t *testing.T) {
	seed := board(6, 6, glider, grid.Coord{})
	u := newUniverse(seed, true)
	u.Step()
	u.Step()
	restored := u.ResetBoard()
	if !restored.Equal(seed) || u.LiveCells() != len(glider) {
		t.Fatalf("reset did not restore the start board:\n%v", restored)
	}
	if u.Classify() != Evolving {
		t.Fatal("history must be cleared by reset")
	}
}

func TestClearKeepsStart(t *testing.T) {
	seed := board(6, 6, block, grid.Coord{X: 1, Y: 1})
	u := newUniverse(seed, true)
	u.Clear()
	if u.LiveCells() != 0 || u.Board().Population() != 0 {
		t.Fatal("clear left live cells")
	}
	if !u.ResetBoard().Equal(seed) {
		t.Fatal("clear must not alter the start board")
	}
}

func TestShowKeepsStart(t *testing.T) {
	seed := board(6, 6, block, grid.Coord{X: 1, Y: 1})
	u := newUniverse(seed, true)
	u.Step()
	shown := board(6, 6, glider, grid.Coord{})
	u.Show(shown)
	if u.Board() != shown || u.LiveCells() != len(glider) {
		t.Fatalf("shown board not present:\n%v", u.Board())
	}
	if u.Classify() != Evolving {
		t.Fatal("history must be cleared by show")
	}
	if !u.ResetBoard().Equal(seed) {
		t.Fatal("show must not alter the start board")
	}
}

func TestResize(t *testing.T) {
	u := newUniverse(board(6, 6, block, grid.Coord{}), true)
	if u.Resize(6, 6) {
		t.Fatal("resize to the same size must be a no-op")
	}
	if u.LiveCells() != 4 {
		t.Fatal("no-op resize changed the board")
	}
	if !u.Resize(4, 9) {
		t.Fatal("resize reported no change")
	}
	if u.Rows() != 4 || u.Cols() != 9 || u.LiveCells() != 0 {
		t.Fatalf("after resize %dx%d population %d", u.Rows(), u.Cols(), u.LiveCells())
	}
}

func TestSplitRows(t *testing.T) {
	for _, d := range []struct {
		rows, workers int
		bands         [][2]int
	}{
		{10, 10, [][2]int{{0, 2}, {3, 5}, {6, 8}, {9, 9}}},
		{100, 10, [][2]int{{0, 9}, {10, 19}, {20, 29}, {30, 39}, {40, 49}, {50, 59}, {60, 69}, {70, 79}, {80, 89}, {90, 99}}},
		{31, 3, [][2]int{{0, 10}, {11, 21}, {22, 30}}},
		{2, 4, [][2]int{{0, 1}}},
	} {
		areas := splitRows(d.rows, d.workers)
		if len(areas) != len(d.bands) {
			t.Fatalf("%d rows, %d workers: %d areas", d.rows, d.workers, len(areas))
		}
		for i, wa := range areas {
			if wa.y1 != d.bands[i][0] || wa.y2 != d.bands[i][1] {
				t.Errorf("%d rows, %d workers: area %d is %d..%d", d.rows, d.workers, i, wa.y1, wa.y2)
			}
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, wrap := range []bool{true, false} {
		seed := grid.New(23, 17, 0)
		seed.SetShape(glider, false, grid.Coord{X: 2, Y: 2})
		seed.SetShape(beacon, false, grid.Coord{X: 10, Y: 14})
		seed.SetShape(blinker, false, grid.Coord{X: 14, Y: 0})
		seed.SetShape(block, false, grid.Coord{X: 16, Y: 22})

		sequential := newUniverse(seed, wrap)
		parallel := newUniverse(seed, wrap)
		parallel.SetWorkers(4)
		if parallel.Workers() != 4 || sequential.Workers() != 1 {
			t.Fatalf("workers %d and %d", parallel.Workers(), sequential.Workers())
		}
		for i := 0; i < 40; i++ {
			sequential.Step()
			parallel.Step()
			if !parallel.Board().Equal(sequential.Board()) || parallel.LiveCells() != sequential.LiveCells() {
				t.Fatalf("wrap %v generation %d differs:\n%v\n\n%v", wrap, i+1, parallel.Board(), sequential.Board())
			}
			if parallel.Classify() != sequential.Classify() {
				t.Fatalf("wrap %v generation %d classified differently", wrap, i+1)
			}
		}
	}
}
