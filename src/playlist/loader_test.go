package playlist

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"lifeplayer/src/controller"
	"lifeplayer/src/grid"
)

func load(t *testing.T, name string) (*File, error) {
	t.Helper()
	return Load(filepath.Join("testdata", name))
}

func TestLoadFull(t *testing.T) {
	f, err := load(t, "full.cue")
	if err != nil {
		t.Fatal(err)
	}

	o := controller.DefaultOptions
	f.Settings.Apply(&o)
	if o.Cols != 16 || o.Rows != 12 || o.Wrap || !o.Repeat || o.Shuffle || o.MaxGenerations != 300 {
		t.Fatalf("options %+v", o)
	}
	if o.Interval != 250*time.Millisecond || o.GameDelay != 250*time.Millisecond {
		t.Fatalf("interval %v delay %v", o.Interval, o.GameDelay)
	}

	items, err := f.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Fatalf("%d items", len(items))
	}
	if items[0].Shape != "r-pentomino" || items[0].Align != controller.AlignCenter {
		t.Errorf("item 0: %+v", items[0])
	}
	if items[1].Align != controller.AlignTopCenter || items[1].Offset != (grid.Coord{X: 2, Y: -1}) {
		t.Errorf("item 1: %+v", items[1])
	}
	if !slices.Equal(items[2].Cells, []grid.Coord{{X: 0}, {X: 1}, {X: 2}}) || items[2].Align != controller.AlignNone {
		t.Errorf("item 2: %+v", items[2])
	}
	if items[3].Shape != controller.TextShape || items[3].Text != "hi" {
		t.Errorf("item 3: %+v", items[3])
	}
}

func TestLoadMinimal(t *testing.T) {
	f, err := load(t, "minimal.cue")
	if err != nil {
		t.Fatal(err)
	}
	o := controller.DefaultOptions
	f.Settings.Apply(&o)
	if o.Rows != controller.DefRows || o.Cols != controller.DefCols || !o.Wrap || o.Interval != controller.DefInterval {
		t.Fatalf("defaults changed: %+v", o)
	}
	items, err := f.Items()
	if err != nil || len(items) != 1 || items[0].Shape != "blinker" {
		t.Fatalf("items %v, %v", items, err)
	}
}

func TestSettingsWithoutPlaylist(t *testing.T) {
	f, err := load(t, "settings_only.cue")
	if err != nil {
		t.Fatal(err)
	}
	if f.Settings.Shuffle == nil || !*f.Settings.Shuffle {
		t.Fatal("shuffle not decoded")
	}
	if _, err := f.Items(); !errors.Is(err, ErrNoPlaylist) {
		t.Fatalf("expected ErrNoPlaylist, got %v", err)
	}
}

func TestRejected(t *testing.T) {
	for _, name := range []string{"unknown_field.cue", "bad_align.cue", "syntax_error.cue"} {
		if _, err := load(t, name); err == nil {
			t.Errorf("%s accepted", name)
		}
	}
	if _, err := load(t, "no_such_file.cue"); err == nil {
		t.Error("missing file accepted")
	}
}

func TestItemNeedsOneSource(t *testing.T) {
	f, err := load(t, "two_sources.cue")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Items(); !errors.Is(err, ErrBadItem) {
		t.Fatalf("expected ErrBadItem, got %v", err)
	}
	if _, err := (Entry{}).Item(); !errors.Is(err, ErrBadItem) {
		t.Fatalf("empty entry: expected ErrBadItem, got %v", err)
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`playlist: [{shape: "block", align: "center-right"}]`), "inline.cue")
	if err != nil {
		t.Fatal(err)
	}
	items, err := f.Items()
	if err != nil || items[0].Align != controller.AlignCenterRight {
		t.Fatalf("items %v, %v", items, err)
	}
	if _, err := Parse([]byte(`settings: {width: 0}`), "inline.cue"); err == nil {
		t.Fatal("zero width accepted")
	}
}
