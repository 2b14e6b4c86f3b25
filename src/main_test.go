package main

import (
	"bytes"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifeplayer/src/clock"
	"lifeplayer/src/controller"
	"lifeplayer/src/shapes"
)

func TestFlagsOverridePlaylist(t *testing.T) {
	eo := &EnvOptions{
		playlist: filepath.Join("playlist", "testdata", "full.cue"),
		width:    20,
		rate:     10,
		shuffle:  true,
		shapes:   []string{"glider"},
		align:    "none",
	}
	o := controller.DefaultOptions
	items, err := loadItems(eo, shapes.Builtin(), &o)
	if err != nil {
		t.Fatal(err)
	}
	eo.apply(&o)

	if o.Cols != 20 || o.Rows != 12 || o.Interval != 100*time.Millisecond || !o.Shuffle || o.Wrap || !o.Repeat {
		t.Fatalf("options %+v", o)
	}
	if len(items) != 5 || items[4].Shape != "glider" || items[4].Align != controller.AlignNone {
		t.Fatalf("items %v", items)
	}
}

func TestDefaultItems(t *testing.T) {
	o := controller.DefaultOptions
	items, err := loadItems(&EnvOptions{}, shapes.Builtin(), &o)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Shape != "testSample1" {
		t.Fatalf("items %v", items)
	}
	items, _ = loadItems(&EnvOptions{randomData: true}, shapes.Builtin(), &o)
	if len(items) != 0 {
		t.Fatalf("items %v with random data", items)
	}
}

func TestBoundedFlag(t *testing.T) {
	o := controller.DefaultOptions
	(&EnvOptions{bounded: true, maxSteps: 40, delay: time.Second}).apply(&o)
	if o.Wrap || o.MaxGenerations != 40 || o.GameDelay != time.Second {
		t.Fatalf("options %+v", o)
	}
}

func TestPlay(t *testing.T) {
	m := clock.NewManual()
	o := controller.DefaultOptions
	o.Rand = rand.New(rand.NewPCG(1, 2))
	c, err := controller.New(m, shapes.Builtin(), &o)
	if err != nil {
		t.Fatal(err)
	}
	if play(c, nil, false, true) {
		t.Fatal("played an empty queue")
	}
	if !play(c, []controller.Item{{Shape: "blinker"}}, false, true) {
		t.Fatal("nothing played")
	}
	if !m.RunUntil(10*time.Millisecond, time.Minute, func() bool { return c.Running() }) {
		t.Fatal("game not started after the wipe")
	}
	if !m.RunUntil(10*time.Millisecond, time.Minute, func() bool { return c.State() == controller.Idle }) {
		t.Fatal("game not finished")
	}
	if c.Generation() != 6 || !c.PlaylistEmpty() {
		t.Fatalf("status %+v", c.Status())
	}
}

func TestListShapes(t *testing.T) {
	catalog := shapes.Builtin()
	buf := new(bytes.Buffer)
	listShapes(buf, catalog, "")
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(catalog.Names()) {
		t.Fatalf("%d lines for %d shapes", len(lines), len(catalog.Names()))
	}

	buf.Reset()
	listShapes(buf, catalog, "spaceship")
	s := buf.String()
	if !strings.Contains(s, "lwss-up") || !strings.Contains(s, "glider heading down-left [spaceship]") {
		t.Fatalf("spaceships:\n%s", s)
	}
	if strings.Contains(s, "blinker") {
		t.Fatalf("oscillator listed as spaceship:\n%s", s)
	}

	buf.Reset()
	listShapes(buf, catalog, "no such category")
	if buf.Len() != 0 {
		t.Fatalf("unknown category listed:\n%s", buf.String())
	}
}
