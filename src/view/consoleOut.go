package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"lifeplayer/src/controller"
)

//ConsoleOut prints the progress of a headless run
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
	last      controller.Status
	games     int
	done      chan struct{}
	doneOnce  sync.Once
}

//NewConsoleOut prints to w, a progress line is printed every "every" generations
func NewConsoleOut(w io.Writer, colors bool, every int) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{
		w:     w,
		au:    aurora.NewAurora(colors),
		every: every,
		done:  make(chan struct{}),
	}
}

//Register prints the configuration, it runs on the loop goroutine
func (c *ConsoleOut) Register(ctl *controller.Controller) {
	o := ctl.Options()
	s := ctl.Status()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":       fmt.Sprintf("%v x %v", s.Cols, s.Rows),
		"Wrap":            s.Wrap,
		"Interval":        o.Interval,
		"Game delay":      o.GameDelay,
		"Repeat":          o.Repeat,
		"Shuffle":         o.Shuffle,
		"Max generations": o.MaxGenerations,
		"Playlist":        len(ctl.Playlist()),
	})
	c.last = s
}

func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nPlayback started...")
	return nil
}

//Refresh prints a progress line, the end of each game and the end of the playlist
func (c *ConsoleOut) Refresh(ctl *controller.Controller) {
	st := ctl.Status()
	defer func() { c.last = st }()

	//a generation that leaves the controller outside Running ended the game
	ended := st.State != controller.Running && st.Generation > 0 &&
		(st.Generation != c.last.Generation || c.last.State == controller.Running)
	if ended {
		c.games++
		_, _ = fmt.Fprintf(c.w, "  %s %v after %v generations, %v live cells\n",
			c.au.Colorize("Game", aurora.CyanFg), c.games, st.Generation, st.Population)
	}
	if st.State == controller.Running && st.Generation > 0 && st.Generation%c.every == 0 && st.Generation != c.last.Generation {
		_, _ = fmt.Fprintf(c.w, "  Generations done: %v\n", st.Generation)
	}
	if st.State == controller.Idle && st.PlaylistEmpty && c.games > 0 {
		c.doneOnce.Do(func() {
			_, _ = fmt.Fprintln(c.w, c.au.Colorize("\nFinished:", aurora.RedFg))
			c.printHashData(map[string]interface{}{
				"Games":      c.games,
				"Total time": time.Since(c.startTime).Round(time.Millisecond),
				"Live cells": st.Population,
			})
			close(c.done)
		})
	}
}

//Done is closed once the playlist has been played to the end
func (c *ConsoleOut) Done() <-chan struct{} { return c.done }

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
