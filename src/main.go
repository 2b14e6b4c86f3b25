package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"

	"lifeplayer/src/clock"
	"lifeplayer/src/controller"
	"lifeplayer/src/logs"
	"lifeplayer/src/playlist"
	"lifeplayer/src/shapes"
	"lifeplayer/src/view"
	"lifeplayer/src/wipe"
)

//randomDensity is the share of live cells of a random board
const randomDensity = 0.3

//EnvOptions are the flags which are not controller options
//zero values mean the flag was not given
type EnvOptions struct {
	width       int
	height      int
	rate        float64
	delay       time.Duration
	maxSteps    int
	workers     int
	bounded     bool
	repeat      bool
	shuffle     bool
	interactive bool
	randomData  bool
	playlist    string
	shapes      []string
	align       string
	logFile     string
	logLevel    string
	led         int
	list        bool
	category    string
}

func main() {
	eo := initOptions()
	catalog := shapes.Builtin()
	if eo.list {
		listShapes(os.Stdout, catalog, eo.category)
		return
	}

	logger, closeLog, err := newLogger(eo)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	o := controller.DefaultOptions
	items, err := loadItems(eo, catalog, &o)
	if err != nil {
		log.Fatal(err)
	}
	eo.apply(&o)
	o.Logger = logger

	loop := clock.NewLoop()
	defer loop.Close()

	c, err := controller.New(loop, catalog, &o)
	if err != nil {
		log.Fatal(err)
	}
	r := view.NewRemote(loop, c)

	switch {
	case eo.led > 0:
		p := view.NewLEDPanel(r, eo.led)
		r.Call(func(c *controller.Controller) {
			c.OnTick(r.Refresh)
			play(c, items, eo.randomData, true)
		})
		err = p.Start()
	case eo.interactive:
		var t *view.ConsoleUI
		t, err = view.NewConsoleUI(r)
		if err != nil {
			break
		}
		r.Call(func(c *controller.Controller) {
			c.OnTick(r.Refresh)
			play(c, items, eo.randomData, false)
		})
		err = t.Start()
	default:
		err = runHeadless(r, logger, items, eo.randomData)
	}
	if err != nil {
		logger.Error("exit", "error", err)
		log.Fatal(err)
	}
}

//play wipes in the first board, with autoStart the games run through the playlist by themselves
//it reports false when there is nothing to play
func play(c *controller.Controller, items []controller.Item, random bool, autoStart bool) bool {
	b := c.PushQueue(items, true)
	if random {
		b = c.RandomBoard(randomDensity)
	}
	if b == nil {
		return false
	}
	var cb wipe.Callbacks
	if autoStart {
		cb.Done = func(aborted bool) {
			if !aborted {
				c.Start(nil)
			}
		}
	}
	if err := c.ReplaceBoard(b, cb); err != nil {
		c.Logger().Warn("first board", "error", err)
		return false
	}
	return true
}

//runHeadless prints the progress until the playlist ends or the process is interrupted
func runHeadless(r *view.Remote, logger *slog.Logger, items []controller.Item, random bool) error {
	out := view.NewConsoleOut(os.Stdout, true, 10)
	r.Register(out)

	playing := false
	var startErr error
	r.Call(func(c *controller.Controller) {
		out.Register(c)
		if startErr = out.Start(); startErr != nil {
			return
		}
		c.OnTick(r.Refresh)
		playing = play(c, items, random, true)
	})
	if startErr != nil {
		return startErr
	}
	if !playing {
		return fmt.Errorf("nothing to play")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-out.Done():
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		r.Call(func(c *controller.Controller) {
			if !c.PlaylistEmpty() || c.State() != controller.Idle {
				logger.Info("interrupted", "generation", c.Generation())
				c.Stop()
			}
		})
		return nil
	})
	return g.Wait()
}

//listShapes prints the shapes with their description and categories, all of them when category is empty
func listShapes(w io.Writer, catalog *shapes.Catalog, category string) {
	names := catalog.Names()
	if category != "" {
		names = catalog.Category(category)
	}
	for _, name := range names {
		t, _ := catalog.Template(name)
		_, _ = fmt.Fprintf(w, "%-24s %s [%s]\n", t.Name, t.Descr, strings.Join(t.Categories, ", "))
	}
}

//loadItems builds the queue from the playlist file and the shape flags, file settings go into o
func loadItems(eo *EnvOptions, catalog *shapes.Catalog, o *controller.Options) ([]controller.Item, error) {
	var items []controller.Item
	if eo.playlist != "" {
		f, err := playlist.Load(eo.playlist)
		if err != nil {
			return nil, err
		}
		f.Settings.Apply(o)
		if len(f.Entries) > 0 {
			if items, err = f.Items(); err != nil {
				return nil, err
			}
		}
	}

	align, err := controller.ParseAlignment(eo.align)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	for _, name := range eo.shapes {
		if _, ok := catalog.Lookup(name); !ok {
			flaggy.ShowHelpAndExit(fmt.Sprintf("unknown shape %q, known shapes: %s", name, strings.Join(catalog.Names(), ", ")))
		}
		items = append(items, controller.Item{Shape: name, Align: align})
	}

	if len(items) == 0 && !eo.randomData {
		items = append(items, controller.Item{Shape: "testSample1", Align: align})
	}
	return items, nil
}

//apply copies the flags which were given into o, they override the playlist file
func (eo *EnvOptions) apply(o *controller.Options) {
	if eo.width > 0 {
		o.Cols = eo.width
	}
	if eo.height > 0 {
		o.Rows = eo.height
	}
	if eo.rate > 0 {
		o.Interval = controller.RateToInterval(eo.rate)
	}
	if eo.delay > 0 {
		o.GameDelay = eo.delay
	}
	if eo.maxSteps > 0 {
		o.MaxGenerations = eo.maxSteps
	}
	if eo.workers > 0 {
		o.Workers = eo.workers
	}
	if eo.bounded {
		o.Wrap = false
	}
	if eo.repeat {
		o.Repeat = true
	}
	if eo.shuffle {
		o.Shuffle = true
	}
}

//newLogger writes to the log file when given, the terminal UI owns stderr so it logs nowhere else
func newLogger(eo *EnvOptions) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if eo.logLevel != "" {
		l, err := logs.ParseLevel(eo.logLevel)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	switch {
	case eo.logFile != "":
		f, err := os.OpenFile(eo.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { _ = f.Close() }
	case eo.interactive:
		w = io.Discard
	}
	return logs.New(w, level), closeLog, nil
}

func initOptions() (eo *EnvOptions) {
	eo = &EnvOptions{}
	flaggy.SetName("lifeplayer")
	flaggy.SetDescription("plays a playlist of seed patterns through the Game of Life")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&eo.width, "x", "width", "Width of the board")
	flaggy.Int(&eo.height, "y", "height", "Height of the board")
	flaggy.Float64(&eo.rate, "r", "rate", fmt.Sprintf("Generations per second [%v-%v]", controller.MinRate, controller.MaxRate))
	flaggy.Duration(&eo.delay, "d", "delay", "Pause between the games, for example 500ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "A game is over after maxSteps generations")
	flaggy.Int(&eo.workers, "w", "workers", "Goroutines computing a generation, useful for large boards")
	flaggy.Bool(&eo.bounded, "", "bounded", "Cells beyond the board edges are dead instead of wrapping around")
	flaggy.Bool(&eo.repeat, "", "repeat", "Play the playlist again when it ends")
	flaggy.Bool(&eo.shuffle, "", "shuffle", "Play the playlist in random order")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "", "random", "Start with a random board")
	flaggy.String(&eo.playlist, "p", "playlist", "Playlist file (CUE)")
	flaggy.StringSlice(&eo.shapes, "", "shape", "Shape to play, may be repeated")
	flaggy.String(&eo.align, "", "align", "Placement of the shapes [center|top-center|center-left|bottom-center|center-right|none]")
	flaggy.String(&eo.logFile, "", "log", "Append the log to this file")
	flaggy.String(&eo.logLevel, "", "logLevel", "Log level [debug|info|warn|error]")
	flaggy.Int(&eo.led, "", "led", "Show the board in an LED panel window with this many pixels per cell")
	flaggy.Bool(&eo.list, "l", "list", "List the known shapes and exit")
	flaggy.String(&eo.category, "", "category", "List only the shapes of this category")

	flaggy.Parse()

	if eo.width < 0 || eo.height < 0 {
		flaggy.ShowHelpAndExit("the board size must be positive")
	}
	return
}
