//Package controller plays a queue of seed patterns through the Game of Life
//it runs the games, animates the board replacements and chains finished games to the next playlist item
//
//the controller is not safe for concurrent use, all methods and all scheduler callbacks must run on one goroutine
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"lifeplayer/src/clock"
	"lifeplayer/src/grid"
	"lifeplayer/src/logs"
	"lifeplayer/src/shapes"
	"lifeplayer/src/universe"
	"lifeplayer/src/wipe"
)

var (
	ErrInvalidSize   = errors.New("invalid board size")
	ErrShapeNotFound = errors.New("shape not found")
)

//Controller owns the universe, the playlist and at most one timer or wipe at a time
type Controller struct {
	options  Options
	sched    clock.Scheduler
	shapes   ShapeSource
	log      *slog.Logger
	rng      *rand.Rand
	universe *universe.Universe

	state       State
	generation  int
	extraRounds int
	onTick      func(*Controller)

	timer clock.Timer  //periodic stepping or a pending delay
	wiper *wipe.Effect //the wipe in flight

	queue     []Item //what remains to be played
	fullQueue []Item //the playlist as pushed, used to refill the queue
}

//New creates the controller with an empty board
func New(sched clock.Scheduler, source ShapeSource, o *Options) (*Controller, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if o.Rows < 1 || o.Cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Rows, o.Cols)
	}
	c := &Controller{
		options:  *o,
		sched:    sched,
		shapes:   source,
		log:      o.Logger,
		rng:      o.Rand,
		universe: universe.New(o.Rows, o.Cols),
	}
	if c.log == nil {
		c.log = logs.Discard()
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.options.Interval <= 0 {
		c.options.Interval = DefInterval
	}
	if c.options.FrameInterval <= 0 {
		c.options.FrameInterval = DefFrameInterval
	}
	c.universe.SetWrap(o.Wrap)
	c.universe.SetWorkers(o.Workers)
	return c, nil
}

//enter switches the state, an impossible transition is a programming error
func (c *Controller) enter(s State) {
	if s == c.state {
		return
	}
	if !c.state.CanEnter(s) {
		panic(fmt.Sprintf("controller: invalid transition from %v to %v", c.state, s))
	}
	c.log.Debug("state change", "from", c.state, "to", s)
	c.state = s
}

func (c *Controller) tick() {
	if c.onTick != nil {
		c.onTick(c)
	}
}

//nextRound advances a single generation and decides whether the game is over
func (c *Controller) nextRound() {
	c.universe.Step()
	c.generation++
	status := c.universe.Classify()
	over := false
	switch {
	case status == universe.Dead || status == universe.Static:
		over = true
	case status >= 2:
		//let an oscillator run a couple more cycles
		switch c.extraRounds {
		case 0:
			c.extraRounds = status * 2
		case 1:
			over = true
		default:
			c.extraRounds--
		}
	}
	if c.options.MaxGenerations > 0 && c.generation >= c.options.MaxGenerations {
		over = true
	}
	if over {
		c.gameOver(status)
	}
	c.tick()
}

func (c *Controller) gameOver(status int) {
	c.log.Info("game over", "generation", c.generation, "population", c.universe.LiveCells(), "classification", status)
	c.stop(true)
}

//Start begins stepping the generations, onTick is called after every generation and every wipe frame
//it does nothing but replace the callback unless the controller is idle
func (c *Controller) Start(onTick func(*Controller)) {
	if onTick != nil {
		c.onTick = onTick
	}
	if c.state != Idle {
		return
	}
	c.run()
}

//OnTick replaces the callback called after every generation and every wipe frame
func (c *Controller) OnTick(onTick func(*Controller)) {
	c.onTick = onTick
}

func (c *Controller) run() {
	c.extraRounds = 0
	c.timer = c.sched.Every(c.options.Interval, c.nextRound)
	c.enter(Running)
}

//stopAll cancels the timer and the wipe
func (c *Controller) stopAll() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.wiper != nil {
		w := c.wiper
		c.wiper = nil
		w.Stop()
	}
}

//Stop halts the game or the transition in progress, the controller becomes idle
func (c *Controller) Stop() {
	c.stop(false)
}

//CompleteGame ends the current game as if it had finished by itself and moves on to the next playlist item
func (c *Controller) CompleteGame() {
	c.stop(true)
}

//stop cancels everything, a completed game additionally advances the queue
//and schedules: delay, wipe to the next board, delay, start of the next game
func (c *Controller) stop(gameCompleted bool) {
	c.stopAll()
	c.extraRounds = 0
	if !gameCompleted {
		c.enter(Idle)
		return
	}
	next, ok := c.AdvanceQueue()
	if !ok {
		c.enter(Idle)
		return
	}
	c.enter(PendingRestart)
	c.timer = c.sched.After(c.options.GameDelay, func() {
		c.timer = nil
		c.playItem(next)
	})
}

//playItem wipes in the board of the item and starts the game after the delay
func (c *Controller) playItem(item Item) {
	c.log.Info("next board", "item", item.String())
	c.replaceBoard(c.ResolveBoard(item), c.universe.Board(), c.pickDirection(grid.Up, grid.Left), true, wipe.Callbacks{
		Done: func(aborted bool) {
			if aborted {
				return
			}
			c.enter(PendingRestart)
			c.timer = c.sched.After(c.options.GameDelay, func() {
				c.timer = nil
				c.run()
			})
		},
	})
}

//SingleStep advances one generation when the controller is idle
func (c *Controller) SingleStep() {
	if c.state != Idle {
		return
	}
	c.nextRound()
}

//pickDirection chooses one of dirs at random
func (c *Controller) pickDirection(dirs ...grid.Direction) grid.Direction {
	return dirs[c.rng.IntN(len(dirs))]
}

//wipeCallbacks wraps the caller's callbacks with the controller's bookkeeping
//a wipe that records and completes makes its final board the start board
func (c *Controller) wipeCallbacks(w *wipe.Effect, record bool, cb wipe.Callbacks) wipe.Callbacks {
	return wipe.Callbacks{
		Update: func() {
			c.tick()
			if cb.Update != nil {
				cb.Update()
			}
		},
		Done: func(aborted bool) {
			if c.wiper == w {
				c.wiper = nil
			}
			c.log.Debug("wipe done", "frames", w.Frames(), "aborted", aborted)
			if record && !aborted {
				c.universe.SetBoard(w.Board())
			}
			if c.state == Transitioning {
				c.enter(Idle)
			}
			if cb.Done != nil {
				cb.Done(aborted)
			}
		},
	}
}

//replaceBoard wipes from into the to board, every frame is shown as the universe's board
func (c *Controller) replaceBoard(from *grid.Grid, to *grid.Grid, dir grid.Direction, record bool, cb wipe.Callbacks) {
	c.stopAll()
	c.generation = 0
	w := wipe.New(c.sched, from, to, c.universe.Show)
	c.wiper = w
	c.enter(Transitioning)
	w.Start(dir, c.wipeCallbacks(w, record, cb), c.options.FrameInterval)
}

func (c *Controller) checkSize(b *grid.Grid) error {
	if b.Rows() != c.universe.Rows() || b.Cols() != c.universe.Cols() {
		return fmt.Errorf("%w: board %dx%d does not match %dx%d", ErrInvalidSize, b.Rows(), b.Cols(), c.universe.Rows(), c.universe.Cols())
	}
	return nil
}

//ReplaceBoard stops the game and wipes the new board in, upward or leftward
func (c *Controller) ReplaceBoard(newBoard *grid.Grid, cb wipe.Callbacks) error {
	if err := c.checkSize(newBoard); err != nil {
		return err
	}
	c.replaceBoard(newBoard, c.universe.Board(), c.pickDirection(grid.Up, grid.Left), true, cb)
	return nil
}

//ResetBoard stops the game and wipes the start board of the last game back in
func (c *Controller) ResetBoard(cb wipe.Callbacks) {
	c.stopAll()
	to := c.universe.Board()
	from := c.universe.ResetBoard()
	c.replaceBoard(from, to, c.pickDirection(grid.Up, grid.Left), false, cb)
}

//ClearBoard stops the game and wipes an empty board in from any direction, the start board is kept
func (c *Controller) ClearBoard(cb wipe.Callbacks) {
	c.stopAll()
	to := c.universe.Board()
	c.universe.Clear()
	from := c.universe.Board()
	c.replaceBoard(from, to, c.pickDirection(grid.Up, grid.Down, grid.Left, grid.Right), false, cb)
}

//AddShape places a catalog shape at the position on a copy of the board and makes it the new start board
//the single cell point toggles
func (c *Controller) AddShape(name string, at grid.Coord) error {
	coords, ok := c.shapeCoords(Item{Shape: name})
	if !ok {
		return fmt.Errorf("%w: %q", ErrShapeNotFound, name)
	}
	b := c.universe.Board().Copy()
	b.SetShape(coords, name == shapes.Point, at)
	c.universe.SetBoard(b)
	c.tick()
	return nil
}

//ScrollBoard rolls the board one cell in dir, cells leaving one edge come back on the opposite edge
//the result becomes the new start board
func (c *Controller) ScrollBoard(dir grid.Direction) {
	c.universe.SetBoard(c.universe.Board().Wrap(dir))
	c.tick()
}

//RandomBoard returns a board of the current size with about density of the cells alive
func (c *Controller) RandomBoard(density float64) *grid.Grid {
	return grid.Random(c.universe.Rows(), c.universe.Cols(), density, c.rng)
}

//CopyShape returns the bitmap of the live cells' bounding box, for example "[[1, 0],\n [0, 1]]"
func (c *Controller) CopyShape() string {
	cells := c.universe.Board().LiveCells(true)
	if len(cells) == 0 {
		return "[]"
	}
	g := shapes.ToGrid(cells)
	rows := make([]string, g.Rows())
	for r := range rows {
		vals := make([]string, g.Cols())
		for col, v := range g.Row(r) {
			vals[col] = fmt.Sprint(v)
		}
		rows[r] = strings.Join(vals, ", ")
	}
	return "[[" + strings.Join(rows, "],\n [") + "]]"
}

//SetWrap stops the game and sets whether the board edges continue on the opposite side
func (c *Controller) SetWrap(wrap bool) {
	if wrap == c.universe.Wrap() {
		return
	}
	c.Stop()
	c.universe.SetWrap(wrap)
}

//SetBoardSize stops the game and replaces the board with an empty one of the new size
func (c *Controller) SetBoardSize(rows int, cols int) error {
	if rows < 1 || cols < 1 {
		c.log.Warn("board size rejected", "rows", rows, "cols", cols)
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if rows == c.universe.Rows() && cols == c.universe.Cols() {
		return nil
	}
	c.Stop()
	c.universe.Resize(rows, cols)
	c.generation = 0
	return nil
}

//SetGenerationRate sets the number of generations per second, clamped to [MinRate, MaxRate]
//a running game continues at the new rate
func (c *Controller) SetGenerationRate(rate float64) {
	c.options.Interval = RateToInterval(rate)
	if c.state == Running {
		c.timer.Stop()
		c.timer = c.sched.Every(c.options.Interval, c.nextRound)
	}
}

func (c *Controller) SetGameDelay(d time.Duration) { c.options.GameDelay = max(d, 0) }

func (c *Controller) SetRepeat(repeat bool) { c.options.Repeat = repeat }

func (c *Controller) SetShuffle(shuffle bool) { c.options.Shuffle = shuffle }

//Board returns the present board, it must be treated as read only
func (c *Controller) Board() *grid.Grid { return c.universe.Board() }

//Render draws the board or the window of it with the glyphs
func (c *Controller) Render(glyphs grid.Glyphs, w *grid.Window) string {
	return c.universe.Board().Render(glyphs, w)
}

//Classify analyzes the present board, see universe.Universe.Classify
func (c *Controller) Classify() int { return c.universe.Classify() }

func (c *Controller) State() State { return c.state }

//Running reports whether generations are being stepped, a wipe does not count
func (c *Controller) Running() bool { return c.state == Running }

//Transitioning reports whether a wipe is in flight
func (c *Controller) Transitioning() bool { return c.state == Transitioning }

func (c *Controller) Generation() int { return c.generation }

func (c *Controller) Population() int { return c.universe.LiveCells() }

func (c *Controller) Wrap() bool { return c.universe.Wrap() }

func (c *Controller) Interval() time.Duration { return c.options.Interval }

func (c *Controller) Options() Options { return c.options }

//Logger returns the controller's logger, hosts log their command failures to it
func (c *Controller) Logger() *slog.Logger { return c.log }
