//Package wipe animates the replacement of one board by another, one row or column per frame
package wipe

import (
	"time"

	"lifeplayer/src/clock"
	"lifeplayer/src/grid"
)

//DefaultFrameInterval is the delay between two frames of a wipe
const DefaultFrameInterval = 20 * time.Millisecond

//Callbacks are invoked by a running effect
//Update is called after every frame, Done exactly once per Start with aborted set when Stop interrupted the wipe
type Callbacks struct {
	Update func()
	Done   func(aborted bool)
}

//Effect shifts the "from" board into the "to" board
//the intermediate boards are published through the setBoard function given to New
type Effect struct {
	sched    clock.Scheduler
	from     *grid.Grid
	to       *grid.Grid
	setBoard func(*grid.Grid)

	dir       grid.Direction
	callbacks Callbacks
	fromIdx   int
	frames    int
	timer     clock.Timer
}

//New creates the effect, from and to must have the same dimensions
func New(sched clock.Scheduler, from *grid.Grid, to *grid.Grid, setBoard func(*grid.Grid)) *Effect {
	return &Effect{
		sched:    sched,
		from:     from,
		to:       to,
		setBoard: setBoard,
	}
}

//Start aborts the running wipe if any and starts a new one in direction dir
func (e *Effect) Start(dir grid.Direction, callbacks Callbacks, frameInterval time.Duration) {
	e.Stop()
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	e.dir = dir
	e.callbacks = callbacks
	e.frames = 0
	switch dir {
	case grid.Down:
		e.fromIdx = e.from.Rows() - 1
	case grid.Right:
		e.fromIdx = e.from.Cols() - 1
	default: //Up and Left start at 0
		e.fromIdx = 0
	}
	e.timer = e.sched.Every(frameInterval, e.AdvanceFrame)
}

//Stop cancels the wipe, Done is called with aborted set
//it is a no-op when the effect is not running
func (e *Effect) Stop() {
	e.finish(true)
}

func (e *Effect) finish(aborted bool) {
	if e.timer == nil {
		return
	}
	e.timer.Stop()
	e.timer = nil
	if e.callbacks.Done != nil {
		e.callbacks.Done(aborted)
	}
}

//Running reports whether the wipe has frames left to show
func (e *Effect) Running() bool { return e.timer != nil }

//Frames returns the number of frames shown since Start
func (e *Effect) Frames() int { return e.frames }

//Board returns the board shown by the last frame
func (e *Effect) Board() *grid.Grid { return e.to }

//AdvanceFrame shows the next frame, the last frame completes the wipe
func (e *Effect) AdvanceFrame() {
	if e.timer == nil {
		return
	}
	e.to = e.to.Wipe(e.dir, e.from, e.fromIdx)
	e.frames++
	e.setBoard(e.to)

	shifting := true
	switch e.dir {
	case grid.Up:
		shifting = e.fromIdx+1 < e.from.Rows()
		e.fromIdx++
	case grid.Left:
		shifting = e.fromIdx+1 < e.from.Cols()
		e.fromIdx++
	default: //Down and Right count down to 0
		shifting = e.fromIdx > 0
		e.fromIdx--
	}

	if e.callbacks.Update != nil {
		e.callbacks.Update()
	}
	if !shifting {
		e.finish(false)
	}
}
