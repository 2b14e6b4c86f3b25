package view

import (
	"time"

	"lifeplayer/src/clock"
	"lifeplayer/src/controller"
)

//Viewer is a display surface of the controller
type Viewer interface {
	//Refresh is called on the loop goroutine after every generation, every wipe frame and every command
	Refresh(c *controller.Controller)
	//Start blocks until the surface is closed
	Start() error
}

//Remote runs commands against the controller on the loop goroutine and refreshes the viewers afterwards
type Remote struct {
	loop    *clock.Loop
	c       *controller.Controller
	viewers []Viewer
}

func NewRemote(loop *clock.Loop, c *controller.Controller) *Remote {
	return &Remote{loop: loop, c: c}
}

//Register adds the viewer, it must be called before the loop starts running commands
func (r *Remote) Register(v Viewer) {
	r.viewers = append(r.viewers, v)
}

//Refresh updates every registered viewer, it is the controller's tick callback
func (r *Remote) Refresh(c *controller.Controller) {
	for _, v := range r.viewers {
		v.Refresh(c)
	}
}

//Do queues fn on the loop goroutine, it reports false when the loop is closed
func (r *Remote) Do(fn func(c *controller.Controller)) bool {
	return r.loop.Do(func() {
		fn(r.c)
		r.Refresh(r.c)
	})
}

//Call runs fn on the loop goroutine and waits for it
func (r *Remote) Call(fn func(c *controller.Controller)) bool {
	return r.loop.Call(func() {
		fn(r.c)
		r.Refresh(r.c)
	})
}

//rate converts the generation interval back to generations per second
func rate(interval time.Duration) float64 {
	if interval <= 0 {
		return controller.MaxRate
	}
	return float64(time.Second) / float64(interval)
}
