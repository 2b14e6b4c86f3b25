package controller

//Status is a snapshot of the controller for the views
type Status struct {
	Generation    int
	Population    int
	State         State
	Running       bool
	Transitioning bool
	PlaylistEmpty bool
	Wrap          bool
	Rows          int
	Cols          int
}

func (c *Controller) Status() Status {
	return Status{
		Generation:    c.generation,
		Population:    c.universe.LiveCells(),
		State:         c.state,
		Running:       c.state == Running,
		Transitioning: c.state == Transitioning,
		PlaylistEmpty: c.PlaylistEmpty(),
		Wrap:          c.universe.Wrap(),
		Rows:          c.universe.Rows(),
		Cols:          c.universe.Cols(),
	}
}
