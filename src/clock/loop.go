package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

//Loop executes commands and timer callbacks one at a time on its own goroutine
//everything touching the controller goes through the loop, so the controller itself needs no locking
type Loop struct {
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
	closeOnce sync.Once
}

//NewLoop creates the loop and starts the main cycle
func NewLoop() *Loop {
	l := &Loop{
		controlCh: make(chan func(), 16),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
	}
	go l.mainLoop()
	return l
}

//mainLoop waits for commands and executes them until Close is called
func (l *Loop) mainLoop() {
	defer close(l.done)
	for {
		select {
		case cmd := <-l.controlCh:
			cmd()
		case <-l.closeCh:
			return
		}
	}
}

//Do queues fn for execution on the loop goroutine, returns immediately
//it reports false when the loop is already closed
func (l *Loop) Do(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.controlCh <- fn:
		return true
	case <-l.done:
		return false
	}
}

//Call executes fn on the loop goroutine and waits for it to finish
//it must not be used from the loop goroutine itself
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})
	if !l.Do(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

//Close stops the main cycle, pending commands are dropped
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closeCh <- true
	})
	<-l.done
}

//Done is closed when the main cycle has exited
func (l *Loop) Done() <-chan struct{} { return l.done }

type loopTimer struct {
	stopped atomic.Bool
	stopCh  chan struct{}
	once    sync.Once
	timer   *time.Timer
}

func (t *loopTimer) Stop() {
	t.stopped.Store(true)
	t.once.Do(func() {
		if t.timer != nil {
			t.timer.Stop()
		}
		close(t.stopCh)
	})
}

//guard wraps fn so a callback queued before Stop is discarded
func (t *loopTimer) guard(fn func()) func() {
	return func() {
		if !t.stopped.Load() {
			fn()
		}
	}
}

func (l *Loop) Every(interval time.Duration, fn func()) Timer {
	t := &loopTimer{stopCh: make(chan struct{})}
	cb := t.guard(fn)
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case l.controlCh <- cb:
				case <-t.stopCh:
					return
				case <-l.done:
					return
				}
			case <-t.stopCh:
				return
			case <-l.done:
				return
			}
		}
	}()
	return t
}

func (l *Loop) After(delay time.Duration, fn func()) Timer {
	t := &loopTimer{stopCh: make(chan struct{})}
	cb := t.guard(fn)
	t.timer = time.AfterFunc(delay, func() {
		select {
		case l.controlCh <- cb:
		case <-t.stopCh:
		case <-l.done:
		}
	})
	return t
}
