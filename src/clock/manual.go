package clock

import "time"

//Manual is a Scheduler driven by hand, time only moves when Advance is called
//callbacks run on the goroutine calling Advance
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at      time.Duration
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() { t.stopped = true }

func NewManual() *Manual {
	return &Manual{}
}

//Now returns the time elapsed since the scheduler was created
func (m *Manual) Now() time.Duration { return m.now }

func (m *Manual) add(delay time.Duration, every time.Duration, fn func()) *manualTask {
	m.seq++
	t := &manualTask{at: m.now + delay, every: every, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *Manual) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return m.add(interval, interval, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) Timer {
	return m.add(delay, 0, fn)
}

//Pending returns the number of armed timers
func (m *Manual) Pending() int {
	m.prune()
	return len(m.tasks)
}

func (m *Manual) prune() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live
}

//next returns the earliest task due not later than limit
func (m *Manual) next(limit time.Duration) *manualTask {
	m.prune()
	var best *manualTask
	for _, t := range m.tasks {
		if t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

//Advance moves the clock forward by d and runs every callback that becomes due, in time order
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			t.stopped = true
		}
		t.fn()
	}
	m.now = target
}

//RunUntil advances in steps of d until cond holds or limit is reached
//it reports whether cond became true
func (m *Manual) RunUntil(d time.Duration, limit time.Duration, cond func() bool) bool {
	for elapsed := time.Duration(0); elapsed < limit; elapsed += d {
		if cond() {
			return true
		}
		m.Advance(d)
	}
	return cond()
}
