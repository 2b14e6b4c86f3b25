package clock

import "time"

//Timer is a scheduled callback, Stop is idempotent
//after Stop returns the callback is never invoked again
type Timer interface {
	Stop()
}

//Scheduler arms timers whose callbacks all run on one goroutine
type Scheduler interface {
	//Every calls fn each interval until the timer is stopped
	Every(interval time.Duration, fn func()) Timer
	//After calls fn once after delay unless the timer is stopped first
	After(delay time.Duration, fn func()) Timer
}
