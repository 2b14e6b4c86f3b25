package controller

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"lifeplayer/src/wipe"
)

//generation rate limits, in generations per second
const (
	MinRate = 1
	MaxRate = 10
)

//Options represents the controller's configurable options
type Options struct {
	Rows           int
	Cols           int
	Wrap           bool
	Interval       time.Duration //interval between the generations
	FrameInterval  time.Duration //interval between the frames of a wipe
	GameDelay      time.Duration //pause after a finished game and before the next one starts
	Repeat         bool          //refill the queue from the playlist when it runs empty
	Shuffle        bool          //play the queue in random order
	MaxGenerations int           //a game is over after this many generations, 0 means no limit
	Workers        int           //goroutines computing a generation, 1 or less computes on the caller's goroutine
	Logger         *slog.Logger
	Rand           *rand.Rand
	Typesetter     Typesetter
}

//default options
const (
	DefRows          = 10
	DefCols          = 11
	DefInterval      = 500 * time.Millisecond
	DefGameDelay     = 500 * time.Millisecond
	DefFrameInterval = wipe.DefaultFrameInterval
)

var DefaultOptions = Options{
	Rows:          DefRows,
	Cols:          DefCols,
	Wrap:          true,
	Interval:      DefInterval,
	FrameInterval: DefFrameInterval,
	GameDelay:     DefGameDelay,
}

//RateToInterval converts generations per second to the interval between generations
//the rate is clamped to [MinRate, MaxRate]
func RateToInterval(rate float64) time.Duration {
	if math.IsNaN(rate) {
		rate = MinRate
	}
	rate = math.Max(MinRate, math.Min(MaxRate, rate))
	return time.Duration(math.Round(1000/rate)) * time.Millisecond
}
