package controller

import (
	"fmt"

	"lifeplayer/src/grid"
)

//Alignment places a shape on the board before the offset is applied, the zero value centers it
type Alignment string

const (
	AlignCenter       Alignment = "center"
	AlignTopCenter    Alignment = "top-center"
	AlignCenterLeft   Alignment = "center-left"
	AlignBottomCenter Alignment = "bottom-center"
	AlignCenterRight  Alignment = "center-right"
	AlignNone         Alignment = "none"
)

var alignments = []Alignment{AlignCenter, AlignTopCenter, AlignCenterLeft, AlignBottomCenter, AlignCenterRight, AlignNone}

//ParseAlignment accepts the alignment keywords, an empty string means center
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return AlignCenter, nil
	}
	for _, a := range alignments {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

//TextShape is the shape name of items rendered from their Text
const TextShape = "text"

//Item is one entry of the playlist
//the shape is Cells when given, otherwise the catalog shape named Shape
type Item struct {
	Shape  string
	Cells  []grid.Coord
	Align  Alignment
	Offset grid.Coord
	Text   string
}

func (i Item) String() string {
	switch {
	case i.Cells != nil:
		return fmt.Sprintf("<%d cells>", len(i.Cells))
	case i.Shape == TextShape:
		return fmt.Sprintf("text %q", i.Text)
	}
	return i.Shape
}

//PushQueue appends the items to the queue and to the playlist
//when the queue was empty and autoAdvance is set, the board for the new head is returned so the host can show it at once
func (c *Controller) PushQueue(items []Item, autoAdvance bool) *grid.Grid {
	wasEmpty := len(c.queue) == 0
	c.queue = append(c.queue, items...)
	c.fullQueue = append(c.fullQueue, items...)
	c.shuffleQueue()
	if autoAdvance && wasEmpty && len(c.queue) > 0 {
		return c.ResolveBoard(c.queue[0])
	}
	return nil
}

//shuffleQueue permutes the active queue when shuffling is enabled, the playlist is never touched
func (c *Controller) shuffleQueue() {
	if !c.options.Shuffle {
		return
	}
	c.rng.Shuffle(len(c.queue), func(i, j int) {
		c.queue[i], c.queue[j] = c.queue[j], c.queue[i]
	})
}

//AdvanceQueue drops the current head and returns the next item
//an exhausted queue is refilled from the playlist when repeating, otherwise both are cleared and false is returned
func (c *Controller) AdvanceQueue() (Item, bool) {
	if len(c.queue) > 0 {
		c.queue[0] = Item{}
		c.queue = c.queue[1:]
	}
	if len(c.queue) == 0 && c.options.Repeat {
		c.queue = append([]Item(nil), c.fullQueue...)
		c.shuffleQueue()
	}
	if len(c.queue) == 0 {
		c.ClearQueue()
		return Item{}, false
	}
	return c.queue[0], true
}

//ClearQueue empties the queue and the playlist
func (c *Controller) ClearQueue() {
	c.queue = nil
	c.fullQueue = nil
}

//Queue returns a copy of the items still to be played, the head first
func (c *Controller) Queue() []Item {
	return append([]Item(nil), c.queue...)
}

//Playlist returns a copy of the full playlist in the order it was pushed
func (c *Controller) Playlist() []Item {
	return append([]Item(nil), c.fullQueue...)
}

//PlaylistEmpty reports whether there is nothing left to play
func (c *Controller) PlaylistEmpty() bool {
	return len(c.fullQueue) == 0
}
