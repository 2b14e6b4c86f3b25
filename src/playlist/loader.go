//Package playlist loads playlist files written in CUE
//
//a file has an optional settings struct and a playlist list, for example
//
//	settings: {width: 32, height: 16, rate: 4, repeat: true}
//	playlist: [
//		{shape: "r-pentomino"},
//		{shape: "glider", align: "top-center", offset: {x: 2, y: 0}},
//		{bitmap: [[1, 1, 1]]},
//	]
package playlist

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"lifeplayer/src/controller"
	"lifeplayer/src/grid"
	"lifeplayer/src/shapes"
)

var (
	ErrNoPlaylist = errors.New("no playlist")
	ErrBadItem    = errors.New("bad playlist item")
)

const schemaSrc = `
settings?: close({
	width?:    int & >0
	height?:   int & >0
	rate?:     number & >0
	delay?:    int & >=0
	wrap?:     bool
	repeat?:   bool
	shuffle?:  bool
	maxSteps?: int & >=0
})
playlist?: [...close({
	shape?:  string
	bitmap?: [...[...(0 | 1)]]
	text?:   string
	align?:  "center" | "top-center" | "center-left" | "bottom-center" | "center-right" | "none"
	offset?: close({x: int, y: int})
})]
`

//Settings are the options a playlist file may set, nil fields are not set
type Settings struct {
	Width    *int     `json:"width"`
	Height   *int     `json:"height"`
	Rate     *float64 `json:"rate"`  //generations per second
	Delay    *int     `json:"delay"` //game delay in milliseconds
	Wrap     *bool    `json:"wrap"`
	Repeat   *bool    `json:"repeat"`
	Shuffle  *bool    `json:"shuffle"`
	MaxSteps *int     `json:"maxSteps"`
}

//Entry is one playlist item as written in the file
type Entry struct {
	Shape  string  `json:"shape"`
	Bitmap [][]int `json:"bitmap"`
	Text   string  `json:"text"`
	Align  string  `json:"align"`
	Offset struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"offset"`
}

type File struct {
	Path     string
	Settings Settings
	Entries  []Entry
}

//Load reads and validates the playlist file
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content, path)
}

//Parse validates content against the playlist schema and decodes it
//filename is only used in error messages
func Parse(content []byte, filename string) (*File, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + schemaSrc + "})")
	if err := schema.Err(); err != nil {
		return nil, err
	}

	value := ctx.CompileBytes(
		content,
		cue.Filename(filename),
	)
	if err := value.Err(); err != nil {
		return nil, err
	}
	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	f := &File{Path: filename}
	if v := value.LookupPath(cue.ParsePath("settings")); v.Exists() {
		if err := v.Decode(&f.Settings); err != nil {
			return nil, fmt.Errorf("%s: settings: %w", filename, err)
		}
	}
	if v := value.LookupPath(cue.ParsePath("playlist")); v.Exists() {
		if err := v.Decode(&f.Entries); err != nil {
			return nil, fmt.Errorf("%s: playlist: %w", filename, err)
		}
	}
	return f, nil
}

//Items converts the entries to controller items
//every entry needs exactly one of shape, bitmap or text
func (f *File) Items() ([]controller.Item, error) {
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrNoPlaylist)
	}
	items := make([]controller.Item, 0, len(f.Entries))
	for i, e := range f.Entries {
		item, err := e.Item()
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", f.Path, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (e Entry) Item() (controller.Item, error) {
	given := 0
	for _, set := range []bool{e.Shape != "", e.Bitmap != nil, e.Text != ""} {
		if set {
			given++
		}
	}
	if given != 1 {
		return controller.Item{}, fmt.Errorf("%w: needs exactly one of shape, bitmap or text", ErrBadItem)
	}
	align, err := controller.ParseAlignment(e.Align)
	if err != nil {
		return controller.Item{}, fmt.Errorf("%w: %v", ErrBadItem, err)
	}
	item := controller.Item{
		Shape:  e.Shape,
		Align:  align,
		Offset: grid.Coord{X: e.Offset.X, Y: e.Offset.Y},
	}
	switch {
	case e.Bitmap != nil:
		item.Cells = shapes.FromBitmap(e.Bitmap)
		if item.Cells == nil {
			item.Cells = []grid.Coord{}
		}
	case e.Text != "":
		item.Shape = controller.TextShape
		item.Text = e.Text
	}
	return item, nil
}

//Apply copies the settings that are set into the options
func (s Settings) Apply(o *controller.Options) {
	if s.Width != nil {
		o.Cols = *s.Width
	}
	if s.Height != nil {
		o.Rows = *s.Height
	}
	if s.Rate != nil {
		o.Interval = controller.RateToInterval(*s.Rate)
	}
	if s.Delay != nil {
		o.GameDelay = time.Duration(*s.Delay) * time.Millisecond
	}
	if s.Wrap != nil {
		o.Wrap = *s.Wrap
	}
	if s.Repeat != nil {
		o.Repeat = *s.Repeat
	}
	if s.Shuffle != nil {
		o.Shuffle = *s.Shuffle
	}
	if s.MaxSteps != nil {
		o.MaxGenerations = *s.MaxSteps
	}
}
