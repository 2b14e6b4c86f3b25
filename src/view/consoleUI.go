package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifeplayer/src/controller"
	"lifeplayer/src/grid"
	"lifeplayer/src/shapes"
	"lifeplayer/src/wipe"
)

//randomDensity is the share of live cells of a random board
const randomDensity = 0.3

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal board
type ConsoleUI struct {
	r *Remote
	g *gocui.Gui
	k []keyBindings

	liveFiller  string
	deadFiller  string
	blankFiller string

	//snapshot taken on the loop goroutine, drawn on the gui goroutine
	mu      sync.Mutex
	fieldW  int
	fieldH  int
	field   string
	status  controller.Status
	options controller.Options
	message string
}

var (
	stateDescr = map[controller.State]string{
		controller.Idle:           aurora.Colorize("waiting", aurora.BlueFg).String(),
		controller.Running:        aurora.Colorize("running", aurora.CyanFg).String(),
		controller.Transitioning:  aurora.Colorize("wiping", aurora.MagentaFg).String(),
		controller.PendingRestart: aurora.Colorize("next game soon", aurora.YellowFg).String(),
	}
)

func NewConsoleUI(r *Remote) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		r:           r,
		liveFiller:  aurora.Green("█").BgBrightGreen().String(),
		deadFiller:  "░",
		blankFiller: " ",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'p', "P", "Play next", t.cmdPlayNext, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'e', "E", "Reset", t.cmdReset, ""},
		{'w', "W", "Random", t.cmdRandom, ""},
		{'t', "T", "Wrap", t.cmdWrap, ""},
		{'+', "+", "Faster", t.cmdFaster, ""},
		{'-', "-", "Slower", t.cmdSlower, ""},
		{'y', "Y", "Copy shape", t.cmdCopyShape, ""},
		{gocui.KeyArrowUp, "↑", "Scroll up", t.cmdScroll(grid.Up), ""},
		{gocui.KeyArrowDown, "↓", "Scroll down", t.cmdScroll(grid.Down), ""},
		{gocui.KeyArrowLeft, "←", "Scroll left", t.cmdScroll(grid.Left), ""},
		{gocui.KeyArrowRight, "→", "Scroll right", t.cmdScroll(grid.Right), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	r.Register(&t)
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return err
		}
	}
	return nil
}

//Start runs the gui main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	//draw the initial board
	t.r.Do(func(*controller.Controller) {})
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

//Refresh takes the snapshot of the controller, it runs on the loop goroutine
func (t *ConsoleUI) Refresh(c *controller.Controller) {
	t.mu.Lock()
	w, h := t.fieldW, t.fieldH
	if w <= 0 || h <= 0 {
		w, h = c.Board().Cols(), c.Board().Rows()
	}
	t.field = c.Render(grid.Glyphs{Off: t.deadFiller, On: t.liveFiller, Blank: t.blankFiller}, &grid.Window{W: w, H: h})
	t.status = c.Status()
	t.options = c.Options()
	t.mu.Unlock()

	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderConfiguration(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("battlefield")
	if e != nil {
		return
	}
	v.Clear()

	t.mu.Lock()
	field, s := t.field, t.status
	t.mu.Unlock()

	maxW, maxH := v.Size()
	var b bytes.Buffer
	for i, l := range strings.Split(field, "\n") {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if (s.Cols > maxW || s.Rows > maxH) && i == maxH-1 {
			b.WriteString(aurora.Red("The board is larger than the viewing area").BgBlack().String())
			break
		}
		b.WriteString(l)
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	t.mu.Lock()
	s, msg := t.status, t.message
	t.mu.Unlock()

	v.Clear()
	for _, l := range statusLines(aurora.NewAurora(true), s) {
		_, _ = fmt.Fprintln(v, l)
	}
	_, _ = fmt.Fprintln(v, renderProp(aurora.NewAurora(true), "Mode", "%v", stateDescr[s.State]))
	if msg != "" {
		_, _ = fmt.Fprintln(v)
		_, _ = fmt.Fprintln(v, msg)
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, e := g.View("configuration")
	if e != nil {
		return
	}
	t.mu.Lock()
	o, s := t.options, t.status
	t.mu.Unlock()

	v.Clear()
	for _, l := range configurationLines(aurora.NewAurora(true), o, s) {
		_, _ = fmt.Fprintln(v, l)
	}
}

func renderProp(au aurora.Aurora, name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+au.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func statusLines(au aurora.Aurora, s controller.Status) []string {
	return []string{
		renderProp(au, "Generation", "%v", s.Generation),
		renderProp(au, "Live Cells", "%v", s.Population),
		renderProp(au, "Playlist", "%v", map[bool]string{true: "empty", false: "loaded"}[s.PlaylistEmpty]),
	}
}

func configurationLines(au aurora.Aurora, o controller.Options, s controller.Status) []string {
	return []string{
		renderProp(au, "Dimension", "%v x %v", s.Cols, s.Rows),
		renderProp(au, "Wrap", "%v", s.Wrap),
		renderProp(au, "Interval", "%v", o.Interval),
		renderProp(au, "Game delay", "%v", o.GameDelay),
		renderProp(au, "Repeat", "%v", o.Repeat),
		renderProp(au, "Shuffle", "%v", o.Shuffle),
		renderProp(au, "Max generations", "%v", o.MaxGenerations),
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "\"The Life\" playlist player"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(g)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(g)
	}

	v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Board"
		v.Frame = true
	}
	w, h := v.Size()
	t.mu.Lock()
	resized := w != t.fieldW || h != t.fieldH
	t.fieldW, t.fieldH = w, h
	t.mu.Unlock()
	if resized {
		//render again with the new window
		t.r.Do(func(*controller.Controller) {})
	}
	t.renderField(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		_, _ = fmt.Fprintln(v, helpLine(aurora.NewAurora(true), t.k))
	}

	return nil
}

func helpLine(au aurora.Aurora, k []keyBindings) string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(au.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := max((maxX-len(text))/2, 0)
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) setMessage(msg string) {
	t.mu.Lock()
	t.message = msg
	t.mu.Unlock()
}

//reportError logs the failed command and shows it in the message line
func (t *ConsoleUI) reportError(c *controller.Controller, cmd string, err error) {
	c.Logger().Warn("command failed", "command", cmd, "error", err)
	t.setMessage(fmt.Sprintf("%s: %v", cmd, err))
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.SingleStep() })
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.Start(nil) })
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.Stop() })
	return nil
}

func (t *ConsoleUI) cmdPlayNext(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.CompleteGame() })
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.ClearBoard(wipe.Callbacks{}) })
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.ResetBoard(wipe.Callbacks{}) })
	return nil
}

func (t *ConsoleUI) cmdRandom(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) {
		if err := c.ReplaceBoard(c.RandomBoard(randomDensity), wipe.Callbacks{}); err != nil {
			t.reportError(c, "random board", err)
		}
	})
	return nil
}

func (t *ConsoleUI) cmdWrap(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.SetWrap(!c.Wrap()) })
	return nil
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.SetGenerationRate(rate(c.Interval()) + 1) })
	return nil
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { c.SetGenerationRate(rate(c.Interval()) - 1) })
	return nil
}

func (t *ConsoleUI) cmdCopyShape(_ *gocui.View) error {
	t.r.Do(func(c *controller.Controller) { t.setMessage(c.CopyShape()) })
	return nil
}

func (t *ConsoleUI) cmdScroll(dir grid.Direction) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		t.r.Do(func(c *controller.Controller) { c.ScrollBoard(dir) })
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.r.Do(func(c *controller.Controller) {
		if cx >= c.Board().Cols() || cy >= c.Board().Rows() {
			return
		}
		if err := c.AddShape(shapes.Point, grid.Coord{X: cx, Y: cy}); err != nil {
			t.reportError(c, "toggle cell", err)
		}
	})
	return nil
}
