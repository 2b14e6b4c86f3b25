//go:build ebiten

package view

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifeplayer/src/controller"
	"lifeplayer/src/grid"
	"lifeplayer/src/shapes"
	"lifeplayer/src/wipe"
)

//LEDPanel shows the board as a window of lit pixels, one square per cell
type LEDPanel struct {
	r     *Remote
	scale int

	mu   sync.Mutex
	snap ledSnapshot

	img *ebiten.Image
}

func NewLEDPanel(r *Remote, scale int) *LEDPanel {
	if scale < 1 {
		scale = 1
	}
	p := &LEDPanel{r: r, scale: scale}
	r.Register(p)
	return p
}

//Refresh copies the board, it runs on the loop goroutine
func (p *LEDPanel) Refresh(c *controller.Controller) {
	s := newLEDSnapshot(c.Board())
	p.mu.Lock()
	p.snap = s
	p.mu.Unlock()
}

func (p *LEDPanel) snapshot() ledSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

//Start opens the window and blocks until it is closed
func (p *LEDPanel) Start() error {
	p.r.Call(func(*controller.Controller) {})
	s := p.snapshot()
	ebiten.SetWindowTitle("lifeplayer")
	ebiten.SetWindowSize(s.cols*p.scale, s.rows*p.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(p); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (p *LEDPanel) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.r.Do(func(c *controller.Controller) {
			if c.Running() {
				c.Stop()
			} else {
				c.Start(nil)
			}
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		p.r.Do(func(c *controller.Controller) { c.SingleStep() })
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		p.r.Do(func(c *controller.Controller) { c.CompleteGame() })
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		p.r.Do(func(c *controller.Controller) { c.ClearBoard(wipe.Callbacks{}) })
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.r.Do(func(c *controller.Controller) { c.ResetBoard(wipe.Callbacks{}) })
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s := p.snapshot()
		x, y := ebiten.CursorPosition()
		if at, ok := cellAt(x, y, p.scale, s.rows, s.cols); ok {
			p.r.Do(func(c *controller.Controller) {
				if err := c.AddShape(shapes.Point, at); err != nil {
					c.Logger().Warn("toggle cell", "error", err)
				}
			})
		}
	default:
		for key, dir := range scrollKeys {
			if inpututil.IsKeyJustPressed(key) {
				p.r.Do(func(c *controller.Controller) { c.ScrollBoard(dir) })
			}
		}
	}
	return nil
}

var scrollKeys = map[ebiten.Key]grid.Direction{
	ebiten.KeyArrowUp:    grid.Up,
	ebiten.KeyArrowDown:  grid.Down,
	ebiten.KeyArrowLeft:  grid.Left,
	ebiten.KeyArrowRight: grid.Right,
}

func (p *LEDPanel) Draw(screen *ebiten.Image) {
	s := p.snapshot()
	if s.rows == 0 || s.cols == 0 {
		return
	}
	if p.img == nil || p.img.Bounds().Dx() != s.cols || p.img.Bounds().Dy() != s.rows {
		p.img = ebiten.NewImage(s.cols, s.rows)
	}
	p.img.WritePixels(s.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(p.scale), float64(p.scale))
	screen.DrawImage(p.img, op)
}

func (p *LEDPanel) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := p.snapshot()
	return max(s.cols*p.scale, 1), max(s.rows*p.scale, 1)
}
