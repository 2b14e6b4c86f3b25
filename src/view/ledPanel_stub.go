//go:build !ebiten

package view

import (
	"errors"

	"lifeplayer/src/controller"
)

var ErrNoLEDPanel = errors.New("the LED panel requires building with the 'ebiten' tag")

//LEDPanel is a placeholder for builds without the ebiten tag
type LEDPanel struct{}

func NewLEDPanel(*Remote, int) *LEDPanel { return &LEDPanel{} }

func (p *LEDPanel) Refresh(*controller.Controller) {}

func (p *LEDPanel) Start() error { return ErrNoLEDPanel }
