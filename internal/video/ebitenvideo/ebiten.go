// Package ebitenvideo implements the video backend on top of Ebitengine.
//
// Ebitengine owns the main loop, so the host hands its per-frame function to
// Backend.Run instead of polling events itself. Ebitengine only offers
// desktop fullscreen: explicit display modes and gamma ramps are reported as
// unsupported and the video manager keeps the previous mode.
package ebitenvideo

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/video"
)

var (
	ErrDisplayMode = errors.New("ebitengine: explicit display modes are not supported")
	ErrGammaRamp   = errors.New("ebitengine: gamma ramps are not supported")
)

type Backend struct {
	window  *Window
	pending []video.ResizeEvent
	quit    bool
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "ebiten" }

func (b *Backend) DesktopDisplayMode() (video.DisplayMode, error) {
	w, h := ebiten.Monitor().Size()
	if w == 0 || h == 0 {
		return video.DisplayMode{}, errors.New("ebitengine: monitor size unavailable")
	}
	return video.DisplayMode{Width: w, Height: h, Format: video.PixelFormatRGB888}, nil
}

func (b *Backend) CreateWindow(title string, size config.Size, flags video.WindowFlags) (video.Window, error) {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(size.Width, size.Height)
	w := &Window{backend: b, last: size}
	w.SetResizable(flags&video.FlagResizable != 0)
	ebiten.SetFullscreen(flags&(video.FlagFullscreen|video.FlagFullscreenDesktop) != 0)
	b.window = w
	b.quit = false
	return w, nil
}

// Poll hands over resize events observed during the last Layout calls.
func (b *Backend) Poll(emit func(video.ResizeEvent)) bool {
	for _, ev := range b.pending {
		emit(ev)
	}
	b.pending = b.pending[:0]
	return b.quit
}

// Run blocks in Ebitengine's loop, calling frame once per tick until frame
// returns an error or the window is closed.
func (b *Backend) Run(frame func() error) error {
	err := ebiten.RunGame(&game{backend: b, frame: frame})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	backend *Backend
	frame   func() error
}

func (g *game) Update() error {
	if g.backend.quit || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return g.frame()
}

func (g *game) Draw(*ebiten.Image) {}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w := g.backend.window; w != nil && !ebiten.IsFullscreen() {
		size := config.Size{Width: outsideWidth, Height: outsideHeight}
		if size != w.last {
			w.last = size
			g.backend.pending = append(g.backend.pending, video.ResizeEvent{Width: size.Width, Height: size.Height})
		}
	}
	return outsideWidth, outsideHeight
}

type Window struct {
	backend *Backend
	last    config.Size
}

func (w *Window) Size() config.Size {
	width, height := ebiten.WindowSize()
	return config.Size{Width: width, Height: height}
}

func (w *Window) SetSize(size config.Size) {
	w.last = size
	ebiten.SetWindowSize(size.Width, size.Height)
}

func (w *Window) SetFullscreen(flags video.WindowFlags) error {
	ebiten.SetFullscreen(flags&(video.FlagFullscreen|video.FlagFullscreenDesktop) != 0)
	return nil
}

func (w *Window) SetDisplayMode(video.DisplayMode) error {
	return ErrDisplayMode
}

func (w *Window) SetResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

func (w *Window) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (w *Window) SetIcon(icon image.Image) error {
	ebiten.SetWindowIcon([]image.Image{icon})
	return nil
}

func (w *Window) SetGammaRamp(_, _, _ *video.GammaRamp) error {
	return ErrGammaRamp
}

// Destroy ends the Ebitengine loop at the next tick.
func (w *Window) Destroy() error {
	w.backend.quit = true
	w.backend.window = nil
	return nil
}
