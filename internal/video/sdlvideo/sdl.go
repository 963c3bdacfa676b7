// Package sdlvideo implements the video backend on top of SDL2.
package sdlvideo

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/video"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend drives SDL's video subsystem. Open must be paired with Close.
type Backend struct{}

// Open initializes the SDL video subsystem.
func Open() (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	return &Backend{}, nil
}

func (b *Backend) Close() {
	sdl.Quit()
}

func (b *Backend) Name() string { return "sdl" }

func (b *Backend) DesktopDisplayMode() (video.DisplayMode, error) {
	mode, err := sdl.GetDesktopDisplayMode(0)
	if err != nil {
		return video.DisplayMode{}, err
	}
	return fromSDLMode(mode), nil
}

func (b *Backend) CreateWindow(title string, size config.Size, flags video.WindowFlags) (video.Window, error) {
	w, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(size.Width), int32(size.Height),
		toSDLFlags(flags))
	if err != nil {
		return nil, err
	}
	return &Window{w: w}, nil
}

// Poll drains SDL's event queue.
func (b *Backend) Poll(emit func(video.ResizeEvent)) bool {
	quit := false
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				emit(video.ResizeEvent{Width: int(e.Data1), Height: int(e.Data2)})
			}
		}
	}
	return quit
}

// Window wraps an *sdl.Window.
type Window struct {
	w *sdl.Window
}

func (w *Window) Size() config.Size {
	width, height := w.w.GetSize()
	return config.Size{Width: int(width), Height: int(height)}
}

func (w *Window) SetSize(size config.Size) {
	w.w.SetSize(int32(size.Width), int32(size.Height))
}

func (w *Window) SetFullscreen(flags video.WindowFlags) error {
	return w.w.SetFullscreen(toSDLFlags(flags & (video.FlagFullscreen | video.FlagFullscreenDesktop)))
}

func (w *Window) SetDisplayMode(mode video.DisplayMode) error {
	m := sdl.DisplayMode{
		Format:      toSDLFormat(mode.Format),
		W:           int32(mode.Width),
		H:           int32(mode.Height),
		RefreshRate: int32(mode.RefreshRate),
	}
	return w.w.SetDisplayMode(&m)
}

func (w *Window) SetResizable(resizable bool) {
	w.w.SetResizable(resizable)
}

func (w *Window) SetTitle(title string) {
	w.w.SetTitle(title)
}

// SetIcon copies icon into a temporary ABGR8888 surface, which matches the
// byte order of image.NRGBA on little-endian hosts.
func (w *Window) SetIcon(icon image.Image) error {
	b := icon.Bounds()
	s, err := sdl.CreateRGBSurfaceWithFormat(0, int32(b.Dx()), int32(b.Dy()), 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return err
	}
	defer s.Free()

	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), icon, b.Min, draw.Src)

	pixels := s.Pixels()
	pitch := int(s.Pitch)
	for y := 0; y < b.Dy(); y++ {
		copy(pixels[y*pitch:y*pitch+b.Dx()*4], rgba.Pix[y*rgba.Stride:])
	}
	w.w.SetIcon(s)
	return nil
}

func (w *Window) SetGammaRamp(red, green, blue *video.GammaRamp) error {
	return w.w.SetGammaRamp((*[256]uint16)(red), (*[256]uint16)(green), (*[256]uint16)(blue))
}

func (w *Window) Destroy() error {
	return w.w.Destroy()
}

func toSDLFlags(flags video.WindowFlags) uint32 {
	var f uint32
	if flags&video.FlagResizable != 0 {
		f |= uint32(sdl.WINDOW_RESIZABLE)
	}
	if flags&video.FlagFullscreen != 0 {
		f |= uint32(sdl.WINDOW_FULLSCREEN)
	}
	if flags&video.FlagFullscreenDesktop != 0 {
		f |= uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	if flags&video.FlagOpenGL != 0 {
		f |= uint32(sdl.WINDOW_OPENGL)
	}
	return f
}

func toSDLFormat(f video.PixelFormat) uint32 {
	if f == video.PixelFormatRGB888 {
		return uint32(sdl.PIXELFORMAT_RGB888)
	}
	return uint32(sdl.PIXELFORMAT_UNKNOWN)
}

func fromSDLMode(m sdl.DisplayMode) video.DisplayMode {
	format := video.PixelFormatUnknown
	if m.Format == uint32(sdl.PIXELFORMAT_RGB888) {
		format = video.PixelFormatRGB888
	}
	return video.DisplayMode{
		Width:       int(m.W),
		Height:      int(m.H),
		RefreshRate: int(m.RefreshRate),
		Format:      format,
	}
}
