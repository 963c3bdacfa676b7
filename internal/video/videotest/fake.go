// Package videotest provides an in-memory video backend that records every
// native call, for tests of code that drives a video.Manager.
package videotest

import (
	"errors"
	"fmt"
	"image"

	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/video"
)

// Call is one recorded native call.
type Call struct {
	Op    string
	Size  config.Size
	Flags video.WindowFlags
	Mode  video.DisplayMode
	Bool  bool
	Title string
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%v %v %v %v %q)", c.Op, c.Size, c.Flags, c.Mode, c.Bool, c.Title)
}

// Backend is a fake video.Backend. Set the Fail* fields to make the matching
// native call return an error.
type Backend struct {
	Desktop     video.DisplayMode
	DesktopErr  error
	CreateErr   error
	NoResizable bool // windows do not implement video.Resizer

	Windows []*Window
	Pending []video.ResizeEvent
	Quit    bool
}

func NewBackend(desktop config.Size) *Backend {
	return &Backend{
		Desktop: video.DisplayMode{Width: desktop.Width, Height: desktop.Height, RefreshRate: 60, Format: video.PixelFormatRGB888},
	}
}

func (b *Backend) Name() string { return "fake" }

func (b *Backend) DesktopDisplayMode() (video.DisplayMode, error) {
	if b.DesktopErr != nil {
		return video.DisplayMode{}, b.DesktopErr
	}
	return b.Desktop, nil
}

func (b *Backend) CreateWindow(title string, size config.Size, flags video.WindowFlags) (video.Window, error) {
	if b.CreateErr != nil {
		return nil, b.CreateErr
	}
	w := &Window{
		Title:         title,
		CreatedSize:   size,
		CreatedFlags:  flags,
		Live:          size,
		Resizable:     flags&video.FlagResizable != 0,
		FullscreenSet: flags & (video.FlagFullscreen | video.FlagFullscreenDesktop),
	}
	b.Windows = append(b.Windows, w)
	if b.NoResizable {
		return plainWindow{w}, nil
	}
	return w, nil
}

// Poll implements video.EventSource by draining Pending.
func (b *Backend) Poll(emit func(video.ResizeEvent)) bool {
	for _, ev := range b.Pending {
		emit(ev)
	}
	b.Pending = nil
	return b.Quit
}

// Last returns the most recently created window.
func (b *Backend) Last() *Window {
	if len(b.Windows) == 0 {
		return nil
	}
	return b.Windows[len(b.Windows)-1]
}

var errNative = errors.New("native call failed")

// Window is a fake native window.
type Window struct {
	Title         string
	CreatedSize   config.Size
	CreatedFlags  video.WindowFlags
	Live          config.Size
	Resizable     bool
	FullscreenSet video.WindowFlags
	Mode          video.DisplayMode
	Icon          image.Image
	Ramp          *video.GammaRamp
	Destroyed     int

	FailFullscreen  bool
	FailDisplayMode bool
	FailGamma       bool

	Calls []Call
}

func (w *Window) Size() config.Size { return w.Live }

func (w *Window) SetSize(size config.Size) {
	w.Calls = append(w.Calls, Call{Op: "SetSize", Size: size})
	w.Live = size
}

func (w *Window) SetFullscreen(flags video.WindowFlags) error {
	w.Calls = append(w.Calls, Call{Op: "SetFullscreen", Flags: flags})
	if w.FailFullscreen {
		return errNative
	}
	w.FullscreenSet = flags
	return nil
}

func (w *Window) SetDisplayMode(mode video.DisplayMode) error {
	w.Calls = append(w.Calls, Call{Op: "SetDisplayMode", Mode: mode})
	if w.FailDisplayMode {
		return errNative
	}
	w.Mode = mode
	return nil
}

func (w *Window) SetResizable(resizable bool) {
	w.Calls = append(w.Calls, Call{Op: "SetResizable", Bool: resizable})
	w.Resizable = resizable
}

func (w *Window) SetTitle(title string) {
	w.Calls = append(w.Calls, Call{Op: "SetTitle", Title: title})
	w.Title = title
}

func (w *Window) SetIcon(icon image.Image) error {
	w.Calls = append(w.Calls, Call{Op: "SetIcon"})
	w.Icon = icon
	return nil
}

func (w *Window) SetGammaRamp(red, green, blue *video.GammaRamp) error {
	w.Calls = append(w.Calls, Call{Op: "SetGammaRamp"})
	if w.FailGamma {
		return errNative
	}
	w.Ramp = red
	return nil
}

func (w *Window) Destroy() error {
	w.Destroyed++
	return nil
}

// Ops returns the names of the recorded calls in order.
func (w *Window) Ops() []string {
	ops := make([]string, len(w.Calls))
	for i, c := range w.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets recorded calls.
func (w *Window) Reset() {
	w.Calls = nil
}

// plainWindow hides SetResizable so the window does not satisfy video.Resizer.
type plainWindow struct {
	w *Window
}

func (p plainWindow) Size() config.Size                           { return p.w.Size() }
func (p plainWindow) SetSize(size config.Size)                    { p.w.SetSize(size) }
func (p plainWindow) SetFullscreen(f video.WindowFlags) error     { return p.w.SetFullscreen(f) }
func (p plainWindow) SetDisplayMode(m video.DisplayMode) error    { return p.w.SetDisplayMode(m) }
func (p plainWindow) SetTitle(title string)                       { p.w.SetTitle(title) }
func (p plainWindow) SetIcon(icon image.Image) error              { return p.w.SetIcon(icon) }
func (p plainWindow) SetGammaRamp(r, g, b *video.GammaRamp) error { return p.w.SetGammaRamp(r, g, b) }
func (p plainWindow) Destroy() error                              { return p.w.Destroy() }
