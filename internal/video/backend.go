package video

import (
	"image"

	"github.com/tuxgo/tuxgo/internal/config"
)

// Backend is the native windowing layer. Every call may fail; the returned
// error carries the layer's diagnostic string.
type Backend interface {
	Name() string
	DesktopDisplayMode() (DisplayMode, error)
	CreateWindow(title string, size config.Size, flags WindowFlags) (Window, error)
}

// Window is a native window created by a Backend.
type Window interface {
	Size() config.Size
	SetSize(size config.Size)
	// SetFullscreen switches to the fullscreen kind in flags, or back to
	// windowed mode when flags carries neither fullscreen bit.
	SetFullscreen(flags WindowFlags) error
	SetDisplayMode(mode DisplayMode) error
	SetTitle(title string)
	SetIcon(icon image.Image) error
	SetGammaRamp(red, green, blue *GammaRamp) error
	Destroy() error
}

// Resizer is implemented by windows whose backend can toggle resizability
// after creation.
type Resizer interface {
	SetResizable(resizable bool)
}

// EventSource is implemented by backends that deliver native window events.
// Poll drains pending events into emit and reports whether the user asked
// to quit.
type EventSource interface {
	Poll(emit func(ResizeEvent)) (quit bool)
}
