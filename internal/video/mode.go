package video

import (
	"fmt"
	"strings"

	"github.com/tuxgo/tuxgo/internal/config"
)

// WindowFlags selects window properties at creation and fullscreen kind on
// mode switches.
type WindowFlags uint32

const (
	FlagResizable WindowFlags = 1 << iota
	FlagFullscreen
	FlagFullscreenDesktop
	FlagOpenGL
)

func (f WindowFlags) String() string {
	if f == 0 {
		return "windowed"
	}
	var parts []string
	if f&FlagResizable != 0 {
		parts = append(parts, "resizable")
	}
	if f&FlagFullscreen != 0 {
		parts = append(parts, "fullscreen")
	}
	if f&FlagFullscreenDesktop != 0 {
		parts = append(parts, "fullscreen-desktop")
	}
	if f&FlagOpenGL != 0 {
		parts = append(parts, "opengl")
	}
	return strings.Join(parts, "|")
}

// PixelFormat identifies the framebuffer layout of a DisplayMode.
type PixelFormat int

const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatRGB888
)

// DisplayMode is a concrete fullscreen video mode.
type DisplayMode struct {
	Width       int
	Height      int
	RefreshRate int
	Format      PixelFormat
}

func (m DisplayMode) Size() config.Size {
	return config.Size{Width: m.Width, Height: m.Height}
}

func (m DisplayMode) String() string {
	return fmt.Sprintf("%dx%d@%d", m.Width, m.Height, m.RefreshRate)
}

// WindowSpec is the size and flag set a window is created with.
type WindowSpec struct {
	Size  config.Size
	Flags WindowFlags
}

// ComputeWindowSpec derives the creation size and flags from cfg. It has no
// side effects; desktop is used when the fullscreen size is the 0x0 sentinel.
func ComputeWindowSpec(cfg *config.VideoConfig, desktop config.Size, flags WindowFlags) WindowSpec {
	flags |= FlagResizable
	switch {
	case !cfg.UseFullscreen:
		return WindowSpec{Size: cfg.WindowSize, Flags: flags}
	case cfg.FullscreenSize.IsZero():
		return WindowSpec{Size: desktop, Flags: flags | FlagFullscreenDesktop}
	default:
		return WindowSpec{Size: cfg.FullscreenSize, Flags: flags | FlagFullscreen}
	}
}

// fullscreenMode builds the display mode requested for explicit fullscreen.
func fullscreenMode(cfg *config.VideoConfig) DisplayMode {
	return DisplayMode{
		Width:       cfg.FullscreenSize.Width,
		Height:      cfg.FullscreenSize.Height,
		RefreshRate: cfg.FullscreenRefreshRate,
		Format:      PixelFormatRGB888,
	}
}
