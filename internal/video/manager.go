package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/tuxgo/tuxgo/internal/config"
	"go.uber.org/zap"
)

// ErrNoWindow is returned by mutators called before CreateWindow.
var ErrNoWindow = errors.New("video: window not created")

// Manager owns the native window and keeps it converging towards the video
// configuration. The configuration stays the single source of truth: mode
// switches that the native layer rejects are logged and the window keeps its
// previous mode.
//
// Single-goroutine access only (frame loop).
type Manager struct {
	backend Backend
	cfg     *config.VideoConfig
	log     *zap.Logger

	window  Window
	desktop config.Size
}

// NewManager queries the desktop display mode once. Failure to do so is not
// fatal; desktop fullscreen then falls back to a 0x0 request that the native
// layer resolves itself.
func NewManager(backend Backend, cfg *config.VideoConfig, log *zap.Logger) *Manager {
	m := &Manager{backend: backend, cfg: cfg, log: log}
	mode, err := backend.DesktopDisplayMode()
	if err != nil {
		log.Warn("couldn't get desktop display mode", zap.String("backend", backend.Name()), zap.Error(err))
	} else {
		m.desktop = mode.Size()
	}
	return m
}

// DesktopSize returns the desktop resolution captured at startup.
func (m *Manager) DesktopSize() config.Size {
	return m.desktop
}

// Spec returns the size and flags CreateWindow would use for the current
// configuration.
func (m *Manager) Spec(flags WindowFlags) WindowSpec {
	return ComputeWindowSpec(m.cfg, m.desktop, flags)
}

// CreateWindow creates the native window for the current configuration,
// replacing any window created earlier. The previous window is only
// destroyed once its replacement exists. The returned *CreationError is
// fatal to startup.
func (m *Manager) CreateWindow(flags WindowFlags) error {
	spec := m.Spec(flags)

	w, err := m.backend.CreateWindow(m.cfg.Title, spec.Size, spec.Flags)
	if err != nil {
		return &CreationError{Size: spec.Size, Err: err}
	}
	if m.window != nil {
		m.destroyWindow()
	}
	m.window = w
	m.log.Info("window created",
		zap.String("backend", m.backend.Name()),
		zap.Stringer("size", spec.Size),
		zap.Stringer("flags", spec.Flags))
	return nil
}

// ApplyVideoMode re-applies the configuration to the existing window.
func (m *Manager) ApplyVideoMode() {
	if m.window == nil {
		m.log.Warn("apply video mode without a window")
		return
	}

	if !m.cfg.UseFullscreen {
		m.applyWindowed()
		return
	}
	if m.cfg.FullscreenSize.IsZero() {
		m.applyDesktopFullscreen()
		return
	}
	m.applyFullscreen()
}

func (m *Manager) applyWindowed() {
	if err := m.window.SetFullscreen(0); err != nil {
		m.log.Warn("failed to leave fullscreen mode", zap.Error(err))
	}

	if m.window.Size() != m.cfg.WindowSize {
		m.window.SetSize(m.cfg.WindowSize)
	}

	if r, ok := m.window.(Resizer); ok {
		r.SetResizable(m.cfg.WindowResizable)
	}
}

func (m *Manager) applyDesktopFullscreen() {
	if err := m.window.SetFullscreen(FlagFullscreenDesktop); err != nil {
		m.log.Warn("failed to switch to desktop fullscreen mode", zap.Error(err))
		return
	}
	m.log.Info("switched to desktop fullscreen mode")
}

func (m *Manager) applyFullscreen() {
	mode := fullscreenMode(m.cfg)

	if err := m.window.SetDisplayMode(mode); err != nil {
		m.log.Warn("failed to set display mode", zap.Stringer("mode", mode), zap.Error(err))
		return
	}
	if err := m.window.SetFullscreen(FlagFullscreen); err != nil {
		m.log.Warn("failed to switch to fullscreen mode", zap.Stringer("mode", mode), zap.Error(err))
		return
	}
	m.log.Info("switched to fullscreen mode", zap.Stringer("mode", mode))
}

// OnResize records an externally driven window resize in the configuration
// and re-applies the mode.
func (m *Manager) OnResize(width, height int) {
	m.cfg.WindowSize = config.Size{Width: width, Height: height}
	m.ApplyVideoMode()
}

// HandleResize adapts OnResize to event bus subscriptions.
func (m *Manager) HandleResize(ev ResizeEvent) {
	m.OnResize(ev.Width, ev.Height)
}

// SetTitle renames the window. Unlike the other mutators it does nothing
// when no window exists.
func (m *Manager) SetTitle(title string) {
	if m.window == nil {
		return
	}
	m.window.SetTitle(title)
}

// SetIcon sets the window icon. It returns ErrNoWindow before CreateWindow.
func (m *Manager) SetIcon(icon image.Image) error {
	if m.window == nil {
		return ErrNoWindow
	}
	if err := m.window.SetIcon(icon); err != nil {
		return fmt.Errorf("set window icon: %w", err)
	}
	return nil
}

// SetGamma applies the same ramp computed from gamma to all three channels.
// It returns ErrNoWindow before CreateWindow.
func (m *Manager) SetGamma(gamma float32) error {
	if m.window == nil {
		return ErrNoWindow
	}
	ramp, err := CalculateGammaRamp(gamma)
	if err != nil {
		return err
	}
	if err := m.window.SetGammaRamp(ramp, ramp, ramp); err != nil {
		return fmt.Errorf("set gamma %v: %w", gamma, err)
	}
	return nil
}

// WindowSize returns the live size reported by the native layer. It can
// differ from the configured size while a resize is in flight.
func (m *Manager) WindowSize() config.Size {
	if m.window == nil {
		return config.Size{}
	}
	return m.window.Size()
}

// Close destroys the window. Calling it again is a no-op.
func (m *Manager) Close() {
	if m.window != nil {
		m.destroyWindow()
	}
}

func (m *Manager) destroyWindow() {
	if err := m.window.Destroy(); err != nil {
		m.log.Warn("destroy window", zap.Error(err))
	}
	m.window = nil
}
