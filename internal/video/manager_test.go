package video_test

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/video"
	"github.com/tuxgo/tuxgo/internal/video/videotest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var desktop = config.Size{Width: 2560, Height: 1440}

func newManager(t *testing.T, cfg *config.VideoConfig) (*video.Manager, *videotest.Backend, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	backend := videotest.NewBackend(desktop)
	m := video.NewManager(backend, cfg, zap.New(core))
	if err := m.CreateWindow(0); err != nil {
		t.Fatalf("CreateWindow() failed: %v", err)
	}
	backend.Last().Reset()
	return m, backend, logs
}

func windowedConfig() *config.VideoConfig {
	return &config.VideoConfig{
		Title:           "test",
		WindowSize:      config.Size{Width: 800, Height: 600},
		WindowResizable: true,
	}
}

func countOps(w *videotest.Window, op string) int {
	n := 0
	for _, c := range w.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func TestCreateWindowSpec(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.VideoConfig
		wantSize  config.Size
		wantFlags video.WindowFlags
	}{
		{
			name:      "windowed",
			cfg:       config.VideoConfig{WindowSize: config.Size{Width: 640, Height: 480}},
			wantSize:  config.Size{Width: 640, Height: 480},
			wantFlags: video.FlagResizable,
		},
		{
			name:      "desktop fullscreen",
			cfg:       config.VideoConfig{UseFullscreen: true, WindowSize: config.Size{Width: 640, Height: 480}},
			wantSize:  desktop,
			wantFlags: video.FlagResizable | video.FlagFullscreenDesktop,
		},
		{
			name: "explicit fullscreen",
			cfg: config.VideoConfig{
				UseFullscreen:  true,
				FullscreenSize: config.Size{Width: 1920, Height: 1080},
				WindowSize:     config.Size{Width: 640, Height: 480},
			},
			wantSize:  config.Size{Width: 1920, Height: 1080},
			wantFlags: video.FlagResizable | video.FlagFullscreen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := videotest.NewBackend(desktop)
			cfg := tt.cfg
			m := video.NewManager(backend, &cfg, zap.NewNop())
			if err := m.CreateWindow(0); err != nil {
				t.Fatalf("CreateWindow() failed: %v", err)
			}
			w := backend.Last()
			if w.CreatedSize != tt.wantSize {
				t.Errorf("created size = %v, expected %v", w.CreatedSize, tt.wantSize)
			}
			if w.CreatedFlags != tt.wantFlags {
				t.Errorf("created flags = %v, expected %v", w.CreatedFlags, tt.wantFlags)
			}
		})
	}
}

func TestCreateWindowFailure(t *testing.T) {
	backend := videotest.NewBackend(desktop)
	backend.CreateErr = errors.New("no GL context")
	m := video.NewManager(backend, windowedConfig(), zap.NewNop())

	err := m.CreateWindow(0)
	var cerr *video.CreationError
	if !errors.As(err, &cerr) {
		t.Fatalf("CreateWindow() error = %v, expected *CreationError", err)
	}
	if cerr.Size != (config.Size{Width: 800, Height: 600}) {
		t.Errorf("CreationError.Size = %v, expected 800x600", cerr.Size)
	}
	if !strings.Contains(err.Error(), "800x600") || !strings.Contains(err.Error(), "no GL context") {
		t.Errorf("error message %q should carry size and diagnostic", err.Error())
	}
}

func TestCreateWindowReplacesPrevious(t *testing.T) {
	m, backend, _ := newManager(t, windowedConfig())
	first := backend.Last()

	if err := m.CreateWindow(0); err != nil {
		t.Fatalf("CreateWindow() failed: %v", err)
	}
	if first.Destroyed != 1 {
		t.Errorf("previous window destroyed %d times, expected 1", first.Destroyed)
	}
	if len(backend.Windows) != 2 {
		t.Errorf("created %d windows, expected 2", len(backend.Windows))
	}
}

func TestCreateWindowFailureKeepsPrevious(t *testing.T) {
	m, backend, _ := newManager(t, windowedConfig())
	first := backend.Last()

	backend.CreateErr = errors.New("out of memory")
	if err := m.CreateWindow(0); err == nil {
		t.Fatal("CreateWindow() should fail")
	}
	if first.Destroyed != 0 {
		t.Errorf("previous window destroyed %d times, expected 0", first.Destroyed)
	}
	first.Live = config.Size{Width: 1024, Height: 768}
	if got := m.WindowSize(); got != first.Live {
		t.Errorf("WindowSize() = %v, expected the previous window's %v", got, first.Live)
	}
	if err := m.SetGamma(1); err != nil {
		t.Errorf("SetGamma() = %v, previous window should still be usable", err)
	}
}

func TestDesktopQueryFailureIsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	backend := videotest.NewBackend(desktop)
	backend.DesktopErr = errors.New("no display")

	m := video.NewManager(backend, windowedConfig(), zap.New(core))
	if !m.DesktopSize().IsZero() {
		t.Errorf("DesktopSize() = %v, expected zero", m.DesktopSize())
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Errorf("expected one warning, got %d", logs.FilterLevelExact(zapcore.WarnLevel).Len())
	}
}

func TestApplyWindowedNeverSetsFullscreen(t *testing.T) {
	sizes := []config.Size{
		{Width: 800, Height: 600}, // same as live
		{Width: 1024, Height: 768},
		{Width: 320, Height: 200},
	}
	for _, size := range sizes {
		cfg := windowedConfig()
		m, backend, _ := newManager(t, cfg)
		w := backend.Last()
		live := w.Size()

		cfg.WindowSize = size
		m.ApplyVideoMode()

		for _, c := range w.Calls {
			if c.Op == "SetFullscreen" && c.Flags&(video.FlagFullscreen|video.FlagFullscreenDesktop) != 0 {
				t.Errorf("%v: windowed apply set fullscreen flags %v", size, c.Flags)
			}
		}
		wantResizes := 0
		if size != live {
			wantResizes = 1
		}
		if got := countOps(w, "SetSize"); got != wantResizes {
			t.Errorf("%v: SetSize called %d times, expected %d", size, got, wantResizes)
		}
		if w.Size() != size {
			t.Errorf("%v: live size = %v after apply", size, w.Size())
		}
	}
}

func TestApplyWindowedResizable(t *testing.T) {
	cfg := windowedConfig()
	m, backend, _ := newManager(t, cfg)
	cfg.WindowResizable = false
	m.ApplyVideoMode()
	if backend.Last().Resizable {
		t.Error("window should no longer be resizable")
	}
}

func TestApplyWindowedWithoutResizer(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	backend := videotest.NewBackend(desktop)
	backend.NoResizable = true
	cfg := windowedConfig()
	m := video.NewManager(backend, cfg, zap.New(core))
	if err := m.CreateWindow(0); err != nil {
		t.Fatalf("CreateWindow() failed: %v", err)
	}

	cfg.WindowResizable = false
	m.ApplyVideoMode()
	if got := countOps(backend.Last(), "SetResizable"); got != 0 {
		t.Errorf("SetResizable called %d times on a window without runtime toggling", got)
	}
}

func TestApplyDesktopFullscreen(t *testing.T) {
	cfg := windowedConfig()
	m, backend, logs := newManager(t, cfg)
	w := backend.Last()

	cfg.UseFullscreen = true
	m.ApplyVideoMode()

	if w.FullscreenSet != video.FlagFullscreenDesktop {
		t.Errorf("fullscreen = %v, expected desktop fullscreen", w.FullscreenSet)
	}
	if countOps(w, "SetDisplayMode") != 0 {
		t.Error("desktop fullscreen must not set a display mode")
	}
	if logs.FilterMessage("switched to desktop fullscreen mode").Len() != 1 {
		t.Error("expected info log for desktop fullscreen switch")
	}
}

func TestApplyDesktopFullscreenFailureKeepsMode(t *testing.T) {
	cfg := windowedConfig()
	m, backend, logs := newManager(t, cfg)
	w := backend.Last()
	w.FailFullscreen = true
	before := w.FullscreenSet
	beforeSize := w.Size()

	cfg.UseFullscreen = true
	m.ApplyVideoMode()

	if w.FullscreenSet != before {
		t.Errorf("fullscreen changed to %v after failed switch", w.FullscreenSet)
	}
	if w.Size() != beforeSize {
		t.Errorf("size changed to %v after failed switch", w.Size())
	}
	warns := logs.FilterLevelExact(zapcore.WarnLevel)
	if warns.Len() != 1 {
		t.Fatalf("expected one warning, got %d", warns.Len())
	}
	if !strings.Contains(warns.All()[0].Message, "desktop fullscreen") {
		t.Errorf("warning = %q", warns.All()[0].Message)
	}
}

func explicitConfig() *config.VideoConfig {
	cfg := windowedConfig()
	cfg.UseFullscreen = true
	cfg.FullscreenSize = config.Size{Width: 1920, Height: 1080}
	cfg.FullscreenRefreshRate = 144
	return cfg
}

func TestApplyExplicitFullscreenOrder(t *testing.T) {
	cfg := explicitConfig()
	m, backend, _ := newManager(t, cfg)
	w := backend.Last()

	m.ApplyVideoMode()

	ops := w.Ops()
	if len(ops) != 2 || ops[0] != "SetDisplayMode" || ops[1] != "SetFullscreen" {
		t.Fatalf("calls = %v, expected [SetDisplayMode SetFullscreen]", ops)
	}
	want := video.DisplayMode{Width: 1920, Height: 1080, RefreshRate: 144, Format: video.PixelFormatRGB888}
	if w.Calls[0].Mode != want {
		t.Errorf("display mode = %v, expected %v", w.Calls[0].Mode, want)
	}
	if w.Calls[1].Flags != video.FlagFullscreen {
		t.Errorf("fullscreen flags = %v, expected fullscreen", w.Calls[1].Flags)
	}
}

func TestApplyExplicitFullscreenModeRejected(t *testing.T) {
	cfg := explicitConfig()
	m, backend, logs := newManager(t, cfg)
	w := backend.Last()
	w.FailDisplayMode = true

	m.ApplyVideoMode()

	if got := countOps(w, "SetFullscreen"); got != 0 {
		t.Errorf("SetFullscreen attempted %d times after display mode failure", got)
	}
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 || warns[0].Message != "failed to set display mode" {
		t.Fatalf("warnings = %v", warns)
	}
	if mode := warns[0].ContextMap()["mode"]; mode != "1920x1080@144" {
		t.Errorf("logged mode = %v, expected 1920x1080@144", mode)
	}
}

func TestApplyExplicitFullscreenSwitchRejected(t *testing.T) {
	cfg := explicitConfig()
	m, backend, logs := newManager(t, cfg)
	w := backend.Last()
	w.FailFullscreen = true

	m.ApplyVideoMode()

	if w.FullscreenSet != 0 {
		t.Errorf("fullscreen = %v, expected previous windowed mode", w.FullscreenSet)
	}
	if logs.FilterMessage("failed to switch to fullscreen mode").Len() != 1 {
		t.Error("expected warning for rejected fullscreen switch")
	}
}

func TestOnResizeUpdatesConfig(t *testing.T) {
	cfg := windowedConfig()
	m, backend, _ := newManager(t, cfg)
	w := backend.Last()
	w.Live = config.Size{Width: 1000, Height: 700} // the user dragged the border

	m.OnResize(1000, 700)

	if cfg.WindowSize != (config.Size{Width: 1000, Height: 700}) {
		t.Errorf("config window size = %v, expected 1000x700", cfg.WindowSize)
	}
	if got := countOps(w, "SetSize"); got != 0 {
		t.Errorf("SetSize called %d times, live size already matches", got)
	}
}

func TestWindowSizeQueriesNativeLayer(t *testing.T) {
	cfg := windowedConfig()
	m, backend, _ := newManager(t, cfg)
	backend.Last().Live = config.Size{Width: 333, Height: 222}

	if got := m.WindowSize(); got != (config.Size{Width: 333, Height: 222}) {
		t.Errorf("WindowSize() = %v, expected live 333x222", got)
	}
	if cfg.WindowSize != (config.Size{Width: 800, Height: 600}) {
		t.Errorf("config window size changed to %v", cfg.WindowSize)
	}
}

func TestMutators(t *testing.T) {
	m, backend, _ := newManager(t, windowedConfig())
	w := backend.Last()

	m.SetTitle("Level 1")
	if w.Title != "Level 1" {
		t.Errorf("title = %q, expected %q", w.Title, "Level 1")
	}

	icon := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	if err := m.SetIcon(icon); err != nil {
		t.Fatalf("SetIcon() failed: %v", err)
	}
	if w.Icon != icon {
		t.Error("icon not passed to native window")
	}

	if err := m.SetGamma(1.0); err != nil {
		t.Fatalf("SetGamma() failed: %v", err)
	}
	if w.Ramp == nil || w.Ramp[255] != 0xffff {
		t.Errorf("identity ramp not applied")
	}
	if err := m.SetGamma(-1); err == nil {
		t.Error("SetGamma(-1) should fail")
	}

	w.FailGamma = true
	if err := m.SetGamma(2.2); err == nil {
		t.Error("SetGamma() should surface native failure")
	}
}

func TestCloseDestroysOnce(t *testing.T) {
	m, backend, _ := newManager(t, windowedConfig())
	m.Close()
	m.Close()
	if got := backend.Last().Destroyed; got != 1 {
		t.Errorf("Destroy called %d times, expected 1", got)
	}
	if err := m.SetGamma(1); !errors.Is(err, video.ErrNoWindow) {
		t.Errorf("SetGamma() after Close = %v, expected ErrNoWindow", err)
	}
}
