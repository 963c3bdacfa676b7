package hostapi

import (
	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/scripting"
)

// StoreVideoConfig writes cfg into s as a "video" table, replacing any
// previous one.
func StoreVideoConfig(s *scripting.Scope, cfg *config.VideoConfig) {
	s.BeginTable("video")
	scripting.Store(s, "backend", cfg.Backend)
	scripting.Store(s, "title", cfg.Title)
	scripting.Store(s, "use_fullscreen", cfg.UseFullscreen)
	storeSize(s, "fullscreen_size", cfg.FullscreenSize)
	scripting.Store(s, "fullscreen_refresh_rate", cfg.FullscreenRefreshRate)
	storeSize(s, "window_size", cfg.WindowSize)
	scripting.Store(s, "window_resizable", cfg.WindowResizable)
	scripting.Store(s, "gamma", cfg.Gamma)
	s.EndTable("video")
}

// ReadVideoConfig reads the "video" table of s back into cfg. use_fullscreen
// and window_size are required; every other field keeps its current value
// when missing. cfg is left untouched on error.
func ReadVideoConfig(s *scripting.Scope, cfg *config.VideoConfig) error {
	if err := s.GetTableEntry("video"); err != nil {
		return err
	}
	defer s.EndTable("video")

	next := *cfg
	var err error
	if next.UseFullscreen, err = scripting.Read[bool](s, "use_fullscreen"); err != nil {
		return err
	}
	if next.WindowSize, err = readSize(s, "window_size"); err != nil {
		return err
	}

	scripting.Get(s, "title", &next.Title)
	scripting.Get(s, "fullscreen_refresh_rate", &next.FullscreenRefreshRate)
	scripting.Get(s, "window_resizable", &next.WindowResizable)
	scripting.Get(s, "gamma", &next.Gamma)
	if s.HasProperty("fullscreen_size") {
		if next.FullscreenSize, err = readSize(s, "fullscreen_size"); err != nil {
			return err
		}
	}

	*cfg = next
	return nil
}

func storeSize(s *scripting.Scope, name string, size config.Size) {
	s.BeginTable(name)
	scripting.Store(s, "width", size.Width)
	scripting.Store(s, "height", size.Height)
	s.EndTable(name)
}

func readSize(s *scripting.Scope, name string) (config.Size, error) {
	if err := s.GetTableEntry(name); err != nil {
		return config.Size{}, err
	}
	defer s.EndTable(name)

	w, err := scripting.Read[int](s, "width")
	if err != nil {
		return config.Size{}, err
	}
	h, err := scripting.Read[int](s, "height")
	if err != nil {
		return config.Size{}, err
	}
	return config.Size{Width: w, Height: h}, nil
}
