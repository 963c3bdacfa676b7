// Package hostapi exposes host services to scripts.
package hostapi

import (
	"github.com/tuxgo/tuxgo/internal/config"
	"github.com/tuxgo/tuxgo/internal/scripting"
	"github.com/tuxgo/tuxgo/internal/video"
	lua "github.com/yuin/gopher-lua"
)

// Video is the script-side handle on the video manager.
//
//	Video:set_title(title)
//	Video:set_gamma(gamma)
//	Video:set_fullscreen(on)
//	Video:window_size()        -> width, height
//	Video:apply()
type Video struct {
	m   *video.Manager
	cfg *config.VideoConfig
}

// RegisterVideo registers the Video type with the engine.
func RegisterVideo(e *scripting.Engine) {
	scripting.RegisterType[*Video](e, "Video", map[string]lua.LGFunction{
		"set_title":      videoSetTitle,
		"set_gamma":      videoSetGamma,
		"set_fullscreen": videoSetFullscreen,
		"window_size":    videoWindowSize,
		"apply":          videoApply,
	})
}

// ExposeVideo binds a Video handle called "Video" into s.
func ExposeVideo(s *scripting.Scope, m *video.Manager, cfg *config.VideoConfig) error {
	return s.ExposeObject(&Video{m: m, cfg: cfg}, "Video")
}

func videoSetTitle(L *lua.LState) int {
	v := scripting.CheckObject[*Video](L, 1)
	title := L.CheckString(2)
	v.cfg.Title = title
	v.m.SetTitle(title)
	return 0
}

func videoSetGamma(L *lua.LState) int {
	v := scripting.CheckObject[*Video](L, 1)
	gamma := float32(L.CheckNumber(2))
	if err := v.m.SetGamma(gamma); err != nil {
		L.RaiseError("set_gamma: %v", err)
		return 0
	}
	v.cfg.Gamma = gamma
	return 0
}

func videoSetFullscreen(L *lua.LState) int {
	v := scripting.CheckObject[*Video](L, 1)
	v.cfg.UseFullscreen = L.ToBool(2)
	v.m.ApplyVideoMode()
	return 0
}

func videoWindowSize(L *lua.LState) int {
	v := scripting.CheckObject[*Video](L, 1)
	size := v.m.WindowSize()
	L.Push(lua.LNumber(size.Width))
	L.Push(lua.LNumber(size.Height))
	return 2
}

func videoApply(L *lua.LState) int {
	v := scripting.CheckObject[*Video](L, 1)
	v.m.ApplyVideoMode()
	return 0
}
