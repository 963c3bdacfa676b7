package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuxgo/tuxgo/internal/video"
	"github.com/tuxgo/tuxgo/internal/video/ebitenvideo"
	"github.com/tuxgo/tuxgo/internal/video/sdlvideo"
)

const frameRate = 60

// errQuit ends the frame loop without error.
var errQuit = errors.New("quit")

// platform is a video backend together with the loop that drives it.
type platform struct {
	backend video.Backend
	events  video.EventSource
	loop    func(frame func() error) error
	close   func()
}

func openPlatform(name string) (*platform, error) {
	switch name {
	case "sdl", "":
		b, err := sdlvideo.Open()
		if err != nil {
			return nil, err
		}
		return &platform{backend: b, events: b, loop: tickerLoop, close: b.Close}, nil
	case "ebiten":
		b := ebitenvideo.New()
		return &platform{backend: b, events: b, loop: b.Run, close: func() {}}, nil
	default:
		return nil, fmt.Errorf("unknown video backend %q", name)
	}
}

// run drives frame until it returns errQuit or another error.
func (p *platform) run(frame func() error) error {
	err := p.loop(frame)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// tickerLoop calls frame at a fixed rate until it fails or the process is
// interrupted.
func tickerLoop(frame func() error) error {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := frame(); err != nil {
				return err
			}
		case <-shutdownCh:
			return nil
		}
	}
}
