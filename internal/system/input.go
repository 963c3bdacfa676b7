package system

import (
	"time"

	"github.com/tuxgo/tuxgo/internal/core/event"
	coresys "github.com/tuxgo/tuxgo/internal/core/system"
	"github.com/tuxgo/tuxgo/internal/video"
	"go.uber.org/zap"
)

// InputSystem drains the native event queue and forwards window events to
// the bus. Phase 0 (Input).
type InputSystem struct {
	source video.EventSource
	bus    *event.Bus
	log    *zap.Logger
	quit   bool
}

func NewInputSystem(source video.EventSource, bus *event.Bus, log *zap.Logger) *InputSystem {
	return &InputSystem{source: source, bus: bus, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	quit := s.source.Poll(func(ev video.ResizeEvent) {
		event.Emit(s.bus, ev)
	})
	if quit && !s.quit {
		s.log.Info("quit requested")
		s.quit = true
	}
}

// Quit reports whether the native layer asked the application to close.
func (s *InputSystem) Quit() bool {
	return s.quit
}

// EventSystem delivers the events emitted since the previous frame.
// Phase 1 (Events).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.Swap()
	s.bus.Dispatch()
}
