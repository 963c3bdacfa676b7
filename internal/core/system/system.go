package system

import "time"

// Phase orders systems within a frame.
type Phase int

const (
	PhaseInput   Phase = iota // 0: poll native events
	PhaseEvents               // 1: dispatch last frame's events
	PhaseScript               // 2: step script threads
	PhaseUpdate               // 3: game logic (external)
	PhasePersist              // 4: autosave
)

// System is one unit of per-frame work.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
