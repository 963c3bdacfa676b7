package system

import (
	"time"

	coresys "github.com/tuxgo/tuxgo/internal/core/system"
	"github.com/tuxgo/tuxgo/internal/scripting"
)

// ScriptSystem resumes script threads. Phase 2 (Script).
type ScriptSystem struct {
	engine *scripting.Engine
}

func NewScriptSystem(engine *scripting.Engine) *ScriptSystem {
	return &ScriptSystem{engine: engine}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseScript }

func (s *ScriptSystem) Update(dt time.Duration) {
	s.engine.Threads().Step(dt)
}
