package system

import (
	"context"
	"time"

	coresys "github.com/tuxgo/tuxgo/internal/core/system"
	"github.com/tuxgo/tuxgo/internal/savegame"
	"github.com/tuxgo/tuxgo/internal/scripting"
	"go.uber.org/zap"
)

// AutosaveSystem periodically saves one global script table to a save slot.
// Phase 4 (Persist).
type AutosaveSystem struct {
	saves    *savegame.Manager
	scope    *scripting.Scope
	slot     string
	table    string
	interval time.Duration
	elapsed  time.Duration
	log      *zap.Logger
}

func NewAutosaveSystem(saves *savegame.Manager, scope *scripting.Scope, slot, table string, interval time.Duration, log *zap.Logger) *AutosaveSystem {
	return &AutosaveSystem{
		saves:    saves,
		scope:    scope,
		slot:     slot,
		table:    table,
		interval: interval,
		log:      log,
	}
}

func (s *AutosaveSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AutosaveSystem) Update(dt time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0
	s.SaveNow()
}

// SaveNow saves immediately. Called on shutdown. A table the scripts never
// created is skipped.
func (s *AutosaveSystem) SaveNow() {
	if !s.scope.HasProperty(s.table) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.saves.Save(ctx, s.slot, s.scope, s.table); err != nil {
		s.log.Error("autosave failed", zap.String("slot", s.slot), zap.Error(err))
	}
}
