// Package savegame snapshots script tables into save slots.
//
// A save is the YAML rendering of one global script table plus its
// BLAKE2b-256 checksum. Loading verifies the checksum and merges the saved
// values into the live table, so fields added to the table after the save
// was written keep their defaults.
package savegame

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tuxgo/tuxgo/internal/persist"
	"github.com/tuxgo/tuxgo/internal/scripting"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSave  = errors.New("savegame: no such slot")
	ErrCorrupt = errors.New("savegame: checksum mismatch")
)

type Manager struct {
	store persist.SaveStore
	log   *zap.Logger
}

func NewManager(store persist.SaveStore, log *zap.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Save writes the table called table in s to slot.
func (m *Manager) Save(ctx context.Context, slot string, s *scripting.Scope, table string) error {
	lv := s.Table().RawGetString(table)
	if _, ok := lv.(*lua.LTable); !ok {
		return &scripting.ScriptError{Context: s.Path(), Msg: fmt.Sprintf("couldn't save table '%s'", table), Err: scripting.ErrNotFound}
	}
	v, err := scripting.ToGo(lv)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", table, err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", table, err)
	}
	sum := blake2b.Sum256(data)

	row := &persist.SaveRow{Slot: slot, Data: data, Checksum: sum[:], UpdatedAt: time.Now()}
	if err := m.store.Save(ctx, row); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	m.log.Info("game saved", zap.String("slot", slot), zap.String("table", table), zap.Int("bytes", len(data)))
	return nil
}

// Load merges slot into the table called table in s, creating the table if
// it does not exist yet.
func (m *Manager) Load(ctx context.Context, slot string, s *scripting.Scope, table string) error {
	row, err := m.store.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("load slot %s: %w", slot, err)
	}
	if row == nil {
		return fmt.Errorf("%w: %s", ErrNoSave, slot)
	}
	sum := blake2b.Sum256(row.Data)
	if !bytes.Equal(sum[:], row.Checksum) {
		return fmt.Errorf("%w: %s", ErrCorrupt, slot)
	}

	var saved map[string]any
	if err := yaml.Unmarshal(row.Data, &saved); err != nil {
		return fmt.Errorf("decode slot %s: %w", slot, err)
	}

	if err := s.GetOrCreateTableEntry(table); err != nil {
		return err
	}
	defer s.EndTable(table)
	if err := merge(s, saved); err != nil {
		return fmt.Errorf("restore slot %s: %w", slot, err)
	}
	m.log.Info("game loaded", zap.String("slot", slot), zap.Time("saved_at", row.UpdatedAt))
	return nil
}

// Delete removes slot.
func (m *Manager) Delete(ctx context.Context, slot string) error {
	return m.store.Delete(ctx, slot)
}

// List returns every slot ordered by name.
func (m *Manager) List(ctx context.Context) ([]persist.SaveInfo, error) {
	return m.store.List(ctx)
}

// merge writes values into the current table of s. Nested maps descend into
// the existing child table; any other value replaces the binding.
func merge(s *scripting.Scope, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if child, ok := values[k].(map[string]any); ok {
			if _, isTable := s.Table().RawGetString(k).(*lua.LTable); !isTable {
				s.DeleteTableEntry(k)
			}
			if err := s.GetOrCreateTableEntry(k); err != nil {
				return err
			}
			err := merge(s, child)
			s.EndTable(k)
			if err != nil {
				return err
			}
			continue
		}
		lv, err := scripting.FromGo(s.Engine().VM(), values[k])
		if err != nil {
			return fmt.Errorf("%s.%s: %w", s.Path(), k, err)
		}
		scripting.StoreObject(s, k, lv)
	}
	return nil
}
