package persist

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tuxgo/tuxgo/internal/config"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) SaveStore {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "saves", "test.db")}
	store, err := OpenSaveStore(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSaveStore() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.UnixMilli(time.Now().UnixMilli())
	in := &SaveRow{Slot: "slot1", Data: []byte("coins: 3\n"), Checksum: []byte{1, 2, 3}, UpdatedAt: now}
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load(ctx, "slot1")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load() returned nil for a saved slot")
	}
	if !bytes.Equal(got.Data, in.Data) || !bytes.Equal(got.Checksum, in.Checksum) {
		t.Errorf("Load() = %q %v, expected %q %v", got.Data, got.Checksum, in.Data, in.Checksum)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, expected %v", got.UpdatedAt, now)
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, data := range []string{"first", "second"} {
		if err := store.Save(ctx, &SaveRow{Slot: "a", Data: []byte(data), Checksum: []byte{0}, UpdatedAt: time.Now()}); err != nil {
			t.Fatalf("Save(%s) failed: %v", data, err)
		}
	}
	got, err := store.Load(ctx, "a")
	if err != nil || got == nil {
		t.Fatalf("Load() = %v, %v", got, err)
	}
	if string(got.Data) != "second" {
		t.Errorf("Data = %q, expected second", got.Data)
	}
}

func TestSQLiteLoadMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.Load(context.Background(), "nope")
	if err != nil || got != nil {
		t.Errorf("Load(missing) = %v, %v, expected nil, nil", got, err)
	}
}

func TestSQLiteListAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, slot := range []string{"b", "a", "c"} {
		if err := store.Save(ctx, &SaveRow{Slot: slot, Data: []byte(slot), Checksum: []byte{0}, UpdatedAt: time.Now()}); err != nil {
			t.Fatalf("Save(%s) failed: %v", slot, err)
		}
	}
	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.Delete(ctx, "b"); err != nil {
		t.Errorf("Delete(missing) failed: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 2 || list[0].Slot != "a" || list[1].Slot != "c" {
		t.Errorf("List() = %v, expected [a c]", list)
	}
}

func TestOpenSaveStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := config.DatabaseConfig{Driver: "sqlite", DSN: path}
	ctx := context.Background()

	store, err := OpenSaveStore(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSaveStore() failed: %v", err)
	}
	if err := store.Save(ctx, &SaveRow{Slot: "keep", Data: []byte("x"), Checksum: []byte{0}, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	store.Close()

	// Migrations already applied must not fail the second open.
	store, err = OpenSaveStore(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("second OpenSaveStore() failed: %v", err)
	}
	defer store.Close()
	if got, _ := store.Load(ctx, "keep"); got == nil {
		t.Error("slot lost across reopen")
	}
}

func TestOpenSaveStoreUnknownDriver(t *testing.T) {
	_, err := OpenSaveStore(context.Background(), config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	if err == nil {
		t.Error("OpenSaveStore() should reject an unknown driver")
	}
}
