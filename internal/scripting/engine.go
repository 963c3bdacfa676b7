package scripting

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/tuxgo/tuxgo/internal/config"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// APIVersion is published to scripts as the global API_VERSION.
const APIVersion = 1

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	cfg     config.ScriptingConfig
	charset encoding.Encoding // nil = sources are UTF-8

	types   map[reflect.Type]*lua.LTable
	owned   map[*lua.LUserData]struct{}
	threads *Scheduler
	waitTag *lua.LUserData // first value yielded by wait()
}

// New creates an engine with the host library installed and no scripts
// loaded.
func New(cfg config.ScriptingConfig, log *zap.Logger) (*Engine, error) {
	charset, err := lookupCharset(cfg.SourceEncoding)
	if err != nil {
		return nil, err
	}

	vm := lua.NewState(lua.Options{
		SkipOpenLibs:        false,
		IncludeGoStackTrace: cfg.IncludeGoStackTrace,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{
		vm:      vm,
		log:     log,
		cfg:     cfg,
		charset: charset,
		types:   make(map[reflect.Type]*lua.LTable),
		owned:   make(map[*lua.LUserData]struct{}),
	}
	e.threads = newScheduler(e)
	e.openHostLib()
	return e, nil
}

// NewEngine creates an engine and runs its startup scripts.
func NewEngine(cfg config.ScriptingConfig, log *zap.Logger) (*Engine, error) {
	e, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := e.LoadScripts(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// LoadScripts runs the scripts listed in the manifest of the configured
// script directory. A missing manifest loads nothing.
func (e *Engine) LoadScripts() error {
	manifestPath := filepath.Join(e.cfg.Dir, e.cfg.Manifest)
	m, err := LoadManifest(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.log.Debug("no script manifest", zap.String("path", manifestPath))
			return nil
		}
		return err
	}
	return e.RunManifest(e.cfg.Dir, m)
}

// VM returns the underlying Lua state.
func (e *Engine) VM() *lua.LState {
	return e.vm
}

// Threads returns the scheduler stepping cooperative script threads.
func (e *Engine) Threads() *Scheduler {
	return e.threads
}

// Root returns a scope over the global table.
func (e *Engine) Root() *Scope {
	return e.scope("_G", e.vm.G.Global)
}

// Scope returns a scope over an arbitrary table.
func (e *Engine) Scope(name string, t *lua.LTable) *Scope {
	return e.scope(name, t)
}

// RunFile compiles and runs the script at path, using the path as source
// name.
func (e *Engine) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return e.CompileAndRun(f, path)
}

// Close releases every object still owned by the VM, then the VM itself.
func (e *Engine) Close() {
	for ud := range e.owned {
		e.release(ud)
	}
	e.vm.Close()
}

func (e *Engine) release(ud *lua.LUserData) {
	delete(e.owned, ud)
	if c, ok := ud.Value.(io.Closer); ok {
		if err := c.Close(); err != nil {
			e.log.Warn("release exposed object", zap.String("type", fmt.Sprintf("%T", ud.Value)), zap.Error(err))
		}
	}
	ud.Value = nil
}

func (e *Engine) decode(r io.Reader) io.Reader {
	if e.charset == nil {
		return r
	}
	return transform.NewReader(r, e.charset.NewDecoder())
}

func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("script source encoding %q: %w", name, err)
	}
	return enc, nil
}
