package scripting

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// CreateThread creates a coroutine sharing the engine's globals. The handle
// can be stored in a table (StoreObject) and turned back into an execution
// context with ObjectToVM.
func (e *Engine) CreateThread() lua.LValue {
	th, _ := e.vm.NewThread()
	return th
}

// ObjectToVM recovers the execution context from a thread handle.
func ObjectToVM(v lua.LValue) (*lua.LState, error) {
	th, ok := v.(*lua.LState)
	if !ok {
		return nil, &ScriptError{Context: "thread", Msg: fmt.Sprintf("handle is a %s, not a thread", v.Type()), Err: ErrTypeMismatch}
	}
	return th, nil
}

// Thread is a script function run cooperatively, one resume per frame. A
// thread suspends with coroutine.yield() until the next frame, whatever it
// yields, or with wait(seconds) for a duration.
type Thread struct {
	Name string

	co    *lua.LState
	fn    *lua.LFunction
	args  []lua.LValue
	sleep time.Duration
	dead  bool
	err   error
}

// Done reports whether the thread returned or failed.
func (t *Thread) Done() bool {
	return t.dead
}

// Err returns the error the thread died with, if any.
func (t *Thread) Err() error {
	return t.err
}

// Scheduler resumes threads in spawn order.
type Scheduler struct {
	e       *Engine
	threads []*Thread
}

func newScheduler(e *Engine) *Scheduler {
	return &Scheduler{e: e}
}

// Spawn queues fn as a new thread. It first runs on the next Step.
func (s *Scheduler) Spawn(name string, fn *lua.LFunction, args ...lua.LValue) *Thread {
	co, _ := s.e.vm.NewThread()
	t := &Thread{Name: name, co: co, fn: fn, args: args}
	s.threads = append(s.threads, t)
	return t
}

// Len returns the number of live threads.
func (s *Scheduler) Len() int {
	return len(s.threads)
}

// Step advances the clock by dt and resumes every thread that is not
// sleeping. Finished and failed threads are dropped; failures are logged.
func (s *Scheduler) Step(dt time.Duration) {
	// threads spawned during this step wait for the next one
	current := s.threads
	live := current[:0:0]
	for _, t := range current {
		if t.sleep > 0 {
			t.sleep -= dt
			if t.sleep > 0 {
				live = append(live, t)
				continue
			}
		}
		s.resume(t)
		if !t.dead {
			live = append(live, t)
		}
	}
	s.threads = append(live, s.threads[len(current):]...)
}

func (s *Scheduler) resume(t *Thread) {
	st, err, values := s.e.vm.Resume(t.co, t.fn, t.args...)
	t.args = nil
	switch st {
	case lua.ResumeError:
		t.dead = true
		t.err = &ScriptError{Context: t.Name, Msg: "script thread failed", Err: err}
		s.e.log.Error("script thread failed", zap.String("thread", t.Name), zap.Error(err))
	case lua.ResumeOK:
		t.dead = true
		s.e.log.Debug("script thread finished", zap.String("thread", t.Name))
	case lua.ResumeYield:
		t.sleep = 0
		if len(values) == 2 && values[0] == s.e.waitTag {
			if secs, ok := values[1].(lua.LNumber); ok && secs > 0 {
				t.sleep = time.Duration(float64(secs) * float64(time.Second))
			}
		}
	}
}
