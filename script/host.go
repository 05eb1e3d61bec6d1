package script

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// definition holds the Lua functions a script registered for one command.
type definition struct {
	apply   *lua.LFunction
	reverse *lua.LFunction
}

// Host wraps one sandboxed Lua state holding command definitions.
//
// gopher-lua's LState is not goroutine-safe; the host's mutex serializes all
// paths into it, so a Host may be shared as long as the documents it acts on
// are not.
type Host struct {
	mu sync.Mutex

	l    *lua.LState
	defs map[string]definition

	logger  *zap.Logger
	timeout time.Duration

	closed bool
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger for load and call diagnostics.
// The default is a no-op logger.
func WithLogger(logger *zap.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCallTimeout bounds each Lua call. Zero (the default) means no bound.
// The timeout is best-effort: it cancels through the Lua context, so code
// stuck inside a single Go call cannot be interrupted.
func WithCallTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHost creates a sandboxed host with no definitions loaded.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		defs:   make(map[string]definition),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	openSafeLibraries(L)

	h.l = L
	h.installModule()
	return h
}

// openSafeLibraries loads the sandboxed subset of the Lua
// standard library. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installModule registers the rewind module scripts define commands through.
func (h *Host) installModule() {
	mod := h.l.SetFuncs(h.l.NewTable(), map[string]lua.LGFunction{
		"define": h.luaDefine,
	})
	h.l.SetGlobal("rewind", mod)
}

// luaDefine implements rewind.define(name, {apply=fn, reverse=fn}).
// It runs on the Lua stack during Load calls, which already hold the mutex.
func (h *Host) luaDefine(L *lua.LState) int {
	name := L.CheckString(1)
	tbl := L.CheckTable(2)

	if name == "" {
		L.ArgError(1, "command name must not be empty")
		return 0
	}

	applyFn, ok := tbl.RawGetString("apply").(*lua.LFunction)
	if !ok {
		L.ArgError(2, "definition requires an apply function")
		return 0
	}
	reverseFn, ok := tbl.RawGetString("reverse").(*lua.LFunction)
	if !ok {
		L.ArgError(2, "definition requires a reverse function")
		return 0
	}

	h.defs[name] = definition{apply: applyFn, reverse: reverseFn}
	h.logger.Debug("command defined", zap.String("command", name))
	return 0
}

// LoadFile executes a Lua file, collecting the commands it defines.
func (h *Host) LoadFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	if err := h.doWithRecovery(func() error {
		return h.l.DoFile(path)
	}); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	h.logger.Info("script loaded", zap.String("path", path), zap.Int("commands", len(h.defs)))
	return nil
}

// LoadString executes Lua source, collecting the commands it defines.
func (h *Host) LoadString(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	if err := h.doWithRecovery(func() error {
		return h.l.DoString(code)
	}); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// doWithRecovery executes a function with panic recovery.
func (h *Host) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Commands returns the defined command names in sorted order.
func (h *Host) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.defs))
	for name := range h.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Command instantiates the named command with the given arguments.
// The definition is captured at instantiation, so later redefinitions do not
// change how an already-built command reverses.
func (h *Host) Command(name string, args map[string]any) (*Command, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	def, ok := h.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	return &Command{
		host: h,
		name: name,
		def:  def,
		args: args,
	}, nil
}

// Global returns a script global converted to a canonical Go value.
// Unset globals report false.
func (h *Host) Global(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}

	lv := h.l.GetGlobal(name)
	if lv == lua.LNil {
		return nil, false
	}
	return toGoValue(lv), true
}

// IsClosed returns true if the host has been closed.
func (h *Host) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Close releases the Lua state. Commands built from this host fail their
// calls afterwards.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	h.l.Close()
	h.closed = true
	return nil
}

// invoke calls a definition function as fn(doc, args, memo) and syncs the
// document back on success. On any failure the document is left unchanged:
// the Lua side works on a snapshot, and the snapshot is only read back when
// the call returns cleanly.
func (h *Host) invoke(fn *lua.LFunction, d *Doc, args map[string]any, memo lua.LValue) (lua.LValue, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	if h.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		h.l.SetContext(ctx)
		defer h.l.RemoveContext()
	}

	docTbl := h.l.NewTable()
	for k, v := range d.Snapshot() {
		docTbl.RawSetString(k, toLuaValue(h.l, v))
	}
	argsTbl := h.l.NewTable()
	for k, v := range args {
		argsTbl.RawSetString(k, toLuaValue(h.l, v))
	}
	if memo == nil {
		memo = lua.LNil
	}

	stackTop := h.l.GetTop()
	h.l.Push(fn)
	h.l.Push(docTbl)
	h.l.Push(argsTbl)
	h.l.Push(memo)

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		callErr = h.l.PCall(3, 1, nil)
	}()
	if callErr != nil {
		h.l.SetTop(stackTop)
		return nil, callErr
	}

	ret := h.l.Get(-1)
	h.l.Pop(1)

	synced, ok := toGoValue(docTbl).(map[string]any)
	if !ok {
		synced = make(map[string]any)
	}
	d.replace(synced)

	return ret, nil
}
