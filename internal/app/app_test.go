package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind/internal/config"
)

// newTestApp builds an app with default config and no screen. Everything
// under test here runs without a terminal.
func newTestApp(t *testing.T) *App {
	t.Helper()

	a, err := New(Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	return a
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want Action
	}{
		{"escape", tcell.KeyEscape, 0, ActionQuit},
		{"q", tcell.KeyRune, 'q', ActionQuit},
		{"ctrl-z", tcell.KeyCtrlZ, 0, ActionUndo},
		{"u", tcell.KeyRune, 'u', ActionUndo},
		{"left arrow", tcell.KeyLeft, 0, ActionMoveLeft},
		{"vim h", tcell.KeyRune, 'h', ActionMoveLeft},
		{"vim l", tcell.KeyRune, 'l', ActionMoveRight},
		{"vim k", tcell.KeyRune, 'k', ActionMoveUp},
		{"vim j", tcell.KeyRune, 'j', ActionMoveDown},
		{"grow", tcell.KeyRune, '+', ActionGrow},
		{"grow unshifted", tcell.KeyRune, '=', ActionGrow},
		{"shrink", tcell.KeyRune, '-', ActionShrink},
		{"double", tcell.KeyRune, 'd', ActionDouble},
		{"recolor", tcell.KeyRune, 'c', ActionRecolor},
		{"relabel", tcell.KeyRune, 'r', ActionRelabel},
		{"insert", tcell.KeyRune, 'n', ActionInsert},
		{"remove", tcell.KeyRune, 'x', ActionRemove},
		{"group", tcell.KeyRune, 'g', ActionGroupToggle},
		{"mark", tcell.KeyRune, 'm', ActionMark},
		{"rewind to mark", tcell.KeyRune, 'M', ActionRewindToMark},
		{"tab", tcell.KeyTab, 0, ActionSelectNext},
		{"backtab", tcell.KeyBacktab, 0, ActionSelectPrev},
		{"unbound rune", tcell.KeyRune, '?', ActionNone},
		{"unbound key", tcell.KeyF5, 0, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyAction(tt.key, tt.r); got != tt.want {
				t.Errorf("KeyAction(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
			}
		})
	}
}

func TestHandleKeyQuit(t *testing.T) {
	a := newTestApp(t)

	if err := a.handleKey(key(tcell.KeyEscape, 0)); !errors.Is(err, ErrQuit) {
		t.Errorf("Escape error = %v, want ErrQuit", err)
	}
	if err := a.handleKey(key(tcell.KeyRune, 'q')); !errors.Is(err, ErrQuit) {
		t.Errorf("q error = %v, want ErrQuit", err)
	}
}

func TestHandleKeyMoveUndo(t *testing.T) {
	a := newTestApp(t)

	sh, ok := a.selectedShape()
	if !ok {
		t.Fatal("no selected shape")
	}
	startX := sh.X

	if err := a.handleKey(key(tcell.KeyRight, 0)); err != nil {
		t.Fatalf("handleKey error = %v", err)
	}
	if sh.X != startX+2 {
		t.Errorf("X = %d, want %d", sh.X, startX+2)
	}
	if a.machine.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.machine.Len())
	}

	if err := a.handleKey(key(tcell.KeyRune, 'u')); err != nil {
		t.Fatalf("handleKey error = %v", err)
	}
	if sh.X != startX {
		t.Errorf("after undo X = %d, want %d", sh.X, startX)
	}
	if a.machine.Len() != 0 {
		t.Errorf("after undo Len() = %d, want 0", a.machine.Len())
	}
}

func TestHandleKeyUndoEmpty(t *testing.T) {
	a := newTestApp(t)

	if err := a.handleKey(key(tcell.KeyRune, 'u')); err != nil {
		t.Fatalf("handleKey error = %v", err)
	}
	if a.notice != "nothing to undo" {
		t.Errorf("notice = %q, want 'nothing to undo'", a.notice)
	}
}

func TestHandleKeyDoubleUndo(t *testing.T) {
	a := newTestApp(t)

	sh, _ := a.selectedShape()
	w, h := sh.W, sh.H

	_ = a.handleKey(key(tcell.KeyRune, 'd'))
	if sh.W != w*2 || sh.H != h*2 {
		t.Errorf("size = %dx%d, want %dx%d", sh.W, sh.H, w*2, h*2)
	}

	_ = a.handleKey(key(tcell.KeyRune, 'u'))
	if sh.W != w || sh.H != h {
		t.Errorf("after undo size = %dx%d, want %dx%d", sh.W, sh.H, w, h)
	}
}

func TestHandleKeyRecolorUndo(t *testing.T) {
	a := newTestApp(t)

	sh, _ := a.selectedShape()
	before := sh.Color

	_ = a.handleKey(key(tcell.KeyRune, 'c'))
	after := sh.Color
	if after == before {
		t.Fatal("recolor should change the color")
	}

	_ = a.handleKey(key(tcell.KeyRune, 'u'))
	if sh.Color != before {
		t.Errorf("after undo color = %q, want %q", sh.Color, before)
	}
}

func TestHandleKeyInsertRemove(t *testing.T) {
	a := newTestApp(t)
	n := a.machine.State().Len()

	_ = a.handleKey(key(tcell.KeyRune, 'n'))
	if got := a.machine.State().Len(); got != n+1 {
		t.Fatalf("after insert Len = %d, want %d", got, n+1)
	}
	if a.selected != n {
		t.Errorf("selected = %d, want %d (new shape)", a.selected, n)
	}

	_ = a.handleKey(key(tcell.KeyRune, 'x'))
	if got := a.machine.State().Len(); got != n {
		t.Fatalf("after remove Len = %d, want %d", got, n)
	}

	// Undo the remove, then the insert.
	_ = a.handleKey(key(tcell.KeyRune, 'u'))
	if got := a.machine.State().Len(); got != n+1 {
		t.Errorf("after first undo Len = %d, want %d", got, n+1)
	}
	_ = a.handleKey(key(tcell.KeyRune, 'u'))
	if got := a.machine.State().Len(); got != n {
		t.Errorf("after second undo Len = %d, want %d", got, n)
	}
}

func TestHandleKeyGroup(t *testing.T) {
	a := newTestApp(t)

	_ = a.handleKey(key(tcell.KeyRune, 'g'))
	if !a.machine.IsGrouping() {
		t.Fatal("group should be open")
	}

	sh, _ := a.selectedShape()
	x, y := sh.X, sh.Y

	_ = a.handleKey(key(tcell.KeyRight, 0))
	_ = a.handleKey(key(tcell.KeyDown, 0))
	if a.machine.Len() != 0 {
		t.Errorf("Len = %d during group, want 0", a.machine.Len())
	}

	_ = a.handleKey(key(tcell.KeyRune, 'g'))
	if a.machine.IsGrouping() {
		t.Fatal("group should be closed")
	}
	if a.machine.Len() != 1 {
		t.Fatalf("Len = %d after group, want 1", a.machine.Len())
	}

	// One undo reverses the whole group.
	_ = a.handleKey(key(tcell.KeyRune, 'u'))
	if sh.X != x || sh.Y != y {
		t.Errorf("after undo at (%d,%d), want (%d,%d)", sh.X, sh.Y, x, y)
	}
}

func TestHandleKeyMarkRewind(t *testing.T) {
	a := newTestApp(t)

	_ = a.handleKey(key(tcell.KeyRight, 0))
	_ = a.handleKey(key(tcell.KeyRune, 'm'))
	_ = a.handleKey(key(tcell.KeyRight, 0))
	_ = a.handleKey(key(tcell.KeyDown, 0))

	_ = a.handleKey(key(tcell.KeyRune, 'M'))
	if a.machine.Len() != 1 {
		t.Errorf("Len = %d after rewind to mark, want 1", a.machine.Len())
	}
}

func TestHandleKeyRewindWithoutMark(t *testing.T) {
	a := newTestApp(t)

	_ = a.handleKey(key(tcell.KeyRune, 'M'))
	if a.notice != "no mark set" {
		t.Errorf("notice = %q, want 'no mark set'", a.notice)
	}
}

func TestSelectionWraps(t *testing.T) {
	a := newTestApp(t)
	n := a.machine.State().Len()
	if n < 2 {
		t.Fatalf("seed canvas has %d shapes, want at least 2", n)
	}

	_ = a.handleKey(key(tcell.KeyTab, 0))
	if a.selected != 1 {
		t.Errorf("selected = %d, want 1", a.selected)
	}
	for i := 1; i < n; i++ {
		_ = a.handleKey(key(tcell.KeyTab, 0))
	}
	if a.selected != 0 {
		t.Errorf("selected = %d after full cycle, want 0", a.selected)
	}
	_ = a.handleKey(key(tcell.KeyBacktab, 0))
	if a.selected != n-1 {
		t.Errorf("selected = %d after backtab, want %d", a.selected, n-1)
	}
}

func TestStatusText(t *testing.T) {
	a := newTestApp(t)

	if got := a.statusText(); got != "history 0" {
		t.Errorf("statusText() = %q, want 'history 0'", got)
	}

	_ = a.handleKey(key(tcell.KeyRight, 0))
	if got := a.statusText(); !strings.Contains(got, "undo: Move shape") {
		t.Errorf("statusText() = %q, want undo hint", got)
	}

	_ = a.handleKey(key(tcell.KeyRune, 'g'))
	if got := a.statusText(); !strings.Contains(got, "[group]") {
		t.Errorf("statusText() = %q, want group marker", got)
	}
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t)

	cfg := config.Default()
	cfg.History.Limit = 7
	a.applyConfig(cfg, nil)

	if a.machine.Limit() != 7 {
		t.Errorf("Limit() = %d, want 7", a.machine.Limit())
	}

	a.applyConfig(config.Config{}, errors.New("boom"))
	if a.machine.Limit() != 7 {
		t.Errorf("Limit() = %d after failed reload, want 7", a.machine.Limit())
	}
	if !strings.Contains(a.notice, "config reload failed") {
		t.Errorf("notice = %q, want reload failure", a.notice)
	}
}

func TestPaletteColor(t *testing.T) {
	if got := paletteColor("red"); got != tcell.ColorRed {
		t.Errorf("paletteColor(red) = %v, want ColorRed", got)
	}
	if got := paletteColor("RED"); got != tcell.ColorRed {
		t.Errorf("paletteColor(RED) = %v, want ColorRed", got)
	}
	if got := paletteColor("notacolor"); got != tcell.ColorDefault {
		t.Errorf("paletteColor(notacolor) = %v, want ColorDefault", got)
	}
}

func TestNextColorCycles(t *testing.T) {
	a := newTestApp(t)
	a.cfg.UI.Palette = []string{"red", "blue"}
	a.colorIdx = 0

	want := []string{"red", "blue", "red"}
	for i, w := range want {
		if got := a.nextColor(); got != w {
			t.Errorf("nextColor() #%d = %q, want %q", i, got, w)
		}
	}
}

func TestBuildLoggerNop(t *testing.T) {
	logger, err := BuildLogger(config.LogConfig{Path: "", Level: "info"})
	if err != nil {
		t.Fatalf("BuildLogger error = %v", err)
	}
	if logger == nil {
		t.Fatal("logger should not be nil")
	}
}

func TestBuildLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")

	logger, err := BuildLogger(config.LogConfig{Path: path, Level: "debug"})
	if err != nil {
		t.Fatalf("BuildLogger error = %v", err)
	}
	logger.Info("hello from the demo")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from the demo") {
		t.Error("log file should contain the logged message")
	}
}

func TestBuildLoggerBadLevel(t *testing.T) {
	if _, err := BuildLogger(config.LogConfig{Path: "x.log", Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
