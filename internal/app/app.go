package app

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/rewind"
	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/internal/sketch"
)

// Options configures the demo application.
type Options struct {
	// Config holds the resolved configuration.
	Config config.Config
	// ConfigPath, when set, is watched for live reload.
	ConfigPath string
	// Logger receives session diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// App is the interactive sketch demo. It owns the terminal screen, the
// canvas, and the time machine every edit is executed through.
type App struct {
	cfg     config.Config
	cfgPath string
	logger  *zap.Logger
	session uuid.UUID

	machine *rewind.TimeMachine[*sketch.Canvas]
	screen  tcell.Screen
	watcher *config.Watcher

	selected int
	colorIdx int
	seq      int
	mark     rewind.Checkpoint
	hasMark  bool
	notice   string

	shutdown sync.Once
}

// configEvent carries a reloaded configuration into the event loop.
type configEvent struct {
	tcell.EventTime
	cfg config.Config
	err error
}

// New builds the demo around a freshly seeded canvas.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		cfg:     opts.Config,
		cfgPath: opts.ConfigPath,
		logger:  logger,
		session: uuid.New(),
	}

	// Seed shapes directly against the canvas so the demo starts with
	// something on screen but an empty history.
	canvas := sketch.NewCanvas()
	canvas.Execute(sketch.NewInsert(sketch.NewShape(sketch.KindBox, 4, 2, 14, 5, "alpha", a.nextColor())))
	canvas.Execute(sketch.NewInsert(sketch.NewShape(sketch.KindEllipse, 24, 8, 16, 6, "beta", a.nextColor())))

	a.machine = rewind.New(canvas, rewind.WithLimit(opts.Config.History.Limit))
	return a, nil
}

// Session returns the session's unique ID.
func (a *App) Session() uuid.UUID {
	return a.session
}

// Run owns the terminal until the user quits. It returns ErrQuit on a
// normal exit request.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen
	defer a.Shutdown()

	if a.cfgPath != "" {
		w, err := config.Watch(a.cfgPath, a.postConfig, config.WithWatchLogger(a.logger))
		if err != nil {
			a.logger.Warn("config watch unavailable", zap.Error(err))
		} else {
			a.watcher = w
		}
	}

	a.logger.Info("session started",
		zap.String("session", a.session.String()),
		zap.Int("limit", a.machine.Limit()))

	for {
		a.draw()

		ev := a.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			if err := a.handleKey(e); err != nil {
				a.logger.Info("session ended",
					zap.String("session", a.session.String()),
					zap.Int("history", a.machine.Len()))
				return err
			}
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			return ErrQuit
		case *configEvent:
			a.applyConfig(e.cfg, e.err)
		case nil:
			// Screen was finalized out from under the loop.
			return ErrQuit
		}
	}
}

// Shutdown releases the terminal and stops the config watcher. It is safe
// to call from any goroutine and more than once.
func (a *App) Shutdown() {
	a.shutdown.Do(func() {
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		if a.screen != nil {
			a.screen.Fini()
		}
		_ = a.logger.Sync()
	})
}

// postConfig delivers a reloaded config to the event loop. It runs on the
// watcher's goroutine, so it must not touch app state directly.
func (a *App) postConfig(cfg config.Config, err error) {
	ev := &configEvent{cfg: cfg, err: err}
	ev.SetEventNow()
	if a.screen != nil {
		_ = a.screen.PostEvent(ev) // best-effort; event queue may be full
	}
}

// applyConfig adopts a reloaded configuration.
func (a *App) applyConfig(cfg config.Config, err error) {
	if err != nil {
		a.notice = "config reload failed: " + err.Error()
		a.logger.Warn("config reload rejected", zap.Error(err))
		return
	}
	a.cfg = cfg
	a.machine.SetLimit(cfg.History.Limit)
	a.notice = "config reloaded"
	a.logger.Info("config applied", zap.Int("limit", cfg.History.Limit))
}

// handleKey dispatches one key event. It returns ErrQuit when the user
// asks to exit.
func (a *App) handleKey(ev *tcell.EventKey) error {
	switch KeyAction(ev.Key(), ev.Rune()) {
	case ActionQuit:
		return ErrQuit
	case ActionUndo:
		a.undo()
	case ActionSelectNext:
		a.moveSelection(1)
	case ActionSelectPrev:
		a.moveSelection(-1)
	case ActionMoveLeft:
		a.translateSelected(-2, 0)
	case ActionMoveRight:
		a.translateSelected(2, 0)
	case ActionMoveUp:
		a.translateSelected(0, -1)
	case ActionMoveDown:
		a.translateSelected(0, 1)
	case ActionGrow:
		a.resizeSelected(2, 1)
	case ActionShrink:
		a.resizeSelected(-2, -1)
	case ActionDouble:
		if sh, ok := a.selectedShape(); ok {
			a.execute(sketch.NewScale(sh.ID, 2))
		}
	case ActionRecolor:
		if sh, ok := a.selectedShape(); ok {
			a.execute(sketch.NewRecolor(sh.ID, a.nextColor()))
		}
	case ActionRelabel:
		if sh, ok := a.selectedShape(); ok {
			a.seq++
			a.execute(sketch.NewSetLabel(sh.ID, fmt.Sprintf("note %d", a.seq)))
		}
	case ActionInsert:
		a.insertShape()
	case ActionRemove:
		a.removeSelected()
	case ActionGroupToggle:
		a.toggleGroup()
	case ActionMark:
		a.mark = a.machine.Checkpoint()
		a.hasMark = true
		a.notice = fmt.Sprintf("mark at depth %d", a.machine.Len())
	case ActionRewindToMark:
		a.rewindToMark()
	}
	return nil
}

// execute runs cmd through the time machine and updates the notice line.
func (a *App) execute(cmd rewind.Command[*sketch.Canvas]) {
	a.machine.Execute(cmd)

	a.notice = ""
	if d, ok := cmd.(rewind.Describer); ok {
		a.notice = d.Description()
	}
	a.logger.Debug("command executed",
		zap.String("command", a.notice),
		zap.Int("history", a.machine.Len()))
}

// undo reverses the most recent command, if any.
func (a *App) undo() {
	info, _ := a.machine.Peek()
	if !a.machine.Undo() {
		a.notice = "nothing to undo"
		return
	}
	a.notice = "undid: " + info.Description
	a.clampSelection()
	a.logger.Debug("command undone",
		zap.String("command", info.Description),
		zap.Int("history", a.machine.Len()))
}

func (a *App) selectedShape() (*sketch.Shape, bool) {
	return a.machine.State().At(a.selected)
}

func (a *App) moveSelection(delta int) {
	n := a.machine.State().Len()
	if n == 0 {
		return
	}
	a.selected = ((a.selected+delta)%n + n) % n
}

// clampSelection keeps the selection in range after shapes come and go.
func (a *App) clampSelection() {
	n := a.machine.State().Len()
	if a.selected >= n {
		a.selected = n - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) translateSelected(dx, dy int32) {
	if sh, ok := a.selectedShape(); ok {
		a.execute(sketch.NewTranslate(sh.ID, dx, dy))
	}
}

func (a *App) resizeSelected(dw, dh int32) {
	if sh, ok := a.selectedShape(); ok {
		a.execute(sketch.NewResize(sh.ID, dw, dh))
	}
}

// insertShape adds a new shape at a position derived from the insert
// sequence, so repeated inserts fan out instead of stacking.
func (a *App) insertShape() {
	a.seq++
	kind := sketch.KindBox
	if a.seq%2 == 0 {
		kind = sketch.KindEllipse
	}
	x := int32(2 + (a.seq*5)%40)
	y := int32(1 + (a.seq*3)%14)

	sh := sketch.NewShape(kind, x, y, 10, 4, fmt.Sprintf("shape %d", a.seq), a.nextColor())
	a.execute(sketch.NewInsert(sh))
	a.selected = a.machine.State().Len() - 1
}

func (a *App) removeSelected() {
	sh, ok := a.selectedShape()
	if !ok {
		a.notice = "nothing selected"
		return
	}
	a.execute(sketch.NewRemove(sh.ID))
	a.clampSelection()
}

// toggleGroup opens a command group, or closes the one that is recording.
func (a *App) toggleGroup() {
	if a.machine.IsGrouping() {
		a.machine.EndGroup()
		a.notice = "group recorded"
		return
	}
	a.seq++
	a.machine.BeginGroup(fmt.Sprintf("edit %d", a.seq))
	a.notice = "group open"
}

// rewindToMark undoes everything recorded since the mark.
func (a *App) rewindToMark() {
	if !a.hasMark {
		a.notice = "no mark set"
		return
	}
	if a.machine.UndoTo(a.mark) {
		a.notice = fmt.Sprintf("rewound to depth %d", a.machine.Len())
	} else {
		a.notice = "mark no longer reachable"
	}
	a.clampSelection()
}

// nextColor cycles through the configured palette.
func (a *App) nextColor() string {
	p := a.cfg.UI.Palette
	if len(p) == 0 {
		return "white"
	}
	c := p[a.colorIdx%len(p)]
	a.colorIdx++
	return c
}
