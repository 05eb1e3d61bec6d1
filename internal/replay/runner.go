package replay

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/rewind"
	"github.com/dshills/rewind/script"
)

// Report summarizes a replay run.
type Report struct {
	// Executed counts the commands run, group members included.
	Executed int
	// Undone counts undos, plan steps and the final unwind together.
	Undone int
	// Verified is true when the unwound document matched the seed.
	Verified bool
	// Final holds the document contents when the run finished.
	Final map[string]any
}

// Runner executes a plan from a script host against a fresh document.
type Runner struct {
	host   *script.Host
	logger *zap.Logger
	limit  int
	unwind bool
	verify bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for per-step diagnostics.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLimit caps the run's history. Zero means unbounded.
func WithLimit(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithUnwind undoes the full history once the plan finishes.
func WithUnwind() RunnerOption {
	return func(r *Runner) {
		r.unwind = true
	}
}

// WithVerify checks the document against the seed after the unwind.
// It implies WithUnwind.
func WithVerify() RunnerOption {
	return func(r *Runner) {
		r.unwind = true
		r.verify = true
	}
}

// NewRunner creates a runner over a host with definitions and a plan loaded.
func NewRunner(host *script.Host, opts ...RunnerOption) *Runner {
	r := &Runner{
		host:   host,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run seeds a document, executes every plan step through a time machine,
// and optionally unwinds the history to prove the run reverses cleanly.
func (r *Runner) Run() (*Report, error) {
	doc, err := r.seedDoc()
	if err != nil {
		return nil, err
	}

	planVal, ok := r.host.Global("plan")
	if !ok {
		return nil, ErrNoPlan
	}
	steps, err := ParsePlan(planVal)
	if err != nil {
		return nil, err
	}

	initial := doc.Snapshot()
	machine := rewind.New(doc, rewind.WithLimit(r.limit))

	report := &Report{}
	for i, step := range steps {
		if err := r.runStep(machine, step, i, report); err != nil {
			return nil, err
		}
	}

	if r.unwind {
		for machine.Undo() {
			report.Undone++
		}
		if r.verify {
			report.Verified = machine.State().Equal(script.NewDocFrom(initial))
			if !report.Verified {
				r.logger.Warn("unwound document does not match the seed")
			}
		}
	}

	report.Final = machine.State().Snapshot()
	r.logger.Info("replay finished",
		zap.Int("executed", report.Executed),
		zap.Int("undone", report.Undone),
		zap.Bool("verified", report.Verified))
	return report, nil
}

// seedDoc builds the starting document from the seed global.
func (r *Runner) seedDoc() (*script.Doc, error) {
	seedVal, ok := r.host.Global("seed")
	if !ok {
		return script.NewDoc(), nil
	}
	m, ok := seedVal.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("seed must be a table, got %T", seedVal)
	}
	return script.NewDocFrom(m), nil
}

// runStep executes one plan step.
func (r *Runner) runStep(machine *rewind.TimeMachine[*script.Doc], step Step, idx int, report *Report) error {
	switch {
	case step.Undo > 0:
		for i := 0; i < step.Undo; i++ {
			if !machine.Undo() {
				r.logger.Warn("undo ran past the beginning of history",
					zap.Int("step", idx+1),
					zap.Int("requested", step.Undo),
					zap.Int("performed", i))
				break
			}
			report.Undone++
		}
		return nil

	case step.Group != "":
		members := make([]*script.Command, 0, len(step.Cmds))
		for _, sub := range step.Cmds {
			cmd, err := r.host.Command(sub.Cmd, sub.Args)
			if err != nil {
				return fmt.Errorf("step %d: %w", idx+1, err)
			}
			members = append(members, cmd)
		}

		cmds := make([]rewind.Command[*script.Doc], len(members))
		for i, c := range members {
			cmds[i] = c
		}
		machine.ExecuteGrouped(step.Group, cmds...)

		for _, c := range members {
			if err := c.Err(); err != nil {
				return fmt.Errorf("step %d: %s: %w", idx+1, c.Name(), err)
			}
			report.Executed++
		}
		r.logger.Info("group executed",
			zap.String("group", step.Group),
			zap.Int("commands", len(members)),
			zap.Int("history", machine.Len()))
		return nil

	default:
		cmd, err := r.host.Command(step.Cmd, step.Args)
		if err != nil {
			return fmt.Errorf("step %d: %w", idx+1, err)
		}
		machine.Execute(cmd)
		if err := cmd.Err(); err != nil {
			return fmt.Errorf("step %d: %s: %w", idx+1, step.Cmd, err)
		}
		report.Executed++
		r.logger.Info("command executed",
			zap.String("command", cmd.Description()),
			zap.Int("history", machine.Len()))
		return nil
	}
}
