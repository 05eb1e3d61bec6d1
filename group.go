package rewind

// BeginGroup starts a command group.
// Commands executed while grouping are combined into a single undo unit.
// Nested calls are ignored.
func (tm *TimeMachine[S]) BeginGroup(name string) {
	if tm.grouping {
		return
	}

	tm.grouping = true
	tm.groupName = name
	tm.groupCmds = nil
}

// EndGroup finishes a command group.
// All commands since BeginGroup are recorded as a single Batch; an empty
// group records nothing.
func (tm *TimeMachine[S]) EndGroup() {
	if !tm.grouping {
		return
	}

	tm.grouping = false

	if len(tm.groupCmds) == 0 {
		tm.groupCmds = nil
		return
	}

	tm.push(&Batch[S]{
		Name:     tm.groupName,
		Commands: tm.groupCmds,
	})
	tm.groupCmds = nil
}

// CancelGroup discards an open group without recording it. Commands already
// executed keep their effect on the state.
func (tm *TimeMachine[S]) CancelGroup() {
	tm.grouping = false
	tm.groupCmds = nil
}

// IsGrouping returns true if currently in a command group.
func (tm *TimeMachine[S]) IsGrouping() bool {
	return tm.grouping
}

// GroupScope keeps a group open for the duration of a function:
//
//	func applyTheme(tm *TimeMachine[*Canvas]) {
//	    defer tm.GroupScope("Apply Theme").End()
//	    // ... multiple commands ...
//	}
type GroupScope[S Commander[S]] struct {
	tm     *TimeMachine[S]
	active bool
}

// GroupScope opens a group and returns a handle that closes it.
func (tm *TimeMachine[S]) GroupScope(name string) *GroupScope[S] {
	tm.BeginGroup(name)
	return &GroupScope[S]{
		tm:     tm,
		active: true,
	}
}

// End closes the scope's group. Calling it again has no effect.
func (g *GroupScope[S]) End() {
	if g.active {
		g.tm.EndGroup()
		g.active = false
	}
}

// Cancel discards the scope's group without recording a batch. Commands
// already executed keep their effect on the state.
func (g *GroupScope[S]) Cancel() {
	if g.active {
		g.tm.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn with a group open. A nil return commits the group as
// one undo unit; an error cancels it, keeping the mutations but recording
// nothing.
func (tm *TimeMachine[S]) Transaction(name string, fn func() error) error {
	tm.BeginGroup(name)

	if err := fn(); err != nil {
		tm.CancelGroup()
		return err
	}

	tm.EndGroup()
	return nil
}

// ExecuteGrouped records cmds as a single undo unit.
func (tm *TimeMachine[S]) ExecuteGrouped(name string, cmds ...Command[S]) {
	if len(cmds) == 0 {
		return
	}

	if len(cmds) == 1 {
		// A lone command records as itself.
		tm.Execute(cmds[0])
		return
	}

	tm.BeginGroup(name)
	for _, cmd := range cmds {
		tm.Execute(cmd)
	}
	tm.EndGroup()
}

// Checkpoint marks a history depth that UndoTo can rewind to.
type Checkpoint struct {
	depth int
}

// Checkpoint captures the current history depth.
func (tm *TimeMachine[S]) Checkpoint() Checkpoint {
	return Checkpoint{depth: len(tm.history)}
}

// UndoTo undoes all commands recorded since the checkpoint. It reports
// whether the checkpoint's depth was reached; a checkpoint deeper than the
// current history is unreachable (its entries were evicted or cleared).
func (tm *TimeMachine[S]) UndoTo(cp Checkpoint) bool {
	if cp.depth > len(tm.history) {
		return false
	}

	for len(tm.history) > cp.depth {
		tm.Undo()
	}
	return true
}
