package rewind

import "time"

// EntryInfo describes one recorded command.
type EntryInfo struct {
	Description string
	Timestamp   time.Time
}

// entry wraps a recorded command with metadata.
type entry[S any] struct {
	command   Command[S]
	timestamp time.Time
}

func (e entry[S]) info() EntryInfo {
	return EntryInfo{
		Description: describe(e.command),
		Timestamp:   e.timestamp,
	}
}

// Option configures a TimeMachine.
type Option func(*settings)

type settings struct {
	limit int
}

// WithLimit caps the history at n entries; once exceeded, the oldest
// entries are evicted. Zero (the default) means unbounded.
func WithLimit(n int) Option {
	return func(s *settings) {
		if n < 0 {
			n = 0
		}
		s.limit = n
	}
}

// TimeMachine wraps exactly one commander-capable state with an ordered
// history of the commands executed through it, so they can be undone in
// strict last-in-first-out order.
//
// The type parameter is the state handle itself: any pointer type S whose
// Execute method takes a Command[S] satisfies Commander[S], so construction
// reads rewind.New(&Counter{}).
//
// A TimeMachine is not safe for concurrent use; callers serialize access.
type TimeMachine[S Commander[S]] struct {
	state   S
	history []entry[S]

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command[S]

	// Configuration
	limit int
}

// New wraps state in a TimeMachine with an empty history.
func New[S Commander[S]](state S, opts ...Option) *TimeMachine[S] {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TimeMachine[S]{
		state: state,
		limit: cfg.limit,
	}
}

// State returns the wrapped state. Mutations made directly through it bypass
// the history and cannot be undone.
func (tm *TimeMachine[S]) State() S {
	return tm.state
}

// Execute runs cmd against the state and records it for undo.
// While a group is open the record is buffered until EndGroup.
func (tm *TimeMachine[S]) Execute(cmd Command[S]) {
	tm.state.Execute(cmd)

	if tm.grouping {
		tm.groupCmds = append(tm.groupCmds, cmd)
		return
	}

	tm.push(cmd)
}

// push records a command on the history.
func (tm *TimeMachine[S]) push(cmd Command[S]) {
	tm.history = append(tm.history, entry[S]{
		command:   cmd,
		timestamp: time.Now(),
	})
	tm.trim()
}

// trim enforces the entry limit by evicting the oldest entries.
func (tm *TimeMachine[S]) trim() {
	if tm.limit > 0 && len(tm.history) > tm.limit {
		excess := len(tm.history) - tm.limit
		tm.history = tm.history[excess:]
	}
}

// Undo reverses the most recently recorded command and discards its record.
// It reports whether a command was undone; with an empty history it returns
// false and touches nothing.
func (tm *TimeMachine[S]) Undo() bool {
	if len(tm.history) == 0 {
		return false
	}

	last := tm.history[len(tm.history)-1]
	tm.history = tm.history[:len(tm.history)-1]

	last.command.Reverse(tm.state)
	return true
}

// CanUndo returns true if at least one command is recorded.
func (tm *TimeMachine[S]) CanUndo() bool {
	return len(tm.history) > 0
}

// Len returns the number of recorded commands.
func (tm *TimeMachine[S]) Len() int {
	return len(tm.history)
}

// Peek returns info about the command the next Undo would reverse.
func (tm *TimeMachine[S]) Peek() (EntryInfo, bool) {
	if len(tm.history) == 0 {
		return EntryInfo{}, false
	}
	return tm.history[len(tm.history)-1].info(), true
}

// Entries returns info for every recorded command in execution order.
func (tm *TimeMachine[S]) Entries() []EntryInfo {
	result := make([]EntryInfo, len(tm.history))
	for i, e := range tm.history {
		result[i] = e.info()
	}
	return result
}

// Clear drops all history without reversing anything. An open group is
// discarded as well.
func (tm *TimeMachine[S]) Clear() {
	tm.history = nil
	tm.grouping = false
	tm.groupName = ""
	tm.groupCmds = nil
}

// SetLimit changes the history cap. If the history is already larger,
// the oldest entries are evicted. Zero or negative means unbounded.
func (tm *TimeMachine[S]) SetLimit(n int) {
	if n < 0 {
		n = 0
	}
	tm.limit = n
	tm.trim()
}

// Limit returns the history cap; zero means unbounded.
func (tm *TimeMachine[S]) Limit() int {
	return tm.limit
}
