// Package rewind provides a generic undo engine built on the Command pattern.
//
// The engine separates three capabilities: commands know how to apply and
// reverse themselves against a state, commanders know how to execute commands
// against themselves, and a TimeMachine records executed commands so they can
// be undone in strict last-in-first-out order. Key concepts:
//
// # Commands
//
// A Command mutates a state of type S and can mutate it back:
//
//	type Increment struct{ By int }
//
//	func (c *Increment) Apply(s *Counter)   { s.Value += c.By }
//	func (c *Increment) Reverse(s *Counter) { s.Value -= c.By }
//
// Commands may be stateful: Apply can capture prior values into the command's
// own fields so Reverse restores them exactly, even when the forward
// operation is lossy (clamping, overwriting). Commands have no error channel;
// one that cannot apply cleanly leaves the state unchanged.
//
// # Commanders
//
// A Commander executes commands against itself. For most state types the
// implementation is a single line:
//
//	func (s *Counter) Execute(cmd rewind.Command[*Counter]) { cmd.Apply(s) }
//
// The capability exists so hosts can layer policy (logging, journaling)
// between a caller and the command without the caller knowing.
//
// # Time Machine
//
// TimeMachine wraps one commander-capable state with a dynamically growing
// history of the commands executed through it:
//
//	counter := &Counter{}
//	tm := rewind.New(counter)
//
//	tm.Execute(&Increment{By: 5})
//	tm.Undo() // true, counter back to 0
//	tm.Undo() // false, nothing recorded
//
// Undo pops the most recent command, calls its Reverse, and discards the
// record; there is no redo. An empty history makes Undo return false rather
// than panic. WithLimit caps the history, evicting the oldest entries.
//
// # Command Grouping
//
// Multiple commands can be recorded as a single undo unit:
//
//	tm.BeginGroup("rename all")
//	// ... several Execute calls ...
//	tm.EndGroup()
//
// One Undo then reverses the whole group in reverse order. Transaction and
// GroupScope wrap the same mechanism for function-scoped use.
//
// The engine itself is dependency-free and never locks: a TimeMachine is
// single-threaded by contract, and callers that share one serialize access.
package rewind
