package rewind

import "fmt"

// Command represents a reversible action against a state of type S.
//
// S is the state handle, in practice a pointer type so both methods can
// mutate what it points at. A command may capture prior values into its own
// fields during Apply so Reverse can restore them exactly.
type Command[S any] interface {
	// Apply mutates the state to reflect the command's effect.
	Apply(state S)

	// Reverse mutates the state back to its condition before Apply.
	// Calling Reverse on a command that was never applied is a contract
	// violation; commands guard their own captured fields.
	Reverse(state S)
}

// Commander is the capability to execute commands against oneself.
// The minimal implementation for a state type is one line:
//
//	func (s *T) Execute(cmd Command[*T]) { cmd.Apply(s) }
type Commander[S any] interface {
	// Execute applies cmd to the receiver's state.
	Execute(cmd Command[S])
}

// Describer is an optional command capability: a human-readable label used
// by history introspection. Commands without it are described by their type.
type Describer interface {
	Description() string
}

// describe returns cmd's Description if it has one, its Go type otherwise.
func describe(cmd any) string {
	if d, ok := cmd.(Describer); ok {
		return d.Description()
	}
	return fmt.Sprintf("%T", cmd)
}

// Batch groups multiple commands as one undo unit.
type Batch[S any] struct {
	Name     string
	Commands []Command[S]
}

// NewBatch creates a batch over the given commands.
func NewBatch[S any](name string, commands ...Command[S]) *Batch[S] {
	return &Batch[S]{
		Name:     name,
		Commands: commands,
	}
}

// Apply runs all commands in order.
func (b *Batch[S]) Apply(state S) {
	for _, cmd := range b.Commands {
		cmd.Apply(state)
	}
}

// Reverse unwinds all commands in reverse order.
func (b *Batch[S]) Reverse(state S) {
	for i := len(b.Commands) - 1; i >= 0; i-- {
		b.Commands[i].Reverse(state)
	}
}

// Description returns the batch's name.
func (b *Batch[S]) Description() string {
	if b.Name != "" {
		return b.Name
	}
	if len(b.Commands) == 1 {
		return describe(b.Commands[0])
	}
	return fmt.Sprintf("%d operations", len(b.Commands))
}

// Add appends a command to the batch.
func (b *Batch[S]) Add(cmd Command[S]) {
	b.Commands = append(b.Commands, cmd)
}

// IsEmpty returns true if the batch has no commands.
func (b *Batch[S]) IsEmpty() bool {
	return len(b.Commands) == 0
}
