package script

import (
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Command is a Lua-defined reversible command over a Doc.
//
// Apply calls the definition's apply function and keeps its return value as
// the command's memo; Reverse hands the memo back to the definition's
// reverse function. A failed call leaves the document unchanged and is
// retained on the command.
type Command struct {
	host *Host
	name string
	def  definition
	args map[string]any

	memo    lua.LValue
	applied bool
	err     error
}

// Name returns the command's definition name.
func (c *Command) Name() string {
	return c.name
}

// Args returns the arguments the command was instantiated with.
func (c *Command) Args() map[string]any {
	return c.args
}

// Apply calls the Lua apply function against the document.
func (c *Command) Apply(d *Doc) {
	memo, err := c.host.invoke(c.def.apply, d, c.args, lua.LNil)
	if err != nil {
		c.err = err
		c.host.logger.Warn("apply failed",
			zap.String("command", c.name),
			zap.Error(err))
		return
	}

	c.err = nil
	c.memo = memo
	c.applied = true
}

// Reverse calls the Lua reverse function with the memo captured by Apply.
// A command that never applied cleanly is a no-op.
func (c *Command) Reverse(d *Doc) {
	if !c.applied {
		return
	}

	if _, err := c.host.invoke(c.def.reverse, d, c.args, c.memo); err != nil {
		c.err = err
		c.host.logger.Warn("reverse failed",
			zap.String("command", c.name),
			zap.Error(err))
		return
	}

	c.err = nil
	c.memo = lua.LNil
	c.applied = false
}

// Err returns the error from the most recent failed call, nil after a clean
// one.
func (c *Command) Err() error {
	return c.err
}

// Description returns the command name with its arguments.
func (c *Command) Description() string {
	if len(c.args) == 0 {
		return c.name
	}

	keys := make([]string, 0, len(c.args))
	for k := range c.args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.name)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, c.args[k])
	}
	return b.String()
}
