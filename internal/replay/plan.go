package replay

import (
	"errors"
	"fmt"
)

// Step is one plan entry. Exactly one of Cmd, Undo, or Group is set.
type Step struct {
	// Cmd names a defined command; Args are its arguments.
	Cmd  string
	Args map[string]any

	// Undo, when positive, undoes that many recorded commands instead.
	Undo int

	// Group runs Cmds as a single undo unit under this name.
	Group string
	Cmds  []Step
}

// ParsePlan converts the plan global's value into steps. Lua hands an empty
// plan over as an empty table, which parses to zero steps.
func ParsePlan(v any) ([]Step, error) {
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return nil, nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("plan must be a list of steps, got %T", v)
	}

	steps := make([]Step, 0, len(list))
	for i, raw := range list {
		step, err := parseStep(raw)
		if err != nil {
			return nil, fmt.Errorf("plan step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// parseStep converts one step table.
func parseStep(raw any) (Step, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Step{}, fmt.Errorf("step must be a table, got %T", raw)
	}

	if u, ok := m["undo"]; ok {
		n, ok := u.(int64)
		if !ok || n <= 0 {
			return Step{}, fmt.Errorf("undo must be a positive count, got %v", u)
		}
		return Step{Undo: int(n)}, nil
	}

	if g, ok := m["group"]; ok {
		name, ok := g.(string)
		if !ok {
			return Step{}, fmt.Errorf("group name must be a string, got %T", g)
		}
		rawCmds, ok := m["cmds"].([]any)
		if !ok {
			return Step{}, errors.New("group requires a cmds list")
		}
		cmds := make([]Step, 0, len(rawCmds))
		for i, rc := range rawCmds {
			sub, err := parseStep(rc)
			if err != nil {
				return Step{}, fmt.Errorf("group cmd %d: %w", i+1, err)
			}
			if sub.Cmd == "" {
				return Step{}, fmt.Errorf("group cmd %d: only command steps may be grouped", i+1)
			}
			cmds = append(cmds, sub)
		}
		return Step{Group: name, Cmds: cmds}, nil
	}

	if c, ok := m["cmd"]; ok {
		name, ok := c.(string)
		if !ok {
			return Step{}, fmt.Errorf("cmd must be a string, got %T", c)
		}
		step := Step{Cmd: name}
		if a, ok := m["args"]; ok {
			args, ok := a.(map[string]any)
			if !ok {
				return Step{}, fmt.Errorf("args must be a table, got %T", a)
			}
			step.Args = args
		}
		return step, nil
	}

	return Step{}, errors.New("step needs cmd, undo, or group")
}
