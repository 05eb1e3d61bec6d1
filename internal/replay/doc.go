// Package replay executes scripted command plans against a document and
// reports what happened.
//
// A plan is Lua. Definition files register commands with rewind.define;
// the plan file sets two globals:
//
//	seed = { count = 0 }
//	plan = {
//	    { cmd = "incr", args = { by = 2 } },
//	    { undo = 1 },
//	    { group = "bulk", cmds = {
//	        { cmd = "incr", args = { by = 1 } },
//	        { cmd = "incr", args = { by = 1 } },
//	    } },
//	}
//
// The runner seeds a document from the seed global, executes each step
// through a time machine, and can unwind the whole history afterwards to
// prove the run reverses cleanly back to the seed.
package replay
