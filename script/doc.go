// Package script lets Lua scripts define reversible commands over a document
// state, so hosts can gain undoable actions without recompiling.
//
// A script registers command definitions through the rewind module:
//
//	rewind.define("set", {
//	    apply = function(doc, args)
//	        local prior = doc[args.key]
//	        doc[args.key] = args.value
//	        return prior -- memo, handed back on reverse
//	    end,
//	    reverse = function(doc, args, memo)
//	        doc[args.key] = memo
//	    end,
//	})
//
// The apply function receives the document as a plain table plus the
// command's arguments; whatever it returns is kept as the command's memo and
// passed to reverse, which is Lua's way of capturing a prior value. The host
// instantiates commands from those definitions:
//
//	host := script.NewHost()
//	defer host.Close()
//
//	if err := host.LoadFile("commands.lua"); err != nil { ... }
//
//	doc := script.NewDoc()
//	tm := rewind.New(doc)
//
//	cmd, err := host.Command("set", map[string]any{"key": "title", "value": "Go"})
//	tm.Execute(cmd)
//	tm.Undo() // title restored via the memo
//
// A failed Lua call leaves the document unchanged and is retained on the
// command (Err); commands never panic across the engine boundary.
//
// The Lua environment is sandboxed: only the base, table, string and math
// libraries are opened. io, os, debug and package stay closed.
package script
