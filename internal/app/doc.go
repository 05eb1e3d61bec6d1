// Package app runs the interactive sketch demo: a terminal canvas of
// labeled shapes where every edit goes through a time machine, so any
// sequence of edits can be unwound one command at a time.
//
// # Keys
//
//	arrows / hjkl   move the selected shape
//	+ / -           grow / shrink it
//	d               double its size
//	c               cycle its color through the palette
//	r               relabel it
//	n               add a shape
//	x               remove the selected shape
//	tab / backtab   change selection
//	g               open or close a command group
//	m / M           set a mark / rewind to it
//	u / Ctrl-Z      undo
//	q / Esc         quit
//
// The status line shows the history depth, the command the next undo
// would reverse, and whether a group is recording. Edits made to the
// config file while the demo runs are applied live.
package app
