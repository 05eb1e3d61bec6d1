// Package sketch provides the drawing domain used by the rewind demo.
//
// A Canvas holds shapes in draw order and executes rewind commands against
// itself. Every mutation (moving, resizing, scaling, relabeling, recoloring,
// inserting, removing) is expressed as a command so the demo can undo it:
//
//	canvas := sketch.NewCanvas()
//	tm := rewind.New(canvas)
//
//	box := sketch.NewShape(sketch.KindBox, 4, 2, 10, 4, "hello", "red")
//	tm.Execute(sketch.NewInsert(box))
//	tm.Execute(sketch.NewTranslate(box.ID, 3, 0))
//	tm.Undo() // box back at x=4
//
// Coordinates and dimensions are int32 and all command arithmetic saturates
// at the type's boundaries; commands record what they actually changed, so
// undo is exact even when the forward operation clamped or overwrote.
package sketch
