package sketch

import (
	"github.com/google/uuid"

	"github.com/dshills/rewind"
)

// Kind identifies the visual style of a shape.
type Kind int

const (
	// KindBox renders with square corners.
	KindBox Kind = iota
	// KindEllipse renders with rounded corners.
	KindEllipse
)

// String returns the kind's display name.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindEllipse:
		return "ellipse"
	default:
		return "shape"
	}
}

// Shape is one drawable element on a canvas.
// Position may be anywhere in the int32 range; dimensions are non-negative.
type Shape struct {
	ID    uuid.UUID
	Kind  Kind
	X, Y  int32
	W, H  int32
	Label string
	Color string
}

// NewShape creates a shape with a fresh ID. Negative dimensions are
// normalized to zero.
func NewShape(kind Kind, x, y, w, h int32, label, color string) *Shape {
	return &Shape{
		ID:    uuid.New(),
		Kind:  kind,
		X:     x,
		Y:     y,
		W:     clampDim(w),
		H:     clampDim(h),
		Label: label,
		Color: color,
	}
}

// Canvas holds shapes in draw order and executes commands against itself.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	shapes []*Shape
	index  map[uuid.UUID]*Shape
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{
		index: make(map[uuid.UUID]*Shape),
	}
}

// Execute applies cmd to the canvas.
func (c *Canvas) Execute(cmd rewind.Command[*Canvas]) {
	cmd.Apply(c)
}

// Shape returns the shape with the given ID.
func (c *Canvas) Shape(id uuid.UUID) (*Shape, bool) {
	sh, ok := c.index[id]
	return sh, ok
}

// Shapes returns the shapes in draw order. The slice is a copy; the shapes
// are not.
func (c *Canvas) Shapes() []*Shape {
	out := make([]*Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Len returns the number of shapes.
func (c *Canvas) Len() int {
	return len(c.shapes)
}

// At returns the shape at the given draw-order position.
func (c *Canvas) At(i int) (*Shape, bool) {
	if i < 0 || i >= len(c.shapes) {
		return nil, false
	}
	return c.shapes[i], true
}

// IndexOf returns the draw-order position of the shape with the given ID.
func (c *Canvas) IndexOf(id uuid.UUID) (int, bool) {
	for i, sh := range c.shapes {
		if sh.ID == id {
			return i, true
		}
	}
	return 0, false
}

// insertAt places sh at draw-order position i, clamped to the valid range.
func (c *Canvas) insertAt(sh *Shape, i int) {
	if i < 0 {
		i = 0
	}
	if i > len(c.shapes) {
		i = len(c.shapes)
	}
	c.shapes = append(c.shapes, nil)
	copy(c.shapes[i+1:], c.shapes[i:])
	c.shapes[i] = sh
	c.index[sh.ID] = sh
}

// removeByID takes the shape out of the canvas, returning it and the
// draw-order position it held.
func (c *Canvas) removeByID(id uuid.UUID) (*Shape, int, bool) {
	i, ok := c.IndexOf(id)
	if !ok {
		return nil, 0, false
	}
	sh := c.shapes[i]
	c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
	delete(c.index, id)
	return sh, i, true
}
