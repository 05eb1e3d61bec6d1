package sketch

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Translate moves a shape by a delta, clamping at the int32 boundaries.
type Translate struct {
	ID     uuid.UUID
	DX, DY int32

	appliedX int32
	appliedY int32
}

// NewTranslate creates a translate command for the shape with the given ID.
func NewTranslate(id uuid.UUID, dx, dy int32) *Translate {
	return &Translate{ID: id, DX: dx, DY: dy}
}

// Apply shifts the shape, recording the deltas actually applied after
// clamping so Reverse restores the exact prior position.
func (t *Translate) Apply(c *Canvas) {
	sh, ok := c.Shape(t.ID)
	if !ok {
		t.appliedX, t.appliedY = 0, 0
		return
	}

	nx := satAdd(sh.X, t.DX)
	ny := satAdd(sh.Y, t.DY)
	t.appliedX = nx - sh.X
	t.appliedY = ny - sh.Y
	sh.X, sh.Y = nx, ny
}

// Reverse shifts the shape back by the applied deltas.
func (t *Translate) Reverse(c *Canvas) {
	sh, ok := c.Shape(t.ID)
	if !ok {
		return
	}
	sh.X -= t.appliedX
	sh.Y -= t.appliedY
}

// Description returns a human-readable description.
func (t *Translate) Description() string {
	return fmt.Sprintf("Move shape (%+d,%+d)", t.DX, t.DY)
}

// Resize grows or shrinks a shape by dimension deltas. Dimensions saturate
// at zero and at the int32 maximum.
type Resize struct {
	ID     uuid.UUID
	DW, DH int32

	appliedW int32
	appliedH int32
}

// NewResize creates a resize command for the shape with the given ID.
func NewResize(id uuid.UUID, dw, dh int32) *Resize {
	return &Resize{ID: id, DW: dw, DH: dh}
}

// Apply resizes the shape, recording the deltas actually applied.
func (r *Resize) Apply(c *Canvas) {
	sh, ok := c.Shape(r.ID)
	if !ok {
		r.appliedW, r.appliedH = 0, 0
		return
	}

	nw := clampDim(satAdd(sh.W, r.DW))
	nh := clampDim(satAdd(sh.H, r.DH))
	r.appliedW = nw - sh.W
	r.appliedH = nh - sh.H
	sh.W, sh.H = nw, nh
}

// Reverse restores the shape's prior dimensions.
func (r *Resize) Reverse(c *Canvas) {
	sh, ok := c.Shape(r.ID)
	if !ok {
		return
	}
	sh.W -= r.appliedW
	sh.H -= r.appliedH
}

// Description returns a human-readable description.
func (r *Resize) Description() string {
	return fmt.Sprintf("Resize shape (%+d,%+d)", r.DW, r.DH)
}

// Scale multiplies a shape's dimensions by an integer factor. The prior
// dimensions are captured at Apply time, so undo is exact even when the
// multiplication destroyed them (factor zero).
type Scale struct {
	ID     uuid.UUID
	Factor int32

	priorW   int32
	priorH   int32
	captured bool
}

// NewScale creates a scale command for the shape with the given ID.
func NewScale(id uuid.UUID, factor int32) *Scale {
	return &Scale{ID: id, Factor: factor}
}

// Apply captures the prior dimensions, then multiplies them by the factor.
func (s *Scale) Apply(c *Canvas) {
	sh, ok := c.Shape(s.ID)
	if !ok {
		s.captured = false
		return
	}

	s.priorW, s.priorH = sh.W, sh.H
	s.captured = true
	sh.W = clampDim(satMul(sh.W, s.Factor))
	sh.H = clampDim(satMul(sh.H, s.Factor))
}

// Reverse restores the captured dimensions.
func (s *Scale) Reverse(c *Canvas) {
	if !s.captured {
		return
	}
	sh, ok := c.Shape(s.ID)
	if !ok {
		return
	}
	sh.W, sh.H = s.priorW, s.priorH
	s.captured = false
}

// Description returns a human-readable description.
func (s *Scale) Description() string {
	return fmt.Sprintf("Scale shape ×%d", s.Factor)
}

// SetLabel overwrites a shape's label, capturing the prior label for undo.
type SetLabel struct {
	ID    uuid.UUID
	Label string

	prior    string
	captured bool
}

// NewSetLabel creates a relabel command for the shape with the given ID.
func NewSetLabel(id uuid.UUID, label string) *SetLabel {
	return &SetLabel{ID: id, Label: label}
}

// Apply captures the prior label, then overwrites it.
func (s *SetLabel) Apply(c *Canvas) {
	sh, ok := c.Shape(s.ID)
	if !ok {
		s.captured = false
		return
	}
	s.prior = sh.Label
	s.captured = true
	sh.Label = s.Label
}

// Reverse restores the captured label.
func (s *SetLabel) Reverse(c *Canvas) {
	if !s.captured {
		return
	}
	sh, ok := c.Shape(s.ID)
	if !ok {
		return
	}
	sh.Label = s.prior
	s.captured = false
}

// Description returns a human-readable description.
func (s *SetLabel) Description() string {
	return fmt.Sprintf("Relabel to %q", s.Label)
}

// Recolor overwrites a shape's color, capturing the prior color for undo.
type Recolor struct {
	ID    uuid.UUID
	Color string

	prior    string
	captured bool
}

// NewRecolor creates a recolor command for the shape with the given ID.
func NewRecolor(id uuid.UUID, color string) *Recolor {
	return &Recolor{ID: id, Color: color}
}

// Apply captures the prior color, then overwrites it.
func (r *Recolor) Apply(c *Canvas) {
	sh, ok := c.Shape(r.ID)
	if !ok {
		r.captured = false
		return
	}
	r.prior = sh.Color
	r.captured = true
	sh.Color = r.Color
}

// Reverse restores the captured color.
func (r *Recolor) Reverse(c *Canvas) {
	if !r.captured {
		return
	}
	sh, ok := c.Shape(r.ID)
	if !ok {
		return
	}
	sh.Color = r.prior
	r.captured = false
}

// Description returns a human-readable description.
func (r *Recolor) Description() string {
	return fmt.Sprintf("Recolor to %s", r.Color)
}

// Insert adds a shape to the end of the draw order.
type Insert struct {
	Shape *Shape

	inserted bool
}

// NewInsert creates an insert command for the given shape.
func NewInsert(sh *Shape) *Insert {
	return &Insert{Shape: sh}
}

// Apply adds the shape. A shape whose ID is already on the canvas is left
// alone.
func (i *Insert) Apply(c *Canvas) {
	if i.Shape == nil {
		i.inserted = false
		return
	}
	if _, exists := c.Shape(i.Shape.ID); exists {
		i.inserted = false
		return
	}
	c.insertAt(i.Shape, c.Len())
	i.inserted = true
}

// Reverse removes the shape again.
func (i *Insert) Reverse(c *Canvas) {
	if !i.inserted {
		return
	}
	c.removeByID(i.Shape.ID)
	i.inserted = false
}

// Description returns a human-readable description.
func (i *Insert) Description() string {
	if i.Shape == nil {
		return "Add shape"
	}
	if i.Shape.Label != "" {
		return fmt.Sprintf("Add %s %q", i.Shape.Kind, i.Shape.Label)
	}
	return fmt.Sprintf("Add %s", i.Shape.Kind)
}

// Remove deletes a shape, capturing it and its draw-order position so
// Reverse reinserts it exactly where it was.
type Remove struct {
	ID uuid.UUID

	removed *Shape
	at      int
}

// NewRemove creates a remove command for the shape with the given ID.
func NewRemove(id uuid.UUID) *Remove {
	return &Remove{ID: id}
}

// Apply removes the shape, capturing it for undo.
func (r *Remove) Apply(c *Canvas) {
	sh, at, ok := c.removeByID(r.ID)
	if !ok {
		r.removed = nil
		return
	}
	r.removed = sh
	r.at = at
}

// Reverse reinserts the captured shape at its old position.
func (r *Remove) Reverse(c *Canvas) {
	if r.removed == nil {
		return
	}
	c.insertAt(r.removed, r.at)
	r.removed = nil
}

// Description returns a human-readable description.
func (r *Remove) Description() string {
	return "Remove shape"
}

// satAdd adds two int32s, clamping at the type's boundaries.
func satAdd(a, b int32) int32 {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 {
		return math.MaxInt32
	}
	if sum < math.MinInt32 {
		return math.MinInt32
	}
	return int32(sum)
}

// satMul multiplies two int32s, clamping at the type's boundaries.
func satMul(a, b int32) int32 {
	product := int64(a) * int64(b)
	if product > math.MaxInt32 {
		return math.MaxInt32
	}
	if product < math.MinInt32 {
		return math.MinInt32
	}
	return int32(product)
}

// clampDim floors a dimension at zero.
func clampDim(v int32) int32 {
	if v < 0 {
		return 0
	}
	return v
}
