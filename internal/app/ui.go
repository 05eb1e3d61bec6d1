package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind/internal/sketch"
)

// borderSet holds the box-drawing runes for one shape kind.
type borderSet struct {
	tl, tr, bl, br rune
	horiz, vert    rune
}

// borders returns the border runes for a shape kind. Ellipses get rounded
// corners.
func borders(k sketch.Kind) borderSet {
	if k == sketch.KindEllipse {
		return borderSet{tl: '╭', tr: '╮', bl: '╰', br: '╯', horiz: '─', vert: '│'}
	}
	return borderSet{tl: '┌', tr: '┐', bl: '└', br: '┘', horiz: '─', vert: '│'}
}

// paletteColor resolves a color name to a tcell color. Unknown names render
// with the terminal default.
func paletteColor(name string) tcell.Color {
	if c, ok := tcell.ColorNames[strings.ToLower(name)]; ok {
		return c
	}
	return tcell.ColorDefault
}

// draw renders the canvas and status line, then flips the screen.
func (a *App) draw() {
	a.screen.Clear()

	for i, sh := range a.machine.State().Shapes() {
		a.drawShape(sh, i == a.selected)
	}
	if a.cfg.UI.ShowStatus {
		a.drawStatus()
	}

	a.screen.Show()
}

// drawShape renders one shape's border and label, clipped to the screen.
func (a *App) drawShape(sh *sketch.Shape, selected bool) {
	w, h := int(sh.W), int(sh.H)
	if w <= 0 || h <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(paletteColor(sh.Color))
	if selected {
		style = style.Bold(true)
	}

	x, y := int(sh.X), int(sh.Y)
	right, bottom := x+w-1, y+h-1

	// Clip the paint loops to the screen so huge shapes stay cheap.
	sw, shgt := a.screen.Size()
	top, left := y, x
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	bot, rgt := bottom, right
	if bot > shgt-1 {
		bot = shgt - 1
	}
	if rgt > sw-1 {
		rgt = sw - 1
	}

	b := borders(sh.Kind)
	for row := top; row <= bot; row++ {
		for col := left; col <= rgt; col++ {
			var r rune
			switch {
			case row == y && col == x:
				r = b.tl
			case row == y && col == right:
				r = b.tr
			case row == bottom && col == x:
				r = b.bl
			case row == bottom && col == right:
				r = b.br
			case row == y || row == bottom:
				r = b.horiz
			case col == x || col == right:
				r = b.vert
			default:
				continue
			}
			a.screen.SetContent(col, row, r, nil, style)
		}
	}

	if sh.Label != "" && w >= 4 && h >= 3 {
		label := sh.Label
		if len(label) > w-2 {
			label = label[:w-2]
		}
		drawText(a.screen, x+1, y+1, style, label)
	}
}

// drawStatus renders the status line on the bottom row.
func (a *App) drawStatus() {
	_, h := a.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	drawText(a.screen, 0, h-1, style, a.statusText())
}

// statusText composes the status line: history depth, the entry the next
// undo would reverse, group state, and the last notice.
func (a *App) statusText() string {
	parts := []string{fmt.Sprintf("history %d", a.machine.Len())}
	if info, ok := a.machine.Peek(); ok {
		parts = append(parts, "undo: "+info.Description)
	}
	if a.machine.IsGrouping() {
		parts = append(parts, "[group]")
	}
	if a.notice != "" {
		parts = append(parts, a.notice)
	}
	return strings.Join(parts, " | ")
}

// drawText writes a string starting at (x, y). tcell ignores cells that
// land off screen.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col++
	}
}
