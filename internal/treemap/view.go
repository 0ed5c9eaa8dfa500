package treemap

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Styler resolves a node's color category to the fill style for its
// tile. selected is true only for the leaf under the cursor.
type Styler func(colorType string, selected bool) lipgloss.Style

// View paints the laid-out grid as g.bounds.H lines of g.bounds.W
// cells. Containers paint first, so a child's body overwrites its
// parent's except for the caption row the parent reserved.
func (g *Grid) View(style Styler, format func(int) string) string {
	w, h := g.bounds.W, g.bounds.H
	if w <= 0 || h <= 0 {
		return ""
	}
	chars := make([][]rune, h)
	owner := make([][]int, h)
	for y := 0; y < h; y++ {
		chars[y] = make([]rune, w)
		owner[y] = make([]int, w)
		for x := 0; x < w; x++ {
			chars[y][x] = ' '
			owner[y][x] = -1
		}
	}

	for ti, t := range g.tiles {
		r := t.Rect
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		for y := r.Y; y < r.Y+r.H && y < h; y++ {
			for x := r.X; x < r.X+r.W && x < w; x++ {
				chars[y][x] = ' '
				owner[y][x] = ti
			}
		}
		caption := t.Node.Name
		if format != nil {
			caption += " " + format(t.Weight)
		}
		if r.Y < h {
			writeCaption(chars[r.Y], r.X, min(r.W, w-r.X), caption)
		}
	}

	selTile := -1
	if g.sel >= 0 {
		selTile = g.leaves[g.sel]
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		x := 0
		for x < w {
			ti := owner[y][x]
			run := x + 1
			for run < w && owner[y][run] == ti {
				run++
			}
			var seg strings.Builder
			for _, r := range chars[y][x:run] {
				if r != 0 {
					seg.WriteRune(r)
				}
			}
			if ti < 0 {
				b.WriteString(seg.String())
			} else {
				t := g.tiles[ti]
				b.WriteString(style(t.Node.ColorType, ti == selTile).Render(seg.String()))
			}
			x = run
		}
	}
	return b.String()
}

// writeCaption lays caption runes into one grid row, truncated to the
// tile width by display width. The second cell of a wide rune holds a
// zero marker the emitter skips.
func writeCaption(row []rune, x, width int, caption string) {
	if width < 1 {
		return
	}
	caption = runewidth.Truncate(caption, width, "…")
	col, limit := x, x+width
	for _, r := range caption {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > limit {
			break
		}
		row[col] = r
		if rw == 2 {
			row[col+1] = 0
		}
		col += rw
	}
}
