package treemap

import "ctxmap/internal/contextmap"

// Direction is a spatial navigation step over the laid-out leaves.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Grid owns one laid-out tree and the selection cursor over its
// visible leaves. A relayout keeps the selected leaf when its key
// survives, otherwise the largest leaf becomes the cursor.
type Grid struct {
	root   *contextmap.Node
	bounds Rect
	tiles  []Tile
	leaves []int
	sel    int
}

func NewGrid() *Grid {
	return &Grid{sel: -1}
}

// SetTree swaps the rendered tree. Selection carries over by leaf key,
// which holds across grouping toggles over the same snapshot.
func (g *Grid) SetTree(root *contextmap.Node) {
	keep := g.SelectedKey()
	g.root = root
	g.relayout(keep)
}

func (g *Grid) SetSize(w, h int) {
	keep := g.SelectedKey()
	g.bounds = Rect{W: w, H: h}
	g.relayout(keep)
}

func (g *Grid) relayout(keep string) {
	g.tiles = Layout(g.root, g.bounds)
	g.leaves = g.leaves[:0]
	for i, t := range g.tiles {
		if t.Leaf && t.Rect.W > 0 && t.Rect.H > 0 {
			g.leaves = append(g.leaves, i)
		}
	}
	g.sel = -1
	if len(g.leaves) == 0 {
		return
	}
	if keep != "" {
		for li, ti := range g.leaves {
			if g.tiles[ti].Node.LeafKey == keep {
				g.sel = li
				return
			}
		}
	}
	best := 0
	for li, ti := range g.leaves {
		if g.tiles[ti].Weight > g.tiles[g.leaves[best]].Weight {
			best = li
		}
	}
	g.sel = best
}

// Empty reports whether the current layout has nothing selectable.
func (g *Grid) Empty() bool { return len(g.leaves) == 0 }

// SelectedKey returns the leaf key under the cursor, or "".
func (g *Grid) SelectedKey() string {
	if g.sel < 0 {
		return ""
	}
	return g.tiles[g.leaves[g.sel]].Node.LeafKey
}

// SelectedNode returns the node under the cursor, or nil.
func (g *Grid) SelectedNode() *contextmap.Node {
	if g.sel < 0 {
		return nil
	}
	return g.tiles[g.leaves[g.sel]].Node
}

// Next and Prev cycle the cursor in paint order.
func (g *Grid) Next() {
	if len(g.leaves) > 0 {
		g.sel = (g.sel + 1) % len(g.leaves)
	}
}

func (g *Grid) Prev() {
	if len(g.leaves) > 0 {
		g.sel = (g.sel - 1 + len(g.leaves)) % len(g.leaves)
	}
}

// Move shifts the cursor to the nearest leaf in the given direction,
// comparing doubled rect centers. Off-axis distance counts quadruple so
// lateral neighbors beat diagonal ones. Returns false at the edge.
func (g *Grid) Move(d Direction) bool {
	if g.sel < 0 {
		return false
	}
	cur := g.tiles[g.leaves[g.sel]].Rect
	cx, cy := cur.X*2+cur.W, cur.Y*2+cur.H
	best, bestScore := -1, 0
	for li, ti := range g.leaves {
		if li == g.sel {
			continue
		}
		r := g.tiles[ti].Rect
		dx, dy := r.X*2+r.W-cx, r.Y*2+r.H-cy
		var ahead bool
		var along, across int
		switch d {
		case DirLeft:
			ahead, along, across = dx < 0, -dx, abs(dy)
		case DirRight:
			ahead, along, across = dx > 0, dx, abs(dy)
		case DirUp:
			ahead, along, across = dy < 0, -dy, abs(dx)
		case DirDown:
			ahead, along, across = dy > 0, dy, abs(dx)
		}
		if !ahead {
			continue
		}
		score := along*along + 4*across*across
		if best == -1 || score < bestScore {
			best, bestScore = li, score
		}
	}
	if best == -1 {
		return false
	}
	g.sel = best
	return true
}

// SelectAt moves the cursor to the leaf covering the cell, reporting
// the hit leaf's key.
func (g *Grid) SelectAt(x, y int) (string, bool) {
	for li, ti := range g.leaves {
		if g.tiles[ti].Rect.contains(x, y) {
			g.sel = li
			return g.tiles[ti].Node.LeafKey, true
		}
	}
	return "", false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
