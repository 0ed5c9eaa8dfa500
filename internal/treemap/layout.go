// Package treemap lays a weighted tree out as nested rectangles on a
// character grid and tracks which leaf the user has selected.
package treemap

import (
	"math"
	"sort"

	"ctxmap/internal/contextmap"
)

// Rect is a box in cell coordinates. W and H are widths in cells; a
// zero-area rect is legal and simply never drawn.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Tile is one placed node. Containers appear before their children in
// the slice, so painting in order keeps children on top.
type Tile struct {
	Node   *contextmap.Node
	Rect   Rect
	Weight int
	Leaf   bool
}

// Layout tiles root's descendants into bounds using the squarified
// algorithm. The root itself is not placed; zero-weight nodes get no
// area. Children always tile their parent's area exactly.
func Layout(root *contextmap.Node, bounds Rect) []Tile {
	if root == nil {
		return nil
	}
	weights := make(map[*contextmap.Node]int)
	weigh(root, weights)
	var tiles []Tile
	layoutLevel(root.Children, bounds, weights, &tiles)
	return tiles
}

func weigh(n *contextmap.Node, memo map[*contextmap.Node]int) int {
	sum := n.Value
	for _, c := range n.Children {
		sum += weigh(c, memo)
	}
	memo[n] = sum
	return sum
}

// captionRows is the space a container reserves for its own name
// before recursing; below minInnerW or minInnerH children are not laid
// out at all and the container renders as a plain block.
const (
	captionRows = 1
	minInnerW   = 3
	minInnerH   = 1
)

func layoutLevel(children []*contextmap.Node, r Rect, weights map[*contextmap.Node]int, tiles *[]Tile) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	items := make([]*contextmap.Node, 0, len(children))
	for _, c := range children {
		if weights[c] > 0 {
			items = append(items, c)
		}
	}
	if len(items) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return weights[items[i]] > weights[items[j]]
	})
	for _, p := range squarify(items, r, weights) {
		tile := Tile{Node: p.node, Rect: p.rect, Weight: weights[p.node], Leaf: len(p.node.Children) == 0}
		*tiles = append(*tiles, tile)
		if tile.Leaf {
			continue
		}
		inner := Rect{X: p.rect.X, Y: p.rect.Y + captionRows, W: p.rect.W, H: p.rect.H - captionRows}
		if inner.W >= minInnerW && inner.H >= minInnerH {
			layoutLevel(p.node.Children, inner, weights, tiles)
		}
	}
}

type placement struct {
	node *contextmap.Node
	rect Rect
}

// squarify fills r with one rectangle per item, row by row along the
// shorter side, extending each row while its worst aspect ratio keeps
// improving (Bruls, Huizing, van Wijk).
func squarify(items []*contextmap.Node, r Rect, weights map[*contextmap.Node]int) []placement {
	total := 0
	for _, it := range items {
		total += weights[it]
	}
	scale := float64(r.W) * float64(r.H) / float64(total)

	var out []placement
	rest := r
	restWeight := total
	i := 0
	for i < len(items) {
		side := float64(min(rest.W, rest.H))
		rowStart := i
		rowWeight := weights[items[i]]
		i++
		for i < len(items) {
			cur := items[rowStart:i]
			next := items[rowStart : i+1]
			if worstRatio(next, side, scale, weights) > worstRatio(cur, side, scale, weights) {
				break
			}
			rowWeight += weights[items[i]]
			i++
		}
		row := items[rowStart:i]

		// The row is stacked along the side it was optimized for, even
		// when rounding leaves the strip itself wider than tall.
		var strip Rect
		var vertical bool
		switch {
		case i >= len(items):
			strip = rest
			vertical = rest.W >= rest.H
			rest = Rect{}
		case rest.W >= rest.H:
			w := proportion(rest.W, rowWeight, restWeight)
			strip = Rect{X: rest.X, Y: rest.Y, W: w, H: rest.H}
			rest = Rect{X: rest.X + w, Y: rest.Y, W: rest.W - w, H: rest.H}
			vertical = true
		default:
			h := proportion(rest.H, rowWeight, restWeight)
			strip = Rect{X: rest.X, Y: rest.Y, W: rest.W, H: h}
			rest = Rect{X: rest.X, Y: rest.Y + h, W: rest.W, H: rest.H - h}
		}
		restWeight -= rowWeight

		rowWeights := make([]int, len(row))
		for j, it := range row {
			rowWeights[j] = weights[it]
		}
		if vertical {
			spans := split(strip.H, rowWeights)
			y := strip.Y
			for j, it := range row {
				out = append(out, placement{node: it, rect: Rect{X: strip.X, Y: y, W: strip.W, H: spans[j]}})
				y += spans[j]
			}
		} else {
			spans := split(strip.W, rowWeights)
			x := strip.X
			for j, it := range row {
				out = append(out, placement{node: it, rect: Rect{X: x, Y: strip.Y, W: spans[j], H: strip.H}})
				x += spans[j]
			}
		}
	}
	return out
}

// worstRatio is the worst rectangle aspect ratio a row would have if
// laid along a side of the given length.
func worstRatio(row []*contextmap.Node, side, scale float64, weights map[*contextmap.Node]int) float64 {
	sum, amin, amax := 0.0, math.MaxFloat64, 0.0
	for _, it := range row {
		a := float64(weights[it]) * scale
		sum += a
		amin = math.Min(amin, a)
		amax = math.Max(amax, a)
	}
	if sum == 0 || amin == 0 {
		return math.MaxFloat64
	}
	s2 := side * side
	return math.Max(s2*amax/(sum*sum), (sum*sum)/(s2*amin))
}

// proportion rounds length*num/den to cells, keeping at least one cell
// for a non-empty slice of a non-empty length.
func proportion(length, num, den int) int {
	if den <= 0 || length <= 0 {
		return 0
	}
	v := int(math.Round(float64(length) * float64(num) / float64(den)))
	if v < 1 {
		v = 1
	}
	if v > length {
		v = length
	}
	return v
}

// split carves length into proportional integer spans that add up to
// length exactly, handing remainder cells to the largest fractional
// parts first.
func split(length int, weights []int) []int {
	spans := make([]int, len(weights))
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || length <= 0 {
		return spans
	}
	type frac struct {
		idx  int
		part float64
	}
	used := 0
	fracs := make([]frac, len(weights))
	for i, w := range weights {
		exact := float64(length) * float64(w) / float64(total)
		spans[i] = int(exact)
		used += spans[i]
		fracs[i] = frac{idx: i, part: exact - float64(spans[i])}
	}
	sort.SliceStable(fracs, func(i, j int) bool { return fracs[i].part > fracs[j].part })
	for k := 0; k < length-used; k++ {
		spans[fracs[k%len(fracs)].idx]++
	}
	return spans
}
