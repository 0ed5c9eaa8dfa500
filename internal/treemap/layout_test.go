package treemap

import (
	"testing"

	"ctxmap/internal/contextmap"
)

func leaf(name string, value int, key string) *contextmap.Node {
	return &contextmap.Node{Name: name, Value: value, Layer: 2, LeafKey: key}
}

func TestLayoutTilesBoundsExactly(t *testing.T) {
	t.Parallel()

	root := &contextmap.Node{Name: "session", Children: []*contextmap.Node{
		leaf("a", 50, "0-0"),
		leaf("b", 30, "0-1"),
		leaf("c", 15, "0-2"),
		leaf("d", 5, "0-3"),
	}}
	bounds := Rect{W: 40, H: 12}
	tiles := Layout(root, bounds)
	if len(tiles) != 4 {
		t.Fatalf("expected 4 tiles, got %d", len(tiles))
	}

	covered := make(map[[2]int]int)
	for ti, tile := range tiles {
		r := tile.Rect
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				if !bounds.contains(x, y) {
					t.Fatalf("tile %d escapes bounds at %d,%d", ti, x, y)
				}
				if prev, dup := covered[[2]int{x, y}]; dup {
					t.Fatalf("cell %d,%d covered by tiles %d and %d", x, y, prev, ti)
				}
				covered[[2]int{x, y}] = ti
			}
		}
	}
	if len(covered) != bounds.W*bounds.H {
		t.Fatalf("expected full coverage %d cells, got %d", bounds.W*bounds.H, len(covered))
	}
}

func TestLayoutAreaTracksWeight(t *testing.T) {
	t.Parallel()

	root := &contextmap.Node{Children: []*contextmap.Node{
		leaf("big", 900, "0-0"),
		leaf("small", 100, "0-1"),
	}}
	tiles := Layout(root, Rect{W: 40, H: 10})
	areas := make(map[string]int)
	for _, tile := range tiles {
		areas[tile.Node.Name] = tile.Rect.W * tile.Rect.H
	}
	if areas["big"] <= areas["small"] {
		t.Fatalf("area should track weight: big=%d small=%d", areas["big"], areas["small"])
	}
	if areas["big"]+areas["small"] != 400 {
		t.Fatalf("areas must tile the bounds, got %d", areas["big"]+areas["small"])
	}
}

func TestLayoutSkipsZeroWeight(t *testing.T) {
	t.Parallel()

	root := &contextmap.Node{Children: []*contextmap.Node{
		{Name: "empty message", Layer: 1},
		leaf("text", 10, "1-0"),
		leaf("step-start", 0, "1-1"),
	}}
	tiles := Layout(root, Rect{W: 20, H: 5})
	if len(tiles) != 1 {
		t.Fatalf("expected only the weighted leaf, got %d tiles", len(tiles))
	}
	if tiles[0].Node.Name != "text" {
		t.Fatalf("unexpected tile %q", tiles[0].Node.Name)
	}
}

func TestLayoutNestedContainerReservesCaptionRow(t *testing.T) {
	t.Parallel()

	root := &contextmap.Node{Children: []*contextmap.Node{
		{
			Name:  "assistant:0 (last)",
			Layer: 1,
			Children: []*contextmap.Node{
				leaf("text", 60, "0-0"),
				leaf("tool:bash", 40, "0-1"),
			},
		},
	}}
	bounds := Rect{W: 30, H: 10}
	tiles := Layout(root, bounds)
	if len(tiles) != 3 {
		t.Fatalf("expected container + 2 leaves, got %d", len(tiles))
	}

	container := tiles[0]
	if container.Leaf {
		t.Fatalf("container tile marked leaf")
	}
	if container.Rect != bounds {
		t.Fatalf("single container should fill bounds, got %+v", container.Rect)
	}
	if container.Weight != 100 {
		t.Fatalf("container weight should sum leaves, got %d", container.Weight)
	}

	bodyCells := 0
	for _, tile := range tiles[1:] {
		if !tile.Leaf {
			t.Fatalf("expected leaves after container, got %+v", tile.Node)
		}
		if tile.Rect.Y < container.Rect.Y+1 {
			t.Fatalf("leaf %q invades the caption row: %+v", tile.Node.Name, tile.Rect)
		}
		bodyCells += tile.Rect.W * tile.Rect.H
	}
	if bodyCells != bounds.W*(bounds.H-1) {
		t.Fatalf("leaves must tile the body exactly, got %d cells", bodyCells)
	}
}

func TestLayoutTinyContainerSkipsChildren(t *testing.T) {
	t.Parallel()

	root := &contextmap.Node{Children: []*contextmap.Node{
		{
			Name:     "user:0",
			Layer:    1,
			Children: []*contextmap.Node{leaf("text", 10, "0-0")},
		},
	}}
	tiles := Layout(root, Rect{W: 10, H: 1})
	if len(tiles) != 1 {
		t.Fatalf("one-row container must not recurse, got %d tiles", len(tiles))
	}
}

func TestSplitSumsExactly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		length  int
		weights []int
	}{
		{length: 10, weights: []int{1, 1, 1}},
		{length: 7, weights: []int{3, 2, 2}},
		{length: 5, weights: []int{1000, 1}},
		{length: 1, weights: []int{2, 3}},
	}
	for _, tc := range tests {
		spans := split(tc.length, tc.weights)
		sum := 0
		for _, s := range spans {
			sum += s
		}
		if sum != tc.length {
			t.Fatalf("split(%d, %v) = %v, sums to %d", tc.length, tc.weights, spans, sum)
		}
	}
}
