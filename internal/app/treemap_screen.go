package app

import (
	tea "charm.land/bubbletea/v2"

	"ctxmap/internal/contextmap"
	"ctxmap/internal/treemap"
)

// treemapAction tells the model what a handled treemap event asks of it.
type treemapAction int

const (
	treemapActionNone treemapAction = iota
	treemapActionInspect
)

// TreemapController owns the laid-out map and its selection cursor.
// Status and help lines belong to the model; this renders the body.
type TreemapController struct {
	grid   *treemap.Grid
	width  int
	height int
}

func NewTreemapController(width, height int) *TreemapController {
	grid := treemap.NewGrid()
	grid.SetSize(max(1, width), max(1, height))
	return &TreemapController{grid: grid, width: width, height: height}
}

// SetTree swaps the rendered tree, keeping the selection when its leaf
// key survives into the new layout.
func (c *TreemapController) SetTree(root *contextmap.Node) {
	if c == nil {
		return
	}
	c.grid.SetTree(root)
}

func (c *TreemapController) SetSize(width, height int) {
	if c == nil {
		return
	}
	c.width = width
	c.height = height
	c.grid.SetSize(max(1, width), max(1, height))
}

// Selected returns the leaf under the cursor, or nil on an empty map.
func (c *TreemapController) Selected() *contextmap.Node {
	if c == nil {
		return nil
	}
	return c.grid.SelectedNode()
}

func (c *TreemapController) SelectedKey() string {
	if c == nil {
		return ""
	}
	return c.grid.SelectedKey()
}

func (c *TreemapController) Empty() bool {
	return c == nil || c.grid.Empty()
}

func (c *TreemapController) HandleKey(msg tea.KeyMsg) (bool, treemapAction) {
	if c == nil {
		return false, treemapActionNone
	}
	switch msg.String() {
	case "up", "k":
		c.grid.Move(treemap.DirUp)
	case "down", "j":
		c.grid.Move(treemap.DirDown)
	case "left", "h":
		c.grid.Move(treemap.DirLeft)
	case "right", "l":
		c.grid.Move(treemap.DirRight)
	case "tab":
		c.grid.Next()
	case "shift+tab":
		c.grid.Prev()
	case "enter", "space":
		if c.grid.SelectedNode() == nil {
			return true, treemapActionNone
		}
		return true, treemapActionInspect
	default:
		return false, treemapActionNone
	}
	return true, treemapActionNone
}

// HandleMouse selects the clicked leaf. A click on the leaf that is
// already selected opens it, matching enter on the keyboard. The wheel
// cycles the cursor in paint order.
func (c *TreemapController) HandleMouse(msg tea.MouseMsg) (bool, treemapAction) {
	if c == nil {
		return false, treemapActionNone
	}
	switch msg.(type) {
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return false, treemapActionNone
		}
		if mouse.Y < 0 || mouse.Y >= c.height {
			return false, treemapActionNone
		}
		before := c.grid.SelectedKey()
		key, ok := c.grid.SelectAt(mouse.X, mouse.Y)
		if !ok {
			return true, treemapActionNone
		}
		if before != "" && key == before {
			return true, treemapActionInspect
		}
		return true, treemapActionNone
	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		switch mouse.Button {
		case tea.MouseWheelUp:
			c.grid.Prev()
		case tea.MouseWheelDown:
			c.grid.Next()
		default:
			return false, treemapActionNone
		}
		return true, treemapActionNone
	}
	return false, treemapActionNone
}

func (c *TreemapController) View() string {
	if c == nil {
		return ""
	}
	if c.grid.Empty() {
		lines := make([]string, max(1, c.height))
		lines[0] = " " + helpStyle.Render("session has no parts")
		return padLines(lines, c.width)
	}
	return c.grid.View(tileStyle, contextmap.FormatChars)
}
