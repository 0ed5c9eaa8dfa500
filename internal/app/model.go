package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"ctxmap/internal/contextmap"
	"ctxmap/internal/logging"
	"ctxmap/internal/types"
)

const (
	statusLinePadding   = 1
	defaultFetchTimeout = 30 * time.Second
	// The picker screen spends its first body row on a header line.
	pickerHeaderRows = 1
)

type screen int

const (
	screenPicker screen = iota
	screenTreemap
	screenDetail
)

// Options configure a Model beyond its API client.
type Options struct {
	// SessionID opens one session directly and skips the picker.
	SessionID string
	Grouping  contextmap.Grouping
	Control   contextmap.ControlSizing
	// FetchTimeout bounds each request the UI issues.
	FetchTimeout time.Duration
	Logger       logging.Logger
}

type Model struct {
	api     SessionAPI
	logger  logging.Logger
	timeout time.Duration

	grouping contextmap.Grouping
	control  contextmap.ControlSizing

	screen screen
	width  int
	height int

	picker *SessionPicker
	tiles  *TreemapController
	detail *DetailController

	hotkeys  []Hotkey
	resolver HotkeyResolver

	sessionID string
	session   *types.Session
	msgs      []types.Message
	root      *contextmap.Node
	index     contextmap.PartIndex
	total     int

	status    string
	statusErr bool
	fatalErr  error
}

func NewModel(api SessionAPI, opts Options) Model {
	grouping := opts.Grouping
	if grouping != contextmap.GroupingFlat {
		grouping = contextmap.GroupingType
	}
	control := opts.Control
	if control != contextmap.ControlSizingSerialized {
		control = contextmap.ControlSizingZero
	}
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	active := screenPicker
	status := "loading sessions..."
	if opts.SessionID != "" {
		active = screenTreemap
		status = "loading session..."
	}
	return Model{
		api:       api,
		logger:    logger,
		timeout:   timeout,
		grouping:  grouping,
		control:   control,
		screen:    active,
		picker:    NewSessionPicker(0, 0),
		tiles:     NewTreemapController(0, 0),
		detail:    NewDetailController(0, 0),
		hotkeys:   DefaultHotkeys(),
		resolver:  DefaultHotkeyResolver{},
		sessionID: opts.SessionID,
		status:    status,
	}
}

func Run(api SessionAPI, opts Options) error {
	model := NewModel(api, opts)
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Model); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

// Err reports the failure that ended the program, if any.
func (m *Model) Err() error {
	return m.fatalErr
}

func (m *Model) Init() tea.Cmd {
	if m.sessionID != "" {
		return tea.Batch(
			fetchSessionCmd(m.api, m.timeout, m.sessionID),
			fetchMessagesCmd(m.api, m.timeout, m.sessionID),
		)
	}
	return fetchSessionsCmd(m.api, m.timeout)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case sessionsMsg:
		return m.updateSessions(msg)
	case sessionMsg:
		return m.updateSession(msg)
	case messagesMsg:
		return m.updateMessages(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) updateSessions(msg sessionsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fatalErr = msg.err
		return m, tea.Quit
	}
	if len(msg.sessions) == 0 {
		m.fatalErr = errors.New("no sessions found")
		return m, tea.Quit
	}
	m.picker.SetSessions(msg.sessions, time.Now())
	m.setStatus(fmt.Sprintf("%d sessions", len(msg.sessions)), false)
	m.logger.Info("sessions listed", logging.F("count", len(msg.sessions)))
	return m, nil
}

// updateSession records session metadata when it arrives. A failure
// here only loses path relativization and the title, so the map keeps
// working with absolute paths.
func (m *Model) updateSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.sessionID {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("session metadata unavailable",
			logging.F("session", msg.id),
			logging.F("error", msg.err.Error()))
		return m, nil
	}
	m.session = msg.session
	if m.msgs != nil {
		m.rebuild()
	}
	return m, nil
}

func (m *Model) updateMessages(msg messagesMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.sessionID {
		return m, nil
	}
	if msg.err != nil {
		m.fatalErr = msg.err
		return m, tea.Quit
	}
	m.msgs = msg.messages
	m.detail.Reset()
	m.rebuild()
	m.screen = screenTreemap
	m.setStatus(fmt.Sprintf("%d messages, %s", len(m.msgs), contextmap.FormatChars(m.total)), false)
	m.logger.Info("session loaded",
		logging.F("session", msg.id),
		logging.F("messages", len(m.msgs)),
		logging.F("chars", m.total))
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	body := max(1, height-1)
	m.picker.SetSize(width, max(1, body-pickerHeaderRows))
	m.tiles.SetSize(width, body)
	m.detail.SetSize(width, body)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.screen {
	case screenPicker:
		return m.handlePickerKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleTreemapKey(msg)
	}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id := m.picker.SelectedID()
		if id == "" {
			return m, nil
		}
		return m, m.openSession(id)
	case "esc":
		// Esc first clears an active filter, a second one quits.
		if m.picker.HandleKey(msg) {
			return m, nil
		}
		return m, tea.Quit
	}
	m.picker.HandleKey(msg)
	return m, nil
}

func (m *Model) handleTreemapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s":
		m.screen = screenPicker
		m.setStatus("loading sessions...", false)
		return m, fetchSessionsCmd(m.api, m.timeout)
	case "g":
		m.toggleGrouping()
		return m, nil
	case "r":
		if m.sessionID == "" {
			return m, nil
		}
		return m, m.openSession(m.sessionID)
	}
	if handled, action := m.tiles.HandleKey(msg); handled && action == treemapActionInspect {
		m.openDetail()
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled, action := m.detail.HandleKey(msg)
	if !handled {
		return m, nil
	}
	switch action {
	case detailActionClose:
		m.screen = screenTreemap
	case detailActionCopy:
		m.copyWithStatus(m.detail.Raw(), "copied to clipboard")
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenPicker:
		return m.handlePickerMouse(msg)
	case screenDetail:
		m.detail.HandleMouse(msg)
		return m, nil
	default:
		if handled, action := m.tiles.HandleMouse(msg); handled && action == treemapActionInspect {
			m.openDetail()
		}
		return m, nil
	}
}

func (m *Model) handlePickerMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if handled, again := m.picker.HandleClick(mouse.Y - pickerHeaderRows); handled && again {
			if id := m.picker.SelectedID(); id != "" {
				return m, m.openSession(id)
			}
		}
		return m, nil
	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.picker.Move(-1)
		case tea.MouseWheelDown:
			m.picker.Move(1)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) openSession(id string) tea.Cmd {
	m.sessionID = id
	m.session = nil
	m.msgs = nil
	m.setStatus("loading session...", false)
	return tea.Batch(
		fetchSessionCmd(m.api, m.timeout, id),
		fetchMessagesCmd(m.api, m.timeout, id),
	)
}

func (m *Model) openDetail() {
	node := m.tiles.Selected()
	if node == nil {
		return
	}
	part, ok := m.index[node.LeafKey]
	if !ok {
		return
	}
	m.detail.Open(node, part)
	m.screen = screenDetail
}

func (m *Model) rebuild() {
	root, index := contextmap.Build(m.msgs, contextmap.Config{
		Grouping: m.grouping,
		Control:  m.control,
		Root:     m.rootPath(),
	})
	m.root = root
	m.index = index
	m.total = contextmap.Total(root)
	m.tiles.SetTree(root)
}

func (m *Model) rootPath() string {
	if m.session == nil {
		return ""
	}
	return m.session.Directory
}

// toggleGrouping reshapes the tree in place. The cursor stays on the
// same part because leaf keys are stable across groupings.
func (m *Model) toggleGrouping() {
	if m.grouping == contextmap.GroupingFlat {
		m.grouping = contextmap.GroupingType
	} else {
		m.grouping = contextmap.GroupingFlat
	}
	if m.msgs != nil {
		m.rebuild()
	}
	m.setStatus("grouping: "+string(m.grouping), false)
}

func (m *Model) copyWithStatus(text, success string) bool {
	if strings.TrimSpace(text) == "" {
		m.setStatus("nothing to copy", false)
		return false
	}
	if _, err := copyTextToClipboard(text); err != nil {
		m.setStatus("copy failed: "+err.Error(), true)
		return false
	}
	m.setStatus(success, false)
	return true
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusErr = isError
}

func (m *Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = renderPanicView(r, debug.Stack(), m.width, m.height)
		}
	}()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	body := fitHeight(m.bodyView(), m.height-1)
	help, status := m.statusLineParts()
	return lipgloss.JoinVertical(lipgloss.Left, body, renderStatusLine(m.width, help, status))
}

func (m *Model) bodyView() string {
	switch m.screen {
	case screenPicker:
		return headerStyle.Render("sessions") + "\n" + m.picker.View()
	case screenDetail:
		return m.detail.View()
	default:
		return m.tiles.View()
	}
}

func (m *Model) statusLineParts() (string, string) {
	helpText := renderHotkeys(m.hotkeys, m.resolver.ActiveContexts(m))
	if helpText == "" {
		helpText = "ctrl+c quit"
	}
	parts := make([]string, 0, 2)
	if m.screen != screenPicker && m.session != nil {
		parts = append(parts, truncateLine(m.session.DisplayTitle(), 48))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	return helpStyle.Render(helpText), style.Render(strings.Join(parts, " • "))
}

func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	padding := width - lipgloss.Width(help) - lipgloss.Width(status)
	if padding < statusLinePadding {
		padding = statusLinePadding
	}
	return help + strings.Repeat(" ", padding) + status
}

func fitHeight(body string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderPanicView replaces the frame when drawing fails. Update keeps
// running, so quit keys still work and a resize can redraw cleanly.
func renderPanicView(cause any, stack []byte, width, height int) string {
	title := errorTitleStyle.Render(fmt.Sprintf("render failed: %v", cause))
	hint := helpStyle.Render("ctrl+c quit")
	body := errorBodyStyle.Render(strings.TrimRight(string(stack), "\n"))
	view := title + "\n\n" + body + "\n\n" + hint
	if width > 0 {
		view = xansi.Hardwrap(view, width, true)
	}
	if height > 0 {
		view = fitHeight(view, height)
	}
	return view
}
