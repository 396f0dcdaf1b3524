package hexedit

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultWheelLines is how far one wheel notch scrolls.
const DefaultWheelLines = 3

// Model hosts a Control inside a bubbletea program. It draws a border with the
// caption on its top edge and, for controls with a scroll bar, a track on the
// right.
type Model struct {
	ctrl *Control
	grid *Grid
	bar  *scrollBar

	keys       KeyMap
	wheelLines int

	width, height int
	originX       int
	originY       int

	border  lipgloss.Style
	caption lipgloss.Style
}

// NewModel creates the control from opts. Width and Height in opts are the
// outer size including the border.
func NewModel(opts Options) (*Model, error) {
	m := &Model{
		grid:       NewGrid(0, 0),
		bar:        &scrollBar{track: lipgloss.NewStyle().Faint(true)},
		keys:       DefaultKeyMap(),
		wheelLines: DefaultWheelLines,
		border:     lipgloss.NewStyle(),
		caption:    lipgloss.NewStyle().Bold(true),
	}
	outerW, outerH := opts.Width, opts.Height
	opts.Width, opts.Height = 0, 0
	opts.Surface = m.grid
	if opts.Style&StyleScrollbar != 0 {
		opts.ScrollBar = m.bar
	}
	c, err := New(opts)
	if err != nil {
		return nil, err
	}
	m.ctrl = c
	m.SetSize(outerW, outerH)
	return m, nil
}

// Control returns the wrapped control.
func (m *Model) Control() *Control {
	return m.ctrl
}

func (m *Model) KeyMap() KeyMap {
	return m.keys
}

func (m *Model) SetKeyMap(k KeyMap) {
	m.keys = k
}

func (m *Model) SetWheelLines(n int) {
	m.wheelLines = max(n, 1)
}

// SetBorderStyle sets the colours of the frame and of the caption.
func (m *Model) SetBorderStyle(border, caption lipgloss.Style) {
	m.border = border
	m.caption = caption
}

// SetOrigin tells the model where its top left corner is on screen so mouse
// coordinates can be mapped.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

func (m *Model) clientSize() (int, int) {
	w := m.width - 2
	if m.ctrl.HasScrollbar() {
		w--
	}
	return max(w, 0), max(m.height-2, 0)
}

// SetSize sets the outer size.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.ctrl.SetSize(m.clientSize())
}

func (m *Model) Size() (int, int) {
	return m.width, m.height
}

func (m *Model) Focus() {
	m.ctrl.HandleEvent(FocusChange{Focused: true})
}

func (m *Model) Blur() {
	m.commitNumeric()
	m.ctrl.HandleEvent(FocusChange{Focused: false})
}

func (m *Model) Focused() bool {
	return m.ctrl.Focused()
}

func (m *Model) Init() tea.Cmd { return nil }

// Update feeds one message to the control. Keys are ignored while the model
// is blurred.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.ctrl.Destroyed() {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ctrl.Focused() {
			m.updateKey(msg)
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	case tea.FocusMsg:
		m.Focus()
	case tea.BlurMsg:
		m.Blur()
	}
	return m, nil
}

// HandleKey feeds a key to the control and reports whether it was used.
func (m *Model) HandleKey(msg tea.KeyMsg) bool {
	return m.updateKey(msg)
}

func (m *Model) updateKey(msg tea.KeyMsg) bool {
	if m.ctrl.numeric.pending() {
		if key.Matches(msg, m.keys.Commit) {
			return m.commitNumeric()
		}
		if !msg.Alt {
			m.commitNumeric()
		}
	}
	handled := false
	for _, ev := range m.keys.translate(msg) {
		if m.ctrl.HandleEvent(ev) {
			handled = true
		}
	}
	return handled
}

// commitNumeric sends the Alt release that ends a keypad sequence.
func (m *Model) commitNumeric() bool {
	if !m.ctrl.numeric.pending() {
		return false
	}
	return m.ctrl.HandleEvent(KeyUp{Key: KeyAlt})
}

// updateMouse routes the wheel from anywhere in the frame, clicks in the
// client area to the cursor, and clicks or drags on the scroll bar column to
// the viewport.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	ox := msg.X - m.originX
	oy := msg.Y - m.originY
	if ox < 0 || oy < 0 || ox >= m.width || oy >= m.height {
		return
	}
	x, y := ox-1, oy-1
	cw, ch := m.clientSize()
	inRows := y >= 0 && y < ch

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.HandleEvent(MouseWheel{Lines: m.wheelLines, Up: true})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.HandleEvent(MouseWheel{Lines: m.wheelLines})
	case msg.Button != tea.MouseButtonLeft:
	case m.ctrl.HasScrollbar() && x == cw && inRows:
		if msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion {
			m.scrollTo(y, ch)
		}
	case msg.Action == tea.MouseActionPress && x >= 0 && x < cw && inRows:
		m.ctrl.HandleEvent(MouseDown{X: x, Y: y})
	}
}

// scrollTo maps row y of a track rows high onto the scroll range.
func (m *Model) scrollTo(y, rows int) {
	maxTop := m.ctrl.maxTop()
	top := int64(0)
	if rows > 1 {
		top = (int64(y)*maxTop + int64(rows-2)) / int64(rows-1)
	}
	m.ctrl.NotifyScrollChange(top)
}

// View paints pending changes and returns the framed control.
func (m *Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	m.ctrl.Paint()
	cw, ch := m.clientSize()

	body := m.grid.Render()
	if m.ctrl.HasScrollbar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.bar.render(ch))
	}
	inner := cw
	if m.ctrl.HasScrollbar() {
		inner++
	}

	b := lipgloss.NormalBorder()
	framed := m.border.
		Border(b, false, true, true, true).
		Render(body)
	return m.topEdge(b, inner) + "\n" + framed
}

// topEdge draws the upper border with the caption set into it.
func (m *Model) topEdge(b lipgloss.Border, inner int) string {
	caption := runewidth.Truncate(m.ctrl.Caption(), inner, "…")
	fill := inner - runewidth.StringWidth(caption)
	edge := lipgloss.NewStyle().Foreground(m.border.GetBorderTopForeground())
	return edge.Render(b.TopLeft) +
		m.caption.Render(caption) +
		edge.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}
