package editor

import (
	"fmt"

	"hexedit/internal/buffer"
	"hexedit/internal/config"
	"hexedit/internal/hexedit"
	"hexedit/internal/log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewConfig
	ViewFind
	ViewGoto
	ViewOpen
	ViewSaveAs
	ViewConfirmQuit
	ViewConfirmClose
	ViewFileSavePrompt
	ViewFileChangedPrompt
)

// Rows taken by the legend and the tab bar above the hex view.
const chromeTop = 2

type Model struct {
	tabs      []*Tab
	activeTab int
	view      View
	bigEndian bool
	clipboard []byte
	width     int
	height    int

	config     *config.Config
	configPath string
	styles     *config.Styles
	keys       Keys

	find           finder
	gotoPrompt     prompt
	browser        browser
	saveAsPrompt   prompt
	closeAfterSave bool

	// Config view state
	configIndex   int
	configInputs  []string
	configChanged bool

	statusMsg string
	statusErr bool
}

// NewModel opens files in tabs. With no files the file browser is shown.
// configPath is where the config view saves to; empty means the default.
func NewModel(cfg *config.Config, configPath string, files []string) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Model{
		view:         ViewMain,
		bigEndian:    true,
		config:       cfg,
		configPath:   configPath,
		styles:       config.NewStyles(&cfg.Theme),
		keys:         DefaultKeys(),
		find:         newFinder(),
		gotoPrompt:   newPrompt("0x", 18),
		saveAsPrompt: newPrompt("file name", 0),
	}
	m.gotoPrompt.accept = func(r rune) bool { return isHexDigit(r) || r == 'x' || r == 'X' }

	if len(files) == 0 {
		m.openBrowser()
	}
	for _, f := range files {
		if err := m.openFile(f); err != nil {
			m.closeAll()
			return nil, fmt.Errorf("failed to open %s: %w", f, err)
		}
	}
	return m, nil
}

// Keys returns the program key bindings.
func (m *Model) Keys() Keys {
	return m.keys
}

func (m *Model) openFile(name string) error {
	t, err := openTab(m.config, name)
	if err != nil {
		log.ErrorErr(log.CatFile, "open failed", err, "name", name)
		return err
	}
	m.addTab(t)
	return nil
}

func (m *Model) newFile() {
	t, err := newTab(m.config, buffer.NewFile())
	if err != nil {
		m.setError(err)
		return
	}
	m.addTab(t)
}

func (m *Model) addTab(t *Tab) {
	t.view.SetBorderStyle(m.styles.FocusBorder, m.styles.Caption)
	m.tabs = append(m.tabs, t)
	m.sizeTab(t)
	m.activate(len(m.tabs) - 1)
}

// activate makes tab i the focused one.
func (m *Model) activate(i int) {
	if cur := m.currentTab(); cur != nil {
		cur.view.Blur()
	}
	m.activeTab = i
	if cur := m.currentTab(); cur != nil {
		cur.view.Focus()
	}
}

func (m *Model) currentTab() *Tab {
	if len(m.tabs) == 0 || m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.activeTab]
}

// editorHeight is the outer height of the hex view: the screen minus the
// legend, tab bar, decoder panel and status line.
func (m *Model) editorHeight() int {
	return max(m.height-chromeTop-decoderLines-1, 3)
}

func (m *Model) sizeTab(t *Tab) {
	if m.width == 0 || m.height == 0 {
		return
	}
	t.view.SetSize(m.width, m.editorHeight())
	t.view.SetOrigin(0, chromeTop)
}

func (m *Model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusErr = true
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, t := range m.tabs {
			m.sizeTab(t)
		}
		log.Debug(log.CatUI, "resize", "width", msg.Width, "height", msg.Height)
		return m, nil

	case tea.MouseMsg:
		if tab := m.currentTab(); tab != nil && m.view == ViewMain {
			tab.view.Update(msg)
			m.syncSelection(tab)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.statusErr = false

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewConfig:
		return m.handleConfigKey(msg)
	case ViewFind:
		return m.handleFindKey(msg)
	case ViewGoto:
		return m.handleGotoKey(msg)
	case ViewOpen:
		return m.handleOpenKey(msg)
	case ViewSaveAs:
		return m.handleSaveAsKey(msg)
	case ViewConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	case ViewConfirmClose:
		return m.handleConfirmCloseKey(msg)
	case ViewFileSavePrompt:
		return m.handleFileSavePromptKey(msg)
	case ViewFileChangedPrompt:
		return m.handleFileChangedPromptKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.tryQuit()
	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		return m, nil
	case key.Matches(msg, m.keys.Config):
		m.openConfig()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.openBrowser()
		return m, nil
	case key.Matches(msg, m.keys.New):
		m.newFile()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		if len(m.tabs) > 1 {
			m.activate((m.activeTab + 1) % len(m.tabs))
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		if len(m.tabs) > 1 {
			m.activate((m.activeTab - 1 + len(m.tabs)) % len(m.tabs))
		}
		return m, nil
	}

	tab := m.currentTab()
	if tab == nil {
		return m, nil
	}
	defer tab.syncCaption()

	c := tab.ctrl()
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.trySave()
	case key.Matches(msg, m.keys.SaveAs):
		m.openSaveAs(tab.file.Name(), false)
	case key.Matches(msg, m.keys.Close):
		return m.tryCloseTab()
	case key.Matches(msg, m.keys.Find):
		m.openFind()
	case key.Matches(msg, m.keys.FindNext):
		m.findNext()
	case key.Matches(msg, m.keys.Goto):
		m.openGoto()
	case key.Matches(msg, m.keys.Endian):
		m.bigEndian = !m.bigEndian
	case key.Matches(msg, m.keys.WordSize):
		next := c.BytesPerWord() * 2
		if next > 8 {
			next = 1
		}
		if err := c.SetBytesPerWord(next); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, m.keys.OffsetWidth):
		m.cycleOffsetWidth(c)
	case key.Matches(msg, m.keys.ReadOnly):
		c.SetReadOnly(!c.ReadOnly())
	case key.Matches(msg, m.keys.Copy):
		m.copy()
	case key.Matches(msg, m.keys.Cut):
		m.cut()
	case key.Matches(msg, m.keys.Paste):
		m.paste()
	case key.Matches(msg, m.keys.SelectLeft):
		tab.extendSelection(-1)
	case key.Matches(msg, m.keys.SelectRight):
		tab.extendSelection(1)
	case key.Matches(msg, m.keys.SelectUp):
		tab.extendSelection(-int64(c.Layout().BytesPerLine))
	case key.Matches(msg, m.keys.SelectDown):
		tab.extendSelection(int64(c.Layout().BytesPerLine))
	case msg.Type == tea.KeyDelete && c.SelectionActive():
		m.deleteSelection()
	default:
		tab.view.Update(msg)
		m.syncSelection(tab)
	}
	return m, nil
}

// syncSelection forgets the shift+arrow anchor once the control has dropped
// the selection.
func (m *Model) syncSelection(tab *Tab) {
	if !tab.ctrl().SelectionActive() {
		tab.anchor = -1
	}
}

func (m *Model) cycleOffsetWidth(c *hexedit.Control) {
	var next hexedit.Style
	switch {
	case c.Style()&hexedit.StyleOffset32 != 0:
		next = hexedit.StyleOffset64
	case c.Style()&hexedit.StyleOffset64 != 0:
		next = 0
	default:
		next = hexedit.StyleOffset32
	}
	if err := c.SetStyle(next); err != nil {
		m.setError(err)
	}
}

func (m *Model) tryQuit() (tea.Model, tea.Cmd) {
	for _, tab := range m.tabs {
		if tab.Modified() {
			m.view = ViewConfirmQuit
			return m, nil
		}
	}
	return m.quit()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	log.Info(log.CatUI, "quit", "tabs", len(m.tabs))
	m.closeAll()
	return m, tea.Quit
}

func (m *Model) closeAll() {
	for _, t := range m.tabs {
		t.close()
	}
	m.tabs = nil
}

func (m *Model) trySave() (tea.Model, tea.Cmd) {
	tab := m.currentTab()
	if tab == nil {
		return m, nil
	}

	if tab.file.IsNew() || tab.file.Name() == "" {
		m.openSaveAs("", false)
		return m, nil
	}

	changed, err := tab.file.ChangedOnDisk()
	if err != nil {
		log.Warn(log.CatFile, "change check failed", "name", tab.file.Name(), "error", err)
	}
	if err == nil && changed {
		m.view = ViewFileChangedPrompt
		return m, nil
	}

	m.saveTab(tab)
	return m, nil
}

func (m *Model) saveTab(tab *Tab) bool {
	if err := tab.save(); err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "name", tab.file.Name())
		m.setError(err)
		return false
	}
	m.setStatus("File saved")
	return true
}

func (m *Model) tryCloseTab() (tea.Model, tea.Cmd) {
	tab := m.currentTab()
	if tab == nil {
		return m, nil
	}
	if tab.Modified() {
		m.view = ViewConfirmClose
		return m, nil
	}
	return m.closeCurrentTab()
}

func (m *Model) closeCurrentTab() (tea.Model, tea.Cmd) {
	tab := m.currentTab()
	if tab == nil {
		return m, nil
	}
	tab.close()

	m.tabs = append(m.tabs[:m.activeTab], m.tabs[m.activeTab+1:]...)
	m.view = ViewMain
	if len(m.tabs) == 0 {
		// Show the file browser instead of quitting
		m.openBrowser()
		return m, nil
	}
	m.activate(min(m.activeTab, len(m.tabs)-1))
	return m, nil
}

func (m *Model) copy() {
	tab := m.currentTab()
	if tab == nil {
		return
	}
	c := tab.ctrl()
	if p, ok := c.SelectedData(); ok {
		m.clipboard = p
	} else if b, ok := c.ByteAt(tab.cursor); ok {
		m.clipboard = []byte{b}
	} else {
		return
	}
	m.setStatus("%d bytes copied", len(m.clipboard))
}

func (m *Model) cut() {
	tab := m.currentTab()
	if tab == nil {
		return
	}
	if tab.ctrl().ReadOnly() {
		m.setError(hexedit.ErrReadOnly)
		return
	}
	m.copy()
	if tab.ctrl().SelectionActive() {
		m.deleteSelection()
		return
	}
	if err := tab.ctrl().DeleteData(tab.cursor, 1); err == nil {
		tab.ctrl().SetModified(true)
	}
}

func (m *Model) deleteSelection() {
	tab := m.currentTab()
	c := tab.ctrl()
	if c.ReadOnly() {
		m.setError(hexedit.ErrReadOnly)
		return
	}
	sel, ok := c.Selection()
	if !ok {
		return
	}
	c.ClearSelection()
	tab.anchor = -1
	if err := c.DeleteData(sel.First, sel.Len()); err != nil {
		m.setError(err)
		return
	}
	c.SetModified(true)
	tab.moveTo(sel.First)
	log.Debug(log.CatEdit, "delete", "offset", sel.First, "bytes", sel.Len())
}

// paste inserts the clipboard at the cursor in insert mode. In overwrite mode
// it replaces bytes and appends whatever runs past the end.
func (m *Model) paste() {
	tab := m.currentTab()
	if tab == nil || len(m.clipboard) == 0 {
		return
	}
	c := tab.ctrl()
	if c.ReadOnly() {
		m.setError(hexedit.ErrReadOnly)
		return
	}
	c.ClearSelection()
	tab.anchor = -1

	off := max(0, min(tab.cursor, c.Len()))
	var err error
	if c.InsertMode() {
		err = c.InsertData(off, m.clipboard)
	} else {
		fit := max(0, min(int64(len(m.clipboard)), c.Len()-off))
		if fit > 0 {
			err = c.ReplaceData(off, m.clipboard[:fit])
		}
		if err == nil && fit < int64(len(m.clipboard)) {
			err = c.InsertData(c.Len(), m.clipboard[fit:])
		}
	}
	if err != nil {
		log.ErrorErr(log.CatEdit, "paste failed", err, "offset", off, "bytes", len(m.clipboard))
		m.setError(err)
		return
	}
	c.SetModified(true)
	tab.moveTo(min(off+int64(len(m.clipboard)), c.Len()))
	log.Debug(log.CatEdit, "paste", "offset", off, "bytes", len(m.clipboard))
}
