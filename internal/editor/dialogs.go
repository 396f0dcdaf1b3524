package editor

import (
	"hexedit/internal/log"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape, tea.KeyF1:
		m.view = ViewMain
	}
	return m, nil
}

// openSaveAs asks for a file name. With thenClose the tab closes once saved.
func (m *Model) openSaveAs(name string, thenClose bool) {
	m.view = ViewSaveAs
	m.saveAsPrompt.reset(name)
	m.closeAfterSave = thenClose
}

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
		m.closeAfterSave = false
		return m, nil
	case tea.KeyEnter:
	default:
		m.saveAsPrompt.update(msg)
		return m, nil
	}

	tab := m.currentTab()
	name := m.saveAsPrompt.Value()
	if tab == nil || name == "" {
		return m, nil
	}
	if err := tab.saveAs(name); err != nil {
		log.ErrorErr(log.CatFile, "save as failed", err, "name", name)
		m.setError(err)
		return m, nil
	}
	m.setStatus("File saved")
	m.view = ViewMain
	if m.closeAfterSave {
		m.closeAfterSave = false
		return m.closeCurrentTab()
	}
	return m, nil
}

// answer reads a y/n key. Escape is reported as cancel.
type answer int

const (
	answerNone answer = iota
	answerYes
	answerNo
	answerCancel
)

func readAnswer(msg tea.KeyMsg) answer {
	if msg.Type == tea.KeyEscape {
		return answerCancel
	}
	switch msg.String() {
	case "y", "Y":
		return answerYes
	case "n", "N":
		return answerNo
	}
	return answerNone
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch readAnswer(msg) {
	case answerYes:
		return m.quit()
	case answerNo, answerCancel:
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleConfirmCloseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch readAnswer(msg) {
	case answerNo:
		return m.closeCurrentTab()
	case answerCancel:
		m.view = ViewMain
	case answerYes:
		tab := m.currentTab()
		switch {
		case tab == nil:
			m.view = ViewMain
		case tab.file.IsNew():
			m.openSaveAs("", true)
		case m.saveTab(tab):
			return m.closeCurrentTab()
		default:
			m.view = ViewMain
		}
	}
	return m, nil
}

func (m *Model) handleFileSavePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch readAnswer(msg) {
	case answerYes:
		m.saveConfig()
		m.view = ViewMain
	case answerNo:
		m.view = ViewMain
	case answerCancel:
		m.view = ViewConfig
	}
	return m, nil
}

func (m *Model) handleFileChangedPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch readAnswer(msg) {
	case answerYes:
		if tab := m.currentTab(); tab != nil {
			m.saveTab(tab)
		}
		m.view = ViewMain
	case answerNo, answerCancel:
		m.view = ViewMain
	}
	return m, nil
}
