package editor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"hexedit/internal/log"

	tea "github.com/charmbracelet/bubbletea"
)

// browserFocus is the part of the open dialog that takes Enter.
type browserFocus int

const (
	focusList browserFocus = iota
	focusThisTab
	focusNewTab
	numBrowserFocus
)

// browser lists one directory: ".." first, then folders, then files.
type browser struct {
	dir     string
	entries []fs.DirEntry
	index   int
	focus   browserFocus
}

type upEntry struct{}

func (upEntry) Name() string               { return ".." }
func (upEntry) IsDir() bool                { return true }
func (upEntry) Type() fs.FileMode          { return fs.ModeDir }
func (upEntry) Info() (fs.FileInfo, error) { return nil, nil }

func byName(a, b fs.DirEntry) int { return strings.Compare(a.Name(), b.Name()) }

// chdir lists dir. On error the old listing is kept.
func (b *browser) chdir(dir string) error {
	dir = filepath.Clean(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	folders := slices.DeleteFunc(slices.Clone(entries), func(e fs.DirEntry) bool { return !e.IsDir() })
	files := slices.DeleteFunc(entries, fs.DirEntry.IsDir)
	slices.SortFunc(folders, byName)
	slices.SortFunc(files, byName)

	b.entries = b.entries[:0]
	if filepath.Dir(dir) != dir {
		b.entries = append(b.entries, upEntry{})
	}
	b.entries = append(b.entries, folders...)
	b.entries = append(b.entries, files...)
	b.dir = dir
	b.index = 0
	return nil
}

func (b *browser) selected() (fs.DirEntry, bool) {
	if b.index < 0 || b.index >= len(b.entries) {
		return nil, false
	}
	return b.entries[b.index], true
}

func (b *browser) move(delta int) {
	if b.focus != focusList || len(b.entries) == 0 {
		return
	}
	b.index = max(0, min(b.index+delta, len(b.entries)-1))
}

// render draws at most rows entries, scrolled to keep the selection visible.
func (b *browser) render(rows int) string {
	var sb strings.Builder
	top := max(0, b.index-rows+1)
	end := min(len(b.entries), top+rows)
	for i, e := range b.entries[top:end] {
		mark := "  "
		if top+i == b.index && b.focus == focusList {
			mark = "> "
		}
		name := e.Name()
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		fmt.Fprintf(&sb, "%s%s\n", mark, name)
	}
	return sb.String()
}

func (m *Model) openBrowser() {
	m.view = ViewOpen
	m.browser.focus = focusList
	cwd, err := os.Getwd()
	if err == nil {
		err = m.browser.chdir(cwd)
	}
	if err != nil {
		log.ErrorErr(log.CatFile, "list directory", err, "path", cwd)
		m.setError(err)
	}
}

func (m *Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser
	switch msg.Type {
	case tea.KeyEscape:
		if len(m.tabs) > 0 {
			m.view = ViewMain
		}
	case tea.KeyCtrlQ:
		return m.tryQuit()
	case tea.KeyUp:
		b.move(-1)
	case tea.KeyDown:
		b.move(1)
	case tea.KeyPgUp:
		b.move(-10)
	case tea.KeyPgDown:
		b.move(10)
	case tea.KeyLeft:
		b.focus = max(focusList, b.focus-1)
	case tea.KeyRight:
		b.focus = min(focusNewTab, b.focus+1)
	case tea.KeyTab:
		b.focus = (b.focus + 1) % numBrowserFocus
	case tea.KeyEnter:
		m.browserEnter()
	}
	return m, nil
}

// browserEnter descends into folders from the list and opens files.
func (m *Model) browserEnter() {
	e, ok := m.browser.selected()
	if !ok {
		return
	}
	path := filepath.Join(m.browser.dir, e.Name())

	if e.IsDir() {
		if m.browser.focus != focusList {
			return
		}
		if err := m.browser.chdir(path); err != nil {
			log.ErrorErr(log.CatFile, "list directory", err, "path", path)
			m.setError(err)
		}
		return
	}

	cur := m.currentTab()
	if m.browser.focus != focusThisTab || cur == nil {
		if err := m.openFile(path); err != nil {
			m.setError(err)
			return
		}
		m.view = ViewMain
		return
	}

	if cur.Modified() {
		m.setStatus("Current tab has unsaved changes")
		return
	}
	t, err := openTab(m.config, path)
	if err != nil {
		m.setError(err)
		return
	}
	t.view.SetBorderStyle(m.styles.FocusBorder, m.styles.Caption)
	m.sizeTab(t)
	cur.close()
	m.tabs[m.activeTab] = t
	t.view.Focus()
	m.view = ViewMain
}
