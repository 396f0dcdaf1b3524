package editor

import (
	"fmt"
	"strings"

	"hexedit/internal/hexedit"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	switch m.view {
	case ViewHelp:
		b.WriteString(m.renderHelp())
	case ViewConfig:
		b.WriteString(m.renderConfig())
	case ViewFind:
		b.WriteString(m.renderFind())
	case ViewGoto:
		b.WriteString(m.renderGoto())
	case ViewOpen:
		b.WriteString(m.renderOpen())
	case ViewSaveAs:
		b.WriteString(m.renderSaveAs())
	case ViewConfirmQuit:
		b.WriteString(m.renderConfirmDialog("Some tabs have unsaved changes. Quit? [y/n]"))
	case ViewConfirmClose:
		b.WriteString(m.renderConfirmDialog("Save this tab before closing it? [y/n, esc stays]"))
	case ViewFileSavePrompt:
		b.WriteString(m.renderConfirmDialog("Write the theme to the config file? [y/n]"))
	case ViewFileChangedPrompt:
		b.WriteString(m.renderConfirmDialog("The file changed on disk since it was opened. Overwrite? [y/n]"))
	default:
		b.WriteString(m.renderMainView())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderLegend() string {
	var items []string
	entry := func(k, desc string) string {
		return m.styles.LegendHighlight.Render(k) + m.styles.Legend.Render(" "+desc)
	}

	switch m.view {
	case ViewMain:
		for _, b := range m.keys.ShortHelp() {
			items = append(items, entry(b.Help().Key, b.Help().Desc))
		}
		paste := m.keys.Paste.Help()
		if len(m.clipboard) > 0 {
			items = append(items, entry(paste.Key, paste.Desc))
		} else {
			items = append(items, m.styles.Disabled.Render(paste.Key+" "+paste.Desc))
		}
	default:
		items = append(items, entry("ESC", "Back"))
	}

	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	return m.styles.Legend.Width(m.width).MaxHeight(1).Render(legend)
}

func (m *Model) renderMainView() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	tab := m.currentTab()
	if tab == nil {
		b.WriteString("\nNo file open. Press ^O to open a file or ^N for a new file.\n")
		return b.String()
	}

	tab.syncCaption()
	b.WriteString(tab.view.View())
	b.WriteString("\n")
	b.WriteString(m.renderDecoder())
	return b.String()
}

func (m *Model) renderTabs() string {
	if len(m.tabs) == 0 {
		return ""
	}

	var tabs []string
	for i, tab := range m.tabs {
		name := tab.Name()
		style := m.styles.InactiveTab
		if i == m.activeTab {
			style = m.styles.ActiveTab
		}
		if tab.Modified() {
			name = "*" + name
			if i != m.activeTab {
				style = m.styles.UnsavedFile
			}
		}
		tabs = append(tabs, style.Render(name))
	}
	return strings.Join(tabs, " | ")
}

// renderStatus shows the last message on the left and the cursor state on the
// right, cut to the screen width.
func (m *Model) renderStatus() string {
	msg := m.statusMsg
	msgStyle := m.styles.Normal
	if m.statusErr {
		msgStyle = m.styles.Error
	}

	var info string
	if tab := m.currentTab(); tab != nil {
		c := tab.ctrl()
		mode := "OVR"
		if c.InsertMode() {
			mode = "INS"
		}
		info = fmt.Sprintf("0x%08X/0x%08X %3d%% %s %dB", tab.cursor, c.Len(), c.CursorPercent(), mode, c.BytesPerWord())
		if c.ReadOnly() {
			info += " RO"
		}
		if sel, ok := c.Selection(); ok {
			info = fmt.Sprintf("sel %d ", sel.Len()) + info
		}
	}

	room := m.width - runewidth.StringWidth(info) - 1
	if room < 0 {
		return runewidth.Truncate(info, m.width, "…")
	}
	msg = runewidth.Truncate(msg, room, "…")
	pad := strings.Repeat(" ", room-runewidth.StringWidth(msg)+1)
	return msgStyle.Render(msg) + pad + m.styles.DecoderLabel.Render(info)
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.HelpTitle.Render("hexedit HELP"))
	b.WriteString("\n\n")

	section := func(title string, bindings []key.Binding) {
		b.WriteString(m.styles.HelpTitle.Render(title))
		b.WriteString("\n")
		for _, k := range bindings {
			h := k.Help()
			b.WriteString("  ")
			b.WriteString(m.styles.HelpKey.Render(fmt.Sprintf("%-8s", h.Key)))
			b.WriteString(m.styles.HelpDesc.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	titles := []string{"Files", "Editing", "View"}
	for i, group := range m.keys.FullHelp() {
		section(titles[i], group)
	}

	nav := m.currentKeyMap()
	section("Hex view", []key.Binding{nav.Up, nav.PageUp, nav.Home, nav.Start, nav.Insert, nav.Delete, nav.Commit})

	b.WriteString("Type hex digits in the hex column or text in the character column.\n")
	b.WriteString("Hold Alt and type a code on the digits, Enter to finish: 0nnn is ANSI,\n")
	b.WriteString("+hhhh is Unicode, anything else OEM.\n\n")
	b.WriteString(m.hint("esc or F1 returns to the editor"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) currentKeyMap() hexedit.KeyMap {
	if tab := m.currentTab(); tab != nil {
		return tab.view.KeyMap()
	}
	return hexedit.DefaultKeyMap()
}

// dialog stacks a title and body lines under a blank row.
func (m *Model) dialog(title string, lines ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.HelpTitle.Render(title))
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) hint(s string) string {
	return m.styles.Disabled.Render(s)
}

// marker points at the focused row of a list.
func marker(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}

func (m *Model) renderConfig() string {
	rows := make([]string, 0, len(themeFields)+2)
	for i, f := range themeFields {
		value := m.configInputs[i]
		if i == m.configIndex {
			value = m.styles.HelpKey.Render(value + "_")
		}
		rows = append(rows, fmt.Sprintf("%s%-20s %s", marker(i == m.configIndex), f.label, value))
	}
	rows = append(rows, "", m.hint("up/down pick a field, type to change it, esc leaves"))
	return m.dialog("Theme", rows...)
}

func (m *Model) renderFind() string {
	f := &m.find
	rows := make([]string, 0, numFindModes+4)
	for mode := findASCII; mode < numFindModes; mode++ {
		line := marker(mode == f.mode) + fmt.Sprintf("%-8s", mode.String())
		if mode == f.mode {
			line += f.prompt.View()
			if mode == findDecimal {
				line += m.hint(fmt.Sprintf("  %d-byte %s", f.width, m.endianName()))
			}
		}
		rows = append(rows, line)
	}
	rows = append(rows,
		"",
		fmt.Sprintf("%d match(es)", f.matches),
		"",
		m.hint("up/down mode, left/right decimal width, enter finds next"),
	)
	return m.dialog("Find", rows...)
}

func (m *Model) endianName() string {
	if m.bigEndian {
		return "big endian"
	}
	return "little endian"
}

func (m *Model) renderGoto() string {
	return m.dialog("Go to offset",
		"Offset "+m.gotoPrompt.View(),
		"",
		m.hint("decimal, or hex after 0x; enter jumps"),
	)
}

func (m *Model) renderOpen() string {
	b := &m.browser
	buttons := []string{"[ This tab ]", "[ New tab ]"}
	for i := range buttons {
		if browserFocus(i+1) == b.focus {
			buttons[i] = m.styles.HelpKey.Render(buttons[i])
		}
	}
	return m.dialog("Open "+b.dir,
		b.render(max(m.height-10, 5)),
		strings.Join(buttons, " "),
		m.hint("tab switches between the list and the buttons"),
	)
}

func (m *Model) renderSaveAs() string {
	return m.dialog("Save as",
		"Name "+m.saveAsPrompt.View(),
		"",
		m.hint("enter writes the file, esc cancels"),
	)
}

func (m *Model) renderConfirmDialog(message string) string {
	return m.styles.Border.
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(message)
}
