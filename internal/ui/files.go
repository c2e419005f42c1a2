package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const emptyFilesText = "No files found in root"

// handleFilesKey drives the simulated FTP file browser. File operations only
// touch the filename listing.
func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	files := m.snapshot.Files
	n := len(files)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.fileCursor = clampIndex(m.fileCursor-1, n)
	case key.Matches(msg, m.keys.Down):
		m.fileCursor = clampIndex(m.fileCursor+1, n)
	case key.Matches(msg, m.keys.Top):
		m.fileCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.fileCursor = clampIndex(n-1, n)

	case key.Matches(msg, m.keys.Refresh):
		if m.store == nil {
			return m, nil
		}
		m.reportError(m.store.SelectSlot(m.snapshot.ActiveSlot))
		m.sync()

	case key.Matches(msg, m.keys.Rename):
		if n == 0 {
			return m, nil
		}
		m.modal = newPromptModal("Rename file", files[m.fileCursor], renameSubmit(files[m.fileCursor]))
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return m, nil
		}
		name := files[m.fileCursor]
		m.modal = newConfirmModal("Delete file", fmt.Sprintf("Delete %s?", name), func() tea.Msg {
			return deleteFileMsg{name: name}
		})
		return m, nil
	}
	return m, nil
}

// renameSubmit builds the prompt callback for renaming oldName. An empty or
// unchanged name sends nothing.
func renameSubmit(oldName string) func(string) tea.Msg {
	return func(value string) tea.Msg {
		newName := strings.TrimSpace(value)
		if newName == "" || newName == oldName {
			return nil
		}
		return renameFileMsg{oldName: oldName, newName: newName}
	}
}

// renderFiles renders the file listing for the active slot.
func (m Model) renderFiles() string {
	height := m.contentHeight()
	title := fmt.Sprintf("SSD %d / · %d files", m.snapshot.ActiveSlot, len(m.snapshot.Files))
	return m.renderTitledBox(title, m.renderFileList(m.width-2, height-2), m.width, height, true)
}

func (m Model) renderFileList(width, rows int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	header := bg.Render(padRight("FILENAME", max(width-10, 10))+padLeft("ACTIONS", 9), styles.FaintText)
	lines := []string{bg.FillLine(header, width)}

	files := m.snapshot.Files
	if len(files) == 0 {
		lines = append(lines, "", bg.FillLine(bg.Render(emptyFilesText, styles.MutedText.Italic(true)), width))
		return strings.Join(lines, "\n")
	}

	start := 0
	if visible := rows - 1; visible > 0 && m.fileCursor >= visible {
		start = m.fileCursor - visible + 1
	}
	for i := start; i < len(files) && len(lines) < rows; i++ {
		name := truncate(files[i], max(width-10, 10))
		if i == m.fileCursor {
			text := padRight(name, max(width-10, 10)) + padLeft("n/x", 9)
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		lines = append(lines, bg.FillLine(bg.Render(name, styles.Text), width))
	}
	return strings.Join(lines, "\n")
}
