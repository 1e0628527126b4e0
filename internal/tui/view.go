package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"lszip/internal/analyze"
	"lszip/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	opaqueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

const helpContent = `lszip: archive content inspector

Navigation
  up/k, down/j   move selection
  enter, space   expand/collapse directory
  E              expand all directories
  C              collapse all directories

Search
  /              filter files by name
  esc            clear filter

Other
  r              re-analyze the archive
  ?              toggle this help
  q, ctrl+c      quit

Files with extensions java, txt, md, html, css, js are
decoded as text and line-counted. Everything else is
opaque: listed, sized, never decoded.`

func (m AppModel) View() string {
	if m.Loading {
		return fmt.Sprintf("\n  Analyzing %s... please wait.\n", m.ArchivePath)
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Cannot read archive: %v\n\n  Press q to quit.\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}
	if m.Result.Empty() {
		return fmt.Sprintf("\n  %s\n\n  No files found in this archive.\n\n  Press q to quit.\n",
			titleStyle.Render(m.Result.ArchiveName))
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2
	if interiorHeight < 2 {
		interiorHeight = 2
	}

	// LEFT PANEL: content tree
	var left strings.Builder
	left.WriteString(dirStyle.Render(model.RootName+"/") + "\n")

	visibleItems := interiorHeight - 1
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.Rows)
	if len(m.Rows) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - visibleItems/2
		}
		if startIdx+visibleItems > len(m.Rows) {
			startIdx = len(m.Rows) - visibleItems
		}
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		left.WriteString(m.renderRow(i, leftWidth-2))
		left.WriteString("\n")
	}

	leftBox := borderStyle.Width(leftWidth).Height(boxHeight).Render(left.String())

	// RIGHT PANEL: details of the selected node
	rightBox := borderStyle.Width(rightWidth).Height(boxHeight).Render(m.DetailsViewport.View())

	// HEADER / FOOTER
	header := titleStyle.Render("lszip: "+m.Result.ArchiveName) + "\n"
	footer := "\n" + m.renderSummaryLine() + "\n" + dimStyle.Render(m.renderHintLine())

	return header + lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox) + footer
}

func (m AppModel) renderRow(i, maxWidth int) string {
	r := m.Rows[i]
	indent := strings.Repeat("  ", r.Depth+1)

	var line string
	var style lipgloss.Style
	switch v := r.Node.(type) {
	case *model.Dir:
		icon := model.IconDirOpen
		if m.Collapsed[v.Path] && m.Filter == "" {
			icon = model.IconDirClosed
		}
		line = fmt.Sprintf("%s%s %s/", indent, icon, v.Name)
		style = dirStyle
	case *model.File:
		icon := model.IconOpaque
		style = opaqueStyle
		if v.Analyzable {
			icon = model.IconAnalyzable
			style = fileStyle
		}
		line = fmt.Sprintf("%s%s %s", indent, icon, v.Name)
	}

	if runes := []rune(line); len(runes) > maxWidth && maxWidth > 1 {
		line = string(runes[:maxWidth-1]) + "…"
	}
	if i == m.SelectedIdx {
		return selectedStyle.Render(line)
	}
	return style.Render(line)
}

// updateDetails refreshes the right panel for the current selection.
func (m *AppModel) updateDetails() {
	m.DetailsViewport.SetContent(m.renderDetails())
	m.DetailsViewport.GotoTop()
}

func (m *AppModel) renderDetails() string {
	if len(m.Rows) == 0 {
		if m.Filter != "" {
			return fmt.Sprintf("No file names match %q.", m.Filter)
		}
		return ""
	}
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.Rows) {
		return ""
	}

	var b strings.Builder
	switch v := m.Rows[m.SelectedIdx].Node.(type) {
	case *model.Dir:
		s := analyze.Summarize(v)
		b.WriteString(dirStyle.Render(v.Name+"/") + "\n\n")
		fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Path:"), v.Path)
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Files beneath:"), s.TotalFiles)
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Analyzable:"), s.AnalyzableFiles)
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Opaque:"), s.OpaqueFiles)
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Lines:"), s.TotalLines)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Size:"), humanize.Bytes(uint64(s.TotalSize)))
	case *model.File:
		b.WriteString(fileStyle.Render(v.Name) + "\n\n")
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Path:"), v.Path)
		ext := "." + v.Ext
		if v.Ext == "" {
			ext = "(none)"
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Extension:"), ext)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Size:"), humanize.Bytes(uint64(v.Size)))
		if v.Analyzable {
			fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Lines:"), v.LineCount)
			if len(v.Preview) > 0 {
				b.WriteString("\n" + labelStyle.Render("Preview:") + "\n")
				for _, line := range v.Preview {
					b.WriteString(dimStyle.Render("│ ") + line + "\n")
				}
			}
		} else {
			b.WriteString(dimStyle.Render("\nOpaque file: contents are never decoded.") + "\n")
		}
	}
	return b.String()
}

func (m AppModel) renderSummaryLine() string {
	s := m.Result.Summary
	line := fmt.Sprintf("  %d files · %d analyzable · %d opaque · %d lines · %s",
		s.TotalFiles, s.AnalyzableFiles, s.OpaqueFiles, s.TotalLines, humanize.Bytes(uint64(s.TotalSize)))
	if m.Filter != "" {
		line += dimStyle.Render(fmt.Sprintf("  (filter: %q)", m.Filter))
	}
	return line
}

func (m AppModel) renderHintLine() string {
	if m.InputMode {
		return "  filter: " + m.InputBuffer.View()
	}
	return "  ↑/↓ move · enter toggle · / filter · r re-analyze · ? help · q quit"
}

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}
	helpHeight := h - 6
	if helpHeight < 5 {
		helpHeight = 5
	}

	lines := strings.Split(helpContent, "\n")
	contentHeight := helpHeight - 2

	startY := m.HelpScrollY
	if startY > len(lines)-contentHeight {
		startY = len(lines) - contentHeight
	}
	if startY < 0 {
		startY = 0
	}

	endY := startY + contentHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	content := strings.Join(lines[startY:endY], "\n")

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Height(helpHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	return InitAnalyzeCmd(m.ArchivePath, m.RunID)
}
