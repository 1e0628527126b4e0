package tui

import (
	"context"
	"strings"

	"lszip/internal/analyze"
	"lszip/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgAnalysisReady indicates that an analysis run has completed.
type MsgAnalysisReady struct {
	RunID  int
	Result model.Result
}

// MsgAnalysisError indicates that an analysis run failed.
type MsgAnalysisError struct {
	RunID int
	Err   error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 6 // minus title/footer/borders
		m.updateDetails()
		return m, nil

	case MsgAnalysisReady:
		if msg.RunID != m.RunID {
			// a newer run superseded this one; discard in full.
			return m, nil
		}
		m.Loading = false
		m.Err = nil
		m.Result = msg.Result
		m.SelectedIdx = 0
		m.rebuildRows()
		return m, nil

	case MsgAnalysisError:
		if msg.RunID != m.RunID {
			return m, nil
		}
		m.Err = msg.Err
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.Filter = strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
				m.rebuildRows()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				m.Filter = ""
				m.rebuildRows()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.ShowHelp {
				m.ShowHelp = false
				return m, nil
			}
			if m.Filter != "" {
				m.Filter = ""
				m.InputBuffer.SetValue("")
				m.rebuildRows()
				return m, nil
			}
		case "?":
			m.ShowHelp = !m.ShowHelp
			m.HelpScrollY = 0
		case "up", "k":
			if m.ShowHelp {
				m.HelpScrollY--
				return m, nil
			}
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.updateDetails()
			}
		case "down", "j":
			if m.ShowHelp {
				m.HelpScrollY++
				return m, nil
			}
			if m.SelectedIdx < len(m.Rows)-1 {
				m.SelectedIdx++
				m.updateDetails()
			}
		case "enter", " ":
			if d, ok := m.selectedDir(); ok {
				m.Collapsed[d.Path] = !m.Collapsed[d.Path]
				m.rebuildRows()
			}
		case "E":
			m.Collapsed = map[string]bool{}
			m.rebuildRows()
		case "C":
			m.collapseAll()
			m.rebuildRows()
		case "r":
			m.RunID++
			m.Loading = true
			m.Err = nil
			return m, InitAnalyzeCmd(m.ArchivePath, m.RunID)
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) selectedDir() (*model.Dir, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.Rows) {
		return nil, false
	}
	d, ok := m.Rows[m.SelectedIdx].Node.(*model.Dir)
	return d, ok
}

func (m *AppModel) collapseAll() {
	if m.Result.Tree == nil {
		return
	}
	var mark func(d *model.Dir)
	mark = func(d *model.Dir) {
		for _, child := range d.Children {
			if sub, ok := child.(*model.Dir); ok {
				m.Collapsed[sub.Path] = true
				mark(sub)
			}
		}
	}
	mark(m.Result.Tree)
}

// rebuildRows flattens the tree into the visible row list, honoring the
// collapsed set and the name filter. An active filter shows matching files
// plus their ancestor directories, expanded.
func (m *AppModel) rebuildRows() {
	m.Rows = m.Rows[:0]
	if m.Result.Tree != nil {
		m.appendRows(m.Result.Tree, 0)
	}
	if m.SelectedIdx >= len(m.Rows) {
		m.SelectedIdx = len(m.Rows) - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
	m.updateDetails()
}

func (m *AppModel) appendRows(d *model.Dir, depth int) {
	for _, child := range d.Children {
		switch v := child.(type) {
		case *model.Dir:
			if m.Filter != "" && !subtreeMatches(v, m.Filter) {
				continue
			}
			m.Rows = append(m.Rows, Row{Node: v, Depth: depth})
			if m.Filter != "" || !m.Collapsed[v.Path] {
				m.appendRows(v, depth+1)
			}
		case *model.File:
			if m.Filter != "" && !strings.Contains(strings.ToLower(v.Name), m.Filter) {
				continue
			}
			m.Rows = append(m.Rows, Row{Node: v, Depth: depth})
		}
	}
}

func subtreeMatches(d *model.Dir, filter string) bool {
	for _, child := range d.Children {
		switch v := child.(type) {
		case *model.Dir:
			if subtreeMatches(v, filter) {
				return true
			}
		case *model.File:
			if strings.Contains(strings.ToLower(v.Name), filter) {
				return true
			}
		}
	}
	return false
}

// InitAnalyzeCmd starts an analysis run in the background. The run either
// completes into a full result or is discarded when a newer run takes over.
func InitAnalyzeCmd(archivePath string, runID int) tea.Cmd {
	return func() tea.Msg {
		res, err := analyze.Run(context.Background(), archivePath)
		if err != nil {
			return MsgAnalysisError{RunID: runID, Err: err}
		}
		return MsgAnalysisReady{RunID: runID, Result: res}
	}
}
