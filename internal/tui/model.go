package tui

import (
	"lszip/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Row is one visible line in the tree panel.
type Row struct {
	Node  model.Node
	Depth int
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	ArchivePath string
	Result      model.Result
	Loading     bool
	Err         error
	RunID       int // increments per analysis; results from stale runs are dropped

	// UI State
	Rows        []Row
	SelectedIdx int
	Collapsed   map[string]bool // directory path -> collapsed
	WindowSize  tea.WindowSizeMsg
	ShowHelp    bool
	HelpScrollY int

	// Search State
	InputMode   bool
	InputBuffer textinput.Model
	Filter      string

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state for analyzing the given archive.
func InitialModel(archivePath string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "File name..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		ArchivePath: archivePath,
		Loading:     true,
		RunID:       1,
		InputBuffer: ti,
		Collapsed:   map[string]bool{},
	}
}
