// Package tui implements the interactive plan viewer: a groups sidebar
// next to a task detail pane, read-only over a finished reflection pass.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskreflect/taskreflect/internal/reflection"
)

const (
	defaultSidebarWidth = 32
	minSidebarWidth     = 20
	maxSidebarWidth     = 60
)

// Config controls viewer layout.
type Config struct {
	// SidebarWidth is the groups sidebar width in columns. Out-of-range
	// values are clamped.
	SidebarWidth int
}

// focusArea identifies which pane receives navigation keys.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusDetail
)

// Model is the Bubbletea model for the plan viewer.
type Model struct {
	result   *reflection.Result
	analysis *reflection.Analysis

	// groupTasks holds each group's member ids, parallelizable first,
	// mirroring the sidebar ordering.
	groupTasks [][]string

	groupIndex int
	taskIndex  int
	focus      focusArea

	viewport     viewport.Model
	sidebarWidth int
	width        int
	height       int
	ready        bool
	quitting     bool
}

// New creates a plan viewer model over a completed reflection pass.
func New(res *reflection.Result, an *reflection.Analysis, cfg Config) Model {
	width := cfg.SidebarWidth
	if width <= 0 {
		width = defaultSidebarWidth
	}
	width = min(max(width, minSidebarWidth), maxSidebarWidth)

	groupTasks := make([][]string, len(res.Groups))
	for i, group := range res.Groups {
		groupTasks[i] = group.Tasks()
	}

	return Model{
		result:       res,
		analysis:     an,
		groupTasks:   groupTasks,
		sidebarWidth: width,
	}
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(res *reflection.Result, an *reflection.Analysis, cfg Config) error {
	p := tea.NewProgram(New(res, an, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("plan viewer failed: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.refreshDetail()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusDetail
		} else {
			m.focus = focusSidebar
		}
		return m, nil

	case "j", "down":
		if m.focus == focusDetail {
			m.viewport.ScrollDown(1)
			return m, nil
		}
		m.moveTask(1)
		return m, nil

	case "k", "up":
		if m.focus == focusDetail {
			m.viewport.ScrollUp(1)
			return m, nil
		}
		m.moveTask(-1)
		return m, nil

	case "J", "l", "right":
		m.moveGroup(1)
		return m, nil

	case "K", "h", "left":
		m.moveGroup(-1)
		return m, nil

	case "g":
		if m.focus == focusDetail {
			m.viewport.GotoTop()
			return m, nil
		}
		m.groupIndex = 0
		m.taskIndex = 0
		m.refreshDetail()
		return m, nil

	case "G":
		if m.focus == focusDetail {
			m.viewport.GotoBottom()
			return m, nil
		}
		if len(m.groupTasks) > 0 {
			m.groupIndex = len(m.groupTasks) - 1
			m.taskIndex = 0
			m.refreshDetail()
		}
		return m, nil
	}
	return m, nil
}

// moveTask moves the task selection within the current group, spilling
// into the neighboring group at either end.
func (m *Model) moveTask(delta int) {
	if len(m.groupTasks) == 0 {
		return
	}
	next := m.taskIndex + delta
	switch {
	case next < 0:
		if m.groupIndex > 0 {
			m.groupIndex--
			m.taskIndex = len(m.groupTasks[m.groupIndex]) - 1
		}
	case next >= len(m.groupTasks[m.groupIndex]):
		if m.groupIndex < len(m.groupTasks)-1 {
			m.groupIndex++
			m.taskIndex = 0
		}
	default:
		m.taskIndex = next
	}
	m.refreshDetail()
}

// moveGroup jumps to the first task of the neighboring group.
func (m *Model) moveGroup(delta int) {
	if len(m.groupTasks) == 0 {
		return
	}
	next := m.groupIndex + delta
	if next < 0 || next >= len(m.groupTasks) {
		return
	}
	m.groupIndex = next
	m.taskIndex = 0
	m.refreshDetail()
}

// SelectedTask returns the task the cursor is on, or nil for an empty plan.
func (m *Model) SelectedTask() *reflection.Task {
	if m.groupIndex >= len(m.groupTasks) {
		return nil
	}
	ids := m.groupTasks[m.groupIndex]
	if m.taskIndex >= len(ids) {
		return nil
	}
	return m.result.Task(ids[m.taskIndex])
}

func (m *Model) resizeViewport() {
	detailWidth := m.width - m.sidebarWidth - 6 // borders and padding
	if detailWidth < 10 {
		detailWidth = 10
	}
	contentHeight := m.height - 4 // title and help bar
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.viewport.Width = detailWidth
	m.viewport.Height = contentHeight
}

func (m *Model) refreshDetail() {
	m.viewport.SetContent(m.renderDetailContent())
	m.viewport.GotoTop()
}
