package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/tui/styles"
	"github.com/taskreflect/taskreflect/internal/util"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading plan..."
	}

	title := styles.Title.Render("Execution Plan")
	subtitle := styles.Muted.Render(fmt.Sprintf(" %d tasks in %d groups, parallelism %.1f",
		m.analysis.TaskCount, m.analysis.GroupCount, m.analysis.ParallelismScore))

	sidebar := m.renderSidebar()
	detail := m.renderDetailPane()

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, detail)
	help := styles.HelpBar.Render("j/k: task  J/K: group  tab: focus  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title+subtitle, body, help)
}

// renderSidebar draws the groups list with one line per task, the
// selection highlighted, and dependency badges per task.
func (m Model) renderSidebar() string {
	var b strings.Builder

	for gi, group := range m.result.Groups {
		header := fmt.Sprintf("Level %d", group.Level)
		if len(group.Parallelizable) > 0 {
			header += styles.Secondary.Render(fmt.Sprintf(" ∥%d", len(group.Parallelizable)))
		}
		if len(group.Sequential) > 0 {
			header += styles.Warning.Render(fmt.Sprintf(" →%d", len(group.Sequential)))
		}
		b.WriteString(styles.LevelHeader.Render(header))
		b.WriteString("\n")

		for ti, id := range m.groupTasks[gi] {
			line := m.renderSidebarTask(id)
			if gi == m.groupIndex && ti == m.taskIndex {
				line = styles.Selected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(m.result.Groups) == 0 {
		b.WriteString(styles.Muted.Render("(empty plan)"))
	}

	pane := styles.SidebarPane
	if m.focus == focusSidebar {
		pane = styles.SidebarPaneFocused
	}
	return pane.Width(m.sidebarWidth).Render(b.String())
}

func (m Model) renderSidebarTask(id string) string {
	task := m.result.Task(id)
	if task == nil {
		return " " + id
	}

	label := util.TruncateANSI(id, m.sidebarWidth-10)
	badges := ""
	if n := len(task.Deps); n > 0 {
		badges += fmt.Sprintf(" [%d↑]", n)
	}
	if n := m.dependentCount(id); n > 0 {
		badges += fmt.Sprintf(" [%d↓]", n)
	}
	return fmt.Sprintf(" %s%s", label, badges)
}

// dependentCount counts direct dependents of a task within the plan.
func (m Model) dependentCount(id string) int {
	count := 0
	for i := range m.result.Tasks {
		for _, dep := range m.result.Tasks[i].Deps {
			if dep == id {
				count++
			}
		}
	}
	return count
}

func (m Model) renderDetailPane() string {
	pane := styles.DetailPane
	if m.focus == focusDetail {
		pane = styles.DetailPaneFocused
	}
	return pane.Render(m.viewport.View())
}

// renderDetailContent builds the detail text for the selected task.
func (m Model) renderDetailContent() string {
	task := m.SelectedTask()
	if task == nil {
		return styles.Muted.Render("No task selected")
	}

	label := styles.Muted.Render
	var b strings.Builder

	b.WriteString(styles.Title.Render(task.ID))
	b.WriteString("\n")
	if task.Title != "" {
		b.WriteString(styles.Text.Render(task.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if task.Module != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", label("Module:"), task.Module))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", label("Type:"), displayType(task)))
	b.WriteString(fmt.Sprintf("%s %.2f\n", label("Complexity:"), task.Complexity))
	b.WriteString(fmt.Sprintf("%s %d\n", label("Order:"), task.Order))

	b.WriteString("\n")
	b.WriteString(label("Dependencies:"))
	b.WriteString("\n")
	if len(task.Deps) == 0 {
		b.WriteString(styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, dep := range task.Deps {
		b.WriteString("  " + dep + "\n")
	}

	if deps := m.directDependents(task.ID); len(deps) > 0 {
		b.WriteString("\n")
		b.WriteString(label("Dependents:"))
		b.WriteString("\n")
		for _, dep := range deps {
			b.WriteString("  └→ " + dep + "\n")
		}
	}

	if len(task.Acceptance) > 0 {
		b.WriteString("\n")
		b.WriteString(label("Acceptance:"))
		b.WriteString("\n")
		for _, item := range task.Acceptance {
			b.WriteString("  - " + item + "\n")
		}
	}

	return b.String()
}

// directDependents lists tasks that directly depend on id, in plan order.
func (m Model) directDependents(id string) []string {
	var out []string
	for i := range m.result.Tasks {
		for _, dep := range m.result.Tasks[i].Deps {
			if dep == id {
				out = append(out, m.result.Tasks[i].ID)
			}
		}
	}
	return out
}

func displayType(task *reflection.Task) string {
	category := task.Category()
	if task.Type == "" {
		return string(category)
	}
	if string(category) == task.Type {
		return task.Type
	}
	return fmt.Sprintf("%s (%s)", task.Type, category)
}
