package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/switchpuzzle/pkg/pipeline"
	"github.com/matzehuels/switchpuzzle/pkg/render"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ReportListModel - Interactive route browsing
// =============================================================================

// ReportListModel is the bubbletea model for browsing route reports.
type ReportListModel struct {
	Input   route.Input
	Reports []route.Report

	// OnlyReached hides routes that miss the goal.
	OnlyReached bool

	Cursor int
	Height int
	Offset int
}

// NewReportListModel creates a new report list model.
func NewReportListModel(in route.Input, reports []route.Report) ReportListModel {
	return ReportListModel{
		Input:   in,
		Reports: reports,
		Height:  15,
	}
}

// visible returns the reports currently shown.
func (m ReportListModel) visible() []route.Report {
	if m.OnlyReached {
		return pipeline.Reached(m.Reports)
	}
	return m.Reports
}

// Selected returns the report under the cursor.
func (m ReportListModel) Selected() (route.Report, bool) {
	rows := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return route.Report{}, false
	}
	return rows[m.Cursor], true
}

func (m ReportListModel) Init() tea.Cmd {
	return nil
}

func (m ReportListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.visible())
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "r":
			m.OnlyReached = !m.OnlyReached
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

func (m ReportListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Routes from %s to %s", m.Input.Initial, m.Input.Goal)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r reached only  q quit"))
	b.WriteString("\n\n")

	rows := m.visible()
	if len(rows) == 0 {
		b.WriteString(listDimStyle.Render("  no routes reach the goal"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(rows))
	cells := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := iconError
		if r.Reached {
			mark = iconSuccess
		}
		cells = append(cells, []string{cursor, fmt.Sprint(r.Index + 1), r.Trail(), r.Result.String(), mark})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Route", "Result", "").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 4 {
				if rows[idx].Reached {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorRed)
			}
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if !rows[idx].Reached {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rows))))
	b.WriteString("\n\n")

	if r, ok := m.Selected(); ok {
		b.WriteString(m.details(r))
	}
	return b.String()
}

// details renders each step of r as shapes.
func (m ReportListModel) details(r route.Report) string {
	var b strings.Builder
	b.WriteString(listSelectedStyle.Render("  " + render.Symbols(m.Input.Initial, true)))
	for i, step := range r.Steps {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s  %s",
			listDimStyle.Render(iconArrow),
			render.Symbols(step, true),
			listDimStyle.Render(m.Input.StageName(i)+": "+r.Choices[i].String()))
	}
	b.WriteString("\n")
	return b.String()
}
