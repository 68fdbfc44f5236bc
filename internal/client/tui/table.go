package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/donorbase/internal/client/enrich"
	"github.com/heartmarshall/donorbase/internal/client/form"
	"github.com/heartmarshall/donorbase/internal/client/store"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

const criticalLabel = "CRITICAL"

var genderCycle = []string{"", "male", "female", "other"}

func newDonorTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Donor ID", Width: 14},
			{Title: "Name", Width: 24},
			{Title: "Gender", Width: 8},
			{Title: "Age", Width: 5},
			{Title: "Docs", Width: 5},
			{Title: "Priority", Width: 8},
			{Title: "Finding", Width: 9},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
}

func donorRow(r enrich.Row, now time.Time) table.Row {
	docs := "?"
	if r.DocumentsKnown {
		docs = fmt.Sprint(r.Documents)
	}
	age := ""
	if n, ok := form.DonorAge(r.Donor, now); ok {
		age = fmt.Sprint(n)
	}
	priority := ""
	if r.Donor.IsPriority {
		priority = "yes"
	}
	finding := ""
	if r.Critical {
		finding = criticalLabel
	}
	return table.Row{r.Donor.UniqueDonorID, r.Donor.Name, r.Donor.Gender, age, docs, priority, finding}
}

// applyFilter recomputes the visible rows from the filter state.
func (m *Model) applyFilter() {
	m.filter.Query = m.filterInput.Value()
	visible := make([]enrich.Row, 0, len(m.rows))
	for _, r := range m.rows {
		if store.MatchDonor(r.Donor, m.filter) {
			visible = append(visible, r)
		}
	}
	m.visible = visible
	now := m.deps.Now()
	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		rows[i] = donorRow(r, now)
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) selected() (enrich.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return enrich.Row{}, false
	}
	return m.visible[i], true
}

func (m Model) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if m.filtering {
		if isKey {
			switch key.String() {
			case "esc":
				m.filtering = false
				m.filterInput.Blur()
				m.filterInput.SetValue("")
				m.applyFilter()
				return m, nil
			case "enter":
				m.filtering = false
				m.filterInput.Blur()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	if m.confirmDelete != "" && isKey {
		id := m.confirmDelete
		m.confirmDelete = ""
		if key.String() == "y" {
			m.status = "deleting..."
			return m, m.deleteCmd(id)
		}
		m.status = "delete cancelled"
		return m, nil
	}

	if isKey {
		switch key.String() {
		case "q":
			m.shutdown()
			return m, tea.Quit
		case "/":
			m.filtering = true
			return m, m.filterInput.Focus()
		case "p":
			m.filter.PriorityOnly = !m.filter.PriorityOnly
			m.applyFilter()
			return m, nil
		case "g":
			m.filter.Gender = nextGender(m.filter.Gender)
			m.applyFilter()
			return m, nil
		case "r":
			m.loading = true
			return m, m.refresh()
		case "n":
			m.screen = screenForm
			return m, m.form.create()
		case "e":
			if row, ok := m.selected(); ok {
				m.screen = screenForm
				return m, m.form.edit(row.Donor)
			}
			return m, nil
		case "d":
			if row, ok := m.selected(); ok {
				m.confirmDelete = row.Donor.ID
				m.status = fmt.Sprintf("delete %s (%s)? y/n", row.Donor.Name, row.Donor.UniqueDonorID)
			}
			return m, nil
		case "enter":
			if row, ok := m.selected(); ok {
				m.screen = screenDetail
				m.detail = detailView{row: row, loading: true}
				return m, m.detailCmd(row.Donor.ID)
			}
			return m, nil
		case "c":
			if row, ok := m.selected(); ok {
				m.status = "opening chat..."
				return m, m.chatDocumentCmd(row.Donor)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func nextGender(g string) string {
	for i, v := range genderCycle {
		if v == g {
			return genderCycle[(i+1)%len(genderCycle)]
		}
	}
	return ""
}

func (m Model) viewTable() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Donors"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(m.filterSummary()))
	b.WriteString("\n")
	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if row, ok := m.selected(); ok && row.Critical {
		b.WriteString(m.styles.Badge.Render(criticalLabel + " FINDING"))
		b.WriteString("\n")
	}
	b.WriteString(m.footer("n new  e edit  d delete  enter findings  c chat  / search  g gender  p priority  r reload  q quit"))
	return b.String()
}

func (m Model) filterSummary() string {
	parts := []string{fmt.Sprintf("%d/%d", len(m.visible), len(m.rows))}
	if m.filter.Gender != "" {
		parts = append(parts, "gender="+m.filter.Gender)
	}
	if m.filter.PriorityOnly {
		parts = append(parts, "priority only")
	}
	if m.loading {
		parts = append(parts, "loading...")
	}
	return strings.Join(parts, "  ")
}

func (m Model) footer(help string) string {
	lines := []string{}
	if m.errText != "" {
		lines = append(lines, m.styles.Error.Render(m.errText))
	} else if m.status != "" {
		lines = append(lines, m.styles.Status.Render(m.status))
	}
	lines = append(lines, m.styles.Muted.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func donorAge(d dto.Donor, now time.Time) string {
	age, ok := form.DonorAge(d, now)
	switch {
	case !ok:
		return "unknown"
	case d.DateOfBirth != nil:
		return fmt.Sprintf("%d (born %s)", age, *d.DateOfBirth)
	default:
		return fmt.Sprint(age)
	}
}
