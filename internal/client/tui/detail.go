package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/donorbase/internal/client/enrich"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// detailView is the findings modal of one donor.
type detailView struct {
	row       enrich.Row
	loading   bool
	documents []dto.Document
	findings  []dto.Finding
	err       string
}

func (d *detailView) loaded(msg detailMsg) {
	d.loading = false
	d.documents = msg.documents
	d.findings = msg.findings
	d.err = msg.err
	if msg.err == "" {
		d.row.Documents = len(msg.documents)
		d.row.DocumentsKnown = true
	}
}

// critical applies the badge rule to what the modal loaded. Until then the
// table's verdict stands.
func (d detailView) critical() bool {
	if d.loading || d.err != "" {
		return d.row.Critical
	}
	if len(d.documents) == 0 {
		return false
	}
	for _, f := range d.findings {
		if f.Severity == dto.SeverityCritical {
			return true
		}
	}
	return false
}

func (d detailView) documentName(id string) string {
	for _, doc := range d.documents {
		if doc.ID == id {
			return doc.FileName
		}
	}
	return id
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q":
		m.screen = screenTable
	case "c":
		docID := ""
		if len(m.detail.documents) > 0 {
			docID = m.detail.documents[0].ID
		}
		return m.openChat(m.detail.row.Donor, docID)
	}
	return m, nil
}

func (m Model) viewDetail() string {
	d := m.detail
	var b strings.Builder

	b.WriteString(renderCard(m.styles, d.row.Donor, d.critical(), m.deps.Now()))
	b.WriteString("\n\n")

	switch {
	case d.loading:
		b.WriteString(m.styles.Muted.Render("loading documents and findings..."))
	case d.err != "":
		b.WriteString(m.styles.Error.Render(d.err))
	default:
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(d.documents))))
		b.WriteString("\n")
		if len(d.documents) == 0 {
			b.WriteString(m.styles.Muted.Render("no documents uploaded"))
			b.WriteString("\n")
		}
		for _, doc := range d.documents {
			fmt.Fprintf(&b, "  %s  %s  %d pages\n", doc.FileName, m.styles.Muted.Render(doc.ContentType), doc.PageCount)
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("Findings (%d)", len(d.findings))))
		b.WriteString("\n")
		if len(d.findings) == 0 {
			b.WriteString(m.styles.Muted.Render("no findings"))
			b.WriteString("\n")
		}
		for _, f := range d.findings {
			b.WriteString(m.renderFinding(d, f))
		}
	}

	body := m.styles.Modal.Render(b.String())
	view := lipgloss.JoinVertical(lipgloss.Left, body, m.footer("c chat  esc close"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (m Model) renderFinding(d detailView, f dto.Finding) string {
	sev := m.styles.Muted.Render(f.Severity)
	if f.Severity == dto.SeverityCritical {
		sev = m.styles.Error.Render(f.Severity)
	}
	line := fmt.Sprintf("  [%s] %s: %s\n", sev, f.Category, f.Summary)
	for _, c := range f.Citations {
		line += "      " + m.styles.Citation.Render(fmt.Sprintf("%s p.%d", d.documentName(c.DocumentID), c.Page)) + "\n"
	}
	return line
}

// renderCard is the donor summary shown at the top of the modal.
func renderCard(s Styles, d dto.Donor, critical bool, now time.Time) string {
	title := s.Title.Render(d.Name) + "  " + s.Muted.Render(d.UniqueDonorID)
	if d.IsPriority {
		title += "  " + s.Priority.Render("PRIORITY")
	}
	if critical {
		title += "  " + s.Badge.Render(criticalLabel+" FINDING")
	}

	lines := []string{
		title,
		fmt.Sprintf("Gender: %s   Age: %s", d.Gender, donorAge(d, now)),
	}
	if d.Ethnicity != nil {
		lines = append(lines, "Ethnicity: "+*d.Ethnicity)
	}
	if d.Notes != nil {
		lines = append(lines, s.Muted.Render(*d.Notes))
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}
