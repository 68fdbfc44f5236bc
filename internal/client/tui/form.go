package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/heartmarshall/donorbase/internal/client/form"
	"github.com/heartmarshall/donorbase/internal/client/remote"
	"github.com/heartmarshall/donorbase/internal/domain"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

var fieldLabels = map[string]string{
	domain.FieldUniqueDonorID: "Donor ID",
	domain.FieldName:          "Name",
	domain.FieldGender:        "Gender",
	domain.FieldAge:           "Age",
	domain.FieldDateOfBirth:   "Date of birth",
	form.FieldEthnicity:       "Ethnicity",
	form.FieldIsPriority:      "Priority",
	form.FieldNotes:           "Notes",
}

var fieldPlaceholders = map[string]string{
	domain.FieldGender:      "male | female | other",
	domain.FieldAge:         "0-120",
	domain.FieldDateOfBirth: "YYYY-MM-DD",
}

// donorForm renders a form.Draft as one text input per field. The priority
// flag is a checkbox toggled with space. editing is the stored donor when the
// form edits rather than creates.
type donorForm struct {
	draft      *form.Draft
	inputs     map[string]*textinput.Model
	focused    int
	submitting bool
	editing    *dto.Donor
	styles     Styles
}

func newDonorForm(styles Styles) donorForm {
	f := donorForm{
		draft:  form.New(),
		inputs: make(map[string]*textinput.Model),
		styles: styles,
	}
	for _, field := range form.DonorFields {
		if field == form.FieldIsPriority {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 255
		ti.Width = 40
		ti.Placeholder = fieldPlaceholders[field]
		f.inputs[field] = &ti
	}
	return f
}

func (f *donorForm) field() string {
	return form.DonorFields[f.focused]
}

func (f *donorForm) focus(i int) tea.Cmd {
	n := len(form.DonorFields)
	f.focused = ((i % n) + n) % n
	var cmd tea.Cmd
	for name, ti := range f.inputs {
		if name == f.field() {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

// create clears the form for a new donor.
func (f *donorForm) create() tea.Cmd {
	f.editing = nil
	f.draft.Reset()
	f.sync()
	return f.focus(0)
}

// edit loads an existing donor into the form.
func (f *donorForm) edit(d dto.Donor) tea.Cmd {
	f.editing = &d
	form.LoadDonor(f.draft, d)
	f.sync()
	return f.focus(0)
}

// sync copies draft values into the inputs, after a reset or load.
func (f *donorForm) sync() {
	for name, ti := range f.inputs {
		ti.SetValue(f.draft.Value(name))
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.form.editing = nil
			m.screen = screenTable
			return m, nil
		case "tab", "down":
			return m, m.form.focus(m.form.focused + 1)
		case "shift+tab", "up":
			return m, m.form.focus(m.form.focused - 1)
		case "ctrl+s":
			return m.submitForm()
		case "enter":
			if m.form.focused == len(form.DonorFields)-1 {
				return m.submitForm()
			}
			return m, m.form.focus(m.form.focused + 1)
		case " ":
			if m.form.field() == form.FieldIsPriority {
				m.form.draft.SetBool(form.FieldIsPriority, !m.form.draft.Bool(form.FieldIsPriority))
				return m, nil
			}
		}
	}

	ti, ok := m.form.inputs[m.form.field()]
	if !ok {
		return m, nil
	}
	before := ti.Value()
	updated, cmd := ti.Update(msg)
	*ti = updated
	if ti.Value() != before {
		m.form.draft.Set(m.form.field(), ti.Value())
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	m.form.submitting = true
	draft, donors, ctx, now := m.form.draft, m.deps.Donors, m.ctx, m.deps.Now()
	if orig := m.form.editing; orig != nil {
		orig := *orig
		return m, func() tea.Msg {
			d, err := form.SubmitDonorUpdate(ctx, draft, orig, donors, now)
			return submittedMsg{donor: d, err: err, updated: true}
		}
	}
	return m, func() tea.Msg {
		d, err := form.SubmitDonor(ctx, draft, donors, now)
		return submittedMsg{donor: d, err: err}
	}
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false
	switch {
	case errors.Is(msg.err, form.ErrInvalid):
		m.errText = "please fix the highlighted fields"
		return m, nil
	case errors.Is(msg.err, form.ErrNoChanges):
		m.errText = ""
		m.status = "no changes"
		m.form.editing = nil
		m.screen = screenTable
		return m, nil
	case msg.err != nil:
		m.errText = remote.Message(msg.err)
		return m, nil
	}
	m.errText = ""
	if msg.updated {
		m.status = fmt.Sprintf("updated %s", msg.donor.Name)
	} else {
		m.status = fmt.Sprintf("created %s", msg.donor.Name)
	}
	m.form.editing = nil
	m.form.sync()
	m.screen = screenTable
	return m, m.enrichCmd()
}

func (m Model) viewForm() string {
	var b strings.Builder
	title := "New donor"
	if m.form.editing != nil {
		title = "Edit " + m.form.editing.Name
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	for i, field := range form.DonorFields {
		label := m.styles.Label
		if i == m.form.focused {
			label = m.styles.Focused
		}
		b.WriteString(label.Render(fieldLabels[field]))
		if field == form.FieldIsPriority {
			box := "[ ]"
			if m.form.draft.Bool(field) {
				box = "[x]"
			}
			b.WriteString(box)
		} else {
			b.WriteString(m.form.inputs[field].View())
		}
		if e := m.form.draft.Error(field); e != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.Error.Render(e))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.form.submitting {
		b.WriteString(m.styles.Muted.Render("saving..."))
		b.WriteString("\n")
	}
	b.WriteString(m.footer("tab next  shift+tab prev  space toggle  ctrl+s save  esc back"))
	return b.String()
}
