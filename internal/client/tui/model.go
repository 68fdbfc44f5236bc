// Package tui is the terminal front end of donorctl: the donor table, the
// donor form for creating and editing, the findings modal and the chat panel.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/heartmarshall/donorbase/internal/client/chat"
	"github.com/heartmarshall/donorbase/internal/client/enrich"
	"github.com/heartmarshall/donorbase/internal/client/remote"
	"github.com/heartmarshall/donorbase/internal/client/store"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// DetailSource loads what the findings modal shows for one donor.
type DetailSource interface {
	Documents(ctx context.Context, donorID string) ([]dto.Document, error)
	DonorFindings(ctx context.Context, donorID string) ([]dto.Finding, error)
}

// Deps are the collaborators of the UI.
type Deps struct {
	Donors   *store.Donors
	Enricher *enrich.Enricher
	Details  DetailSource
	Chat     chat.Options
	Now      func() time.Time
	Logger   *slog.Logger
}

type screen int

const (
	screenTable screen = iota
	screenForm
	screenDetail
	screenChat
)

// Model is the root bubbletea model.
type Model struct {
	deps   Deps
	ctx    context.Context
	styles Styles

	width  int
	height int
	screen screen

	table       table.Model
	rows        []enrich.Row
	visible     []enrich.Row
	filter      store.DonorFilter
	filterInput textinput.Model
	filtering   bool

	status        string
	errText       string
	loading       bool
	confirmDelete string

	form   donorForm
	detail detailView
	chat   chatView

	// sequencers live for the whole program so a chat never replays its
	// welcome when reopened.
	sequencers map[string]*chat.Sequencer
}

// New builds the root model. ctx bounds every remote call the UI makes.
func New(ctx context.Context, deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Logger = deps.Logger.With("component", "tui")

	fi := textinput.New()
	fi.Placeholder = "search name or donor id"
	fi.CharLimit = 64
	fi.Width = 40
	fi.Prompt = "/ "

	styles := DefaultStyles()
	return Model{
		deps:        deps,
		ctx:         ctx,
		styles:      styles,
		table:       newDonorTable(),
		filterInput: fi,
		form:        newDonorForm(styles),
		sequencers:  make(map[string]*chat.Sequencer),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type rowsMsg struct {
	rows []enrich.Row
}

type errMsg struct {
	text string
}

type deletedMsg struct {
	id  string
	err error
}

type submittedMsg struct {
	donor   dto.Donor
	err     error
	updated bool
}

type detailMsg struct {
	donorID   string
	documents []dto.Document
	findings  []dto.Finding
	err       string
}

type chatEventMsg struct {
	donorID string
	event   chat.Event
}

// chatReadyMsg opens the chat once the donor's first document is known.
type chatReadyMsg struct {
	donor      dto.Donor
	documentID string
}

type transcriptMsg struct {
	text string
	err  error
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-8, 5))
		m.chat.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.shutdown()
			return m, tea.Quit
		}

	case rowsMsg:
		m.loading = false
		m.errText = ""
		m.rows = msg.rows
		m.applyFilter()
		return m, nil

	case errMsg:
		m.loading = false
		m.errText = msg.text
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.errText = m.deps.Donors.Err()
			return m, nil
		}
		m.status = "donor deleted"
		return m, m.enrichCmd()

	case submittedMsg:
		return m.handleSubmitted(msg)

	case detailMsg:
		if msg.donorID == m.detail.row.Donor.ID {
			m.detail.loaded(msg)
		}
		return m, nil

	case chatEventMsg:
		if m.screen == screenChat && m.chat.donorID == msg.donorID {
			m.chat.refresh(m.sequencers[msg.donorID], m.styles)
		}
		return m, waitChatEvent(msg.donorID, m.sequencers[msg.donorID])

	case chatReadyMsg:
		m.status = ""
		return m.openChat(msg.donor, msg.documentID)

	case transcriptMsg:
		if msg.err != nil {
			m.errText = "voice input: " + msg.err.Error()
			return m, nil
		}
		m.chat.input.SetValue(msg.text)
		return m, nil
	}

	switch m.screen {
	case screenForm:
		return m.updateForm(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenChat:
		return m.updateChat(msg)
	default:
		return m.updateTable(msg)
	}
}

func (m Model) View() string {
	switch m.screen {
	case screenForm:
		return m.viewForm()
	case screenDetail:
		return m.viewDetail()
	case screenChat:
		return m.viewChat()
	default:
		return m.viewTable()
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// refresh reloads the donor list and then enriches it.
func (m Model) refresh() tea.Cmd {
	donors, ctx := m.deps.Donors, m.ctx
	enrichCmd := m.enrichCmd()
	return func() tea.Msg {
		if err := donors.List(ctx); err != nil {
			return errMsg{text: donors.Err()}
		}
		return enrichCmd()
	}
}

// enrichCmd rebuilds rows from the local donor list.
func (m Model) enrichCmd() tea.Cmd {
	donors, enricher, ctx := m.deps.Donors, m.deps.Enricher, m.ctx
	return func() tea.Msg {
		rows, err := enricher.Rows(ctx, donors.Items())
		if errors.Is(err, enrich.ErrStale) {
			return nil
		}
		if err != nil {
			return errMsg{text: remote.Message(err)}
		}
		return rowsMsg{rows: rows}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	donors, ctx := m.deps.Donors, m.ctx
	return func() tea.Msg {
		return deletedMsg{id: id, err: donors.Delete(ctx, id)}
	}
}

func (m Model) detailCmd(donorID string) tea.Cmd {
	src, ctx := m.deps.Details, m.ctx
	return func() tea.Msg {
		docs, errText := remote.Do(ctx, func(ctx context.Context) ([]dto.Document, error) {
			return src.Documents(ctx, donorID)
		})
		if errText != "" {
			return detailMsg{donorID: donorID, err: errText}
		}
		findings, errText := remote.Do(ctx, func(ctx context.Context) ([]dto.Finding, error) {
			return src.DonorFindings(ctx, donorID)
		})
		return detailMsg{donorID: donorID, documents: docs, findings: findings, err: errText}
	}
}

// chatDocumentCmd looks up the document chat replies cite. A failed lookup
// still opens the chat; replies then carry the placeholder citation.
func (m Model) chatDocumentCmd(d dto.Donor) tea.Cmd {
	src, ctx, logger := m.deps.Details, m.ctx, m.deps.Logger
	return func() tea.Msg {
		docs, errText := remote.Do(ctx, func(ctx context.Context) ([]dto.Document, error) {
			return src.Documents(ctx, d.ID)
		})
		if errText != "" {
			logger.Warn("chat document lookup failed", "donor_id", d.ID, "error", errText)
		}
		if len(docs) == 0 {
			return chatReadyMsg{donor: d}
		}
		return chatReadyMsg{donor: d, documentID: docs[0].ID}
	}
}

func waitChatEvent(donorID string, seq *chat.Sequencer) tea.Cmd {
	if seq == nil {
		return nil
	}
	events := seq.Events()
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return chatEventMsg{donorID: donorID, event: e}
	}
}

func (m *Model) shutdown() {
	for _, seq := range m.sequencers {
		seq.Shutdown()
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.shutdown()
	}
	return err
}
