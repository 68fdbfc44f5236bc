package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/heartmarshall/donorbase/internal/client/chat"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

type chatView struct {
	donorID   string
	donorName string
	viewport  viewport.Model
	input     textinput.Model
	ready     bool
}

func (c *chatView) resize(w, h int) {
	if !c.ready {
		return
	}
	c.viewport.Width = max(w-2, 20)
	c.viewport.Height = max(h-6, 5)
}

// refresh re-renders the transcript and scrolls to the newest message.
func (c *chatView) refresh(seq *chat.Sequencer, s Styles) {
	if seq == nil {
		return
	}
	var b strings.Builder
	for _, msg := range seq.Messages() {
		switch msg.Role {
		case chat.RoleUser:
			b.WriteString(s.User.Render("you: "))
		default:
			b.WriteString(s.Bot.Render("assistant: "))
		}
		b.WriteString(msg.Text)
		for _, cit := range msg.Citations {
			b.WriteString(" ")
			b.WriteString(s.Citation.Render(fmt.Sprintf("[doc %s p.%d]", cit.DocumentID, cit.Page)))
		}
		b.WriteString("\n")
	}
	c.viewport.SetContent(b.String())
	c.viewport.GotoBottom()
}

// openChat shows the chat of a donor, creating its sequencer on first use.
// A known documentID replaces the one cited by an existing sequencer.
func (m Model) openChat(d dto.Donor, documentID string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	seq, ok := m.sequencers[d.ID]
	switch {
	case !ok:
		opts := m.deps.Chat
		opts.DocumentID = documentID
		seq = chat.NewSequencer(opts)
		m.sequencers[d.ID] = seq
		cmds = append(cmds, waitChatEvent(d.ID, seq))
	case documentID != "" && seq.DocumentID() != documentID:
		seq.SetDocument(documentID)
	}

	in := textinput.New()
	in.Placeholder = "ask about this donor"
	in.CharLimit = 500
	in.Width = max(m.width-4, 40)

	m.chat = chatView{
		donorID:   d.ID,
		donorName: d.Name,
		viewport:  viewport.New(max(m.width-2, 60), max(m.height-6, 10)),
		input:     in,
		ready:     true,
	}
	m.screen = screenChat
	seq.Open()
	m.chat.refresh(seq, m.styles)
	cmds = append(cmds, m.chat.input.Focus())
	return m, tea.Batch(cmds...)
}

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.sequencers[m.chat.donorID]

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			seq.Close()
			m.screen = screenTable
			return m, nil
		case "enter":
			text := m.chat.input.Value()
			if err := seq.Send(text); err != nil {
				return m, nil
			}
			m.chat.input.SetValue("")
			m.chat.refresh(seq, m.styles)
			return m, nil
		case "ctrl+r":
			if !seq.VoiceAvailable() {
				m.errText = "voice input is not available"
				return m, nil
			}
			ctx := m.ctx
			return m, func() tea.Msg {
				text, err := seq.Listen(ctx)
				return transcriptMsg{text: text, err: err}
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.chat.viewport, cmd = m.chat.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.chat.input, cmd = m.chat.input.Update(msg)
	return m, cmd
}

func (m Model) viewChat() string {
	seq := m.sequencers[m.chat.donorID]
	state := ""
	if seq != nil {
		state = seq.State().String()
	}
	header := m.styles.Title.Render("Chat: "+m.chat.donorName) + "  " + m.styles.Muted.Render(state)

	help := "enter send  pgup/pgdown scroll  esc close"
	if seq != nil && seq.VoiceAvailable() {
		help = "enter send  ctrl+r speak  pgup/pgdown scroll  esc close"
	}
	return strings.Join([]string{
		header,
		m.chat.viewport.View(),
		m.chat.input.View(),
		m.footer(help),
	}, "\n")
}
