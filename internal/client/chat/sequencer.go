// Package chat drives the simulated record assistant: a one-time welcome
// sequence, scripted replies and optional voice input.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// State is the widget state.
type State int

const (
	StateClosed State = iota
	StateOpenNoWelcome
	StateOpenWelcomed
	StateListening
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenNoWelcome:
		return "open-no-welcome"
	case StateOpenWelcomed:
		return "open-welcomed"
	case StateListening:
		return "listening"
	default:
		return "unknown"
	}
}

var (
	ErrClosed           = errors.New("chat: closed")
	ErrEmptyMessage     = errors.New("chat: empty message")
	ErrVoiceUnavailable = errors.New("chat: voice input unavailable")
	ErrBusy             = errors.New("chat: already listening")
)

// EventKind tells observers what changed.
type EventKind int

const (
	EventMessage EventKind = iota
	EventState
)

// Event is sent to observers after every transcript or state change.
type Event struct {
	Kind    EventKind
	State   State
	Message Message
}

// Options configure a Sequencer. Zero durations fire immediately.
type Options struct {
	Welcome         []string
	WelcomeInterval time.Duration
	ReplyDelay      time.Duration
	// DocumentID is cited by scripted replies. SetDocument fills it in
	// once the donor's documents are known.
	DocumentID string
	Clock      clockwork.Clock
	Recognizer Recognizer
}

// Sequencer owns one chat session. A new Sequencer starts with an empty
// transcript; nothing else clears it.
type Sequencer struct {
	opts   Options
	events chan Event

	mu           sync.Mutex
	state        State
	resume       State
	welcomeShown bool
	welcomeDone  bool
	messages     []Message
	timers       map[int]clockwork.Timer
	nextTimer    int
	idle         chan struct{}
	busy         bool
	shutdown     bool
}

// NewSequencer creates a closed chat. Call Shutdown when done with it.
func NewSequencer(opts Options) *Sequencer {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Welcome == nil {
		opts.Welcome = WelcomeMessages
	}
	idle := make(chan struct{})
	close(idle)
	return &Sequencer{
		opts:   opts,
		events: make(chan Event, 64),
		timers: make(map[int]clockwork.Timer),
		idle:   idle,
	}
}

// Events delivers changes. Events are dropped when the buffer is full; the
// channel is closed by Shutdown.
func (s *Sequencer) Events() <-chan Event {
	return s.events
}

// Open shows the chat. The first Open starts the welcome sequence.
func (s *Sequencer) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown || s.state != StateClosed {
		return
	}
	if s.welcomeDone {
		s.setState(StateOpenWelcomed)
		return
	}
	s.setState(StateOpenNoWelcome)
	if !s.welcomeShown {
		s.welcomeShown = true
		s.scheduleWelcome(0)
	}
}

// Close hides the chat. Pending replies and welcome messages still land in
// the transcript.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown || s.state == StateClosed {
		return
	}
	s.setState(StateClosed)
}

// Send appends the user's message and schedules the scripted reply.
func (s *Sequencer) Send(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown || s.state == StateClosed {
		return ErrClosed
	}
	s.appendMessage(Message{Role: RoleUser, Text: text})
	s.after(s.opts.ReplyDelay, func() {
		s.appendMessage(ScriptedReply(text, s.opts.DocumentID))
	})
	return nil
}

// SetDocument changes the document cited by replies that have not fired yet.
func (s *Sequencer) SetDocument(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.DocumentID = id
}

// DocumentID is the document replies currently cite; "" means the
// placeholder citation.
func (s *Sequencer) DocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.DocumentID
}

// VoiceAvailable reports whether Listen can be used.
func (s *Sequencer) VoiceAvailable() bool {
	return s.opts.Recognizer != nil && s.opts.Recognizer.Available()
}

// Listen records one utterance and returns its transcript. The chat is in
// StateListening until the recognizer returns a result or an error.
func (s *Sequencer) Listen(ctx context.Context) (string, error) {
	if !s.VoiceAvailable() {
		return "", ErrVoiceUnavailable
	}

	s.mu.Lock()
	switch {
	case s.shutdown || s.state == StateClosed:
		s.mu.Unlock()
		return "", ErrClosed
	case s.state == StateListening:
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.resume = s.state
	s.setState(StateListening)
	s.mu.Unlock()

	text, err := s.opts.Recognizer.Recognize(ctx)

	s.mu.Lock()
	if !s.shutdown && s.state == StateListening {
		s.setState(s.openState())
	}
	s.mu.Unlock()

	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// State returns the current state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the transcript.
func (s *Sequencer) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Shutdown cancels pending timers and closes the event channel.
func (s *Sequencer) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown {
		return
	}
	s.shutdown = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.settle()
	close(s.events)
}

// Drain blocks until every pending welcome message and reply has been
// appended, or ctx is done.
func (s *Sequencer) Drain(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sequencer) scheduleWelcome(i int) {
	if i >= len(s.opts.Welcome) {
		s.welcomeDone = true
		if s.state == StateOpenNoWelcome {
			s.setState(StateOpenWelcomed)
		}
		return
	}
	s.after(s.opts.WelcomeInterval, func() {
		s.appendMessage(Message{Role: RoleAssistant, Text: s.opts.Welcome[i]})
		s.scheduleWelcome(i + 1)
	})
}

// after runs fn under mu once d has elapsed. Must be called with mu held.
func (s *Sequencer) after(d time.Duration, fn func()) {
	if !s.busy {
		s.idle = make(chan struct{})
		s.busy = true
	}
	id := s.nextTimer
	s.nextTimer++
	s.timers[id] = s.opts.Clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.shutdown {
			return
		}
		delete(s.timers, id)
		fn()
		s.settle()
	})
}

// settle wakes Drain once no timer is pending. Must be called with mu held.
func (s *Sequencer) settle() {
	if s.busy && len(s.timers) == 0 {
		close(s.idle)
		s.busy = false
	}
}

// openState is the state to return to after listening. Must be called with mu held.
func (s *Sequencer) openState() State {
	if s.welcomeDone {
		return StateOpenWelcomed
	}
	return s.resume
}

func (s *Sequencer) appendMessage(m Message) {
	s.messages = append(s.messages, m)
	s.emit(Event{Kind: EventMessage, State: s.state, Message: m})
}

func (s *Sequencer) setState(st State) {
	s.state = st
	s.emit(Event{Kind: EventState, State: st})
}

func (s *Sequencer) emit(e Event) {
	if s.shutdown {
		return
	}
	select {
	case s.events <- e:
	default:
	}
}
