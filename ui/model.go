// Package ui is the terminal chat surface for the store assistant. It
// renders the conversation transcript, including the tool activity bubbles,
// and feeds user input into the chat session.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aymenfurter/store-agent/chat"
)

// snapshotMsg delivers a transcript snapshot produced while a turn is in
// flight, so the view updates as events stream in.
type snapshotMsg struct {
	snapshot chat.Snapshot
}

// turnDoneMsg is sent when the in-flight turn has finished and no more
// snapshots will arrive.
type turnDoneMsg struct{}

// clearedMsg is sent after the conversation history has been reset.
type clearedMsg struct {
	err error
}

// Model is the bubbletea model for the chat window.
type Model struct {
	session *chat.Session

	input      textinput.Model
	transcript viewport.Model

	messages  []chat.Message
	snapshots chan chat.Snapshot
	busy      bool
	status    string

	shortcutIdx int

	width  int
	height int
	ready  bool
}

// New creates the chat window over a session.
func New(session *chat.Session) Model {
	input := textinput.New()
	input.Placeholder = "Ask about stock, shelves, or deliveries (Tab cycles examples)"
	input.Focus()
	input.CharLimit = 500

	return Model{
		session:     session,
		input:       input,
		shortcutIdx: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeHeight := 6
		if !m.ready {
			m.transcript = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.transcript.Width = msg.Width
			m.transcript.Height = msg.Height - chromeHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlL:
			if m.busy {
				return m, nil
			}
			return m, m.clear()
		case tea.KeyTab:
			m.cycleShortcut()
			return m, nil
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.shortcutIdx = -1
			m.busy = true
			m.status = "Thinking..."
			return m, m.submit(text)
		}

	case snapshotMsg:
		m.messages = msg.snapshot.Messages
		m.refresh()
		return m, waitForSnapshot(m.snapshots)

	case turnDoneMsg:
		m.busy = false
		m.status = ""
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.status = "Failed to clear conversation: " + msg.err.Error()
		} else {
			m.messages = nil
			m.status = "Conversation cleared."
			m.refresh()
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit starts the turn in the background and begins draining its
// snapshots through the message loop.
func (m *Model) submit(text string) tea.Cmd {
	text = chat.ExpandShortcut(text)
	snapshots := make(chan chat.Snapshot, 16)
	m.snapshots = snapshots

	session := m.session
	go func() {
		defer close(snapshots)
		session.Send(context.Background(), text, chat.SinkFunc(
			func(ctx context.Context, snapshot chat.Snapshot) error {
				snapshots <- snapshot
				return nil
			}))
	}()
	return waitForSnapshot(snapshots)
}

func waitForSnapshot(snapshots chan chat.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-snapshots
		if !ok {
			return turnDoneMsg{}
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

func (m *Model) clear() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return clearedMsg{err: session.Clear(context.Background())}
	}
}

// cycleShortcut fills the input with the next example phrase.
func (m *Model) cycleShortcut() {
	examples := chat.Shortcuts()
	if len(examples) == 0 {
		return
	}
	m.shortcutIdx = (m.shortcutIdx + 1) % len(examples)
	m.input.SetValue(examples[m.shortcutIdx])
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.transcript.SetContent(renderTranscript(m.messages, m.transcript.Width))
	m.transcript.GotoBottom()
}
