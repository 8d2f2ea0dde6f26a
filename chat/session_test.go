package chat

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStream yields a fixed event sequence, then finishes with io.EOF or
// a configured error.
type scriptedStream struct {
	events []Event
	endErr error
	pos    int
	closed bool
}

func (s *scriptedStream) Next() (Event, error) {
	if s.pos < len(s.events) {
		ev := s.events[s.pos]
		s.pos++
		return ev, nil
	}
	if s.endErr != nil {
		return nil, s.endErr
	}
	return nil, io.EOF
}

func (s *scriptedStream) Close() error {
	s.closed = true
	return nil
}

// fakeAgent is an AgentSession running scripted streams, one per turn.
type fakeAgent struct {
	streams    []*scriptedStream
	sent       []string
	createErr  error
	streamErr  error
	resetCalls int
}

func (f *fakeAgent) CreateMessage(ctx context.Context, role Role, content string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sent = append(f.sent, content)
	return nil
}

func (f *fakeAgent) Stream(ctx context.Context) (EventStream, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	if len(f.streams) == 0 {
		return nil, errors.New("no scripted stream")
	}
	s := f.streams[0]
	f.streams = f.streams[1:]
	return s, nil
}

func (f *fakeAgent) Reset(ctx context.Context) error {
	f.resetCalls++
	return nil
}

// collectingSink records every snapshot it receives.
type collectingSink struct {
	snapshots []Snapshot
}

func (c *collectingSink) Send(ctx context.Context, snapshot Snapshot) error {
	c.snapshots = append(c.snapshots, snapshot)
	return nil
}

// newTestSession returns a session with a controllable clock that never
// trips the debounce guard unless the test advances it deliberately.
func newTestSession(agent AgentSession) (*Session, *time.Time) {
	s := NewSession(agent, nil)
	current := time.Unix(1000, 0)
	s.now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
	return s, &current
}

func TestSessionSend(t *testing.T) {
	agent := &fakeAgent{streams: []*scriptedStream{{events: []Event{
		MessageDelta{MessageID: "msg_1", Text: "Stock is "},
		MessageDelta{MessageID: "msg_1", Text: "fine."},
		MessageCompleted{MessageID: "msg_1", Parts: []string{"Stock is fine."}},
		RunStatus{RunID: "run_1", Status: RunCompleted},
	}}}}
	session, _ := newTestSession(agent)
	sink := &collectingSink{}

	session.Send(context.Background(), "How is SKU001 doing?", sink)

	require.Equal(t, []string{"How is SKU001 doing?"}, agent.sent)

	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, RoleUser, transcript[0].Role)
	assert.Equal(t, "How is SKU001 doing?", transcript[0].Content)
	assert.Equal(t, "Stock is fine.", transcript[1].Content)

	// One snapshot after the user entry, one per event, one final.
	assert.Len(t, sink.snapshots, 6)
	last := sink.snapshots[len(sink.snapshots)-1]
	assert.Empty(t, last.Input, "pending input is always cleared")
	assert.Len(t, last.Messages, 2)
}

func TestSessionDebounce(t *testing.T) {
	agent := &fakeAgent{streams: []*scriptedStream{
		{events: []Event{MessageCompleted{MessageID: "m1", Parts: []string{"ok"}}}},
	}}
	session := NewSession(agent, nil)
	current := time.Unix(1000, 0)
	session.now = func() time.Time { return current }

	session.Send(context.Background(), "first", nil)
	require.Len(t, agent.sent, 1)

	// One second later: rejected as an accidental double submit.
	current = current.Add(time.Second)
	session.Send(context.Background(), "second", nil)
	assert.Len(t, agent.sent, 1)
	assert.Len(t, session.Transcript(), 2, "rejected submission leaves the transcript alone")

	// Past the interval the next submission is accepted.
	agent.streams = []*scriptedStream{{events: nil}}
	current = current.Add(3 * time.Second)
	session.Send(context.Background(), "third", nil)
	assert.Equal(t, []string{"first", "third"}, agent.sent)
}

func TestSessionEmptyInput(t *testing.T) {
	agent := &fakeAgent{}
	session, _ := newTestSession(agent)

	session.Send(context.Background(), "   \t", nil)
	assert.Empty(t, agent.sent)
	assert.Zero(t, len(session.Transcript()))
}

func TestSessionCreateMessageError(t *testing.T) {
	agent := &fakeAgent{createErr: errors.New("thread unavailable")}
	session, _ := newTestSession(agent)

	session.Send(context.Background(), "hello", nil)

	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, RoleUser, transcript[0].Role)
	assert.Equal(t, RoleAssistant, transcript[1].Role)
	assert.Contains(t, transcript[1].Content, "Error sending message")
	assert.Contains(t, transcript[1].Content, "thread unavailable")
}

func TestSessionStreamOpenError(t *testing.T) {
	agent := &fakeAgent{streamErr: errors.New("connection refused")}
	session, _ := newTestSession(agent)

	session.Send(context.Background(), "hello", nil)

	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Contains(t, transcript[1].Content, "An error occurred while processing your request")
}

func TestSessionStreamFailureMidTurn(t *testing.T) {
	// The stream dies after two events: exactly one error entry is
	// appended and everything before it is preserved.
	stream := &scriptedStream{
		events: []Event{
			MessageDelta{MessageID: "msg_1", Text: "Checking"},
			ToolCallDelta{CallID: "call_1", Name: "check_item_stock"},
		},
		endErr: errors.New("stream reset by peer"),
	}
	agent := &fakeAgent{streams: []*scriptedStream{stream}}
	session, _ := newTestSession(agent)

	session.Send(context.Background(), "check stock", nil)

	transcript := session.Transcript()
	require.Len(t, transcript, 4)
	assert.Equal(t, "check stock", transcript[0].Content)
	assert.Equal(t, "Checking", transcript[1].Content)
	require.NotNil(t, transcript[2].Metadata)
	assert.Equal(t, BubblePending, transcript[2].Metadata.Status)
	assert.Contains(t, transcript[3].Content, "stream reset by peer")
	assert.True(t, stream.closed)
}

func TestSessionClear(t *testing.T) {
	agent := &fakeAgent{streams: []*scriptedStream{{events: []Event{
		MessageCompleted{MessageID: "m1", Parts: []string{"hi"}},
	}}}}
	session, _ := newTestSession(agent)

	session.Send(context.Background(), "hello", nil)
	require.NotEmpty(t, session.Transcript())

	require.NoError(t, session.Clear(context.Background()))
	assert.Empty(t, session.Transcript())
	assert.Equal(t, 1, agent.resetCalls)
}

func TestExpandShortcut(t *testing.T) {
	assert.Equal(t, "I need 10 units of SKU004 delivered to shelf C3.",
		ExpandShortcut("Request 10 SKU004 for C3"))
	assert.Equal(t, "Check stock for SKU001", ExpandShortcut("Check stock for SKU001"))
	assert.Equal(t, "free-form text", ExpandShortcut("free-form text"))
	assert.Len(t, Shortcuts(), 8)
}
