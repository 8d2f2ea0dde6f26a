// Package chat contains the conversation core of the store assistant: the
// transcript of display entries, the tagged event stream emitted by an agent
// session, the reducer that folds events into the transcript, and the session
// driving one user turn at a time.
package chat

// Role marks who a transcript entry belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// BubbleStatus is the lifecycle state of a tool-call bubble.
type BubbleStatus string

const (
	BubblePending BubbleStatus = "pending"
	BubbleDone    BubbleStatus = "done"
	BubbleError   BubbleStatus = "error"
)

// Metadata marks a transcript entry as a tool-call bubble. Entries without
// metadata are plain text messages.
type Metadata struct {
	ID     string
	Title  string
	Status BubbleStatus
}

// Message is one transcript entry: a plain user or assistant message, or a
// tool-call bubble when Metadata is set.
type Message struct {
	Role     Role
	Content  string
	Metadata *Metadata
}

// IsBubble reports whether the entry is a tool-call bubble.
func (m *Message) IsBubble() bool {
	return m.Metadata != nil
}

// Transcript is the ordered sequence of display entries for one
// conversation. Alongside the order it maintains an index from bubble ID to
// entry, so upserting a bubble is a map lookup instead of a backward scan.
type Transcript struct {
	entries []*Message
	bubbles map[string]*Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{bubbles: make(map[string]*Message)}
}

// Append adds a plain entry and returns it for in-place content updates.
func (t *Transcript) Append(role Role, content string) *Message {
	m := &Message{Role: role, Content: content}
	t.entries = append(t.entries, m)
	return m
}

// UpsertBubble creates or updates the tool bubble identified by key. If an
// entry with that bubble ID exists anywhere in the transcript its title,
// status, and content are rewritten in place; otherwise a new entry is
// appended. Replayed or duplicate events therefore converge on a single
// bubble per call.
func (t *Transcript) UpsertBubble(key, title string, status BubbleStatus, content string) *Message {
	if m, ok := t.bubbles[key]; ok {
		m.Metadata.Title = title
		m.Metadata.Status = status
		m.Content = content
		return m
	}
	m := &Message{
		Role:     RoleAssistant,
		Content:  content,
		Metadata: &Metadata{ID: key, Title: title, Status: status},
	}
	t.entries = append(t.entries, m)
	t.bubbles[key] = m
	return m
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Messages returns a value-copy snapshot of the transcript, safe to hand to
// a renderer while the transcript keeps mutating.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.entries))
	for i, m := range t.entries {
		out[i] = *m
		if m.Metadata != nil {
			meta := *m.Metadata
			out[i].Metadata = &meta
		}
	}
	return out
}

// Reset discards all entries and the bubble index.
func (t *Transcript) Reset() {
	t.entries = nil
	t.bubbles = make(map[string]*Message)
}
