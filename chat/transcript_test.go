package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppend(t *testing.T) {
	tr := NewTranscript()
	tr.Append(RoleUser, "hello")
	tr.Append(RoleAssistant, "hi there")

	messages := tr.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Nil(t, messages[1].Metadata)
}

func TestUpsertBubble(t *testing.T) {
	tr := NewTranscript()
	tr.Append(RoleUser, "check stock")

	tr.UpsertBubble("tool-call_1", "⏳ Checking", BubblePending, "Running...")
	require.Equal(t, 2, tr.Len())

	// Updating the same key rewrites in place instead of appending.
	tr.UpsertBubble("tool-call_1", "✅ Checking", BubbleDone, "15 units in stock.")
	require.Equal(t, 2, tr.Len())

	messages := tr.Messages()
	bubble := messages[1]
	require.NotNil(t, bubble.Metadata)
	assert.Equal(t, "tool-call_1", bubble.Metadata.ID)
	assert.Equal(t, BubbleDone, bubble.Metadata.Status)
	assert.Equal(t, "15 units in stock.", bubble.Content)

	// A different key appends a new bubble.
	tr.UpsertBubble("tool-call_2", "⏳ Locating", BubblePending, "Running...")
	assert.Equal(t, 3, tr.Len())
}

func TestMessagesSnapshotIsolation(t *testing.T) {
	tr := NewTranscript()
	entry := tr.Append(RoleAssistant, "before")
	tr.UpsertBubble("tool-1", "title", BubblePending, "Running...")

	snapshot := tr.Messages()
	entry.Content = "after"
	tr.UpsertBubble("tool-1", "title", BubbleDone, "done")

	assert.Equal(t, "before", snapshot[0].Content)
	assert.Equal(t, BubblePending, snapshot[1].Metadata.Status)
}

func TestTranscriptReset(t *testing.T) {
	tr := NewTranscript()
	tr.Append(RoleUser, "hello")
	tr.UpsertBubble("tool-1", "title", BubbleDone, "done")

	tr.Reset()
	assert.Zero(t, tr.Len())

	// The bubble index is cleared too: the same key appends fresh.
	tr.UpsertBubble("tool-1", "title", BubblePending, "Running...")
	assert.Equal(t, 1, tr.Len())
}
