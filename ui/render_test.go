package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aymenfurter/store-agent/chat"
)

func TestRenderTranscriptEmpty(t *testing.T) {
	out := renderTranscript(nil, 80)
	assert.Contains(t, out, "ready")
}

func TestRenderTranscriptEntries(t *testing.T) {
	messages := []chat.Message{
		{Role: chat.RoleUser, Content: "Check stock for SKU001"},
		{
			Role:    chat.RoleAssistant,
			Content: "Contoso Cereal (ID: SKU001): 15 units in stock.",
			Metadata: &chat.Metadata{
				ID:     "tool-call_1",
				Title:  "✅ 🔍 Checking Stock",
				Status: chat.BubbleDone,
			},
		},
		{Role: chat.RoleAssistant, Content: "There are 15 units on hand."},
	}

	out := renderTranscript(messages, 80)
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Check stock for SKU001")
	assert.Contains(t, out, "Checking Stock")
	assert.Contains(t, out, "15 units in stock")
	assert.Contains(t, out, "Assistant")
	assert.Contains(t, out, "There are 15 units on hand.")
}

func TestRenderTranscriptNarrowWidth(t *testing.T) {
	messages := []chat.Message{{Role: chat.RoleUser, Content: "hello"}}
	assert.NotPanics(t, func() { renderTranscript(messages, 0) })
}
