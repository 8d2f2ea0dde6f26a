package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aymenfurter/store-agent/chat"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	bubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	bubbleTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	statusStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240"))
)

// renderTranscript lays out the conversation for the viewport. Tool
// activity renders as bordered bubbles between the chat entries.
func renderTranscript(messages []chat.Message, width int) string {
	if len(messages) == 0 {
		return statusStyle.Render("The store assistant is ready. Ask about inventory, shelf layouts, or deliveries.")
	}
	if width < 20 {
		width = 20
	}

	var sections []string
	for _, message := range messages {
		sections = append(sections, renderEntry(message, width))
	}
	return strings.Join(sections, "\n\n")
}

func renderEntry(message chat.Message, width int) string {
	if message.IsBubble() {
		title := bubbleTitleStyle.Render(message.Metadata.Title)
		body := title
		if message.Content != "" {
			body += "\n" + message.Content
		}
		return bubbleStyle.MaxWidth(width).Render(body)
	}

	label := assistantLabelStyle.Render("Assistant")
	if message.Role == chat.RoleUser {
		label = userLabelStyle.Render("You")
	}
	text := lipgloss.NewStyle().Width(width).Render(message.Content)
	return label + "\n" + text
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting up..."
	}

	header := headerStyle.Render("🏪 Store Restocking Assistant")
	status := m.status
	if status == "" {
		status = "Enter sends · Tab cycles examples · Ctrl+L clears · Esc quits"
	}

	return header + "\n" +
		m.transcript.View() + "\n" +
		inputStyle.Width(m.width).Render(m.input.View()) + "\n" +
		statusStyle.Render(status)
}
