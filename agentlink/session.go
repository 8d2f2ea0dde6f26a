// Package agentlink connects a chat session to the Anthropic Messages API.
// It owns the conversation history, streams model output as chat events,
// executes requested tool calls through the toolbox registry, and feeds the
// results back until the model produces a final answer.
package agentlink

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/aymenfurter/store-agent/chat"
	"github.com/aymenfurter/store-agent/toolbox"
)

// Config tunes a Session. Zero values fall back to sensible defaults.
type Config struct {
	// Model is the model name requested from the API.
	Model string

	// System is the system prompt sent with every run.
	System string

	// MaxTokens caps the length of each model response. Defaults to 1024.
	MaxTokens int64

	// MaxTurns caps the number of model calls per run, bounding tool-call
	// loops. Defaults to 10.
	MaxTurns int
}

// Session is a stateful conversation with the model. It implements
// chat.AgentSession: messages accumulate in an in-memory history, and each
// Stream call runs the model over that history until it stops asking for
// tools.
//
// A Session is not safe for concurrent use; the chat layer drives it one
// turn at a time.
type Session struct {
	client   *anthropic.Client
	registry *toolbox.Registry
	cfg      Config
	history  []anthropic.MessageParam
	tools    []anthropic.ToolUnionUnionParam
}

// NewSession creates a Session over an API client and a tool registry.
func NewSession(client *anthropic.Client, registry *toolbox.Registry, cfg Config) *Session {
	if cfg.Model == "" {
		cfg.Model = string(anthropic.ModelClaude3_7Sonnet20250219)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 10
	}
	return &Session{
		client:   client,
		registry: registry,
		cfg:      cfg,
		tools:    toolParams(registry),
	}
}

// CreateMessage appends a message to the conversation history without
// contacting the API. The next Stream call sends the full history.
func (s *Session) CreateMessage(ctx context.Context, role chat.Role, content string) error {
	switch role {
	case chat.RoleUser:
		s.history = append(s.history, anthropic.NewUserMessage(anthropic.NewTextBlock(content)))
	case chat.RoleAssistant:
		s.history = append(s.history, anthropic.NewAssistantMessage(anthropic.NewTextBlock(content)))
	default:
		return fmt.Errorf("unsupported message role %q", role)
	}
	return nil
}

// Reset discards the conversation history.
func (s *Session) Reset(ctx context.Context) error {
	s.history = nil
	return nil
}

// History returns the number of messages accumulated so far.
func (s *Session) History() int {
	return len(s.history)
}

// Stream starts a run over the accumulated history and returns the event
// stream for it. The run executes in the background; events arrive through
// the returned stream and the stream ends when the run finishes.
func (s *Session) Stream(ctx context.Context) (chat.EventStream, error) {
	runCtx, cancel := context.WithCancel(ctx)
	es := &eventStream{
		items:  make(chan streamItem),
		cancel: cancel,
	}
	go func() {
		defer close(es.items)
		es.deliver(runCtx, s.run(runCtx, es))
	}()
	return es, nil
}

// run drives the model-call loop for one run, pushing chat events into the
// stream. It returns nil when the model finishes without requesting more
// tools, or the first hard error.
func (s *Session) run(ctx context.Context, es *eventStream) error {
	runID := "run-" + strings.ToUpper(uuid.NewString()[:8])
	es.emit(ctx, chat.RunStatus{RunID: runID, Status: chat.RunInProgress})

	for turn := 0; turn < s.cfg.MaxTurns; turn++ {
		message, err := s.streamOneResponse(ctx, es)
		if err != nil {
			es.emit(ctx, chat.RunStatus{
				RunID:        runID,
				Status:       chat.RunFailed,
				ErrorCode:    "model_call_failed",
				ErrorMessage: err.Error(),
			})
			return err
		}

		s.history = append(s.history, message.ToParam())

		toolBlocks := toolUses(message)
		if len(toolBlocks) == 0 {
			es.emit(ctx, chat.RunStatus{RunID: runID, Status: chat.RunCompleted})
			return nil
		}

		results := make([]anthropic.ContentBlockParamUnion, 0, len(toolBlocks))
		completed := make([]chat.CompletedCall, 0, len(toolBlocks))
		for _, block := range toolBlocks {
			output, dispatchErr := s.registry.Dispatch(ctx, block.Name, block.Input)
			if dispatchErr != nil {
				es.emit(ctx, chat.StepFailed{CallID: block.ID, Message: dispatchErr.Error()})
				results = append(results, anthropic.NewToolResultBlock(block.ID, output, true))
				continue
			}
			completed = append(completed, chat.CompletedCall{
				CallID: block.ID,
				Kind:   chat.CallKindFunction,
				Output: output,
			})
			results = append(results, anthropic.NewToolResultBlock(block.ID, output, false))
		}
		if len(completed) > 0 {
			es.emit(ctx, chat.StepCompleted{Calls: completed})
		}
		s.history = append(s.history, anthropic.MessageParam{
			Role:    anthropic.F(anthropic.MessageParamRoleUser),
			Content: anthropic.F(results),
		})
	}

	err := fmt.Errorf("run exceeded %d model calls without completing", s.cfg.MaxTurns)
	es.emit(ctx, chat.RunStatus{
		RunID:        runID,
		Status:       chat.RunFailed,
		ErrorCode:    "max_turns_exceeded",
		ErrorMessage: err.Error(),
	})
	return err
}

// streamOneResponse performs a single streaming model call, translating
// server events into chat events as they arrive, and returns the fully
// accumulated response message.
func (s *Session) streamOneResponse(ctx context.Context, es *eventStream) (anthropic.Message, error) {
	stream := s.client.Messages.NewStreaming(ctx, s.params())

	var (
		message anthropic.Message
		msgID   string
		// The call ID of the tool-use block at each content index, so
		// argument fragments can be attributed to their call.
		callIDs = map[int64]string{}
	)
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			log.Printf("WARN: failed to accumulate stream event: %v", err)
		}

		switch ev := event.AsUnion().(type) {
		case anthropic.MessageStartEvent:
			msgID = ev.Message.ID
		case anthropic.ContentBlockStartEvent:
			if ev.ContentBlock.Type == anthropic.ContentBlockStartEventContentBlockTypeToolUse {
				callIDs[ev.Index] = ev.ContentBlock.ID
				es.emit(ctx, chat.ToolCallDelta{
					CallID: ev.ContentBlock.ID,
					Name:   ev.ContentBlock.Name,
				})
			}
		case anthropic.ContentBlockDeltaEvent:
			switch ev.Delta.Type {
			case anthropic.ContentBlockDeltaEventDeltaTypeTextDelta:
				es.emit(ctx, chat.MessageDelta{MessageID: msgID, Text: ev.Delta.Text})
			case anthropic.ContentBlockDeltaEventDeltaTypeInputJSONDelta:
				if callID, ok := callIDs[ev.Index]; ok {
					es.emit(ctx, chat.ToolCallDelta{CallID: callID, Arguments: ev.Delta.PartialJSON})
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return anthropic.Message{}, err
	}

	es.emit(ctx, chat.MessageCompleted{MessageID: msgID, Parts: textParts(message)})
	return message, nil
}

func (s *Session) params() anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(s.cfg.Model)),
		MaxTokens: anthropic.Int(s.cfg.MaxTokens),
		Messages:  anthropic.F(s.history),
		Tools:     anthropic.F(s.tools),
		ToolChoice: anthropic.F[anthropic.ToolChoiceUnionParam](anthropic.ToolChoiceAutoParam{
			Type: anthropic.F(anthropic.ToolChoiceAutoTypeAuto),
		}),
	}
	if s.cfg.System != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(s.cfg.System),
		})
	}
	return params
}

// toolParams converts every registered tool into its API definition.
func toolParams(registry *toolbox.Registry) []anthropic.ToolUnionUnionParam {
	tools := registry.Tools()
	out := make([]anthropic.ToolUnionUnionParam, 0, len(tools))
	for _, tool := range tools {
		out = append(out, anthropic.ToolParam{
			Name:        anthropic.F(tool.GetName()),
			Description: anthropic.F(tool.GetDescription()),
			InputSchema: anthropic.F(tool.GetInputSchema()),
		})
	}
	return out
}

func toolUses(message anthropic.Message) []anthropic.ToolUseBlock {
	var out []anthropic.ToolUseBlock
	for _, block := range message.Content {
		if b, ok := block.AsUnion().(anthropic.ToolUseBlock); ok {
			out = append(out, b)
		}
	}
	return out
}

func textParts(message anthropic.Message) []string {
	var out []string
	for _, block := range message.Content {
		if b, ok := block.AsUnion().(anthropic.TextBlock); ok {
			out = append(out, b.Text)
		}
	}
	return out
}

type streamItem struct {
	event chat.Event
	err   error
}

// eventStream adapts the run goroutine's channel to chat.EventStream.
type eventStream struct {
	items  chan streamItem
	cancel context.CancelFunc
}

func (es *eventStream) emit(ctx context.Context, ev chat.Event) {
	select {
	case es.items <- streamItem{event: ev}:
	case <-ctx.Done():
	}
}

// deliver forwards the run's terminal error, if any, as the stream's final
// item.
func (es *eventStream) deliver(ctx context.Context, err error) {
	if err == nil {
		return
	}
	select {
	case es.items <- streamItem{err: err}:
	case <-ctx.Done():
	}
}

// Next blocks for the next event. It returns io.EOF when the run has
// finished and all events were consumed.
func (es *eventStream) Next() (chat.Event, error) {
	item, ok := <-es.items
	if !ok {
		return nil, io.EOF
	}
	return item.event, item.err
}

// Close stops the run. Pending events are discarded.
func (es *eventStream) Close() error {
	es.cancel()
	return nil
}
