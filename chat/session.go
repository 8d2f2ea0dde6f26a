package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// AgentSession is the narrow contract the chat layer needs from the hosted
// agent service: append a message to the conversation thread, open an event
// stream for a run, and reset the thread. The transport behind it is opaque.
type AgentSession interface {
	CreateMessage(ctx context.Context, role Role, content string) error
	Stream(ctx context.Context) (EventStream, error)
	Reset(ctx context.Context) error
}

// EventStream yields events for one run. Next returns io.EOF when the
// stream ends normally.
type EventStream interface {
	Next() (Event, error)
	Close() error
}

// Snapshot is what the UI receives after every processed event: the full
// transcript so far plus the (cleared) pending input text.
type Snapshot struct {
	Messages []Message
	Input    string
}

// Sink receives transcript snapshots as a turn progresses.
type Sink interface {
	Send(ctx context.Context, snapshot Snapshot) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, snapshot Snapshot) error

// Send calls the wrapped function.
func (f SinkFunc) Send(ctx context.Context, snapshot Snapshot) error {
	return f(ctx, snapshot)
}

// debounceInterval is the minimum gap between accepted submissions. A
// submission arriving sooner is treated as an accidental double-send and
// dropped.
const debounceInterval = 2 * time.Second

// Session drives one conversation with the agent: it owns the transcript,
// guards against double submissions, forwards user text to the agent, and
// folds the resulting event stream into the transcript, emitting a snapshot
// after every event.
//
// Sessions are strictly sequential: one turn at a time, events consumed in
// arrival order. There is no concurrent transcript mutation to guard.
type Session struct {
	agent      AgentSession
	transcript *Transcript
	tracer     trace.Tracer

	now        func() time.Time
	lastSubmit time.Time
}

// NewSession creates a Session over an agent connection. A nil tracer
// disables span recording.
func NewSession(agent AgentSession, tracer trace.Tracer) *Session {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("chat")
	}
	return &Session{
		agent:      agent,
		transcript: NewTranscript(),
		tracer:     tracer,
		now:        time.Now,
	}
}

// Transcript returns a snapshot of the current transcript.
func (s *Session) Transcript() []Message {
	return s.transcript.Messages()
}

// Clear discards the transcript and starts a fresh conversation thread.
func (s *Session) Clear(ctx context.Context) error {
	s.transcript.Reset()
	return s.agent.Reset(ctx)
}

// Send runs one user turn: append the user entry, forward it to the agent,
// and fold the event stream into the transcript, pushing a snapshot to the
// sink after every event.
//
// Failures never propagate: transport and stream errors become a single
// assistant entry describing the failure, and a malformed event is logged
// and skipped so one bad event cannot abort the turn. Earlier transcript
// entries are always preserved.
func (s *Session) Send(ctx context.Context, userText string, sink Sink) {
	now := s.now()
	if now.Sub(s.lastSubmit) < debounceInterval {
		log.Println("WARN: duplicate message submission detected, skipping.")
		s.emit(ctx, sink)
		return
	}
	if strings.TrimSpace(userText) == "" {
		s.emit(ctx, sink)
		return
	}
	s.lastSubmit = now

	ctx, span := s.tracer.Start(ctx, "store_chat_interaction")
	defer span.End()
	span.SetAttributes(
		attribute.String("user_message", userText),
		attribute.Int("conversation_length_start", s.transcript.Len()),
	)
	defer func() {
		span.SetAttributes(attribute.Int("conversation_length_end", s.transcript.Len()))
	}()

	s.transcript.Append(RoleUser, userText)
	s.emit(ctx, sink)

	if err := s.agent.CreateMessage(ctx, RoleUser, userText); err != nil {
		log.Printf("ERROR sending message: %v", err)
		span.SetStatus(codes.Error, err.Error())
		s.transcript.Append(RoleAssistant, fmt.Sprintf("Error sending message: %v", err))
		s.emit(ctx, sink)
		return
	}

	stream, err := s.agent.Stream(ctx)
	if err != nil {
		log.Printf("ERROR opening stream: %v", err)
		span.SetStatus(codes.Error, err.Error())
		s.transcript.Append(RoleAssistant, fmt.Sprintf("An error occurred while processing your request: %v", err))
		s.emit(ctx, sink)
		return
	}
	defer stream.Close()

	reducer := NewReducer(s.transcript)
	for {
		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("ERROR in stream: %v", err)
			span.SetStatus(codes.Error, err.Error())
			s.transcript.Append(RoleAssistant, fmt.Sprintf("An error occurred while processing your request: %v", err))
			s.emit(ctx, sink)
			return
		}
		if applyErr := safeApply(reducer, ev); applyErr != nil {
			// One bad event must not abort the turn.
			log.Printf("ERROR processing stream event: %v", applyErr)
		}
		s.emit(ctx, sink)
	}
	s.emit(ctx, sink)
}

// safeApply isolates a single event: reducer errors and panics are returned
// instead of propagating, so stream processing continues with the next event.
func safeApply(r *Reducer, ev Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic applying event %T: %v", ev, rec)
		}
	}()
	return r.Apply(ev)
}

func (s *Session) emit(ctx context.Context, sink Sink) {
	if sink == nil {
		return
	}
	snapshot := Snapshot{Messages: s.transcript.Messages()}
	if err := sink.Send(ctx, snapshot); err != nil {
		log.Printf("WARN: failed to deliver transcript snapshot: %v", err)
	}
}
