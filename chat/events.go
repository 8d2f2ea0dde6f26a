package chat

// Event is one incremental update from a streaming agent session. The set of
// kinds is closed: the reducer switches exhaustively over these variants, so
// an unhandled kind is a visible gap rather than a silently skipped string
// tag.
type Event interface {
	event()
}

// MessageDelta carries a text fragment of an assistant message. Fragments
// with the same MessageID accumulate; a new MessageID starts a new message.
type MessageDelta struct {
	MessageID string
	Text      string
}

// MessageCompleted finalizes an assistant message with its full content
// parts. The reducer reconciles the open entry against the joined parts.
type MessageCompleted struct {
	MessageID string
	Parts     []string
}

// ToolCallDelta announces a tool call or carries a fragment of its streamed
// argument text. The first sighting of a CallID opens a pending bubble;
// argument fragments are accumulated but not surfaced in the transcript.
type ToolCallDelta struct {
	CallID    string
	Name      string
	Arguments string
}

// CallKindFunction marks a completed call as a named function invocation.
// Other kinds (e.g. a hosted search) get a fixed display message instead of
// output formatting.
const CallKindFunction = "function"

// CompletedCall is one finished call inside a StepCompleted event.
type CompletedCall struct {
	CallID string
	Kind   string
	Output string
}

// StepCompleted reports that a step finished, carrying every call it ran.
type StepCompleted struct {
	Calls []CompletedCall
}

// StepFailed reports that the step running a call failed.
type StepFailed struct {
	CallID  string
	Message string
}

// Run status values reported by RunStatus events.
const (
	RunInProgress = "in_progress"
	RunCompleted  = "completed"
	RunFailed     = "failed"
)

// RunStatus reports a run-level status transition. It never mutates the
// transcript; it exists for logging and tracing.
type RunStatus struct {
	RunID        string
	Status       string
	ErrorCode    string
	ErrorMessage string
}

func (MessageDelta) event()     {}
func (MessageCompleted) event() {}
func (ToolCallDelta) event()    {}
func (StepCompleted) event()    {}
func (StepFailed) event()       {}
func (RunStatus) event()        {}
