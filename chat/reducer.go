package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// activeCall tracks one in-flight tool call between its first argument delta
// and its terminal step event.
type activeCall struct {
	name      string
	arguments strings.Builder
	status    BubbleStatus
}

// Reducer folds the event stream from one agent run into a transcript.
//
// Per logical assistant message it moves absent -> streaming -> finalized;
// per tool call it moves unseen -> pending -> done or error. Applying the
// same event twice converges on the same transcript: bubbles are upserted by
// call identity, never appended twice.
//
// A Reducer is scoped to one streaming session; create a fresh one per turn
// so the active tool-call table starts empty.
type Reducer struct {
	transcript *Transcript

	currentMessageID string
	accumulated      strings.Builder
	open             *Message

	active map[string]*activeCall
}

// NewReducer creates a reducer appending into the given transcript.
func NewReducer(t *Transcript) *Reducer {
	return &Reducer{
		transcript: t,
		active:     make(map[string]*activeCall),
	}
}

// Apply folds one event into the transcript. Unknown event kinds return an
// error; the caller decides whether to skip or abort.
func (r *Reducer) Apply(ev Event) error {
	switch e := ev.(type) {
	case MessageDelta:
		r.applyMessageDelta(e)
	case MessageCompleted:
		r.applyMessageCompleted(e)
	case ToolCallDelta:
		r.applyToolCallDelta(e)
	case StepCompleted:
		r.applyStepCompleted(e)
	case StepFailed:
		r.applyStepFailed(e)
	case RunStatus:
		r.applyRunStatus(e)
	default:
		return fmt.Errorf("unhandled event type %T", ev)
	}
	return nil
}

func (r *Reducer) applyMessageDelta(e MessageDelta) {
	if e.MessageID != r.currentMessageID {
		// A new logical message begins. The previous open entry already
		// holds its final partial content; start a fresh one.
		r.currentMessageID = e.MessageID
		r.accumulated.Reset()
		r.open = nil
	}
	if e.Text == "" {
		return
	}
	r.accumulated.WriteString(e.Text)

	if r.open == nil {
		r.open = r.transcript.Append(RoleAssistant, r.accumulated.String())
		return
	}
	r.open.Content = r.accumulated.String()
}

func (r *Reducer) applyMessageCompleted(e MessageCompleted) {
	final := strings.Join(e.Parts, "")

	if r.open != nil {
		if r.open.Content != final {
			r.open.Content = final
		}
	} else if final != "" {
		r.transcript.Append(RoleAssistant, final)
	}

	// No message is open after finalization.
	r.currentMessageID = ""
	r.accumulated.Reset()
	r.open = nil
}

func (r *Reducer) applyToolCallDelta(e ToolCallDelta) {
	if e.CallID == "" {
		return
	}
	call, tracked := r.active[e.CallID]
	if !tracked {
		if e.Name == "" {
			// An argument fragment for a call we never saw announced;
			// nothing to attach it to.
			return
		}
		call = &activeCall{name: e.Name, status: BubblePending}
		r.active[e.CallID] = call
		r.transcript.UpsertBubble(bubbleKey(e.CallID), bubbleTitle(e.Name, BubblePending), BubblePending, "Running...")
	}
	// Argument text accumulates for bookkeeping but is not surfaced.
	call.arguments.WriteString(e.Arguments)
}

func (r *Reducer) applyStepCompleted(e StepCompleted) {
	for _, c := range e.Calls {
		if c.Kind != CallKindFunction {
			r.transcript.UpsertBubble(bubbleKey(c.CallID), bubbleTitle("web_search", BubbleDone), BubbleDone, "Finished searching web sources.")
			delete(r.active, c.CallID)
			continue
		}

		name := "unknown_function"
		if call, ok := r.active[c.CallID]; ok {
			name = call.name
		}
		message := formatToolOutput(name, c.Output)
		r.transcript.UpsertBubble(bubbleKey(c.CallID), bubbleTitle(name, BubbleDone), BubbleDone, message)
		delete(r.active, c.CallID)
	}
}

func (r *Reducer) applyStepFailed(e StepFailed) {
	name := "unknown_function"
	if call, ok := r.active[e.CallID]; ok {
		name = call.name
	}
	message := "Tool call failed: " + name
	if e.Message != "" {
		message += " - " + e.Message
	}
	r.transcript.UpsertBubble(bubbleKey(e.CallID), bubbleTitle(name, BubbleError), BubbleError, message)
	delete(r.active, e.CallID)
}

func (r *Reducer) applyRunStatus(e RunStatus) {
	switch e.Status {
	case RunFailed:
		if e.ErrorCode != "" || e.ErrorMessage != "" {
			log.Printf("Run %s failed: %s: %s", e.RunID, e.ErrorCode, e.ErrorMessage)
		} else {
			log.Printf("Run %s failed with no error details", e.RunID)
		}
	case RunCompleted:
		log.Printf("Run %s completed successfully", e.RunID)
	}
}

// bubbleKey derives the stable transcript identity of a tool bubble from the
// external call ID.
func bubbleKey(callID string) string {
	if callID == "" {
		return "tool-noid"
	}
	return "tool-" + callID
}

// formatToolOutput picks the display message for a completed function call.
// Priority: a layout_visual field verbatim, then a message field, then an
// error field, then a function-specific summary, then a truncated fallback.
// Output that is not valid JSON degrades to a truncated raw display.
func formatToolOutput(name, output string) string {
	fields, err := decodeOutput(output)
	if err != nil {
		return "Completed. Output (non-JSON): " + truncate(output, 100)
	}

	if visual, ok := fields["layout_visual"].(string); ok && name == "get_shelf_layout" {
		return visual
	}
	if message, ok := fields["message"].(string); ok {
		return message
	}
	if errMsg, ok := fields["error"].(string); ok {
		return "Error: " + errMsg
	}

	switch name {
	case "check_item_stock":
		if stock, ok := fields["stock"]; ok {
			return fmt.Sprintf("%v (ID: %v): %v units in stock.", fields["name"], fields["item_id"], stock)
		}
	case "find_item_location":
		if location, ok := fields["location_id"]; ok {
			return fmt.Sprintf("%v (ID: %v) is located at Shelf %v, Position %v.",
				fields["name"], fields["item_id"], location, fields["position"])
		}
	case "get_items_needing_restock":
		if count, ok := fields["count"].(json.Number); ok {
			return formatLowStock(count, fields["low_stock_items"])
		}
	}

	return "Completed. Output: " + truncate(output, 100)
}

func formatLowStock(count json.Number, items interface{}) string {
	n, _ := count.Int64()
	if n <= 0 {
		return "No items found needing restock."
	}
	rows, _ := items.([]interface{})
	examples := make([]string, 0, 3)
	for _, row := range rows {
		if len(examples) == 3 {
			break
		}
		fields, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		examples = append(examples, fmt.Sprintf("%v (%v)", fields["name"], fields["current_stock"]))
	}
	suffix := "."
	if n > 3 {
		suffix = "..."
	}
	return fmt.Sprintf("Found %d low stock items. Examples: %s%s", n, strings.Join(examples, ", "), suffix)
}

// decodeOutput parses a tool's raw output as a JSON object, keeping numbers
// as json.Number so counts render without a float suffix.
func decodeOutput(output string) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(output)))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
