// Package toolbox provides the registry of callable tool functions offered
// to the hosted agent. It handles schema generation, dispatch by name,
// argument decoding, and structured error payloads so that individual tool
// implementations only contain business logic.
package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
)

// Tool is one callable function: a name, a description and input schema for
// the agent, and a handler executing the operation.
type Tool interface {
	// GetName returns the unique name the agent invokes this tool by.
	GetName() string

	// GetDescription provides a human-readable description of what the
	// tool does, surfaced to the model during tool registration.
	GetDescription() string

	// GetInputSchema returns the JSON schema for the tool's arguments.
	GetInputSchema() interface{}

	// Handle decodes the raw JSON arguments and executes the operation.
	// The returned value must be JSON-serializable. Validation failures
	// that the agent can correct are returned as payloads, not errors;
	// a non-nil error means the invocation itself failed.
	Handle(ctx context.Context, args json.RawMessage) (interface{}, error)
}

// Registry holds the tools offered to the agent, keyed by name.
type Registry struct {
	tools map[string]Tool
	name  string
}

// NewRegistry creates a Registry with the provided tools. Nil tools are
// skipped with a warning; duplicate names are overwritten by the last entry.
func NewRegistry(name string, tools ...Tool) *Registry {
	toolMap := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		if tool == nil {
			log.Println("Warning: nil tool provided to toolbox.NewRegistry, skipping.")
			continue
		}
		if _, exists := toolMap[tool.GetName()]; exists {
			log.Printf("Warning: Duplicate tool name '%s' detected in toolbox.NewRegistry. Overwriting.", tool.GetName())
		}
		toolMap[tool.GetName()] = tool
	}
	return &Registry{tools: toolMap, name: name}
}

// GetName returns the configured registry name.
func (r *Registry) GetName() string {
	return r.name
}

// Tool looks up a registered tool by name.
func (r *Registry) Tool(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Tools returns all registered tools ordered by name.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// Names returns all registered tool names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.tools))
	for name := range r.tools {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch executes a tool by name and returns its serialized result. The
// string output is always valid JSON for the agent to consume: registry and
// handler failures are serialized as {"error": ...} payloads alongside the
// returned error, so callers can both display the failure and mark the
// invocation as errored.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		log.Printf("Toolbox: Requested tool '%s' not found", name)
		err := NewError("tool_not_found", fmt.Sprintf("Tool '%s' is not registered", name))
		return errorPayload(err), err
	}

	result, err := tool.Handle(ctx, args)
	if err != nil {
		log.Printf("Toolbox: Tool '%s' failed: %v", name, err)
		return errorPayload(err), err
	}

	out, err := json.Marshal(result)
	if err != nil {
		log.Printf("Toolbox: Failed to marshal result of '%s': %v", name, err)
		wrapped := NewError("result_marshal_error", err.Error())
		return errorPayload(wrapped), wrapped
	}
	return string(out), nil
}

func errorPayload(err error) string {
	out, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return `{"error": "internal error"}`
	}
	return string(out)
}
