package toolbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// tool is the concrete Tool produced by NewTool. The input schema is
// generated once at construction from the Args type parameter.
type tool[Args any] struct {
	name        string
	description string
	schema      interface{}
	handler     func(ctx context.Context, args Args) (interface{}, error)
}

// NewTool builds a Tool from a typed handler function. The Args type's
// jsonschema tags drive the generated input schema.
//
// Example:
//
//	checkStock := toolbox.NewTool("check_item_stock",
//		"Check the current stock count for an item.",
//		svc.CheckItemStock)
func NewTool[Args any](name, description string, handler func(ctx context.Context, args Args) (interface{}, error)) Tool {
	return &tool[Args]{
		name:        name,
		description: description,
		schema:      GenerateSchema[Args](),
		handler:     handler,
	}
}

func (t *tool[Args]) GetName() string             { return t.name }
func (t *tool[Args]) GetDescription() string      { return t.description }
func (t *tool[Args]) GetInputSchema() interface{} { return t.schema }

func (t *tool[Args]) Handle(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args Args
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, NewError("invalid_arguments", fmt.Sprintf("error unmarshaling arguments for '%s': %v", t.name, err))
		}
	}
	result, err := t.handler(ctx, args)
	if err != nil {
		if _, ok := err.(ToolError); ok {
			return nil, err
		}
		return nil, NewError("handler_execution_error", err.Error())
	}
	return result, nil
}

// ToolError provides a standardized structure for errors occurring within
// the toolbox. It carries a machine-readable code alongside a human-readable
// message.
type ToolError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Error implements the standard error interface for ToolError.
func (e ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a ToolError with the specified code and message.
//
// Common error codes:
//   - "invalid_arguments": When tool arguments don't match the expected schema
//   - "handler_execution_error": When the tool execution fails
//   - "tool_not_found": When a requested tool doesn't exist
func NewError(code, message string) error {
	return ToolError{Code: code, Message: message}
}

// GenerateSchema creates a JSON schema representation for the generic type T
// using reflection through the github.com/invopop/jsonschema library. The
// generation respects jsonschema struct tags (required, description).
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true, // keep the schema self-contained, no $refs
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	return reflector.Reflect(&v)
}
