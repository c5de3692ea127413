package kernel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/Woland2k/semantic-kernel/schema"
)

// Function is an invocable unit the model can call. Implementations may
// be local Go functions, prompt templates, or remote plugin operations.
type Function interface {
	// Name returns the function's name within its plugin namespace.
	Name() string

	// Description returns the description published to the model.
	Description() string

	// Parameters returns the JSON schema for the function's parameters.
	Parameters() *jsonschema.Schema

	// Execute runs the function with the given JSON argument object.
	Execute(ctx context.Context, args json.RawMessage) (any, error)
}

// StructuredOutput is implemented by invocation outcomes that carry an
// extractable textual content field, such as responses from
// remote-plugin-backed functions.
type StructuredOutput interface {
	Content() string
}

// TypedFunction provides type-safe function creation with an
// auto-generated parameter schema.
type TypedFunction[In any, Out any] struct {
	name        string
	description string
	fn          func(ctx context.Context, in In) (Out, error)
	schema      *jsonschema.Schema
}

// NewFunction creates a type-safe function. The parameter schema is
// generated from In.
//
// Example:
//
//	type PriceInput struct {
//	    Item string `json:"item" jsonschema:"required,description=Item name"`
//	}
//
//	price := kernel.NewFunction("GetPrice", "Look up an item's price",
//	    func(ctx context.Context, in PriceInput) (string, error) {
//	        return lookupPrice(in.Item)
//	    },
//	)
func NewFunction[In any, Out any](
	name, description string,
	fn func(ctx context.Context, in In) (Out, error),
) *TypedFunction[In, Out] {
	return &TypedFunction[In, Out]{
		name:        name,
		description: description,
		fn:          fn,
		schema:      schema.For[In](),
	}
}

// Name returns the function's name.
func (f *TypedFunction[In, Out]) Name() string {
	return f.name
}

// Description returns the function's description.
func (f *TypedFunction[In, Out]) Description() string {
	return f.description
}

// Parameters returns the generated parameter schema.
func (f *TypedFunction[In, Out]) Parameters() *jsonschema.Schema {
	return f.schema
}

// Execute runs the function with JSON arguments. Implements Function.
func (f *TypedFunction[In, Out]) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var input In
	if err := json.Unmarshal(args, &input); err != nil {
		return nil, fmt.Errorf("unmarshaling arguments: %w", err)
	}
	return f.fn(ctx, input)
}

// TypedCall invokes the function with a typed input, bypassing JSON.
func (f *TypedFunction[In, Out]) TypedCall(ctx context.Context, input In) (Out, error) {
	return f.fn(ctx, input)
}

// normalizeOutcome flattens an invocation outcome to the string that is
// appended to the conversation: strings pass through, structured
// outputs contribute their content field, anything else is marshaled.
func normalizeOutcome(v any) (string, error) {
	switch out := v.(type) {
	case nil:
		return "", nil
	case string:
		return out, nil
	case StructuredOutput:
		return out.Content(), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling outcome: %w", err)
	}
	return string(b), nil
}
