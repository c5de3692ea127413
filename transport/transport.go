// Package transport defines the boundary to chat-completion services.
package transport

import "context"

// Transport is the core abstraction over a chat-completion service.
// All transport implementations must satisfy this interface.
type Transport interface {
	// Name returns the transport identifier (e.g., "openai").
	Name() string

	// Send executes a blocking completion request. Exactly one
	// Response is returned per call.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// StreamingTransport extends Transport with a streaming round.
type StreamingTransport interface {
	Transport

	// SendStream executes a streaming completion request. The returned
	// stream yields fragments in arrival order and is not restartable.
	SendStream(ctx context.Context, req *Request) (ResponseStream, error)
}

// ResponseStream is a finite, ordered pull of response fragments.
type ResponseStream interface {
	// Next advances to the next fragment, returning false when the
	// stream is exhausted or failed.
	Next() bool

	// Current returns the fragment Next advanced to.
	Current() *Fragment

	// Err returns the error that terminated the stream, if any.
	Err() error

	// Close releases stream resources.
	Close() error

	// Accumulated returns the response assembled from all fragments
	// consumed so far, including any aggregated function call.
	Accumulated() *Response
}

// Fragment is one incremental piece of a streamed response.
type Fragment struct {
	Delta             string
	FunctionCallDelta *FunctionCallDelta
	FinishReason      FinishReason
}

// FunctionCallDelta carries incremental function-call data. Argument
// JSON may be split across any number of fragments.
type FunctionCallDelta struct {
	ID             string
	Name           string
	ArgumentsDelta string
}
