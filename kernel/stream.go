package kernel

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/Woland2k/semantic-kernel/transport"
)

// RoundStream is one in-flight streaming round. Text deltas are
// forwarded as they arrive via Deltas; nothing is committed to the
// conversation until Finish, which appends exactly one assistant turn
// for the whole reply and then reconciles the aggregated function call.
//
// Abandoning the stream without calling Finish leaves the conversation
// with only the user turn: the assistant turn is committed atomically
// at stream end or not at all.
type RoundStream struct {
	session  *Session
	stream   transport.ResponseStream
	text     strings.Builder
	consumed bool
	finished bool
	round    *Round
	err      error
}

// SendStream runs one streaming round. The request is identical to
// Send's, issued over the streaming transport.
//
// Example:
//
//	rs, err := sess.SendStream(ctx, "Tell me a story")
//	if err != nil {
//	    return err
//	}
//	defer rs.Close()
//
//	for delta := range rs.Deltas() {
//	    fmt.Print(delta)
//	}
//	round, err := rs.Finish(ctx)
func (s *Session) SendStream(ctx context.Context, prompt string, opts ...RoundOption) (*RoundStream, error) {
	tp, err := s.transport()
	if err != nil {
		return nil, err
	}

	st, ok := tp.(transport.StreamingTransport)
	if !ok {
		return nil, fmt.Errorf("transport %q does not support streaming", tp.Name())
	}

	s.conv.Append(UserTurn(prompt))

	stream, err := st.SendStream(ctx, s.buildRequest(opts))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	return &RoundStream{session: s, stream: stream}, nil
}

// Deltas returns an iterator over incremental text fragments, suitable
// for live display. Breaking out of the loop abandons consumption;
// Finish will drain the remainder.
func (rs *RoundStream) Deltas() iter.Seq[string] {
	return func(yield func(string) bool) {
		for rs.stream.Next() {
			delta := rs.stream.Current().Delta
			if delta == "" {
				continue
			}
			rs.text.WriteString(delta)
			if !yield(delta) {
				return
			}
		}
		rs.consumed = true
	}
}

// Finish completes the round. It drains any unconsumed fragments so the
// committed assistant turn always carries the full concatenated text
// (even if empty), then resolves and executes the stream's aggregated
// function call exactly like a blocking round.
//
// A mid-stream failure (including context cancellation) returns a
// *TransportError and commits nothing.
func (rs *RoundStream) Finish(ctx context.Context) (*Round, error) {
	if rs.finished {
		return rs.round, rs.err
	}
	rs.finished = true

	if !rs.consumed {
		for rs.stream.Next() {
			rs.text.WriteString(rs.stream.Current().Delta)
		}
	}
	if err := rs.stream.Err(); err != nil {
		rs.err = &TransportError{Cause: err}
		return nil, rs.err
	}

	full := rs.text.String()
	rs.session.conv.Append(AssistantTurn(full))

	round := &Round{Text: full}
	if call := rs.stream.Accumulated().FunctionCall; call != nil {
		rs.session.reconcile(ctx, call, round)
	}

	rs.round = round
	return round, nil
}

// Close releases stream resources. Safe to call after Finish.
func (rs *RoundStream) Close() error {
	return rs.stream.Close()
}
