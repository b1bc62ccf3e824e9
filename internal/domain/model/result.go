package model

// Result is the outcome of a call to the remote backend. It is either a
// Success carrying data or a Failure carrying at least one message. Callers
// branch on OK before reading Data.
type Result[T any] struct {
	ok       bool
	data     T
	messages []string
}

// Success builds a successful Result. Empty messages are discarded.
func Success[T any](data T, messages ...string) Result[T] {
	return Result[T]{ok: true, data: data, messages: compact(messages)}
}

// Failure builds a failed Result. A Failure always carries a message; when
// none of the supplied messages is non-empty a generic one is used.
func Failure[T any](messages ...string) Result[T] {
	msgs := compact(messages)
	if len(msgs) == 0 {
		msgs = []string{GenericFailureMessage}
	}
	return Result[T]{messages: msgs}
}

// GenericFailureMessage is used when a Failure is built without a message.
const GenericFailureMessage = "Something went wrong. Please try again."

// OK reports whether the Result is a Success.
func (r Result[T]) OK() bool { return r.ok }

// Data returns the payload. It is the zero value for a Failure.
func (r Result[T]) Data() T { return r.data }

// Message returns the first message, or "" when there is none.
func (r Result[T]) Message() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[0]
}

// Messages returns a copy of all messages.
func (r Result[T]) Messages() []string {
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Unwrap returns the payload and whether the Result is a Success.
func (r Result[T]) Unwrap() (T, bool) { return r.data, r.ok }

// MapResult converts the payload of a Success, keeping messages. Failures
// pass through with their messages.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Result[U]{messages: r.messages}
	}
	return Result[U]{ok: true, data: fn(r.data), messages: r.messages}
}

// Empty is the payload of calls whose response data is irrelevant.
type Empty struct{}

func compact(in []string) []string {
	var out []string
	for _, m := range in {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
