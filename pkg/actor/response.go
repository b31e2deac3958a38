package actor

import (
	"time"
)

// Response is a future to the result of asking an actor. An actor that stops
// without responding resolves the future with an error message.
type Response struct {
	source *Ref
	future <-chan Message

	resolved bool
	result   Message
}

// Source returns the reference to the actor that this response is from.
func (r *Response) Source() *Ref {
	return r.source
}

// Get returns the result of the ask, blocking until it is available. A nil
// result means the actor stopped without responding.
func (r *Response) Get() Message {
	if !r.resolved {
		r.result = <-r.future
		r.resolved = true
	}
	if r.result == errNoResponse {
		return nil
	}
	return r.result
}

// GetOrTimeout returns the result of the ask. The second result is false if
// the timeout elapsed before the actor responded.
func (r *Response) GetOrTimeout(timeout time.Duration) (Message, bool) {
	if r.resolved {
		return r.Get(), true
	}
	select {
	case r.result = <-r.future:
		r.resolved = true
		return r.Get(), true
	case <-time.After(timeout):
		return nil, false
	}
}

// Error returns the response as an error, if the actor responded with one.
func (r *Response) Error() error {
	if err, ok := r.Get().(error); ok {
		return err
	}
	return nil
}
