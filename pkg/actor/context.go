package actor

import (
	log "github.com/sirupsen/logrus"
)

// Context holds contextual information for the context's recipient and the
// current message.
type Context struct {
	message    Message
	recipient  *Ref
	result     chan<- Message
	resultSent bool
}

// Message returns the underlying message.
func (c *Context) Message() Message {
	return c.message
}

// Log returns the context's recipient's logger.
func (c *Context) Log() *log.Entry {
	return c.recipient.log
}

// Self returns the reference to the context's recipient.
func (c *Context) Self() *Ref {
	return c.recipient
}

// Tell sends the specified message to the actor (fire-and-forget semantics).
func (c *Context) Tell(actor *Ref, message Message) {
	actor.Tell(message)
}

// Ask sends the specified message to the actor, returning a future to the
// result of the call.
func (c *Context) Ask(actor *Ref, message Message) *Response {
	return actor.Ask(message)
}

// ExpectingResponse returns true if the sender is expecting a response and
// false otherwise.
func (c *Context) ExpectingResponse() bool {
	return c.result != nil && !c.resultSent
}

// Respond returns a response message for this request message back to the
// sender.
func (c *Context) Respond(message Message) {
	if c.result == nil {
		panic("sender is not expecting a response")
	}
	c.resultSent = true
	c.result <- message
	close(c.result)
}
