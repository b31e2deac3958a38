package actor

// Message holds the communication protocol between actors. Actors can send
// messages to other actors and receive messages from other actors.
type Message interface{}

// Actor lifecycle messages.
type (
	// PreStart notifies the actor before it begins processing its mailbox.
	PreStart struct{}

	// PostStop notifies the actor that its reference is shutting down.
	PostStop struct{}

	// stop is an internal message sent to actors to stop the actor.
	stop struct{}
)

// Actor is an object that encapsulates both state and behavior.
type Actor interface {
	// Receive defines the actor's behavior. Receive is called for each message
	// in the mailbox until a request to stop is received.
	Receive(context *Context) error
}

// ActorFunc is a function that encapsulates behavior. It is a stateless actor,
// useful for mocking.
type ActorFunc func(context *Context) error

// Receive implements actor.Actor.
func (f ActorFunc) Receive(context *Context) error {
	return f(context)
}
