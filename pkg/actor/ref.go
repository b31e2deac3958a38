package actor

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Ref is an immutable reference to an actor. It is the actor's addressable
// identity: holders of a Ref can send the actor messages but cannot reach its
// state directly.
type Ref struct {
	log *log.Entry

	address        Address
	registeredTime time.Time

	system *System
	actor  Actor
	inbox  *inbox

	// lock guards the shutdown state and close listeners. When adding a close
	// listener after the actor has shut down, the terminal error is returned
	// immediately instead.
	lock      sync.Mutex
	err       error
	listeners []chan error
	shutdown  bool
}

func newRef(system *System, address Address, actor Actor) *Ref {
	typeName := reflect.TypeOf(actor).String()
	if strings.Contains(typeName, ".") {
		typeName = strings.Split(typeName, ".")[1]
	}
	ref := &Ref{
		log: log.WithField("type", typeName).WithField("id", address.Local()).WithField(
			"system", system.id),

		address:        address,
		registeredTime: time.Now(),

		system: system,
		actor:  actor,
		inbox:  newInbox(),
	}

	go ref.run()
	return ref
}

// Address returns the address of the actor.
func (r *Ref) Address() Address {
	return r.address
}

// RegisteredTime returns the time that the actor registered with the system.
func (r *Ref) RegisteredTime() time.Time {
	return r.registeredTime
}

func (r *Ref) String() string {
	return fmt.Sprintf("{%T: %s://%s}", r.actor, r.system.id, r.address.String())
}

// Tell sends the message to the actor's mailbox and returns without waiting
// for it to be processed. Messages from a single sender are processed in the
// order they were sent.
func (r *Ref) Tell(message Message) {
	r.inbox.put(message, nil)
}

// Ask sends the message to the actor's mailbox, returning a future to the
// result of the call.
func (r *Ref) Ask(message Message) *Response {
	result := make(chan Message, 1)
	r.inbox.put(message, result)
	return &Response{source: r, future: result}
}

// Stop asynchronously notifies the actor to stop.
func (r *Ref) Stop() {
	r.inbox.put(stop{}, nil)
}

// AwaitTermination waits for the actor to stop, returning an error if the
// actor failed during its lifecycle.
func (r *Ref) AwaitTermination() error {
	r.lock.Lock()
	if r.shutdown {
		r.lock.Unlock()
		return r.err
	}
	listener := make(chan error, 1)
	r.listeners = append(r.listeners, listener)
	r.lock.Unlock()
	return <-listener
}

// StopAndAwaitTermination synchronously stops the actor, returning an error
// if the actor fails to close properly.
func (r *Ref) StopAndAwaitTermination() error {
	r.Stop()
	return r.AwaitTermination()
}

func (r *Ref) run() {
	defer r.close()
	if r.err = r.receive(&Context{recipient: r, message: PreStart{}}); r.err != nil {
		return
	}
	for {
		env, ok := r.inbox.get()
		if !ok {
			return
		}
		if _, isStop := env.message.(stop); isStop {
			return
		}

		ctx := &Context{recipient: r, message: env.message, result: env.result}
		r.err = r.receive(ctx)
		if ctx.ExpectingResponse() {
			ctx.Respond(errNoResponse)
		}
		if r.err != nil {
			return
		}
	}
}

// receive passes the message to the actor implementation. Unhandled lifecycle
// messages are not an error.
func (r *Ref) receive(ctx *Context) error {
	err := r.actor.Receive(ctx)
	switch ctx.Message().(type) {
	case PreStart, PostStop:
		if _, ok := err.(errUnexpectedMessage); ok {
			return nil
		}
	}
	return err
}

func (r *Ref) close() {
	if r.err != nil {
		r.log.WithError(r.err).Error("error while actor was running")
	}
	// Recover from an actor panic and set the error flag.
	if rec := recover(); rec != nil {
		r.log.Error(rec, "\n", string(debug.Stack()))
		r.err = errors.Errorf("unexpected panic: %v", rec)
	}

	// Drain the remaining messages in the inbox. All senders expecting
	// results are sent an errNoResponse.
	for _, env := range r.inbox.close() {
		if env.result != nil {
			env.result <- errNoResponse
			close(env.result)
		}
	}

	// Ask the underlying actor implementation to clean up.
	if err := r.receive(&Context{recipient: r, message: PostStop{}}); err != nil {
		r.log.WithError(err).Error("error shutting down actor")
		if r.err == nil {
			r.err = err
		}
	}

	r.system.remove(r.address)

	r.lock.Lock()
	defer r.lock.Unlock()

	// Notify all listeners that the actor has stopped.
	for _, listener := range r.listeners {
		if r.err != nil {
			listener <- r.err
		}
		close(listener)
	}
	r.listeners = nil
	r.shutdown = true
}
