package actor

import (
	"fmt"

	"github.com/pkg/errors"
)

// errNoResponse is resolved into asks whose recipient stopped before
// responding.
var errNoResponse = errors.New("actor stopped without responding")

type errUnexpectedMessage struct {
	recipient Address
	message   Message
}

func (e errUnexpectedMessage) Error() string {
	return fmt.Sprintf("unexpected message %T received by %s", e.message, e.recipient)
}

// ErrUnexpectedMessage returns an error for the context's current message.
// Actors return it from Receive for messages they do not handle; it is
// ignored for lifecycle messages and shuts the actor down otherwise.
func ErrUnexpectedMessage(ctx *Context) error {
	return errUnexpectedMessage{recipient: ctx.Self().Address(), message: ctx.Message()}
}
