package actor

import (
	"sync"
)

type envelope struct {
	message Message
	result  chan<- Message
}

// inbox is an unbounded FIFO mailbox. Enqueueing never blocks, so senders are
// decoupled from the speed of the receiving actor; messages from a single
// sender are dequeued in the order they were enqueued.
type inbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []envelope
	closed bool
}

func newInbox() *inbox {
	i := &inbox{}
	i.cond = sync.NewCond(&i.mu)
	return i
}

func (i *inbox) put(message Message, result chan<- Message) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		// The actor is already shut down; senders expecting a result are told
		// there is none.
		if result != nil {
			result <- errNoResponse
			close(result)
		}
		return
	}
	if len(i.queue) == 0 {
		i.cond.Broadcast()
	}
	i.queue = append(i.queue, envelope{message: message, result: result})
}

// get blocks until a message is available or the inbox is closed. The second
// return value is false once the inbox has been closed.
func (i *inbox) get() (envelope, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for len(i.queue) == 0 && !i.closed {
		i.cond.Wait()
	}
	if i.closed {
		return envelope{}, false
	}
	env := i.queue[0]
	i.queue = i.queue[1:]
	return env, true
}

// close marks the inbox as closed and returns any messages that were still
// queued so the owner can respond to pending asks.
func (i *inbox) close() []envelope {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	remaining := i.queue
	i.queue = nil
	i.cond.Broadcast()
	return remaining
}

func (i *inbox) len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.queue)
}
