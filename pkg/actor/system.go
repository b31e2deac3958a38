package actor

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// System is a flat registry of running actors. Unlike a full supervision
// tree, actors in the system are peers; stopping the system stops them all.
type System struct {
	id  string
	log *log.Entry

	lock sync.Mutex
	refs map[Address]*Ref
}

// NewSystem returns a new actor system with the provided ID.
func NewSystem(id string) *System {
	return &System{
		id:   id,
		log:  log.WithField("system", id),
		refs: map[Address]*Ref{},
	}
}

// ActorOf adds the actor to the system and starts it. If an actor with that
// address already exists, that actor's reference is returned instead. The
// second result is true if the actor reference was created and false
// otherwise.
func (s *System) ActorOf(address Address, actor Actor) (*Ref, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, ok := s.refs[address]; ok {
		return existing, false
	}
	ref := newRef(s, address, actor)
	s.refs[address] = ref
	return ref, true
}

// Get returns the reference with the provided address, or nil if no actor is
// registered there.
func (s *System) Get(address Address) *Ref {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.refs[address]
}

// StopAndAwaitTermination stops every actor in the system and waits for all
// of them to shut down.
func (s *System) StopAndAwaitTermination() error {
	s.lock.Lock()
	refs := make([]*Ref, 0, len(s.refs))
	for _, ref := range s.refs {
		refs = append(refs, ref)
	}
	s.lock.Unlock()

	var result error
	for _, ref := range refs {
		if err := ref.StopAndAwaitTermination(); err != nil {
			s.log.WithError(err).Errorf("error stopping actor %s", ref.Address())
			if result == nil {
				result = errors.Wrapf(err, "error stopping actor %s", ref.Address())
			}
		}
	}
	return result
}

func (s *System) remove(address Address) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.refs, address)
}
