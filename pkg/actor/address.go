package actor

import (
	"fmt"
	"path"
	"strings"
)

// Address is the location of an actor within an actor system.
type Address struct {
	path string
}

// Addr returns a new address with the provided path components.
func Addr(rawPath ...interface{}) Address {
	if len(rawPath) == 0 {
		panic("must have a non-empty address")
	}
	parts := make([]string, 0, len(rawPath))
	for _, rawPart := range rawPath {
		part := fmt.Sprint(rawPart)
		if strings.ContainsAny(part, "/") {
			panic("address path parts cannot contain a slash")
		}
		parts = append(parts, part)
	}
	return Address{path: "/" + strings.Join(parts, "/")}
}

func (a Address) String() string {
	return a.path
}

// Local returns the local ID of the actor relative to the system's ID space.
func (a Address) Local() string {
	return path.Base(a.path)
}
