// Package codec encodes and decodes Mesos protocol objects to and from their
// opaque wire representation. It validates well-formedness only; the meaning
// of the objects is left to the native driver on one side and the controller
// on the other.
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Encode serializes the object into the protocol's own deterministic wire
// encoding.
func Encode(msg proto.Message) ([]byte, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %T", msg)
	}
	return data, nil
}

// Decode deserializes the payload into the provided object. Decoding fails on
// any payload that is not a well-formed instance of the target schema,
// including a nil payload; this is a recoverable condition, never a panic.
func Decode(data []byte, into proto.Message) error {
	if data == nil {
		return errors.Errorf("cannot decode %T from a nil payload", into)
	}
	into.Reset()
	if err := proto.Unmarshal(data, into); err != nil {
		return errors.Wrapf(err, "malformed %T payload of %d bytes", into, len(data))
	}
	return nil
}

// DecodeSlice decodes each payload of the sequence independently into a new
// message. The operation is all or nothing: the first malformed element fails
// the whole sequence and no partial results are returned.
func DecodeSlice[T any, M interface {
	*T
	proto.Message
}](payloads [][]byte) ([]M, error) {
	decoded := make([]M, 0, len(payloads))
	for i, data := range payloads {
		msg := M(new(T))
		if err := Decode(data, msg); err != nil {
			return nil, errors.Wrapf(err, "element %d of %d", i, len(payloads))
		}
		decoded = append(decoded, msg)
	}
	return decoded, nil
}
