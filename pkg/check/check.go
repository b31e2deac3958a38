package check

import (
	"fmt"

	"github.com/pkg/errors"
)

// True returns an error if the condition is false. The optional message and
// arguments are formatted into the error.
func True(condition bool, msgAndArgs ...interface{}) error {
	return check(condition, msgAndArgs, "expected true, got false")
}

// NotEmpty returns an error if the actual value is an empty string.
func NotEmpty(actual string, msgAndArgs ...interface{}) error {
	return check(actual != "", msgAndArgs, "expected non-empty string")
}

// In returns an error if the actual value is not contained in the expected
// list.
func In(actual string, expected []string, msgAndArgs ...interface{}) error {
	for _, value := range expected {
		if value == actual {
			return nil
		}
	}
	return check(false, msgAndArgs, "%s not in %v", actual, expected)
}

// Panic panics if the provided error is not nil. It is intended for checking
// documented preconditions whose violation is a programming error rather than
// a recoverable condition.
func Panic(err error) {
	if err != nil {
		panic(err)
	}
}

func check(
	condition bool, msgAndArgs []interface{}, internalFormat string, internalArgs ...interface{},
) error {
	if condition {
		return nil
	}
	message := messageFromMsgAndArgs(msgAndArgs...)
	if message == "" {
		message = fmt.Sprintf(internalFormat, internalArgs...)
	}
	return errors.New(message)
}

func messageFromMsgAndArgs(msgAndArgs ...interface{}) string {
	switch {
	case len(msgAndArgs) == 1:
		switch msg := msgAndArgs[0].(type) {
		case string:
			return msg
		default:
			return fmt.Sprintf("%+v", msg)
		}
	case len(msgAndArgs) > 1:
		return fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	default:
		return ""
	}
}
