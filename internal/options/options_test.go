package options

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedbridge/schedbridge/pkg/check"
)

func TestDefaultOptionsAreValidForSimulation(t *testing.T) {
	opts := DefaultOptions()
	opts.Simulate = true
	opts.Resolve()
	assert.NoError(t, check.Validate(opts))
}

func TestValidateRequiresMaster(t *testing.T) {
	opts := DefaultOptions()
	opts.Resolve()
	err := check.Validate(opts)
	assert.ErrorContains(t, err, "master address must be provided")
}

func TestValidateSecretRequiresPrincipal(t *testing.T) {
	opts := DefaultOptions()
	opts.Master = "127.0.0.1:5050"
	opts.Secret = "hunter2"
	assert.ErrorContains(t, check.Validate(opts), "a secret requires a principal")

	opts.Principal = "tester"
	assert.NoError(t, check.Validate(opts))
}

func TestResolveAssignsSimulationFrameworkID(t *testing.T) {
	opts := DefaultOptions()
	opts.Simulate = true
	opts.Resolve()
	assert.NotEmpty(t, opts.FrameworkID)
	assert.Equal(t, "sim", opts.Master)

	opts = DefaultOptions()
	opts.Master = "127.0.0.1:5050"
	opts.Resolve()
	assert.Empty(t, opts.FrameworkID)
}

func TestPrintableMasksSecret(t *testing.T) {
	opts := DefaultOptions()
	opts.Principal = "tester"
	opts.Secret = "hunter2"

	printed, err := opts.Printable()
	assert.NoError(t, err)
	assert.False(t, strings.Contains(string(printed), "hunter2"))
	assert.True(t, strings.Contains(string(printed), "tester"))
}
