package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd(t *testing.T) {
	setupTestEnv(t)

	output := mustRun(t, "--help")

	assert.Contains(t, output, "tasklist is a single-user task list")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	for _, sub := range []string{"add", "list", "done", "delete", "filter", "theme", "board", "export", "import"} {
		assert.Contains(t, output, sub)
	}
}

func TestVersion(t *testing.T) {
	setupTestEnv(t)
	assert.Equal(t, "0.1.0", GetVersion())
	assert.Contains(t, mustRun(t, "version"), "tasklist 0.1.0")
}

func TestUnknownCommandFails(t *testing.T) {
	setupTestEnv(t)
	_, err := run(t, "frobnicate")
	assert.Error(t, err)
}
