package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteVersion(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TASKDECK_CONFIG", "")

	args := os.Args
	t.Cleanup(func() { os.Args = args })
	os.Args = []string{"taskdeck", "version"}

	assert.NoError(t, Execute())
}

func TestExecuteUnknownCommand(t *testing.T) {
	args := os.Args
	t.Cleanup(func() { os.Args = args })
	os.Args = []string{"taskdeck", "no-such-command"}

	assert.Error(t, Execute())
}
