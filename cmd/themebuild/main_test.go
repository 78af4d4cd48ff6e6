package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMainSuccess(t *testing.T) {
	original := executeFunc
	t.Cleanup(func() { executeFunc = original })
	executeFunc = func([]string, io.Writer, io.Writer) error { return nil }

	exitCalled := false
	runMain([]string{"themebuild"}, io.Discard, io.Discard, func(int) { exitCalled = true })
	assert.False(t, exitCalled)
}

func TestRunMainSilentExit(t *testing.T) {
	original := executeFunc
	t.Cleanup(func() { executeFunc = original })
	executeFunc = func([]string, io.Writer, io.Writer) error {
		return &SilentExitError{Code: 3}
	}

	var stderr bytes.Buffer
	var code int
	runMain([]string{"themebuild"}, io.Discard, &stderr, func(c int) { code = c })
	assert.Equal(t, 3, code)
	assert.Empty(t, stderr.String())
}

func TestRunMainError(t *testing.T) {
	original := executeFunc
	t.Cleanup(func() { executeFunc = original })
	executeFunc = func([]string, io.Writer, io.Writer) error {
		return errors.New("toolchain exploded")
	}

	var stderr bytes.Buffer
	var code int
	runMain([]string{"themebuild"}, io.Discard, &stderr, func(c int) { code = c })
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "toolchain exploded")
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version, Commit, BuildDate = "1.2.3", "unknown", "unknown"
	assert.Equal(t, "1.2.3", versionString())

	Commit, BuildDate = "abc123", "2026-08-23"
	got := versionString()
	require.Contains(t, got, "1.2.3")
	assert.Contains(t, got, "abc123")
	assert.Contains(t, got, "2026-08-23")
}
