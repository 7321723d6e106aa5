package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/gestures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gestures version "+strings.TrimSpace(gestures.Version)+"\n", out)
}

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "swipe.jsonl")
	require.NoError(t, os.WriteFile(trace, []byte(`{"kind":"swipe","direction":"left"}`+"\n"), 0644))

	out, err := execute(t, "replay", "--json", "--no-effects", trace)
	require.NoError(t, err)
	assert.Equal(t, `{"at":0,"kind":"extra","value":"swipe-left"}`+"\n", out)
}

func TestReplayCommand_RequiresTrace(t *testing.T) {
	_, err := execute(t, "replay")
	assert.Error(t, err)
}
