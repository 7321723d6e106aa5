package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), `|___/`)
	assert.NotContains(t, buf.String(), "\x1b[", "a buffer is not a terminal")
}

func TestPlainRenderer(t *testing.T) {
	render := NewPlainRenderer()
	out, err := render("# Replay: swipe\n\n1. `LU`\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Replay: swipe")
	assert.Contains(t, out, "LU")
}
