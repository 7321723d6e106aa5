package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/gestures/internal/presentation/tui"
	"github.com/aretw0/gestures/pkg/adapters/memory"
	"github.com/aretw0/gestures/pkg/adapters/redis"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diagonalTrace = `name: diagonal
events:
  - {kind: down, button: right, x: 0, y: 0}
  - {kind: move, at: 10, x: 10, y: 10}
  - {kind: move, at: 20, x: 20, y: 20}
  - {kind: up, at: 30, button: right, x: 20, y: 20}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReplay_TextOutput(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	summary, err := Replay(context.Background(), ReplayOptions{
		TracePath: writeFile(t, dir, "diagonal.yaml", diagonalTrace),
		Quiet:     true,
		Out:       &out,
	})
	require.NoError(t, err)

	// Without diagonals a 45 degree move resolves to the vertical axis.
	assert.Equal(t, []string{"D"}, summary.Gestures)
	assert.Contains(t, out.String(), "gesture")
	assert.NotContains(t, out.String(), "|___/")
}

func TestReplay_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	summary, err := Replay(context.Background(), ReplayOptions{
		TracePath:  writeFile(t, dir, "diagonal.yaml", diagonalTrace),
		ConfigPath: writeFile(t, dir, "gestures.yaml", "diagonals: true\n"),
		Quiet:      true,
		Out:        &out,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, summary.Gestures)
}

func TestReplay_JSONWithReport(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	_, err := Replay(context.Background(), ReplayOptions{
		TracePath: writeFile(t, dir, "diagonal.yaml", diagonalTrace),
		JSON:      true,
		Report:    true,
		NoEffects: true,
		Out:       &out,
	})
	require.NoError(t, err)

	var lines []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), scanner.Text())
		lines = append(lines, line)
	}
	require.Len(t, lines, 3)
	assert.Equal(t, "direction", lines[0]["kind"])
	assert.Equal(t, "gesture", lines[1]["kind"])
	assert.Equal(t, "D", lines[1]["value"])
	assert.Contains(t, lines[2], "summary")
}

func TestReplay_MarkdownReport(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	_, err := Replay(context.Background(), ReplayOptions{
		TracePath: writeFile(t, dir, "diagonal.yaml", diagonalTrace),
		Report:    true,
		Out:       &out,
		Render:    tui.NewPlainRenderer(),
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "|___/")
	assert.Contains(t, out.String(), "Replay: diagonal")
}

func TestReplay_Graph(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	_, err := Replay(context.Background(), ReplayOptions{
		TracePath: writeFile(t, dir, "diagonal.yaml", diagonalTrace),
		Graph:     true,
		Quiet:     true,
		Out:       &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), `idle -- "start" --> gesture`)
	assert.Contains(t, out.String(), `gesture -- "release" --> idle`)
	assert.Contains(t, out.String(), "class idle current;")
}

func TestReplay_Errors(t *testing.T) {
	dir := t.TempDir()
	trace := writeFile(t, dir, "diagonal.yaml", diagonalTrace)

	_, err := Replay(context.Background(), ReplayOptions{TracePath: filepath.Join(dir, "missing.yaml"), Quiet: true, Out: &bytes.Buffer{}})
	assert.Error(t, err)

	_, err = Replay(context.Background(), ReplayOptions{
		TracePath:  trace,
		ConfigPath: writeFile(t, dir, "bad.yaml", "deadzone: 0\n"),
		Quiet:      true,
		Out:        &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = Replay(context.Background(), ReplayOptions{TracePath: trace, LogLevel: "loud", Out: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	err := Execute(context.Background(), ReplayOptions{Watch: true, JSON: true})
	assert.Error(t, err)
	err = Execute(context.Background(), ReplayOptions{Graph: true, JSON: true})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	err = Execute(ctx, ReplayOptions{TracePath: writeFile(t, dir, "diagonal.yaml", diagonalTrace), Quiet: true, Out: &bytes.Buffer{}})
	assert.NoError(t, err, "an interrupted replay exits cleanly")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, Validate(&out, writeFile(t, dir, "ok.yaml", "trigger_button: left\ndeadzone: 12\nswipe_timeout: 300ms\n"), false))
	assert.Contains(t, out.String(), "trigger_button: left")
	assert.Contains(t, out.String(), "deadzone: 12")
	assert.Contains(t, out.String(), "swipe_timeout: 300ms")

	out.Reset()
	require.NoError(t, Validate(&out, "", true))
	var cfg domain.Config
	require.NoError(t, json.Unmarshal(out.Bytes(), &cfg))
	assert.Equal(t, domain.DefaultConfig(), cfg)

	err := Validate(&out, writeFile(t, dir, "bad.yaml", "min_nodes: 0\n"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestCreateJournal(t *testing.T) {
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		j, closeFn, err := createJournal(ctx, "", 0)
		require.NoError(t, err)
		assert.IsType(t, &memory.Journal{}, j)
		assert.NoError(t, closeFn())
	})

	t.Run("redis address and url", func(t *testing.T) {
		mr := miniredis.RunT(t)
		for _, target := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
			j, closeFn, err := createJournal(ctx, target, time.Minute)
			require.NoError(t, err, target)
			assert.IsType(t, &redis.Journal{}, j)
			require.NoError(t, j.Append(ctx, domain.JournalEntry{Surface: "s1", Kind: domain.EntryGesture, Value: "RD"}))
			assert.NoError(t, closeFn())
		}
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, _, err := createJournal(ctx, addr, 0)
		assert.Error(t, err)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, _, err := createJournal(ctx, "redis://:bad:port", 0)
		assert.Error(t, err)
	})
}

func TestSecureJournal(t *testing.T) {
	ctx := context.Background()
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	plain := memory.NewJournal()
	j, err := secureJournal(plain, nil, nil)
	require.NoError(t, err)
	assert.Same(t, plain, j, "nothing configured leaves the journal untouched")

	underlying := memory.NewJournal()
	j, err = secureJournal(underlying, []string{key}, []string{"^private-"})
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, domain.JournalEntry{Surface: "tab-1", Kind: domain.EntryGesture, Value: "RD"}))

	entries, err := j.List(ctx, "tab-1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "RD", entries[0].Value)

	stored, err := underlying.List(ctx, "tab-1", 0)
	require.NoError(t, err)
	assert.NotEqual(t, "RD", stored[0].Value)

	_, err = secureJournal(plain, []string{"not base64!"}, nil)
	assert.Error(t, err)
	_, err = secureJournal(plain, []string{base64.StdEncoding.EncodeToString([]byte("short"))}, nil)
	assert.Error(t, err)
	_, err = secureJournal(plain, nil, []string{"("})
	assert.Error(t, err)
}

func TestNewService(t *testing.T) {
	ctx := context.Background()
	svc, err := newService(ctx, ServeOptions{}, createQuietLogger(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close(ctx)) }()

	srv := httptest.NewServer(svc.handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/surfaces/tab-1", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "gestures_attached_surfaces 1")
	assert.Contains(t, body.String(), "go_goroutines")
}

func createQuietLogger(t *testing.T) *slog.Logger {
	t.Helper()
	logger, err := createLogger("")
	require.NoError(t, err)
	return logger
}

// lockedBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	dir := t.TempDir()
	trace := writeFile(t, dir, "diagonal.yaml", diagonalTrace)
	out := &lockedBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, ReplayOptions{TracePath: trace, Quiet: true, Out: out}, 10*time.Millisecond)
	}()

	waiting := func() int { return strings.Count(out.String(), "Waiting for changes") }
	require.Eventually(t, func() bool { return waiting() >= 1 }, time.Second, 5*time.Millisecond)
	runs := waiting()

	// A broken trace is reported and the watcher keeps going.
	require.NoError(t, os.WriteFile(trace, []byte("events: []\n"), 0644))
	require.Eventually(t, func() bool { return waiting() > runs }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Replay failed") }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunWatch_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	trace := writeFile(t, dir, "diagonal.yaml", diagonalTrace)
	out := &lockedBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = RunWatch(ctx, ReplayOptions{TracePath: trace, Quiet: true, Out: out}, 10*time.Millisecond)
	}()

	waiting := func() int { return strings.Count(out.String(), "Waiting for changes") }
	require.Eventually(t, func() bool { return waiting() == 1 }, time.Second, 5*time.Millisecond)

	writeFile(t, dir, "notes.txt", "unrelated")
	assert.Never(t, func() bool { return waiting() > 1 }, 150*time.Millisecond, 10*time.Millisecond)
}

func TestRunWatch_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere", "trace.yaml")
	err := RunWatch(context.Background(), ReplayOptions{TracePath: missing, Quiet: true, Out: &bytes.Buffer{}}, time.Millisecond)
	assert.Error(t, err)
}

func TestRelevantEvent(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace.yaml")
	targets, err := watchTargets(trace, "")
	require.NoError(t, err)
	assert.Len(t, targets, 1)
	assert.Equal(t, map[string]bool{dir: true}, dirsOf(targets))

	assert.True(t, relevantEvent(fsnotify.Event{Name: trace, Op: fsnotify.Write}, targets))
	assert.True(t, relevantEvent(fsnotify.Event{Name: trace, Op: fsnotify.Create}, targets))
	assert.False(t, relevantEvent(fsnotify.Event{Name: trace, Op: fsnotify.Chmod}, targets))
	assert.False(t, relevantEvent(fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write}, targets))
}
