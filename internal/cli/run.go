package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/gestures/internal/presentation/graph"
	"github.com/aretw0/gestures/internal/presentation/tui"
	"github.com/aretw0/gestures/pkg/config"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/runner"
)

// ReplayOptions contains all the configuration for the replay command.
type ReplayOptions struct {
	TracePath  string
	ConfigPath string
	JSON       bool
	Report     bool
	Quiet      bool
	NoEffects  bool
	Watch      bool
	Graph      bool
	Drain      time.Duration
	LogLevel   string

	// Out receives the replay output; os.Stdout when nil.
	Out io.Writer

	// Render turns the markdown report into terminal output; a glamour
	// renderer when nil.
	Render func(string) (string, error)
}

// Execute handles the replay command, dispatching to a single run or to
// watch mode.
func Execute(ctx context.Context, opts ReplayOptions) error {
	if opts.Graph && opts.JSON {
		return fmt.Errorf("--graph and --json cannot be used together")
	}
	if opts.Watch {
		if opts.JSON {
			return fmt.Errorf("--watch and --json cannot be used together")
		}
		return handleExecutionError(RunWatch(ctx, opts, defaultWatchDebounce))
	}
	_, err := Replay(ctx, opts)
	return handleExecutionError(err)
}

// Replay runs one trace and prints its callbacks, and the report when asked.
func Replay(ctx context.Context, opts ReplayOptions) (*runner.Summary, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	trace, err := runner.LoadTrace(opts.TracePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Replaying trace", "name", trace.Name, "events", len(trace.Events))

	var handler runner.Handler
	if opts.JSON {
		handler = runner.NewJSONHandler(out)
	} else {
		if !opts.Quiet {
			tui.PrintBanner(out)
		}
		handler = runner.NewTextHandler(out)
	}

	r := runner.NewRunner(createRunnerOptions(logger, cfg, opts, handler)...)
	summary, err := r.Run(ctx, trace)
	if err != nil {
		return nil, err
	}

	if opts.Report {
		if err := printReport(out, opts, summary); err != nil {
			return summary, err
		}
	}
	if opts.Graph {
		if _, err := fmt.Fprint(out, graph.GenerateMermaid(summary.Transitions, graph.NewOverlay(summary))); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(logger *slog.Logger, cfg domain.Config, opts ReplayOptions, handler runner.Handler) []runner.Option {
	rOpts := []runner.Option{
		runner.WithHandler(handler),
		runner.WithLogger(logger),
		runner.WithConfig(cfg),
		runner.WithEffects(!opts.NoEffects),
	}
	if opts.Drain > 0 {
		rOpts = append(rOpts, runner.WithDrain(opts.Drain))
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		rOpts = append(rOpts, runner.WithLifecycleHooks(createDebugHooks(logger)))
	}
	return rOpts
}

func printReport(out io.Writer, opts ReplayOptions, summary *runner.Summary) error {
	if opts.JSON {
		return json.NewEncoder(out).Encode(map[string]any{"summary": summary})
	}
	render := opts.Render
	if render == nil {
		render = tui.NewRenderer()
	}
	rendered, err := render(summary.Markdown())
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
