package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/pkg/domain"
)

// createLogger configures the application logger from a --log-level value.
// An empty level keeps the CLI quiet.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// createDebugHooks logs every lifecycle event at Debug.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Debug("Mode Transition", "surface", e.Surface, "from", e.From, "to", e.To, "cause", e.Cause)
		},
		OnDirection: func(e *domain.GestureEvent) {
			logger.Debug("Direction", "surface", e.Surface, "chain", e.Chain.String())
		},
		OnGesture: func(e *domain.GestureEvent) {
			logger.Debug("Gesture", "surface", e.Surface, "chain", e.Chain.String())
		},
		OnExtra: func(e *domain.GestureEvent) {
			logger.Debug("Extra Gesture", "surface", e.Surface, "reason", e.Reason)
		},
		OnAttach: func(e *domain.SurfaceEvent) {
			logger.Debug("Surface Attached", "surface", e.Surface)
		},
		OnDetach: func(e *domain.SurfaceEvent) {
			logger.Debug("Surface Detached", "surface", e.Surface)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleExecutionError turns an interruption into a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
