package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// Handle logs err with msg and reports it to Sentry when a client is bound.
// Errors are never returned to Slack users; they only surface here.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logging.From(ctx).Error(msg, errorAttrs(err)...)
	capture(ctx, err)
}

// HandleHTTP logs the error and writes an HTTP error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	attrs := append([]any{"status", statusCode}, errorAttrs(err)...)
	logging.From(ctx).Error("HTTP error", attrs...)
	if statusCode >= http.StatusInternalServerError {
		capture(ctx, err)
	}

	http.Error(w, http.StatusText(statusCode), statusCode)
}

func errorAttrs(err error) []any {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		return []any{
			slog.String("error", err.Error()),
			slog.Any("values", ge.Values()),
			slog.Any("stack", ge.Stacks()),
		}
	}
	return []any{slog.String("error", err.Error())}
}

func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	evID := hub.CaptureException(err)
	if evID != nil {
		logging.From(ctx).Info("error reported to sentry", "event_id", *evID)
	}
}
