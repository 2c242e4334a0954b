package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// Close closes closer and logs the error, if any. nil is accepted.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data to w after the response status has been committed, so
// the only thing left to do with an error is logging it.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}
