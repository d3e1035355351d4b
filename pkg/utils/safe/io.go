package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/mindcorps/psyrisk/pkg/utils/logging"
)

// Close closes closer and logs a failure with the given attributes. It is meant
// for deferred cleanup where the close error has no caller to return to; nil
// closers are ignored.
func Close(ctx context.Context, closer io.Closer, attrs ...any) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", append([]any{slog.Any("error", err)}, attrs...)...)
	}
}
