package console

import (
	"io"
	"log/slog"

	"github.com/sarchlab/dmatb/csr"
)

// NewLogHandler returns the handler for process logs. With trace set it
// writes JSON records down to csr.LevelTrace, otherwise text records of
// warnings and errors only.
func NewLogHandler(w io.Writer, trace bool) slog.Handler {
	if trace {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: csr.LevelTrace,
		})
	}

	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
}
