// internal/monitoring/logging.go
package monitoring

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the run logger: a human-friendly console writer on stderr,
// mirrored as JSON into logFile when one is configured. The returned cleanup
// flushes and closes the file sink; call it at process exit.
func NewLogger(level string, logFile string) (zerolog.Logger, func(), error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var sink io.Writer = console
	cleanup := func() {}
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		sink = zerolog.MultiLevelWriter(console, file)
		cleanup = func() {
			file.Sync()
			file.Close()
		}
	}

	logger := zerolog.New(sink).Level(parsed).With().Timestamp().Logger()
	return logger, cleanup, nil
}
