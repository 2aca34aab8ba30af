package render

import (
	"log/slog"
	"os"
)

// renderLogLevel controls the log level for render core logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var renderLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for the render core.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		renderLogLevel.Set(slog.LevelDebug)
	} else {
		renderLogLevel.Set(slog.LevelInfo)
	}
}

// renderVerbose returns true if debug logging is enabled.
func renderVerbose() bool {
	return renderLogLevel.Level() <= slog.LevelDebug
}

// defaultLogger is used by every Context created without WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: renderLogLevel})).
	With("component", "render")
