// Package log provides the application's logging setup, built on top of
// the standard slog package.
//
// Report extraction logs the data it walks: module names, export symbol
// sets, whole problem messages. Those values are useful at a glance and
// unreadable at full length, so the TruncateHandler caps every string
// attribute at a fixed width before it reaches the underlying handler.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
