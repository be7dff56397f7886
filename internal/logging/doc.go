// Package logging assembles structured slog loggers used by spatialtool.
//
// It owns the console and JSON handlers, level parsing and the "auto" format
// that picks console output for terminals and JSON otherwise. A no-op logger
// is provided for tests and wiring code that cannot fail.
package logging
