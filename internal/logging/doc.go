// Package logging constructs the application's slog loggers.
//
// Two output formats are supported: "console", a compact human-oriented
// line format for interactive use, and "json", structured output for log
// collection. The matching engine itself stays pure; packages that log take
// a *slog.Logger from the caller and fall back to NewNop when given nil.
package logging
