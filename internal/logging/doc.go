// Package logging assembles the structured slog loggers used across zkcli.
//
// It owns the console and JSON handlers, maps the CLI's repeatable -v flag
// onto levels, stamps every record with the invocation's session id and can
// tee records into a JSON log file. Diagnostics go to stderr so stdout stays
// reserved for command output. A no-op logger is provided for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
