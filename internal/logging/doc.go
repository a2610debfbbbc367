// Package logging assembles structured slog loggers and formatting helpers used
// across marquee.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so call sites automatically tag
// log lines with correlation IDs and the catalog resource being fetched. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the module.
package logging
