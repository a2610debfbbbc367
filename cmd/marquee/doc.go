// Package main hosts the marquee CLI entrypoint and command graph.
//
// The Cobra-based command tree fetches list and title payloads from the
// catalog API, runs them through the normalization pipeline and renders the
// canonical records as tables or JSON (--json). It centralizes
// configuration resolution, logger setup and cache opening in
// commandContext so subcommands only deal with presentation.
//
// Keep this package lean: new behaviour belongs in the internal packages
// first and is surfaced here through dedicated commands or flags.
package main
