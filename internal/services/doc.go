// Package services defines shared utilities consumed by the catalog client,
// the cache, and the CLI workflows.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and resource labels
//     for logging.
//   - Structured error markers plus the Wrap helper so transport failures reach
//     callers as typed, classifiable errors (timeout, not found, decode).
//
// Use these helpers when wiring new call sites so operational behaviour (error
// handling, observability, retries) stays uniform across the module.
package services
