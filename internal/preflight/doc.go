// Package preflight provides readiness checks for the catalog API and the
// filesystem paths that marquee writes to.
//
// The CLI "marquee doctor" command runs RunAll and renders each Result.
// Directory checks are skipped when the feature that needs them is off:
// the memory cache backend writes nothing, and log output to a directory
// is optional.
package preflight
