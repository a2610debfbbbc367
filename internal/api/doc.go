// Package api is the call-site layer between the CLI and the engine
// packages. It combines the upstream client, the list cache, the catalog
// normalizer, and the episode resolver into the operations a view needs.
//
// # Operations
//
// List: one normalized page; cacheable kinds (category, country, anime) are
// read through the TTL cache, and kinds listed in cache.stale_fallback may be
// served from an expired entry when the refresh fails.
//
// FanOut/Home: concurrent list fetches with a per-result callback gated by a
// Liveness flag, so a consumer that has gone away stops receiving updates
// while in-flight requests finish normally.
//
// Title: a title detail normalized into a catalog item plus its resolved
// episode list and initial episode.
//
// OpenCache: builds the configured cache backend (sqlite, file or memory).
package api
