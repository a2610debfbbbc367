// Package episodes resolves the playable episode list of a title.
//
// Upstream delivers episodes in one of three encodings: per-server groups of
// episode objects, a "name|slug|embedUrl" text block, or only a progress
// label such as "Tập 5". Detect picks the first encoding present and Resolve
// turns it into records that are numbered, deduplicated, sorted, and capped
// to the episodes that have aired.
package episodes
