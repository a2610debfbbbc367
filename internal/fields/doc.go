// Package fields resolves canonical catalog fields from raw upstream items.
//
// Each field is an ordered chain of accessors combined with FirstOf, so the
// fallback order for a field is a single declaration that can be read and
// tested on its own. Resolution never fails: a missing or malformed value
// yields the field's default or reports absence.
package fields
