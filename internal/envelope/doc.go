// Package envelope extracts item lists, pagination, and movie detail objects
// from upstream responses whose wrapping varies by endpoint.
//
// Six list shapes are recognised, tried in a fixed order:
//
//	[...]                      bare array
//	{"items": [...]}
//	{"data": [...]}
//	{"data": {"items": [...], "params": {"pagination": {...}}}}
//	{"data": {"data": [...]}} or {"data": {"data": {"items": [...]}}}
//	{"results": [...], "page": 1, "total_pages": 3}
//
// Unwrap never fails. A body matching none of the shapes yields an empty
// list, which callers treat the same as an empty page.
package envelope
