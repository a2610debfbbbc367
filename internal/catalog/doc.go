// Package catalog produces canonical catalog items from raw upstream
// records.
//
// Normalization composes the field chains from package fields with the CDN
// rules from package imageurl. Every item comes out with a title and both
// image renditions set, and normalizing an already-normalized item returns it
// unchanged.
package catalog
