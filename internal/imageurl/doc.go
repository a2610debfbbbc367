// Package imageurl derives thumbnail and full-size URLs for catalog images.
//
// The upstream image CDN resizes on the fly through the quality and width
// query parameters. Images on other hosts are passed through unchanged for
// both renditions since no resize scheme can be assumed for them.
package imageurl
