// Package upstream is the HTTP client for the catalog API.
//
// It knows the endpoint layout for each list resource, applies the request
// timeout and optional retries, and classifies failures with the sentinel
// errors from package services so callers can branch on errors.Is. Response
// bodies are decoded with envelope.Decode and returned without interpretation.
package upstream
