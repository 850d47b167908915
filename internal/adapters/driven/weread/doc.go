// Package weread implements the SourceClient port against the WeRead
// web API. Authentication is a browser cookie; all requests share a
// token-bucket rate limiter so a full-library sync stays well under
// the service's informal request limits.
package weread
