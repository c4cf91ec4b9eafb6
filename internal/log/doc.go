// Package log provides a slog handler that masks authentication
// material before it reaches the log output. Site configurations carry
// session cookies and authorization headers for scanning gated pages,
// and those values must never end up in CI logs.
package log
