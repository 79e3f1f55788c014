// Package logging builds the slog handlers used by mwlookup. Diagnostics
// always go to stderr so they never interleave with the interactive session.
package logging
