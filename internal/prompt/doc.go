// Package prompt implements the line-based questions of the interactive
// session: a single retry loop that re-asks until a validator accepts the
// answer.
package prompt
