// Package fetcher downloads dictionary pages and parses them into documents
// for the extractor. Requests are synchronous and go through a circuit breaker
// so an unreachable site fails fast instead of hanging on every prompt.
package fetcher
