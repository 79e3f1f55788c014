// Package extract pulls the word of the day, the definition entries and the
// pronunciation reference out of fetched dictionary pages.
//
// Extraction is keyed to literal markup (link targets, class names, data
// attributes). Each heuristic lives in one function so a change in the
// site's layout only touches that function.
package extract
