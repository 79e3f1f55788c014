// Package testutil provides fixtures and fakes shared by the mwlookup tests:
// a fake dictionary site, fixture pages, and mock players and providers.
package testutil
