// Package session drives one interactive dictionary lookup: word of the day,
// word prompt, definitions, and the pronunciation play/repeat loop.
//
// A session moves through the states
//
//	AWAIT_WORD -> FETCHING -> (INVALID -> AWAIT_WORD) | VALID
//	  -> DISPLAY_DEFINITIONS -> AWAIT_PRONOUNCE_CHOICE
//	  -> (PLAY -> AWAIT_REPEAT_CHOICE)* | SKIP -> END
//
// and records them so callers can inspect the path taken.
package session
