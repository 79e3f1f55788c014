package session

import "strings"

const (
	msgWelcome         = "Welcome to the Dictionary of Merriam-Webster"
	msgWordOfDay       = "Word of the Day: %s\n"
	msgNotFound        = "The word you've entered, \"%s\", isn't in the dictionary.\n\n"
	msgDefinitionOf    = "-> Definition of %s:\n\n"
	msgLastEntry       = ": LAST ENTRY FOUND!"
	msgNoPronunciation = "Sorry! There isn't a pre-recorded pronunciation for \"%s\".\n"
	msgFarewell        = "Thank you for using our translation service!"

	labelSearch    = "Search for a Word: "
	labelTryAgain  = "Try again: "
	labelPronounce = "Do you want to hear its pronunciation? [Y/n] "
	labelRepeat    = "One more time? [Y/n] "
)

// LineBreak separates the sections of a session
var LineBreak = "\n" + strings.Repeat("-", 79) + "\n"
