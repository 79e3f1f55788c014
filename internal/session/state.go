package session

// State is a step of the interactive lookup
type State int

const (
	StateAwaitWord State = iota
	StateFetching
	StateInvalid
	StateValid
	StateDisplayDefinitions
	StateAwaitPronounceChoice
	StatePlay
	StateAwaitRepeatChoice
	StateSkip
	StateEnd
)

var stateNames = [...]string{
	StateAwaitWord:            "AWAIT_WORD",
	StateFetching:             "FETCHING",
	StateInvalid:              "INVALID",
	StateValid:                "VALID",
	StateDisplayDefinitions:   "DISPLAY_DEFINITIONS",
	StateAwaitPronounceChoice: "AWAIT_PRONOUNCE_CHOICE",
	StatePlay:                 "PLAY",
	StateAwaitRepeatChoice:    "AWAIT_REPEAT_CHOICE",
	StateSkip:                 "SKIP",
	StateEnd:                  "END",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}
