package internal

// Version is the mwlookup release version
const Version = "0.3.1"
