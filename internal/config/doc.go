// Package config turns the viper settings (flags, config file, environment)
// into the typed options of the fetcher, audio and session packages.
package config
