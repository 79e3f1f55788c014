// Package models lists the text-to-speech models and voices available for
// synthesized pronunciations. It helps users pick --openai-model and
// --openai-voice values that work with their API key.
package models
