// Package constants defines shared string constants used across
// multiple internal packages to avoid raw-string duplication and
// circular imports.
package constants

const (
	// ConfigFileName is the name of the user config file, looked up in
	// the home directory.
	ConfigFileName = ".gosh.yaml"

	// DefaultPrompt is written before each read, without a newline.
	DefaultPrompt = "$ "

	// DefaultTimeoutSeconds bounds a single external command.
	DefaultTimeoutSeconds = 20
)
