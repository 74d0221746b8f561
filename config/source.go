package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants, lowest precedence first.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal indicates the value came from ~/.config/promptstream/config.yaml.
	SourceGlobal Source = "global"

	// SourceLocal indicates the value came from .promptstream.yaml in the project root.
	SourceLocal Source = "local"

	// SourceDotEnv indicates the value came from a .env file.
	SourceDotEnv Source = "dotenv"

	// SourceEnv indicates the value came from a process environment variable.
	SourceEnv Source = "env"

	// SourceFlag indicates the value was set by the caller, typically from a flag.
	SourceFlag Source = "flag"
)
