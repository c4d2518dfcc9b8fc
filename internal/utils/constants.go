package utils

const (
	// EmptyString represents a reusable empty string constant.
	EmptyString = ""
	// ApplicationExecutionFailedMessage prefixes fatal errors reported by the binaries.
	ApplicationExecutionFailedMessage = "application execution failed"
	// LoggerInitializationFailedMessageFormat is used when the logger cannot be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// DefaultTextLabel labels fenced blocks for files without an extension.
	DefaultTextLabel = "text"
)
