// Package types defines the cross-package data structures used by the dirtree and project2txt tools.
package types

const (
	CommandTree = "dirtree"
	CommandDump = "project2txt"

	// UnknownLinkTarget is displayed when a symbolic link cannot be read.
	UnknownLinkTarget = "[unknown]"
)

// DirectoryEntry describes one child of a directory observed during traversal.
// IsDirectory follows symbolic links, so a link to a directory reports true
// for both IsDirectory and IsSymlink.
type DirectoryEntry struct {
	Path        string
	Name        string
	IsDirectory bool
	IsSymlink   bool
	LinkTarget  string
}

// DumpSummary captures aggregate information about a finished project dump.
type DumpSummary struct {
	OutputPath   string
	FilesWritten int
	FilesSkipped int
	BytesWritten int64
	Tokens       int
	Model        string
}
