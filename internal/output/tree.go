package output

import (
	"fmt"
	"path/filepath"

	"github.com/temirov/dirtools/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix      = "/"
	accessDeniedMarker   = "[Access Denied]"
	listingErrorFormat   = "%s[Error: %v]"
	missingRootFormat    = "Error: Directory '%s' not found."
	symbolicLinkFormat   = "%s -> %s"
	treeEntryLineFormat  = "%s%s%s"
	rootHeaderLineFormat = "%s" + directorySuffix
)

// TreeEntryLine formats one tree line for entry and returns the prefix its
// children are rendered with.
func TreeEntryLine(prefix string, entry types.DirectoryEntry, isLast bool) (string, string) {
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return fmt.Sprintf(treeEntryLineFormat, prefix, connector, DisplayName(entry)), childPrefix
}

// DisplayName renders an entry name: links show their target, directories get a trailing slash.
func DisplayName(entry types.DirectoryEntry) string {
	switch {
	case entry.IsSymlink:
		target := entry.LinkTarget
		if target == "" {
			target = types.UnknownLinkTarget
		}
		return fmt.Sprintf(symbolicLinkFormat, entry.Name, target)
	case entry.IsDirectory:
		return entry.Name + directorySuffix
	default:
		return entry.Name
	}
}

// AccessDeniedLine marks a directory that could not be listed for lack of permission.
func AccessDeniedLine(prefix string) string {
	return prefix + accessDeniedMarker
}

// ListingErrorLine marks a directory that could not be listed for any other reason.
func ListingErrorLine(prefix string, listingError error) string {
	return fmt.Sprintf(listingErrorFormat, prefix, listingError)
}

// MissingRootLine reports a tree root that does not exist.
func MissingRootLine(root string) string {
	return fmt.Sprintf(missingRootFormat, root)
}

// RootHeader returns the header naming the tree root, e.g. "project/".
// Filesystem roots such as "/" have no base name and are shown as given.
func RootHeader(root string) string {
	name := root
	if absoluteRoot, absoluteError := filepath.Abs(root); absoluteError == nil {
		name = filepath.Base(absoluteRoot)
	}
	if name == string(filepath.Separator) || name == "." || name == "" {
		return root
	}
	return fmt.Sprintf(rootHeaderLineFormat, name)
}
