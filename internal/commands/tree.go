// Package commands implements the directory traversals behind dirtree and project2txt.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/dirtools/internal/config"
	"github.com/temirov/dirtools/internal/output"
	"github.com/temirov/dirtools/internal/types"
	"github.com/temirov/dirtools/internal/utils"
)

const errorWriteTreeLineFormat = "writing tree line: %w"

// TreeLines returns the lines of the tree rooted at root, depth first, without
// a header. The sequence is lazy and single-pass: the filesystem is read while
// it is consumed and stopping early stops the traversal. Listing failures are
// reported inline and confine themselves to the affected subtree.
func TreeLines(filesystem afero.Fs, root string, rules config.ExclusionRules) iter.Seq[string] {
	return func(yield func(string) bool) {
		rootExists, existsError := afero.Exists(filesystem, root)
		if existsError == nil && !rootExists {
			yield(output.MissingRootLine(root))
			return
		}
		walker := treeWalker{filesystem: filesystem, root: root, rules: rules, yield: yield}
		walker.walkDirectory(root, utils.EmptyString)
	}
}

// PrintTree writes every line of the tree rooted at root to writer and
// returns the number of lines written.
func PrintTree(writer io.Writer, filesystem afero.Fs, root string, rules config.ExclusionRules) (int, error) {
	writtenLines := 0
	for line := range TreeLines(filesystem, root, rules) {
		if _, writeError := fmt.Fprintln(writer, line); writeError != nil {
			return writtenLines, fmt.Errorf(errorWriteTreeLineFormat, writeError)
		}
		writtenLines++
	}
	return writtenLines, nil
}

// ReadDirectoryEntries lists directoryPath without following symbolic links.
// Links are flagged, resolved for display and classified by what they point to.
func ReadDirectoryEntries(filesystem afero.Fs, directoryPath string) ([]types.DirectoryEntry, error) {
	fileInfos, readError := afero.ReadDir(filesystem, directoryPath)
	if readError != nil {
		return nil, readError
	}
	entries := make([]types.DirectoryEntry, 0, len(fileInfos))
	for _, fileInfo := range fileInfos {
		entryPath := filepath.Join(directoryPath, fileInfo.Name())
		entry := types.DirectoryEntry{
			Path:        entryPath,
			Name:        fileInfo.Name(),
			IsDirectory: fileInfo.IsDir(),
		}
		if fileInfo.Mode()&os.ModeSymlink != 0 {
			entry.IsSymlink = true
			entry.IsDirectory = isDirectoryThroughLink(filesystem, entryPath)
			entry.LinkTarget = readLinkTarget(filesystem, entryPath)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SortEntries orders directories before files and names case-insensitively
// within each group. Equal keys keep their listing order.
func SortEntries(entries []types.DirectoryEntry) {
	slices.SortStableFunc(entries, func(left, right types.DirectoryEntry) int {
		if left.IsDirectory != right.IsDirectory {
			if left.IsDirectory {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(left.Name), strings.ToLower(right.Name))
	})
}

type treeWalker struct {
	filesystem afero.Fs
	root       string
	rules      config.ExclusionRules
	yield      func(string) bool
}

// walkDirectory emits the children of directoryPath and reports whether the
// consumer wants more lines.
func (walker *treeWalker) walkDirectory(directoryPath string, prefix string) bool {
	entries, listingError := ReadDirectoryEntries(walker.filesystem, directoryPath)
	if listingError != nil {
		if errors.Is(listingError, fs.ErrPermission) {
			return walker.yield(output.AccessDeniedLine(prefix))
		}
		return walker.yield(output.ListingErrorLine(prefix, listingError))
	}

	visibleEntries := make([]types.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		if walker.isVisible(entry) {
			visibleEntries = append(visibleEntries, entry)
		}
	}
	SortEntries(visibleEntries)

	for index, entry := range visibleEntries {
		line, childPrefix := output.TreeEntryLine(prefix, entry, index == len(visibleEntries)-1)
		if !walker.yield(line) {
			return false
		}
		// links are shown but never entered
		if entry.IsDirectory && !entry.IsSymlink {
			if !walker.walkDirectory(entry.Path, childPrefix) {
				return false
			}
		}
	}
	return true
}

func (walker *treeWalker) isVisible(entry types.DirectoryEntry) bool {
	if walker.rules.ExcludesName(entry.Name) {
		return false
	}
	if !entry.IsDirectory && walker.rules.ExcludesExtension(entry.Name) {
		return false
	}
	relativePath := filepath.ToSlash(utils.RelativePathOrSelf(entry.Path, walker.root))
	return !walker.rules.MatchesPattern(relativePath)
}

func isDirectoryThroughLink(filesystem afero.Fs, linkPath string) bool {
	targetInfo, statError := filesystem.Stat(linkPath)
	return statError == nil && targetInfo.IsDir()
}

func readLinkTarget(filesystem afero.Fs, linkPath string) string {
	linkReader, supportsLinks := filesystem.(afero.LinkReader)
	if !supportsLinks {
		return types.UnknownLinkTarget
	}
	target, readError := linkReader.ReadlinkIfPossible(linkPath)
	if readError != nil {
		return types.UnknownLinkTarget
	}
	return target
}
