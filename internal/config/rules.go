// Package config holds the exclusion rules and command configuration of the dirtree and project2txt tools.
package config

import (
	"fmt"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/dirtools/internal/utils"
)

const (
	// DefaultOutputName is the file project2txt writes into.
	DefaultOutputName = "output.txt"
	// DefaultDumperName is the executable name excluded from dumps when it cannot be resolved.
	DefaultDumperName = "project2txt"

	errorInvalidPatternFormat = "invalid exclusion pattern %q: %w"
)

var (
	treeDirectoryNames = []string{
		".git", ".github", ".vscode", "__pycache__", "node_modules",
		"win-unpacked", ".venv", "target", "build", "dist",
	}
	treeFileNames = []string{"react.svg", "electron.svg", "vite.svg"}

	dumpDirectoryNames = []string{
		".git", "__pycache__", "node_modules", "venv", "env", ".idea", ".vscode",
		"dist", "build", "target", "out", "bin", "obj", "logs", "release_sure", ".github",
	}
	dumpFileNames  = []string{".DS_Store", "package-lock.json", "yarn.lock"}
	dumpExtensions = []string{
		".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg",
		".pyc", ".exe", ".dll", ".so", ".bin", ".pdf",
	}
)

// ExclusionRules is an immutable description of what a traversal skips.
// Directory and file names match exactly, extensions match case-insensitively
// and patterns are doublestar globs evaluated against the slash-separated path
// relative to the traversal root and against the bare entry name.
type ExclusionRules struct {
	directoryNames map[string]struct{}
	fileNames      map[string]struct{}
	extensions     map[string]struct{}
	patterns       []string
}

// NewExclusionRules builds rules from the three name sets.
func NewExclusionRules(directoryNames []string, fileNames []string, extensions []string) ExclusionRules {
	normalizedExtensions := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		normalizedExtensions = append(normalizedExtensions, utils.NormalizeExtension(extension))
	}
	return ExclusionRules{
		directoryNames: toSet(directoryNames),
		fileNames:      toSet(fileNames),
		extensions:     toSet(normalizedExtensions),
	}
}

// DefaultTreeRules returns the rules used by dirtree.
func DefaultTreeRules() ExclusionRules {
	return NewExclusionRules(treeDirectoryNames, treeFileNames, nil)
}

// DefaultDumpRules returns the rules used by project2txt. The output document
// and the dumper itself are excluded by name so a run never includes its own output.
func DefaultDumpRules(outputName string, dumperName string) ExclusionRules {
	fileNames := append([]string{outputName, dumperName}, dumpFileNames...)
	return NewExclusionRules(dumpDirectoryNames, fileNames, dumpExtensions)
}

// WithFileNames returns a copy of the rules that also excludes names.
func (rules ExclusionRules) WithFileNames(names ...string) ExclusionRules {
	result := rules.clone()
	for _, name := range names {
		if name != utils.EmptyString {
			result.fileNames[name] = struct{}{}
		}
	}
	return result
}

// WithPatterns returns a copy of the rules that also excludes paths matching patterns.
func (rules ExclusionRules) WithPatterns(patterns ...string) (ExclusionRules, error) {
	result := rules.clone()
	for _, pattern := range utils.DeduplicatePatterns(patterns) {
		if !doublestar.ValidatePattern(pattern) {
			return ExclusionRules{}, fmt.Errorf(errorInvalidPatternFormat, pattern, doublestar.ErrBadPattern)
		}
		result.patterns = append(result.patterns, pattern)
	}
	result.patterns = utils.DeduplicatePatterns(result.patterns)
	return result, nil
}

// ExcludesName reports whether name appears in either the directory or the file set.
func (rules ExclusionRules) ExcludesName(name string) bool {
	return rules.ExcludesDirectoryName(name) || rules.ExcludesFileName(name)
}

// ExcludesDirectoryName reports whether a directory called name is pruned.
func (rules ExclusionRules) ExcludesDirectoryName(name string) bool {
	_, excluded := rules.directoryNames[name]
	return excluded
}

// ExcludesFileName reports whether a file called name is skipped.
func (rules ExclusionRules) ExcludesFileName(name string) bool {
	_, excluded := rules.fileNames[name]
	return excluded
}

// ExcludesExtension reports whether the extension of name is blacklisted.
func (rules ExclusionRules) ExcludesExtension(name string) bool {
	extension := utils.NormalizeExtension(utils.SplitExtension(name))
	if extension == utils.EmptyString {
		return false
	}
	_, excluded := rules.extensions[extension]
	return excluded
}

// MatchesPattern reports whether relativePath, given with forward slashes,
// matches one of the configured glob patterns.
func (rules ExclusionRules) MatchesPattern(relativePath string) bool {
	if len(rules.patterns) == 0 {
		return false
	}
	baseName := path.Base(relativePath)
	for _, pattern := range rules.patterns {
		if doublestar.MatchUnvalidated(pattern, relativePath) || doublestar.MatchUnvalidated(pattern, baseName) {
			return true
		}
	}
	return false
}

// DirectoryNames returns the excluded directory names in sorted order.
func (rules ExclusionRules) DirectoryNames() []string {
	return sortedKeys(rules.directoryNames)
}

// FileNames returns the excluded file names in sorted order.
func (rules ExclusionRules) FileNames() []string {
	return sortedKeys(rules.fileNames)
}

// Extensions returns the excluded extensions in sorted order.
func (rules ExclusionRules) Extensions() []string {
	return sortedKeys(rules.extensions)
}

// Patterns returns a copy of the configured glob patterns.
func (rules ExclusionRules) Patterns() []string {
	return append([]string(nil), rules.patterns...)
}

func (rules ExclusionRules) clone() ExclusionRules {
	return ExclusionRules{
		directoryNames: cloneSet(rules.directoryNames),
		fileNames:      cloneSet(rules.fileNames),
		extensions:     cloneSet(rules.extensions),
		patterns:       append([]string(nil), rules.patterns...),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value == utils.EmptyString {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}

func cloneSet(source map[string]struct{}) map[string]struct{} {
	cloned := make(map[string]struct{}, len(source))
	for value := range source {
		cloned[value] = struct{}{}
	}
	return cloned
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
