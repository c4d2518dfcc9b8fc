package config

import (
	"reflect"
	"testing"
)

func TestDefaultTreeRules(t *testing.T) {
	rules := DefaultTreeRules()
	excludedNames := []string{".git", "node_modules", "dist", "vite.svg", "react.svg"}
	for _, name := range excludedNames {
		if !rules.ExcludesName(name) {
			t.Fatalf("expected %q to be excluded", name)
		}
	}
	if rules.ExcludesName("src") {
		t.Fatalf("expected src to be kept")
	}
	if len(rules.Extensions()) != 0 {
		t.Fatalf("expected no extension exclusions, got %v", rules.Extensions())
	}
}

func TestDefaultDumpRules(t *testing.T) {
	rules := DefaultDumpRules("dump.txt", "project2txt")
	testCases := []struct {
		name     string
		check    func(ExclusionRules) bool
		expected bool
	}{
		{name: "output document", check: func(r ExclusionRules) bool { return r.ExcludesFileName("dump.txt") }, expected: true},
		{name: "dumper executable", check: func(r ExclusionRules) bool { return r.ExcludesFileName("project2txt") }, expected: true},
		{name: "lock file", check: func(r ExclusionRules) bool { return r.ExcludesFileName("yarn.lock") }, expected: true},
		{name: "node_modules directory", check: func(r ExclusionRules) bool { return r.ExcludesDirectoryName("node_modules") }, expected: true},
		{name: "release_sure directory", check: func(r ExclusionRules) bool { return r.ExcludesDirectoryName("release_sure") }, expected: true},
		{name: "regular directory", check: func(r ExclusionRules) bool { return r.ExcludesDirectoryName("src") }, expected: false},
		{name: "upper case extension", check: func(r ExclusionRules) bool { return r.ExcludesExtension("LOGO.PNG") }, expected: true},
		{name: "mixed case extension", check: func(r ExclusionRules) bool { return r.ExcludesExtension("photo.JpEg") }, expected: true},
		{name: "text extension", check: func(r ExclusionRules) bool { return r.ExcludesExtension("main.go") }, expected: false},
		{name: "no extension", check: func(r ExclusionRules) bool { return r.ExcludesExtension("Makefile") }, expected: false},
		{name: "dotfile named like extension", check: func(r ExclusionRules) bool { return r.ExcludesExtension(".png") }, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := testCase.check(rules); actual != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, actual)
			}
		})
	}
}

func TestNewExclusionRulesNormalizesExtensions(t *testing.T) {
	rules := NewExclusionRules(nil, nil, []string{"PNG", ".Txt", ""})
	expected := []string{".png", ".txt"}
	if !reflect.DeepEqual(rules.Extensions(), expected) {
		t.Fatalf("unexpected extensions: got %v want %v", rules.Extensions(), expected)
	}
}

func TestWithFileNamesDoesNotMutateReceiver(t *testing.T) {
	original := NewExclusionRules(nil, []string{"a.txt"}, nil)
	extended := original.WithFileNames("b.txt")
	if original.ExcludesFileName("b.txt") {
		t.Fatalf("original rules were mutated")
	}
	if !extended.ExcludesFileName("a.txt") || !extended.ExcludesFileName("b.txt") {
		t.Fatalf("extended rules missing names: %v", extended.FileNames())
	}
}

func TestWithPatterns(t *testing.T) {
	rules, patternError := NewExclusionRules(nil, nil, nil).WithPatterns("**/*.log", "docs/generated/**", "*.{tmp,bak}", "**/*.log")
	if patternError != nil {
		t.Fatalf("WithPatterns error: %v", patternError)
	}
	if len(rules.Patterns()) != 3 {
		t.Fatalf("expected 3 deduplicated patterns, got %v", rules.Patterns())
	}
	testCases := []struct {
		relativePath string
		expected     bool
	}{
		{relativePath: "app.log", expected: true},
		{relativePath: "deep/nested/app.log", expected: true},
		{relativePath: "docs/generated/api.md", expected: true},
		{relativePath: "docs/guide.md", expected: false},
		{relativePath: "src/cache.tmp", expected: true},
		{relativePath: "src/main.go", expected: false},
	}
	for _, testCase := range testCases {
		if actual := rules.MatchesPattern(testCase.relativePath); actual != testCase.expected {
			t.Fatalf("MatchesPattern(%q): expected %t, got %t", testCase.relativePath, testCase.expected, actual)
		}
	}
}

func TestWithPatternsRejectsInvalidGlob(t *testing.T) {
	if _, patternError := DefaultTreeRules().WithPatterns("[unterminated"); patternError == nil {
		t.Fatalf("expected an error for an invalid pattern")
	}
}

func TestMatchesPatternWithoutPatterns(t *testing.T) {
	if DefaultTreeRules().MatchesPattern("anything/at/all") {
		t.Fatalf("expected no match without patterns")
	}
}
