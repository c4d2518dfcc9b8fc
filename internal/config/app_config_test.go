package config

import (
	"io"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func newTreeFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("dirtree", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringArrayP(ExcludeKey, "e", nil, "")
	flagSet.Bool(ColorKey, true, "")
	return flagSet
}

func newDumpFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("project2txt", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringP(OutputKey, "o", DefaultOutputName, "")
	flagSet.StringArrayP(ExcludeKey, "e", nil, "")
	flagSet.Bool(TokensKey, false, "")
	flagSet.String(ModelKey, DefaultTokenizerModel, "")
	flagSet.Bool(CopyKey, false, "")
	return flagSet
}

func TestLoadTreeConfiguration(t *testing.T) {
	testCases := []struct {
		name            string
		flags           []string
		arguments       []string
		expectedRoot    string
		expectedColor   bool
		expectedExclude []string
	}{
		{
			name:            "defaults_to_working_directory",
			expectedRoot:    "/work",
			expectedColor:   true,
			expectedExclude: []string{},
		},
		{
			name:            "positional_root_and_flags",
			flags:           []string{"--color=false", "-e", "*.{log,tmp}", "-e", "vendor/**", "-e", "vendor/**"},
			arguments:       []string{"/srv/project"},
			expectedRoot:    "/srv/project",
			expectedColor:   false,
			expectedExclude: []string{"*.{log,tmp}", "vendor/**"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			flagSet := newTreeFlagSet()
			if parseError := flagSet.Parse(testCase.flags); parseError != nil {
				t.Fatalf("parse flags: %v", parseError)
			}
			configuration, loadError := LoadTreeConfiguration(flagSet, testCase.arguments, "/work")
			if loadError != nil {
				t.Fatalf("LoadTreeConfiguration error: %v", loadError)
			}
			if configuration.Root != testCase.expectedRoot {
				t.Fatalf("expected root %q, got %q", testCase.expectedRoot, configuration.Root)
			}
			if configuration.Color != testCase.expectedColor {
				t.Fatalf("expected color %t, got %t", testCase.expectedColor, configuration.Color)
			}
			if !reflect.DeepEqual(configuration.Exclude, testCase.expectedExclude) {
				t.Fatalf("expected exclude %v, got %v", testCase.expectedExclude, configuration.Exclude)
			}
		})
	}
}

func TestLoadDumpConfiguration(t *testing.T) {
	testCases := []struct {
		name           string
		flags          []string
		expectError    bool
		expectedOutput string
		expectedTokens bool
		expectedModel  string
		expectedCopy   bool
	}{
		{
			name:           "defaults",
			expectedOutput: DefaultOutputName,
			expectedModel:  DefaultTokenizerModel,
		},
		{
			name:           "overrides",
			flags:          []string{"-o", "context.md", "--tokens", "--model", "gpt-4", "--copy"},
			expectedOutput: "context.md",
			expectedTokens: true,
			expectedModel:  "gpt-4",
			expectedCopy:   true,
		},
		{
			name:        "rejects_nested_output",
			flags:       []string{"--output", "out/dump.txt"},
			expectError: true,
		},
		{
			name:        "rejects_blank_output",
			flags:       []string{"--output", "  "},
			expectError: true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			flagSet := newDumpFlagSet()
			if parseError := flagSet.Parse(testCase.flags); parseError != nil {
				t.Fatalf("parse flags: %v", parseError)
			}
			configuration, loadError := LoadDumpConfiguration(flagSet)
			if testCase.expectError {
				if loadError == nil {
					t.Fatalf("expected an error, got configuration %+v", configuration)
				}
				return
			}
			if loadError != nil {
				t.Fatalf("LoadDumpConfiguration error: %v", loadError)
			}
			if configuration.OutputName != testCase.expectedOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectedOutput, configuration.OutputName)
			}
			if configuration.Tokens != testCase.expectedTokens {
				t.Fatalf("expected tokens %t, got %t", testCase.expectedTokens, configuration.Tokens)
			}
			if configuration.Model != testCase.expectedModel {
				t.Fatalf("expected model %q, got %q", testCase.expectedModel, configuration.Model)
			}
			if configuration.Copy != testCase.expectedCopy {
				t.Fatalf("expected copy %t, got %t", testCase.expectedCopy, configuration.Copy)
			}
		})
	}
}
