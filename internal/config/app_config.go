package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/temirov/dirtools/internal/utils"
)

// Option keys double as the flag names registered by the command line interface.
const (
	RootKey    = "root"
	ExcludeKey = "exclude"
	ColorKey   = "color"
	OutputKey  = "output"
	TokensKey  = "tokens"
	ModelKey   = "model"
	CopyKey    = "copy"

	// DefaultTokenizerModel is used for token estimation unless --model overrides it.
	DefaultTokenizerModel = "gpt-4o"
)

var errEmptyOutputName = errors.New("output document name is empty")

// TreeConfiguration holds the resolved options of the dirtree command.
type TreeConfiguration struct {
	Root    string   `mapstructure:"root"`
	Exclude []string `mapstructure:"exclude"`
	Color   bool     `mapstructure:"color"`
}

// DumpConfiguration holds the resolved options of the project2txt command.
type DumpConfiguration struct {
	OutputName string   `mapstructure:"output"`
	Exclude    []string `mapstructure:"exclude"`
	Tokens     bool     `mapstructure:"tokens"`
	Model      string   `mapstructure:"model"`
	Copy       bool     `mapstructure:"copy"`
}

// LoadTreeConfiguration resolves dirtree options from defaults, the parsed
// flag set and the optional positional root. Neither configuration files nor
// environment variables are consulted.
func LoadTreeConfiguration(flagSet *pflag.FlagSet, arguments []string, workingDirectory string) (TreeConfiguration, error) {
	reader := viper.New()
	reader.SetDefault(RootKey, workingDirectory)
	reader.SetDefault(ColorKey, true)
	reader.SetDefault(ExcludeKey, []string{})
	if bindError := bindScalarFlags(reader, flagSet, ColorKey); bindError != nil {
		return TreeConfiguration{}, bindError
	}
	if len(arguments) > 0 && strings.TrimSpace(arguments[0]) != utils.EmptyString {
		reader.Set(RootKey, arguments[0])
	}
	if excludeError := setExcludePatterns(reader, flagSet); excludeError != nil {
		return TreeConfiguration{}, excludeError
	}

	var configuration TreeConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return TreeConfiguration{}, fmt.Errorf("decode tree configuration: %w", decodeError)
	}
	configuration.Exclude = utils.DeduplicatePatterns(configuration.Exclude)
	return configuration, nil
}

// LoadDumpConfiguration resolves project2txt options from defaults and the parsed flag set.
func LoadDumpConfiguration(flagSet *pflag.FlagSet) (DumpConfiguration, error) {
	reader := viper.New()
	reader.SetDefault(OutputKey, DefaultOutputName)
	reader.SetDefault(ModelKey, DefaultTokenizerModel)
	reader.SetDefault(TokensKey, false)
	reader.SetDefault(CopyKey, false)
	reader.SetDefault(ExcludeKey, []string{})
	if bindError := bindScalarFlags(reader, flagSet, OutputKey, ModelKey, TokensKey, CopyKey); bindError != nil {
		return DumpConfiguration{}, bindError
	}
	if excludeError := setExcludePatterns(reader, flagSet); excludeError != nil {
		return DumpConfiguration{}, excludeError
	}

	var configuration DumpConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return DumpConfiguration{}, fmt.Errorf("decode dump configuration: %w", decodeError)
	}
	configuration.OutputName = strings.TrimSpace(configuration.OutputName)
	if configuration.OutputName == utils.EmptyString {
		return DumpConfiguration{}, errEmptyOutputName
	}
	if filepath.Base(configuration.OutputName) != configuration.OutputName {
		return DumpConfiguration{}, fmt.Errorf("output document name %q must not contain a directory", configuration.OutputName)
	}
	configuration.Model = strings.TrimSpace(configuration.Model)
	configuration.Exclude = utils.DeduplicatePatterns(configuration.Exclude)
	return configuration, nil
}

// bindScalarFlags binds the named flags when they are registered on flagSet.
func bindScalarFlags(reader *viper.Viper, flagSet *pflag.FlagSet, names ...string) error {
	if flagSet == nil {
		return nil
	}
	for _, name := range names {
		flag := flagSet.Lookup(name)
		if flag == nil {
			continue
		}
		if bindError := reader.BindPFlag(name, flag); bindError != nil {
			return fmt.Errorf("bind flag %s: %w", name, bindError)
		}
	}
	return nil
}

// setExcludePatterns copies the repeatable exclude flag verbatim. Binding it
// through viper would split values on commas and break brace globs.
func setExcludePatterns(reader *viper.Viper, flagSet *pflag.FlagSet) error {
	if flagSet == nil || flagSet.Lookup(ExcludeKey) == nil {
		return nil
	}
	patterns, lookupError := flagSet.GetStringArray(ExcludeKey)
	if lookupError != nil {
		return fmt.Errorf("read %s flag: %w", ExcludeKey, lookupError)
	}
	if len(patterns) > 0 {
		reader.Set(ExcludeKey, patterns)
	}
	return nil
}
