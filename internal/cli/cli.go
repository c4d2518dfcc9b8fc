// Package cli provides the command line interfaces of dirtree and project2txt.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtools/internal/commands"
	"github.com/temirov/dirtools/internal/config"
	"github.com/temirov/dirtools/internal/output"
	"github.com/temirov/dirtools/internal/services/clipboard"
	"github.com/temirov/dirtools/internal/tokenizer"
	"github.com/temirov/dirtools/internal/types"
	"github.com/temirov/dirtools/internal/utils"
)

const (
	exclusionFlagShorthand = "e"
	outputFlagShorthand    = "o"
	versionFlagName        = "version"
	versionTemplate        = "%s version: %s\n"

	treeUse              = types.CommandTree + " [root]"
	treeShortDescription = "print a directory tree"
	treeLongDescription  = `Print the directory hierarchy below root as an indented tree.
Directories are listed before files, symbolic links are shown with their target and never entered.
Build and tooling directories such as .git and node_modules are hidden.`
	treeUsageExample = `  # Print the tree of the current directory
  dirtree

  # Hide generated sources
  dirtree -e '**/*_gen.go' ./service`

	dumpUse              = types.CommandDump
	dumpShortDescription = "concatenate project sources into one text document"
	dumpLongDescription  = `Collect every text file below the working directory into a single document.
Each file becomes a fenced block labelled with its extension and preceded by its relative path.
Binary files, dependency folders and build output are skipped.`
	dumpUsageExample = `  # Write output.txt in the current directory
  project2txt

  # Estimate tokens and copy the result to the clipboard
  project2txt --tokens --copy -o context.md`

	exclusionFlagDescription = "exclude paths matching a glob pattern (repeatable)"
	colorFlagDescription     = "render the root header in bold"
	outputFlagDescription    = "name of the output document"
	tokensFlagDescription    = "estimate the token count of the written content"
	modelFlagDescription     = "tokenizer model to use for token counting"
	copyFlagDescription      = "copy the finished document to the clipboard"
	versionFlagDescription   = "display application version"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	warningClipboardFormat      = "Warning: %v"
	messageClipboardCopied      = "Document copied to clipboard."
)

// Dependencies carries the collaborators the commands reach outside the process through.
type Dependencies struct {
	Filesystem       afero.Fs
	Logger           *zap.Logger
	Copier           clipboard.Copier
	NewTokenCounter  func(tokenizer.Config) (tokenizer.Counter, string, error)
	WorkingDirectory func() (string, error)
	DumperName       string
}

// DefaultDependencies wires the commands to the host operating system.
func DefaultDependencies(logger *zap.Logger) Dependencies {
	return Dependencies{
		Filesystem:       afero.NewOsFs(),
		Logger:           logger,
		Copier:           clipboard.NewService(),
		NewTokenCounter:  tokenizer.NewCounter,
		WorkingDirectory: os.Getwd,
		DumperName:       executableName(),
	}
}

// ExecuteTree runs the dirtree application.
func ExecuteTree(logger *zap.Logger) error {
	return execute(createTreeCommand(DefaultDependencies(logger)))
}

// ExecuteDump runs the project2txt application.
func ExecuteDump(logger *zap.Logger) error {
	return execute(createDumpCommand(DefaultDependencies(logger)))
}

func execute(command *cobra.Command) error {
	command.SetArgs(normalizeBooleanFlagArguments(command, os.Args[1:]))
	return command.Execute()
}

// createTreeCommand builds the dirtree command.
func createTreeCommand(dependencies Dependencies) *cobra.Command {
	var showVersion bool
	var colorEnabled bool

	treeCommand := &cobra.Command{
		Use:           treeUse,
		Short:         treeShortDescription,
		Long:          treeLongDescription,
		Example:       treeUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				return printVersion(command, types.CommandTree)
			}
			workingDirectory, workingDirectoryError := dependencies.WorkingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			configuration, configurationError := config.LoadTreeConfiguration(command.Flags(), arguments, workingDirectory)
			if configurationError != nil {
				return configurationError
			}
			return runTree(command, dependencies, configuration)
		},
	}

	treeCommand.Flags().StringArrayP(config.ExcludeKey, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &colorEnabled, config.ColorKey, true, colorFlagDescription)
	treeCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return treeCommand
}

// createDumpCommand builds the project2txt command.
func createDumpCommand(dependencies Dependencies) *cobra.Command {
	var showVersion bool
	var tokensEnabled bool
	var copyEnabled bool

	dumpCommand := &cobra.Command{
		Use:           dumpUse,
		Short:         dumpShortDescription,
		Long:          dumpLongDescription,
		Example:       dumpUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				return printVersion(command, types.CommandDump)
			}
			configuration, configurationError := config.LoadDumpConfiguration(command.Flags())
			if configurationError != nil {
				return configurationError
			}
			return runDump(dependencies, configuration)
		},
	}

	dumpCommand.Flags().StringP(config.OutputKey, outputFlagShorthand, config.DefaultOutputName, outputFlagDescription)
	dumpCommand.Flags().StringArrayP(config.ExcludeKey, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(dumpCommand.Flags(), &tokensEnabled, config.TokensKey, false, tokensFlagDescription)
	dumpCommand.Flags().String(config.ModelKey, config.DefaultTokenizerModel, modelFlagDescription)
	registerBooleanFlag(dumpCommand.Flags(), &copyEnabled, config.CopyKey, false, copyFlagDescription)
	dumpCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return dumpCommand
}

func printVersion(command *cobra.Command, toolName string) error {
	_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, toolName, utils.GetApplicationVersion())
	return printError
}

// runTree prints the bold root header followed by the tree lines. A missing
// root is reported in the tree output and is not a failure.
func runTree(command *cobra.Command, dependencies Dependencies, configuration config.TreeConfiguration) error {
	rules, rulesError := config.DefaultTreeRules().WithPatterns(configuration.Exclude...)
	if rulesError != nil {
		return rulesError
	}
	writer := command.OutOrStdout()

	headerColor := color.New(color.Bold)
	if !configuration.Color {
		headerColor.DisableColor()
	}
	if _, headerError := headerColor.Fprintln(writer, output.RootHeader(configuration.Root)); headerError != nil {
		return headerError
	}
	_, printError := commands.PrintTree(writer, dependencies.Filesystem, configuration.Root, rules)
	return printError
}

func runDump(dependencies Dependencies, configuration config.DumpConfiguration) error {
	logger := utils.LoggerOrNop(dependencies.Logger)
	workingDirectory, workingDirectoryError := dependencies.WorkingDirectory()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	rules, rulesError := config.DefaultDumpRules(configuration.OutputName, dependencies.DumperName).WithPatterns(configuration.Exclude...)
	if rulesError != nil {
		return rulesError
	}

	var tokenCounter tokenizer.Counter
	if configuration.Tokens {
		createdCounter, _, counterError := dependencies.NewTokenCounter(tokenizer.Config{Model: configuration.Model})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
	}

	result, dumpError := commands.DumpProject(commands.DumpOptions{
		Filesystem:   dependencies.Filesystem,
		Root:         workingDirectory,
		OutputName:   configuration.OutputName,
		Rules:        rules,
		Logger:       logger,
		TokenCounter: tokenCounter,
	})
	if dumpError != nil {
		return dumpError
	}

	if configuration.Copy && dependencies.Copier != nil {
		if copyError := clipboard.CopyDocument(dependencies.Copier, dependencies.Filesystem, result.OutputPath); copyError != nil {
			logger.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
			return nil
		}
		logger.Info(messageClipboardCopied)
	}
	return nil
}

func executableName() string {
	executablePath, executableError := os.Executable()
	if executableError != nil {
		return config.DefaultDumperName
	}
	return filepath.Base(executablePath)
}
