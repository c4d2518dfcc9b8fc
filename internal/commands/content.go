package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/dirtools/internal/config"
	"github.com/temirov/dirtools/internal/output"
	"github.com/temirov/dirtools/internal/tokenizer"
	"github.com/temirov/dirtools/internal/types"
	"github.com/temirov/dirtools/internal/utils"
)

const (
	errorCreateOutputFormat  = "Error creating output file: %v"
	errorWriteOutputFormat   = "Error writing output file: %v"
	errorResolveRootFormat   = "resolve project root %s: %w"
	errorCountTokensFormat   = "count tokens for %s: %w"
	messageFileAddedFormat   = "The file %s is added to:\n %s"
	warningNonTextFileFormat = "Skipped binary/non-text file: %s"
	warningUnreadableFormat  = "Could not read %s: %v"
	warningSpecialFileFormat = "Skipped special file: %s"
	warningAccessPathFormat  = "Could not access %s: %v"
)

// DumpOptions configures a single project2txt run.
type DumpOptions struct {
	Filesystem   afero.Fs
	Root         string
	OutputName   string
	Rules        config.ExclusionRules
	Logger       *zap.Logger
	TokenCounter tokenizer.Counter
}

// DumpResult reports what a run wrote.
type DumpResult = types.DumpSummary

// DumpProject concatenates every included file under options.Root into the
// output document inside that root. Unreadable and non-text files are
// skipped with a notice. Failing to create or write the document aborts the
// run with an error wrapping output.ErrOutputDocument.
func DumpProject(options DumpOptions) (result DumpResult, err error) {
	filesystem := options.Filesystem
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	logger := utils.LoggerOrNop(options.Logger)
	outputName := options.OutputName
	if outputName == utils.EmptyString {
		outputName = config.DefaultOutputName
	}

	root, rootError := filepath.Abs(options.Root)
	if rootError != nil {
		return DumpResult{}, fmt.Errorf(errorResolveRootFormat, options.Root, rootError)
	}
	outputPath := filepath.Join(root, outputName)

	document, createError := output.CreateDocument(filesystem, outputPath)
	if createError != nil {
		logger.Error(fmt.Sprintf(errorCreateOutputFormat, createError))
		return DumpResult{}, createError
	}
	defer func() {
		if closeError := document.Close(); closeError != nil && err == nil {
			logger.Error(fmt.Sprintf(errorWriteOutputFormat, closeError))
			err = closeError
		}
	}()

	dumper := &projectDumper{
		filesystem: filesystem,
		root:       root,
		rules:      options.Rules.WithFileNames(outputName),
		logger:     logger,
		counter:    options.TokenCounter,
		document:   document,
		result:     DumpResult{OutputPath: outputPath},
	}
	if options.TokenCounter != nil {
		dumper.result.Model = options.TokenCounter.Name()
	}

	if headerError := document.WriteHeader(root); headerError != nil {
		logger.Error(fmt.Sprintf(errorWriteOutputFormat, headerError))
		return dumper.result, headerError
	}
	if walkError := afero.Walk(filesystem, root, dumper.visit); walkError != nil {
		logger.Error(fmt.Sprintf(errorWriteOutputFormat, walkError))
		return dumper.result, walkError
	}
	if closeError := document.Close(); closeError != nil {
		logger.Error(fmt.Sprintf(errorWriteOutputFormat, closeError))
		return dumper.result, closeError
	}
	dumper.result.BytesWritten = document.BytesWritten()

	logger.Info(output.FormatDoneLine(outputName))
	logger.Info(output.FormatSummaryLine(dumper.result))
	return dumper.result, nil
}

type projectDumper struct {
	filesystem afero.Fs
	root       string
	rules      config.ExclusionRules
	logger     *zap.Logger
	counter    tokenizer.Counter
	document   *output.Document
	result     DumpResult
}

// visit is the afero.Walk callback. Only document failures are returned;
// everything else is reported and skipped.
func (dumper *projectDumper) visit(path string, info os.FileInfo, accessError error) error {
	if accessError != nil {
		dumper.logger.Warn(fmt.Sprintf(warningAccessPathFormat, path, accessError))
		return nil
	}
	if info.IsDir() {
		if path == dumper.root {
			return nil
		}
		if dumper.rules.ExcludesDirectoryName(info.Name()) || dumper.rules.MatchesPattern(dumper.slashRelativePath(path)) {
			return filepath.SkipDir
		}
		return nil
	}
	return dumper.includeFile(path, info)
}

func (dumper *projectDumper) includeFile(path string, info os.FileInfo) error {
	name := info.Name()
	if dumper.rules.ExcludesFileName(name) || dumper.rules.ExcludesExtension(name) {
		return nil
	}
	if dumper.rules.MatchesPattern(dumper.slashRelativePath(path)) {
		return nil
	}

	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		targetInfo, statError := dumper.filesystem.Stat(path)
		if statError == nil && targetInfo.IsDir() {
			return nil
		}
		// a dangling link falls through and is reported by the read
		if statError == nil {
			mode = targetInfo.Mode()
		}
	}
	if mode&os.ModeSymlink == 0 && !mode.IsRegular() {
		dumper.logger.Warn(fmt.Sprintf(warningSpecialFileFormat, path))
		dumper.result.FilesSkipped++
		return nil
	}

	content, readError := afero.ReadFile(dumper.filesystem, path)
	if readError != nil {
		dumper.logger.Warn(fmt.Sprintf(warningUnreadableFormat, path, readError))
		dumper.result.FilesSkipped++
		return nil
	}
	if !utils.IsText(content) {
		dumper.logger.Warn(fmt.Sprintf(warningNonTextFileFormat, path))
		dumper.result.FilesSkipped++
		return nil
	}

	relativePath := utils.RelativePathOrSelf(path, dumper.root)
	if writeError := dumper.document.WriteFile(utils.FenceLabel(name), relativePath, content); writeError != nil {
		return writeError
	}
	dumper.result.FilesWritten++
	dumper.logger.Info(fmt.Sprintf(messageFileAddedFormat, path, dumper.document.Path()))

	if dumper.counter != nil {
		countResult, countError := tokenizer.CountBytes(dumper.counter, content)
		if countError != nil {
			dumper.logger.Warn(fmt.Errorf(errorCountTokensFormat, path, countError).Error())
		} else if countResult.Counted {
			dumper.result.Tokens += countResult.Tokens
		}
	}
	return nil
}

func (dumper *projectDumper) slashRelativePath(path string) string {
	return filepath.ToSlash(utils.RelativePathOrSelf(path, dumper.root))
}
