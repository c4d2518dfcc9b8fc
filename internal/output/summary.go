package output

import (
	"fmt"

	"github.com/temirov/dirtools/internal/types"
	"github.com/temirov/dirtools/internal/utils"
)

const (
	doneMessageFormat = "\nDone. Content written to %s"
	fileNounSingular  = "file"
	fileNounPlural    = "files"
)

// FormatDoneLine announces the completed document by name.
func FormatDoneLine(outputName string) string {
	return fmt.Sprintf(doneMessageFormat, outputName)
}

// FormatSummaryLine renders the totals of a finished dump.
func FormatSummaryLine(summary types.DumpSummary) string {
	label := fileNounPlural
	if summary.FilesWritten == 1 {
		label = fileNounSingular
	}
	line := fmt.Sprintf("Summary: %d %s, %s", summary.FilesWritten, label, utils.FormatFileSize(summary.BytesWritten))
	if summary.Tokens > 0 {
		line += fmt.Sprintf(", %d tokens", summary.Tokens)
		if summary.Model != utils.EmptyString {
			line += fmt.Sprintf(" (model: %s)", summary.Model)
		}
	}
	if summary.FilesSkipped > 0 {
		line += fmt.Sprintf(", %d skipped", summary.FilesSkipped)
	}
	return line
}
