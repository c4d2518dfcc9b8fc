package output

import (
	"testing"

	"github.com/temirov/dirtools/internal/types"
)

func TestFormatSummaryLine(t *testing.T) {
	testCases := []struct {
		name     string
		summary  types.DumpSummary
		expected string
	}{
		{name: "empty", summary: types.DumpSummary{}, expected: "Summary: 0 files, 0b"},
		{name: "single", summary: types.DumpSummary{FilesWritten: 1, BytesWritten: 12}, expected: "Summary: 1 file, 12b"},
		{
			name:     "tokens and skipped",
			summary:  types.DumpSummary{FilesWritten: 3, BytesWritten: 2048, Tokens: 40, Model: "gpt-4o", FilesSkipped: 2},
			expected: "Summary: 3 files, 2kb, 40 tokens (model: gpt-4o), 2 skipped",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := FormatSummaryLine(testCase.summary); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestFormatDoneLine(t *testing.T) {
	if actual := FormatDoneLine("output.txt"); actual != "\nDone. Content written to output.txt" {
		t.Fatalf("unexpected done line %q", actual)
	}
}
