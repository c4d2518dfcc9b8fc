package output

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

const (
	documentHeaderFormat  = "Presentation of file contents for project located at: %s\n"
	documentFileMode      = 0o644
	fenceMarker           = "```"
	pathCommentPrefix     = "// "
	newline               = "\n"
	headerUnderlineLength = 65
)

// ErrOutputDocument classifies failures to create or write the output document.
var ErrOutputDocument = errors.New("output document")

// Document is the append-only text stream project2txt writes into. It is
// owned by a single run and must be closed on every exit path.
type Document struct {
	path         string
	handle       afero.File
	writer       *bufio.Writer
	bytesWritten int64
	closed       bool
}

// CreateDocument truncates or creates the document at path.
func CreateDocument(filesystem afero.Fs, path string) (*Document, error) {
	handle, openError := filesystem.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, documentFileMode)
	if openError != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrOutputDocument, path, openError)
	}
	return &Document{path: path, handle: handle, writer: bufio.NewWriter(handle)}, nil
}

// Path returns the location of the document.
func (document *Document) Path() string {
	return document.path
}

// BytesWritten returns the number of bytes accepted so far.
func (document *Document) BytesWritten() int64 {
	return document.bytesWritten
}

// WriteHeader writes the introduction naming the project root.
func (document *Document) WriteHeader(root string) error {
	return document.writeString(FormatDocumentHeader(root))
}

// WriteFile appends one fenced block holding content.
func (document *Document) WriteFile(label string, relativePath string, content []byte) error {
	return document.writeString(FormatFencedBlock(label, relativePath, string(content)))
}

// Close flushes buffered data and releases the file handle. Calling Close
// more than once is a no-op.
func (document *Document) Close() error {
	if document.closed {
		return nil
	}
	document.closed = true
	flushError := document.writer.Flush()
	closeError := document.handle.Close()
	if flushError != nil {
		return fmt.Errorf("%w: flush %s: %w", ErrOutputDocument, document.path, flushError)
	}
	if closeError != nil {
		return fmt.Errorf("%w: close %s: %w", ErrOutputDocument, document.path, closeError)
	}
	return nil
}

func (document *Document) writeString(text string) error {
	if document.closed {
		return fmt.Errorf("%w: write %s: %w", ErrOutputDocument, document.path, os.ErrClosed)
	}
	written, writeError := document.writer.WriteString(text)
	document.bytesWritten += int64(written)
	if writeError != nil {
		return fmt.Errorf("%w: write %s: %w", ErrOutputDocument, document.path, writeError)
	}
	return nil
}

// FormatDocumentHeader renders the document introduction followed by a blank line.
func FormatDocumentHeader(root string) string {
	return fmt.Sprintf(documentHeaderFormat, root) + strings.Repeat("=", headerUnderlineLength) + newline + newline
}

// FormatFencedBlock renders one file as a fenced block tagged with label. A
// newline is added when content does not already end with one, and a blank
// line separates the block from the next.
func FormatFencedBlock(label string, relativePath string, content string) string {
	var builder strings.Builder
	builder.Grow(len(content) + len(relativePath) + len(label) + 16)
	builder.WriteString(fenceMarker + label + newline)
	builder.WriteString(pathCommentPrefix + relativePath + newline)
	builder.WriteString(content)
	if !strings.HasSuffix(content, newline) {
		builder.WriteString(newline)
	}
	builder.WriteString(fenceMarker + newline + newline)
	return builder.String()
}
