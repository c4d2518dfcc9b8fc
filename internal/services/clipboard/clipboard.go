// Package clipboard places the finished project document on the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
)

const errorCopyDocumentFormat = "copy %s to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyDocument reads the document at path and hands its text to copier.
func CopyDocument(copier Copier, filesystem afero.Fs, path string) error {
	content, readError := afero.ReadFile(filesystem, path)
	if readError != nil {
		return fmt.Errorf(errorCopyDocumentFormat, path, readError)
	}
	if copyError := copier.Copy(string(content)); copyError != nil {
		return fmt.Errorf(errorCopyDocumentFormat, path, copyError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
