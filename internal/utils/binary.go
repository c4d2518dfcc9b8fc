package utils

import "unicode/utf8"

// IsText reports whether data decodes as UTF-8. NUL bytes are valid UTF-8,
// so files containing them count as text.
func IsText(data []byte) bool {
	return utf8.Valid(data)
}
