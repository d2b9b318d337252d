package document

import "errors"

var (
	// ErrFileIO is returned when a document cannot be read.
	ErrFileIO = errors.New("document I/O error")
	// ErrDocumentSyntax is returned when a document is not well-formed.
	ErrDocumentSyntax = errors.New("document syntax error")
	// ErrUnsupportedFormat is returned for locations without a known extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrType is returned when a value cannot be converted to the requested type.
	ErrType = errors.New("unexpected value type")
)
