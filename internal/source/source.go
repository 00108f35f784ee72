// Package source decodes screenplay files into plain text for the fountain
// parser. The parser itself only ever sees decoded text; locating files and
// turning container formats into text happens here.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Decoder extracts plain screenplay text from raw file bytes.
type Decoder interface {
	Decode(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".fountain": true,
	".spmd":     true,
	".txt":      true,
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate decoder for a filename.
func ForFile(filename string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".fountain", ".spmd", ".txt":
		return &PlainDecoder{}, nil
	case ".pdf":
		return &PDFDecoder{}, nil
	case ".docx":
		return &DOCXDecoder{}, nil
	case ".html", ".htm":
		return &HTMLDecoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
