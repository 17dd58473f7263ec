// Package menuimport turns existing menu documents (Markdown, HTML, plain
// text, CSV, PDF and DOCX) into a menu payload ready to be created.
//
// Document parsers produce an Outline of headings and text blocks. Convert
// then maps the first heading level to sections, the next level to
// subsections, and each text line to an item with an optional trailing price.
package menuimport

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupported is returned for file types no parser handles.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrNoItems is returned when a document yields no menu items.
	ErrNoItems = errors.New("no menu items found")
)

// Parser converts raw document bytes into an Outline.
type Parser interface {
	Parse(r io.Reader, filename string) (*Outline, error)
}

// SupportedExtensions lists file extensions the importer can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Importer picks a parser by file extension and converts its outline.
type Importer struct {
	// PDFFallback runs pdftotext when the built-in PDF reader fails.
	PDFFallback bool
}

// ForFile returns the parser for a filename.
func (im Importer) ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: im.PDFFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Import parses r as the document named filename and returns its payload.
func (im Importer) Import(r io.Reader, filename string, opts Options) (Payload, error) {
	p, err := im.ForFile(filename)
	if err != nil {
		return Payload{}, err
	}
	o, err := p.Parse(r, filepath.Base(filename))
	if err != nil {
		return Payload{}, fmt.Errorf("parse %s: %w", filepath.Base(filename), err)
	}
	payload := Convert(o, opts)
	if len(payload.Items) == 0 {
		return payload, ErrNoItems
	}
	return payload, nil
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

func stripExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
