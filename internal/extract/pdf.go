// Package extract isolates document-format concerns: downstream stages see
// only plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction means a document could not be parsed (corrupt, encrypted,
// or without extractable text). Index builds skip such documents.
var ErrExtraction = errors.New("text extraction failed")

// Text reads the entire content of r and returns the PDF's plain text.
func Text(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}

	readerAt := bytes.NewReader(b)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text", ErrExtraction)
	}
	return text, nil
}
