// Package document validates uploaded PDFs before they reach object storage.
package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MaxUploadSize caps verification document uploads at 5MB.
const MaxUploadSize = 5 * 1024 * 1024

var (
	ErrTooLarge = errors.New("document exceeds the 5MB size limit")
	ErrNotPDF   = errors.New("only PDF files are allowed")
	ErrEmptyPDF = errors.New("document has no pages")
)

// ValidatePDF checks size, magic bytes, and structural well-formedness of an
// uploaded document. Returns the page count on success.
func ValidatePDF(data []byte) (int, error) {
	if len(data) > MaxUploadSize {
		return 0, ErrTooLarge
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if pageCount == 0 {
		return 0, ErrEmptyPDF
	}
	return pageCount, nil
}
