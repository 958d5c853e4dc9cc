package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// OCRClient extracts structured fields and raw text from PDF documents via
// the field-extraction service.
type OCRClient interface {
	ExtractLicense(ctx context.Context, pdf []byte) (*ExtractedFields, error)
	ExtractID(ctx context.Context, pdf []byte) (*ExtractedFields, error)
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

type ocrClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOCRClient creates a client for the OCR/field-extraction service.
func NewOCRClient(baseURL string, timeout time.Duration) OCRClient {
	return &ocrClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ocrClient) ExtractLicense(ctx context.Context, pdf []byte) (*ExtractedFields, error) {
	var out struct {
		StructuredCertificate map[string]string `json:"structured_certificate"`
	}
	if err := c.postPDF(ctx, "/extract-license", pdf, &out); err != nil {
		return nil, err
	}
	if out.StructuredCertificate == nil {
		return nil, fmt.Errorf("ocr: no structured certificate in response")
	}
	return fieldsFromMap(out.StructuredCertificate), nil
}

func (c *ocrClient) ExtractID(ctx context.Context, pdf []byte) (*ExtractedFields, error) {
	var out struct {
		StructuredID map[string]string `json:"structured_id"`
	}
	if err := c.postPDF(ctx, "/extract-id-license", pdf, &out); err != nil {
		return nil, err
	}
	if out.StructuredID == nil {
		return nil, fmt.Errorf("ocr: no structured id in response")
	}
	return fieldsFromMap(out.StructuredID), nil
}

func (c *ocrClient) ExtractText(ctx context.Context, pdf []byte) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	if err := c.postPDF(ctx, "/extract-text", pdf, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Text), nil
}

func (c *ocrClient) postPDF(ctx context.Context, path string, pdf []byte, dest interface{}) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "document.pdf")
	if err != nil {
		return err
	}
	if _, err := part.Write(pdf); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ocr call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ocr call failed: %s: %s", resp.Status, string(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("ocr: invalid response: %w", err)
	}
	return nil
}

// fieldsFromMap lifts the name field out of the raw structured response and
// keeps the rest for display.
func fieldsFromMap(m map[string]string) *ExtractedFields {
	fields := &ExtractedFields{Fields: make(map[string]string, len(m))}
	for k, v := range m {
		if k == "name" {
			fields.Name = v
			continue
		}
		fields.Fields[k] = v
	}
	return fields
}
