// Package insight generates LLM-assisted review notes for hospital
// verification documents. The generator extracts fields and flags risks; it
// is contractually forbidden from approving or rejecting anything.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// MinTextLength is the minimum extracted-text size worth analyzing. Shorter
// inputs fail fast without touching the model.
const MinTextLength = 50

var (
	ErrInsufficientText    = errors.New("insufficient text for AI analysis")
	ErrInvalidDocumentType = errors.New("invalid document type")
)

const systemPrompt = `You are an assistant helping an admin review hospital verification documents.

IMPORTANT RULES:
- Do NOT approve or reject documents.
- Do NOT say "valid" or "invalid".
- Only extract information and highlight potential issues.
- Be factual and conservative.
- Output ONLY valid JSON.
- Do NOT include explanations outside JSON.`

// HospitalProfile carries the stored profile fields the model cross-checks
// the document against.
type HospitalProfile struct {
	HospitalName               string `json:"hospital_name"`
	HospitalType               string `json:"hospital_type,omitempty"`
	RegistrationNumberHospital string `json:"registration_number_hospital,omitempty"`
	City                       string `json:"city,omitempty"`
	State                      string `json:"state,omitempty"`
	Website                    string `json:"website,omitempty"`
}

// Insights is the strict JSON shape the model must return.
type Insights struct {
	DocumentType    string            `json:"document_type"`
	ExtractedFields map[string]string `json:"extracted_fields"`
	Observations    []string          `json:"observations"`
	RiskFlags       []string          `json:"risk_flags"`
	Confidence      string            `json:"confidence"` // low | medium | high
}

type Service interface {
	Generate(ctx context.Context, documentType, extractedText string, profile HospitalProfile) (*Insights, error)
	Close() error
}

type service struct {
	model      *genai.GenerativeModel
	baseClient *genai.Client
	validTypes map[string]bool
}

// NewService creates an insight generator backed by a Vertex AI model
// constrained to JSON output.
func NewService(ctx context.Context, projectID, region, modelName string) (Service, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("insight: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := baseClient.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	return &service{
		model:      model,
		baseClient: baseClient,
		validTypes: map[string]bool{
			"registration": true, "authorization": true, "address": true,
			"gst": true, "nabh": true,
		},
	}, nil
}

func (s *service) Generate(ctx context.Context, documentType, extractedText string, profile HospitalProfile) (*Insights, error) {
	if !s.validTypes[documentType] {
		return nil, ErrInvalidDocumentType
	}
	if len(extractedText) < MinTextLength {
		return nil, ErrInsufficientText
	}

	prompt, err := buildPrompt(documentType, extractedText, profile)
	if err != nil {
		return nil, err
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("insight generation failed: %w", err)
	}

	raw := responseText(resp)
	insights, err := parseInsights(raw)
	if err != nil {
		return nil, err
	}
	return insights, nil
}

func (s *service) Close() error {
	if s.baseClient != nil {
		return s.baseClient.Close()
	}
	return nil
}

func buildPrompt(documentType, extractedText string, profile HospitalProfile) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Document type: %s

Hospital profile (for comparison):
%s

Extracted document text:
"""
%s
"""

Return JSON in the EXACT format below:
{
  "document_type": "%s",
  "extracted_fields": {
    "hospital_name": "",
    "registration_number": "",
    "issuing_authority": "",
    "address": "",
    "valid_from": "",
    "valid_till": ""
  },
  "observations": [],
  "risk_flags": [],
  "confidence": "low | medium | high"
}

Guidelines:
- If information is missing, leave it empty.
- Add observations only if relevant.
- Add risk_flags only if something needs admin attention.`,
		documentType, profileJSON, extractedText, documentType), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// parseInsights validates the model output strictly. Fenced output is
// tolerated, anything that is not valid JSON after that is a hard error.
func parseInsights(raw string) (*Insights, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var insights Insights
	if err := json.Unmarshal([]byte(cleaned), &insights); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return &insights, nil
}
