package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInsights(t *testing.T) {
	valid := `{
		"document_type": "registration",
		"extracted_fields": {"hospital_name": "City Care Hospital"},
		"observations": ["Name matches profile"],
		"risk_flags": [],
		"confidence": "high"
	}`

	t.Run("plain JSON", func(t *testing.T) {
		insights, err := parseInsights(valid)
		assert.NoError(t, err)
		assert.Equal(t, "registration", insights.DocumentType)
		assert.Equal(t, "City Care Hospital", insights.ExtractedFields["hospital_name"])
		assert.Equal(t, "high", insights.Confidence)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		fenced := "```json\n" + valid + "\n```"
		insights, err := parseInsights(fenced)
		assert.NoError(t, err)
		assert.Equal(t, "registration", insights.DocumentType)
	})

	t.Run("bare fence", func(t *testing.T) {
		fenced := "```\n" + valid + "\n```"
		_, err := parseInsights(fenced)
		assert.NoError(t, err)
	})

	t.Run("invalid JSON is a hard error", func(t *testing.T) {
		_, err := parseInsights("The document looks fine to me.")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("empty output", func(t *testing.T) {
		_, err := parseInsights("")
		assert.Error(t, err)
	})
}

func TestGenerate_InputValidation(t *testing.T) {
	svc := &service{validTypes: map[string]bool{"registration": true}}

	t.Run("short text rejected before any model call", func(t *testing.T) {
		_, err := svc.Generate(nil, "registration", strings.Repeat("x", MinTextLength-20), HospitalProfile{})
		assert.ErrorIs(t, err, ErrInsufficientText)
	})

	t.Run("unknown document type", func(t *testing.T) {
		_, err := svc.Generate(nil, "passport", strings.Repeat("x", MinTextLength), HospitalProfile{})
		assert.ErrorIs(t, err, ErrInvalidDocumentType)
	})
}

func TestBuildPrompt(t *testing.T) {
	profile := HospitalProfile{
		HospitalName:               "City Care Hospital",
		RegistrationNumberHospital: "REG-42",
		City:                       "Pune",
	}

	prompt, err := buildPrompt("registration", "Certificate of Registration for City Care Hospital", profile)
	assert.NoError(t, err)
	assert.Contains(t, prompt, "Document type: registration")
	assert.Contains(t, prompt, "City Care Hospital")
	assert.Contains(t, prompt, `"document_type": "registration"`)
	// The prompt itself must never ask for a verdict.
	assert.False(t, strings.Contains(strings.ToLower(prompt), "approve"))
	assert.False(t, strings.Contains(strings.ToLower(prompt), "reject"))
}
