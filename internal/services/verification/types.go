package verification

// Verdict statuses. The status is a pure function of the total score.
const (
	StatusVerified          = "VERIFIED"
	StatusPartiallyVerified = "PARTIALLY_VERIFIED"
	StatusFailed            = "FAILED"
)

// RegistryResult is what the registry lookup collaborator returns for a
// doctor. Ephemeral, never persisted.
type RegistryResult struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Council            string `json:"council"`
	Year               string `json:"year"`
}

// ExtractedFields is the structured field set OCR pulls out of a document.
// Only the name field participates in scoring; the rest is carried through
// for the admin to inspect.
type ExtractedFields struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Breakdown holds the per-source sub-scores.
type Breakdown struct {
	RegistryScore   int `json:"registry_score"`
	LicenseOCRScore int `json:"license_ocr_score"`
	IDOCRScore      int `json:"id_ocr_score"`
}

// Report is the read-only verdict returned to the admin. Producing it never
// transitions the persisted verification status; approve/reject is a
// separate explicit action.
type Report struct {
	Name               string           `json:"name"`
	Role               string           `json:"role"`
	VerificationScore  int              `json:"verification_score"`
	VerificationStatus string           `json:"verification_status"`
	Breakdown          Breakdown        `json:"breakdown"`
	ExtractedLicense   *ExtractedFields `json:"extracted_license"`
	ExtractedID        *ExtractedFields `json:"extracted_id"`
	RegistryResult     *RegistryResult  `json:"registry_result"`
	Method             string           `json:"method"`
}

// StatusForScore maps a total score to its verdict status. The three ranges
// are exhaustive and non-overlapping.
func StatusForScore(score int) string {
	switch {
	case score == 100:
		return StatusVerified
	case score >= 50:
		return StatusPartiallyVerified
	default:
		return StatusFailed
	}
}
