package verification

import (
	"strconv"
	"strings"
	"time"
)

// Sub-score weights. Registry rules award 20 points each across 4 rules;
// OCR name matches award 10 each.
const (
	registryRulePoints = 20
	ocrNamePoints      = 10
)

// registryIdentity is the stored profile side of the registry comparison.
type registryIdentity struct {
	Name                string
	RegistrationNumber  string
	RegistrationCouncil string
	YearsOfExperience   string
}

// scoreRegistry applies the four registry matching rules against the stored
// identity and returns 0..80 in 20-point increments.
//
// Rule A: registry name and stored name match by bidirectional substring.
// Rule B: registration numbers are digit-for-digit equal.
// Rule C: councils match by bidirectional substring.
// Rule D: current_year - registry_year is within ±1 of the stored experience.
// Rule D is only evaluated when Rule B passed; an experience figure means
// nothing against a record that isn't the doctor's own.
func scoreRegistry(stored registryIdentity, result RegistryResult, now time.Time) int {
	score := 0

	if namesMatch(result.Name, stored.Name) {
		score += registryRulePoints
	}

	regMatch := false
	storedNum := NormalizeNumber(stored.RegistrationNumber)
	registryNum := NormalizeNumber(result.RegistrationNumber)
	if storedNum != "" && registryNum != "" && storedNum == registryNum {
		regMatch = true
		score += registryRulePoints
	}

	storedCouncil := NormalizeText(stored.RegistrationCouncil)
	registryCouncil := NormalizeText(result.Council)
	if storedCouncil != "" && registryCouncil != "" &&
		(strings.Contains(storedCouncil, registryCouncil) || strings.Contains(registryCouncil, storedCouncil)) {
		score += registryRulePoints
	}

	if regMatch && yearConsistent(result.Year, stored.YearsOfExperience, now) {
		score += registryRulePoints
	}

	return score
}

// yearConsistent checks that the experience implied by the registration year
// is within ±1 of the stored years-of-experience. Both values must parse as
// integers.
func yearConsistent(registryYear, storedExperience string, now time.Time) bool {
	year, err := strconv.Atoi(strings.TrimSpace(registryYear))
	if err != nil {
		return false
	}
	experience, err := strconv.Atoi(strings.TrimSpace(storedExperience))
	if err != nil {
		return false
	}

	diff := now.Year() - year - experience
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// scoreOCRName awards points when the OCR-extracted name and the stored name
// match by exact bidirectional substring. Token overlap is deliberately not
// considered: "J Smith" does not match "Dr. John Smith".
func scoreOCRName(extractedName, storedName string) int {
	if namesMatch(extractedName, storedName) {
		return ocrNamePoints
	}
	return 0
}
