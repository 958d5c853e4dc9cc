package handlers

import (
	"errors"
	"log"
	"strconv"

	"docspace/internal/services/admin"
	"docspace/internal/services/hospital"
	"docspace/internal/services/verification"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService    *admin.Service
	verifier        verification.Service
	submissions     *verification.SubmissionService
	hospitalService *hospital.Service
}

func NewAdminHandler(
	adminService *admin.Service,
	verifier verification.Service,
	submissions *verification.SubmissionService,
	hospitalService *hospital.Service,
) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		verifier:        verifier,
		submissions:     submissions,
		hospitalService: hospitalService,
	}
}

// PendingVerifications lists doctors awaiting review.
func (h *AdminHandler) PendingVerifications(c *fiber.Ctx) error {
	users, err := h.adminService.PendingDoctors()
	if err != nil {
		return utils.InternalError(c, "Failed to list pending verifications")
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"id":                  u.ID,
			"name":                u.Name,
			"email":               u.Email,
			"designation":         u.Designation,
			"registration_number": u.RegistrationNumber,
			"submitted_at":        u.UpdatedAt,
		})
	}
	return utils.Success(c, fiber.Map{"pending": out})
}

// UserDocuments returns signed download links for a doctor's uploads.
func (h *AdminHandler) UserDocuments(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	urls, err := h.submissions.SignedDocumentURLs(c.Context(), userID)
	if err != nil {
		log.Printf("[Admin] signing documents for user %d: %v", userID, err)
		return utils.InternalError(c, "Failed to sign document URLs")
	}
	return utils.Success(c, fiber.Map{"documents": urls})
}

// ReviewVerification applies an approve or reject decision to a doctor.
func (h *AdminHandler) ReviewVerification(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.adminService.ReviewDoctor(userID, input.Action); err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidAction):
			return utils.BadRequest(c, "Action must be approve or reject")
		case errors.Is(err, admin.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, admin.ErrNotPending):
			return utils.Conflict(c, "Verification is not pending")
		}
		return utils.InternalError(c, "Review failed")
	}

	return utils.Success(c, fiber.Map{
		"message": "Verification " + input.Action + "d",
	})
}

// AICheck runs the automated verification pipeline for a doctor and returns
// the score report. It never changes the stored verification status.
func (h *AdminHandler) AICheck(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	report, err := h.verifier.Check(c.Context(), userID)
	if err != nil {
		if errors.Is(err, verification.ErrLicenseRequired) {
			return utils.BadRequest(c, "License document is missing")
		}
		log.Printf("[Admin] AI check failed for user %d: %v", userID, err)
		return utils.InternalError(c, "Verification check failed")
	}
	return utils.Success(c, report)
}

// PendingHospitals lists hospitals awaiting review, oldest first.
func (h *AdminHandler) PendingHospitals(c *fiber.Ctx) error {
	hospitals, err := h.adminService.PendingHospitals()
	if err != nil {
		return utils.InternalError(c, "Failed to list pending hospitals")
	}
	return utils.Success(c, fiber.Map{"pending": hospitals})
}

// HospitalProfile returns one hospital's profile for review.
func (h *AdminHandler) HospitalProfile(c *fiber.Ctx) error {
	hospitalID, err := paramUint(c, "hospitalId")
	if err != nil {
		return utils.BadRequest(c, "Invalid hospital ID")
	}

	profile, err := h.adminService.HospitalProfile(hospitalID)
	if err != nil {
		return utils.NotFound(c, "Hospital not found")
	}
	return utils.Success(c, profile)
}

// HospitalDocuments returns signed download links for a hospital's uploads.
func (h *AdminHandler) HospitalDocuments(c *fiber.Ctx) error {
	hospitalID, err := paramUint(c, "hospitalId")
	if err != nil {
		return utils.BadRequest(c, "Invalid hospital ID")
	}

	urls, err := h.hospitalService.SignedDocumentURLs(c.Context(), hospitalID)
	if err != nil {
		return utils.InternalError(c, "Failed to sign document URLs")
	}
	return utils.Success(c, fiber.Map{"documents": urls})
}

// HospitalDocumentInsights runs text extraction and the insight model over
// one stored document.
func (h *AdminHandler) HospitalDocumentInsights(c *fiber.Ctx) error {
	hospitalID, err := paramUint(c, "hospitalId")
	if err != nil {
		return utils.BadRequest(c, "Invalid hospital ID")
	}
	documentType := c.Params("type")

	insights, err := h.hospitalService.DocumentInsights(c.Context(), hospitalID, documentType)
	if err != nil {
		switch {
		case errors.Is(err, hospital.ErrInvalidDocumentType):
			return utils.BadRequest(c, "Unknown document type")
		case errors.Is(err, hospital.ErrProfileNotFound):
			return utils.NotFound(c, "Hospital not found")
		case errors.Is(err, hospital.ErrDocumentNotFound):
			return utils.NotFound(c, "Document not found")
		case errors.Is(err, hospital.ErrInsightsUnavailable):
			return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"error": "Insight model is not configured"})
		}
		log.Printf("[Admin] insights failed for hospital %d %s: %v", hospitalID, documentType, err)
		return utils.InternalError(c, "Insight generation failed")
	}
	return utils.Success(c, insights)
}

// ReviewHospital applies an approve or reject decision to a hospital.
func (h *AdminHandler) ReviewHospital(c *fiber.Ctx) error {
	hospitalID, err := paramUint(c, "hospitalId")
	if err != nil {
		return utils.BadRequest(c, "Invalid hospital ID")
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.adminService.ReviewHospital(hospitalID, input.Action); err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidAction):
			return utils.BadRequest(c, "Action must be approve or reject")
		case errors.Is(err, admin.ErrHospitalNotFound):
			return utils.NotFound(c, "Hospital not found")
		case errors.Is(err, admin.ErrNotPending):
			return utils.Conflict(c, "Verification is not pending")
		}
		return utils.InternalError(c, "Review failed")
	}

	return utils.Success(c, fiber.Map{
		"message": "Verification " + input.Action + "d",
	})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
