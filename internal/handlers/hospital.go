package handlers

import (
	"errors"
	"log"

	"docspace/internal/models"
	"docspace/internal/services/document"
	"docspace/internal/services/hospital"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type HospitalHandler struct {
	hospitalService *hospital.Service
}

func NewHospitalHandler(hospitalService *hospital.Service) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitalService}
}

// SaveProfile creates or updates the caller's hospital profile.
func (h *HospitalHandler) SaveProfile(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input hospital.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	profile, err := h.hospitalService.SaveProfile(claims.UserID, input)
	if err != nil {
		if errors.Is(err, hospital.ErrMissingFields) {
			return utils.BadRequest(c, "Hospital name, city, contact name and email are required")
		}
		log.Printf("[Hospital] profile save failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Failed to save profile")
	}

	return utils.Success(c, profile)
}

// GetProfile returns the caller's hospital profile.
func (h *HospitalHandler) GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	profile, err := h.hospitalService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, hospital.ErrProfileNotFound) {
			return utils.NotFound(c, "Hospital profile not found")
		}
		return utils.InternalError(c, "Failed to load profile")
	}
	return utils.Success(c, profile)
}

// UploadDocument accepts one verification document per type.
func (h *HospitalHandler) UploadDocument(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	documentType := c.Params("type")

	data, err := readUpload(c, "file")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.hospitalService.UploadDocument(c.Context(), claims.UserID, documentType, data); err != nil {
		switch {
		case errors.Is(err, hospital.ErrInvalidDocumentType):
			return utils.BadRequest(c, "Unknown document type")
		case errors.Is(err, hospital.ErrProfileNotFound):
			return utils.NotFound(c, "Hospital profile not found")
		case errors.Is(err, document.ErrTooLarge),
			errors.Is(err, document.ErrNotPDF),
			errors.Is(err, document.ErrEmptyPDF):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("[Hospital] document upload failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Upload failed")
	}

	return utils.Success(c, fiber.Map{
		"message": "Document uploaded successfully",
	})
}

// SendForVerification moves the hospital into the review queue.
func (h *HospitalHandler) SendForVerification(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	if err := h.hospitalService.SendForVerification(claims.UserID); err != nil {
		switch {
		case errors.Is(err, hospital.ErrProfileNotFound):
			return utils.NotFound(c, "Hospital profile not found")
		case errors.Is(err, hospital.ErrAlreadySubmitted):
			return utils.Conflict(c, "Verification already submitted")
		case errors.Is(err, hospital.ErrMissingDocuments):
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Submission failed")
	}

	return utils.Success(c, fiber.Map{
		"message": "Verification submitted",
		"status":  models.VerificationPending,
	})
}

// VerificationStatus reports uploaded and missing documents with the current
// review status.
func (h *HospitalHandler) VerificationStatus(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	state, err := h.hospitalService.Status(claims.UserID)
	if err != nil {
		if errors.Is(err, hospital.ErrProfileNotFound) {
			return utils.NotFound(c, "Hospital profile not found")
		}
		return utils.InternalError(c, "Failed to load verification status")
	}
	return utils.Success(c, state)
}
