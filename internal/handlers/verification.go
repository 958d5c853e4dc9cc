package handlers

import (
	"errors"
	"io"
	"log"

	"docspace/internal/models"
	"docspace/internal/services/document"
	"docspace/internal/services/verification"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type VerificationHandler struct {
	submissions *verification.SubmissionService
}

func NewVerificationHandler(submissions *verification.SubmissionService) *VerificationHandler {
	return &VerificationHandler{submissions: submissions}
}

// UploadDocument accepts a multipart PDF upload for either the license or
// the identity document.
func (h *VerificationHandler) UploadDocument(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	kind := verification.DocKind(c.Params("kind"))
	if kind != verification.DocLicense && kind != verification.DocID {
		return utils.BadRequest(c, "Document kind must be license or id")
	}

	data, err := readUpload(c, "file")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := h.submissions.UploadDocument(c.Context(), claims.UserID, kind, data); err != nil {
		switch {
		case errors.Is(err, verification.ErrAlreadyVerified):
			return utils.Conflict(c, "Verification already approved")
		case errors.Is(err, document.ErrTooLarge),
			errors.Is(err, document.ErrNotPDF),
			errors.Is(err, document.ErrEmptyPDF):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("[Verification] upload failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Upload failed")
	}

	return utils.Success(c, fiber.Map{
		"message": "Document uploaded successfully",
	})
}

// Submit queues the caller for admin review.
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	if err := h.submissions.Submit(c.Context(), claims.UserID); err != nil {
		switch {
		case errors.Is(err, verification.ErrAlreadyVerified):
			return utils.Conflict(c, "Verification already approved")
		case errors.Is(err, verification.ErrLicenseRequired):
			return utils.BadRequest(c, "License document is required before submitting")
		}
		return utils.InternalError(c, "Submission failed")
	}

	return utils.Success(c, fiber.Map{
		"message": "Verification submitted",
		"status":  models.VerificationPending,
	})
}

// Status reports where the caller's verification stands.
func (h *VerificationHandler) Status(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	state, err := h.submissions.Status(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load verification status")
	}
	return utils.Success(c, state)
}

// readUpload pulls one multipart file field into memory, capped at the
// document size limit.
func readUpload(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, errors.New("file field is required")
	}
	if fileHeader.Size > document.MaxUploadSize {
		return nil, document.ErrTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, document.MaxUploadSize+1))
	if err != nil {
		return nil, errors.New("could not read uploaded file")
	}
	return data, nil
}
