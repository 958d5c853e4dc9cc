package handlers

import (
	"errors"
	"log"
	"time"

	"docspace/internal/models"
	"docspace/internal/services/application"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	applicationService application.Service
}

func NewApplicationHandler(applicationService application.Service) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply submits the caller's application for a job.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	jobID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid job ID")
	}

	app, err := h.applicationService.Apply(claims.UserID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrJobNotFound):
			return utils.NotFound(c, "Job not found")
		case errors.Is(err, application.ErrJobClosed):
			return utils.BadRequest(c, "Job is no longer open")
		case errors.Is(err, application.ErrAlreadyApplied):
			return utils.Conflict(c, "You have already applied to this job")
		}
		log.Printf("[Application] apply failed for user %d job %d: %v", claims.UserID, jobID, err)
		return utils.InternalError(c, "Failed to apply")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Application submitted",
		"application_id": app.ID,
		"status":         app.Status,
	})
}

// ListForJob returns the applications received for one of the caller's jobs.
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	jobID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid job ID")
	}

	apps, err := h.applicationService.ListForJob(claims.UserID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrJobNotFound):
			return utils.NotFound(c, "Job not found")
		case errors.Is(err, application.ErrNotJobOwner):
			return utils.Forbidden(c, "Job belongs to another hospital")
		}
		return utils.InternalError(c, "Failed to list applications")
	}

	return utils.Success(c, fiber.Map{"applications": apps})
}

// ListMine returns the caller's own applications with their jobs.
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	apps, err := h.applicationService.ListForUser(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to list applications")
	}
	return utils.Success(c, fiber.Map{"applications": apps})
}

// Approve schedules an interview for an application.
func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	applicationID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid application ID")
	}

	var input struct {
		InterviewDate string `json:"interview_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	interviewDate, err := time.Parse("2006-01-02", input.InterviewDate)
	if err != nil {
		return utils.BadRequest(c, "Interview date must be YYYY-MM-DD")
	}
	if interviewDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return utils.BadRequest(c, "Interview date must be in the future")
	}

	if err := h.applicationService.Approve(c.Context(), claims.UserID, applicationID, interviewDate); err != nil {
		return h.reviewError(c, err, applicationID)
	}

	return utils.Success(c, fiber.Map{
		"message": "Application approved",
	})
}

// Reject declines an application.
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	applicationID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid application ID")
	}

	if err := h.applicationService.Reject(c.Context(), claims.UserID, applicationID); err != nil {
		return h.reviewError(c, err, applicationID)
	}

	return utils.Success(c, fiber.Map{
		"message": "Application rejected",
	})
}

func (h *ApplicationHandler) reviewError(c *fiber.Ctx, err error, applicationID uint) error {
	switch {
	case errors.Is(err, application.ErrApplicationNotFound):
		return utils.NotFound(c, "Application not found")
	case errors.Is(err, application.ErrNotJobOwner):
		return utils.Forbidden(c, "Application belongs to another hospital's job")
	}
	log.Printf("[Application] review failed for application %d: %v", applicationID, err)
	return utils.InternalError(c, "Failed to update application")
}
