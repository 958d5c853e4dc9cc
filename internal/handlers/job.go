package handlers

import (
	"errors"
	"log"

	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/job"
	"docspace/internal/utils"
	"docspace/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	jobService job.Service
}

func NewJobHandler(jobService job.Service) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// PostJob creates a new opening. Only verified hospitals may post.
func (h *JobHandler) PostJob(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input job.PostInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.jobService.Post(claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrHospitalNotFound):
			return utils.NotFound(c, "Hospital profile not found")
		case errors.Is(err, job.ErrHospitalNotVerified):
			return utils.Forbidden(c, "Hospital must be verified to post jobs")
		case errors.Is(err, job.ErrInvalidJobType),
			errors.Is(err, job.ErrMissingFields):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("[Job] posting failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Failed to post job")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListJobs is the public job search with filters and pagination.
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	filter := repositories.JobFilter{
		Query:      c.Query("q"),
		Department: c.Query("department"),
		JobType:    c.Query("job_type"),
		Status:     c.Query("status", "open"),
	}

	jobs, total, err := h.jobService.List(filter, p.Offset, p.Limit)
	if err != nil {
		return utils.InternalError(c, "Failed to list jobs")
	}
	p.Total = total

	return utils.Success(c, pagination.Response(p, jobs))
}

// GetJob returns one opening with its hospital.
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid job ID")
	}

	opening, err := h.jobService.Get(jobID)
	if err != nil {
		return utils.NotFound(c, "Job not found")
	}
	return utils.Success(c, opening)
}

// ListMyJobTitles returns the caller hospital's job titles for pickers.
func (h *JobHandler) ListMyJobTitles(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	jobs, err := h.jobService.ListTitles(claims.UserID)
	if err != nil {
		if errors.Is(err, job.ErrHospitalNotFound) {
			return utils.NotFound(c, "Hospital profile not found")
		}
		return utils.InternalError(c, "Failed to list jobs")
	}
	return utils.Success(c, fiber.Map{"jobs": jobs})
}

// UpdateJob edits an existing opening.
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	jobID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid job ID")
	}

	var input job.PostInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	updated, err := h.jobService.Update(claims.UserID, jobID, input)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			return utils.NotFound(c, "Job not found")
		case errors.Is(err, job.ErrNotJobOwner):
			return utils.Forbidden(c, "Job belongs to another hospital")
		case errors.Is(err, job.ErrInvalidJobType),
			errors.Is(err, job.ErrMissingFields):
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("[Job] update failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Failed to update job")
	}

	return utils.Success(c, updated)
}

// CloseJob marks an opening closed.
func (h *JobHandler) CloseJob(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	jobID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid job ID")
	}

	if err := h.jobService.Close(claims.UserID, jobID); err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			return utils.NotFound(c, "Job not found")
		case errors.Is(err, job.ErrNotJobOwner):
			return utils.Forbidden(c, "Job belongs to another hospital")
		}
		return utils.InternalError(c, "Failed to close job")
	}

	return utils.Success(c, fiber.Map{
		"message": "Job closed",
	})
}
