package handlers

import (
	"errors"
	"log"
	"strconv"

	"docspace/internal/models"
	"docspace/internal/services/user"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMedicalResume returns the caller's own profile.
func (h *UserHandler) GetMedicalResume(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	profile, err := h.userService.GetResume(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "Profile not found")
	}
	profile.Password = ""
	return utils.Success(c, profile)
}

// UpdateMedicalResume applies a partial profile update.
func (h *UserHandler) UpdateMedicalResume(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var update user.ResumeUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateResume(claims.UserID, update); err != nil {
		log.Printf("[User] resume update failed for user %d: %v", claims.UserID, err)
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.Map{
		"message": "Profile updated successfully",
	})
}

// SearchProfiles is the public doctor search. Queries shorter than two
// characters return an empty list.
func (h *UserHandler) SearchProfiles(c *fiber.Ctx) error {
	query := c.Query("q")

	results, err := h.userService.Search(query, 10)
	if err != nil {
		return utils.InternalError(c, "Search failed")
	}

	out := make([]fiber.Map, 0, len(results))
	for _, u := range results {
		out = append(out, fiber.Map{
			"id":             u.ID,
			"name":           u.Name,
			"designation":    u.Designation,
			"specialization": u.Specialization,
			"verified":       u.Verified,
		})
	}
	return utils.Success(c, fiber.Map{"results": out})
}

// GetPublicProfile returns a completed profile by user ID.
func (h *UserHandler) GetPublicProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	profile, err := h.userService.GetPublicProfile(uint(id))
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to load profile")
	}

	return utils.Success(c, fiber.Map{
		"id":                   profile.ID,
		"name":                 profile.Name,
		"designation":          profile.Designation,
		"specialization":       profile.Specialization,
		"years_of_experience":  profile.YearsOfExperience,
		"hospital_affiliation": profile.HospitalAffiliation,
		"qualifications":       profile.Qualifications,
		"skills":               profile.Skills,
		"bio":                  profile.Bio,
		"verified":             profile.Verified,
	})
}
