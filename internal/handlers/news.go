package handlers

import (
	"log"

	"docspace/internal/services/news"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type NewsHandler struct {
	newsService *news.Service
}

func NewNewsHandler(newsService *news.Service) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// WHOUpdates returns the latest WHO headlines.
func (h *NewsHandler) WHOUpdates(c *fiber.Ctx) error {
	items, err := h.newsService.Latest(c.Context())
	if err != nil {
		log.Printf("[News] fetch failed: %v", err)
		return utils.InternalError(c, "Failed to fetch news")
	}
	return utils.Success(c, fiber.Map{"items": items})
}
