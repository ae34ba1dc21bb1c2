package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"

	"shoplite/internal/services"
)

const (
	dashboardCacheKey = "dashboard"
	revenueCacheKey   = "revenue"
)

// AnalyticsHandler serves the business dashboard. Aggregations are cached
// for a short window so dashboard polling does not hammer MongoDB.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	cache     *gocache.Cache
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		cache:     gocache.New(30*time.Second, time.Minute),
	}
}

// Dashboard returns the aggregate business metrics.
// GET /api/admin/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	if cached, found := h.cache.Get(dashboardCacheKey); found {
		return c.JSON(cached)
	}

	metrics, err := h.analytics.GetBusinessMetrics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute business metrics",
		})
	}

	h.cache.Set(dashboardCacheKey, metrics, gocache.DefaultExpiration)
	return c.JSON(metrics)
}

// Revenue returns per-day revenue for the requested window.
// GET /api/admin/analytics/revenue?days=30
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		days = 30
	}

	cacheKey := revenueCacheKey + ":" + c.Query("days", "30")
	if cached, found := h.cache.Get(cacheKey); found {
		return c.JSON(cached)
	}

	points, err := h.analytics.DailyRevenue(c.Context(), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute revenue",
		})
	}

	payload := fiber.Map{"days": days, "revenue": points}
	h.cache.Set(cacheKey, payload, gocache.DefaultExpiration)
	return c.JSON(payload)
}

// Intents returns the persisted chat intent breakdown for the last 30 days.
// GET /api/admin/analytics/intents
func (h *AnalyticsHandler) Intents(c *fiber.Ctx) error {
	since := time.Now().UTC().AddDate(0, 0, -30)
	breakdown, err := h.analytics.IntentBreakdown(c.Context(), since)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute intent breakdown",
		})
	}

	return c.JSON(fiber.Map{"since": since.Format(time.RFC3339), "intents": breakdown})
}
