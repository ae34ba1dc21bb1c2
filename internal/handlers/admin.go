package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/xuri/excelize/v2"

	"shoplite/internal/assistant"
	"shoplite/internal/config"
	"shoplite/internal/knowledge"
	"shoplite/internal/services"
	"shoplite/pkg/auth"
)

const metricsStreamInterval = 2 * time.Second

// AdminHandler handles the admin surface: login, live metrics, assistant
// diagnostics and data export.
type AdminHandler struct {
	cfg      *config.Config
	jwtAuth  *auth.JWTAuth
	metrics  *services.MetricsService
	registry *assistant.Registry
	kb       *knowledge.Store
	orders   *services.OrderService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg *config.Config, jwtAuth *auth.JWTAuth, metrics *services.MetricsService,
	registry *assistant.Registry, kb *knowledge.Store, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{
		cfg:      cfg,
		jwtAuth:  jwtAuth,
		metrics:  metrics,
		registry: registry,
		kb:       kb,
		orders:   orders,
	}
}

// Login authenticates the configured admin account and issues a JWT.
// POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if h.jwtAuth == nil || h.cfg.AdminPasswordHash == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Admin login is not configured",
		})
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	ok, err := auth.VerifyPassword(h.cfg.AdminPasswordHash, body.Password)
	if err != nil || !ok || email != strings.ToLower(h.cfg.AdminEmail) {
		log.Printf("🚫 [ADMIN] Failed login attempt for %s", email)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := h.jwtAuth.GenerateToken("admin", h.cfg.AdminEmail, "admin")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	log.Printf("✅ [ADMIN] %s logged in", h.cfg.AdminEmail)
	return c.JSON(fiber.Map{
		"token": token,
		"email": h.cfg.AdminEmail,
	})
}

// Metrics returns the current assistant metrics snapshot.
// GET /api/admin/metrics
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}

// MetricsStream pushes metrics snapshots over SSE every two seconds.
// GET /api/admin/metrics/stream
func (h *AdminHandler) MetricsStream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	done := c.Context().Done()
	metrics := h.metrics

	metrics.StreamConnected()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer metrics.StreamDisconnected()

		ticker := time.NewTicker(metricsStreamInterval)
		defer ticker.Stop()

		for {
			payload, err := json.Marshal(metrics.Snapshot())
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "event: metrics\ndata: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}))

	return nil
}

// AssistantFunctions returns registered function schemas and execution stats.
// GET /api/admin/assistant/functions
func (h *AdminHandler) AssistantFunctions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"functions": h.registry.Schemas(),
		"stats":     h.registry.Stats(),
	})
}

// KnowledgeStats returns the knowledge base summary.
// GET /api/admin/knowledge
func (h *AdminHandler) KnowledgeStats(c *fiber.Ctx) error {
	return c.JSON(h.kb.GetStats())
}

// KnowledgeReload re-reads the knowledge base from disk on demand.
// POST /api/admin/knowledge/reload
func (h *AdminHandler) KnowledgeReload(c *fiber.Ctx) error {
	if err := h.kb.Reload(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"reloaded": true,
		"policies": h.kb.Len(),
	})
}

// ExportOrders streams all orders as an Excel workbook.
// GET /api/admin/orders/export
func (h *AdminHandler) ExportOrders(c *fiber.Ctx) error {
	orders, _, err := h.orders.List(c.Context(), c.Query("status"), 1, 100)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch orders",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build export",
		})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Order ID", "Customer Email", "Status", "Items", "Total", "Carrier", "Tracking", "Created At"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, order := range orders {
		values := []interface{}{
			order.OrderID,
			order.CustomerEmail,
			order.Status,
			len(order.Items),
			order.Total,
			order.Carrier,
			order.TrackingNumber,
			order.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode export",
		})
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
