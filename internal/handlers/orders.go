package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"shoplite/internal/models"
	"shoplite/internal/services"
)

// OrderHandler handles order requests
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places a new order.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	order, err := h.orders.Create(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// Get resolves an order from any reference form the user has.
// GET /api/orders/:ref
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.FindByReference(c.Context(), c.Params("ref"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(order)
}

// ListByCustomer returns a customer's orders by email.
// GET /api/orders?email=...
func (h *OrderHandler) ListByCustomer(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email query parameter is required",
		})
	}

	orders, err := h.orders.ListByEmail(c.Context(), email)
	if err != nil {
		log.Printf("❌ [ORDERS] List failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch orders",
		})
	}

	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}

// AdminList returns a status-filtered page of all orders (admin only).
// GET /api/admin/orders?status=&page=&limit=
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	orders, pagination, err := h.orders.List(c.Context(),
		c.Query("status"), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch orders",
		})
	}

	return c.JSON(fiber.Map{
		"orders":     orders,
		"pagination": pagination,
	})
}

// SetStatus force-sets an order status (admin only).
// PATCH /api/admin/orders/:orderId/status
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	switch body.Status {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	if err := h.orders.SetStatus(c.Context(), c.Params("orderId"), body.Status); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(fiber.Map{"orderId": c.Params("orderId"), "status": body.Status})
}
