package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"shoplite/internal/models"
	"shoplite/internal/services"
)

// CustomerHandler handles customer account requests
type CustomerHandler struct {
	customers *services.CustomerService
	orders    *services.OrderService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers *services.CustomerService, orders *services.OrderService) *CustomerHandler {
	return &CustomerHandler{customers: customers, orders: orders}
}

// Register creates a new customer account.
// POST /api/customers
func (h *CustomerHandler) Register(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.customers.Create(c.Context(), &customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByEmail looks up a customer profile.
// GET /api/customers?email=...
func (h *CustomerHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email query parameter is required",
		})
	}

	customer, err := h.customers.GetByEmail(c.Context(), email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch customer",
		})
	}

	return c.JSON(customer)
}

// Orders returns a customer's order history.
// GET /api/customers/:id/orders
func (h *CustomerHandler) Orders(c *fiber.Ctx) error {
	customer, err := h.customers.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer id",
		})
	}

	orders, err := h.orders.ListByCustomerID(c.Context(), customer.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch orders",
		})
	}

	return c.JSON(fiber.Map{
		"customer": customer,
		"orders":   orders,
		"count":    len(orders),
	})
}

// AdminList returns a page of customers (admin only).
// GET /api/admin/customers?page=&limit=
func (h *CustomerHandler) AdminList(c *fiber.Ctx) error {
	customers, pagination, err := h.customers.List(c.Context(),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch customers",
		})
	}

	return c.JSON(fiber.Map{
		"customers":  customers,
		"pagination": pagination,
	})
}
