package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"shoplite/internal/models"
	"shoplite/internal/services"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	products *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns a filtered, paginated product listing.
// GET /api/products?search=&category=&tag=&sort=&order=&page=&limit=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	query := models.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Sort:     c.Query("sort", "createdAt"),
		Order:    c.Query("order", "desc"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
	}

	products, pagination, err := h.products.List(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch products",
		})
	}

	return c.JSON(fiber.Map{
		"products":   products,
		"pagination": pagination,
	})
}

// Get returns a single product by ID.
// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	return c.JSON(product)
}

// Categories returns the distinct product categories.
// GET /api/products/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.products.Categories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// Create inserts a new product (admin only).
// POST /api/admin/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.products.Create(c.Context(), &product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}
