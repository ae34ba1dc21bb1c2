package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shoplite/internal/models"
)

const maxSearchResults = 10

// OrderStore is the order access the built-in functions need.
type OrderStore interface {
	FindByReference(ctx context.Context, ref string) (*models.Order, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

// ProductStore is the product access the built-in functions need.
type ProductStore interface {
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
}

// OrderStatusItem is a reduced order line returned by getOrderStatus.
type OrderStatusItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderStatusData is the payload of a successful getOrderStatus call.
type OrderStatusData struct {
	OrderID           string            `json:"orderId"`
	Status            string            `json:"status"`
	Carrier           string            `json:"carrier"`
	TrackingNumber    string            `json:"trackingNumber"`
	EstimatedDelivery time.Time         `json:"estimatedDelivery"`
	Items             []OrderStatusItem `json:"items"`
	Total             float64           `json:"total"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// ProductHit is a reduced product returned by searchProducts.
type ProductHit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"imageUrl"`
}

// ProductSearchData is the payload of a searchProducts call. An empty result
// is reported with Found=false, not as an error.
type ProductSearchData struct {
	Found    bool         `json:"found"`
	Count    int          `json:"count,omitempty"`
	Message  string       `json:"message,omitempty"`
	Products []ProductHit `json:"products"`
}

// CustomerOrdersData is the payload of a getCustomerOrders call.
type CustomerOrdersData struct {
	Found   bool                  `json:"found"`
	Count   int                   `json:"count,omitempty"`
	Message string                `json:"message,omitempty"`
	Orders  []models.OrderSummary `json:"orders"`
}

// RegisterBuiltins wires the three database-backed assistant functions into
// the registry.
func RegisterBuiltins(r *Registry, orders OrderStore, products ProductStore) error {
	if err := r.Register(Definition{
		Name:        "getOrderStatus",
		Description: "Get order status, tracking, and delivery information by order ID",
		Parameters: map[string]Param{
			"orderId": {
				Type:        "string",
				Required:    true,
				Description: "Order ID (e.g., ORD-20251019-ABC123 or #12345)",
			},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			orderID, _ := params["orderId"].(string)

			order, err := orders.FindByReference(ctx, orderID)
			if err != nil {
				return nil, fmt.Errorf("order not found: %s", orderID)
			}

			items := make([]OrderStatusItem, len(order.Items))
			for i, item := range order.Items {
				items[i] = OrderStatusItem{
					Name:     item.Name,
					Quantity: item.Quantity,
					Price:    item.Price,
				}
			}

			return OrderStatusData{
				OrderID:           order.OrderID,
				Status:            order.Status,
				Carrier:           order.Carrier,
				TrackingNumber:    order.TrackingNumber,
				EstimatedDelivery: order.EstimatedDelivery,
				Items:             items,
				Total:             order.Total,
				CreatedAt:         order.CreatedAt,
				UpdatedAt:         order.UpdatedAt,
			}, nil
		},
	}); err != nil {
		return err
	}

	if err := r.Register(Definition{
		Name:        "searchProducts",
		Description: "Search products by name, description, category, or tags",
		Parameters: map[string]Param{
			"query": {
				Type:        "string",
				Required:    true,
				Description: `Search query (e.g., "wireless headphones", "yoga mat")`,
			},
			"limit": {
				Type:        "number",
				Required:    false,
				Description: "Maximum number of results (default: 5)",
			},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			query, _ := params["query"].(string)

			limit := 5
			switch v := params["limit"].(type) {
			case int:
				limit = v
			case float64:
				limit = int(v)
			}
			if limit > maxSearchResults {
				limit = maxSearchResults
			}

			found, err := products.Search(ctx, query, limit)
			if err != nil {
				return nil, err
			}

			if len(found) == 0 {
				return ProductSearchData{
					Found:    false,
					Message:  fmt.Sprintf("No products found matching %q", query),
					Products: []ProductHit{},
				}, nil
			}

			hits := make([]ProductHit, len(found))
			for i, p := range found {
				hits[i] = ProductHit{
					ID:          p.ID.Hex(),
					Name:        p.Name,
					Description: truncate(p.Description, 150),
					Price:       p.Price,
					Category:    p.Category,
					Stock:       p.Stock,
					Rating:      p.Rating,
					ImageURL:    p.ImageURL,
				}
			}

			return ProductSearchData{
				Found:    true,
				Count:    len(hits),
				Products: hits,
			}, nil
		},
	}); err != nil {
		return err
	}

	return r.Register(Definition{
		Name:        "getCustomerOrders",
		Description: "Get all orders for a customer by their email address",
		Parameters: map[string]Param{
			"email": {
				Type:        "string",
				Required:    true,
				Description: "Customer email address",
			},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			email, _ := params["email"].(string)
			email = strings.ToLower(strings.TrimSpace(email))

			orderList, err := orders.ListByEmail(ctx, email)
			if err != nil {
				return nil, err
			}

			if len(orderList) == 0 {
				return CustomerOrdersData{
					Found:   false,
					Message: fmt.Sprintf("No orders found for %s", email),
					Orders:  []models.OrderSummary{},
				}, nil
			}

			summaries := make([]models.OrderSummary, len(orderList))
			for i, order := range orderList {
				summaries[i] = models.OrderSummary{
					OrderID:           order.OrderID,
					Status:            order.Status,
					Total:             order.Total,
					ItemCount:         len(order.Items),
					CreatedAt:         order.CreatedAt,
					EstimatedDelivery: order.EstimatedDelivery,
				}
			}

			return CustomerOrdersData{
				Found:  true,
				Count:  len(summaries),
				Orders: summaries,
			}, nil
		},
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
