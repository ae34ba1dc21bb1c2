package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoplite/internal/database"
	"shoplite/internal/models"
)

var carriers = []string{"FedEx", "UPS", "DHL", "USPS"}

const orderIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// OrderService provides order persistence and status progression
type OrderService struct {
	db *database.MongoDB
}

// NewOrderService creates a new order service
func NewOrderService(db *database.MongoDB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) collection() *mongo.Collection {
	return s.db.Collection(database.CollectionOrders)
}

// GenerateOrderID creates a human-facing order reference: ORD-YYYYMMDD-XXXXXX
func GenerateOrderID() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = orderIDCharset[rand.Intn(len(orderIDCharset))]
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

// Create persists a new order in PENDING state with a generated reference,
// carrier assignment and estimated delivery date.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	items := make([]models.OrderItem, len(req.Items))
	var computedTotal float64
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %q has invalid quantity %d", item.Name, item.Quantity)
		}

		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", item.ProductID, err)
		}

		items[i] = models.OrderItem{
			ProductID: productID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		computedTotal += item.Price * float64(item.Quantity)
	}

	total := req.Total
	if total <= 0 {
		total = computedTotal
	}

	var customerID primitive.ObjectID
	if req.CustomerID != "" {
		parsed, err := primitive.ObjectIDFromHex(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer id %q: %w", req.CustomerID, err)
		}
		customerID = parsed
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderID:           GenerateOrderID(),
		CustomerID:        customerID,
		CustomerEmail:     strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		Items:             items,
		Total:             total,
		Status:            models.OrderStatusPending,
		Carrier:           carriers[rand.Intn(len(carriers))],
		TrackingNumber:    "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12]),
		EstimatedDelivery: now.AddDate(0, 0, 7),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	result, err := s.collection().InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	log.Printf("📦 [ORDERS] Created %s (%d items, $%.2f)", order.OrderID, len(order.Items), order.Total)
	return order, nil
}

// GetByOrderID fetches an order by its exact ORD-... reference.
func (s *OrderService) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.collection().FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

var orderRefCleanup = regexp.MustCompile(`(?i)^(ORDER|ORD)?[-#\s]*`)

// FindByReference resolves an order from any user-supplied reference form:
// the exact orderId, a Mongo ObjectID hex, or a loose form like "#12345" or
// "ORDER#12345" matched against the orderId suffix.
func (s *OrderService) FindByReference(ctx context.Context, ref string) (*models.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty order reference")
	}

	// Exact reference
	var order models.Order
	err := s.collection().FindOne(ctx, bson.M{"orderId": strings.ToUpper(ref)}).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Mongo document ID
	if objectID, idErr := primitive.ObjectIDFromHex(ref); idErr == nil {
		err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
		if err == nil {
			return &order, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}

	// Loose form: strip ORDER/ORD/#/- prefixes and match the remainder
	// against the tail of the stored reference.
	cleaned := orderRefCleanup.ReplaceAllString(ref, "")
	if cleaned != "" && cleaned != ref {
		pattern := regexp.QuoteMeta(strings.ToUpper(cleaned)) + "$"
		err = s.collection().FindOne(ctx, bson.M{
			"orderId": bson.M{"$regex": pattern, "$options": "i"},
		}).Decode(&order)
		if err == nil {
			return &order, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}

	return nil, fmt.Errorf("order %q not found", ref)
}

// ListByEmail returns a customer's orders, newest first.
func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"customerEmail": strings.ToLower(strings.TrimSpace(email))})
}

// ListByCustomerID returns a customer's orders, newest first.
func (s *OrderService) ListByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"customerId": customerID})
}

func (s *OrderService) findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// List returns a page of orders for the admin surface, optionally filtered
// by status.
func (s *OrderService) List(ctx context.Context, status string, page, limit int) ([]models.Order, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = strings.ToUpper(status)
	}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return orders, &models.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// AdvanceStatus moves an order from one status to the next with a conditional
// update. It reports false when the order was not in the expected status,
// which callers treat as "someone else already advanced it".
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID, from, to string) (bool, error) {
	result, err := s.collection().UpdateOne(ctx,
		bson.M{"orderId": orderID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to advance order %s: %w", orderID, err)
	}
	return result.ModifiedCount == 1, nil
}

// SetStatus force-sets an order status (admin operation, no precondition).
func (s *OrderService) SetStatus(ctx context.Context, orderID, status string) error {
	result, err := s.collection().UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SweepStalePending advances PENDING orders older than the cutoff to
// PROCESSING. Returns the number of orders moved.
func (s *OrderService) SweepStalePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := s.collection().UpdateMany(ctx,
		bson.M{"status": models.OrderStatusPending, "createdAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.OrderStatusProcessing, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale orders: %w", err)
	}
	return result.ModifiedCount, nil
}

// CountByStatus returns order counts grouped by status.
func (s *OrderService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cursor, err := s.collection().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
