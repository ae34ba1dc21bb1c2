package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shoplite/internal/database"
	"shoplite/internal/models"
)

// AnalyticsService computes business metrics from orders and persists chat
// logs for the admin dashboard.
type AnalyticsService struct {
	db *database.MongoDB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *database.MongoDB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// DailyRevenuePoint is one day of aggregated order revenue.
type DailyRevenuePoint struct {
	Date    string  `bson:"_id" json:"date"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int64   `bson:"orders" json:"orders"`
}

// DailyRevenue aggregates per-day revenue for the last N days.
func (s *AnalyticsService) DailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := s.db.Collection(database.CollectionOrders).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily revenue: %w", err)
	}
	defer cursor.Close(ctx)

	points := []DailyRevenuePoint{}
	if err := cursor.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("failed to decode daily revenue: %w", err)
	}
	return points, nil
}

// TopProduct is one entry of the best-sellers list.
type TopProduct struct {
	Name     string  `bson:"_id" json:"name"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}

// BusinessMetrics is the aggregate view served to the admin dashboard.
type BusinessMetrics struct {
	TotalRevenue   float64          `json:"totalRevenue"`
	TotalOrders    int64            `json:"totalOrders"`
	AvgOrderValue  float64          `json:"avgOrderValue"`
	TotalCustomers int64            `json:"totalCustomers"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	TopProducts    []TopProduct     `json:"topProducts"`
}

// GetBusinessMetrics computes revenue, order and customer aggregates.
func (s *AnalyticsService) GetBusinessMetrics(ctx context.Context) (*BusinessMetrics, error) {
	orders := s.db.Collection(database.CollectionOrders)

	cursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$total"},
			"count":   bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []struct {
		Revenue float64 `bson:"revenue"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode order totals: %w", err)
	}

	metrics := &BusinessMetrics{OrdersByStatus: map[string]int64{}}
	if len(totals) > 0 {
		metrics.TotalRevenue = totals[0].Revenue
		metrics.TotalOrders = totals[0].Count
		if metrics.TotalOrders > 0 {
			metrics.AvgOrderValue = metrics.TotalRevenue / float64(metrics.TotalOrders)
		}
	}

	customers, err := s.db.Collection(database.CollectionCustomers).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	metrics.TotalCustomers = customers

	statusCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate statuses: %w", err)
	}
	defer statusCursor.Close(ctx)

	var statusRows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := statusCursor.All(ctx, &statusRows); err != nil {
		return nil, fmt.Errorf("failed to decode statuses: %w", err)
	}
	for _, row := range statusRows {
		metrics.OrdersByStatus[row.Status] = row.Count
	}

	topCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$items.name",
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": []interface{}{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"quantity": -1}}},
		{{Key: "$limit", Value: 5}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}
	defer topCursor.Close(ctx)

	metrics.TopProducts = []TopProduct{}
	if err := topCursor.All(ctx, &metrics.TopProducts); err != nil {
		return nil, fmt.Errorf("failed to decode top products: %w", err)
	}

	return metrics, nil
}

// LogChat persists one assistant turn for later analysis. Errors are
// returned to the caller but chat handling treats them as non-fatal.
func (s *AnalyticsService) LogChat(ctx context.Context, entry models.ChatLog) error {
	entry.CreatedAt = time.Now().UTC()
	_, err := s.db.Collection(database.CollectionChatLogs).InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to persist chat log: %w", err)
	}
	return nil
}

// IntentBreakdown aggregates persisted chat logs by intent.
func (s *AnalyticsService) IntentBreakdown(ctx context.Context, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$intent", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := s.db.Collection(database.CollectionChatLogs).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate chat intents: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Intent string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode chat intents: %w", err)
	}

	breakdown := make(map[string]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Intent] = row.Count
	}
	return breakdown, nil
}

// DeleteChatLogsBefore removes chat logs older than the cutoff. Used by the
// retention job.
func (s *AnalyticsService) DeleteChatLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.Collection(database.CollectionChatLogs).DeleteMany(ctx,
		bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old chat logs: %w", err)
	}
	return result.DeletedCount, nil
}
