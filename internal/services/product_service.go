package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoplite/internal/database"
	"shoplite/internal/models"
)

// ProductService provides catalog access
type ProductService struct {
	db *database.MongoDB
}

// NewProductService creates a new product service
func NewProductService(db *database.MongoDB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) collection() *mongo.Collection {
	return s.db.Collection(database.CollectionProducts)
}

var allowedProductSorts = map[string]bool{
	"createdAt": true,
	"price":     true,
	"name":      true,
	"rating":    true,
}

// List returns a filtered, sorted page of the catalog.
func (s *ProductService) List(ctx context.Context, query models.ProductQuery) ([]models.Product, *models.Pagination, error) {
	filter := bson.M{}

	if query.Search != "" {
		pattern := regexp.QuoteMeta(query.Search)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.Tag != "" {
		filter["tags"] = query.Tag
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sortField := query.Sort
	if !allowedProductSorts[sortField] {
		sortField = "createdAt"
	}
	sortDir := -1
	if strings.EqualFold(query.Order, "asc") {
		sortDir = 1
	}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, nil, fmt.Errorf("failed to decode products: %w", err)
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return products, &models.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// GetByID fetches a single product.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", id, err)
	}

	var product models.Product
	if err := s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product (admin operation).
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" || product.Price <= 0 {
		return fmt.Errorf("product requires a name and a positive price")
	}

	product.CreatedAt = time.Now().UTC()
	result, err := s.collection().InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Search finds products matching the query against name, description,
// category and tags. Used by the assistant's searchProducts function.
func (s *ProductService) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit < 1 {
		limit = 5
	}

	// Score each meaningful word independently so "wireless headphones"
	// matches a product named "Wireless Headphones Pro".
	words := []string{}
	for _, w := range strings.Fields(query) {
		if len(w) >= 3 {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) == 0 {
		words = []string{regexp.QuoteMeta(query)}
	}

	or := []bson.M{}
	for _, w := range words {
		or = append(or,
			bson.M{"name": bson.M{"$regex": w, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": w, "$options": "i"}},
			bson.M{"category": bson.M{"$regex": w, "$options": "i"}},
			bson.M{"tags": bson.M{"$regex": w, "$options": "i"}},
		)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection().Find(ctx, bson.M{"$or": or}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Categories returns the distinct product categories.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	values, err := s.collection().Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
