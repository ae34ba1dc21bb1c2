package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoplite/internal/database"
	"shoplite/internal/models"
)

// CustomerService provides customer account access
type CustomerService struct {
	db *database.MongoDB
}

// NewCustomerService creates a new customer service
func NewCustomerService(db *database.MongoDB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) collection() *mongo.Collection {
	return s.db.Collection(database.CollectionCustomers)
}

// GetByEmail fetches a customer by email (case-insensitive, emails are
// stored lowercase).
func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("empty email")
	}

	var customer models.Customer
	if err := s.collection().FindOne(ctx, bson.M{"email": email}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByID fetches a customer by document ID.
func (s *CustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id %q: %w", id, err)
	}

	var customer models.Customer
	if err := s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create registers a new customer. Duplicate emails are rejected by the
// unique index.
func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if customer.Email == "" || customer.Name == "" {
		return fmt.Errorf("customer requires a name and email")
	}

	customer.CreatedAt = time.Now().UTC()
	result, err := s.collection().InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("customer with email %s already exists", customer.Email)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	customer.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List returns a page of customers for the admin surface.
func (s *CustomerService) List(ctx context.Context, page, limit int) ([]models.Customer, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total, err := s.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count customers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, nil, fmt.Errorf("failed to decode customers: %w", err)
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return customers, &models.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}
