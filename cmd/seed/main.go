// Command seed wipes and repopulates the Shoplite database with demo
// customers, products and a spread of orders in every status.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shoplite/internal/config"
	"shoplite/internal/database"
	"shoplite/internal/models"
)

const orderCount = 18

var carriers = []string{"DHL Express", "FedEx", "Aramex", "LibanPost"}

func main() {
	log.SetFlags(log.LstdFlags)

	log.Println("🌱 Starting database seeding...")

	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI environment variable is required")
	}

	db, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed(ctx, db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}

func seed(ctx context.Context, db *database.MongoDB) error {
	log.Println("🧹 Clearing existing data...")
	for _, name := range []string{database.CollectionCustomers, database.CollectionProducts, database.CollectionOrders} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}
	log.Println("✅ Existing data cleared")

	log.Println("👥 Inserting customers...")
	customerIDs, err := insertCustomers(ctx, db)
	if err != nil {
		return err
	}
	log.Printf("✅ Inserted %d customers", len(customerIDs))
	log.Printf("   Test user: %s (ID: %s)", seedCustomers[0].Email, customerIDs[0].Hex())

	log.Println("📦 Inserting products...")
	productIDs, err := insertProducts(ctx, db)
	if err != nil {
		return err
	}
	log.Printf("✅ Inserted %d products", len(productIDs))

	log.Println("📝 Generating orders...")
	orders := generateOrders(customerIDs, productIDs)

	docs := make([]interface{}, len(orders))
	for i := range orders {
		docs[i] = orders[i]
	}
	if _, err := db.Collection(database.CollectionOrders).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert orders: %w", err)
	}
	log.Printf("✅ Inserted %d orders", len(orders))

	statusCount := map[string]int{}
	demoOrders := []models.Order{}
	for _, order := range orders {
		statusCount[order.Status]++
		if order.CustomerEmail == seedCustomers[0].Email {
			demoOrders = append(demoOrders, order)
		}
	}
	log.Printf("   Status distribution: %v", statusCount)
	log.Printf("   Demo user orders: %d", len(demoOrders))
	for _, order := range demoOrders {
		log.Printf("      - %s (%s)", order.OrderID, order.Status)
	}

	log.Println("📊 Creating indexes...")
	if err := db.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	log.Println("✅ Indexes created")

	log.Println("🎉 Database seeding complete!")
	log.Printf("📊 Summary: %d customers, %d products, %d orders",
		len(customerIDs), len(productIDs), len(orders))
	log.Printf("⭐ Test user: %s with %d orders", seedCustomers[0].Email, len(demoOrders))
	return nil
}

func insertCustomers(ctx context.Context, db *database.MongoDB) ([]primitive.ObjectID, error) {
	docs := make([]interface{}, len(seedCustomers))
	for i := range seedCustomers {
		docs[i] = seedCustomers[i]
	}
	result, err := db.Collection(database.CollectionCustomers).InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert customers: %w", err)
	}
	return objectIDs(result.InsertedIDs), nil
}

func insertProducts(ctx context.Context, db *database.MongoDB) ([]primitive.ObjectID, error) {
	now := time.Now().UTC()
	docs := make([]interface{}, len(seedProducts))
	for i := range seedProducts {
		seedProducts[i].CreatedAt = now
		docs[i] = seedProducts[i]
	}
	result, err := db.Collection(database.CollectionProducts).InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert products: %w", err)
	}
	return objectIDs(result.InsertedIDs), nil
}

func objectIDs(raw []interface{}) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, id := range raw {
		if oid, ok := id.(primitive.ObjectID); ok {
			ids = append(ids, oid)
		}
	}
	return ids
}

// generateOrders spreads orders over the past two months. The first three
// belong to the demo user; status follows order age so every stage of the
// pipeline has data.
func generateOrders(customerIDs, productIDs []primitive.ObjectID) []models.Order {
	now := time.Now().UTC()
	dateStr := now.Format("20060102")

	orders := make([]models.Order, 0, orderCount)
	for i := 0; i < orderCount; i++ {
		customerIdx := 0
		if i >= 3 {
			customerIdx = 1 + rand.Intn(len(customerIDs)-1)
		}

		numItems := 1 + rand.Intn(3)
		picked := rand.Perm(len(seedProducts))[:numItems]

		var items []models.OrderItem
		var total float64
		for _, p := range picked {
			item := models.OrderItem{
				ProductID: productIDs[p],
				Name:      seedProducts[p].Name,
				Price:     seedProducts[p].Price,
				Quantity:  1 + rand.Intn(2),
			}
			total += item.Price * float64(item.Quantity)
			items = append(items, item)
		}

		daysAgo := rand.Intn(60)
		createdAt := now.AddDate(0, 0, -daysAgo)

		var status string
		switch {
		case daysAgo < 2:
			status = models.OrderStatusPending
		case daysAgo < 5:
			status = models.OrderStatusProcessing
		case daysAgo < 10:
			status = models.OrderStatusShipped
		default:
			status = models.OrderStatusDelivered
		}

		etaDays := 7
		if status == models.OrderStatusDelivered {
			etaDays = daysAgo - 5
		}

		carrier := carriers[rand.Intn(len(carriers))]
		orders = append(orders, models.Order{
			OrderID:           fmt.Sprintf("ORD-%s-%03d", dateStr, i+1),
			CustomerID:        customerIDs[customerIdx],
			CustomerEmail:     seedCustomers[customerIdx].Email,
			Items:             items,
			Total:             math.Round(total*100) / 100,
			Status:            status,
			Carrier:           carrier,
			TrackingNumber:    trackingNumber(carrier),
			EstimatedDelivery: createdAt.AddDate(0, 0, etaDays),
			CreatedAt:         createdAt,
			UpdatedAt:         now,
		})
	}
	return orders
}

func trackingNumber(carrier string) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	prefix := strings.ToUpper(strings.Fields(carrier)[0])
	return prefix + string(suffix)
}
