package main

import (
	"time"

	"shoplite/internal/models"
)

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// seedCustomers holds the demo accounts. The first entry is the documented
// test user.
var seedCustomers = []models.Customer{
	{
		Name:  "Demo User",
		Email: "demo@example.com",
		Phone: "+961 70 123 456",
		Address: models.Address{
			Street:     "123 Hamra Street",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1103",
		},
		CreatedAt: mustTime("2025-01-15T10:00:00Z"),
	},
	{
		Name:  "Sarah Johnson",
		Email: "sarah.johnson@email.com",
		Phone: "+961 71 234 567",
		Address: models.Address{
			Street:     "456 Gemmayzeh Avenue",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1104",
		},
		CreatedAt: mustTime("2025-02-20T14:30:00Z"),
	},
	{
		Name:  "Michael Chen",
		Email: "michael.chen@email.com",
		Phone: "+961 76 345 678",
		Address: models.Address{
			Street:     "789 Verdun Street",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1105",
		},
		CreatedAt: mustTime("2025-03-10T09:15:00Z"),
	},
	{
		Name:  "Emma Martinez",
		Email: "emma.martinez@email.com",
		Phone: "+961 70 456 789",
		Address: models.Address{
			Street:     "321 Achrafieh Road",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1106",
		},
		CreatedAt: mustTime("2025-03-25T16:45:00Z"),
	},
	{
		Name:  "James Wilson",
		Email: "james.wilson@email.com",
		Phone: "+961 71 567 890",
		Address: models.Address{
			Street:     "654 Raouche Boulevard",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1107",
		},
		CreatedAt: mustTime("2025-04-05T11:20:00Z"),
	},
	{
		Name:  "Olivia Brown",
		Email: "olivia.brown@email.com",
		Phone: "+961 76 678 901",
		Address: models.Address{
			Street:     "987 Mar Mikhael Street",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1108",
		},
		CreatedAt: mustTime("2025-05-12T13:00:00Z"),
	},
	{
		Name:  "William Taylor",
		Email: "william.taylor@email.com",
		Phone: "+961 70 789 012",
		Address: models.Address{
			Street:     "147 Manara Promenade",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1109",
		},
		CreatedAt: mustTime("2025-06-08T10:30:00Z"),
	},
	{
		Name:  "Sophia Anderson",
		Email: "sophia.anderson@email.com",
		Phone: "+961 71 890 123",
		Address: models.Address{
			Street:     "258 Downtown Street",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1110",
		},
		CreatedAt: mustTime("2025-07-14T15:45:00Z"),
	},
	{
		Name:  "Liam Thomas",
		Email: "liam.thomas@email.com",
		Phone: "+961 76 901 234",
		Address: models.Address{
			Street:     "369 Badaro Avenue",
			City:       "Beirut",
			Country:    "Lebanon",
			PostalCode: "1111",
		},
		CreatedAt: mustTime("2025-08-20T12:15:00Z"),
	},
	{
		Name:  "Isabella Garcia",
		Email: "isabella.garcia@email.com",
		Phone: "+961 70 012 345",
		Address: models.Address{
			Street:     "741 Jounieh Highway",
			City:       "Jounieh",
			Country:    "Lebanon",
			PostalCode: "2001",
		},
		CreatedAt: mustTime("2025-09-05T09:00:00Z"),
	},
	{
		Name:  "Noah Rodriguez",
		Email: "noah.rodriguez@email.com",
		Phone: "+961 71 123 456",
		Address: models.Address{
			Street:     "852 Tripoli Street",
			City:       "Tripoli",
			Country:    "Lebanon",
			PostalCode: "3001",
		},
		CreatedAt: mustTime("2025-09-18T14:20:00Z"),
	},
	{
		Name:  "Ava Martinez",
		Email: "ava.martinez@email.com",
		Phone: "+961 76 234 567",
		Address: models.Address{
			Street:     "963 Sidon Road",
			City:       "Sidon",
			Country:    "Lebanon",
			PostalCode: "4001",
		},
		CreatedAt: mustTime("2025-10-01T11:40:00Z"),
	},
}

var seedProducts = []models.Product{
	{
		Name:        "Wireless Bluetooth Headphones",
		Description: "Premium noise-canceling over-ear headphones with 30-hour battery life, superior sound quality, and comfortable design perfect for travel and daily use.",
		Price:       89.99,
		Category:    "Electronics",
		Tags:        []string{"audio", "wireless", "bluetooth", "headphones"},
		ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e",
		Stock:       45,
		Rating:      4.5,
		ReviewCount: 128,
	},
	{
		Name:        "Stainless Steel Water Bottle",
		Description: "Insulated 32oz water bottle keeps drinks cold for 24 hours or hot for 12 hours. BPA-free, leak-proof design with wide mouth for easy cleaning.",
		Price:       24.99,
		Category:    "Sports & Outdoors",
		Tags:        []string{"hydration", "insulated", "eco-friendly"},
		ImageURL:    "https://images.unsplash.com/photo-1602143407151-7111542de6e8",
		Stock:       120,
		Rating:      4.7,
		ReviewCount: 203,
	},
	{
		Name:        "Yoga Mat with Carrying Strap",
		Description: "Extra-thick 6mm yoga mat with non-slip texture. Eco-friendly TPE material, perfect for yoga, pilates, and floor exercises. Includes free carrying strap.",
		Price:       34.99,
		Category:    "Sports & Outdoors",
		Tags:        []string{"yoga", "fitness", "exercise"},
		ImageURL:    "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f",
		Stock:       67,
		Rating:      4.4,
		ReviewCount: 89,
	},
	{
		Name:        "Mechanical Gaming Keyboard RGB",
		Description: "Professional gaming keyboard with customizable RGB lighting, mechanical blue switches, and programmable macro keys. Anti-ghosting technology for competitive gaming.",
		Price:       79.99,
		Category:    "Electronics",
		Tags:        []string{"gaming", "keyboard", "rgb", "mechanical"},
		ImageURL:    "https://images.unsplash.com/photo-1587829741301-dc798b83add3",
		Stock:       32,
		Rating:      4.6,
		ReviewCount: 156,
	},
	{
		Name:        "Organic Cotton T-Shirt",
		Description: "Soft, breathable 100% organic cotton t-shirt. Classic fit, pre-shrunk fabric, available in multiple colors. Perfect for everyday wear.",
		Price:       19.99,
		Category:    "Clothing",
		Tags:        []string{"apparel", "cotton", "casual", "organic"},
		ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab",
		Stock:       200,
		Rating:      4.3,
		ReviewCount: 312,
	},
	{
		Name:        "Portable Phone Charger 20000mAh",
		Description: "High-capacity power bank with dual USB ports and fast charging. LED display shows remaining battery. Charges most phones 4-5 times.",
		Price:       39.99,
		Category:    "Electronics",
		Tags:        []string{"charging", "portable", "power-bank"},
		ImageURL:    "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5",
		Stock:       88,
		Rating:      4.5,
		ReviewCount: 178,
	},
	{
		Name:        "Stainless Steel Cookware Set",
		Description: "10-piece professional cookware set with glass lids. Oven-safe up to 500°F, dishwasher safe, and compatible with all cooktops including induction.",
		Price:       149.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"cookware", "kitchen", "stainless-steel"},
		ImageURL:    "https://images.unsplash.com/photo-1584990347449-85e32a7c0cef",
		Stock:       28,
		Rating:      4.8,
		ReviewCount: 94,
	},
	{
		Name:        "LED Desk Lamp with USB Port",
		Description: "Adjustable LED desk lamp with 5 brightness levels and 3 color modes. Built-in USB charging port. Eye-caring technology reduces eye strain.",
		Price:       29.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"lighting", "desk", "led", "office"},
		ImageURL:    "https://images.unsplash.com/photo-1507473885765-e6ed057f782c",
		Stock:       75,
		Rating:      4.4,
		ReviewCount: 142,
	},
	{
		Name:        "Running Shoes - Performance Series",
		Description: "Lightweight running shoes with responsive cushioning and breathable mesh upper. Designed for neutral runners seeking comfort and speed.",
		Price:       89.99,
		Category:    "Sports & Outdoors",
		Tags:        []string{"shoes", "running", "athletic"},
		ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff",
		Stock:       54,
		Rating:      4.6,
		ReviewCount: 221,
	},
	{
		Name:        "Coffee Maker with Thermal Carafe",
		Description: "12-cup programmable coffee maker with thermal carafe keeps coffee hot for hours. Auto-shutoff feature and pause-and-serve function.",
		Price:       69.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"coffee", "appliances", "kitchen"},
		ImageURL:    "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6",
		Stock:       41,
		Rating:      4.5,
		ReviewCount: 167,
	},
	{
		Name:        "Backpack Laptop Bag 15.6 inch",
		Description: "Water-resistant laptop backpack with multiple compartments, USB charging port, and anti-theft design. Perfect for work, school, or travel.",
		Price:       44.99,
		Category:    "Bags & Luggage",
		Tags:        []string{"backpack", "laptop", "travel"},
		ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62",
		Stock:       92,
		Rating:      4.7,
		ReviewCount: 189,
	},
	{
		Name:        "Wireless Gaming Mouse",
		Description: "High-precision wireless mouse with adjustable DPI up to 16000, programmable buttons, and RGB lighting. Long-lasting rechargeable battery.",
		Price:       49.99,
		Category:    "Electronics",
		Tags:        []string{"gaming", "mouse", "wireless"},
		ImageURL:    "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46",
		Stock:       63,
		Rating:      4.6,
		ReviewCount: 134,
	},
	{
		Name:        "Portable Bluetooth Speaker",
		Description: "Waterproof portable speaker with 360° sound, 12-hour battery life, and built-in microphone. Perfect for outdoor adventures and parties.",
		Price:       59.99,
		Category:    "Electronics",
		Tags:        []string{"audio", "bluetooth", "speaker", "waterproof"},
		ImageURL:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1",
		Stock:       78,
		Rating:      4.5,
		ReviewCount: 156,
	},
	{
		Name:        "Memory Foam Pillow Set (2-Pack)",
		Description: "Hypoallergenic memory foam pillows with cooling gel technology. Adjustable loft, removable washable covers. Includes 2 standard-size pillows.",
		Price:       54.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"bedding", "pillows", "memory-foam"},
		ImageURL:    "https://images.unsplash.com/photo-1584100936595-c0654b55a2e2",
		Stock:       47,
		Rating:      4.7,
		ReviewCount: 201,
	},
	{
		Name:        "Smart Fitness Watch",
		Description: "Advanced fitness tracker with heart rate monitor, sleep tracking, GPS, and smartphone notifications. Water-resistant with 7-day battery life.",
		Price:       129.99,
		Category:    "Electronics",
		Tags:        []string{"fitness", "smartwatch", "health"},
		ImageURL:    "https://images.unsplash.com/photo-1579586337278-3befd40fd17a",
		Stock:       36,
		Rating:      4.4,
		ReviewCount: 298,
	},
	{
		Name:        "Non-Stick Frying Pan Set",
		Description: "3-piece non-stick frying pan set (8\", 10\", 12\"). PFOA-free coating, heat-resistant handles, oven-safe up to 400°F. Dishwasher safe.",
		Price:       39.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"cookware", "pans", "non-stick"},
		ImageURL:    "https://images.unsplash.com/photo-1556909172-54557c7e4fb7",
		Stock:       58,
		Rating:      4.6,
		ReviewCount: 143,
	},
	{
		Name:        "Denim Jacket - Classic Fit",
		Description: "Timeless denim jacket with button closure, chest pockets, and adjustable cuffs. Made from durable cotton denim. Available in multiple washes.",
		Price:       64.99,
		Category:    "Clothing",
		Tags:        []string{"apparel", "jacket", "denim"},
		ImageURL:    "https://images.unsplash.com/photo-1576995853123-5a10305d93c0",
		Stock:       73,
		Rating:      4.5,
		ReviewCount: 167,
	},
	{
		Name:        "Electric Kettle 1.7L",
		Description: "Fast-boiling electric kettle with auto shut-off and boil-dry protection. Cordless design with 360° swivel base. Stainless steel interior.",
		Price:       34.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"kettle", "appliances", "kitchen"},
		ImageURL:    "https://images.unsplash.com/photo-1563729784474-d77dbb933a9e",
		Stock:       65,
		Rating:      4.6,
		ReviewCount: 189,
	},
	{
		Name:        "Resistance Bands Set",
		Description: "Set of 5 resistance bands with different resistance levels, door anchor, handles, and ankle straps. Perfect for home workouts and physical therapy.",
		Price:       24.99,
		Category:    "Sports & Outdoors",
		Tags:        []string{"fitness", "resistance-bands", "exercise"},
		ImageURL:    "https://images.unsplash.com/photo-1598289431512-b97b0917affc",
		Stock:       110,
		Rating:      4.7,
		ReviewCount: 234,
	},
	{
		Name:        "Sunglasses - Polarized UV Protection",
		Description: "Stylish polarized sunglasses with 100% UV protection. Lightweight frame, scratch-resistant lenses. Includes protective case and cleaning cloth.",
		Price:       39.99,
		Category:    "Accessories",
		Tags:        []string{"sunglasses", "eyewear", "polarized"},
		ImageURL:    "https://images.unsplash.com/photo-1511499767150-a48a237f0083",
		Stock:       95,
		Rating:      4.5,
		ReviewCount: 178,
	},
	{
		Name:        "USB-C Hub 7-in-1",
		Description: "Multiport USB-C adapter with HDMI, USB 3.0 ports, SD card reader, and power delivery. Compatible with MacBook, laptops, and tablets.",
		Price:       44.99,
		Category:    "Electronics",
		Tags:        []string{"adapter", "usb-c", "hub"},
		ImageURL:    "https://images.unsplash.com/photo-1625948515291-69613efd103f",
		Stock:       82,
		Rating:      4.4,
		ReviewCount: 123,
	},
	{
		Name:        "Canvas Tote Bag",
		Description: "Durable canvas tote bag with reinforced handles and inner pocket. Eco-friendly reusable shopping bag. Perfect for groceries, books, or beach trips.",
		Price:       14.99,
		Category:    "Bags & Luggage",
		Tags:        []string{"bag", "tote", "eco-friendly"},
		ImageURL:    "https://images.unsplash.com/photo-1590874103328-eac38a683ce7",
		Stock:       150,
		Rating:      4.6,
		ReviewCount: 267,
	},
	{
		Name:        "Scented Candle Gift Set",
		Description: "Set of 6 premium scented candles with natural soy wax. Each candle burns for 25-30 hours. Gift-ready packaging with assorted relaxing scents.",
		Price:       29.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"candles", "home-decor", "gift"},
		ImageURL:    "https://images.unsplash.com/photo-1602874801006-bf290d24a1ca",
		Stock:       104,
		Rating:      4.8,
		ReviewCount: 312,
	},
	{
		Name:        "Hiking Backpack 40L",
		Description: "Spacious hiking backpack with ventilated back panel, multiple compartments, rain cover, and hydration system compatibility. Built for adventure.",
		Price:       79.99,
		Category:    "Sports & Outdoors",
		Tags:        []string{"backpack", "hiking", "outdoor"},
		ImageURL:    "https://images.unsplash.com/photo-1622260614927-d4e4d0c6c165",
		Stock:       38,
		Rating:      4.7,
		ReviewCount: 145,
	},
	{
		Name:        "Wireless Earbuds with Charging Case",
		Description: "True wireless earbuds with active noise cancellation, touch controls, and 24-hour battery life with charging case. IPX5 water-resistant.",
		Price:       69.99,
		Category:    "Electronics",
		Tags:        []string{"audio", "earbuds", "wireless", "noise-canceling"},
		ImageURL:    "https://images.unsplash.com/photo-1590658268037-6bf12165a8df",
		Stock:       56,
		Rating:      4.5,
		ReviewCount: 287,
	},
	{
		Name:        "Instant Pot 6 Quart",
		Description: "7-in-1 programmable pressure cooker: pressure cook, slow cook, rice cooker, steamer, sauté, yogurt maker, and warmer. Stainless steel pot.",
		Price:       99.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"appliances", "pressure-cooker", "kitchen"},
		ImageURL:    "https://images.unsplash.com/photo-1585515320310-259814833379",
		Stock:       29,
		Rating:      4.9,
		ReviewCount: 412,
	},
	{
		Name:        "Plant-Based Protein Powder",
		Description: "Organic vegan protein powder with 20g protein per serving. Gluten-free, no artificial sweeteners. Vanilla flavor, 2lb container.",
		Price:       34.99,
		Category:    "Health & Wellness",
		Tags:        []string{"protein", "vegan", "supplement"},
		ImageURL:    "https://images.unsplash.com/photo-1579722821273-0f6c7d44362f",
		Stock:       87,
		Rating:      4.4,
		ReviewCount: 198,
	},
	{
		Name:        "Mini Projector HD 1080P",
		Description: "Portable mini projector with 1080P support, built-in speakers, and multiple connectivity options. Perfect for home entertainment and presentations.",
		Price:       119.99,
		Category:    "Electronics",
		Tags:        []string{"projector", "entertainment", "portable"},
		ImageURL:    "https://images.unsplash.com/photo-1478720568477-152d9b164e26",
		Stock:       22,
		Rating:      4.3,
		ReviewCount: 156,
	},
	{
		Name:        "Leather Wallet - Minimalist Design",
		Description: "Slim genuine leather wallet with RFID blocking technology. Holds 8-10 cards and cash. Elegant design that fits comfortably in any pocket.",
		Price:       29.99,
		Category:    "Accessories",
		Tags:        []string{"wallet", "leather", "rfid"},
		ImageURL:    "https://images.unsplash.com/photo-1627123424574-724758594e93",
		Stock:       132,
		Rating:      4.6,
		ReviewCount: 224,
	},
	{
		Name:        "Air Purifier with HEPA Filter",
		Description: "HEPA air purifier removes 99.97% of allergens, dust, and odors. Covers rooms up to 400 sq ft. Quiet operation with 3 fan speeds and timer.",
		Price:       139.99,
		Category:    "Home & Kitchen",
		Tags:        []string{"air-purifier", "hepa", "home"},
		ImageURL:    "https://images.unsplash.com/photo-1585771724684-38269d6639fd",
		Stock:       31,
		Rating:      4.7,
		ReviewCount: 267,
	},
}
