package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/fitgear/fitgear-api/cache"
	"github.com/fitgear/fitgear-api/catalog"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main loads the launch catalog and, with -customer, a demo account.
// Usage: go run cmd/seed/main.go [-customer]
// This is a standalone CLI tool, not part of the main application
func main() {
	withCustomer := flag.Bool("customer", false, "prompt for a demo customer account")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("FITGEAR - Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.InitDB(cfg); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer config.CloseDB()
	if err := config.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✓ Connected and migrated")

	products := catalog.DefaultProducts()
	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "image", "category", "position"}),
	}).Create(&products).Error; err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	cache.InvalidateCatalog()
	log.Printf("✓ %d products upserted", len(products))

	if *withCustomer {
		seedCustomer()
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Seed complete")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Browse GET /api/products")
	fmt.Println("3. Start a cart with POST /api/checkout/sessions")
	fmt.Println()
}

func seedCustomer() {
	name, email, password := getCustomerDetails()

	authService := services.NewAuthService(config.DB, services.LogMailer{Logger: config.Logger})
	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := authService.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password})
	if errors.Is(err, services.ErrEmailTaken) {
		fmt.Printf("❌ Customer with email '%s' already exists\n", email)
		return
	}
	if err != nil {
		log.Fatalf("Failed to create customer: %v", err)
	}

	fmt.Printf("ID:    %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Name:  %s\n", user.Name)
}

// getCustomerDetails prompts for the demo account
func getCustomerDetails() (name, email, password string) {
	fmt.Println("Enter Demo Customer Details:")
	fmt.Println()

	for {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email != "" {
			break
		}
		fmt.Println("❌ Email cannot be empty")
	}

	for {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
		if name != "" {
			break
		}
		fmt.Println("❌ Name cannot be empty")
	}

	for {
		fmt.Print("Password (min 6 characters): ")
		fmt.Scanln(&password)
		if field, msg, ok := services.ValidateRegistration(models.RegisterRequest{Name: name, Email: email, Password: password}); !ok {
			if field != "password" {
				log.Fatalf("Invalid %s: %s", field, msg)
			}
			fmt.Printf("❌ %s\n", msg)
			continue
		}
		break
	}

	fmt.Println()
	return name, email, password
}
