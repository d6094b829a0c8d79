package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"erp-rfm-engine/internal/models"
	"erp-rfm-engine/internal/shared/config"
	"erp-rfm-engine/internal/shared/database"
)

// Seeds a client with randomized sales orders so an analysis run can be
// exercised end to end against a local database.
func main() {
	var (
		clientFlag    = flag.String("client", "", "Client (tenant) UUID; generated when empty")
		customersFlag = flag.Int("customers", 50, "Number of customers to generate")
		daysFlag      = flag.Int("days", 365, "History window in days")
		seedFlag      = flag.Int64("seed", 42, "Random seed")
	)
	flag.Parse()

	cfg := config.LoadConfig()

	clientID := uuid.New()
	if *clientFlag != "" {
		parsed, err := uuid.Parse(*clientFlag)
		if err != nil {
			log.Fatalf("❌ Invalid -client UUID %q: %v", *clientFlag, err)
		}
		clientID = parsed
	}

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	rng := rand.New(rand.NewSource(*seedFlag))
	now := time.Now().UTC()

	var orders []models.SaleOrder
	for c := 0; c < *customersFlag; c++ {
		customerID := uuid.New()
		count := 1 + rng.Intn(12)
		for i := 0; i < count; i++ {
			amount := 10 + rng.Float64()*990
			status := models.OrderStatusDone
			switch rng.Intn(10) {
			case 0:
				status = models.OrderStatusCancelled
			case 1:
				status = models.OrderStatusConfirmed
			case 2:
				// Refund: done order with a negative amount.
				amount = -amount
			}
			orders = append(orders, models.SaleOrder{
				ClientID:    clientID,
				CustomerID:  customerID,
				OrderNumber: fmt.Sprintf("SO-%s-%04d-%02d", clientID.String()[:8], c, i),
				Status:      status,
				TotalAmount: float64(int(amount*100)) / 100,
				OrderDate:   now.AddDate(0, 0, -rng.Intn(*daysFlag)),
			})
		}
	}

	if err := db.GORM.CreateInBatches(orders, 500).Error; err != nil {
		log.Fatalf("❌ Failed to seed orders: %v", err)
	}

	log.Printf("✅ Seeded %d orders for client %s", len(orders), clientID)
}
