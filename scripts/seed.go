// Development helper: applies the schema and inserts a handful of sample
// restaurants so the catalog is not empty on a fresh database.
//
// Usage:
//
//	go run ./scripts -schema scripts/schema.sql
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type sampleRestaurant struct {
	name           string
	cuisine        string
	address        string
	phone          string
	description    string
	openTime       string
	closeTime      string
	hasParking     bool
	hasWifi        bool
	hasPrivateRoom bool
	smokingAllowed bool
	featured       bool
}

var samples = []sampleRestaurant{
	{
		name: "Sakura Tei", cuisine: "japanese",
		address: "2-11-3 Dogenzaka, Shibuya, Tokyo", phone: "0312345678",
		description: "Seasonal kaiseki courses in a quiet tatami setting.",
		openTime:    "11:00", closeTime: "21:00",
		hasPrivateRoom: true, featured: true,
	},
	{
		name: "Trattoria Luna", cuisine: "italian",
		address: "5-8-1 Minamiaoyama, Minato, Tokyo", phone: "0387654321",
		description: "Handmade pasta and a long natural wine list.",
		openTime:    "11:00", closeTime: "21:00",
		hasWifi: true, featured: true,
	},
	{
		name: "Dragon Palace", cuisine: "chinese",
		address: "1-4-16 Kabukicho, Shinjuku, Tokyo", phone: "0355501234",
		description: "Cantonese dim sum with round tables for large parties.",
		openTime:    "11:00", closeTime: "21:00",
		hasParking: true, hasPrivateRoom: true,
	},
	{
		name: "Bistro Quai", cuisine: "french",
		address: "3-2-9 Ebisu, Shibuya, Tokyo", phone: "0366789012",
		description: "Classic bistro plates, counter seats facing the kitchen.",
		openTime:    "17:00", closeTime: "21:00",
		hasWifi: true,
	},
	{
		name: "Spice Route", cuisine: "indian",
		address: "4-1-7 Nishi-Shinjuku, Shinjuku, Tokyo", phone: "0344556677",
		description: "North Indian curries, tandoor breads baked to order.",
		openTime:    "11:00", closeTime: "21:00",
		hasParking: true, smokingAllowed: true,
	},
}

func main() {
	schemaFlag := flag.String("schema", "", "Path to schema file to apply before seeding")
	dsnFlag := flag.String("dsn", "", "Postgres connection string (falls back to DATABASE_URL)")
	flag.Parse()

	dsn := *dsnFlag
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		log.Fatal("No connection string: pass -dsn or set DATABASE_URL")
	}

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	if *schemaFlag != "" {
		schemaSQL, err := os.ReadFile(*schemaFlag)
		if err != nil {
			log.Fatalf("Failed to read schema file: %v", err)
		}
		if _, err := conn.Exec(ctx, string(schemaSQL)); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		fmt.Printf("Schema applied from %s\n", *schemaFlag)
	}

	var count int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		log.Fatalf("Failed to count restaurants: %v", err)
	}
	if count > 0 {
		fmt.Printf("Restaurants already seeded (%d rows), nothing to do\n", count)
		return
	}

	for _, s := range samples {
		_, err := conn.Exec(ctx, `
			INSERT INTO restaurants (id, name, cuisine, address, phone, description,
				open_time, close_time, has_parking, has_wifi, has_private_room,
				smoking_allowed, status, featured, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'active', $13, NOW(), NOW())
		`,
			uuid.New(), s.name, s.cuisine, s.address, s.phone, s.description,
			s.openTime, s.closeTime, s.hasParking, s.hasWifi, s.hasPrivateRoom,
			s.smokingAllowed, s.featured,
		)
		if err != nil {
			log.Fatalf("Failed to seed restaurant %s: %v", s.name, err)
		}
		fmt.Printf("Seeded restaurant: %s\n", s.name)
	}

	fmt.Println("Seeding completed successfully")
}
