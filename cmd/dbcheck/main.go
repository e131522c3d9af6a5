package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/common/database"
	"github.com/joho/godotenv"
)

var matchingTables = []string{
	"matching_profiles",
	"relationship_quiz_results",
	"profile_views",
	"conversation_metrics",
	"hotpicks",
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment")
	} else {
		fmt.Println("✅ .env loaded")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, dbURL, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Can't reach database: ", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	for _, table := range matchingTables {
		var count int64
		// table names come from the fixed list above
		if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			fmt.Printf("❌ %s: %v\n", table, err)
			continue
		}
		fmt.Printf("✅ %s: %d rows\n", table, count)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL not set, skipping Redis check")
		return
	}

	client, err := database.NewRedisClientFromURL(ctx, redisURL)
	if err != nil {
		fmt.Printf("❌ Redis: %v\n", err)
		return
	}
	defer client.Close()

	keys, err := client.DBSize(ctx).Result()
	if err != nil {
		fmt.Printf("❌ Redis: %v\n", err)
		return
	}
	fmt.Printf("✅ Redis reachable, %d keys\n", keys)
}
