package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		godotenv.Load("../../.env") // Fallback
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database. Error: %v\n(Check your connection string, password, and Ensure you have internet access)", err)
	}
	defer conn.Close(context.Background())

	var version string
	if err := conn.QueryRow(context.Background(), "SELECT version()").Scan(&version); err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}

	var dbSize string
	if err := conn.QueryRow(context.Background(), "SELECT pg_size_pretty(pg_database_size(current_database()))").Scan(&dbSize); err == nil {
		fmt.Printf("📦 Current Database Size: %s\n", dbSize)
	}

	//sanity-check the schema the pipeline writes to
	var postings, sessions int
	if err := conn.QueryRow(context.Background(), "SELECT count(*) FROM job_postings").Scan(&postings); err != nil {
		log.Fatalf("❌ job_postings table missing or unreadable: %v", err)
	}
	if err := conn.QueryRow(context.Background(), "SELECT count(*) FROM scrape_sessions").Scan(&sessions); err != nil {
		log.Fatalf("❌ scrape_sessions table missing or unreadable: %v", err)
	}
	fmt.Printf("📋 job_postings: %d rows, scrape_sessions: %d rows\n", postings, sessions)

	fmt.Println("✅ Successfully connected to the database!")
	fmt.Println("🚀 Database Version:", version)
}
