package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Bobska/autocraftcv-sub000/internal/ai"
)

func main() {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Println("GROQ_API_KEY environment variable not set. Please set it to test the AI.")
		return
	}

	client := ai.NewGrokClient(apiKey, "")

	content := `Senior Go Backend Developer
Company: Example Systems
Location: Melbourne, VIC
Salary: $140,000 - $160,000 per year

Requirements:
- 3+ years of experience with Go (Golang)
- Experience with Kafka and Redis
- Strong knowledge of PostgreSQL and microservices
- DevOps knowledge (Docker, CI/CD)`

	fmt.Println("Sending request to Groq to parse the posting...")

	parsed, err := client.ParseJobContent(context.Background(), content)
	if err != nil {
		log.Fatalf("ParseJobContent failed: %v", err)
	}

	fmt.Println("\nSuccess! Parsed fields:")
	fmt.Printf("  Title: %s\n", parsed.JobTitle)
	fmt.Printf("  Company: %s\n", parsed.CompanyName)
	fmt.Printf("  Location: %s\n", parsed.Location)
	fmt.Printf("  Salary: %s\n", parsed.SalaryRange)
	fmt.Printf("  Requirements: %s\n", parsed.Requirements)
}
