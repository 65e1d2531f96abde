// Command seed loads contests into the configured store, either the built-in
// fixtures or rows from a CSV file passed as the first argument.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/seed"
	"github.com/ArowuTest/skillprize-backend/internal/storage"
	"github.com/ArowuTest/skillprize-backend/internal/utils"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repos.Close(context.Background())

	if len(os.Args) < 2 {
		created, err := seed.Seed(ctx, repos.Contests, repos.Questions, time.Now())
		if err != nil {
			log.Fatalf("Failed to seed contests: %v", err)
		}
		log.Printf("Seeded %d fixture contests", created)
		return
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	importer := utils.NewContestCSVImporter(repos.Contests, repos.Questions)
	result, err := importer.ImportContests(ctx, file)
	if err != nil {
		log.Fatalf("Failed to import data: %v", err)
	}

	log.Printf("Import completed: %d rows, %d contests, %d questions", result.TotalRows, result.ContestsCreated, result.QuestionsCreated)
	for _, rowErr := range result.Errors {
		log.Printf("  %s", rowErr)
	}
}
