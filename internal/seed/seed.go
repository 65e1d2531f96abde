// Package seed loads the launch catalogue of contests and their qualifying questions.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Fixture is one contest with its question
type Fixture struct {
	Contest  models.Contest
	Question models.QualificationQuestion
}

// Fixtures returns the launch catalogue, with windows opening at now
func Fixtures(now time.Time) []Fixture {
	days := func(n int) time.Time { return now.Add(time.Duration(n) * 24 * time.Hour) }
	contest := func(title, description, category, image string, fee, prize float64, end time.Time, max, current int) models.Contest {
		return models.Contest{
			Title:          title,
			Description:    description,
			Category:       category,
			ImageURL:       image,
			EntryFee:       fee,
			PrizeValue:     prize,
			StartDate:      now,
			EndDate:        end,
			MaxEntries:     max,
			CurrentEntries: current,
			IsActive:       true,
			CreatedBy:      "seed",
		}
	}
	question := func(text string, correct int, options ...string) models.QualificationQuestion {
		return models.QualificationQuestion{Question: text, Options: options, CorrectAnswer: correct}
	}

	return []Fixture{
		{
			contest("Win a Luxury Apartment in Mumbai",
				"A beautiful 2BHK apartment in the heart of Mumbai. Answer the quiz correctly to qualify for the draw.",
				"Property", "https://images.pexels.com/photos/1396122/pexels-photo-1396122.jpeg?auto=compress&cs=tinysrgb&w=800",
				299, 7500000, days(30), 4000, 1250),
			question("What is the capital of Maharashtra, where this apartment is located?", 0, "Mumbai", "Pune", "Nagpur", "Nashik"),
		},
		{
			contest("BMW X3 - Luxury SUV",
				"Drive home in style with this brand new BMW X3. Test your knowledge and win big!",
				"Vehicle", "https://images.pexels.com/photos/3802510/pexels-photo-3802510.jpeg?auto=compress&cs=tinysrgb&w=800",
				199, 800000, days(25), 3000, 890),
			question("BMW is a car manufacturer from which country?", 1, "Italy", "Germany", "France", "Japan"),
		},
		{
			contest("iPhone 15 Pro Max",
				"Get the latest iPhone 15 Pro Max with all accessories. Answer correctly to qualify!",
				"Electronics", "https://images.pexels.com/photos/699122/pexels-photo-699122.jpeg?auto=compress&cs=tinysrgb&w=800",
				99, 120000, days(20), 2000, 1567),
			question("Which company manufactures the iPhone?", 2, "Samsung", "Google", "Apple", "Microsoft"),
		},
		{
			contest("Gold Jewelry Set - 50 Grams",
				"Beautiful 22K gold jewelry set perfect for special occasions. Show your knowledge and win!",
				"Jewelry", "https://images.pexels.com/photos/1454171/pexels-photo-1454171.jpeg?auto=compress&cs=tinysrgb&w=800",
				149, 350000, days(35), 2500, 678),
			question("What is the purity of 22K gold?", 0, "91.6%", "95.8%", "99.9%", "75.0%"),
		},
		{
			contest("Premium Furniture Set",
				"Complete your home with this premium furniture collection. Answer the quiz to participate!",
				"Furniture", "https://images.pexels.com/photos/1350789/pexels-photo-1350789.jpeg?auto=compress&cs=tinysrgb&w=800",
				79, 70000, days(28), 1500, 234),
			question("Which wood is commonly used for premium furniture?", 1, "Pine", "Teak", "Bamboo", "Plastic"),
		},
		{
			contest("MacBook Pro M3",
				"Latest MacBook Pro with M3 chip for professionals. Test your skills and win this amazing laptop!",
				"Electronics", "https://images.pexels.com/photos/205421/pexels-photo-205421.jpeg?auto=compress&cs=tinysrgb&w=800",
				179, 250000, days(22), 1800, 1123),
			question(`What does the "M" in M3 chip stand for?`, 0, "Memory", "Machine", "Metal", "Max"),
		},
	}
}

// Seed inserts the fixtures when the contest store is empty and reports how many contests it created
func Seed(ctx context.Context, contests repositories.ContestRepository, questions repositories.QuestionRepository, now time.Time) (int, error) {
	count, err := contests.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count contests: %w", err)
	}
	if count > 0 {
		slog.Info("Contest store already populated, skipping seed", "contests", count)
		return 0, nil
	}

	created := 0
	for _, f := range Fixtures(now) {
		contest := f.Contest
		if err := contests.Create(ctx, &contest); err != nil {
			return created, fmt.Errorf("failed to seed contest %q: %w", contest.Title, err)
		}
		question := f.Question
		question.ContestID = contest.ID
		if err := questions.Create(ctx, &question); err != nil {
			return created, fmt.Errorf("failed to seed question for %q: %w", contest.Title, err)
		}
		created++
	}

	slog.Info("Seeded contest catalogue", "contests", created)
	return created, nil
}
