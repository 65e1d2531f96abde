package utils

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
)

// ImportResult summarises a CSV import
type ImportResult struct {
	TotalRows        int      `json:"totalRows"`
	ContestsCreated  int      `json:"contestsCreated"`
	QuestionsCreated int      `json:"questionsCreated"`
	Errors           []string `json:"errors"`
}

// ContestCSVImporter loads contests and their qualifying questions from CSV.
// Options are separated by "|" and the correct answer is a zero-based option index.
type ContestCSVImporter struct {
	contestRepo  repositories.ContestRepository
	questionRepo repositories.QuestionRepository
}

// NewContestCSVImporter creates a new ContestCSVImporter
func NewContestCSVImporter(contestRepo repositories.ContestRepository, questionRepo repositories.QuestionRepository) *ContestCSVImporter {
	return &ContestCSVImporter{
		contestRepo:  contestRepo,
		questionRepo: questionRepo,
	}
}

// ImportContests reads one contest per row. Bad rows are reported in the result and skipped.
func (i *ContestCSVImporter) ImportContests(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := map[string]int{
		"title":       findColumnIndex(header, []string{"Title", "Name"}),
		"description": findColumnIndex(header, []string{"Description"}),
		"category":    findColumnIndex(header, []string{"Category"}),
		"image":       findColumnIndex(header, []string{"Image URL", "Image", "ImageUrl"}),
		"fee":         findColumnIndex(header, []string{"Entry Fee", "Fee", "EntryFee"}),
		"prize":       findColumnIndex(header, []string{"Prize Value", "Prize", "PrizeValue"}),
		"start":       findColumnIndex(header, []string{"Start Date", "Start", "StartDate"}),
		"end":         findColumnIndex(header, []string{"End Date", "End", "EndDate"}),
		"max":         findColumnIndex(header, []string{"Max Entries", "Capacity", "MaxEntries"}),
		"question":    findColumnIndex(header, []string{"Question"}),
		"options":     findColumnIndex(header, []string{"Options"}),
		"answer":      findColumnIndex(header, []string{"Correct Answer", "Answer", "CorrectAnswer"}),
	}
	for _, required := range []string{"title", "category", "fee", "end"} {
		if cols[required] == -1 {
			return nil, fmt.Errorf("%s column not found in CSV", required)
		}
	}

	result := &ImportResult{Errors: []string{}}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		result.TotalRows++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		contest, question, err := parseContestRow(row, cols)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		if err := i.contestRepo.Create(ctx, contest); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: failed to create contest: %v", result.TotalRows, err))
			continue
		}
		result.ContestsCreated++

		if question == nil {
			continue
		}
		question.ContestID = contest.ID
		if err := i.questionRepo.Create(ctx, question); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: failed to create question: %v", result.TotalRows, err))
			continue
		}
		result.QuestionsCreated++
	}

	return result, nil
}

func parseContestRow(row []string, cols map[string]int) (*models.Contest, *models.QualificationQuestion, error) {
	get := func(key string) string {
		idx := cols[key]
		if idx == -1 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	title := get("title")
	if title == "" {
		return nil, nil, errors.New("no title found")
	}

	fee, err := strconv.ParseFloat(get("fee"), 64)
	if err != nil || fee < 0 {
		return nil, nil, fmt.Errorf("invalid entry fee: %q", get("fee"))
	}

	var prize float64
	if v := get("prize"); v != "" {
		if prize, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, nil, fmt.Errorf("invalid prize value: %q", v)
		}
	}

	start := time.Now()
	if v := get("start"); v != "" {
		if start, err = parseDate(v); err != nil {
			return nil, nil, err
		}
	}
	end, err := parseDate(get("end"))
	if err != nil {
		return nil, nil, err
	}
	if !end.After(start) {
		return nil, nil, errors.New("end date must be after start date")
	}

	var maxEntries int
	if v := get("max"); v != "" {
		if maxEntries, err = strconv.Atoi(v); err != nil || maxEntries < 0 {
			return nil, nil, fmt.Errorf("invalid max entries: %q", v)
		}
	}

	contest := &models.Contest{
		Title:       title,
		Description: get("description"),
		Category:    get("category"),
		ImageURL:    get("image"),
		EntryFee:    fee,
		PrizeValue:  prize,
		StartDate:   start,
		EndDate:     end,
		MaxEntries:  maxEntries,
		IsActive:    true,
		CreatedBy:   "CSV_IMPORT",
	}

	text := get("question")
	if text == "" {
		return contest, nil, nil
	}
	options := []string{}
	for _, opt := range strings.Split(get("options"), "|") {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	answer, err := strconv.Atoi(get("answer"))
	if err != nil || answer < 0 || answer >= len(options) || len(options) < 2 {
		return nil, nil, fmt.Errorf("invalid question options or correct answer for %q", title)
	}

	return contest, &models.QualificationQuestion{
		Question:      text,
		Options:       options,
		CorrectAnswer: answer,
	}, nil
}

// findColumnIndex finds the index of the first header matching one of the names, ignoring case
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

// parseDate parses a date string in various formats
func parseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	formats := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04:05",
		"02/01/2006",
		"02/01/2006 15:04:05",
		"Jan 2, 2006",
		"2 Jan 2006",
	}

	for _, format := range formats {
		date, err := time.Parse(format, dateStr)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
