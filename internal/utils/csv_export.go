package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
)

// EntryCSVHeader is the header row of an entries export
var EntryCSVHeader = []string{
	"ID", "User ID", "Contest ID", "Payment ID", "Quiz Passed", "Qualified",
	"Selected Answer", "Created At", "Submitted At",
}

// WriteEntriesCSV writes entries as CSV, one row per entry after the header
func WriteEntriesCSV(w io.Writer, entries []*models.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(EntryCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		selected := ""
		if e.SelectedAnswer != nil {
			selected = strconv.Itoa(*e.SelectedAnswer)
		}
		submitted := ""
		if e.SubmittedAt != nil {
			submitted = e.SubmittedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			e.ID.Hex(),
			e.UserID,
			e.ContestID.Hex(),
			e.PaymentID,
			strconv.FormatBool(e.QuizPassed),
			strconv.FormatBool(e.Qualified),
			selected,
			e.CreatedAt.UTC().Format(time.RFC3339),
			submitted,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", e.ID.Hex(), err)
		}
	}

	writer.Flush()
	return writer.Error()
}
