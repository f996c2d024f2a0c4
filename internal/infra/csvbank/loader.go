// Package csvbank reads and writes the question-bank CSV with columns
// Question, Subject, Difficulty, Correct_Answer and sparse Option1..OptionN.
package csvbank

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"adaptive-quiz/internal/domain"
)

// Loader reads the bank file once per call; callers are expected to wrap it
// in a caching repository.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) LoadBank(_ context.Context) ([]domain.Question, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("bank %s: missing header row", l.path)
	}

	header := records[0]
	cols := map[string]int{}
	var optionCols []int
	for i, name := range header {
		cols[name] = i
		if strings.HasPrefix(name, "Option") {
			optionCols = append(optionCols, i)
		}
	}
	for _, required := range []string{"Question", "Subject", "Difficulty", "Correct_Answer"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("bank %s: missing column %s", l.path, required)
		}
	}

	questions := make([]domain.Question, 0, len(records)-1)
	for rowNum, row := range records[1:] {
		difficulty, ok := domain.ParseDifficulty(field(row, cols["Difficulty"]))
		if !ok {
			return nil, fmt.Errorf("bank %s row %d: unknown difficulty %q", l.path, rowNum+2, field(row, cols["Difficulty"]))
		}
		q := domain.Question{
			Text:          field(row, cols["Question"]),
			Subject:       field(row, cols["Subject"]),
			Difficulty:    difficulty,
			CorrectAnswer: field(row, cols["Correct_Answer"]),
		}
		if q.Text == "" {
			return nil, fmt.Errorf("bank %s row %d: empty question text", l.path, rowNum+2)
		}
		for _, i := range optionCols {
			if v := field(row, i); v != "" {
				q.Options = append(q.Options, v)
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// field tolerates short rows; absent cells read as empty (sparse options).
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
