package csvbank

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"adaptive-quiz/internal/domain"
)

const maxOptionColumns = 4

// Write saves the bank to path atomically: the file is assembled next to the
// destination and renamed into place, so a failed write never clobbers an
// existing bank.
func Write(path string, questions []domain.Question) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp bank: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	header := []string{"Question", "Subject", "Difficulty", "Correct_Answer"}
	for i := 1; i <= maxOptionColumns; i++ {
		header = append(header, fmt.Sprintf("Option%d", i))
	}
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write bank header: %w", err)
	}

	for _, q := range questions {
		row := []string{q.Text, q.Subject, string(q.Difficulty), q.CorrectAnswer}
		for i := 0; i < maxOptionColumns; i++ {
			if i < len(q.Options) {
				row = append(row, q.Options[i])
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write bank row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush bank: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp bank: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace bank: %w", err)
	}
	return nil
}
