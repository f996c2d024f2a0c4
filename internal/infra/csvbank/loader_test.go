package csvbank

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adaptive-quiz/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadBank(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"Question,Subject,Difficulty,Correct_Answer,Option1,Option2,Option3,Option4",
		"What is 2+2?,Math,Easy,4,3,4,5,6",
		`"When did Columbus sail?",History,Medium,1492,1492,1776,,`,
	}, "\n"))

	qs, err := NewLoader(path).LoadBank(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Text != "What is 2+2?" || qs[0].Difficulty != domain.Easy || qs[0].CorrectAnswer != "4" {
		t.Fatalf("unexpected first question: %+v", qs[0])
	}
	if len(qs[0].Options) != 4 {
		t.Fatalf("expected 4 options, got %v", qs[0].Options)
	}
	// Sparse options drop empty cells.
	if len(qs[1].Options) != 2 {
		t.Fatalf("expected 2 options for sparse row, got %v", qs[1].Options)
	}
}

func TestLoadBankMissingColumn(t *testing.T) {
	path := writeFile(t, "Question,Subject,Correct_Answer\nq,s,a\n")
	if _, err := NewLoader(path).LoadBank(context.Background()); err == nil {
		t.Fatalf("expected error for missing Difficulty column")
	}
}

func TestLoadBankUnknownDifficulty(t *testing.T) {
	path := writeFile(t, "Question,Subject,Difficulty,Correct_Answer,Option1\nq,s,Impossible,a,a\n")
	if _, err := NewLoader(path).LoadBank(context.Background()); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent.csv")).LoadBank(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	bank := []domain.Question{
		{Text: "q1", Subject: "Science", Difficulty: domain.Hard, CorrectAnswer: "yes", Options: []string{"yes", "no"}},
	}
	if err := Write(path, bank); err != nil {
		t.Fatalf("write: %v", err)
	}

	qs, err := NewLoader(path).LoadBank(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(qs) != 1 || qs[0].Text != "q1" || qs[0].Difficulty != domain.Hard || len(qs[0].Options) != 2 {
		t.Fatalf("round trip lost data: %+v", qs)
	}
}
