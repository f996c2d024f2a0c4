package engine_test

import (
	"fmt"
	"math/rand"
	"testing"

	"adaptive-quiz/internal/domain"
	"adaptive-quiz/internal/engine"
)

func newSelector(seed int64) *engine.Selector {
	return engine.NewSelector(rand.New(rand.NewSource(seed)))
}

func bankOf(counts map[domain.Difficulty]int) []domain.Question {
	var bank []domain.Question
	for _, diff := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard} {
		for i := 0; i < counts[diff]; i++ {
			text := fmt.Sprintf("%s question %d", diff, i+1)
			bank = append(bank, domain.Question{
				Text:          text,
				Subject:       "Science",
				Difficulty:    diff,
				CorrectAnswer: "right",
				Options:       []string{"right", "wrong a", "wrong b", "wrong c"},
			})
		}
	}
	return bank
}

func TestFetchNeverRepeatsTexts(t *testing.T) {
	bank := bankOf(map[domain.Difficulty]int{domain.Easy: 6, domain.Medium: 6, domain.Hard: 6})
	// Duplicate rows must not yield duplicate picks.
	bank = append(bank, bank...)

	for seed := int64(0); seed < 5; seed++ {
		batch := newSelector(seed).Fetch(bank, 10, domain.SubjectAny, domain.Easy, nil)
		seen := map[string]bool{}
		for _, q := range batch {
			if seen[q.Text] {
				t.Fatalf("seed %d: duplicate text %q in batch", seed, q.Text)
			}
			seen[q.Text] = true
		}
	}
}

func TestFetchReturnsMinOfCountAndDistinct(t *testing.T) {
	bank := bankOf(map[domain.Difficulty]int{domain.Easy: 3, domain.Medium: 2})

	if got := newSelector(1).Fetch(bank, 4, domain.SubjectAny, domain.Easy, nil); len(got) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(got))
	}
	if got := newSelector(1).Fetch(bank, 10, domain.SubjectAny, domain.Easy, nil); len(got) != 5 {
		t.Fatalf("expected whole bank (5), got %d", len(got))
	}
	if got := newSelector(1).Fetch(bank, 2, domain.SubjectAny, domain.Easy, nil); len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
}

func TestFetchBackfillsFromWiderPool(t *testing.T) {
	// 3 Easy + 2 Medium, round of 4 at Easy: all three Easy questions plus
	// one backfill item, no duplicates.
	bank := bankOf(map[domain.Difficulty]int{domain.Easy: 3, domain.Medium: 2})

	batch := newSelector(7).Fetch(bank, 4, domain.SubjectAny, domain.Easy, nil)
	if len(batch) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(batch))
	}
	easy := 0
	seen := map[string]bool{}
	for _, q := range batch {
		if seen[q.Text] {
			t.Fatalf("duplicate text %q", q.Text)
		}
		seen[q.Text] = true
		if q.Difficulty == domain.Easy {
			easy++
		}
	}
	if easy != 3 {
		t.Fatalf("expected all 3 easy questions in batch, got %d", easy)
	}
}

func TestFetchRelaxesSubjectFilter(t *testing.T) {
	bank := bankOf(map[domain.Difficulty]int{domain.Easy: 4})

	batch := newSelector(3).Fetch(bank, 2, "History", domain.Easy, nil)
	if len(batch) != 2 {
		t.Fatalf("expected subject relaxation to fill the round, got %d questions", len(batch))
	}
	for _, q := range batch {
		if q.Difficulty != domain.Easy {
			t.Fatalf("relaxed subset must keep target difficulty, got %s", q.Difficulty)
		}
	}
}

func TestFetchEmptyBank(t *testing.T) {
	if got := newSelector(1).Fetch(nil, 5, domain.SubjectAny, domain.Easy, nil); len(got) != 0 {
		t.Fatalf("expected empty batch from empty bank, got %d", len(got))
	}
}

func TestFetchHonorsExcludes(t *testing.T) {
	bank := bankOf(map[domain.Difficulty]int{domain.Easy: 3})
	exclude := map[string]bool{bank[0].Text: true}

	batch := newSelector(2).Fetch(bank, 3, domain.SubjectAny, domain.Easy, exclude)
	if len(batch) != 2 {
		t.Fatalf("expected 2 questions after exclusion, got %d", len(batch))
	}
	for _, q := range batch {
		if q.Text == bank[0].Text {
			t.Fatalf("excluded question %q was selected", q.Text)
		}
	}
}
