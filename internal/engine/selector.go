package engine

import (
	"math/rand"

	"adaptive-quiz/internal/domain"
)

// Selector draws round batches from a loaded bank. All randomness flows
// through the injected source so tests can pin outcomes.
type Selector struct {
	rnd *rand.Rand
}

func NewSelector(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd}
}

// Fetch returns up to count distinct-text questions matching subject and
// target difficulty. An empty subject+difficulty subset relaxes the subject
// filter first; a subset still smaller than count is topped up from the whole
// bank regardless of difficulty, and the combined batch is reshuffled so
// backfill items do not cluster at the tail. Texts in exclude are never
// returned. Result length is min(count, distinct eligible texts); an empty
// bank yields an empty batch, never an error.
func (s *Selector) Fetch(bank []domain.Question, count int, subject string, target domain.Difficulty, exclude map[string]bool) []domain.Question {
	if count <= 0 {
		return nil
	}

	subset := filterBank(bank, func(q domain.Question) bool {
		if exclude[q.Text] || q.Difficulty != target {
			return false
		}
		return subject == domain.SubjectAny || q.Subject == subject
	})
	if len(subset) == 0 {
		subset = filterBank(bank, func(q domain.Question) bool {
			return !exclude[q.Text] && q.Difficulty == target
		})
	}
	subset = dedupeByText(subset)

	if len(subset) >= count {
		return s.sample(subset, count)
	}

	selected := make([]domain.Question, len(subset))
	copy(selected, subset)
	chosen := make(map[string]bool, len(selected))
	for _, q := range selected {
		chosen[q.Text] = true
	}

	pool := dedupeByText(filterBank(bank, func(q domain.Question) bool {
		return !chosen[q.Text] && !exclude[q.Text]
	}))
	remaining := count - len(selected)
	if remaining > len(pool) {
		remaining = len(pool)
	}
	selected = append(selected, s.sample(pool, remaining)...)

	s.rnd.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

// sample draws n distinct elements uniformly without replacement.
func (s *Selector) sample(qs []domain.Question, n int) []domain.Question {
	if n <= 0 {
		return nil
	}
	shuffled := make([]domain.Question, len(qs))
	copy(shuffled, qs)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

func filterBank(bank []domain.Question, keep func(domain.Question) bool) []domain.Question {
	var out []domain.Question
	for _, q := range bank {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// dedupeByText keeps the first occurrence of each question text.
func dedupeByText(qs []domain.Question) []domain.Question {
	seen := make(map[string]bool, len(qs))
	out := qs[:0:0]
	for _, q := range qs {
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		out = append(out, q)
	}
	return out
}
