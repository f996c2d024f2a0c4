package redis

import (
	"context"
	"testing"
	"time"

	"adaptive-quiz/internal/domain"
	"adaptive-quiz/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(sampleBank()),
	}
	repo := NewBankRepository(client, loader, time.Minute)

	qs, err := repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if !mr.Exists("bank:questions") {
		t.Fatalf("expected bank hash in redis")
	}

	// Second call should hit the redis hash, loader not incremented.
	qs, err = repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("load bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	texts := map[string]domain.Difficulty{}
	for _, q := range qs {
		texts[q.Text] = q.Difficulty
	}
	if texts["q1"] != domain.Easy || texts["q2"] != domain.Medium {
		t.Fatalf("cached rows lost fields: %+v", qs)
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}

func sampleBank() []domain.Question {
	return []domain.Question{
		{Text: "q1", Subject: "Science", Difficulty: domain.Easy, CorrectAnswer: "4", Options: []string{"3", "4"}},
		{Text: "q2", Subject: "History", Difficulty: domain.Medium, CorrectAnswer: "1492", Options: []string{"1492", "1776"}},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
