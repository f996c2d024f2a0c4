package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"adaptive-quiz/internal/domain"
	"adaptive-quiz/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankRepository caches question rows in Redis (one hash field per question
// text) and falls back to a loader on cache miss:
//
//	HSET bank:questions {question text} {json row}
//
// Bank order is not preserved; the selector reshuffles anyway.
type BankRepository struct {
	client *redis.Client
	loader memory.BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader memory.BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const bankKey = "bank:questions"

func (r *BankRepository) Questions(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.client.HGetAll(ctx, bankKey).Result()
	if err == nil && len(rows) > 0 {
		return decodeRows(rows)
	}

	result, err, _ := r.sf.Do(bankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		rows, err := r.client.HGetAll(ctx, bankKey).Result()
		if err == nil && len(rows) > 0 {
			qs, err := decodeRows(rows)
			if err != nil {
				return nil, err
			}
			return qs, nil
		}

		questions, err := r.loader.LoadBank(ctx)
		if err != nil {
			return nil, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for _, q := range questions {
			data, err := json.Marshal(q)
			if err != nil {
				return nil, err
			}
			pipe.HSet(ctx, bankKey, q.Text, string(data))
		}
		if ttl > 0 {
			pipe.Expire(ctx, bankKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func decodeRows(rows map[string]string) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(rows))
	for _, raw := range rows {
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
