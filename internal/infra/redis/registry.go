package redis

import (
	"context"
	"strconv"

	"adaptive-quiz/internal/domain"
	"adaptive-quiz/internal/infra/memory"
	"github.com/redis/go-redis/v9"
)

// Registry is a Redis-aware implementation of engine.PlayerRepository.
// Notes:
//   - The in-process registry stays the source of truth; it keeps the
//     insertion order that decides leaderboard ties.
//   - Redis holds a mirror of each record plus a leaderboard sorted set, so
//     scores survive inspection from outside the process (and could feed a
//     cross-instance projector).
type Registry struct {
	*memory.Registry
	client *redis.Client
}

func NewRegistry(client *redis.Client) *Registry {
	return &Registry{Registry: memory.NewRegistry(), client: client}
}

func (r *Registry) GetOrCreate(name string) *domain.Player {
	p := r.Registry.GetOrCreate(name)
	r.mirror(p)
	return p
}

// Save flushes the mutated record to Redis best-effort; the local copy
// already holds the update.
func (r *Registry) Save(p *domain.Player) {
	r.Registry.Save(p)
	r.mirror(p)
}

func (r *Registry) mirror(p *domain.Player) {
	ctx := context.Background()
	_ = r.client.HSet(ctx, playerKey(p.Name),
		"totalScore", strconv.Itoa(p.TotalScore),
		"roundNumber", strconv.Itoa(p.RoundNumber),
		"currentDifficulty", string(p.CurrentDifficulty),
		"lastRoundScore", strconv.Itoa(p.LastRoundScore),
	).Err()
	_ = r.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(p.TotalScore),
		Member: p.Name,
	}).Err()
}

const leaderboardKey = "quiz:leaderboard"

func playerKey(name string) string {
	return "quiz:player:" + name
}
