package memory

import (
	"sync"

	"adaptive-quiz/internal/domain"
)

// Registry is the in-memory implementation of engine.PlayerRepository.
// Insertion order is preserved so leaderboard ties resolve to first-seen.
// Players are never removed within a process lifetime.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*domain.Player)}
}

func (r *Registry) GetOrCreate(name string) *domain.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[name]; ok {
		return p
	}
	p := &domain.Player{
		Name:              name,
		TotalScore:        0,
		RoundNumber:       1,
		CurrentDifficulty: domain.Easy,
		LastRoundScore:    0,
	}
	r.players[name] = p
	r.order = append(r.order, name)
	return p
}

func (r *Registry) Get(name string) (*domain.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[name]
	return p, ok
}

func (r *Registry) All() []*domain.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Player, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.players[name])
	}
	return out
}

// Save is a no-op here; records live in this map. It exists so write-through
// backends can flush mutations.
func (r *Registry) Save(_ *domain.Player) {}
