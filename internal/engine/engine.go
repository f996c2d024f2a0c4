package engine

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"adaptive-quiz/internal/domain"
)

// BankRepository loads the question bank (from cache/backing store).
type BankRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// PlayerRepository abstracts how player records are stored (in-memory, Redis, etc).
// All returns players in insertion order; Save flushes a mutated record to any
// backing store.
type PlayerRepository interface {
	GetOrCreate(name string) *domain.Player
	Get(name string) (*domain.Player, bool)
	All() []*domain.Player
	Save(p *domain.Player)
}

// Engine owns the round-session state machine: per-player in-progress rounds,
// the slot arena behind stable rendering, and the round-generation counter.
// One mutex guards all of it; every operation is a full pass over shared state,
// so no reader can observe a half-started round.
type Engine struct {
	bank    BankRepository
	players PlayerRepository

	mu         sync.Mutex
	selector   *Selector
	arena      *slotArena
	generation uint64
	rounds     map[string]*round
}

// round is one player's in-progress batch. The batch is immutable for the
// lifetime of its generation.
type round struct {
	generation uint64
	subject    string
	target     domain.Difficulty
	questions  []domain.Question
}

func New(bank BankRepository, players PlayerRepository) *Engine {
	return NewWithRand(bank, players, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand pins the randomness source for deterministic tests.
func NewWithRand(bank BankRepository, players PlayerRepository, rnd *rand.Rand) *Engine {
	return &Engine{
		bank:     bank,
		players:  players,
		selector: NewSelector(rnd),
		arena:    newSlotArena(rnd),
		rounds:   make(map[string]*round),
	}
}

// Login registers the player on first sight and returns a snapshot of their
// record. Defaults for a new player: score 0, round 1, Easy, last score 0.
func (e *Engine) Login(name string) (domain.Player, error) {
	if name == "" {
		return domain.Player{}, domain.ErrEmptyPlayerName
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.players.GetOrCreate(name), nil
}

// StartRound draws a fresh batch for the player and bumps the round
// generation, invalidating every slot of the previous round. The target
// difficulty comes from the player's last round score.
func (e *Engine) StartRound(ctx context.Context, name string, size int, subject string) (domain.RoundView, error) {
	if size <= 0 {
		return domain.RoundView{}, domain.ErrInvalidRoundSize
	}
	bank, err := e.bank.Questions(ctx)
	if err != nil {
		return domain.RoundView{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.players.Get(name)
	if !ok {
		return domain.RoundView{}, domain.ErrPlayerNotFound
	}

	target := NextDifficulty(p.CurrentDifficulty, p.LastRoundScore, size)
	batch := e.selector.Fetch(bank, size, subject, target, nil)

	e.generation++
	e.arena.dropPlayer(name)
	e.rounds[name] = &round{
		generation: e.generation,
		subject:    subject,
		target:     target,
		questions:  batch,
	}
	p.RoundNumber++
	e.players.Save(p)

	return e.renderLocked(name, p, e.rounds[name]), nil
}

// Render re-renders the player's current round. Rendering is idempotent:
// repeated calls within one generation return identical option orders and
// preserve the player's selections.
func (e *Engine) Render(name string) (domain.RoundView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.players.Get(name)
	if !ok {
		return domain.RoundView{}, domain.ErrPlayerNotFound
	}
	r, ok := e.rounds[name]
	if !ok {
		return domain.RoundView{}, domain.ErrNoActiveRound
	}
	return e.renderLocked(name, p, r), nil
}

// Answer records the player's choice for one question and returns the
// re-rendered round. The previous choice for the slot is overwritten.
func (e *Engine) Answer(name string, index int, value string) (domain.RoundView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.players.Get(name)
	if !ok {
		return domain.RoundView{}, domain.ErrPlayerNotFound
	}
	r, ok := e.rounds[name]
	if !ok {
		return domain.RoundView{}, domain.ErrNoActiveRound
	}
	if index < 0 || index >= len(r.questions) {
		return domain.RoundView{}, domain.ErrQuestionIndex
	}
	key := slotKey{player: name, generation: r.generation, index: index}
	// Materialize the slot first so an answer ahead of a render still lands
	// on the fixed option order.
	e.arena.optionsFor(key, r.questions[index])
	e.arena.setSelected(key, value)

	return e.renderLocked(name, p, r), nil
}

// SubmitRound scores the player's current round, applies the side effects to
// their record (total score, last round score, next difficulty), and ends the
// round. Unanswered questions score as wrong; answer comparison is exact.
func (e *Engine) SubmitRound(name string) (domain.RoundResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.players.Get(name)
	if !ok {
		return domain.RoundResult{}, domain.ErrPlayerNotFound
	}
	r, ok := e.rounds[name]
	if !ok {
		return domain.RoundResult{}, domain.ErrNoActiveRound
	}

	score := 0
	results := make([]domain.QuestionResult, 0, len(r.questions))
	for i, q := range r.questions {
		key := slotKey{player: name, generation: r.generation, index: i}
		given := e.arena.selected(key)
		correct := given == q.CorrectAnswer
		if correct {
			score++
		}
		results = append(results, domain.QuestionResult{
			Number:   i + 1,
			Correct:  correct,
			Given:    given,
			Expected: q.CorrectAnswer,
		})
	}

	p.TotalScore += score
	p.LastRoundScore = score
	p.CurrentDifficulty = NextDifficulty(p.CurrentDifficulty, score, len(r.questions))
	e.players.Save(p)

	delete(e.rounds, name)
	e.arena.dropPlayer(name)

	return domain.RoundResult{
		RoundScore:     score,
		RoundSize:      len(r.questions),
		TotalScore:     p.TotalScore,
		NextDifficulty: p.CurrentDifficulty,
		Results:        results,
	}, nil
}

// Leaderboard returns all players ordered by total score descending.
// Ties keep registry insertion order (stable sort).
func (e *Engine) Leaderboard() []domain.LeaderboardEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	players := e.players.All()
	entries := make([]domain.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, domain.LeaderboardEntry{
			Name:         p.Name,
			TotalScore:   p.TotalScore,
			RoundsPlayed: p.RoundNumber - 1,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	return entries
}

func (e *Engine) renderLocked(name string, p *domain.Player, r *round) domain.RoundView {
	view := domain.RoundView{
		Round:      p.RoundNumber,
		Subject:    r.subject,
		Difficulty: r.target,
		Questions:  make([]domain.QuestionView, 0, len(r.questions)),
	}
	for i, q := range r.questions {
		key := slotKey{player: name, generation: r.generation, index: i}
		opts := e.arena.optionsFor(key, q)
		view.Questions = append(view.Questions, domain.QuestionView{
			Number:   i + 1,
			Text:     q.Text,
			Options:  opts,
			Selected: e.arena.selected(key),
		})
	}
	return view
}
