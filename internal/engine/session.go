package engine

import (
	"math/rand"

	"adaptive-quiz/internal/domain"
)

// slotKey addresses one question's render state within one round generation.
// The generation component keeps a new round from inheriting stale state.
type slotKey struct {
	player     string
	generation uint64
	index      int
}

type slot struct {
	options  []string
	selected string
}

// slotArena stores the fixed option order and current answer per slot key.
// Option orders are written at most once per key; the rendering path consults
// the arena before any randomization, so re-renders are idempotent.
type slotArena struct {
	rnd   *rand.Rand
	slots map[slotKey]*slot
}

func newSlotArena(rnd *rand.Rand) *slotArena {
	return &slotArena{rnd: rnd, slots: make(map[slotKey]*slot)}
}

// optionsFor returns the slot's fixed option order, computing and storing it
// on first observation. The stored order is a permutation of the question's
// option set with the correct answer guaranteed present.
func (a *slotArena) optionsFor(key slotKey, q domain.Question) []string {
	if s, ok := a.slots[key]; ok {
		return s.options
	}
	opts := make([]string, 0, len(q.Options)+1)
	for _, o := range q.Options {
		if o != "" {
			opts = append(opts, o)
		}
	}
	found := false
	for _, o := range opts {
		if o == q.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		opts = append(opts, q.CorrectAnswer)
	}
	a.rnd.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	a.slots[key] = &slot{options: opts}
	return opts
}

func (a *slotArena) selected(key slotKey) string {
	if s, ok := a.slots[key]; ok {
		return s.selected
	}
	return ""
}

// setSelected overwrites the slot's answer; last write wins.
func (a *slotArena) setSelected(key slotKey, value string) {
	if s, ok := a.slots[key]; ok {
		s.selected = value
	}
}

// dropPlayer discards every slot belonging to the player, across generations.
func (a *slotArena) dropPlayer(player string) {
	for key := range a.slots {
		if key.player == player {
			delete(a.slots, key)
		}
	}
}
