package engine

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"adaptive-quiz/internal/domain"
)

func arenaQuestion() domain.Question {
	return domain.Question{
		Text:          "pick one",
		Subject:       "Science",
		Difficulty:    domain.Easy,
		CorrectAnswer: "b",
		Options:       []string{"a", "b", "c", "d"},
	}
}

func TestOptionsForIsIdempotent(t *testing.T) {
	arena := newSlotArena(rand.New(rand.NewSource(1)))
	key := slotKey{player: "alice", generation: 1, index: 0}

	first := arena.optionsFor(key, arenaQuestion())
	second := arena.optionsFor(key, arenaQuestion())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("option order changed across observations: %v then %v", first, second)
	}
}

func TestOptionsForIsPermutationWithCorrectAnswer(t *testing.T) {
	arena := newSlotArena(rand.New(rand.NewSource(2)))
	q := domain.Question{
		Text:          "sparse options",
		CorrectAnswer: "missing",
		Options:       []string{"x", "", "y"},
	}
	opts := arena.optionsFor(slotKey{player: "alice", generation: 1, index: 0}, q)

	sorted := append([]string(nil), opts...)
	sort.Strings(sorted)
	if !reflect.DeepEqual(sorted, []string{"missing", "x", "y"}) {
		t.Fatalf("expected blanks dropped and correct answer appended, got %v", opts)
	}
}

func TestNewGenerationGetsIndependentSlot(t *testing.T) {
	arena := newSlotArena(rand.New(rand.NewSource(3)))
	q := arenaQuestion()

	old := slotKey{player: "alice", generation: 1, index: 0}
	arena.optionsFor(old, q)
	arena.setSelected(old, "b")

	fresh := slotKey{player: "alice", generation: 2, index: 0}
	arena.optionsFor(fresh, q)
	if got := arena.selected(fresh); got != "" {
		t.Fatalf("new generation inherited answer %q", got)
	}
	if len(arena.slots) != 2 {
		t.Fatalf("expected two independent slots, got %d", len(arena.slots))
	}
}

func TestDropPlayerRemovesAllGenerations(t *testing.T) {
	arena := newSlotArena(rand.New(rand.NewSource(4)))
	q := arenaQuestion()
	arena.optionsFor(slotKey{player: "alice", generation: 1, index: 0}, q)
	arena.optionsFor(slotKey{player: "alice", generation: 2, index: 1}, q)
	arena.optionsFor(slotKey{player: "bob", generation: 2, index: 0}, q)

	arena.dropPlayer("alice")
	if len(arena.slots) != 1 {
		t.Fatalf("expected only bob's slot to remain, got %d slots", len(arena.slots))
	}
	if _, ok := arena.slots[slotKey{player: "bob", generation: 2, index: 0}]; !ok {
		t.Fatalf("bob's slot was dropped")
	}
}

func TestSetSelectedLastWriteWins(t *testing.T) {
	arena := newSlotArena(rand.New(rand.NewSource(5)))
	key := slotKey{player: "alice", generation: 1, index: 0}
	arena.optionsFor(key, arenaQuestion())

	arena.setSelected(key, "a")
	arena.setSelected(key, "c")
	if got := arena.selected(key); got != "c" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}
