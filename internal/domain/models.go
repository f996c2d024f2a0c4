package domain

// Difficulty is the three-tier question difficulty ladder.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// ParseDifficulty maps free-form input (dataset rows, API fields) onto the enum.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "Easy", "easy":
		return Easy, true
	case "Medium", "medium":
		return Medium, true
	case "Hard", "hard":
		return Hard, true
	}
	return "", false
}

// SubjectAny disables subject filtering during selection.
const SubjectAny = "Any"

// Question is one bank entry. Text is the unique key within the bank;
// Options holds up to four answer texts and always includes CorrectAnswer
// by the time a round is rendered. Immutable once loaded.
type Question struct {
	Text          string     `json:"text"`
	Subject       string     `json:"subject"`
	Difficulty    Difficulty `json:"difficulty"`
	CorrectAnswer string     `json:"correctAnswer"`
	Options       []string   `json:"options"`
}

// Player is the per-name cumulative record. Created on first login with
// {0, 1, Easy, 0}; mutated only by round start and round submit.
type Player struct {
	Name              string
	TotalScore        int
	RoundNumber       int
	CurrentDifficulty Difficulty
	LastRoundScore    int
}

// QuestionView is one rendered question: fixed option order plus the
// player's current selection ("" while unanswered).
type QuestionView struct {
	Number   int      `json:"number"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// RoundView is the full rendered state of a player's in-progress round.
// Rendering it twice without an intervening answer yields identical views.
type RoundView struct {
	Round      int            `json:"round"`
	Subject    string         `json:"subject"`
	Difficulty Difficulty     `json:"difficulty"`
	Questions  []QuestionView `json:"questions"`
}

// QuestionResult is the per-question outcome of a submitted round.
type QuestionResult struct {
	Number   int    `json:"number"`
	Correct  bool   `json:"correct"`
	Given    string `json:"given"`
	Expected string `json:"expected"`
}

// RoundResult summarizes a submitted round.
type RoundResult struct {
	RoundScore     int              `json:"roundScore"`
	RoundSize      int              `json:"roundSize"`
	TotalScore     int              `json:"totalScore"`
	NextDifficulty Difficulty       `json:"nextDifficulty"`
	Results        []QuestionResult `json:"results"`
}

// LeaderboardEntry is a snapshot-friendly view of a player.
// RoundsPlayed is the number of completed rounds (round number minus one).
type LeaderboardEntry struct {
	Name         string `json:"name"`
	TotalScore   int    `json:"totalScore"`
	RoundsPlayed int    `json:"roundsPlayed"`
}
