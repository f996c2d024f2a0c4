// Package trivia fetches question batches from the Open Trivia DB API to
// seed the question bank.
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"time"

	"adaptive-quiz/internal/domain"
)

// DefaultURL is the Open Trivia DB multiple-choice endpoint.
const DefaultURL = "https://opentdb.com/api.php"

// ErrNoResults indicates the API response carried no results field; callers
// must not overwrite an existing bank when they see it.
var ErrNoResults = errors.New("trivia api response missing results")

type Client struct {
	baseURL    string
	httpClient *http.Client
	rnd        *rand.Rand
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type apiResponse struct {
	ResponseCode int       `json:"response_code"`
	Results      []apiItem `json:"results"`
}

type apiItem struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch downloads amount multiple-choice items. Text fields arrive
// HTML-escaped and are unescaped here; each item's options are the incorrect
// answers plus the correct one in a shuffled order.
func (c *Client) Fetch(ctx context.Context, amount int) ([]domain.Question, error) {
	url := fmt.Sprintf("%s?amount=%d&type=multiple", c.baseURL, amount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trivia: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch trivia: unexpected status %s", resp.Status)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode trivia response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, ErrNoResults
	}

	questions := make([]domain.Question, 0, len(payload.Results))
	for _, item := range payload.Results {
		correct := html.UnescapeString(item.CorrectAnswer)
		options := make([]string, 0, len(item.IncorrectAnswers)+1)
		for _, wrong := range item.IncorrectAnswers {
			options = append(options, html.UnescapeString(wrong))
		}
		options = append(options, correct)
		c.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		difficulty, ok := domain.ParseDifficulty(item.Difficulty)
		if !ok {
			difficulty = domain.Medium
		}
		subject := item.Category
		if subject == "" {
			subject = "General"
		}
		questions = append(questions, domain.Question{
			Text:          html.UnescapeString(item.Question),
			Subject:       subject,
			Difficulty:    difficulty,
			CorrectAnswer: correct,
			Options:       options,
		})
	}
	return questions, nil
}
