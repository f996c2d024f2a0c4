package cli

import (
	"log"

	"adaptive-quiz/internal/config"
	"adaptive-quiz/internal/infra/csvbank"
	"adaptive-quiz/internal/trivia"
	"github.com/spf13/cobra"
)

// NewFetchCmd downloads a question batch from the Open Trivia DB API and
// writes the CSV bank. On API failure nothing is written, so an existing bank
// survives a bad run.
func NewFetchCmd(configPath *string) *cobra.Command {
	var (
		amount int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download trivia questions into the CSV bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL := ""
			if cfg, err := config.Load(*configPath); err == nil {
				apiURL = cfg.Trivia.URL
			}

			client := trivia.NewClient(apiURL)
			questions, err := client.Fetch(cmd.Context(), amount)
			if err != nil {
				return err
			}
			if err := csvbank.Write(out, questions); err != nil {
				return err
			}
			log.Printf("saved %d questions to %s", len(questions), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&amount, "amount", 50, "number of questions to download")
	cmd.Flags().StringVar(&out, "out", "questions.csv", "destination CSV file")
	return cmd
}
