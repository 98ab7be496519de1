package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MaryEddythe/tabulator/internal/app"
	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
)

// seedJudges are the judge names used for generated submissions.
var seedJudges = []string{"Judge A", "Judge B", "Judge C"}

func newSeedCmd() *cobra.Command {
	var (
		baseURL    string
		candidates int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Post sample submissions to a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(baseURL, candidates, seed)
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8090", "server base URL")
	cmd.Flags().IntVar(&candidates, "candidates", 5, "number of candidates to score")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	return cmd
}

func runSeed(baseURL string, candidates int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	client := &http.Client{Timeout: 10 * time.Second}

	for _, category := range criteria.Direct() {
		crits := criteria.Criteria(category)
		for _, judge := range seedJudges {
			for candidate := 1; candidate <= candidates; candidate++ {
				scores := make(map[string]float64, len(crits))
				var total float64
				for _, c := range crits {
					// Score within each criterion's weight ceiling.
					v := float64(int(c.Weight*0.6)) + rng.Float64()*c.Weight*0.4
					scores[c.Name] = v
					total += v
				}

				sub := app.Submission{
					SubmissionID:    uuid.NewString(),
					Category:        category,
					JudgeName:       judge,
					CandidateNumber: fmt.Sprint(candidate),
					TotalScore:      total,
					Scores:          scores,
				}
				if err := postScore(client, baseURL, sub); err != nil {
					return err
				}
			}
		}
	}

	fmt.Println("seeded", len(criteria.Direct())*len(seedJudges)*candidates, "submissions")
	return nil
}

func postScore(client *http.Client, baseURL string, sub app.Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	resp, err := client.Post(baseURL+"/scores", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("submit %s/%s: HTTP %d", sub.Category, sub.CandidateNumber, resp.StatusCode)
	}
	return nil
}
