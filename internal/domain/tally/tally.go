// Package tally is the score aggregation engine: it turns raw per-judge
// rows into weighted, ranked candidate results, and derives the overall
// ranking from the interview, sports and gown categories.
package tally

import (
	"sort"
	"time"

	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
	"github.com/MaryEddythe/tabulator/internal/domain/model"
)

// Weights are the fixed cross-category multipliers for the derived
// overall score. They are a policy constant independent of the
// display-only "overall" criteria list in the registry.
type Weights struct {
	Interview float64 `koanf:"interview" json:"interview"`
	Sports    float64 `koanf:"sports" json:"sports"`
	Gown      float64 `koanf:"gown" json:"gown"`
	Impact    float64 `koanf:"impact" json:"impact"`
}

// DefaultWeights returns the canonical overall weighting.
func DefaultWeights() Weights {
	return Weights{Interview: 0.45, Sports: 0.15, Gown: 0.15, Impact: 0.25}
}

// Results aggregates raw rows for one direct category: groups by
// candidate, averages each criterion across that candidate's
// submissions, applies the criterion weights and returns the ranking
// sorted descending by weighted total. Ties keep first-encounter order.
// Zero rows yield an empty, non-nil slice.
func Results(rows []model.ScoreRow, crits []criteria.Criterion) []model.CandidateResult {
	type bucket struct {
		count int
		sums  map[string]float64
	}

	buckets := make(map[string]*bucket)
	encounter := make([]string, 0)

	for _, row := range rows {
		b, ok := buckets[row.CandidateNumber]
		if !ok {
			b = &bucket{sums: make(map[string]float64, len(crits))}
			buckets[row.CandidateNumber] = b
			encounter = append(encounter, row.CandidateNumber)
		}
		b.count++
		for _, c := range crits {
			b.sums[c.Name] += row.CriterionScores[c.Name]
		}
	}

	results := make([]model.CandidateResult, 0, len(encounter))
	for _, candidate := range encounter {
		b := buckets[candidate]

		avgs := make(map[string]float64, len(crits))
		var weighted float64
		for _, c := range crits {
			avg := b.sums[c.Name] / float64(b.count)
			avgs[c.Name] = avg
			weighted += avg * c.Weight / 100
		}

		results = append(results, model.CandidateResult{
			Candidate:  candidate,
			TotalScore: weighted,
			Scores:     avgs,
			JudgeCount: b.count,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	return results
}

// sourceStats accumulates per-candidate totals for one source category.
type sourceStats struct {
	totalSum  float64
	impactSum float64
	count     int
}

// Overall derives one OverallRow per candidate from the raw rows of the
// source categories (interview, sports, gown), keyed by category name.
// A candidate missing from a category contributes 0 for that category's
// average; the impact average divides by the number of categories the
// candidate actually appears in. Candidates appearing in no source
// category produce no row. An absent category simply contributes no
// rows. Output is sorted descending by final score, ties by
// first-encounter order.
func Overall(src map[string][]model.ScoreRow, w Weights, now time.Time) []model.OverallRow {
	stats := make(map[string]map[string]*sourceStats) // candidate -> category -> stats
	encounter := make([]string, 0)

	for _, category := range criteria.Sources() {
		impact := criteria.ImpactCriterion(category)
		for _, row := range src[category] {
			perCat, ok := stats[row.CandidateNumber]
			if !ok {
				perCat = make(map[string]*sourceStats, 3)
				stats[row.CandidateNumber] = perCat
				encounter = append(encounter, row.CandidateNumber)
			}
			s := perCat[category]
			if s == nil {
				s = &sourceStats{}
				perCat[category] = s
			}
			s.totalSum += row.DeclaredTotal
			s.impactSum += row.CriterionScores[impact]
			s.count++
		}
	}

	rows := make([]model.OverallRow, 0, len(encounter))
	for _, candidate := range encounter {
		perCat := stats[candidate]

		avgTotal := func(category string) float64 {
			s := perCat[category]
			if s == nil || s.count == 0 {
				return 0
			}
			return s.totalSum / float64(s.count)
		}

		var impactSum float64
		var contributing int
		for _, category := range criteria.Sources() {
			s := perCat[category]
			if s == nil || s.count == 0 {
				continue
			}
			impactSum += s.impactSum / float64(s.count)
			contributing++
		}
		var avgImpact float64
		if contributing > 0 {
			avgImpact = impactSum / float64(contributing)
		}

		interviewAvg := avgTotal(criteria.Interview)
		sportsAvg := avgTotal(criteria.Sports)
		gownAvg := avgTotal(criteria.Gown)

		rows = append(rows, model.OverallRow{
			Timestamp:       now,
			CandidateNumber: candidate,
			FinalScore: interviewAvg*w.Interview +
				sportsAvg*w.Sports +
				gownAvg*w.Gown +
				avgImpact*w.Impact,
			InterviewAvg: interviewAvg,
			SportsAvg:    sportsAvg,
			GownAvg:      gownAvg,
			AvgImpact:    avgImpact,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore > rows[j].FinalScore
	})
	return rows
}

// OverallResults converts derived rows to the query result shape. The
// aggregate components are surfaced under the overall category's
// display criteria names; judge count is fixed at 1 since the values
// are already category-level averages.
func OverallResults(rows []model.OverallRow) []model.CandidateResult {
	results := make([]model.CandidateResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, model.CandidateResult{
			Candidate:  row.CandidateNumber,
			TotalScore: row.FinalScore,
			Scores: map[string]float64{
				"Intelligence (Q&A)": row.InterviewAvg,
				"Sports Wear":        row.SportsAvg,
				"Gown":               row.GownAvg,
				"Overall Impact":     row.AvgImpact,
			},
			JudgeCount: 1,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	return results
}
