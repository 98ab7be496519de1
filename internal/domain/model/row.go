// Package model contains the domain records passed between layers and
// the codec that maps them onto table rows.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
)

// Column positions shared by every direct-category table.
const (
	colTimestamp = 0
	colJudge     = 1
	colCandidate = 2
	colTotal     = 3
	colFirstCrit = 4

	// minRowCells is the structural minimum for a raw row: timestamp,
	// judge, candidate and declared total.
	minRowCells = 4
)

// ScoreRow is one judge's raw submission for one candidate in one
// category. Immutable once appended; there is no edit or delete path.
type ScoreRow struct {
	Timestamp       time.Time
	JudgeName       string
	CandidateNumber string
	DeclaredTotal   float64
	CriterionScores map[string]float64
}

// CandidateResult is computed from raw rows on every query and never
// persisted.
type CandidateResult struct {
	Candidate  string             `json:"candidate"`
	TotalScore float64            `json:"totalScore"`
	Scores     map[string]float64 `json:"scores"`
	JudgeCount int                `json:"numberOfScores"`
}

// OverallRow is one derived ranking row, regenerated wholesale on every
// recompute.
type OverallRow struct {
	Timestamp       time.Time
	CandidateNumber string
	FinalScore      float64
	InterviewAvg    float64
	SportsAvg       float64
	GownAvg         float64
	AvgImpact       float64
}

// RecomputeRequest asks the recompute worker for a full overall rebuild.
type RecomputeRequest struct {
	RequestID  string
	Reason     string
	Category   string
	EnqueuedAt time.Time
}

// EncodeScoreRow lays a ScoreRow out in the category's column order.
// Criteria the judge did not score are written as 0, indistinguishable
// downstream from an explicit zero.
func EncodeScoreRow(row ScoreRow, crits []criteria.Criterion) []string {
	cells := []string{
		row.Timestamp.UTC().Format(time.RFC3339),
		row.JudgeName,
		row.CandidateNumber,
		formatScore(row.DeclaredTotal),
	}
	for _, c := range crits {
		cells = append(cells, formatScore(row.CriterionScores[c.Name]))
	}
	return cells
}

// ParseScoreRow decodes a raw table row using the category's criterion
// order. Structural failures (too few cells, missing candidate,
// non-numeric total) return ErrMalformedRow so callers can skip the row
// without aborting the whole read. Missing or non-numeric criterion
// cells decode as 0.
func ParseScoreRow(cells []string, crits []criteria.Criterion) (ScoreRow, error) {
	if len(cells) < minRowCells {
		return ScoreRow{}, fmt.Errorf("row has %d cells, need %d: %w", len(cells), minRowCells, ErrMalformedRow)
	}

	candidate := strings.TrimSpace(cells[colCandidate])
	if candidate == "" {
		return ScoreRow{}, fmt.Errorf("missing candidate number: %w", ErrMalformedRow)
	}

	total, err := strconv.ParseFloat(strings.TrimSpace(cells[colTotal]), 64)
	if err != nil {
		return ScoreRow{}, fmt.Errorf("invalid total score %q: %w", cells[colTotal], ErrMalformedRow)
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(cells[colTimestamp]))
	if err != nil {
		// Timestamps never feed the aggregation; tolerate the zero value.
		ts = time.Time{}
	}

	row := ScoreRow{
		Timestamp:       ts,
		JudgeName:       strings.TrimSpace(cells[colJudge]),
		CandidateNumber: candidate,
		DeclaredTotal:   total,
		CriterionScores: make(map[string]float64, len(crits)),
	}
	for i, c := range crits {
		row.CriterionScores[c.Name] = parseScoreCell(cells, colFirstCrit+i)
	}
	return row, nil
}

// EncodeOverallRow lays an OverallRow out in the derived table's fixed
// seven-column order.
func EncodeOverallRow(row OverallRow) []string {
	return []string{
		row.Timestamp.UTC().Format(time.RFC3339),
		row.CandidateNumber,
		formatScore(row.FinalScore),
		formatScore(row.InterviewAvg),
		formatScore(row.SportsAvg),
		formatScore(row.GownAvg),
		formatScore(row.AvgImpact),
	}
}

// ParseOverallRow decodes a derived table row.
func ParseOverallRow(cells []string) (OverallRow, error) {
	const overallCells = 7
	if len(cells) < overallCells {
		return OverallRow{}, fmt.Errorf("overall row has %d cells, need %d: %w", len(cells), overallCells, ErrMalformedRow)
	}

	candidate := strings.TrimSpace(cells[1])
	if candidate == "" {
		return OverallRow{}, fmt.Errorf("missing candidate number: %w", ErrMalformedRow)
	}
	final, err := strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
	if err != nil {
		return OverallRow{}, fmt.Errorf("invalid final score %q: %w", cells[2], ErrMalformedRow)
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(cells[0]))
	if err != nil {
		ts = time.Time{}
	}

	return OverallRow{
		Timestamp:       ts,
		CandidateNumber: candidate,
		FinalScore:      final,
		InterviewAvg:    parseScoreCell(cells, 3),
		SportsAvg:       parseScoreCell(cells, 4),
		GownAvg:         parseScoreCell(cells, 5),
		AvgImpact:       parseScoreCell(cells, 6),
	}, nil
}

// parseScoreCell reads a numeric cell, treating absent or non-numeric
// values as 0.
func parseScoreCell(cells []string, idx int) float64 {
	if idx >= len(cells) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cells[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
