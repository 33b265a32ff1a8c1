package matching

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TeamScore is one qualifying (team, score) pair in a report row.
type TeamScore struct {
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
}

// CandidateReportRow is the final per-candidate result: every team that
// scored at or above the threshold, best first.
type CandidateReportRow struct {
	Candidate       *CandidateRecord `json:"candidate"`
	QualifyingTeams []TeamScore      `json:"qualifying_teams"`
	// HeadlineScore is the best qualifying score. Valid only when Matched.
	HeadlineScore int  `json:"headline_score,omitempty"`
	Matched       bool `json:"matched"`
}

// Aggregate scores the candidate against every team, keeps the pairs at or
// above the threshold, and ranks them by score descending with ties broken
// by team name ascending. The input order of teams never affects the result.
func (e *Engine) Aggregate(candidate *CandidateRecord, teams *Teams) CandidateReportRow {
	row := CandidateReportRow{
		Candidate:       candidate,
		QualifyingTeams: []TeamScore{},
	}

	for _, team := range teams.Items {
		match := e.Score(candidate, team)
		if match.Score < e.config.Threshold {
			continue
		}
		row.QualifyingTeams = append(row.QualifyingTeams, TeamScore{
			TeamName: match.TeamName,
			Score:    match.Score,
		})
	}

	sort.Slice(row.QualifyingTeams, func(i, j int) bool {
		a, b := row.QualifyingTeams[i], row.QualifyingTeams[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.TeamName < b.TeamName
	})

	if len(row.QualifyingTeams) > 0 {
		row.Matched = true
		row.HeadlineScore = row.QualifyingTeams[0].Score
	}

	return row
}

// Assemble produces one report row per candidate, preserving candidate input
// order. Scoring is a pure function over immutable records, so candidates
// are evaluated in parallel; each goroutine writes only its own slot, which
// keeps the output byte-identical across runs.
func (e *Engine) Assemble(ctx context.Context, candidates *Candidates, teams *Teams) ([]CandidateReportRow, error) {
	rows := make([]CandidateReportRow, candidates.Len())

	group, _ := errgroup.WithContext(ctx)
	for idx, candidate := range candidates.Items {
		group.Go(func() error {
			rows[idx] = e.Aggregate(candidate, teams)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}
