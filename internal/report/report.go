// Package report renders assembled matching results for people and files.
// It is pure presentation: every number it prints was computed by the
// matching engine.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/profilematch/profile-match/internal/matching"
)

const highConfidenceScore = 80

// NoMatchMessage is shown for candidates without a single qualifying team.
const NoMatchMessage = "No suitable match found"

// Summary aggregates run-level statistics for the report header.
type Summary struct {
	Candidates     int     `json:"candidates"`
	Teams          int     `json:"teams"`
	Matched        int     `json:"matched"`
	AverageScore   float64 `json:"average_headline_score"`
	HighConfidence int     `json:"high_confidence_matches"`
}

// Summarize computes header statistics over the assembled rows.
func Summarize(rows []matching.CandidateReportRow, teams int) Summary {
	summary := Summary{
		Candidates: len(rows),
		Teams:      teams,
	}

	total := 0
	for _, row := range rows {
		if !row.Matched {
			continue
		}
		summary.Matched++
		total += row.HeadlineScore
		if row.HeadlineScore >= highConfidenceScore {
			summary.HighConfidence++
		}
	}

	if summary.Matched > 0 {
		summary.AverageScore = float64(total) / float64(summary.Matched)
	}

	return summary
}

// Render formats the full report as plain text: a summary block followed by
// one section per candidate in input order.
func Render(rows []matching.CandidateReportRow, teams int) string {
	summary := Summarize(rows, teams)

	var b strings.Builder
	b.WriteString("PROFILE MATCHING REPORT\n")
	b.WriteString(strings.Repeat("=", 70) + "\n\n")
	fmt.Fprintf(&b, "Candidates processed:    %d\n", summary.Candidates)
	fmt.Fprintf(&b, "Teams available:         %d\n", summary.Teams)
	fmt.Fprintf(&b, "Candidates matched:      %d\n", summary.Matched)
	fmt.Fprintf(&b, "Average headline score:  %s\n", formatAverage(summary))
	fmt.Fprintf(&b, "High-confidence matches: %d (score >= %d)\n", summary.HighConfidence, highConfidenceScore)

	for _, row := range rows {
		b.WriteString("\n" + strings.Repeat("-", 70) + "\n")
		fmt.Fprintf(&b, "Candidate: %s\n", row.Candidate.Name)
		writeContactLine(&b, "Email", row.Candidate.Email)
		writeContactLine(&b, "Phone", row.Candidate.Phone)
		writeContactLine(&b, "LinkedIn", row.Candidate.LinkedIn)
		fmt.Fprintf(&b, "Headline score: %s\n", HeadlineScore(row))

		if !row.Matched {
			fmt.Fprintf(&b, "%s\n", NoMatchMessage)
			continue
		}

		b.WriteString("Qualifying teams:\n")
		for rank, team := range row.QualifyingTeams {
			fmt.Fprintf(&b, "  %d. %s (%d)\n", rank+1, team.TeamName, team.Score)
		}
	}

	return b.String()
}

// HeadlineScore formats a row's best score, or "N/A" when nothing qualified.
func HeadlineScore(row matching.CandidateReportRow) string {
	if !row.Matched {
		return "N/A"
	}
	return fmt.Sprintf("%d", row.HeadlineScore)
}

func formatAverage(summary Summary) string {
	if summary.Matched == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", summary.AverageScore)
}

func writeContactLine(b *strings.Builder, label, value string) {
	if value == "" {
		value = "Not found"
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// Filename returns the timestamped report filename used under the output
// directory.
func Filename(now time.Time) string {
	return fmt.Sprintf("matching_report_%s.txt", now.Format("20060102_150405"))
}

// WriteText writes the rendered report under dir, creating the directory if
// needed, and returns the full path.
func WriteText(dir string, rows []matching.CandidateReportRow, teams int, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, []byte(Render(rows, teams)), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// jsonReport is the stable on-disk shape: field names do not change across runs.
type jsonReport struct {
	Summary Summary                       `json:"summary"`
	Rows    []matching.CandidateReportRow `json:"results"`
}

// MarshalJSON serializes the report as one stable, indented JSON document.
func MarshalJSON(rows []matching.CandidateReportRow, teams int) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		Summary: Summarize(rows, teams),
		Rows:    rows,
	}, "", "  ")
}

// DumpToTmpFile writes the JSON report to a temporary file and returns its name.
func DumpToTmpFile(rows []matching.CandidateReportRow, teams int) (string, error) {
	data, err := MarshalJSON(rows, teams)
	if err != nil {
		return "", err
	}

	file, err := os.CreateTemp("", "matching_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return "", err
	}
	return file.Name(), nil
}
