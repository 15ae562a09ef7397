// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/skillsync-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreResult outputs a human-readable summary of one score result.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", result.CandidateID))
	sb.WriteString(fmt.Sprintf("Job:       %s\n", result.JobID))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall:    %.1f  (%s)\n", result.OverallScore, result.Recommendation))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.Confidence))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Semantic:   %.1f\n", result.ComponentScores.Semantic))
	sb.WriteString(fmt.Sprintf("Skills:     %.1f\n", result.ComponentScores.Skills))
	sb.WriteString(fmt.Sprintf("Experience: %.1f\n", result.ComponentScores.Experience))
	sb.WriteString(fmt.Sprintf("Education:  %.1f\n", result.ComponentScores.Education))
	sb.WriteString(fmt.Sprintf("Projects:   %.1f\n", result.ComponentScores.Projects))

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("\nMatched Skills:\n")
		count := min(len(result.MatchedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := result.MatchedSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s", skill.Skill))
			if skill.Proficiency != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", skill.Proficiency))
			}
			if skill.MatchType != types.MatchExact {
				sb.WriteString(fmt.Sprintf(" [%s]", skill.MatchType))
			}
			sb.WriteString("\n")
		}
		if len(result.MatchedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MatchedSkills)-maxItemsToShow))
		}
	}

	if len(result.MissingSkills) > 0 {
		sb.WriteString("\nMissing Skills:\n")
		count := min(len(result.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			missing := result.MissingSkills[i]
			sb.WriteString(fmt.Sprintf("  ⚠ %s (%s impact)\n", missing.Skill, missing.Impact))
		}
		if len(result.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingSkills)-maxItemsToShow))
		}
	}

	p.printBox("MATCH SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPrecomputeReport outputs the outcome of a batch precompute run.
func (p *Printer) PrintPrecomputeReport(report *types.PrecomputeReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:       %s\n", report.JobID))
	sb.WriteString(fmt.Sprintf("Requested: %d\n", report.Requested))
	sb.WriteString(fmt.Sprintf("Cached:    %d\n", report.Cached))
	sb.WriteString(fmt.Sprintf("Computed:  %d\n", report.New))
	sb.WriteString(fmt.Sprintf("Errors:    %d\n", report.Errors))
	sb.WriteString(fmt.Sprintf("Duration:  %s", report.Duration.Round(time.Millisecond)))

	if len(report.ErrorDetails) > 0 {
		sb.WriteString("\n\nErrors:\n")
		count := min(len(report.ErrorDetails), 3)
		for i := 0; i < count; i++ {
			detail := report.ErrorDetails[i]
			if len(detail) > 50 {
				detail = detail[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", detail))
		}
		if len(report.ErrorDetails) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.ErrorDetails)-3))
		}
	}

	p.printBox("PRECOMPUTE RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPrecomputeStatus outputs cache coverage for a job.
func (p *Printer) PrintPrecomputeStatus(status *types.PrecomputeStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:         %s\n", status.JobID))
	sb.WriteString(fmt.Sprintf("Precomputed: %d of %d (%.1f%%)\n",
		status.Precomputed, status.TotalMatches, status.CoveragePercent))
	sb.WriteString(fmt.Sprintf("Fresh:       %d\n", status.Fresh))
	sb.WriteString(fmt.Sprintf("Stale:       %d\n", status.Stale))
	if status.NeedsRefresh {
		sb.WriteString("\n⚠ Refresh recommended")
	} else {
		sb.WriteString("\n✅ Cache is up to date")
	}

	p.printBox("CACHE STATUS", sb.String())
}

// PrintAuditStats outputs audit ledger usage statistics.
func (p *Printer) PrintAuditStats(stats *types.AuditStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total records:   %d\n", stats.Total))
	sb.WriteString(fmt.Sprintf("Unique actors:   %d\n", stats.UniqueActors))
	sb.WriteString(fmt.Sprintf("Unique subjects: %d\n", stats.UniqueSubjects))
	sb.WriteString(fmt.Sprintf("Blind mode:      %d (%.1f%%)\n", stats.BlindModeCount, stats.BlindModePct))

	if len(stats.ActionBreakdown) > 0 {
		sb.WriteString("\nActions:\n")
		actions := make([]string, 0, len(stats.ActionBreakdown))
		for action := range stats.ActionBreakdown {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		for _, action := range actions {
			sb.WriteString(fmt.Sprintf("  • %-10s %d\n", action, stats.ActionBreakdown[action]))
		}
	}

	p.printBox("AUDIT STATS", strings.TrimSuffix(sb.String(), "\n"))
}
