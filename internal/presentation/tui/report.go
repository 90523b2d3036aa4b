package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/eleusis/internal/bench"
	"github.com/aretw0/eleusis/internal/table"
	"github.com/aretw0/eleusis/pkg/domain"
)

// GameReport renders a finished game as markdown.
func GameReport(res *table.Result) string {
	var sb strings.Builder
	sb.WriteString("# Game report\n\n")
	fmt.Fprintf(&sb, "- **Game**: `%s`\n", res.GameID)
	fmt.Fprintf(&sb, "- **Hidden rule**: `%s`\n", res.Hidden)
	fmt.Fprintf(&sb, "- **Scientist guess**: `%s`\n", res.Guess)
	fmt.Fprintf(&sb, "- **Ended by**: %s", res.Reason)
	if res.Ender != "" {
		fmt.Fprintf(&sb, " (%s)", res.Ender)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- **Rounds / turns**: %d / %d\n\n", res.Rounds, res.Turns)

	sb.WriteString("## Score\n\n")
	sb.WriteString("| Plays | Play cost | Describes all | Equivalent | Total |\n")
	sb.WriteString("|---:|---:|:---:|:---:|---:|\n")
	s := res.Score
	fmt.Fprintf(&sb, "| %d | %d | %s | %s | **%d** |\n\n", s.Plays, s.PlayCost, yesNo(s.DescribesAll), yesNo(s.Equivalent), s.Total)
	if ce := res.Counterexample; ce != nil {
		side := "rejected by the hidden rule and accepted by the guess"
		if ce.HiddenAccepts {
			side = "accepted by the hidden rule and rejected by the guess"
		}
		fmt.Fprintf(&sb, "Counterexample: `%s`, %s.\n\n", ce.Window, side)
	}

	if res.Board != nil {
		sb.WriteString("## Board\n\n")
		fmt.Fprintf(&sb, "```\n%s\n```\n\n", res.Board.String())
	}

	if len(res.Outcomes) > 0 {
		sb.WriteString("## Turns\n\n")
		sb.WriteString("| Turn | Seat | Card | Verdict |\n")
		sb.WriteString("|---:|---|---|---|\n")
		for _, o := range res.Outcomes {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", o.Turn, o.Seat, o.Card, verdict(o))
		}
	}
	return sb.String()
}

// BenchReport renders benchmark results as markdown.
func BenchReport(r *bench.Report) string {
	var sb strings.Builder
	sb.WriteString("# Benchmark\n\n")
	fmt.Fprintf(&sb, "%d games per rule, turn budget %d, %s scoring.\n\n", r.Config.Games, r.Config.TurnBudget, r.Config.Variant)
	sb.WriteString("| Rule | Success | Mean | Median | Std dev | False neg. | False pos. |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, rr := range r.Rules {
		fmt.Fprintf(&sb, "| `%s` | %.0f%% | %.1f | %.1f | %.1f | %.4f | %.4f |\n",
			rr.Rule, rr.SuccessRate*100, rr.MeanScore, rr.MedianScore, rr.StdDevScore,
			rr.FalseNegativeRate, rr.FalsePositiveRate)
	}
	return sb.String()
}

func verdict(o domain.Outcome) string {
	if o.Accepted {
		return "accepted"
	}
	return "rejected"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
