package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/eleusis/pkg/card"
	"github.com/aretw0/eleusis/pkg/domain"
)

// Palette colors card tokens and verdicts for one output.
type Palette struct {
	out *termenv.Output
}

// NewPalette detects the color profile of w. Use termenv.WithProfile to force
// one, e.g. termenv.Ascii in tests.
func NewPalette(w io.Writer, opts ...termenv.OutputOption) *Palette {
	return &Palette{out: termenv.NewOutput(w, opts...)}
}

// Card renders a card token, red suits in red.
func (p *Palette) Card(c card.Card) string {
	s := p.out.String(c.String()).Bold()
	if c.Color() == card.Red {
		return s.Foreground(p.out.Color("#ef4444")).String()
	}
	return s.String()
}

// Verdict renders an accept/reject mark.
func (p *Palette) Verdict(accepted bool) string {
	if accepted {
		return p.out.String("accepted").Foreground(p.out.Color("#22c55e")).String()
	}
	return p.out.String("rejected").Foreground(p.out.Color("#f97316")).Faint().String()
}

// Outcome renders one turn log line.
func (p *Palette) Outcome(o domain.Outcome) string {
	seat := o.Seat
	if seat == "" {
		seat = "-"
	}
	return fmt.Sprintf("%3d  %-12s %s  %s", o.Turn, seat, p.Card(o.Card), p.Verdict(o.Accepted))
}

// Board renders the layout; rejected cards are shown in brackets after the
// accepted card they were played on.
func (p *Palette) Board(b *domain.Board) string {
	var parts []string
	for _, e := range b.Entries() {
		s := p.Card(e.Accepted)
		if len(e.Rejected) > 0 {
			rej := make([]string, len(e.Rejected))
			for i, c := range e.Rejected {
				rej[i] = p.out.String(c.String()).Faint().String()
			}
			s += "[" + strings.Join(rej, " ") + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
