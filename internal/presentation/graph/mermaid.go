package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/eleusis/pkg/hypothesis"
	"github.com/aretw0/eleusis/pkg/rule"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	// Window marks the clauses that accept it.
	Window *rule.Window
}

// HypothesisMermaid produces a Mermaid flowchart of a DNF hypothesis: an
// "or" root, one "and" node per clause and one leaf per predicate.
// With an overlay, clauses accepting the window are styled as active.
func HypothesisMermaid(s hypothesis.Set, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    root((\"or\"))\n")
	if s.Len() == 0 {
		sb.WriteString("    root --> none[\"False\"]\n")
		return sb.String()
	}

	var active []string
	for i, c := range s.Clauses() {
		id := fmt.Sprintf("c%d", i)
		sb.WriteString(fmt.Sprintf("    %s{{\"and #%d\"}}\n", id, i+1))
		sb.WriteString(fmt.Sprintf("    root --> %s\n", id))
		for j, p := range c.Predicates() {
			pid := fmt.Sprintf("%s_p%d", id, j)
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", pid, escape(p.String())))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, pid))
		}
		if overlay != nil && overlay.Window != nil && c.Accepts(*overlay.Window) {
			active = append(active, id)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range active {
			sb.WriteString(fmt.Sprintf("    class %s active;\n", id))
		}
	}
	return sb.String()
}

// RuleMermaid produces a Mermaid flowchart of an expression tree.
// It applies semantic styling:
// - Connectives (and, or, not, if): ((Circle))
// - Card attributes: [[Subroutine]]
// - Slots and literals: [/Parallelogram/]
// - Default: [Rectangle]
func RuleMermaid(n rule.Node) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	next := 0
	var walk func(rule.Node) string
	walk = func(n rule.Node) string {
		id := fmt.Sprintf("n%d", next)
		next++

		label := n.Op().String()
		opener, closer := "[", "]"
		switch n.Op() {
		case rule.OpAnd, rule.OpOr, rule.OpNot, rule.OpIf:
			opener, closer = "((", "))"
		case rule.OpValue, rule.OpSuit, rule.OpColor, rule.OpIsRoyal, rule.OpEven, rule.OpOdd:
			opener, closer = "[[", "]]"
		case rule.OpLiteral, rule.OpSlot:
			opener, closer = "[/", "/]"
			label = n.String()
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escape(label), closer))

		for _, a := range n.Args() {
			child := walk(a)
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, child))
		}
		return id
	}
	walk(n)
	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
