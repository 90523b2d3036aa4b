package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/eleusis/pkg/card"
)

// ErrShortContext is returned when a rule references a slot the context does
// not provide, e.g. previous2 with only two cards.
var ErrShortContext = errors.New("context too short for rule")

// ErrNotBoolean is returned when a non-boolean tree is evaluated as a rule.
var ErrNotBoolean = errors.New("expression is not boolean")

// Window is a full evaluation context: previous2, previous, current.
type Window [3]card.Card

// NewWindow builds a window in slot order.
func NewWindow(previous2, previous, current card.Card) Window {
	return Window{previous2, previous, current}
}

// MustWindow parses three card tokens into a window.
func MustWindow(previous2, previous, current string) Window {
	return NewWindow(card.MustParse(previous2), card.MustParse(previous), card.MustParse(current))
}

// At returns the card in the given slot.
func (w Window) At(s Slot) card.Card {
	return w[2-int(s)]
}

// Current returns the card being judged.
func (w Window) Current() card.Card { return w[2] }

// Previous returns the card immediately before the current one.
func (w Window) Previous() card.Card { return w[1] }

// Previous2 returns the oldest card of the window.
func (w Window) Previous2() card.Card { return w[0] }

func (w Window) String() string {
	parts := make([]string, len(w))
	for i, c := range w {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Evaluate runs a rule against a context ordered oldest first; the last
// card is "current". Contexts shorter than three cards are accepted as long
// as the rule only references the slots they provide.
func Evaluate(n Node, cards []card.Card) (bool, error) {
	if n.kind != KindBool {
		return false, ErrNotBoolean
	}
	for i, c := range cards {
		if !c.Valid() {
			return false, fmt.Errorf("%w at position %d", card.ErrInvalidCard, i)
		}
	}
	v, err := n.eval(cards)
	if err != nil {
		return false, err
	}
	return v.Bool, nil
}

// Holds evaluates a boolean rule on a full window.
// A window always provides every slot, so evaluation cannot fail for a
// tree built by Parse or Call.
func (n Node) Holds(w Window) bool {
	v, err := n.eval(w[:])
	if err != nil {
		panic(fmt.Sprintf("rule: evaluating %s on %s: %v", n, w, err))
	}
	return v.Bool
}

func (n Node) eval(ctx []card.Card) (Value, error) {
	switch n.op {
	case OpLiteral:
		return n.lit, nil

	case OpSlot:
		i := len(ctx) - 1 - int(n.slot)
		if i < 0 {
			return Value{}, fmt.Errorf("%w: %s needs %d card(s), have %d", ErrShortContext, n.slot, int(n.slot)+1, len(ctx))
		}
		return CardValue(ctx[i]), nil

	case OpValue, OpSuit, OpColor, OpIsRoyal, OpEven, OpOdd:
		v, err := n.args[0].eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return attribute(n.op, v.Card), nil

	case OpPlus1, OpMinus1:
		v, err := n.args[0].eval(ctx)
		if err != nil {
			return Value{}, err
		}
		if n.op == OpPlus1 {
			return RankValue(v.Rank + 1), nil
		}
		return RankValue(v.Rank - 1), nil

	case OpNot:
		v, err := n.args[0].eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return Bool(!v.Bool), nil

	case OpAnd, OpOr, OpIf:
		a, err := n.args[0].eval(ctx)
		if err != nil {
			return Value{}, err
		}
		switch {
		case n.op == OpAnd && !a.Bool:
			return Bool(false), nil
		case n.op == OpOr && a.Bool:
			return Bool(true), nil
		case n.op == OpIf && !a.Bool:
			// single-branch conditional: vacuously true when the guard fails
			return Bool(true), nil
		}
		return n.args[1].eval(ctx)

	case OpEqual, OpGreater, OpLess:
		a, err := n.args[0].eval(ctx)
		if err != nil {
			return Value{}, err
		}
		b, err := n.args[1].eval(ctx)
		if err != nil {
			return Value{}, err
		}
		switch n.op {
		case OpEqual:
			return Bool(a.Equal(b)), nil
		case OpGreater:
			return Bool(compare(a, b) > 0), nil
		default:
			return Bool(compare(a, b) < 0), nil
		}
	}
	return Value{}, fmt.Errorf("rule: cannot evaluate node with op %s", n.op)
}

func attribute(op Op, c card.Card) Value {
	switch op {
	case OpValue:
		return RankValue(int(c.Rank()))
	case OpSuit:
		return SuitValue(c.Suit())
	case OpColor:
		return ColorValue(c.Color())
	case OpIsRoyal:
		return Bool(c.IsRoyal())
	case OpEven:
		return Bool(c.Even())
	case OpOdd:
		return Bool(c.Odd())
	}
	return Value{}
}

// compare orders ranks numerically and suits by the fixed suit order.
func compare(a, b Value) int {
	switch a.Kind {
	case KindRank:
		return a.Rank - b.Rank
	case KindSuit:
		return int(a.Suit) - int(b.Suit)
	}
	return 0
}

// ParseWindow parses three card tokens, oldest first.
func ParseWindow(tokens ...string) (Window, error) {
	if len(tokens) != 3 {
		return Window{}, fmt.Errorf("a window needs 3 cards, got %d", len(tokens))
	}
	var w Window
	for i, tok := range tokens {
		c, err := card.Parse(tok)
		if err != nil {
			return Window{}, fmt.Errorf("card %d: %w", i+1, err)
		}
		w[i] = c
	}
	return w, nil
}
