package rule

import (
	"fmt"
	"strings"
)

// Op tags the variant of a Node.
type Op uint8

const (
	OpLiteral Op = iota + 1 // constant leaf
	OpSlot                  // card slot leaf: current, previous, previous2

	OpEqual
	OpGreater
	OpLess
	OpPlus1
	OpMinus1
	OpAnd
	OpOr
	OpNot
	OpIf
	OpValue
	OpSuit
	OpColor
	OpIsRoyal
	OpEven
	OpOdd
)

// signature describes the operand and result kinds of an operator.
type signature struct {
	name   string
	arity  int
	result Kind
	// check validates operand kinds; nil means every operand must be of kind in.
	in    Kind
	check func(args []Node) error
}

var signatures = map[Op]signature{
	OpEqual:   {name: "equal", arity: 2, result: KindBool, check: sameKind},
	OpGreater: {name: "greater", arity: 2, result: KindBool, check: ordered},
	OpLess:    {name: "less", arity: 2, result: KindBool, check: ordered},
	OpPlus1:   {name: "plus1", arity: 1, result: KindRank, in: KindRank},
	OpMinus1:  {name: "minus1", arity: 1, result: KindRank, in: KindRank},
	OpAnd:     {name: "and", arity: 2, result: KindBool, in: KindBool},
	OpOr:      {name: "or", arity: 2, result: KindBool, in: KindBool},
	OpNot:     {name: "not", arity: 1, result: KindBool, in: KindBool},
	OpIf:      {name: "if", arity: 2, result: KindBool, in: KindBool},
	OpValue:   {name: "value", arity: 1, result: KindRank, in: KindCard},
	OpSuit:    {name: "suit", arity: 1, result: KindSuit, in: KindCard},
	OpColor:   {name: "color", arity: 1, result: KindColor, in: KindCard},
	OpIsRoyal: {name: "is_royal", arity: 1, result: KindBool, in: KindCard},
	OpEven:    {name: "even", arity: 1, result: KindBool, in: KindCard},
	OpOdd:     {name: "odd", arity: 1, result: KindBool, in: KindCard},
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(signatures))
	for op, sig := range signatures {
		m[sig.name] = op
	}
	return m
}()

// LookupOp returns the operator with the given DSL name.
func LookupOp(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// String returns the DSL name of the operator.
func (o Op) String() string {
	switch o {
	case OpLiteral:
		return "literal"
	case OpSlot:
		return "slot"
	}
	if sig, ok := signatures[o]; ok {
		return sig.name
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Arity returns the fixed number of operands of the operator (0 for leaves).
func (o Op) Arity() int {
	return signatures[o].arity
}

func sameKind(args []Node) error {
	if args[0].kind != args[1].kind {
		return fmt.Errorf("cannot compare %s with %s", args[0].kind, args[1].kind)
	}
	return nil
}

func ordered(args []Node) error {
	if err := sameKind(args); err != nil {
		return err
	}
	if k := args[0].kind; k != KindRank && k != KindSuit {
		return fmt.Errorf("%s values have no order", k)
	}
	return nil
}

// Node is an immutable expression tree.
//
// A Node is either a leaf (OpLiteral, OpSlot) or an operator call whose
// operands have already been arity- and type-checked. The zero Node is not
// valid; build nodes with Parse, Call, Lit or Ref.
type Node struct {
	op   Op
	kind Kind
	args []Node
	lit  Value
	slot Slot
}

// Lit returns a constant leaf.
func Lit(v Value) Node {
	return Node{op: OpLiteral, kind: v.Kind, lit: v}
}

// Ref returns a card slot leaf.
func Ref(s Slot) Node {
	return Node{op: OpSlot, kind: KindCard, slot: s}
}

// Call builds an operator node, validating arity and operand kinds.
func Call(op Op, args ...Node) (Node, error) {
	sig, ok := signatures[op]
	if !ok {
		return Node{}, fmt.Errorf("unknown operator %s", op)
	}
	if len(args) != sig.arity {
		return Node{}, fmt.Errorf("%s expects %d operand(s), got %d", sig.name, sig.arity, len(args))
	}
	for i, a := range args {
		if a.op == 0 {
			return Node{}, fmt.Errorf("%s: operand %d is empty", sig.name, i+1)
		}
	}
	if sig.check != nil {
		if err := sig.check(args); err != nil {
			return Node{}, fmt.Errorf("%s: %w", sig.name, err)
		}
	} else {
		for i, a := range args {
			if a.kind != sig.in {
				return Node{}, fmt.Errorf("%s: operand %d must be %s, got %s", sig.name, i+1, sig.in, a.kind)
			}
		}
	}
	cp := make([]Node, len(args))
	copy(cp, args)
	return Node{op: op, kind: sig.result, args: cp}, nil
}

// MustCall is like Call but panics on an ill-formed call.
// Builders that construct trees from known-good shapes use it.
func MustCall(op Op, args ...Node) Node {
	n, err := Call(op, args...)
	if err != nil {
		panic(err)
	}
	return n
}

// Op returns the variant tag.
func (n Node) Op() Op { return n.op }

// Kind returns the kind of value the node evaluates to.
func (n Node) Kind() Kind { return n.kind }

// IsZero reports whether n is the zero Node.
func (n Node) IsZero() bool { return n.op == 0 }

// Args returns a copy of the operands.
func (n Node) Args() []Node {
	cp := make([]Node, len(n.args))
	copy(cp, n.args)
	return cp
}

// Arg returns the i-th operand.
func (n Node) Arg(i int) Node { return n.args[i] }

// Literal returns the constant of an OpLiteral leaf.
func (n Node) Literal() Value { return n.lit }

// Slot returns the slot of an OpSlot leaf.
func (n Node) Slot() Slot { return n.slot }

// String returns the canonical DSL text of the tree.
// Parse(n.String()) yields a tree with identical evaluation semantics.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	switch n.op {
	case OpLiteral:
		b.WriteString(n.lit.String())
	case OpSlot:
		b.WriteString(n.slot.String())
	default:
		b.WriteString(n.op.String())
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		b.WriteByte(')')
	}
}

// Walk visits n and its descendants depth-first, stopping a branch when fn
// returns false.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, a := range n.args {
		a.Walk(fn)
	}
}

// MaxSlot returns the deepest slot the tree references, or -1 when it
// references none. A rule with MaxSlot() == SlotPrevious2 needs three cards.
func (n Node) MaxSlot() Slot {
	deepest := Slot(-1)
	n.Walk(func(c Node) bool {
		if c.op == OpSlot && c.slot > deepest {
			deepest = c.slot
		}
		return true
	})
	return deepest
}
