package rule

// True and False are the constant rules.
var (
	True  = Lit(Bool(true))
	False = Lit(Bool(false))
)

// Not wraps a boolean node in not(...).
func Not(n Node) Node {
	return MustCall(OpNot, n)
}

// Negate returns the logical negation of n, collapsing not(not(x)) to x.
func Negate(n Node) Node {
	if n.op == OpNot {
		return n.args[0]
	}
	return Not(n)
}

// And folds the operands left to right: and(and(a, b), c).
// An empty list folds to True.
func And(nodes ...Node) Node {
	return fold(OpAnd, True, nodes)
}

// Or folds the operands left to right: or(or(a, b), c).
// An empty list folds to False.
func Or(nodes ...Node) Node {
	return fold(OpOr, False, nodes)
}

func fold(op Op, empty Node, nodes []Node) Node {
	if len(nodes) == 0 {
		return empty
	}
	total := nodes[0]
	for _, n := range nodes[1:] {
		total = MustCall(op, total, n)
	}
	return total
}
