/*
Package dsl provides Go constructors for Eleusis rule trees.

Building rules with the constructors skips the text parser while still going
through the same type checks, so a tree built here always evaluates:

	import (
		"github.com/aretw0/eleusis/pkg/card"
		. "github.com/aretw0/eleusis/pkg/dsl"
	)

	// "the current card must be red unless the previous one was a royal"
	r := If(Not(Equal(IsRoyal(Previous), Bool(true))),
		Equal(Color(Current), ColorLit(card.Red)))

	fmt.Println(r) // if(not(equal(is_royal(previous), True)), equal(color(current), R))

Random builds hidden rules for automated games and benchmarks.
*/
package dsl
