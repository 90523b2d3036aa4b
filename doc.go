/*
Package eleusis plays the scientist role in New Eleusis: it infers a hidden
rule over windows of three cards by proposing cards, observing the dealer's
verdicts and reporting its best guess in disjunctive normal form.

# Concept

The dealer holds a rule written in a small expression language (package
rule), for example

	and(equal(color(current), R), greater(value(current), value(previous)))

Each accepted card extends the board and each rejected card is recorded
next to the card it was played on. The scientist keeps a hypothesis set
(package hypothesis) that it generalizes on accepted windows and
specializes on rejected ones. Each rejection leaves the guess rejecting that
window and still accepting the accepted windows it covered; a later
generalization may widen it over a window rejected earlier, which the score
reports as DescribesAll being false.

# Usage

	s, err := eleusis.New("equal(color(current), R)",
		eleusis.WithSeed(42),
		eleusis.Solo(20),
	)
	if err != nil {
		log.Fatal(err)
	}

	res, err := s.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Guess, res.Score.Total)

Runner wraps a Session with a turn log and a markdown report; the eleusis
command (cmd/eleusis) is built on it.
*/
package eleusis
