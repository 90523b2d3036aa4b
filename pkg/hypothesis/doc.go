// Package hypothesis maintains the scientist's current best guess of the
// hidden rule as a disjunction of clauses, each a conjunction of candidate
// predicates, and refines it from accept/reject feedback.
//
// The engine is single-writer and not safe for concurrent use.
package hypothesis
