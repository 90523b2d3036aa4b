// Package player implements the seats of a New Eleusis table: the
// learning Scientist and the scripted adversaries it is benchmarked
// against.
package player
