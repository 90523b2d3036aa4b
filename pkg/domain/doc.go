/*
Package domain contains the core game models shared by the runtime, the
players and the presentation layer.

It is kept free of I/O: it only describes what happened in a game and
what a seat may do next.

# Key Entities

  - Board: the dealer's layout, accepted cards in order with the cards
    rejected after each of them.
  - Move: what a seat does on its turn, either play a card or guess the rule.
  - Outcome: the dealer's verdict on a played card.
  - Status: INIT, PLAYING or ENDED.
  - LifecycleHooks: callbacks fired on turns, hypothesis changes and game end.
*/
package domain
