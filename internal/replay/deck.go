package replay

import (
	"fmt"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

// DeckList is a deck as the log stores it: a class and thirty card names.
type DeckList struct {
	Class game.Class
	Cards []string
}

// deckListFor snapshots a live deck's card names in order.
func deckListFor(d *game.Deck) DeckList {
	names := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		names[i] = c.Name
	}
	return DeckList{Class: d.Class, Cards: names}
}

// Compress returns the smallest repeating prefix of a thirty-card list: the
// shortest pattern of length 1 through 14 such that cards[i] == cards[i mod k]
// for every index. Aperiodic decks come back whole.
func Compress(cards []string) []string {
	for k := 1; k < 15; k++ {
		matched := true
		for i := k; i < len(cards); i++ {
			if cards[i] != cards[i%k] {
				matched = false
				break
			}
		}
		if matched {
			return cards[:k]
		}
	}
	return cards
}

// Expand rebuilds a thirty-card list by repeating the pattern. It inverts
// Compress: Expand(Compress(d)) == d for every valid deck.
func Expand(pattern []string) ([]string, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("empty deck pattern")
	}
	out := make([]string, game.DeckSize)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out, nil
}
