package game

import "fmt"

// DeckSize is the canonical constructed-deck size.
const DeckSize = 30

// Deck is a player's thirty-card list plus draw bookkeeping. Card draw picks a
// random undrawn position through the game's RandomSource, so a recorded game
// replays the same draws.
type Deck struct {
	Class Class
	Cards []*Card

	drawn []bool
	left  int
}

// NewDeck validates the thirty-card invariant and prepares draw tracking.
func NewDeck(class Class, cards []*Card) (*Deck, error) {
	if len(cards) != DeckSize {
		return nil, fmt.Errorf("deck must have exactly %d cards, got %d", DeckSize, len(cards))
	}
	return &Deck{
		Class: class,
		Cards: cards,
		drawn: make([]bool, DeckSize),
		left:  DeckSize,
	}, nil
}

// Remaining returns how many cards are still in the deck.
func (d *Deck) Remaining() int { return d.left }

// drawNth removes and returns the n-th undrawn card (0-based). The caller
// supplies n from the game's random source.
func (d *Deck) drawNth(n int) *Card {
	for i, c := range d.Cards {
		if d.drawn[i] {
			continue
		}
		if n == 0 {
			d.drawn[i] = true
			d.left--
			return c
		}
		n--
	}
	return nil
}

// putBack returns a mulliganed card to the deck.
func (d *Deck) putBack(card *Card) {
	for i, c := range d.Cards {
		if d.drawn[i] && c == card {
			d.drawn[i] = false
			d.left++
			return
		}
	}
	// Card identity may be shared between copies; release any drawn copy
	// with the same name.
	for i, c := range d.Cards {
		if d.drawn[i] && c.Name == card.Name {
			d.drawn[i] = false
			d.left++
			return
		}
	}
}
