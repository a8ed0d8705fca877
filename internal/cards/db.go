package cards

import (
	"fmt"
	"sort"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

// DB resolves card names to definitions. Built-in cards are registered up
// front; unknown names fall through to the YAML loader when one is attached.
type DB struct {
	byName map[string]*game.Card
	loader *Loader
}

// NewDB builds a database over the built-in set.
func NewDB() *DB {
	db := &DB{byName: make(map[string]*game.Card, len(builtins))}
	for _, c := range builtins {
		db.byName[c.Name] = c
	}
	return db
}

// NewDBWithLoader builds a database that also consults a YAML card loader.
func NewDBWithLoader(loader *Loader) *DB {
	db := NewDB()
	db.loader = loader
	return db
}

// Lookup returns the card definition for name. Loader hits are cached.
func (db *DB) Lookup(name string) (*game.Card, error) {
	if c, ok := db.byName[name]; ok {
		return c, nil
	}
	if db.loader != nil {
		c, err := db.loader.LoadCard(name)
		if err == nil {
			db.byName[name] = c
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown card %q", name)
}

// Register adds or replaces a card definition.
func (db *DB) Register(c *game.Card) {
	db.byName[c.Name] = c
}

// All returns every known card, sorted by name.
func (db *DB) All() []*game.Card {
	out := make([]*game.Card, 0, len(db.byName))
	for _, c := range db.byName {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BuildDeck resolves thirty card names into a deck for the given class.
func (db *DB) BuildDeck(class game.Class, names []string) (*game.Deck, error) {
	cards := make([]*game.Card, 0, len(names))
	for _, name := range names {
		c, err := db.Lookup(name)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return game.NewDeck(class, cards)
}
