package game

import "fmt"

// MaxMana caps a player's mana crystals.
const MaxMana = 10

// MaxBoard caps the number of minions on one side of the board.
const MaxBoard = 7

// Player holds one side of the game: hero, hand, deck, board and the agent
// that decides for it.
type Player struct {
	Name    string
	Hero    *Character
	Deck    *Deck
	Hand    []*Card
	Minions []*Character
	Mana    int
	MaxMana int
	Agent   Agent

	fatigue   int
	powerUsed bool
	game      *Game
}

// Opponent returns the other player.
func (p *Player) Opponent() *Player {
	if p.game.Players[0] == p {
		return p.game.Players[1]
	}
	return p.game.Players[0]
}

// Side returns the player's 1-based side number, used by character references.
func (p *Player) Side() int {
	if p.game.Players[0] == p {
		return 1
	}
	return 2
}

// Draw moves one random card from the deck to the hand, or applies fatigue
// damage when the deck is empty. The draw position comes from the game's
// random source so it lands in the recorded log.
func (p *Player) Draw() {
	if p.Deck.Remaining() == 0 {
		p.fatigue++
		if p.Hero.Damage(p.fatigue) {
			p.game.checkDeaths()
		}
		return
	}
	n := 0
	if p.Deck.Remaining() > 1 {
		n = p.game.rng.Between(0, p.Deck.Remaining()-1)
	}
	card := p.Deck.drawNth(n)
	if card != nil {
		p.Hand = append(p.Hand, card)
	}
}

// CanPlay reports whether the hand card at index is affordable right now.
func (p *Player) CanPlay(index int) bool {
	if index < 0 || index >= len(p.Hand) {
		return false
	}
	card := p.Hand[index]
	if card.Mana > p.Mana {
		return false
	}
	if card.IsMinion() && len(p.Minions) >= MaxBoard {
		return false
	}
	return true
}

// summon inserts a minion for card at the given board index.
func (p *Player) summon(card *Card, index int) (*Character, error) {
	if len(p.Minions) >= MaxBoard {
		return nil, fmt.Errorf("board is full")
	}
	if index < 0 {
		index = 0
	}
	if index > len(p.Minions) {
		index = len(p.Minions)
	}
	m := &Character{
		Name:      card.Name,
		Attack:    card.Attack,
		Health:    card.Health,
		MaxHealth: card.Health,
		Exhausted: true,
		Owner:     p,
	}
	p.Minions = append(p.Minions, nil)
	copy(p.Minions[index+1:], p.Minions[index:])
	p.Minions[index] = m
	return m, nil
}

// removeDead drops dead minions from the board, preserving order.
func (p *Player) removeDead() {
	alive := p.Minions[:0]
	for _, m := range p.Minions {
		if !m.Dead {
			alive = append(alive, m)
		}
	}
	p.Minions = alive
}

// Characters returns the hero followed by the board, the enumeration order
// used by flat character references.
func (p *Player) Characters() []*Character {
	out := make([]*Character, 0, len(p.Minions)+1)
	out = append(out, p.Hero)
	out = append(out, p.Minions...)
	return out
}
