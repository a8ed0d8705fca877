package game

// Agent is the decision boundary: everything a player chooses goes through
// this interface, which is what makes games recordable and replayable.
type Agent interface {
	// DoCardCheck returns the keep vector for the opening hand.
	DoCardCheck(hand []*Card) []bool
	// DoTurn takes the player's whole turn, issuing plays, attacks and
	// power use against the game, and returns when the turn is done.
	DoTurn(p *Player)
	// ChooseTarget picks a target from the candidates.
	ChooseTarget(candidates []*Character) *Character
	// ChooseIndex picks the board position for a minion being played.
	ChooseIndex(card *Card, p *Player) int
	// ChooseOption picks a branch of a choose-one card.
	ChooseOption(options []Option) int
}

// ScriptedAgent is a deterministic baseline bot: keep everything, play the
// first affordable card, attack the enemy hero, use the hero power when it
// can, end the turn. Its only nondeterminism is the game's own random source,
// which makes it the reference agent for record/replay round trips.
type ScriptedAgent struct{}

func (ScriptedAgent) DoCardCheck(hand []*Card) []bool {
	keep := make([]bool, len(hand))
	for i := range keep {
		keep[i] = true
	}
	return keep
}

func (ScriptedAgent) DoTurn(p *Player) {
	g := p.game
	for !g.Over {
		idx := -1
		for i := range p.Hand {
			if p.CanPlay(i) {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		if err := g.PlayCard(p, idx); err != nil {
			break
		}
	}
	for _, m := range p.Minions {
		if g.Over {
			return
		}
		if m.CanAttack() {
			g.AttackWith(m)
		}
	}
	if !g.Over && p.Mana >= PowerCost {
		g.UsePower(p)
	}
}

func (ScriptedAgent) ChooseTarget(candidates []*Character) *Character {
	if len(candidates) == 0 {
		return nil
	}
	// Prefer the enemy hero, the bot's whole strategy.
	for _, c := range candidates {
		if c.IsHero {
			return c
		}
	}
	return candidates[0]
}

func (ScriptedAgent) ChooseIndex(card *Card, p *Player) int { return len(p.Minions) }

func (ScriptedAgent) ChooseOption(options []Option) int { return 0 }
