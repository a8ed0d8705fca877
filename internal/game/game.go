// Package game implements a compact turn-based card battler: two players,
// thirty-card decks, minions, spells and hero powers. Every decision flows
// through the Agent interface and every random outcome through RandomSource,
// which is what the replay subsystem hooks to record and reproduce games.
package game

import (
	"errors"
	"fmt"
)

// ErrGameStarted alerts callers that an operation requires an unstarted game.
var ErrGameStarted = errors.New("game has already started")

// CardLookup resolves a card name against an external card database.
type CardLookup func(name string) (*Card, error)

// Game is one match between two players.
type Game struct {
	Players     [2]*Player
	FirstPlayer int
	Current     int
	TurnNumber  int
	Over        bool
	Winner      int // player index, or -1 when undecided or aborted

	rng       RandomSource
	eval      Evaluator
	lookup    CardLookup
	observers []Observer
	started   bool
}

// GameOption configures a Game at construction time.
type GameOption func(*Game)

// WithRandomSource replaces the random source before the opening coin flip,
// which is how playback reproduces a recorded first player.
func WithRandomSource(rs RandomSource) GameOption {
	return func(g *Game) { g.rng = rs }
}

// WithEvaluator installs the effect-formula evaluator.
func WithEvaluator(ev Evaluator) GameOption {
	return func(g *Game) { g.eval = ev }
}

// WithCardLookup installs the card database used to resolve summon tokens.
func WithCardLookup(l CardLookup) GameOption {
	return func(g *Game) { g.lookup = l }
}

// NewGame builds an unstarted match. The coin flip deciding the first player
// happens here, through the (possibly overridden) random source.
func NewGame(deck1, deck2 *Deck, agent1, agent2 Agent, opts ...GameOption) *Game {
	g := &Game{
		Winner: -1,
		rng:    DefaultRandomSource(),
		eval:   literalEvaluator{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Players[0] = newPlayer(g, "player one", deck1, agent1)
	g.Players[1] = newPlayer(g, "player two", deck2, agent2)
	g.FirstPlayer = g.rng.Between(0, 1)
	g.Current = g.FirstPlayer
	return g
}

func newPlayer(g *Game, name string, deck *Deck, agent Agent) *Player {
	p := &Player{
		Name: name,
		Hero: &Character{
			Name:      deck.Class.String(),
			Health:    30,
			MaxHealth: 30,
			IsHero:    true,
		},
		Deck:  deck,
		Agent: agent,
		game:  g,
	}
	p.Hero.Owner = p
	return p
}

// Started reports whether Start has been called.
func (g *Game) Started() bool { return g.started }

// RandomSource returns the game's current random source.
func (g *Game) RandomSource() RandomSource { return g.rng }

// SetRandomSource swaps the random source. Only legal before Start, so a
// recorder can interpose without racing the turn loop.
func (g *Game) SetRandomSource(rs RandomSource) error {
	if g.started {
		return ErrGameStarted
	}
	g.rng = rs
	return nil
}

// AddObserver registers a notification sink.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player { return g.Players[g.Current] }

// Start runs the pre-game and then alternates turns until the game is over.
func (g *Game) Start() error {
	if g.started {
		return ErrGameStarted
	}
	g.started = true
	g.preGame()
	for !g.Over {
		g.startTurn()
		if g.Over {
			break
		}
		p := g.Players[g.Current]
		p.Agent.DoTurn(p)
		if g.Over {
			break
		}
		g.endTurn()
	}
	return nil
}

// preGame deals opening hands and resolves mulligans. The first-acting player
// draws three cards, the second four.
func (g *Game) preGame() {
	first := g.Players[g.FirstPlayer]
	second := first.Opponent()
	for i := 0; i < 3; i++ {
		first.Draw()
	}
	for i := 0; i < 4; i++ {
		second.Draw()
	}
	for _, p := range []*Player{first, second} {
		keep := p.Agent.DoCardCheck(p.Hand)
		g.applyMulligan(p, keep)
	}
	for _, o := range g.observers {
		o.PreGameComplete(g)
	}
}

// applyMulligan replaces unkept cards and notifies observers of the kept
// indices.
func (g *Game) applyMulligan(p *Player, keep []bool) {
	var kept []int
	var returned []*Card
	newHand := p.Hand[:0]
	for i, card := range p.Hand {
		if i < len(keep) && keep[i] {
			kept = append(kept, i)
			newHand = append(newHand, card)
		} else {
			returned = append(returned, card)
		}
	}
	p.Hand = newHand
	for range returned {
		p.Draw()
	}
	for _, card := range returned {
		p.Deck.putBack(card)
	}
	for _, o := range g.observers {
		o.KeptCards(p, kept)
	}
}

func (g *Game) startTurn() {
	for _, o := range g.observers {
		o.TurnStarting(g)
	}
	g.TurnNumber++
	p := g.Players[g.Current]
	if p.MaxMana < MaxMana {
		p.MaxMana++
	}
	p.Mana = p.MaxMana
	p.powerUsed = false
	p.Hero.AttackedThisTurn = false
	for _, m := range p.Minions {
		m.Exhausted = false
		m.AttackedThisTurn = false
	}
	p.Draw()
	for _, o := range g.observers {
		o.TurnStarted(g)
	}
}

func (g *Game) endTurn() {
	for _, o := range g.observers {
		o.TurnEnding(g)
	}
	g.Current = 1 - g.Current
	for _, o := range g.observers {
		o.TurnEnded(g)
	}
}

// PlayCard plays the hand card at handIndex for p, consulting p's agent for
// target, option and board position. Targeting happens before the card-played
// notification; option and index choices after, which is the order the
// recorder depends on.
func (g *Game) PlayCard(p *Player, handIndex int) error {
	if g.Over {
		return fmt.Errorf("game is over")
	}
	if p != g.CurrentPlayer() {
		return fmt.Errorf("not %s's turn", p.Name)
	}
	if !p.CanPlay(handIndex) {
		return fmt.Errorf("cannot play hand card %d", handIndex)
	}
	card := p.Hand[handIndex]

	var target *Character
	if card.Targeted {
		target = p.Agent.ChooseTarget(g.spellTargets(p))
		if target == nil {
			return fmt.Errorf("%s requires a target", card.Name)
		}
	}

	for _, o := range g.observers {
		o.CardPlayed(p, handIndex, card)
	}

	steps := card.Steps
	if len(card.Options) > 0 {
		oi := p.Agent.ChooseOption(card.Options)
		if oi < 0 || oi >= len(card.Options) {
			return fmt.Errorf("invalid option %d for %s", oi, card.Name)
		}
		steps = card.Options[oi].Steps
	}

	p.Mana -= card.Mana
	p.Hand = append(p.Hand[:handIndex], p.Hand[handIndex+1:]...)

	if card.IsMinion() {
		index := p.Agent.ChooseIndex(card, p)
		if _, err := p.summon(card, index); err != nil {
			return err
		}
	}
	if err := g.applySteps(steps, p, target); err != nil {
		return err
	}
	g.checkDeaths()
	return nil
}

// AttackWith resolves an attack by attacker, with the target chosen by the
// owner's agent from the living enemy characters.
func (g *Game) AttackWith(attacker *Character) error {
	if g.Over {
		return fmt.Errorf("game is over")
	}
	p := attacker.Owner
	if p != g.CurrentPlayer() {
		return fmt.Errorf("not %s's turn", p.Name)
	}
	if !attacker.CanAttack() {
		return fmt.Errorf("%s cannot attack", attacker.Name)
	}
	candidates := livingCharacters(p.Opponent())
	target := p.Agent.ChooseTarget(candidates)
	if target == nil {
		return fmt.Errorf("no attack target chosen")
	}
	for _, o := range g.observers {
		o.AttackLaunched(attacker, target)
	}
	target.Damage(attacker.Attack)
	attacker.Damage(target.Attack)
	attacker.AttackedThisTurn = true
	g.checkDeaths()
	return nil
}

// UsePower activates p's hero power, consulting the agent for a target when
// the power needs one.
func (g *Game) UsePower(p *Player) error {
	if g.Over {
		return fmt.Errorf("game is over")
	}
	if p != g.CurrentPlayer() {
		return fmt.Errorf("not %s's turn", p.Name)
	}
	if p.powerUsed {
		return fmt.Errorf("hero power already used this turn")
	}
	if p.Mana < PowerCost {
		return fmt.Errorf("not enough mana for hero power")
	}
	power := HeroPower(p.Deck.Class)
	var target *Character
	if power.Targeted {
		target = p.Agent.ChooseTarget(g.spellTargets(p))
		if target == nil {
			return fmt.Errorf("%s requires a target", power.Name)
		}
	}
	for _, o := range g.observers {
		o.PowerUsed(p)
	}
	p.Mana -= PowerCost
	p.powerUsed = true
	if err := g.applySteps(power.Steps, p, target); err != nil {
		return err
	}
	g.checkDeaths()
	return nil
}

// Concede ends the game with p as the loser.
func (g *Game) Concede(p *Player) {
	if g.Over {
		return
	}
	g.Over = true
	if g.Players[0] == p {
		g.Winner = 1
	} else {
		g.Winner = 0
	}
}

// Stop aborts the game without a winner. Playback uses it when the recorded
// move log runs out.
func (g *Game) Stop() {
	g.Over = true
}

// spellTargets returns every living character, enemy side first.
func (g *Game) spellTargets(p *Player) []*Character {
	out := livingCharacters(p.Opponent())
	return append(out, livingCharacters(p)...)
}

// ResolveCharacter turns a (side, position) reference into the live
// character: position 0 is the hero, position i is the minion at board slot
// i-1. Dead or out-of-range references fail.
func (g *Game) ResolveCharacter(side, pos int) (*Character, error) {
	if side < 1 || side > 2 {
		return nil, fmt.Errorf("invalid player side %d", side)
	}
	p := g.Players[side-1]
	if pos == 0 {
		if p.Hero.Dead {
			return nil, fmt.Errorf("hero on side %d is dead", side)
		}
		return p.Hero, nil
	}
	if pos < 1 || pos > len(p.Minions) {
		return nil, fmt.Errorf("no minion at position %d on side %d", pos, side)
	}
	m := p.Minions[pos-1]
	if m.Dead {
		return nil, fmt.Errorf("minion at position %d on side %d is dead", pos, side)
	}
	return m, nil
}

// AllCharacters enumerates both boards in flat-reference order: player one's
// hero and minions, then player two's.
func (g *Game) AllCharacters() []*Character {
	out := g.Players[0].Characters()
	return append(out, g.Players[1].Characters()...)
}

// checkDeaths clears dead minions and settles the game when a hero died.
func (g *Game) checkDeaths() {
	g.Players[0].removeDead()
	g.Players[1].removeDead()
	dead0 := g.Players[0].Hero.Dead
	dead1 := g.Players[1].Hero.Dead
	if !dead0 && !dead1 {
		return
	}
	g.Over = true
	switch {
	case dead0 && dead1:
		g.Winner = -1
	case dead0:
		g.Winner = 1
	default:
		g.Winner = 0
	}
}
