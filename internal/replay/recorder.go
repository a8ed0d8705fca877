package replay

import (
	"github.com/rsummers618/hearthbreaker/internal/game"
)

// Record readies an unstarted game for recording and returns the replay that
// will track it. The coin flip already happened at game construction, so it
// is captured here as the first pre-game draw, and the decks are stored with
// the first-acting player's deck first.
//
// Both agents are wrapped, the game's random source is interposed and an
// observer is attached; none of this changes what the game or its agents do.
func Record(g *game.Game) (*Replay, error) {
	if g.Started() {
		return nil, game.ErrGameStarted
	}
	r := NewReplay()
	r.Random = append(r.Random, IntDraw(g.FirstPlayer))

	first := g.Players[g.FirstPlayer]
	second := first.Opponent()
	r.Decks = []DeckList{deckListFor(first.Deck), deckListFor(second.Deck)}

	for _, p := range g.Players {
		p.Agent = &RecordingAgent{Agent: p.Agent, replay: r}
	}
	g.AddObserver(&recordObserver{replay: r})
	if err := g.SetRandomSource(&recordingSource{inner: g.RandomSource(), replay: r}); err != nil {
		return nil, err
	}
	return r, nil
}

// RecordingAgent wraps a real agent: every decision is forwarded unchanged
// and its answer is additionally written into the replay.
type RecordingAgent struct {
	Agent  game.Agent
	replay *Replay
}

func (a *RecordingAgent) DoCardCheck(hand []*game.Card) []bool {
	return a.Agent.DoCardCheck(hand)
}

func (a *RecordingAgent) DoTurn(p *game.Player) {
	a.Agent.DoTurn(p)
}

func (a *RecordingAgent) ChooseTarget(candidates []*game.Character) *game.Character {
	target := a.Agent.ChooseTarget(candidates)
	if target == nil {
		a.replay.stageTarget(nil)
	} else {
		ref := NewCharacterRef(target)
		a.replay.stageTarget(&ref)
	}
	return target
}

func (a *RecordingAgent) ChooseIndex(card *game.Card, p *game.Player) int {
	index := a.Agent.ChooseIndex(card, p)
	if m := a.replay.lastPlay(); m != nil {
		m.Index = index
	}
	return index
}

func (a *RecordingAgent) ChooseOption(options []game.Option) int {
	option := a.Agent.ChooseOption(options)
	if m := a.replay.lastPlay(); m != nil {
		m.Card.Option = option
	}
	return option
}

// recordObserver appends a move for every recordable game event. Turn
// transition moves are appended before the transition runs, so the draws the
// transition consumes attach to them.
type recordObserver struct {
	game.BaseObserver
	replay *Replay
}

func (o *recordObserver) KeptCards(p *game.Player, kept []int) {
	o.replay.Keeps = append(o.replay.Keeps, kept)
}

func (o *recordObserver) CardPlayed(p *game.Player, handIndex int, card *game.Card) {
	o.replay.appendMove(&PlayMove{
		Card:   CardRef{Name: card.Name, Index: handIndex, Option: -1},
		Target: o.replay.takeTarget(),
	})
}

func (o *recordObserver) PowerUsed(p *game.Player) {
	o.replay.appendMove(&PowerMove{Target: o.replay.takeTarget()})
}

func (o *recordObserver) AttackLaunched(attacker, target *game.Character) {
	o.replay.appendMove(&AttackMove{
		Attacker: NewCharacterRef(attacker),
		Target:   NewCharacterRef(target),
	})
	o.replay.stageTarget(nil)
}

func (o *recordObserver) TurnStarting(g *game.Game) {
	o.replay.appendMove(&TurnStartMove{})
}

func (o *recordObserver) TurnEnding(g *game.Game) {
	o.replay.appendMove(&TurnEndMove{})
}

// recordingSource forwards to the real random source and writes every result
// into the replay: integer draws as-is, random-target selections as character
// references.
type recordingSource struct {
	inner  game.RandomSource
	replay *Replay
}

func (s *recordingSource) Between(low, high int) int {
	n := s.inner.Between(low, high)
	s.replay.recordDraw(IntDraw(n))
	return n
}

func (s *recordingSource) Character(candidates []*game.Character) *game.Character {
	c := s.inner.Character(candidates)
	if c != nil {
		s.replay.recordDraw(CharacterDraw(NewCharacterRef(c)))
	}
	return c
}
