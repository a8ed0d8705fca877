package replay

import (
	"fmt"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

// cursor tracks playback progress: the current move, the draw position within
// its scope (the pre-game list before the first move) and the next mulligan
// keep selection.
type cursor struct {
	move int
	draw int
	keep int
}

// Playback owns a reconstructed game and the cursors that feed recorded
// answers back into it. Starting the game is the caller's job, via Run or
// Game().Start().
type Playback struct {
	game   *game.Game
	replay *Replay
	cursor cursor
	err    error
}

// Reconstruct builds a fresh, unstarted game from a replay. Card names
// resolve through lookup; the game's agents and random source answer from the
// recorded log instead of deciding anything.
func Reconstruct(r *Replay, lookup game.CardLookup, opts ...game.GameOption) (*Playback, error) {
	if len(r.Decks) != 2 {
		return nil, fmt.Errorf("replay needs exactly two decks, has %d", len(r.Decks))
	}
	decks := make([]*game.Deck, 2)
	for i, dl := range r.Decks {
		cards := make([]*game.Card, len(dl.Cards))
		for j, name := range dl.Cards {
			c, err := lookup(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnresolvedReference, err)
			}
			cards[j] = c
		}
		d, err := game.NewDeck(dl.Class, cards)
		if err != nil {
			return nil, err
		}
		decks[i] = d
	}

	// Decks are stored first-acting-player first; the recorded coin flip
	// says which seat that was, so hand each seat the deck it had when the
	// game was recorded.
	first := 0
	if len(r.Random) > 0 && r.Random[0].Kind == DrawInt && r.Random[0].Value == 1 {
		first = 1
	}
	if first == 1 {
		decks[0], decks[1] = decks[1], decks[0]
	}

	pb := &Playback{replay: r, cursor: cursor{move: -1}}
	g := game.NewGame(decks[0], decks[1],
		&replayAgent{pb: pb}, &replayAgent{pb: pb},
		append(opts,
			game.WithRandomSource(&replaySource{pb: pb}),
			game.WithCardLookup(lookup))...)
	pb.game = g
	g.AddObserver(&playbackObserver{pb: pb})
	return pb, nil
}

// Game returns the reconstructed, unstarted game.
func (pb *Playback) Game() *game.Game { return pb.game }

// Run starts the game and plays the whole log. It returns the first playback
// error, if the log turned out to be corrupt or stale.
func (pb *Playback) Run() error {
	if err := pb.game.Start(); err != nil {
		return err
	}
	return pb.err
}

// Err returns the first playback error encountered so far.
func (pb *Playback) Err() error { return pb.err }

// fail records the first error and aborts the game.
func (pb *Playback) fail(err error) {
	if pb.err == nil {
		pb.err = err
	}
	pb.game.Stop()
}

func (pb *Playback) agentFor(p *game.Player) *replayAgent {
	return p.Agent.(*replayAgent)
}

// currentDraws returns the draw sequence for the current cursor scope.
func (pb *Playback) currentDraws() ([]RandomDraw, bool) {
	if pb.cursor.move == -1 {
		return pb.replay.Random, true
	}
	if pb.cursor.move < 0 || pb.cursor.move >= len(pb.replay.Moves) {
		return nil, false
	}
	return pb.replay.Moves[pb.cursor.move].Draws(), true
}

// replayAgent answers every decision from values staged by the move being
// applied. It decides nothing itself.
type replayAgent struct {
	pb         *Playback
	nextTarget *game.Character
	nextIndex  int
	nextOption int
}

func (a *replayAgent) DoCardCheck(hand []*game.Card) []bool {
	pb := a.pb
	keep := make([]bool, len(hand))
	if pb.cursor.keep >= len(pb.replay.Keeps) {
		pb.fail(fmt.Errorf("no keep selection recorded for mulligan %d", pb.cursor.keep+1))
		return keep
	}
	for _, idx := range pb.replay.Keeps[pb.cursor.keep] {
		if idx >= 0 && idx < len(keep) {
			keep[idx] = true
		}
	}
	pb.cursor.keep++
	return keep
}

// DoTurn replays queued moves up to, and excluding, the next turn-end marker.
// An exhausted log aborts the game rather than improvising.
func (a *replayAgent) DoTurn(p *game.Player) {
	pb := a.pb
	for !pb.game.Over && !p.Hero.Dead {
		if pb.cursor.move >= len(pb.replay.Moves) {
			pb.game.Stop()
			return
		}
		m := pb.replay.Moves[pb.cursor.move]
		if m.Type() == MoveEnd {
			return
		}
		pb.cursor.draw = 0
		if err := m.Apply(pb); err != nil {
			pb.fail(err)
			return
		}
		pb.cursor.move++
	}
}

func (a *replayAgent) ChooseTarget(candidates []*game.Character) *game.Character {
	return a.nextTarget
}

func (a *replayAgent) ChooseIndex(card *game.Card, p *game.Player) int {
	return a.nextIndex
}

func (a *replayAgent) ChooseOption(options []game.Option) int {
	return a.nextOption
}

// replaySource answers random draws from the recorded log. An empty pre-game
// random list means the whole log recorded only zeros, so every numeric draw
// answers zero.
type replaySource struct {
	pb *Playback
}

func (s *replaySource) Between(low, high int) int {
	pb := s.pb
	if len(pb.replay.Random) == 0 {
		return 0
	}
	draws, ok := pb.currentDraws()
	if !ok || pb.cursor.draw >= len(draws) {
		pb.fail(fmt.Errorf("random draw requested beyond the recorded log"))
		return low
	}
	d := draws[pb.cursor.draw]
	pb.cursor.draw++
	if d.Kind != DrawInt {
		pb.fail(fmt.Errorf("recorded draw is a character reference, wanted an integer"))
		return low
	}
	return d.Value
}

func (s *replaySource) Character(candidates []*game.Character) *game.Character {
	pb := s.pb
	if draws, ok := pb.currentDraws(); ok && pb.cursor.draw < len(draws) &&
		draws[pb.cursor.draw].Kind == DrawCharacter {
		ref := draws[pb.cursor.draw].Character
		pb.cursor.draw++
		c, err := ref.Resolve(pb.game)
		if err != nil {
			pb.fail(err)
			return nil
		}
		return c
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.Between(0, len(candidates)-1)]
}

// playbackObserver keeps the cursors aligned with the game's own progress:
// draw position resets as a transition begins, the move cursor steps past the
// transition marker once it completes, and the move cursor becomes active
// when the pre-game finishes.
type playbackObserver struct {
	game.BaseObserver
	pb *Playback
}

func (o *playbackObserver) TurnStarting(g *game.Game) { o.pb.cursor.draw = 0 }
func (o *playbackObserver) TurnStarted(g *game.Game)  { o.pb.cursor.move++ }
func (o *playbackObserver) TurnEnding(g *game.Game)   { o.pb.cursor.draw = 0 }
func (o *playbackObserver) TurnEnded(g *game.Game)    { o.pb.cursor.move++ }
func (o *playbackObserver) PreGameComplete(g *game.Game) {
	o.pb.cursor.move = 0
}
