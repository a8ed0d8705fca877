package replay

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsummers618/hearthbreaker/internal/cards"
	"github.com/rsummers618/hearthbreaker/internal/game"
)

// seededSource is a deterministic stand-in for the crypto source, so recorded
// test games are reproducible run to run.
type seededSource struct {
	r *rand.Rand
}

func newSeededSource(seed int64) *seededSource {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Between(low, high int) int {
	if high <= low {
		return low
	}
	return low + s.r.Intn(high-low+1)
}

func (s *seededSource) Character(candidates []*game.Character) *game.Character {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.r.Intn(len(candidates))]
}

var testDeckPattern = []string{
	"Fireball", "Mad Bomber", "Novice Engineer", "Wisp", "Chillwind Yeti", "Bloodfen Raptor",
}

func recordedGame(t *testing.T, seed int64) (*game.Game, *Replay, *cards.DB) {
	t.Helper()
	db := cards.NewDB()
	names := make([]string, game.DeckSize)
	for i := range names {
		names[i] = testDeckPattern[i%len(testDeckPattern)]
	}
	d1, err := db.BuildDeck(game.ClassMage, names)
	require.NoError(t, err)
	d2, err := db.BuildDeck(game.ClassHunter, names)
	require.NoError(t, err)

	g := game.NewGame(d1, d2, game.ScriptedAgent{}, game.ScriptedAgent{},
		game.WithRandomSource(newSeededSource(seed)),
		game.WithCardLookup(db.Lookup))
	r, err := Record(g)
	require.NoError(t, err)
	require.NoError(t, g.Start())
	require.True(t, g.Over)
	return g, r, db
}

// outcome is the board state a replayed game must reproduce.
type outcome struct {
	winner     int
	turns      int
	hero1HP    int
	hero2HP    int
	minions1   int
	minions2   int
	handSizes  [2]int
	firstToAct int
}

func outcomeOf(g *game.Game) outcome {
	return outcome{
		winner:     g.Winner,
		turns:      g.TurnNumber,
		hero1HP:    g.Players[0].Hero.Health,
		hero2HP:    g.Players[1].Hero.Health,
		minions1:   len(g.Players[0].Minions),
		minions2:   len(g.Players[1].Minions),
		handSizes:  [2]int{len(g.Players[0].Hand), len(g.Players[1].Hand)},
		firstToAct: g.FirstPlayer,
	}
}

func TestRecordRequiresUnstartedGame(t *testing.T) {
	g, _, _ := recordedGame(t, 7)
	_, err := Record(g)
	assert.ErrorIs(t, err, game.ErrGameStarted)
}

func TestRecordCapturesGameShape(t *testing.T) {
	g, r, _ := recordedGame(t, 7)

	require.NotEmpty(t, r.Random)
	assert.Equal(t, IntDraw(g.FirstPlayer), r.Random[0])

	require.Len(t, r.Decks, 2)
	assert.Len(t, r.Decks[0].Cards, game.DeckSize)
	assert.Equal(t, g.Players[g.FirstPlayer].Deck.Class, r.Decks[0].Class)

	assert.Len(t, r.Keeps, 2)
	require.NotEmpty(t, r.Moves)
	assert.Equal(t, MoveStart, r.Moves[0].Type())

	// Every turn-end is preceded by a matching turn-start.
	starts, ends := 0, 0
	for _, m := range r.Moves {
		switch m.Type() {
		case MoveStart:
			starts++
		case MoveEnd:
			ends++
		}
		if m.Type() == MoveEnd {
			assert.LessOrEqual(t, ends, starts)
		}
	}
}

func TestRecordingAgentDelegates(t *testing.T) {
	db := cards.NewDB()
	names := make([]string, game.DeckSize)
	for i := range names {
		names[i] = "Wisp"
	}
	d1, err := db.BuildDeck(game.ClassMage, names)
	require.NoError(t, err)
	d2, err := db.BuildDeck(game.ClassHunter, names)
	require.NoError(t, err)
	g := game.NewGame(d1, d2, game.ScriptedAgent{}, game.ScriptedAgent{},
		game.WithRandomSource(newSeededSource(3)),
		game.WithCardLookup(db.Lookup))

	_, err = Record(g)
	require.NoError(t, err)
	for _, p := range g.Players {
		wrapped, ok := p.Agent.(*RecordingAgent)
		require.True(t, ok)
		assert.IsType(t, game.ScriptedAgent{}, wrapped.Agent)
	}
}

func TestPlaybackReproducesRecordedGame(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		g, r, db := recordedGame(t, seed)
		want := outcomeOf(g)

		pb, err := Reconstruct(r, db.Lookup)
		require.NoError(t, err)
		assert.False(t, pb.Game().Started())
		require.NoError(t, pb.Run())
		assert.Equal(t, want, outcomeOf(pb.Game()), "seed %d", seed)
	}
}

func TestPlaybackAfterCompactRoundTrip(t *testing.T) {
	g, r, db := recordedGame(t, 11)
	want := outcomeOf(g)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	loaded := NewReplay()
	require.NoError(t, loaded.Read(&buf))

	pb, err := Reconstruct(loaded, db.Lookup)
	require.NoError(t, err)
	require.NoError(t, pb.Run())
	assert.Equal(t, want, outcomeOf(pb.Game()))
}

func TestPlaybackAfterJSONRoundTrip(t *testing.T) {
	g, r, db := recordedGame(t, 11)
	want := outcomeOf(g)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))
	loaded := NewReplay()
	require.NoError(t, loaded.ReadJSON(&buf))

	pb, err := Reconstruct(loaded, db.Lookup)
	require.NoError(t, err)
	require.NoError(t, pb.Run())
	assert.Equal(t, want, outcomeOf(pb.Game()))
}

func TestChooseOneRecordsAndReplays(t *testing.T) {
	db := cards.NewDB()
	names := make([]string, game.DeckSize)
	for i := range names {
		if i%2 == 0 {
			names[i] = "Wrath"
		} else {
			names[i] = "Wisp"
		}
	}
	d1, err := db.BuildDeck(game.ClassDruid, names)
	require.NoError(t, err)
	d2, err := db.BuildDeck(game.ClassMage, names)
	require.NoError(t, err)
	g := game.NewGame(d1, d2, game.ScriptedAgent{}, game.ScriptedAgent{},
		game.WithRandomSource(newSeededSource(5)),
		game.WithCardLookup(db.Lookup))
	r, err := Record(g)
	require.NoError(t, err)
	require.NoError(t, g.Start())
	want := outcomeOf(g)

	var wrath *PlayMove
	for _, m := range r.Moves {
		if p, ok := m.(*PlayMove); ok && p.Card.Name == "Wrath" {
			wrath = p
			break
		}
	}
	require.NotNil(t, wrath, "half the deck is a choose-one card, one must be played")
	assert.Equal(t, 0, wrath.Card.Option)
	assert.Contains(t, wrath.Directive(), "Wrath:0")

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	loaded := NewReplay()
	require.NoError(t, loaded.Read(&buf))

	pb, err := Reconstruct(loaded, db.Lookup)
	require.NoError(t, err)
	require.NoError(t, pb.Run())
	assert.Equal(t, want, outcomeOf(pb.Game()))
}

func TestReconstructRejectsUnknownCards(t *testing.T) {
	db := cards.NewDB()
	r := NewReplay()
	require.NoError(t, r.Read(strings.NewReader(
		"deck(MAGE,No Such Card)\ndeck(HUNTER,Wisp)\nrandom()\n")))

	_, err := Reconstruct(r, db.Lookup)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestReconstructRequiresTwoDecks(t *testing.T) {
	db := cards.NewDB()
	r := NewReplay()
	require.NoError(t, r.Read(strings.NewReader("deck(MAGE,Fireball)\nrandom()\n")))

	_, err := Reconstruct(r, db.Lookup)
	assert.Error(t, err)
}

func TestPlaybackFailsOnStaleReference(t *testing.T) {
	db := cards.NewDB()
	src := "deck(MAGE,Wisp)\ndeck(HUNTER,Wisp)\nrandom()\nstart()\nattack(p1:5,p2:0)\nend()\n"
	r := NewReplay()
	require.NoError(t, r.Read(strings.NewReader(src)))

	pb, err := Reconstruct(r, db.Lookup)
	require.NoError(t, err)
	err = pb.Run()
	assert.ErrorIs(t, err, ErrUnresolvedReference)
	assert.True(t, pb.Game().Over)
}

func TestPlaybackStopsWhenLogRunsOut(t *testing.T) {
	db := cards.NewDB()
	src := "deck(MAGE,Wisp)\ndeck(HUNTER,Wisp)\nrandom()\nstart()\nend()\n"
	r := NewReplay()
	require.NoError(t, r.Read(strings.NewReader(src)))

	pb, err := Reconstruct(r, db.Lookup)
	require.NoError(t, err)
	require.NoError(t, pb.Run())
	assert.True(t, pb.Game().Over)
	assert.Equal(t, -1, pb.Game().Winner)
}
