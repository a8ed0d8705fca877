package replay

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

func TestCompressFindsSmallestPattern(t *testing.T) {
	deck := make([]string, game.DeckSize)
	for i := range deck {
		deck[i] = []string{"Wisp", "Fireball", "Chillwind Yeti"}[i%3]
	}
	pattern := Compress(deck)
	assert.Equal(t, []string{"Wisp", "Fireball", "Chillwind Yeti"}, pattern)

	uniform := make([]string, game.DeckSize)
	for i := range uniform {
		uniform[i] = "Fireball"
	}
	assert.Equal(t, []string{"Fireball"}, Compress(uniform))
}

func TestCompressKeepsAperiodicDecksWhole(t *testing.T) {
	// Period 15 is over the pattern limit, so the deck stays whole.
	deck := make([]string, game.DeckSize)
	for i := range deck {
		if i%15 == 0 {
			deck[i] = "Fireball"
		} else {
			deck[i] = "Wisp"
		}
	}
	assert.Len(t, Compress(deck), game.DeckSize)
}

func TestExpandInvertsCompress(t *testing.T) {
	decks := [][]string{
		make([]string, game.DeckSize),
		make([]string, game.DeckSize),
		make([]string, game.DeckSize),
	}
	for i := 0; i < game.DeckSize; i++ {
		decks[0][i] = "Wisp"
		decks[1][i] = []string{"Wisp", "Fireball"}[i%2]
		decks[2][i] = []string{"a", "b", "c", "d", "e", "f", "g"}[i%7]
	}
	for _, d := range decks {
		out, err := Expand(Compress(d))
		require.NoError(t, err)
		assert.Equal(t, d, out)
	}

	_, err := Expand(nil)
	assert.Error(t, err)
}

func TestParseDirective(t *testing.T) {
	name, args, err := parseDirective("deck(MAGE,Chillwind Yeti,Fireball)")
	require.NoError(t, err)
	assert.Equal(t, "deck", name)
	assert.Equal(t, []string{"MAGE", "Chillwind Yeti", "Fireball"}, args)

	name, args, err = parseDirective("end() ; mage turn one")
	require.NoError(t, err)
	assert.Equal(t, "end", name)
	assert.Empty(t, args)

	_, _, err = parseDirective("not a directive")
	assert.ErrorIs(t, err, ErrBadDirective)
}

func TestCharacterRefForms(t *testing.T) {
	ref, err := ParseCharacterRef("p2:3")
	require.NoError(t, err)
	assert.Equal(t, 2, ref.Side)
	assert.Equal(t, 3, ref.Pos)
	assert.Equal(t, "p2:3", ref.String())

	hero, err := ParseCharacterRef("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, hero.Side)
	assert.Equal(t, 0, hero.Pos)

	flat, err := ParseCharacterRef("2")
	require.NoError(t, err)
	assert.Equal(t, "2", flat.String())

	_, err = ParseCharacterRef("minion four")
	assert.Error(t, err)
}

func TestCardTokenKeepsColonNames(t *testing.T) {
	ref, err := parseCardToken("Power Word: Shield")
	require.NoError(t, err)
	assert.Equal(t, "Power Word: Shield", ref.Name)
	assert.Equal(t, -1, ref.Option)

	ref, err = parseCardToken("Wrath:1")
	require.NoError(t, err)
	assert.Equal(t, "Wrath", ref.Name)
	assert.Equal(t, 1, ref.Option)
}

func TestCompactRoundTripsColonNames(t *testing.T) {
	r := &Replay{
		Decks: []DeckList{
			{Class: game.ClassPriest, Cards: mustExpand([]string{"Power Word: Shield"})},
			{Class: game.ClassHunter, Cards: mustExpand([]string{"Wisp"})},
		},
		Keeps:  defaultKeeps(),
		Random: []RandomDraw{IntDraw(1)},
		Moves: []Move{
			&TurnStartMove{},
			&PlayMove{Card: CardRef{Name: "Power Word: Shield", Index: -1, Option: -1}},
			&TurnEndMove{},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))

	got := NewReplay()
	require.NoError(t, got.Read(&buf))
	assertSameReplay(t, r, got)

	play, ok := got.Moves[1].(*PlayMove)
	require.True(t, ok)
	assert.Equal(t, "Power Word: Shield", play.Card.Name)
	assert.Equal(t, -1, play.Card.Option)
}

func TestReadCompactScenario(t *testing.T) {
	src := "deck(MAGE,Fireball)\nrandom(0)\nkeep(0,1,2)\nkeep(0,1,2,3)\nplay(Fireball,0,2)\nend()\n"
	r := NewReplay()
	require.NoError(t, r.Read(strings.NewReader(src)))

	require.Len(t, r.Decks, 1)
	assert.Equal(t, game.ClassMage, r.Decks[0].Class)
	require.Len(t, r.Decks[0].Cards, game.DeckSize)
	for _, name := range r.Decks[0].Cards {
		assert.Equal(t, "Fireball", name)
	}

	assert.Equal(t, []RandomDraw{IntDraw(0)}, r.Random)
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 1, 2, 3}}, r.Keeps)

	require.Len(t, r.Moves, 2)
	play, ok := r.Moves[0].(*PlayMove)
	require.True(t, ok)
	assert.Equal(t, "Fireball", play.Card.Name)
	assert.Equal(t, 0, play.Index)
	require.NotNil(t, play.Target)
	assert.Equal(t, "2", play.Target.String())
	assert.IsType(t, &TurnEndMove{}, r.Moves[1])
}

func TestReadDefaultsKeeps(t *testing.T) {
	r := NewReplay()
	require.NoError(t, r.Read(strings.NewReader("deck(MAGE,Fireball)\nrandom()\n")))
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 1, 2, 3}}, r.Keeps)
	assert.Empty(t, r.Random)
}

func TestReadRejectsThirdDeck(t *testing.T) {
	src := "deck(MAGE,Fireball)\ndeck(HUNTER,Wisp)\ndeck(DRUID,Wisp)\n"
	r := NewReplay()
	assert.ErrorIs(t, r.Read(strings.NewReader(src)), ErrTooManyDecks)
}

func TestReadRejectsThirdKeep(t *testing.T) {
	src := "keep(0)\nkeep(1)\nkeep(2)\n"
	r := NewReplay()
	assert.ErrorIs(t, r.Read(strings.NewReader(src)), ErrTooManyKeeps)
}

func TestReadRejectsMalformedLine(t *testing.T) {
	r := NewReplay()
	err := r.Read(strings.NewReader("deck(MAGE,Fireball)\nnonsense without parens\n"))
	assert.ErrorIs(t, err, ErrBadDirective)
}

func sampleReplay() *Replay {
	target := CharacterRef{Side: 2, Pos: 0}
	attackTarget := CharacterRef{Side: 2, Pos: 1}
	attacker := CharacterRef{Side: 1, Pos: 1}
	play := &PlayMove{
		Card:   CardRef{Name: "Mad Bomber", Index: 1, Option: -1},
		Index:  0,
		Target: nil,
	}
	play.Random = []RandomDraw{
		CharacterDraw(CharacterRef{Side: 2, Pos: 0}),
		CharacterDraw(CharacterRef{Side: 1, Pos: 0}),
		CharacterDraw(CharacterRef{Side: 2, Pos: 0}),
	}
	fireball := &PlayMove{
		Card:   CardRef{Name: "Fireball", Index: 0, Option: -1},
		Target: &target,
	}
	start := &TurnStartMove{}
	start.Random = []RandomDraw{IntDraw(3)}
	return &Replay{
		Decks: []DeckList{
			{Class: game.ClassMage, Cards: mustExpand([]string{"Fireball", "Mad Bomber"})},
			{Class: game.ClassHunter, Cards: mustExpand([]string{"Wisp"})},
		},
		Keeps:  [][]int{{0, 2}, {0, 1, 2, 3}},
		Random: []RandomDraw{IntDraw(1), IntDraw(4), IntDraw(0)},
		Moves: []Move{
			start,
			play,
			fireball,
			&AttackMove{Attacker: attacker, Target: attackTarget},
			&PowerMove{Target: &target},
			&TurnEndMove{},
			&ConcedeMove{},
		},
	}
}

func mustExpand(pattern []string) []string {
	out, err := Expand(pattern)
	if err != nil {
		panic(err)
	}
	return out
}

func assertSameReplay(t *testing.T, want, got *Replay) {
	t.Helper()
	require.Len(t, got.Decks, len(want.Decks))
	for i := range want.Decks {
		assert.Equal(t, want.Decks[i].Class, got.Decks[i].Class)
		assert.Equal(t, want.Decks[i].Cards, got.Decks[i].Cards)
	}
	assert.Equal(t, want.Keeps, got.Keeps)
	assert.Equal(t, want.Random, got.Random)
	require.Len(t, got.Moves, len(want.Moves))
	for i := range want.Moves {
		assert.Equal(t, want.Moves[i].Type(), got.Moves[i].Type(), "move %d", i)
		assert.Equal(t, want.Moves[i].Draws(), got.Moves[i].Draws(), "move %d draws", i)
		assert.Equal(t, want.Moves[i].Directive(), got.Moves[i].Directive(), "move %d", i)
	}
}

func TestCompactRoundTrip(t *testing.T) {
	r := sampleReplay()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))

	got := NewReplay()
	require.NoError(t, got.Read(&buf))
	assertSameReplay(t, r, got)
}

func TestCompactWriteCompressesDecks(t *testing.T) {
	r := sampleReplay()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "deck(MAGE,Fireball,Mad Bomber)\n")
	assert.Contains(t, buf.String(), "deck(HUNTER,Wisp)\n")
}

func TestCompactWriteOmitsAllZeroRandom(t *testing.T) {
	end := &TurnEndMove{}
	end.Random = []RandomDraw{IntDraw(0)}
	r := &Replay{
		Decks: []DeckList{
			{Class: game.ClassMage, Cards: mustExpand([]string{"Fireball"})},
			{Class: game.ClassHunter, Cards: mustExpand([]string{"Wisp"})},
		},
		Keeps:  [][]int{{0, 1, 2}, {0, 1, 2, 3}},
		Random: []RandomDraw{IntDraw(0), IntDraw(0)},
		Moves:  []Move{&TurnStartMove{}, end},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "random()\n")

	got := NewReplay()
	require.NoError(t, got.Read(&buf))
	assert.Empty(t, got.Random)
}

func TestJSONRoundTrip(t *testing.T) {
	r := sampleReplay()
	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	got := NewReplay()
	require.NoError(t, got.ReadJSON(&buf))
	assertSameReplay(t, r, got)

	play, ok := got.Moves[1].(*PlayMove)
	require.True(t, ok)
	assert.Equal(t, 1, play.Card.Index)
}

func TestJSONReadRequiresDecks(t *testing.T) {
	r := NewReplay()
	err := r.ReadJSON(strings.NewReader(`{"header":{"decks":[],"keep":[],"random":[]},"moves":[]}`))
	assert.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := sampleReplay()

	compact := filepath.Join(dir, "game.hsreplay")
	require.NoError(t, r.WriteFile(compact))
	got := NewReplay()
	require.NoError(t, got.ReadFile(compact))
	assertSameReplay(t, r, got)

	structured := filepath.Join(dir, "game.json")
	require.NoError(t, r.WriteJSONFile(structured))
	got = NewReplay()
	require.NoError(t, got.ReadJSONFile(structured))
	assertSameReplay(t, r, got)
}
